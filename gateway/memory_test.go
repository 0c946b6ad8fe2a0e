package gateway

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMemoryWriteMergeKeepsUntouchedFields(t *testing.T) {
	store := NewMemory()
	ctx := context.Background()

	err := store.WriteMerge(ctx, "teachers/abc", Fields{"rosterText": "Alice, Bob"})
	assert.NoError(t, err)

	err = store.WriteMerge(ctx, "teachers/abc", Fields{"experiencePoints": int64(10)})
	assert.NoError(t, err)

	doc, err := store.ReadOnce(ctx, "teachers/abc")
	assert.NoError(t, err)
	assert.Equal(t, "Alice, Bob", doc["rosterText"])
	assert.Equal(t, int64(10), doc["experiencePoints"])
}

func TestMemoryReadOnceAbsent(t *testing.T) {
	store := NewMemory()
	_, err := store.ReadOnce(context.Background(), "teachers/missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryIncrementMissingDocument(t *testing.T) {
	store := NewMemory()
	ctx := context.Background()

	err := store.Increment(ctx, "stats/school", "totalPrayers", 1)
	assert.ErrorIs(t, err, ErrNotFound)

	// create-with-initial-value fallback, then a real increment
	assert.NoError(t, store.WriteMerge(ctx, "stats/school", Fields{"totalPrayers": int64(1)}))
	assert.NoError(t, store.Increment(ctx, "stats/school", "totalPrayers", 1))

	doc, err := store.ReadOnce(ctx, "stats/school")
	assert.NoError(t, err)
	assert.Equal(t, int64(2), doc["totalPrayers"])
}

func TestMemorySubscribePushesEveryChange(t *testing.T) {
	store := NewMemory()
	ctx := context.Background()

	var seen []Fields
	cancel, err := store.Subscribe("stats/school", func(f Fields) {
		seen = append(seen, f)
	})
	assert.NoError(t, err)

	assert.NoError(t, store.WriteMerge(ctx, "stats/school", Fields{"totalPrayers": int64(1)}))
	assert.NoError(t, store.Increment(ctx, "stats/school", "totalPrayers", 1))

	assert.Len(t, seen, 2)
	assert.Equal(t, int64(2), seen[1]["totalPrayers"])

	cancel()
	assert.NoError(t, store.Increment(ctx, "stats/school", "totalPrayers", 1))
	assert.Len(t, seen, 2)
}

func TestMemoryQueryOrderedLimited(t *testing.T) {
	store := NewMemory()
	ctx := context.Background()

	clock := time.Date(2026, 1, 7, 8, 0, 0, 0, time.UTC)
	store.Now = func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	}

	var windows [][]Record
	cancel, err := store.QueryOrderedLimited("intentions", CreatedAtField, true, 2, func(r []Record) {
		windows = append(windows, r)
	})
	assert.NoError(t, err)
	defer cancel()

	for _, text := range []string{"first", "second", "third"} {
		_, err := store.Add(ctx, "intentions", Fields{"text": text})
		assert.NoError(t, err)
	}

	// initial empty window plus one per add
	assert.Len(t, windows, 4)

	last := windows[len(windows)-1]
	assert.Len(t, last, 2)
	assert.Equal(t, "third", last[0].Fields["text"])
	assert.Equal(t, "second", last[1].Fields["text"])
	assert.True(t, last[0].CreateTime.After(last[1].CreateTime))
}
