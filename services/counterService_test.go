package services

import (
	"context"
	"testing"

	"github.com/ClassroomPrayers/gateway"
	"github.com/stretchr/testify/assert"
)

func TestRecordAmenCreateThenIncrement(t *testing.T) {
	store := gateway.NewMemory()
	InitCounterService(store)
	svc := GetCounterService()
	ctx := context.Background()

	// first call hits the missing-counter fallback, second is a real
	// increment; the pair must land on 2, not 1
	assert.NoError(t, svc.RecordAmen(ctx))
	assert.NoError(t, svc.RecordAmen(ctx))

	total, err := svc.Total(ctx)
	assert.NoError(t, err)
	assert.Equal(t, int64(2), total)
}

func TestTotalAbsentCounter(t *testing.T) {
	InitCounterService(gateway.NewMemory())

	total, err := GetCounterService().Total(context.Background())
	assert.NoError(t, err)
	assert.Zero(t, total)
}

func TestWatchPushesUpdates(t *testing.T) {
	store := gateway.NewMemory()
	InitCounterService(store)
	svc := GetCounterService()
	ctx := context.Background()

	var seen []int64
	cancel, err := svc.Watch(func(n int64) { seen = append(seen, n) })
	assert.NoError(t, err)
	defer cancel()

	assert.NoError(t, svc.RecordAmen(ctx))
	assert.NoError(t, svc.RecordAmen(ctx))

	assert.Equal(t, []int64{1, 2}, seen)
}
