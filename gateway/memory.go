package gateway

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Memory is an in-process Store used for tests and STORE_BACKEND=memory.
// Callbacks are delivered synchronously under the store lock, so each
// subscriber sees a serialized stream of updates. Callbacks must not call
// back into the store.
type Memory struct {
	mu      sync.Mutex
	docs    map[string]Fields
	created map[string]time.Time
	subs    map[string]map[int]func(Fields)
	queries map[int]*memoryQuery
	nextSub int

	// Now is swappable in tests.
	Now func() time.Time
}

type memoryQuery struct {
	collection string
	orderField string
	desc       bool
	limit      int
	fn         func([]Record)
}

func NewMemory() *Memory {
	return &Memory{
		docs:    make(map[string]Fields),
		created: make(map[string]time.Time),
		subs:    make(map[string]map[int]func(Fields)),
		queries: make(map[int]*memoryQuery),
		Now:     time.Now,
	}
}

func (m *Memory) ReadOnce(_ context.Context, path string) (Fields, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	doc, ok := m.docs[path]
	if !ok {
		return nil, ErrNotFound
	}
	return cloneFields(doc), nil
}

func (m *Memory) WriteMerge(_ context.Context, path string, fields Fields) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	doc, ok := m.docs[path]
	if !ok {
		doc = make(Fields)
		m.docs[path] = doc
		m.created[path] = m.Now()
	}
	for k, v := range fields {
		doc[k] = v
	}
	m.notifyLocked(path)
	return nil
}

func (m *Memory) Increment(_ context.Context, path string, field string, delta int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	doc, ok := m.docs[path]
	if !ok {
		return ErrNotFound
	}
	doc[field] = fieldInt(doc, field) + delta
	m.notifyLocked(path)
	return nil
}

func (m *Memory) Delete(_ context.Context, path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.docs, path)
	delete(m.created, path)
	m.notifyQueriesLocked(collectionOf(path))
	return nil
}

func (m *Memory) Add(_ context.Context, collection string, fields Fields) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := uuid.NewString()
	path := collection + "/" + id
	doc := cloneFields(fields)
	now := m.Now()
	doc[CreatedAtField] = now
	m.docs[path] = doc
	m.created[path] = now
	m.notifyLocked(path)
	return id, nil
}

func (m *Memory) Subscribe(path string, fn func(Fields)) (CancelFunc, error) {
	m.mu.Lock()
	id := m.nextSub
	m.nextSub++
	if m.subs[path] == nil {
		m.subs[path] = make(map[int]func(Fields))
	}
	m.subs[path][id] = fn
	doc, ok := m.docs[path]
	var snapshot Fields
	if ok {
		snapshot = cloneFields(doc)
	}
	m.mu.Unlock()

	// initial snapshot, matching the remote store's behavior
	if ok {
		fn(snapshot)
	}
	return func() {
		m.mu.Lock()
		delete(m.subs[path], id)
		m.mu.Unlock()
	}, nil
}

func (m *Memory) QueryOrderedLimited(collection string, orderField string, desc bool, limit int, fn func([]Record)) (CancelFunc, error) {
	m.mu.Lock()
	id := m.nextSub
	m.nextSub++
	q := &memoryQuery{collection: collection, orderField: orderField, desc: desc, limit: limit, fn: fn}
	m.queries[id] = q
	window := m.windowLocked(q)
	m.mu.Unlock()

	fn(window)
	return func() {
		m.mu.Lock()
		delete(m.queries, id)
		m.mu.Unlock()
	}, nil
}

func (m *Memory) notifyLocked(path string) {
	if subs := m.subs[path]; len(subs) > 0 {
		snapshot := cloneFields(m.docs[path])
		for _, fn := range subs {
			fn(snapshot)
		}
	}
	m.notifyQueriesLocked(collectionOf(path))
}

func (m *Memory) notifyQueriesLocked(collection string) {
	for _, q := range m.queries {
		if q.collection == collection {
			q.fn(m.windowLocked(q))
		}
	}
}

func (m *Memory) windowLocked(q *memoryQuery) []Record {
	prefix := q.collection + "/"
	var records []Record
	for path, doc := range m.docs {
		if !strings.HasPrefix(path, prefix) {
			continue
		}
		id := strings.TrimPrefix(path, prefix)
		if strings.Contains(id, "/") {
			continue
		}
		records = append(records, Record{
			ID:         id,
			Fields:     cloneFields(doc),
			CreateTime: m.created[path],
		})
	}

	sort.Slice(records, func(i, j int) bool {
		a := FieldTime(records[i].Fields, q.orderField)
		b := FieldTime(records[j].Fields, q.orderField)
		if !a.Equal(b) {
			if q.desc {
				return a.After(b)
			}
			return a.Before(b)
		}
		return records[i].ID < records[j].ID
	})

	if q.limit > 0 && len(records) > q.limit {
		records = records[:q.limit]
	}
	return records
}

func cloneFields(f Fields) Fields {
	out := make(Fields, len(f))
	for k, v := range f {
		out[k] = v
	}
	return out
}

func fieldInt(f Fields, key string) int64 {
	switch v := f[key].(type) {
	case int64:
		return v
	case int:
		return int64(v)
	case float64:
		return int64(v)
	}
	return 0
}

func collectionOf(path string) string {
	if i := strings.LastIndex(path, "/"); i >= 0 {
		return path[:i]
	}
	return path
}
