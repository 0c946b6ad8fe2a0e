// Package gateway abstracts the hosted document store the display syncs
// through. Documents are addressed by "collection/id" paths and updates are
// field-level merges, so concurrent writers never clobber fields they did
// not touch. Deliveries are at-least-once and eventually consistent;
// ordering fields carry server-assigned timestamps.
package gateway

import (
	"context"
	"errors"
	"time"
)

// Fields is the decoded field set of one document.
type Fields map[string]interface{}

// Record is one document in an ordered collection query. A zero CreateTime
// means the server has not assigned a timestamp yet.
type Record struct {
	ID         string
	Fields     Fields
	CreateTime time.Time
}

// CreatedAtField is the server-assigned ordering field Add stamps on every
// new collection record.
const CreatedAtField = "createdAt"

var ErrNotFound = errors.New("document not found")

// CancelFunc tears down a subscription. Safe to call more than once.
type CancelFunc func()

type Store interface {
	// ReadOnce fetches the current document, or ErrNotFound.
	ReadOnce(ctx context.Context, path string) (Fields, error)

	// WriteMerge upserts the document, merging at the field level.
	WriteMerge(ctx context.Context, path string, fields Fields) error

	// Increment atomically adds delta to an integer field. Returns
	// ErrNotFound when the document does not exist yet; callers fall back
	// to an explicit create-with-initial-value.
	Increment(ctx context.Context, path string, field string, delta int64) error

	// Delete removes the document.
	Delete(ctx context.Context, path string) error

	// Add creates a record in a collection with a store-assigned id and a
	// server-assigned CreatedAtField timestamp.
	Add(ctx context.Context, collection string, fields Fields) (string, error)

	// Subscribe pushes the full current document on every remote change.
	Subscribe(path string, fn func(Fields)) (CancelFunc, error)

	// QueryOrderedLimited maintains a live, ordered, size-bounded view of a
	// collection and pushes the full window on every change.
	QueryOrderedLimited(collection string, orderField string, desc bool, limit int, fn func([]Record)) (CancelFunc, error)
}

// FieldTime decodes a timestamp-valued field, tolerating the concrete types
// the different backends produce. Zero time when absent or pending.
func FieldTime(f Fields, key string) time.Time {
	switch v := f[key].(type) {
	case time.Time:
		return v
	case string:
		if ts, err := time.Parse(time.RFC3339Nano, v); err == nil {
			return ts
		}
	}
	return time.Time{}
}
