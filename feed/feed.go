// Package feed maintains the community prayer-intentions board: submission
// validation, role-gated removal, and a locally observed, remotely ordered,
// size-bounded window of records.
package feed

import (
	"context"
	"errors"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/ClassroomPrayers/gateway"
	"github.com/ClassroomPrayers/models"
)

const (
	// MaxTextLength caps intention text, in runes.
	MaxTextLength = 200

	// WindowSize is how many recent intentions the board shows.
	WindowSize = 20

	// Collection is the gateway collection intentions live in.
	Collection = "intentions"
)

var (
	ErrEmptyText     = errors.New("intention text is empty")
	ErrTextTooLong   = errors.New("intention text exceeds the maximum length")
	ErrAuthRequired  = errors.New("sign in to do that")
	ErrNotAuthorized = errors.New("not authorized to remove intentions")
)

// ValidateText trims the submission and rejects empty or over-length text
// before any remote call is made.
func ValidateText(text string) (string, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return "", ErrEmptyText
	}
	if utf8.RuneCountInString(trimmed) > MaxTextLength {
		return "", ErrTextTooLong
	}
	return trimmed, nil
}

// Submit validates and creates an intention record. The creation timestamp
// is server-assigned by the gateway.
func Submit(ctx context.Context, store gateway.Store, identity *models.Identity, text string) (string, error) {
	if identity == nil {
		return "", ErrAuthRequired
	}
	trimmed, err := ValidateText(text)
	if err != nil {
		return "", err
	}
	return store.Add(ctx, Collection, gateway.Fields{
		"text":        trimmed,
		"authorUid":   identity.UID,
		"authorName":  identity.DisplayName,
		"authorEmail": identity.Email,
	})
}

// Remove deletes an intention. Only identities carrying the admin claim may
// remove records; a backend rejection comes back as an error for the caller
// to surface without tearing down the feed.
func Remove(ctx context.Context, store gateway.Store, identity *models.Identity, id string) error {
	if identity == nil {
		return ErrAuthRequired
	}
	if !identity.Admin {
		return ErrNotAuthorized
	}
	return store.Delete(ctx, Collection+"/"+id)
}

// Window is the live bounded view of the feed. Each pushed snapshot
// replaces the window wholesale, so updates may arrive in any interleaving
// relative to local submissions.
type Window struct {
	mu      sync.Mutex
	records []models.IntentionRecord
}

// Watch subscribes a new window to the store. Cancel tears the
// subscription down.
func Watch(store gateway.Store, size int) (*Window, gateway.CancelFunc, error) {
	w := &Window{}
	cancel, err := store.QueryOrderedLimited(Collection, gateway.CreatedAtField, true, size, w.apply)
	if err != nil {
		return nil, nil, err
	}
	return w, cancel, nil
}

func (w *Window) apply(records []gateway.Record) {
	converted := make([]models.IntentionRecord, 0, len(records))
	for _, r := range records {
		converted = append(converted, recordToIntention(r))
	}
	w.mu.Lock()
	w.records = converted
	w.mu.Unlock()
}

// Records returns the current window, newest first.
func (w *Window) Records() []models.IntentionRecord {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]models.IntentionRecord, len(w.records))
	copy(out, w.records)
	return out
}

func recordToIntention(r gateway.Record) models.IntentionRecord {
	text, _ := r.Fields["text"].(string)
	uid, _ := r.Fields["authorUid"].(string)
	name, _ := r.Fields["authorName"].(string)
	email, _ := r.Fields["authorEmail"].(string)

	rec := models.IntentionRecord{
		ID:          r.ID,
		Text:        text,
		AuthorUID:   uid,
		AuthorName:  name,
		AuthorEmail: email,
	}
	if ts := gateway.FieldTime(r.Fields, gateway.CreatedAtField); !ts.IsZero() {
		rec.CreatedAt = &ts
	} else if !r.CreateTime.IsZero() {
		created := r.CreateTime
		rec.CreatedAt = &created
	}
	return rec
}

// DisplayTime formats a record's timestamp for the board. Records whose
// server timestamp has not been confirmed yet show a placeholder.
func DisplayTime(rec models.IntentionRecord) string {
	if rec.CreatedAt == nil {
		return "just now"
	}
	return rec.CreatedAt.Format("Jan 2, 3:04 PM")
}
