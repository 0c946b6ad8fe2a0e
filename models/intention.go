package models

import "time"

// IntentionRecord is one community prayer intention. CreatedAt is the
// server-assigned timestamp; nil means the write has not been confirmed yet
// and the feed shows a placeholder instead of a date.
type IntentionRecord struct {
	ID          string     `json:"id"`
	Text        string     `json:"text"`
	AuthorUID   string     `json:"authorUid"`
	AuthorName  string     `json:"authorName"`
	AuthorEmail string     `json:"authorEmail"`
	CreatedAt   *time.Time `json:"createdAt"`
}

type IntentionCreate struct {
	Text string `json:"text"`
}
