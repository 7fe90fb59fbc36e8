package models

import "time"

// Entry is one immutable leaderboard record. Entries are created exactly
// once at submit time and are only ever removed by capacity eviction.
type Entry struct {
	ID         string    `json:"id"`
	PlayerName string    `json:"playerName"`
	GameMode   Mode      `json:"gameMode"`
	Score      int64     `json:"score"`
	Date       time.Time `json:"date"`
}

// Before reports whether e was submitted strictly earlier than other.
// Used for tie-breaking: the earlier submission wins on equal scores.
func (e Entry) Before(other Entry) bool {
	return e.Date.Before(other.Date)
}

// RankedEntry is the query-side projection of an Entry, annotated with its
// 1-based position in the requested view.
type RankedEntry struct {
	PlayerName string    `json:"playerName"`
	Score      int64     `json:"score"`
	Date       time.Time `json:"date"`
	Rank       int       `json:"rank"`
}

// SubmitRequest is the raw, untrusted submission payload. Score arrives as
// a float so that non-integer and non-finite inputs can be rejected or
// clamped by the validator instead of failing JSON decoding.
type SubmitRequest struct {
	PlayerName string  `json:"playerName" validate:"required"`
	GameMode   string  `json:"gameMode" validate:"required"`
	Score      float64 `json:"score"`
}

// ModeBoard pairs a mode with its top ranked entries, used by the
// cross-mode overview.
type ModeBoard struct {
	GameMode Mode          `json:"gameMode"`
	Entries  []RankedEntry `json:"entries"`
}

// SubmitResult is returned to the submitter: the stored entry plus its rank
// in the snapshot taken immediately after the entry's own write.
type SubmitResult struct {
	Entry Entry `json:"entry"`
	Rank  int   `json:"rank"`
}
