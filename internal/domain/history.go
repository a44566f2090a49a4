package domain

import "time"

// HistoryEntry records one answered question. Entries are immutable once
// written and ordered by insertion time.
type HistoryEntry struct {
	Timestamp time.Time `json:"timestamp"`
	Question  string    `json:"question"`
	Answer    string    `json:"answer"`
}

// CacheEntry stores a previously formatted response, keyed externally by the
// exact literal question text. Entries never expire.
type CacheEntry struct {
	Response  string    `json:"response"`
	Timestamp time.Time `json:"timestamp"`
}
