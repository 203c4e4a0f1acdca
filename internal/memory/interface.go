package memory

import (
	"context"
	"time"
)

// Record is one remembered conversation.
type Record struct {
	Timestamp  time.Time `json:"timestamp"`
	Transcript string    `json:"transcript"`
	Speakers   int       `json:"speakers"`
	Duration   float64   `json:"duration"`
	Summary    string    `json:"summary"`
}

// Entry is what the caller knows about a finished analysis.
type Entry struct {
	Transcript  string
	NumSpeakers int
	Duration    float64
}

// Store keeps the most recent conversations, oldest evicted first.
type Store interface {
	// Append summarizes e, adds it and persists the list. Persistence
	// failures are returned but the in-memory list is still updated.
	Append(ctx context.Context, e Entry) (Record, error)
	// Recent returns up to k records, most recent last.
	Recent(k int) []Record
	// Summaries returns the summaries of Recent(k).
	Summaries(k int) []string
	All() []Record
}

// Persister loads and saves the whole record list.
type Persister interface {
	Load() ([]Record, error)
	Save(records []Record) error
}
