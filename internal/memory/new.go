package memory

import (
	"context"
	"sync"
	"time"

	"github.com/nguyentantai21042004/skill-flow/internal/gemini"
	"github.com/nguyentantai21042004/skill-flow/internal/logger"
)

const DefaultCapacity = 5

type implStore struct {
	mu        sync.Mutex
	records   []Record
	capacity  int
	persister Persister
	generator gemini.Generator
	logger    logger.Logger
	now       func() time.Time
}

// New loads the persisted records and returns a Store holding at most capacity of them.
// A missing or unreadable file yields an empty store.
func New(ctx context.Context, p Persister, gen gemini.Generator, capacity int, log logger.Logger) Store {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}

	s := &implStore{
		capacity:  capacity,
		persister: p,
		generator: gen,
		logger:    log,
		now:       time.Now,
	}

	records, err := p.Load()
	if err != nil {
		log.Warn(ctx, "Starting with empty conversation memory: %v", err)
		records = nil
	}
	s.records = lastN(records, capacity)

	log.Debug(ctx, "Loaded %d conversation memory records", len(s.records))
	return s
}
