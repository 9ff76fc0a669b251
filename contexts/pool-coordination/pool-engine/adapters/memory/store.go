package memory

import (
	"context"
	"sync"
	"time"

	"fundpool/contexts/pool-coordination/pool-engine/domain/entities"
	"fundpool/contexts/pool-coordination/pool-engine/ports"

	"github.com/google/uuid"
)

type outboxRecord struct {
	message   ports.OutboxMessage
	published bool
}

// Store is the in-memory state store used by tests and local runs. It backs
// the repository, outbox, clock, and id-generator ports behind one mutex so
// the aggregate is observed and replaced atomically, matching the host's
// load/save bracketing.
type Store struct {
	mu     sync.RWMutex
	pool   entities.Pool
	outbox []outboxRecord
	now    time.Time
}

func NewStore() *Store {
	return &Store{pool: entities.NewPool()}
}

// SetNow pins the clock for deterministic phase-gate tests.
func (s *Store) SetNow(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

func (s *Store) Now() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.now.IsZero() {
		return time.Now().UTC()
	}
	return s.now
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

func (s *Store) Load(_ context.Context) (entities.Pool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pool.Clone(), nil
}

func (s *Store) Save(_ context.Context, pool entities.Pool, outbox []ports.OutboxMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pool = pool.Clone()
	for _, message := range outbox {
		s.outbox = append(s.outbox, outboxRecord{message: message})
	}
	return nil
}

func (s *Store) ListPendingOutbox(_ context.Context, limit int) ([]ports.OutboxMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	pending := make([]ports.OutboxMessage, 0, limit)
	for _, record := range s.outbox {
		if record.published {
			continue
		}
		pending = append(pending, record.message)
		if len(pending) == limit {
			break
		}
	}
	return pending, nil
}

func (s *Store) MarkOutboxPublished(_ context.Context, outboxID string, _ time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.outbox {
		if s.outbox[i].message.OutboxID == outboxID {
			s.outbox[i].published = true
			return nil
		}
	}
	return nil
}

// OutboxEventTypes lists recorded event types in append order, for tests.
func (s *Store) OutboxEventTypes() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	types := make([]string, 0, len(s.outbox))
	for _, record := range s.outbox {
		types = append(types, record.message.EventType)
	}
	return types
}
