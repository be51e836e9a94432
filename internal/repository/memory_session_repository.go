package repository

import (
	"context"
	"sync"
	"time"

	"session-cart/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// memorySessionRepository keeps sessions in process memory.
type memorySessionRepository struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]model.SessionRecord
	ttl      time.Duration
	now      func() time.Time
	logger   zerolog.Logger
}

// NewMemorySessionRepository creates an in-memory session repository.
// Expired sessions are dropped lazily when read.
func NewMemorySessionRepository(ttl time.Duration, logger zerolog.Logger) SessionRepository {
	return newMemorySessionRepository(ttl, time.Now, logger)
}

func newMemorySessionRepository(ttl time.Duration, now func() time.Time, logger zerolog.Logger) *memorySessionRepository {
	return &memorySessionRepository{
		sessions: make(map[uuid.UUID]model.SessionRecord),
		ttl:      ttl,
		now:      now,
		logger:   logger.With().Str("repository", "session-memory").Logger(),
	}
}

// Get retrieves a session by ID.
func (r *memorySessionRepository) Get(ctx context.Context, id uuid.UUID) (*model.SessionRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	record, exists := r.sessions[id]
	if !exists {
		return nil, nil
	}

	if !r.now().Before(record.ExpiresAt) {
		delete(r.sessions, id)
		r.logger.Debug().Str("session_id", id.String()).Msg("session expired")
		return nil, nil
	}

	return cloneRecord(record), nil
}

// Save creates or replaces a session and extends its expiry.
func (r *memorySessionRepository) Save(ctx context.Context, record *model.SessionRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	stored := *cloneRecord(*record)
	if existing, exists := r.sessions[record.ID]; exists {
		stored.CreatedAt = existing.CreatedAt
	} else {
		stored.CreatedAt = now
	}
	stored.UpdatedAt = now
	stored.ExpiresAt = now.Add(r.ttl)

	r.sessions[record.ID] = stored

	record.CreatedAt = stored.CreatedAt
	record.UpdatedAt = stored.UpdatedAt
	record.ExpiresAt = stored.ExpiresAt

	return nil
}

// Delete removes a session.
func (r *memorySessionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.sessions, id)
	return nil
}

func cloneRecord(record model.SessionRecord) *model.SessionRecord {
	clone := record
	clone.Items = make([]model.CartItem, len(record.Items))
	copy(clone.Items, record.Items)
	if record.Discount != nil {
		discount := *record.Discount
		clone.Discount = &discount
	}
	return &clone
}
