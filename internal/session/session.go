// Package session holds the per-request session state handed to cart handlers.
package session

import (
	"context"
	"fmt"

	"session-cart/internal/cart"
	"session-cart/internal/model"
	"session-cart/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Session is the state of one client session for the duration of a request.
type Session struct {
	ID       uuid.UUID
	Cart     *cart.Cart
	Discount model.Discount
	IsNew    bool
}

// New returns an empty session.
func New(id uuid.UUID) *Session {
	return &Session{
		ID:    id,
		Cart:  cart.New(),
		IsNew: true,
	}
}

// ClearDiscount removes any active discount.
func (s *Session) ClearDiscount() {
	s.Discount = model.Discount{}
}

// Record converts the session into its persisted form.
func (s *Session) Record() *model.SessionRecord {
	record := &model.SessionRecord{
		ID:    s.ID,
		Items: s.Cart.Items(),
	}
	if !s.Discount.IsZero() {
		discount := s.Discount
		record.Discount = &discount
	}
	return record
}

// FromRecord rebuilds a session from its persisted form.
func FromRecord(record *model.SessionRecord) *Session {
	s := &Session{
		ID:   record.ID,
		Cart: cart.FromItems(record.Items),
	}
	if record.Discount != nil {
		s.Discount = *record.Discount
	}
	return s
}

// Manager loads and stores sessions through a repository.
type Manager struct {
	repo   repository.SessionRepository
	logger zerolog.Logger
}

// NewManager creates a session manager.
func NewManager(repo repository.SessionRepository, logger zerolog.Logger) *Manager {
	return &Manager{
		repo:   repo,
		logger: logger.With().Str("component", "session-manager").Logger(),
	}
}

// Load returns the stored session, or a new empty one when none exists.
func (m *Manager) Load(ctx context.Context, id uuid.UUID) (*Session, error) {
	record, err := m.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	if record == nil {
		m.logger.Debug().Str("session_id", id.String()).Msg("starting new session")
		return New(id), nil
	}
	return FromRecord(record), nil
}

// Save persists the session state.
func (m *Manager) Save(ctx context.Context, s *Session) error {
	if err := m.repo.Save(ctx, s.Record()); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	s.IsNew = false
	return nil
}

type contextKey struct{}

// NewContext returns a context carrying the session.
func NewContext(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, contextKey{}, s)
}

// FromContext returns the session stored in ctx, if any.
func FromContext(ctx context.Context) (*Session, bool) {
	s, ok := ctx.Value(contextKey{}).(*Session)
	return s, ok && s != nil
}
