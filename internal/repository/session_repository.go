package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"session-cart/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

// sessionRepository implements SessionRepository using PostgreSQL.
type sessionRepository struct {
	db     DB
	ttl    time.Duration
	logger zerolog.Logger
}

// NewSessionRepository creates a new PostgreSQL-backed session repository.
func NewSessionRepository(db DB, ttl time.Duration, logger zerolog.Logger) SessionRepository {
	return &sessionRepository{
		db:     db,
		ttl:    ttl,
		logger: logger.With().Str("repository", "session").Logger(),
	}
}

// Get retrieves a session by ID, ignoring expired rows.
func (r *sessionRepository) Get(ctx context.Context, id uuid.UUID) (*model.SessionRecord, error) {
	query := `
		SELECT cart, discount, created_at, updated_at, expires_at
		FROM sessions
		WHERE id = $1 AND expires_at > NOW()
	`

	var (
		cartJSON     []byte
		discountJSON []byte
		record       = model.SessionRecord{ID: id}
	)
	err := r.db.QueryRow(ctx, query, id).Scan(
		&cartJSON,
		&discountJSON,
		&record.CreatedAt,
		&record.UpdatedAt,
		&record.ExpiresAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Str("session_id", id.String()).Msg("session not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("session_id", id.String()).Msg("failed to query session")
		return nil, fmt.Errorf("failed to query session: %w", err)
	}

	if err := json.Unmarshal(cartJSON, &record.Items); err != nil {
		r.logger.Error().Err(err).Str("session_id", id.String()).Msg("failed to decode session cart")
		return nil, fmt.Errorf("failed to decode session cart: %w", err)
	}

	if len(discountJSON) > 0 {
		var discount model.Discount
		if err := json.Unmarshal(discountJSON, &discount); err != nil {
			r.logger.Error().Err(err).Str("session_id", id.String()).Msg("failed to decode session discount")
			return nil, fmt.Errorf("failed to decode session discount: %w", err)
		}
		record.Discount = &discount
	}

	return &record, nil
}

// Save upserts a session and extends its expiry.
func (r *sessionRepository) Save(ctx context.Context, record *model.SessionRecord) error {
	items := record.Items
	if items == nil {
		items = []model.CartItem{}
	}

	cartJSON, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to encode session cart: %w", err)
	}

	var discountJSON *string
	if record.Discount != nil {
		raw, err := json.Marshal(record.Discount)
		if err != nil {
			return fmt.Errorf("failed to encode session discount: %w", err)
		}
		s := string(raw)
		discountJSON = &s
	}

	query := `
		INSERT INTO sessions (id, cart, discount, expires_at)
		VALUES ($1, $2, $3, NOW() + make_interval(secs => $4))
		ON CONFLICT (id) DO UPDATE
		SET cart = EXCLUDED.cart,
			discount = EXCLUDED.discount,
			updated_at = NOW(),
			expires_at = EXCLUDED.expires_at
		RETURNING created_at, updated_at, expires_at
	`

	err = r.db.QueryRow(ctx, query, record.ID, string(cartJSON), discountJSON, r.ttl.Seconds()).Scan(
		&record.CreatedAt,
		&record.UpdatedAt,
		&record.ExpiresAt,
	)
	if err != nil {
		r.logger.Error().Err(err).Str("session_id", record.ID.String()).Msg("failed to save session")
		return fmt.Errorf("failed to save session: %w", err)
	}

	r.logger.Debug().
		Str("session_id", record.ID.String()).
		Int("item_count", len(items)).
		Msg("session saved")

	return nil
}

// Delete removes a session.
func (r *sessionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM sessions WHERE id = $1`

	if _, err := r.db.Exec(ctx, query, id); err != nil {
		r.logger.Error().Err(err).Str("session_id", id.String()).Msg("failed to delete session")
		return fmt.Errorf("failed to delete session: %w", err)
	}

	return nil
}
