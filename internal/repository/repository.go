package repository

import (
	"context"

	"session-cart/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// SessionRepository defines the interface for session state persistence.
type SessionRepository interface {
	// Get retrieves a session by ID.
	// Returns nil without error when the session does not exist or has expired.
	Get(ctx context.Context, id uuid.UUID) (*model.SessionRecord, error)

	// Save creates or replaces a session and extends its expiry.
	Save(ctx context.Context, record *model.SessionRecord) error

	// Delete removes a session. Deleting an unknown session is not an error.
	Delete(ctx context.Context, id uuid.UUID) error
}

// DB is the subset of pgxpool.Pool used by the PostgreSQL repository.
type DB interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}
