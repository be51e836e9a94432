package middleware

import (
	"context"
	"net/http"
	"time"

	"session-cart/internal/session"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// SessionLoader loads session state by ID.
type SessionLoader interface {
	Load(ctx context.Context, id uuid.UUID) (*session.Session, error)
}

// CookieConfig describes the session cookie.
type CookieConfig struct {
	Name   string
	Secure bool
	MaxAge time.Duration
}

// Session resolves the session cookie, loads its state and stores it in the
// request context. A missing or malformed cookie starts a new session.
func Session(loader SessionLoader, cookie CookieConfig, logger zerolog.Logger) func(http.Handler) http.Handler {
	logger = logger.With().Str("middleware", "session").Logger()

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, ok := sessionID(r, cookie.Name)
			if !ok {
				id = uuid.New()
				logger.Debug().Str("session_id", id.String()).Msg("issuing new session id")
			}

			sess, err := loader.Load(r.Context(), id)
			if err != nil {
				logger.Error().Err(err).Str("session_id", id.String()).Msg("failed to load session")
				writeInternalError(w)
				return
			}

			http.SetCookie(w, &http.Cookie{
				Name:     cookie.Name,
				Value:    id.String(),
				Path:     "/",
				MaxAge:   int(cookie.MaxAge.Seconds()),
				HttpOnly: true,
				Secure:   cookie.Secure,
				SameSite: http.SameSiteLaxMode,
			})

			next.ServeHTTP(w, r.WithContext(session.NewContext(r.Context(), sess)))
		})
	}
}

func sessionID(r *http.Request, name string) (uuid.UUID, bool) {
	c, err := r.Cookie(name)
	if err != nil {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(c.Value)
	if err != nil || id == uuid.Nil {
		return uuid.Nil, false
	}
	return id, true
}
