package router

import (
	"net/http"

	"session-cart/internal/handler"
	"session-cart/internal/middleware"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

// Options holds the cross-cutting settings applied to every route.
type Options struct {
	AllowOrigins []string
	Cookie       middleware.CookieConfig
}

// New creates a new HTTP router with all routes and middleware configured.
func New(
	cartHandler *handler.CartHandler,
	productHandler *handler.ProductHandler,
	sessions middleware.SessionLoader,
	opts Options,
	logger zerolog.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Recovery -> RequestID -> RealIP -> Logging -> CORS
	r.Use(middleware.Recovery(logger))
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logging(logger))
	r.Use(middleware.CORS(opts.AllowOrigins))

	r.Get("/health", handler.Health)

	r.Route("/api", func(r chi.Router) {
		r.Get("/products", productHandler.List)

		r.Route("/cart", func(r chi.Router) {
			r.Use(middleware.Session(sessions, opts.Cookie, logger))

			r.Get("/", cartHandler.Get)
			r.Post("/add", cartHandler.Add)
			r.Post("/update", cartHandler.Update)
			r.Post("/remove", cartHandler.Remove)
			r.Post("/clear", cartHandler.Clear)
			r.Post("/apply-discount", cartHandler.ApplyDiscount)
		})
	})

	return r
}
