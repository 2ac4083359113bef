package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/kudosboards/kudos/backend/internal/setup"
	mw "github.com/kudosboards/kudos/shared/middleware"
	"github.com/kudosboards/kudos/shared/middleware/metrics"
	"github.com/kudosboards/kudos/shared/utils"
)

// New creates the chi router with all the routes.
// Reads are open to anonymous callers; the services decide what they may see.
func New(deps *setup.Dependencies) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(metrics.Middleware)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.Config.Public.CorsOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		ExposedHeaders:   []string{"Location"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Use(mw.SecurityHeaders(deps.Config.Public.HTTP.SecureCookies))

	h := deps.Handler

	r.Get("/health", h.Health)
	r.Get("/ready", h.Ready)
	r.Handle("/metrics", metrics.Handler())

	r.Route("/v1", func(r chi.Router) {
		r.Use(deps.AuthMiddleware.OptionalAuth())
		// per client IP, shared by all write endpoints
		r.Use(mw.WritesOnly(mw.RateLimit(deps.RateLimiter, utils.GetIP)))

		r.Get("/boards", h.GetBoards)
		r.Post("/boards", h.CreateBoard)

		r.Route("/boards/{boardId}", func(r chi.Router) {
			r.Get("/", h.GetBoard)
			r.Put("/members/{userId}", h.AddMember)

			r.Post("/messages", h.CreateMessage)
			r.Get("/messages/{messageId}", h.GetMessage)
			r.Post("/messages/{messageId}", h.LinkMessage)
			r.Put("/messages/{messageId}", h.UpdateMessage)
			r.Delete("/messages/{messageId}", h.DeleteMessage)
		})
	})

	return r
}
