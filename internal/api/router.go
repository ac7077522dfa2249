// internal/api/router.go
package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/hethus/Bank-Control-API/internal/api/handler"
	"github.com/hethus/Bank-Control-API/internal/auth"
)

// NewRouter sets up and returns a new HTTP router. Everything except user
// registration, login and the health check sits behind the bearer-token
// authenticator.
func NewRouter(
	userHandler *handler.UserHandler,
	bankHandler *handler.BankHandler,
	creditHandler *handler.CreditHandler,
	historicHandler *handler.HistoricHandler,
	tokens *auth.TokenManager,
	logger *slog.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Global middlewares
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(handler.DefaultTimeout))

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	// Public endpoints
	r.Post("/users", userHandler.Create)
	r.Post("/login", userHandler.Login)

	// Secured endpoints
	r.Group(func(r chi.Router) {
		r.Use(auth.Authenticator(tokens))

		// Registered directly rather than via Route: mounting a subrouter
		// at /users would swallow the public POST /users above.
		r.Get("/users/{id}", userHandler.FindOne)
		r.Patch("/users/{id}", userHandler.Update)
		r.Delete("/users/{id}", userHandler.Delete)

		r.Route("/banks", func(r chi.Router) {
			r.Post("/{email}", bankHandler.Create)
			r.Get("/all/{email}", bankHandler.FindAll)
			r.Get("/{id}", bankHandler.FindOne)
			r.Patch("/{id}", bankHandler.Update)
			r.Delete("/{id}", bankHandler.SoftDelete)
			r.Patch("/{bankID}/alive", bankHandler.Reactivate)

			r.Route("/{bankID}/credit", func(r chi.Router) {
				r.Post("/", creditHandler.Create)
				r.Patch("/{creditID}", creditHandler.Update)
				r.Delete("/{creditID}", creditHandler.SoftDelete)
				r.Patch("/{creditID}/alive", creditHandler.Reactivate)
			})
		})

		r.Get("/historic/{email}", historicHandler.FindAll)
	})

	return r
}
