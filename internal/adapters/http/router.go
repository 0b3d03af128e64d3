package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/nestfeed/server/internal/application"
)

// Handler is the HTTP adapter entrypoint for auth use-cases.
// It depends on the application service alone; everything stateful
// sits behind that boundary.
type Handler struct {
	service    *application.Service
	refreshTTL time.Duration
	devMode    bool
}

func NewHandler(service *application.Service, refreshTTL time.Duration, devMode bool) *Handler {
	return &Handler{
		service:    service,
		refreshTTL: refreshTTL,
		devMode:    devMode,
	}
}

// NewRouter registers the auth routes and middleware stack.
// Centralizing routes here keeps error mapping and auth behavior
// consistent across endpoints.
func NewRouter(handler *Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(requestIDMiddleware)
	r.Use(recoverMiddleware)
	r.Use(loggingMiddleware)

	r.Get("/healthz", handler.healthz)
	r.Get("/readyz", handler.readyz)

	r.Route("/auth/v1", func(r chi.Router) {
		r.Post("/register", handler.register)
		r.Post("/login", handler.login)
		r.Post("/logout", handler.logout)
		r.Get("/refresh", handler.refresh)
		r.Get("/activate/{token}", handler.activate)
		r.Post("/password/forgot", handler.forgotPassword)
		r.Post("/password/reset/{token}", handler.resetPassword)

		r.Group(func(r chi.Router) {
			r.Use(handler.authMiddleware)
			r.Get("/me", handler.me)
		})
	})

	return r
}
