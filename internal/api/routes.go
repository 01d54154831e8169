package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter creates a new router with all routes configured.
// functionPath mounts Submit a second time under a function-routing
// prefix; empty disables the alias.
func NewRouter(h *Handler, functionPath string) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(LoggingMiddleware)
	r.Use(RecoveryMiddleware)

	r.Get("/health", h.Health)

	// Submit checks the method itself so non-POST gets an Allow header.
	r.HandleFunc("/submit", h.Submit)
	if functionPath != "" && functionPath != "/submit" {
		r.HandleFunc(functionPath, h.Submit)
	}

	return r
}
