package httpapi

import (
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// SetupRouter wires all API routes. Vault and 2FA management routes require
// a bearer token; registration, login, share reveal and the generator are
// public.
func (h *Handler) SetupRouter() *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Get("/health", h.Health)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/register", h.Register)
		r.Post("/auth/login", h.Login)

		r.Group(func(r chi.Router) {
			r.Use(h.authMiddleware)
			r.Post("/auth/2fa/setup", h.SetupTwoFactor)
			r.Post("/auth/2fa/enable", h.EnableTwoFactor)

			r.Post("/vault", h.CreateEntry)
			r.Get("/vault", h.ListEntries)
			r.Post("/vault/{id}/attachment", h.PresignAttachmentUpload)
			r.Get("/vault/{id}/attachment", h.PresignAttachmentDownload)
			r.Post("/vault/check-health", h.CheckHealth)
		})

		r.Post("/share", h.CreateShare)
		r.Get("/share/{uuid}", h.RevealShare)

		r.Get("/generator", h.GeneratePassword)
	})

	return r
}
