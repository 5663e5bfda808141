package http //nolint:revive // directory-based package name, imported with alias

import (
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

const (
	requestTimeout = 30 * time.Second
	corsMaxAge     = 300
)

func NewRouter(h *Handler, allowedOrigins []string) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(requestTimeout))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         corsMaxAge,
	}))

	r.Get("/healthz", h.HandleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Get("/settings/public", h.HandlePublicSettings)
		r.Get("/admin/settings/pix", h.HandleGetPixSettings)
		r.Put("/admin/settings/pix", h.HandlePutPixSettings)

		r.Get("/pix", h.HandlePixCharge)
		r.Get("/pix/qr.png", h.HandlePixQR)

		r.Post("/cards/validate", h.HandleValidateCard)
		r.Post("/checkout", h.HandleCheckout)
	})

	return r
}
