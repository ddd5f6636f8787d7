package handler

import "github.com/go-chi/chi/v5"

// Register mounts the footprint api on r
func (h *Handler) Register(r chi.Router) {
	r.Get("/healthz", h.Health)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/footprint", h.Score)
		r.Post("/footprint/validate", h.Validate)
		r.Get("/footprint/options", h.Options)
		r.Get("/users/{userID}/footprints", h.History)
		r.Post("/users/{userID}/footprints/update", h.Update)
		r.Get("/users/{userID}/stats", h.Stats)
	})
}
