package membership

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes registers the membership routes on the given router
func (h *Handler) Routes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	// Public routes
	r.Post("/registration", h.Register)
	r.Post("/login", h.Login)

	// Protected routes
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware)
		r.Get("/profile", h.GetProfile)
		r.Put("/profile/update", h.UpdateProfile)
		r.Put("/profile/image", h.UploadProfileImage)
	})
}
