package information

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes registers the catalog routes on the given router; all routes require auth
func (h *Handler) Routes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware)
		r.Get("/banner", h.ListBanners)
		r.Get("/services", h.ListServices)
	})
}
