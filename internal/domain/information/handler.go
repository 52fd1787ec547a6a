package information

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/nusapay/nusapay-api/internal/pkg/response"
)

// Handler handles catalog HTTP requests
type Handler struct {
	repo Repository
}

// NewHandler creates catalog handler
func NewHandler(repo Repository) *Handler {
	return &Handler{repo: repo}
}

// ListBanners handles GET /banner
func (h *Handler) ListBanners(w http.ResponseWriter, r *http.Request) {
	banners, err := h.repo.Banners(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("banner list failed")
		response.Internal(w)
		return
	}

	if len(banners) == 0 {
		response.NotFound(w, "Banner not found")
		return
	}

	response.OK(w, "Success", banners)
}

// ListServices handles GET /services
func (h *Handler) ListServices(w http.ResponseWriter, r *http.Request) {
	services, err := h.repo.Services(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("service list failed")
		response.Internal(w)
		return
	}

	if len(services) == 0 {
		response.NotFound(w, "No services found")
		return
	}

	response.OK(w, "Success", services)
}
