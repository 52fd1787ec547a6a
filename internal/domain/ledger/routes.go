package ledger

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes registers the ledger routes on the given router; all routes require auth
func (h *Handler) Routes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware)
		r.Get("/balance", h.GetBalance)
		r.Post("/topup", h.TopUp)
		r.Post("/transaction", h.Pay)
		r.Get("/transaction/history", h.History)
	})
}
