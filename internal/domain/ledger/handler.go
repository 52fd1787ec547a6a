package ledger

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/nusapay/nusapay-api/internal/domain/information"
	"github.com/nusapay/nusapay-api/internal/domain/membership"
	"github.com/nusapay/nusapay-api/internal/middleware"
	"github.com/nusapay/nusapay-api/internal/pkg/response"
	"github.com/nusapay/nusapay-api/internal/pkg/validator"
)

// Handler handles ledger HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates ledger handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// GetBalance handles GET /balance
func (h *Handler) GetBalance(w http.ResponseWriter, r *http.Request) {
	email := middleware.GetEmail(r.Context())

	balance, err := h.service.Balance(r.Context(), email)
	if err != nil {
		switch {
		case errors.Is(err, membership.ErrUserNotFound):
			response.NotFound(w, "User not found")
		case errors.Is(err, ErrBalanceNotFound):
			response.NotFound(w, "Balance not found for this user")
		default:
			log.Error().Err(err).Str("email", email).Msg("balance fetch failed")
			response.Internal(w)
		}
		return
	}

	response.OK(w, "Get Balance successful", BalanceResponse{Balance: balance})
}

// TopUp handles POST /topup
func (h *Handler) TopUp(w http.ResponseWriter, r *http.Request) {
	var req TopUpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Validation(w, "Parameter amount must be a number greater than zero")
		return
	}

	email := middleware.GetEmail(r.Context())
	newBalance, err := h.service.TopUp(r.Context(), email, req.Amount)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidAmount):
			response.Validation(w, "Parameter amount must be a number greater than zero")
		case errors.Is(err, ErrAmountTooLarge):
			response.Validation(w, "Parameter amount exceeds the maximum top-up")
		case errors.Is(err, membership.ErrUserNotFound):
			response.NotFound(w, "User not found")
		default:
			log.Error().Err(err).Str("email", email).Msg("top-up failed")
			response.Internal(w)
		}
		return
	}

	response.OK(w, "Top Up Balance successful", BalanceResponse{Balance: newBalance})
}

// Pay handles POST /transaction
func (h *Handler) Pay(w http.ResponseWriter, r *http.Request) {
	var req PayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Validation(w, "Invalid JSON body")
		return
	}

	if msg := validator.Validate(&req); msg != "" {
		response.Validation(w, msg)
		return
	}

	email := middleware.GetEmail(r.Context())
	txn, svc, err := h.service.Pay(r.Context(), email, req.ServiceCode)
	if err != nil {
		switch {
		case errors.Is(err, information.ErrServiceNotFound):
			response.Validation(w, "Service not found")
		case errors.Is(err, membership.ErrUserNotFound), errors.Is(err, ErrBalanceNotFound):
			response.NotFound(w, "User not found")
		case errors.Is(err, ErrInsufficientFunds):
			response.RuleViolation(w, "Insufficient balance for this transaction")
		default:
			log.Error().Err(err).Str("email", email).Str("service_code", req.ServiceCode).Msg("payment failed")
			response.Internal(w)
		}
		return
	}

	response.OK(w, "Transaction successful", NewPaymentResponse(txn, svc.ServiceName))
}

// History handles GET /transaction/history
func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	limit, offset, ok := parsePagination(w, r)
	if !ok {
		return
	}

	email := middleware.GetEmail(r.Context())
	transactions, err := h.service.History(r.Context(), email, limit, offset)
	if err != nil {
		if errors.Is(err, membership.ErrUserNotFound) {
			response.NotFound(w, "User not found")
			return
		}
		log.Error().Err(err).Str("email", email).Msg("history fetch failed")
		response.Internal(w)
		return
	}

	response.OK(w, "Get History successful", NewHistoryResponse(transactions, limit, offset))
}

// parsePagination reads limit/offset query params. A missing limit
// means "all rows"; offset defaults to zero.
func parsePagination(w http.ResponseWriter, r *http.Request) (*int, int, bool) {
	var limit *int
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			response.Validation(w, "Parameter limit must be a non-negative number")
			return nil, 0, false
		}
		limit = &n
	}

	offset := 0
	if raw := r.URL.Query().Get("offset"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			response.Validation(w, "Parameter offset must be a non-negative number")
			return nil, 0, false
		}
		offset = n
	}

	return limit, offset, true
}
