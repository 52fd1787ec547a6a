package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/nusapay/nusapay-api/internal/domain/information"
	"github.com/nusapay/nusapay-api/internal/pkg/invoice"
)

// UserDirectory resolves the acting user from the token's email claim.
// Satisfied by membership.Repository.
type UserDirectory interface {
	IDByEmail(ctx context.Context, email string) (uuid.UUID, error)
}

// Catalog resolves payable services. Satisfied by the information
// repository.
type Catalog interface {
	ServiceByCode(ctx context.Context, code string) (*information.Service, error)
}

// Service is the transaction engine: it validates balance-changing
// operations and applies them through the store.
type Service struct {
	store    Store
	users    UserDirectory
	catalog  Catalog
	topUpMax int64 // zero disables the ceiling
}

// NewService creates the transaction engine
func NewService(store Store, users UserDirectory, catalog Catalog, topUpMax int64) *Service {
	return &Service{
		store:    store,
		users:    users,
		catalog:  catalog,
		topUpMax: topUpMax,
	}
}

// Balance returns the current balance for the authenticated email
func (s *Service) Balance(ctx context.Context, email string) (int64, error) {
	userID, err := s.users.IDByEmail(ctx, email)
	if err != nil {
		return 0, err
	}
	return s.store.GetBalance(ctx, userID)
}

// TopUp credits the user's balance and returns the new balance
func (s *Service) TopUp(ctx context.Context, email string, amount int64) (int64, error) {
	if amount <= 0 {
		return 0, ErrInvalidAmount
	}
	if s.topUpMax > 0 && amount > s.topUpMax {
		return 0, ErrAmountTooLarge
	}

	userID, err := s.users.IDByEmail(ctx, email)
	if err != nil {
		return 0, err
	}

	newBalance, err := s.store.TopUp(ctx, userID, amount, invoice.TopUp(userID, time.Now()))
	if err != nil {
		return 0, err
	}

	log.Info().
		Str("user_id", userID.String()).
		Int64("amount", amount).
		Int64("balance", newBalance).
		Msg("top-up applied")
	return newBalance, nil
}

// Pay debits the service tariff and returns the appended transaction
// together with the service it paid for.
func (s *Service) Pay(ctx context.Context, email, serviceCode string) (*Transaction, *information.Service, error) {
	svc, err := s.catalog.ServiceByCode(ctx, serviceCode)
	if err != nil {
		return nil, nil, err
	}

	userID, err := s.users.IDByEmail(ctx, email)
	if err != nil {
		return nil, nil, err
	}

	txn, err := s.store.Pay(ctx, userID, svc.ServiceCode, svc.ServiceName, svc.ServiceTariff, func() string {
		return invoice.Payment(time.Now())
	})
	if err != nil {
		return nil, nil, err
	}

	log.Info().
		Str("user_id", userID.String()).
		Str("service_code", svc.ServiceCode).
		Int64("amount", svc.ServiceTariff).
		Str("invoice", txn.InvoiceNumber).
		Msg("payment applied")
	return txn, svc, nil
}

// History lists the user's transactions, newest first
func (s *Service) History(ctx context.Context, email string, limit *int, offset int) ([]Transaction, error) {
	userID, err := s.users.IDByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	return s.store.History(ctx, userID, limit, offset)
}
