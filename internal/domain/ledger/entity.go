package ledger

import (
	"time"

	"github.com/google/uuid"
)

// TransactionType discriminates ledger entries
type TransactionType string

const (
	TypeTopUp   TransactionType = "TOPUP"
	TypePayment TransactionType = "PAYMENT"
)

// TopUpServiceCode is the sentinel service code recorded on top-up
// transactions.
const TopUpServiceCode = "TOPUP"

// Balance is one row per user, never negative
type Balance struct {
	UserID    uuid.UUID `db:"user_id"`
	Balance   int64     `db:"balance"`
	UpdatedAt time.Time `db:"updated_at"`
}

// Transaction is an append-only ledger entry. Rows are never mutated or
// deleted.
type Transaction struct {
	ID            uuid.UUID       `db:"id"`
	UserID        uuid.UUID       `db:"user_id"`
	ServiceCode   string          `db:"service_code"`
	Type          TransactionType `db:"transaction_type"`
	Amount        int64           `db:"total_amount"`
	InvoiceNumber string          `db:"invoice_number"`
	Description   string          `db:"description"`
	CreatedOn     time.Time       `db:"created_on"`
}
