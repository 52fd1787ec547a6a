package ledger

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// invoiceAttempts bounds regeneration when a payment invoice number
// collides with an existing one.
const invoiceAttempts = 3

// Store is the ledger persistence contract. Every balance mutation is a
// single database transaction holding a row lock across the
// read-modify-write, so concurrent callers cannot double-spend.
type Store interface {
	// GetBalance returns the user's balance, ErrBalanceNotFound when no
	// row exists yet.
	GetBalance(ctx context.Context, userID uuid.UUID) (int64, error)

	// TopUp credits the balance (creating a zero row first if absent)
	// and appends a TOPUP transaction. Returns the new balance.
	TopUp(ctx context.Context, userID uuid.UUID, amount int64, invoiceNumber string) (int64, error)

	// Pay debits the tariff and appends a PAYMENT transaction carrying
	// an invoice number from genInvoice. ErrBalanceNotFound when the
	// user has no balance row, ErrInsufficientFunds when balance <
	// tariff.
	Pay(ctx context.Context, userID uuid.UUID, serviceCode, serviceName string, tariff int64, genInvoice func() string) (*Transaction, error)

	// History lists the user's transactions, newest first. A nil limit
	// returns all rows; offset always applies.
	History(ctx context.Context, userID uuid.UUID, limit *int, offset int) ([]Transaction, error)
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates the Postgres-backed ledger store
func NewRepository(db *sqlx.DB) Store {
	return &repository{db: db}
}

func (r *repository) GetBalance(ctx context.Context, userID uuid.UUID) (int64, error) {
	var balance int64
	err := r.db.GetContext(ctx, &balance, `SELECT balance FROM balances WHERE user_id = $1`, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrBalanceNotFound
		}
		return 0, err
	}
	return balance, nil
}

func (r *repository) TopUp(ctx context.Context, userID uuid.UUID, amount int64, invoiceNumber string) (int64, error) {
	tx, err := r.beginTx(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	// Lazily create the balance row on first top-up
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO balances (user_id, balance)
		VALUES ($1, 0)
		ON CONFLICT (user_id) DO NOTHING
	`, userID); err != nil {
		return 0, err
	}

	balance, err := lockBalance(ctx, tx, userID)
	if err != nil {
		return 0, err
	}

	newBalance := balance + amount
	if err := updateBalance(ctx, tx, userID, newBalance); err != nil {
		return 0, err
	}

	txn := &Transaction{
		ID:            uuid.New(),
		UserID:        userID,
		ServiceCode:   TopUpServiceCode,
		Type:          TypeTopUp,
		Amount:        amount,
		InvoiceNumber: invoiceNumber,
		Description:   "Top Up balance",
		CreatedOn:     time.Now(),
	}
	if err := insertTransaction(ctx, tx, txn); err != nil {
		return 0, err
	}

	return newBalance, tx.Commit()
}

func (r *repository) Pay(ctx context.Context, userID uuid.UUID, serviceCode, serviceName string, tariff int64, genInvoice func() string) (*Transaction, error) {
	// A colliding invoice number aborts the whole transaction, so the
	// retry wraps the transaction rather than the single insert.
	for attempt := 0; attempt < invoiceAttempts; attempt++ {
		txn, err := r.payOnce(ctx, userID, serviceCode, serviceName, tariff, genInvoice())
		if errors.Is(err, errInvoiceTaken) {
			continue
		}
		return txn, err
	}
	return nil, ErrInvoiceExhausted
}

var errInvoiceTaken = errors.New("invoice number already used")

func (r *repository) payOnce(ctx context.Context, userID uuid.UUID, serviceCode, serviceName string, tariff int64, invoiceNumber string) (*Transaction, error) {
	tx, err := r.beginTx(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	balance, err := lockBalance(ctx, tx, userID)
	if err != nil {
		return nil, err
	}

	if balance < tariff {
		return nil, ErrInsufficientFunds
	}

	if err := updateBalance(ctx, tx, userID, balance-tariff); err != nil {
		return nil, err
	}

	txn := &Transaction{
		ID:            uuid.New(),
		UserID:        userID,
		ServiceCode:   serviceCode,
		Type:          TypePayment,
		Amount:        tariff,
		InvoiceNumber: invoiceNumber,
		Description:   serviceName,
		CreatedOn:     time.Now(),
	}
	if err := insertTransaction(ctx, tx, txn); err != nil {
		return nil, err
	}

	return txn, tx.Commit()
}

func (r *repository) History(ctx context.Context, userID uuid.UUID, limit *int, offset int) ([]Transaction, error) {
	query := `
		SELECT id, user_id, service_code, transaction_type, total_amount, invoice_number, description, created_on
		FROM transactions
		WHERE user_id = $1
		ORDER BY created_on DESC
	`

	var transactions []Transaction
	var err error
	if limit != nil {
		query += ` LIMIT $2 OFFSET $3`
		err = r.db.SelectContext(ctx, &transactions, query, userID, *limit, offset)
	} else {
		query += ` OFFSET $2`
		err = r.db.SelectContext(ctx, &transactions, query, userID, offset)
	}
	if err != nil {
		return nil, fmt.Errorf("ledger history: %w", err)
	}
	return transactions, nil
}

func (r *repository) beginTx(ctx context.Context) (*sqlx.Tx, error) {
	return r.db.BeginTxx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
}

func lockBalance(ctx context.Context, tx *sqlx.Tx, userID uuid.UUID) (int64, error) {
	var balance int64
	err := tx.GetContext(ctx, &balance, `SELECT balance FROM balances WHERE user_id = $1 FOR UPDATE`, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrBalanceNotFound
		}
		return 0, err
	}
	return balance, nil
}

func updateBalance(ctx context.Context, tx *sqlx.Tx, userID uuid.UUID, balance int64) error {
	if balance < 0 {
		return ErrNegativeBalance
	}
	_, err := tx.ExecContext(ctx, `UPDATE balances SET balance = $1, updated_at = now() WHERE user_id = $2`, balance, userID)
	return err
}

func insertTransaction(ctx context.Context, tx *sqlx.Tx, t *Transaction) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO transactions (id, user_id, service_code, transaction_type, total_amount, invoice_number, description, created_on)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, t.ID, t.UserID, t.ServiceCode, string(t.Type), t.Amount, t.InvoiceNumber, t.Description, t.CreatedOn)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return errInvoiceTaken
		}
		return err
	}
	return nil
}
