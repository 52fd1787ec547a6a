package ledger

import "errors"

var (
	ErrInvalidAmount     = errors.New("amount must be a positive number")
	ErrAmountTooLarge    = errors.New("amount exceeds the top-up ceiling")
	ErrInsufficientFunds = errors.New("insufficient balance")
	ErrBalanceNotFound   = errors.New("balance not found")
	// ErrNegativeBalance guards the store against a write that would
	// leave a balance below zero; callers should never trigger it.
	ErrNegativeBalance = errors.New("balance would become negative")
	// ErrInvoiceExhausted is returned when invoice generation keeps
	// colliding with existing invoice numbers.
	ErrInvoiceExhausted = errors.New("could not generate a unique invoice number")
)
