package ledger

import "time"

// TopUpRequest for POST /topup
type TopUpRequest struct {
	Amount int64 `json:"top_up_amount" validate:"required,gt=0"`
}

// PayRequest for POST /transaction
type PayRequest struct {
	ServiceCode string `json:"service_code" validate:"required"`
}

// BalanceResponse for GET /balance and POST /topup
type BalanceResponse struct {
	Balance int64 `json:"balance"`
}

// PaymentResponse for POST /transaction
type PaymentResponse struct {
	InvoiceNumber   string    `json:"invoice_number"`
	ServiceCode     string    `json:"service_code"`
	ServiceName     string    `json:"service_name"`
	TransactionType string    `json:"transaction_type"`
	TotalAmount     int64     `json:"total_amount"`
	CreatedOn       time.Time `json:"created_on"`
}

// HistoryRecord is one row in the history listing
type HistoryRecord struct {
	InvoiceNumber   string    `json:"invoice_number"`
	TransactionType string    `json:"transaction_type"`
	Description     string    `json:"description"`
	TotalAmount     int64     `json:"total_amount"`
	CreatedOn       time.Time `json:"created_on"`
}

// HistoryResponse for GET /transaction/history. Limit is the number
// requested or the string "all" when no limit was supplied.
type HistoryResponse struct {
	Offset  int             `json:"offset"`
	Limit   interface{}     `json:"limit"`
	Records []HistoryRecord `json:"records"`
}

// NewPaymentResponse builds the payment payload from a transaction
func NewPaymentResponse(t *Transaction, serviceName string) *PaymentResponse {
	return &PaymentResponse{
		InvoiceNumber:   t.InvoiceNumber,
		ServiceCode:     t.ServiceCode,
		ServiceName:     serviceName,
		TransactionType: string(t.Type),
		TotalAmount:     t.Amount,
		CreatedOn:       t.CreatedOn,
	}
}

// NewHistoryResponse builds the history payload
func NewHistoryResponse(transactions []Transaction, limit *int, offset int) *HistoryResponse {
	records := make([]HistoryRecord, len(transactions))
	for i, t := range transactions {
		records[i] = HistoryRecord{
			InvoiceNumber:   t.InvoiceNumber,
			TransactionType: string(t.Type),
			Description:     t.Description,
			TotalAmount:     t.Amount,
			CreatedOn:       t.CreatedOn,
		}
	}

	resp := &HistoryResponse{
		Offset:  offset,
		Limit:   "all",
		Records: records,
	}
	if limit != nil {
		resp.Limit = *limit
	}
	return resp
}
