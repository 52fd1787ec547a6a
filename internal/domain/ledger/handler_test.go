package ledger

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/nusapay/nusapay-api/internal/middleware"
)

type envelope struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func doRequest(h http.HandlerFunc, method, target, body string) (*httptest.ResponseRecorder, envelope) {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req = req.WithContext(context.WithValue(req.Context(), middleware.EmailKey, "budi@nusapay.io"))
	w := httptest.NewRecorder()
	h(w, req)

	var env envelope
	json.Unmarshal(w.Body.Bytes(), &env)
	return w, env
}

func TestHandlerGetBalanceNoRow(t *testing.T) {
	svc, _, _ := newTestService(0)
	h := NewHandler(svc)

	w, env := doRequest(h.GetBalance, http.MethodGet, "/balance", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
	if env.Status != 404 || env.Message != "Balance not found for this user" {
		t.Fatalf("unexpected envelope: %+v", env)
	}
}

func TestHandlerTopUp(t *testing.T) {
	svc, _, _ := newTestService(0)
	h := NewHandler(svc)

	w, env := doRequest(h.TopUp, http.MethodPost, "/topup", `{"top_up_amount": 10000}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if env.Status != 0 || env.Message != "Top Up Balance successful" {
		t.Fatalf("unexpected envelope: %+v", env)
	}

	var data BalanceResponse
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatalf("bad data payload: %v", err)
	}
	if data.Balance != 10000 {
		t.Fatalf("expected balance 10000, got %d", data.Balance)
	}
}

func TestHandlerTopUpRejectsBadAmount(t *testing.T) {
	svc, store, _ := newTestService(0)
	h := NewHandler(svc)

	for _, body := range []string{
		`{"top_up_amount": "abc"}`,
		`{"top_up_amount": -500}`,
		`{"top_up_amount": 0}`,
		`not json`,
	} {
		w, env := doRequest(h.TopUp, http.MethodPost, "/topup", body)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("body %q: expected 400, got %d", body, w.Code)
		}
		if env.Status != 102 {
			t.Fatalf("body %q: expected status 102, got %d", body, env.Status)
		}
	}
	if len(store.txns) != 0 {
		t.Fatalf("rejected top-ups must not append transactions, got %d", len(store.txns))
	}
}

func TestHandlerPay(t *testing.T) {
	svc, store, userID := newTestService(0)
	store.balances[userID] = 10000
	h := NewHandler(svc)

	w, env := doRequest(h.Pay, http.MethodPost, "/transaction", `{"service_code": "PLN"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if env.Status != 0 || env.Message != "Transaction successful" {
		t.Fatalf("unexpected envelope: %+v", env)
	}

	var data PaymentResponse
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatalf("bad data payload: %v", err)
	}
	if data.ServiceCode != "PLN" || data.ServiceName != "PLN Prabayar" || data.TotalAmount != 5000 {
		t.Fatalf("unexpected payment payload: %+v", data)
	}
	if data.TransactionType != "PAYMENT" {
		t.Fatalf("expected PAYMENT type, got %q", data.TransactionType)
	}
	if !strings.HasPrefix(data.InvoiceNumber, "INV") {
		t.Fatalf("expected INV invoice prefix, got %q", data.InvoiceNumber)
	}
}

func TestHandlerPayUnknownService(t *testing.T) {
	svc, _, _ := newTestService(0)
	h := NewHandler(svc)

	w, env := doRequest(h.Pay, http.MethodPost, "/transaction", `{"service_code": "NOPE"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if env.Status != 102 || env.Message != "Service not found" {
		t.Fatalf("unexpected envelope: %+v", env)
	}
}

func TestHandlerPayInsufficientFunds(t *testing.T) {
	svc, store, userID := newTestService(0)
	store.balances[userID] = 100
	h := NewHandler(svc)

	w, env := doRequest(h.Pay, http.MethodPost, "/transaction", `{"service_code": "PLN"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if env.Status != 103 {
		t.Fatalf("expected status 103, got %d", env.Status)
	}
}

func TestHandlerHistory(t *testing.T) {
	svc, _, _ := newTestService(0)
	h := NewHandler(svc)
	ctx := context.Background()

	for _, amount := range []int64{100, 200, 300} {
		if _, err := svc.TopUp(ctx, "budi@nusapay.io", amount); err != nil {
			t.Fatalf("topup failed: %v", err)
		}
	}

	w, env := doRequest(h.History, http.MethodGet, "/transaction/history?limit=2&offset=1", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if env.Status != 0 || env.Message != "Get History successful" {
		t.Fatalf("unexpected envelope: %+v", env)
	}

	var data struct {
		Offset  int             `json:"offset"`
		Limit   json.RawMessage `json:"limit"`
		Records []HistoryRecord `json:"records"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatalf("bad data payload: %v", err)
	}
	if data.Offset != 1 || string(data.Limit) != "2" {
		t.Fatalf("unexpected pagination echo: offset=%d limit=%s", data.Offset, data.Limit)
	}
	if len(data.Records) != 2 || data.Records[0].TotalAmount != 200 {
		t.Fatalf("unexpected records: %+v", data.Records)
	}

	// No limit echoes "all"
	_, env = doRequest(h.History, http.MethodGet, "/transaction/history", "")
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatalf("bad data payload: %v", err)
	}
	if string(data.Limit) != `"all"` {
		t.Fatalf(`expected limit "all", got %s`, data.Limit)
	}
}

func TestHandlerHistoryRejectsBadPagination(t *testing.T) {
	svc, _, _ := newTestService(0)
	h := NewHandler(svc)

	for _, target := range []string{
		"/transaction/history?limit=abc",
		"/transaction/history?limit=-1",
		"/transaction/history?offset=xyz",
		"/transaction/history?offset=-5",
	} {
		w, env := doRequest(h.History, http.MethodGet, target, "")
		if w.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d", target, w.Code)
		}
		if env.Status != 102 {
			t.Fatalf("%s: expected status 102, got %d", target, env.Status)
		}
	}
}
