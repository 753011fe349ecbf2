package handler

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ArushAwasthi-ctrl/POC-polar-payments/internal/ledger"
	"github.com/ArushAwasthi-ctrl/POC-polar-payments/internal/plan"
)

func setupPurchasesHandler(t *testing.T) (*PurchasesHandler, *ledger.Ledger) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	resolver := plan.NewResolver(map[string]string{"prod_pro": plan.Pro})
	led := ledger.New(resolver, logger)
	return NewPurchasesHandler(led), led
}

func TestListPurchasedPlans(t *testing.T) {
	h, led := setupPurchasesHandler(t)
	led.RecordPurchase("c1", "prod_pro", "o1")

	req := httptest.NewRequest("GET", "/api/purchases?customer_id=c1", nil)
	rec := httptest.NewRecorder()
	h.ListPurchasedPlans(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	var resp map[string][]string
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp["plans"]) != 1 || resp["plans"][0] != plan.Pro {
		t.Errorf("plans = %v, want [pro]", resp["plans"])
	}
}

func TestListPurchasedPlansUnknownCustomer(t *testing.T) {
	h, _ := setupPurchasesHandler(t)

	req := httptest.NewRequest("GET", "/api/purchases?customer_id=nobody", nil)
	rec := httptest.NewRecorder()
	h.ListPurchasedPlans(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	var resp map[string][]string
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp["plans"] == nil || len(resp["plans"]) != 0 {
		t.Errorf("plans = %v, want empty list", resp["plans"])
	}
}

func TestListPurchasedPlansMissingCustomerID(t *testing.T) {
	h, _ := setupPurchasesHandler(t)

	req := httptest.NewRequest("GET", "/api/purchases", nil)
	rec := httptest.NewRecorder()
	h.ListPurchasedPlans(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}
