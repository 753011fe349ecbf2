package handler

import (
	"encoding/json"
	"net/http"

	"github.com/ArushAwasthi-ctrl/POC-polar-payments/internal/ledger"
)

type PurchasesHandler struct {
	ledger *ledger.Ledger
}

func NewPurchasesHandler(l *ledger.Ledger) *PurchasesHandler {
	return &PurchasesHandler{ledger: l}
}

// ListPurchasedPlans returns the plans currently active for a customer.
// Unknown customers get an empty list.
func (h *PurchasesHandler) ListPurchasedPlans(w http.ResponseWriter, r *http.Request) {
	customerID := r.URL.Query().Get("customer_id")
	if customerID == "" {
		http.Error(w, "customer_id required", http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string][]string{
		"plans": h.ledger.GetPurchasedPlanIDs(customerID),
	})
}
