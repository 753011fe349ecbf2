package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/ArushAwasthi-ctrl/POC-polar-payments/internal/ledger"
	"github.com/ArushAwasthi-ctrl/POC-polar-payments/internal/plan"
)

// CheckoutCreator mints a hosted checkout URL at the payment provider.
type CheckoutCreator interface {
	CreateCheckoutSession(ctx context.Context, productID, customerID string) (string, error)
}

type CheckoutHandler struct {
	checkout CheckoutCreator
	ledger   *ledger.Ledger
	resolver *plan.Resolver
	logger   *slog.Logger
}

func NewCheckoutHandler(cc CheckoutCreator, l *ledger.Ledger, r *plan.Resolver, logger *slog.Logger) *CheckoutHandler {
	return &CheckoutHandler{checkout: cc, ledger: l, resolver: r, logger: logger}
}

// CreateCheckout validates the plan, blocks duplicate purchases, and only
// then calls out to the provider for a checkout URL.
func (h *CheckoutHandler) CreateCheckout(w http.ResponseWriter, r *http.Request) {
	var req struct {
		CustomerID string `json:"customer_id"`
		Plan       string `json:"plan"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.CustomerID == "" {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	if !plan.Known(req.Plan) {
		http.Error(w, "unknown plan", http.StatusBadRequest)
		return
	}
	productID, ok := h.resolver.ProductIDFor(req.Plan)
	if !ok {
		h.logger.Error("plan has no product configured", "plan", req.Plan)
		http.Error(w, "plan not available", http.StatusBadRequest)
		return
	}

	if h.ledger.HasPurchasedPlan(req.CustomerID, req.Plan) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		json.NewEncoder(w).Encode(map[string]string{"error": "already_purchased"})
		return
	}

	url, err := h.checkout.CreateCheckoutSession(r.Context(), productID, req.CustomerID)
	if err != nil {
		h.logger.Error("create checkout session", "plan", req.Plan, "error", err)
		http.Error(w, "failed to create checkout session", http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"url": url})
}
