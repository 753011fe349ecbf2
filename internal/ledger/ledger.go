// Package ledger is the in-memory system of record for customer purchases.
package ledger

import (
	"log/slog"
	"sync"
	"time"

	"github.com/ArushAwasthi-ctrl/POC-polar-payments/internal/model"
	"github.com/ArushAwasthi-ctrl/POC-polar-payments/internal/plan"
)

// Ledger maps a customer identity to their purchase history. Records are
// append-only per customer; status transitions mutate in place. State lives
// in process memory only and is lost on restart.
//
// A single lock guards the whole map. Webhook deliveries and checkout
// requests for the same customer can arrive concurrently, so every access
// goes through it.
type Ledger struct {
	mu        sync.RWMutex
	purchases map[string][]*model.Purchase
	resolver  *plan.Resolver
	logger    *slog.Logger
}

func New(resolver *plan.Resolver, logger *slog.Logger) *Ledger {
	return &Ledger{
		purchases: make(map[string][]*model.Purchase),
		resolver:  resolver,
		logger:    logger,
	}
}

// RecordPurchase resolves productID to a plan and appends an active record
// for the customer. An unknown product or an already-active record for the
// same (customer, plan) pair is a logged no-op, never an error — duplicate
// webhook deliveries must not double-insert.
func (l *Ledger) RecordPurchase(customerID, productID, orderID string) {
	planID, ok := l.resolver.Resolve(productID)
	if !ok {
		l.logger.Warn("unknown product id, skipping purchase",
			"customer_id", customerID, "product_id", productID, "order_id", orderID)
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.activeRecordLocked(customerID, planID) != nil {
		l.logger.Info("plan already active, ignoring duplicate purchase",
			"customer_id", customerID, "plan", planID, "order_id", orderID)
		return
	}

	l.purchases[customerID] = append(l.purchases[customerID], &model.Purchase{
		CustomerID:  customerID,
		PlanID:      planID,
		OrderID:     orderID,
		PurchasedAt: time.Now().UTC(),
		Status:      model.StatusActive,
	})
	l.logger.Info("purchase recorded",
		"customer_id", customerID, "plan", planID, "order_id", orderID)
}

// GetPurchasedPlanIDs returns the plans with an active record for the
// customer. Unknown customers get an empty slice, not an error.
func (l *Ledger) GetPurchasedPlanIDs(customerID string) []string {
	l.mu.RLock()
	defer l.mu.RUnlock()

	plans := []string{}
	for _, p := range l.purchases[customerID] {
		if p.Status == model.StatusActive {
			plans = append(plans, p.PlanID)
		}
	}
	return plans
}

// HasPurchasedPlan reports whether the customer holds an active record for
// the plan. Used to block duplicate checkout attempts.
func (l *Ledger) HasPurchasedPlan(customerID, planID string) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.activeRecordLocked(customerID, planID) != nil
}

// CancelPurchase marks the customer's active record for the plan as
// canceled. No active record is a logged no-op.
func (l *Ledger) CancelPurchase(customerID, planID string) {
	l.transition(customerID, planID, model.StatusCanceled)
}

// RevokePurchase marks the customer's active record for the plan as
// revoked. Access removal is immediate; no active record is a logged no-op.
func (l *Ledger) RevokePurchase(customerID, planID string) {
	l.transition(customerID, planID, model.StatusRevoked)
}

// Purchases returns a copy of the customer's full purchase history,
// including canceled and revoked records.
func (l *Ledger) Purchases(customerID string) []model.Purchase {
	l.mu.RLock()
	defer l.mu.RUnlock()

	records := make([]model.Purchase, 0, len(l.purchases[customerID]))
	for _, p := range l.purchases[customerID] {
		records = append(records, *p)
	}
	return records
}

func (l *Ledger) transition(customerID, planID string, status model.PurchaseStatus) {
	l.mu.Lock()
	defer l.mu.Unlock()

	p := l.activeRecordLocked(customerID, planID)
	if p == nil {
		l.logger.Info("no active record to transition",
			"customer_id", customerID, "plan", planID, "status", status)
		return
	}
	p.Status = status
	l.logger.Info("purchase status changed",
		"customer_id", customerID, "plan", planID, "status", status)
}

// activeRecordLocked requires l.mu held in at least read mode.
func (l *Ledger) activeRecordLocked(customerID, planID string) *model.Purchase {
	for _, p := range l.purchases[customerID] {
		if p.PlanID == planID && p.Status == model.StatusActive {
			return p
		}
	}
	return nil
}
