package webhook

import (
	"encoding/json"
	"log/slog"

	"github.com/ArushAwasthi-ctrl/POC-polar-payments/internal/ledger"
	"github.com/ArushAwasthi-ctrl/POC-polar-payments/internal/plan"
)

// Router dispatches authenticated events into the purchase ledger by event
// type. Dispatch is synchronous; it completes before the delivery is acked.
type Router struct {
	ledger   *ledger.Ledger
	resolver *plan.Resolver
	logger   *slog.Logger
}

func NewRouter(l *ledger.Ledger, r *plan.Resolver, logger *slog.Logger) *Router {
	return &Router{ledger: l, resolver: r, logger: logger}
}

// Dispatch routes one event. It never fails: recoverable conditions (unknown
// type, undecodable payload for a known type, unknown product) are logged
// and swallowed so the ack only reflects authenticity, not handler outcome.
func (rt *Router) Dispatch(ev *Event) {
	switch ev.Type {
	case EventSubscriptionActive:
		rt.handleSubscriptionActive(ev)
	case EventSubscriptionCanceled:
		rt.handleSubscriptionCanceled(ev)
	case EventSubscriptionRevoked:
		rt.handleSubscriptionRevoked(ev)
	case EventOrderPaid:
		rt.handleOrderPaid(ev)
	case EventSubscriptionCreated, EventSubscriptionUpdated,
		EventOrderCreated, EventCheckoutCreated, EventCheckoutUpdated:
		rt.logger.Info("informational event", "type", ev.Type)
	default:
		rt.logger.Info("unhandled event type, acknowledging", "type", ev.Type)
	}
}

func (rt *Router) handleSubscriptionActive(ev *Event) {
	var sub SubscriptionData
	if err := json.Unmarshal(ev.Data, &sub); err != nil {
		rt.logger.Error("decode subscription payload", "type", ev.Type, "error", err)
		return
	}
	if sub.CustomerID == "" {
		rt.logger.Error("subscription event missing customer id", "type", ev.Type)
		return
	}
	rt.ledger.RecordPurchase(sub.CustomerID, sub.ProductID, sub.ID)
}

func (rt *Router) handleSubscriptionCanceled(ev *Event) {
	sub, planID, ok := rt.subscriptionPlan(ev)
	if !ok {
		return
	}
	rt.ledger.CancelPurchase(sub.CustomerID, planID)
}

func (rt *Router) handleSubscriptionRevoked(ev *Event) {
	sub, planID, ok := rt.subscriptionPlan(ev)
	if !ok {
		return
	}
	rt.ledger.RevokePurchase(sub.CustomerID, planID)
}

func (rt *Router) handleOrderPaid(ev *Event) {
	var order OrderData
	if err := json.Unmarshal(ev.Data, &order); err != nil {
		rt.logger.Error("decode order payload", "type", ev.Type, "error", err)
		return
	}
	if order.CustomerID == "" {
		rt.logger.Error("order event missing customer id", "type", ev.Type)
		return
	}
	rt.ledger.RecordPurchase(order.CustomerID, order.ProductID, order.ID)
}

// subscriptionPlan decodes a subscription payload and maps its product to a
// plan. Either failure is logged and reported as not-ok.
func (rt *Router) subscriptionPlan(ev *Event) (SubscriptionData, string, bool) {
	var sub SubscriptionData
	if err := json.Unmarshal(ev.Data, &sub); err != nil {
		rt.logger.Error("decode subscription payload", "type", ev.Type, "error", err)
		return sub, "", false
	}
	planID, ok := rt.resolver.Resolve(sub.ProductID)
	if !ok {
		rt.logger.Warn("unknown product id on subscription event",
			"type", ev.Type, "product_id", sub.ProductID)
		return sub, "", false
	}
	return sub, planID, true
}
