package webhook

import (
	"encoding/json"
	"fmt"
)

// Polar event types this service recognizes. Anything else is acknowledged
// and ignored — the provider must never be told to retry an event type we
// simply don't act on.
const (
	EventCheckoutCreated      = "checkout.created"
	EventCheckoutUpdated      = "checkout.updated"
	EventOrderCreated         = "order.created"
	EventOrderPaid            = "order.paid"
	EventSubscriptionCreated  = "subscription.created"
	EventSubscriptionUpdated  = "subscription.updated"
	EventSubscriptionActive   = "subscription.active"
	EventSubscriptionCanceled = "subscription.canceled"
	EventSubscriptionRevoked  = "subscription.revoked"
)

// Event is the envelope every Polar webhook delivery carries.
type Event struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// SubscriptionData is the payload of subscription.* events.
type SubscriptionData struct {
	ID         string `json:"id"`
	CustomerID string `json:"customer_id"`
	ProductID  string `json:"product_id"`
	Status     string `json:"status"`
}

// OrderData is the payload of order.* events.
type OrderData struct {
	ID         string `json:"id"`
	CustomerID string `json:"customer_id"`
	ProductID  string `json:"product_id"`
	Paid       bool   `json:"paid"`
}

// ParseEvent decodes an already-verified body into the event envelope.
func ParseEvent(body []byte) (*Event, error) {
	var ev Event
	if err := json.Unmarshal(body, &ev); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedEvent, err)
	}
	if ev.Type == "" {
		return nil, fmt.Errorf("%w: missing type", ErrMalformedEvent)
	}
	return &ev, nil
}
