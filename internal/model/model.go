package model

import "time"

// PurchaseStatus tracks where a purchase is in its lifecycle.
type PurchaseStatus string

const (
	StatusActive   PurchaseStatus = "active"
	StatusCanceled PurchaseStatus = "canceled"
	StatusRevoked  PurchaseStatus = "revoked"
)

// Purchase is one purchase event for one customer. Records are never
// deleted; status transitions mutate them in place.
type Purchase struct {
	CustomerID  string         `json:"customer_id"`
	PlanID      string         `json:"plan_id"`
	OrderID     string         `json:"order_id"`
	PurchasedAt time.Time      `json:"purchased_at"`
	Status      PurchaseStatus `json:"status"`
}
