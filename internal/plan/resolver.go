// Package plan maps Polar product IDs to the internal plan catalog.
package plan

// The closed set of purchasable plans.
const (
	Pro    = "pro"
	Master = "master"
)

// Known reports whether planID is part of the plan catalog.
func Known(planID string) bool {
	return planID == Pro || planID == Master
}

// Resolver holds the static product-to-plan mapping. It is built once at
// startup and never mutated afterward, so concurrent reads need no locking.
type Resolver struct {
	planByProduct map[string]string
	productByPlan map[string]string
}

// NewResolver builds a Resolver from (product id, plan id) pairs. The input
// map is copied so later mutation by the caller cannot leak in.
func NewResolver(products map[string]string) *Resolver {
	r := &Resolver{
		planByProduct: make(map[string]string, len(products)),
		productByPlan: make(map[string]string, len(products)),
	}
	for productID, planID := range products {
		if productID == "" || planID == "" {
			continue
		}
		r.planByProduct[productID] = planID
		r.productByPlan[planID] = productID
	}
	return r
}

// Resolve returns the plan id for a Polar product id. A miss is a normal,
// recoverable condition; callers log and skip.
func (r *Resolver) Resolve(productID string) (string, bool) {
	planID, ok := r.planByProduct[productID]
	return planID, ok
}

// ProductIDFor is the reverse lookup, used when creating checkout sessions.
func (r *Resolver) ProductIDFor(planID string) (string, bool) {
	productID, ok := r.productByPlan[planID]
	return productID, ok
}
