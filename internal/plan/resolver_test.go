package plan

import "testing"

func TestResolve(t *testing.T) {
	r := NewResolver(map[string]string{
		"prod_123": Pro,
		"prod_456": Master,
	})

	planID, ok := r.Resolve("prod_123")
	if !ok {
		t.Fatal("expected prod_123 to resolve")
	}
	if planID != Pro {
		t.Errorf("plan = %q, want %q", planID, Pro)
	}
}

func TestResolveUnknownProduct(t *testing.T) {
	r := NewResolver(map[string]string{"prod_123": Pro})

	if _, ok := r.Resolve("prod_999"); ok {
		t.Error("unknown product should not resolve")
	}
}

func TestProductIDFor(t *testing.T) {
	r := NewResolver(map[string]string{"prod_456": Master})

	productID, ok := r.ProductIDFor(Master)
	if !ok {
		t.Fatal("expected master to have a product")
	}
	if productID != "prod_456" {
		t.Errorf("product = %q, want %q", productID, "prod_456")
	}

	if _, ok := r.ProductIDFor(Pro); ok {
		t.Error("unconfigured plan should have no product")
	}
}

func TestResolverCopiesInput(t *testing.T) {
	products := map[string]string{"prod_123": Pro}
	r := NewResolver(products)

	products["prod_123"] = "something-else"

	planID, _ := r.Resolve("prod_123")
	if planID != Pro {
		t.Errorf("plan = %q, want %q after caller mutation", planID, Pro)
	}
}

func TestResolverSkipsEmptyPairs(t *testing.T) {
	r := NewResolver(map[string]string{"": Pro, "prod_456": ""})

	if _, ok := r.Resolve(""); ok {
		t.Error("empty product id should not resolve")
	}
	if _, ok := r.Resolve("prod_456"); ok {
		t.Error("product with empty plan should not resolve")
	}
}

func TestKnown(t *testing.T) {
	if !Known(Pro) || !Known(Master) {
		t.Error("catalog plans should be known")
	}
	if Known("enterprise") {
		t.Error("plan outside the catalog should not be known")
	}
}
