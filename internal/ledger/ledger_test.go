package ledger

import (
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/ArushAwasthi-ctrl/POC-polar-payments/internal/model"
	"github.com/ArushAwasthi-ctrl/POC-polar-payments/internal/plan"
)

func setupLedger(t *testing.T) *Ledger {
	t.Helper()
	resolver := plan.NewResolver(map[string]string{
		"prod_pro":    plan.Pro,
		"prod_master": plan.Master,
	})
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(resolver, logger)
}

func TestRecordPurchase(t *testing.T) {
	l := setupLedger(t)

	l.RecordPurchase("c1", "prod_pro", "o1")

	if !l.HasPurchasedPlan("c1", plan.Pro) {
		t.Error("expected c1 to hold pro")
	}
	records := l.Purchases("c1")
	if len(records) != 1 {
		t.Fatalf("records = %d, want 1", len(records))
	}
	if records[0].OrderID != "o1" {
		t.Errorf("order id = %q, want %q", records[0].OrderID, "o1")
	}
	if records[0].Status != model.StatusActive {
		t.Errorf("status = %q, want %q", records[0].Status, model.StatusActive)
	}
}

func TestRecordPurchaseIdempotent(t *testing.T) {
	l := setupLedger(t)

	l.RecordPurchase("c1", "prod_pro", "o1")
	l.RecordPurchase("c1", "prod_pro", "o1")

	if got := len(l.Purchases("c1")); got != 1 {
		t.Errorf("records = %d, want 1 after duplicate delivery", got)
	}
}

func TestRecordPurchaseUnknownProduct(t *testing.T) {
	l := setupLedger(t)

	l.RecordPurchase("c1", "prod_unknown", "o1")

	if got := len(l.Purchases("c1")); got != 0 {
		t.Errorf("records = %d, want 0 for unknown product", got)
	}
}

func TestGetPurchasedPlanIDsUnknownCustomer(t *testing.T) {
	l := setupLedger(t)

	plans := l.GetPurchasedPlanIDs("nobody")
	if plans == nil {
		t.Fatal("expected empty slice, got nil")
	}
	if len(plans) != 0 {
		t.Errorf("plans = %v, want empty", plans)
	}
}

func TestGetPurchasedPlanIDsSkipsInactive(t *testing.T) {
	l := setupLedger(t)

	l.RecordPurchase("c1", "prod_pro", "o1")
	l.RecordPurchase("c1", "prod_master", "o2")
	l.CancelPurchase("c1", plan.Master)

	plans := l.GetPurchasedPlanIDs("c1")
	if len(plans) != 1 || plans[0] != plan.Pro {
		t.Errorf("plans = %v, want [pro]", plans)
	}
}

func TestRevokeThenRepurchase(t *testing.T) {
	l := setupLedger(t)

	l.RecordPurchase("c1", "prod_pro", "o1")
	l.RevokePurchase("c1", plan.Pro)

	if l.HasPurchasedPlan("c1", plan.Pro) {
		t.Error("revoked plan should not be active")
	}

	l.RecordPurchase("c1", "prod_pro", "o2")

	if !l.HasPurchasedPlan("c1", plan.Pro) {
		t.Error("repurchase after revoke should create a new active record")
	}
	if got := len(l.Purchases("c1")); got != 2 {
		t.Errorf("records = %d, want 2 (revoked + new active)", got)
	}
}

func TestCancelWithoutActiveRecord(t *testing.T) {
	l := setupLedger(t)

	// Must not panic or create anything
	l.CancelPurchase("c1", plan.Pro)
	l.RevokePurchase("c1", plan.Pro)

	if got := len(l.Purchases("c1")); got != 0 {
		t.Errorf("records = %d, want 0", got)
	}
}

func TestPurchasesReturnsCopies(t *testing.T) {
	l := setupLedger(t)

	l.RecordPurchase("c1", "prod_pro", "o1")
	records := l.Purchases("c1")
	records[0].Status = model.StatusRevoked

	if !l.HasPurchasedPlan("c1", plan.Pro) {
		t.Error("mutating a returned record must not touch ledger state")
	}
}

func TestConcurrentRecordPurchase(t *testing.T) {
	l := setupLedger(t)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			l.RecordPurchase("c1", "prod_pro", "o1")
			l.GetPurchasedPlanIDs("c1")
		}()
	}
	wg.Wait()

	if got := len(l.Purchases("c1")); got != 1 {
		t.Errorf("records = %d, want exactly 1 active record", got)
	}
}
