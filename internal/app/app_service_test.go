package app_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"testing"

	"challan-ledger/internal/app"
	"challan-ledger/internal/core"
	"challan-ledger/internal/store"

	"github.com/sirupsen/logrus"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// failingKV wraps a working KV and fails Put for one namespace.
type failingKV struct {
	store.KV
	failNS store.Namespace
}

func (f *failingKV) Put(ctx context.Context, ns store.Namespace, key, value string) error {
	if ns == f.failNS {
		return fmt.Errorf("injected %s failure", ns)
	}
	return f.KV.Put(ctx, ns, key, value)
}

func sampleChallan(name, date string) *core.Challan {
	c := core.NewChallan()
	c.Details.Name = name
	c.Details.Sector = "7-B"
	c.Details.Date = date
	c.UpdateItem(core.CategoryLocal, 0, core.FieldItem, "Crate 1.5L")
	c.UpdateItem(core.CategoryLocal, 0, core.FieldQty, "10")
	c.UpdateItem(core.CategoryLocal, 0, core.FieldPrice, "100")
	c.UpdateFinance(core.FinanceCash, "900")
	return c
}

func TestAppService_SaveAndLoad(t *testing.T) {
	ctx := context.Background()
	svc := app.NewAppService(store.NewMemory(), nil, quietLogger())

	result, err := svc.SaveChallan(ctx, sampleChallan("Ali", "03-07-2025"))
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if result.Key != "Ali__03-07-2025" {
		t.Errorf("key = %q", result.Key)
	}

	loaded, err := svc.LoadChallan(ctx, core.NewChallan(), "Ali", "03-07-2025")
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if !loaded.Found {
		t.Fatal("record not found after save")
	}
	if loaded.Record.AgentDetails.Name != "Ali" {
		t.Errorf("record name = %q", loaded.Record.AgentDetails.Name)
	}

	miss, err := svc.LoadChallan(ctx, core.NewChallan(), "Nobody", "03-07-2025")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if miss.Found {
		t.Error("miss reported as found")
	}
}

func TestAppService_SaveReportsCommittedKeyOnRollupFailure(t *testing.T) {
	ctx := context.Background()
	kv := &failingKV{KV: store.NewMemory(), failNS: store.NamespaceMonthly}
	svc := app.NewAppService(kv, nil, quietLogger())

	result, err := svc.SaveChallan(ctx, sampleChallan("Ali", "03-07-2025"))
	if err == nil {
		t.Fatal("expected rollup failure")
	}
	if result == nil || result.Key != "Ali__03-07-2025" {
		t.Fatalf("committed key must be reported alongside the error, got %+v", result)
	}
}

func TestAppService_MonthlyReportSyncsRoster(t *testing.T) {
	ctx := context.Background()
	svc := app.NewAppService(store.NewMemory(), nil, quietLogger())

	if _, err := svc.SaveChallan(ctx, sampleChallan("Ali", "03-07-2025")); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	m, _ := core.ParseMonth("07-2025")
	report, err := svc.GetMonthlyReport(ctx, "Ali", m)
	if err != nil {
		t.Fatalf("report failed: %v", err)
	}
	if !report.RosterSynced {
		t.Error("roster should sync when monthly data exists")
	}
	if !report.Totals.TotalSale.Equal(report.Totals.LocalSale) {
		t.Errorf("totals inconsistent: %+v", report.Totals)
	}

	roster, err := svc.GetCompanyRoster(ctx, m)
	if err != nil {
		t.Fatalf("roster failed: %v", err)
	}
	if len(roster.Entries) != 1 || roster.Entries[0].Name != "Ali" {
		t.Fatalf("roster entries = %+v", roster.Entries)
	}
	if roster.Totals.AgentCount != 1 {
		t.Errorf("agent count = %d", roster.Totals.AgentCount)
	}
}

func TestAppService_EmptyMonthDoesNotTouchRoster(t *testing.T) {
	ctx := context.Background()
	svc := app.NewAppService(store.NewMemory(), nil, quietLogger())

	m, _ := core.ParseMonth("01-2026")
	report, err := svc.GetMonthlyReport(ctx, "Nobody", m)
	if err != nil {
		t.Fatalf("report failed: %v", err)
	}
	if report.RosterSynced {
		t.Error("an empty month must not create a roster entry")
	}

	roster, err := svc.GetCompanyRoster(ctx, m)
	if err != nil {
		t.Fatalf("roster failed: %v", err)
	}
	if len(roster.Entries) != 0 {
		t.Errorf("roster should stay empty, got %+v", roster.Entries)
	}
}

func TestAppService_RosterSyncFailureKeepsReport(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemory()

	// Seed through a healthy service, then read through one whose roster
	// namespace fails.
	healthy := app.NewAppService(mem, nil, quietLogger())
	if _, err := healthy.SaveChallan(ctx, sampleChallan("Ali", "03-07-2025")); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	broken := app.NewAppService(&failingKV{KV: mem, failNS: store.NamespaceRoster}, nil, quietLogger())
	m, _ := core.ParseMonth("07-2025")
	report, err := broken.GetMonthlyReport(ctx, "Ali", m)
	if err != nil {
		t.Fatalf("the report itself must not fail: %v", err)
	}
	if report.RosterSynced {
		t.Error("sync reported despite failure")
	}
	var werr *core.StorageWriteError
	if !errors.As(report.RosterSyncErr, &werr) {
		t.Fatalf("expected StorageWriteError on the result, got %v", report.RosterSyncErr)
	}
	if !report.Totals.TotalSale.Equal(report.Totals.LocalSale) || report.Totals.TotalSale.IsZero() {
		t.Errorf("report data lost: %+v", report.Totals)
	}
}

func TestAppService_InterpretWithoutAgent(t *testing.T) {
	svc := app.NewAppService(store.NewMemory(), nil, quietLogger())
	if _, err := svc.InterpretChallan(context.Background(), "Ali sold 10 crates"); err == nil {
		t.Error("expected an unavailable error with no agent configured")
	}
}
