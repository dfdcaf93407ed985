package core_test

import (
	"context"
	"errors"
	"testing"

	"challan-ledger/internal/core"
	"challan-ledger/internal/store"
)

func TestCompanyService_UpsertReplacesByName(t *testing.T) {
	ctx := context.Background()
	svc := core.NewCompanyService(store.NewMemory(), quietLogger())
	m, _ := core.ParseMonth("07-2025")

	first := core.RosterEntry{Name: "Ali", Total: dec("1000"), Cash: dec("900")}
	if err := svc.UpsertAgentMonth(ctx, m, first); err != nil {
		t.Fatalf("upsert failed: %v", err)
	}

	// A later sync for the same agent must replace, not append.
	second := core.RosterEntry{Name: "Ali", Total: dec("3000"), Cash: dec("2700")}
	if err := svc.UpsertAgentMonth(ctx, m, second); err != nil {
		t.Fatalf("upsert failed: %v", err)
	}

	other := core.RosterEntry{Name: "Bilal", Total: dec("7200")}
	if err := svc.UpsertAgentMonth(ctx, m, other); err != nil {
		t.Fatalf("upsert failed: %v", err)
	}

	entries, err := svc.LoadRoster(ctx, m)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if !entries[0].Total.Equal(dec("3000")) {
		t.Errorf("Ali total = %s, want the latest 3000", entries[0].Total)
	}
}

func TestCompanyService_MonthsAreIsolated(t *testing.T) {
	ctx := context.Background()
	svc := core.NewCompanyService(store.NewMemory(), quietLogger())
	july, _ := core.ParseMonth("07-2025")
	august, _ := core.ParseMonth("08-2025")

	if err := svc.UpsertAgentMonth(ctx, july, core.RosterEntry{Name: "Ali", Total: dec("1000")}); err != nil {
		t.Fatalf("upsert failed: %v", err)
	}

	entries, err := svc.LoadRoster(ctx, august)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("august roster should be empty, got %d entries", len(entries))
	}
}

func TestCompanyService_PutFailureReported(t *testing.T) {
	ctx := context.Background()
	kv := &failingKV{KV: store.NewMemory(), failNS: store.NamespaceRoster}
	svc := core.NewCompanyService(kv, quietLogger())
	m, _ := core.ParseMonth("07-2025")

	err := svc.UpsertAgentMonth(ctx, m, core.RosterEntry{Name: "Ali"})
	var werr *core.StorageWriteError
	if !errors.As(err, &werr) {
		t.Fatalf("expected StorageWriteError, got %v", err)
	}
	if werr.Step != "roster" {
		t.Errorf("step = %q, want roster", werr.Step)
	}
}

func TestRosterEntryFromTotals_ShortCarriesPreviousShortage(t *testing.T) {
	t1 := core.MonthTotals{
		LocalSale:        dec("3000"),
		TotalSale:        dec("3000"),
		Short:            dec("300"),
		PreviousShortage: dec("50"),
	}
	e := core.RosterEntryFromTotals("Ali", t1)
	if e.Name != "Ali" {
		t.Errorf("name = %q", e.Name)
	}
	if !e.Short.Equal(dec("350")) {
		t.Errorf("roster short = %s, want short + previous shortage = 350", e.Short)
	}
	if !e.Total.Equal(dec("3000")) {
		t.Errorf("total = %s, want 3000", e.Total)
	}
}

func TestComputeGrandTotals(t *testing.T) {
	entries := []core.RosterEntry{
		{Name: "Ali", LocalSale: dec("3000"), Total: dec("3000"), Cash: dec("2700"), Short: dec("350"), Fuel: dec("500")},
		{Name: "Bilal", LocalSale: dec("6000"), SpecialSale: dec("1200"), Total: dec("7200"), Cash: dec("7000"), Short: dec("200")},
	}

	totals := core.ComputeGrandTotals(entries)

	if totals.AgentCount != 2 {
		t.Errorf("agentCount = %d, want 2", totals.AgentCount)
	}
	tests := []struct {
		field string
		got   string
		want  string
	}{
		{"localSale", totals.LocalSale.String(), "9000"},
		{"specialSale", totals.SpecialSale.String(), "1200"},
		{"total", totals.Total.String(), "10200"},
		{"cash", totals.Cash.String(), "9700"},
		{"short", totals.Short.String(), "550"},
		{"fuel", totals.Fuel.String(), "500"},
	}
	for _, tt := range tests {
		if !dec(tt.got).Equal(dec(tt.want)) {
			t.Errorf("%s = %s, want %s", tt.field, tt.got, tt.want)
		}
	}

	empty := core.ComputeGrandTotals(nil)
	if empty.AgentCount != 0 || !empty.Total.IsZero() {
		t.Errorf("empty roster totals should be zero: %+v", empty)
	}
}
