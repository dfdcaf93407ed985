package core_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"testing"

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

func TestRecordService_SaveLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemory()
	svc := core.NewRecordService(kv, quietLogger())

	c := buildSampleChallan()
	key, err := svc.Save(ctx, c)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if key != "Ali__03-07-2025" {
		t.Errorf("key = %q, want Ali__03-07-2025", key)
	}

	// A successful save resets the form.
	if c.Details.Name != "" {
		t.Errorf("form not reset after save, name = %q", c.Details.Name)
	}

	loaded := core.NewChallan()
	found, err := svc.Load(ctx, loaded, "Ali", "03-07-2025")
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if !found {
		t.Fatal("saved record not found")
	}
	if loaded.Mode() != core.ModeReadOnly {
		t.Error("loaded record must be read-only")
	}
	if loaded.Details.Sector != "7-B" || loaded.Details.DCNo != "101" {
		t.Errorf("details lost: %+v", loaded.Details)
	}
	if !loaded.Finance.TotalShortage.Equal(dec("-1618")) {
		t.Errorf("totalShortage = %s, want -1618", loaded.Finance.TotalShortage)
	}
	if loaded.Ledger(core.CategoryLocal).Rows[0].Item != "Crate 1.5L" {
		t.Errorf("line items lost: %+v", loaded.Ledger(core.CategoryLocal).Rows)
	}
}

func TestRecordService_LoadMissLeavesFormUntouched(t *testing.T) {
	ctx := context.Background()
	svc := core.NewRecordService(store.NewMemory(), quietLogger())

	c := core.NewChallan()
	c.Details.Name = "Untouched"

	found, err := svc.Load(ctx, c, "Nobody", "01-01-2025")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found {
		t.Fatal("found a record that was never saved")
	}
	if c.Details.Name != "Untouched" || c.Mode() != core.ModeEditable {
		t.Error("a miss must not modify the form")
	}
}

func TestRecordService_SaveValidation(t *testing.T) {
	ctx := context.Background()
	svc := core.NewRecordService(store.NewMemory(), quietLogger())

	tests := []struct {
		name  string
		setup func() *core.Challan
		field string
	}{
		{
			name: "empty agent name",
			setup: func() *core.Challan {
				c := core.NewChallan()
				c.Details.Name = "   "
				return c
			},
			field: "name",
		},
		{
			name: "unparseable date",
			setup: func() *core.Challan {
				c := core.NewChallan()
				c.Details.Name = "Ali"
				c.Details.Date = "2025/07/03"
				return c
			},
			field: "date",
		},
		{
			name: "read-only form",
			setup: func() *core.Challan {
				saved := buildSampleChallan()
				c := core.NewChallan()
				c.LoadSnapshot(saved.Snapshot())
				return c
			},
			field: "mode",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Save(ctx, tt.setup())
			var verr *core.ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if verr.Field != tt.field {
				t.Errorf("field = %q, want %q", verr.Field, tt.field)
			}
		})
	}
}

func TestRecordService_MonthlyFailureKeepsDailyAndForm(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemory()
	kv := &failingKV{KV: mem, failNS: store.NamespaceMonthly}
	svc := core.NewRecordService(kv, quietLogger())

	c := buildSampleChallan()
	key, err := svc.Save(ctx, c)
	if err == nil {
		t.Fatal("expected monthly write failure")
	}
	var werr *core.StorageWriteError
	if !errors.As(err, &werr) {
		t.Fatalf("expected StorageWriteError, got %v", err)
	}
	if werr.Step != "monthly" {
		t.Errorf("step = %q, want monthly", werr.Step)
	}

	// The daily write is committed and its key is reported.
	if key != "Ali__03-07-2025" {
		t.Errorf("committed daily key = %q", key)
	}
	if _, found, _ := mem.Get(ctx, store.NamespaceDaily, key); !found {
		t.Error("daily record missing after monthly failure")
	}

	// The form is kept so the save can be retried.
	if c.Details.Name != "Ali" {
		t.Error("form was reset despite the failed rollup")
	}

	// Retry against a healed store completes the pipeline and resets.
	healed := core.NewRecordService(mem, quietLogger())
	if _, err := healed.Save(ctx, c); err != nil {
		t.Fatalf("retry failed: %v", err)
	}
	if c.Details.Name != "" {
		t.Error("form not reset after successful retry")
	}
	m, _ := core.ParseMonth("07-2025")
	if _, found, _ := mem.Get(ctx, store.NamespaceMonthly, core.MonthlyKey("Ali", m)); !found {
		t.Error("monthly record missing after retry")
	}
}

func TestRecordService_DailyFailureWritesNothing(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemory()
	kv := &failingKV{KV: mem, failNS: store.NamespaceDaily}
	svc := core.NewRecordService(kv, quietLogger())

	c := buildSampleChallan()
	key, err := svc.Save(ctx, c)
	var werr *core.StorageWriteError
	if !errors.As(err, &werr) {
		t.Fatalf("expected StorageWriteError, got %v", err)
	}
	if werr.Step != "daily" {
		t.Errorf("step = %q, want daily", werr.Step)
	}
	if key != "" {
		t.Errorf("no key should be reported, got %q", key)
	}
	if keys, _ := mem.Keys(ctx, store.NamespaceMonthly); len(keys) != 0 {
		t.Error("monthly namespace written despite daily failure")
	}
}

func TestRecordService_AgentNames(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemory()
	svc := core.NewRecordService(kv, quietLogger())

	save := func(name, date string) {
		c := core.NewChallan()
		c.Details.Name = name
		c.Details.Date = date
		c.UpdateItem(core.CategoryLocal, 0, core.FieldQty, "1")
		c.UpdateItem(core.CategoryLocal, 0, core.FieldPrice, "10")
		if _, err := svc.Save(ctx, c); err != nil {
			t.Fatalf("seed save failed: %v", err)
		}
	}
	save("Bilal", "03-07-2025")
	save("Ali", "03-07-2025")
	save("Ali", "04-07-2025")

	names, err := svc.AgentNames(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(names) != 2 || names[0] != "Ali" || names[1] != "Bilal" {
		t.Errorf("names = %v, want [Ali Bilal]", names)
	}
}

func TestRecordService_PrefillCommission(t *testing.T) {
	ctx := context.Background()
	svc := core.NewRecordService(store.NewMemory(), quietLogger())

	prior := buildSampleChallan()
	prior.SetCommissionPercent(core.CategorySpecial, "12")
	if _, err := svc.Save(ctx, prior); err != nil {
		t.Fatalf("seed save failed: %v", err)
	}

	form := core.NewChallan()
	found, err := svc.PrefillCommission(ctx, form, "Ali")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !found {
		t.Fatal("expected a prior record")
	}
	if form.CommissionPercent(core.CategoryLocal) != "10" {
		t.Errorf("local percent = %q, want 10", form.CommissionPercent(core.CategoryLocal))
	}
	if form.CommissionPercent(core.CategorySpecial) != "12" {
		t.Errorf("special percent = %q, want 12", form.CommissionPercent(core.CategorySpecial))
	}
	// Convenience only: the lock never carries over.
	if form.CommissionFinalized(core.CategoryLocal) {
		t.Error("prefill must not carry the finalized lock")
	}

	if found, _ := svc.PrefillCommission(ctx, core.NewChallan(), "Nobody"); found {
		t.Error("prefill matched an unknown agent")
	}
}
