package core_test

import (
	"testing"

	"challan-ledger/internal/core"
)

func TestCommission_LiveRecompute(t *testing.T) {
	c := core.NewChallan()
	c.UpdateItem(core.CategoryLocal, 0, core.FieldQty, "10")
	c.UpdateItem(core.CategoryLocal, 0, core.FieldPrice, "100")
	c.UpdateItem(core.CategoryLocal, 0, core.FieldDiscountPc, "2")

	c.SetCommissionPercent(core.CategoryLocal, "10")
	// (1000 - 20) * 10% = 98
	if !c.Finance.CommissionLocal.Equal(dec("98")) {
		t.Fatalf("commission = %s, want 98", c.Finance.CommissionLocal)
	}

	// While unlocked the amount follows the rows.
	c.UpdateItem(core.CategoryLocal, 0, core.FieldQty, "20")
	// (2000 - 40) * 10% = 196
	if !c.Finance.CommissionLocal.Equal(dec("196")) {
		t.Errorf("commission after row change = %s, want 196", c.Finance.CommissionLocal)
	}
}

func TestCommission_FinalizeFreezesAmount(t *testing.T) {
	c := core.NewChallan()
	c.UpdateItem(core.CategoryLocal, 0, core.FieldQty, "10")
	c.UpdateItem(core.CategoryLocal, 0, core.FieldPrice, "100")
	c.SetCommissionPercent(core.CategoryLocal, "10")
	c.FinalizeCommission(core.CategoryLocal)

	if !c.CommissionFinalized(core.CategoryLocal) {
		t.Fatal("expected finalized")
	}
	frozen := c.Finance.CommissionLocal

	// Neither row edits nor percent edits may move a finalized amount.
	c.UpdateItem(core.CategoryLocal, 0, core.FieldQty, "50")
	c.SetCommissionPercent(core.CategoryLocal, "25")

	if !c.Finance.CommissionLocal.Equal(frozen) {
		t.Errorf("finalized commission moved: %s -> %s", frozen, c.Finance.CommissionLocal)
	}
	if c.CommissionPercent(core.CategoryLocal) != "10" {
		t.Errorf("finalized percent changed to %q", c.CommissionPercent(core.CategoryLocal))
	}

	// The rest of the finance block still re-derives around the frozen value.
	if !c.Finance.TotalSale.Equal(dec("5000")) {
		t.Errorf("total sale = %s, want 5000", c.Finance.TotalSale)
	}
}

func TestCommission_UnlockClearsPercent(t *testing.T) {
	c := core.NewChallan()
	c.UpdateItem(core.CategorySpecial, 0, core.FieldQty, "10")
	c.UpdateItem(core.CategorySpecial, 0, core.FieldPrice, "150")
	c.SetCommissionPercent(core.CategorySpecial, "12")
	c.FinalizeCommission(core.CategorySpecial)

	c.UnlockCommission(core.CategorySpecial)

	if c.CommissionFinalized(core.CategorySpecial) {
		t.Error("expected unlocked")
	}
	if c.CommissionPercent(core.CategorySpecial) != "" {
		t.Errorf("percent should clear on unlock, got %q", c.CommissionPercent(core.CategorySpecial))
	}
	if !c.Finance.CommissionSpecial.IsZero() {
		t.Errorf("amount should drop to zero on unlock, got %s", c.Finance.CommissionSpecial)
	}

	// A fresh percent re-bases against the current rows.
	c.SetCommissionPercent(core.CategorySpecial, "10")
	if !c.Finance.CommissionSpecial.Equal(dec("150")) {
		t.Errorf("re-based commission = %s, want 150", c.Finance.CommissionSpecial)
	}
}

func TestCommission_EmptyPercentYieldsZero(t *testing.T) {
	c := core.NewChallan()
	c.UpdateItem(core.CategoryLocal, 0, core.FieldQty, "10")
	c.UpdateItem(core.CategoryLocal, 0, core.FieldPrice, "100")

	if !c.Finance.CommissionLocal.IsZero() {
		t.Errorf("commission with no percent = %s, want 0", c.Finance.CommissionLocal)
	}

	c.SetCommissionPercent(core.CategoryLocal, "not a number")
	if !c.Finance.CommissionLocal.IsZero() {
		t.Errorf("commission with junk percent = %s, want 0", c.Finance.CommissionLocal)
	}
}

func TestCommission_RoundsToWholeRupees(t *testing.T) {
	c := core.NewChallan()
	c.UpdateItem(core.CategoryLocal, 0, core.FieldQty, "1")
	c.UpdateItem(core.CategoryLocal, 0, core.FieldPrice, "333")
	c.SetCommissionPercent(core.CategoryLocal, "10")

	// 333 * 10% = 33.3, rounds to 33
	if !c.Finance.CommissionLocal.Equal(dec("33")) {
		t.Errorf("commission = %s, want 33", c.Finance.CommissionLocal)
	}
}
