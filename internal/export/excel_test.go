package export_test

import (
	"testing"

	"challan-ledger/internal/core"
	"challan-ledger/internal/export"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func cellValue(t *testing.T, f *excelize.File, ref string) string {
	t.Helper()
	v, err := f.GetCellValue("Sheet1", ref)
	if err != nil {
		t.Fatalf("GetCellValue(%s): %v", ref, err)
	}
	return v
}

func TestDailyWorkbook(t *testing.T) {
	c := core.NewChallan()
	c.Details.Name = "Ali"
	c.Details.Sector = "7-B"
	c.Details.DCNo = "101"
	c.Details.Date = "03-07-2025"
	c.UpdateItem(core.CategoryLocal, 0, core.FieldItem, "Crate 1.5L")
	c.UpdateItem(core.CategoryLocal, 0, core.FieldQty, "10")
	c.UpdateItem(core.CategoryLocal, 0, core.FieldPrice, "100")

	f, err := export.DailyWorkbook(c.Snapshot())
	if err != nil {
		t.Fatalf("workbook failed: %v", err)
	}

	if got := cellValue(t, f, "B5"); got != "Ali" {
		t.Errorf("B5 = %q, want Ali", got)
	}
	if got := cellValue(t, f, "B7"); got != "03-07-2025" {
		t.Errorf("B7 = %q, want the challan date", got)
	}
	// First local item row sits under the table header.
	if got := cellValue(t, f, "A11"); got != "Crate 1.5L" {
		t.Errorf("A11 = %q, want the first line item", got)
	}
	if got := cellValue(t, f, "F11"); got != "1,000" {
		t.Errorf("F11 = %q, want the row amount", got)
	}
}

func TestMonthlyWorkbook(t *testing.T) {
	var view core.MonthView
	view.Name = "Ali"
	view.Month, _ = core.ParseMonth("07-2025")
	view.Days[2] = core.DaySummary{LocalSale: dec("1000"), Total: dec("1000"), Cash: dec("900"), Short: dec("100")}
	view.Present[2] = true
	view.Summary = &core.MonthlySummary{Name: "Ali"}

	f, err := export.MonthlyWorkbook(&view)
	if err != nil {
		t.Fatalf("workbook failed: %v", err)
	}

	if got := cellValue(t, f, "A1"); got == "" {
		t.Error("missing title")
	}
	// Row 4 is the first present day.
	if got := cellValue(t, f, "A4"); got != "3" {
		t.Errorf("A4 = %q, want day number 3", got)
	}
	if got := cellValue(t, f, "B4"); got != "1,000" {
		t.Errorf("B4 = %q, want local sale", got)
	}
}

func TestRosterWorkbook(t *testing.T) {
	m, _ := core.ParseMonth("07-2025")
	entries := []core.RosterEntry{
		{Name: "Ali", LocalSale: dec("3000"), Total: dec("3000")},
		{Name: "Bilal", LocalSale: dec("6000"), Total: dec("6000")},
	}

	f, err := export.RosterWorkbook(m, entries)
	if err != nil {
		t.Fatalf("workbook failed: %v", err)
	}

	if got := cellValue(t, f, "A2"); got != "Total Agents: 2" {
		t.Errorf("A2 = %q", got)
	}
	if got := cellValue(t, f, "A5"); got != "Ali" {
		t.Errorf("A5 = %q, want first agent", got)
	}
	// Grand total row follows the two agent rows.
	if got := cellValue(t, f, "A7"); got != "Grand Total" {
		t.Errorf("A7 = %q", got)
	}
	if got := cellValue(t, f, "D7"); got != "9,000" {
		t.Errorf("D7 = %q, want the folded total", got)
	}
}
