package core_test

import (
	"testing"
	"time"

	"challan-ledger/internal/core"
)

func TestChallanDraft_Normalize(t *testing.T) {
	d := core.ChallanDraft{
		Name: "  Ali ",
		Date: "",
		LocalItems: []core.DraftLine{
			{Item: " Crate 1.5L ", Qty: "1,000", Price: "null", DiscountPc: " 2 "},
		},
		Cash:          "NULL",
		PreviousShort: "1,500",
	}
	d.Normalize()

	if d.Name != "Ali" {
		t.Errorf("name = %q", d.Name)
	}
	if d.Date != core.FormatChallanDate(time.Now()) {
		t.Errorf("empty date should default to today, got %q", d.Date)
	}
	line := d.LocalItems[0]
	if line.Item != "Crate 1.5L" || line.Qty != "1000" || line.Price != "" || line.DiscountPc != "2" {
		t.Errorf("line not cleaned: %+v", line)
	}
	if d.Cash != "" {
		t.Errorf("literal null should clear, got %q", d.Cash)
	}
	if d.PreviousShort != "1500" {
		t.Errorf("grouping should strip, got %q", d.PreviousShort)
	}
}

func TestChallanDraft_Validate(t *testing.T) {
	valid := func() core.ChallanDraft {
		return core.ChallanDraft{
			Name:       "Ali",
			Date:       "03-07-2025",
			LocalItems: []core.DraftLine{{Item: "Crate", Qty: "1", Price: "10"}},
		}
	}

	tests := []struct {
		name      string
		mutate    func(*core.ChallanDraft)
		expectErr bool
	}{
		{name: "valid", mutate: func(d *core.ChallanDraft) {}},
		{name: "missing name", mutate: func(d *core.ChallanDraft) { d.Name = "" }, expectErr: true},
		{name: "bad date", mutate: func(d *core.ChallanDraft) { d.Date = "July 3rd" }, expectErr: true},
		{name: "no items", mutate: func(d *core.ChallanDraft) { d.LocalItems = nil }, expectErr: true},
		{
			name: "special items alone suffice",
			mutate: func(d *core.ChallanDraft) {
				d.LocalItems = nil
				d.SpecialItems = []core.DraftLine{{Item: "Premium", Qty: "1", Price: "150"}}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := valid()
			tt.mutate(&d)
			err := d.Validate()
			if tt.expectErr && err == nil {
				t.Error("expected error, got nil")
			}
			if !tt.expectErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestChallanDraft_ToRecord(t *testing.T) {
	d := core.ChallanDraft{
		Name:                   "Ali",
		Sector:                 "7-B",
		Date:                   "03-07-2025",
		LocalItems:             []core.DraftLine{{Item: "Crate", Qty: "10", Price: "100", DiscountPc: "2"}},
		CommissionLocalPercent: "10",
		RatePerLitre:           "150",
		TotalLitre:             "20",
		Cash:                   "700",
	}

	rec := d.ToRecord()
	if rec.AgentDetails.Name != "Ali" || rec.AgentDetails.Date != "03-07-2025" {
		t.Errorf("details = %+v", rec.AgentDetails)
	}
	if len(rec.LocalRows) != 1 || rec.LocalRows[0].Qty != "10" {
		t.Errorf("rows = %+v", rec.LocalRows)
	}
	if rec.ReadingInfo.RatePerLitre != "150" || rec.ReadingInfo.TotalLitre != "20" {
		t.Errorf("reading = %+v", rec.ReadingInfo)
	}
	if rec.CommissionLocal.Percent != "10" || rec.CommissionLocal.Finalized {
		t.Errorf("commission state = %+v", rec.CommissionLocal)
	}
	if rec.Finance.Cash != "700" {
		t.Errorf("cash = %q", rec.Finance.Cash)
	}
}
