package core

import (
	"context"

	"github.com/shopspring/decimal"

	"challan-ledger/internal/store"
)

// MonthView is the 31-slot expansion of one agent-month. Absent days read as
// all-zero summaries; Present marks the slots a save actually wrote.
type MonthView struct {
	Name    string
	Month   Month
	Summary *MonthlySummary // nil when nothing is stored for the month
	Days    [31]DaySummary
	Present [31]bool
}

// MonthTotals is the derived monthly rollup. Recomputed on every read, never
// stored.
type MonthTotals struct {
	LocalSale         decimal.Decimal
	SpecialSale       decimal.Decimal
	Fuel              decimal.Decimal
	CommissionLocal   decimal.Decimal
	CommissionSpecial decimal.Decimal
	Hvan              decimal.Decimal
	Misc              decimal.Decimal
	DiscountLocal     decimal.Decimal
	DiscountSpecial   decimal.Decimal
	Net               decimal.Decimal
	Cash              decimal.Decimal
	Short             decimal.Decimal
	OtherExpense      decimal.Decimal

	TotalSale        decimal.Decimal // localSale + specialSale
	TotalCommission  decimal.Decimal // commissionLocal + commissionSpecial
	TotalExpense     decimal.Decimal // totalCommission + hvan + otherExpense
	PreviousShortage decimal.Decimal // Σ previousShort over present slots (carry-in)
	TotalShort       decimal.Decimal // short + previousShortage
}

// MonthlyService reads agent-month summaries and folds them into totals.
type MonthlyService interface {
	LoadMonth(ctx context.Context, name string, m Month) (*MonthView, error)
}

type monthlyService struct {
	monthly *MonthlyStore
}

func NewMonthlyService(kv store.KV) MonthlyService {
	return &monthlyService{monthly: NewMonthlyStore(kv)}
}

// LoadMonth returns the 31-slot view for an agent-month. An absent summary
// yields an all-zero view with Summary nil.
func (s *monthlyService) LoadMonth(ctx context.Context, name string, m Month) (*MonthView, error) {
	view := &MonthView{Name: name, Month: m}

	summary, found, err := s.monthly.Get(ctx, MonthlyKey(name, m))
	if err != nil {
		return nil, err
	}
	if !found {
		return view, nil
	}

	view.Summary = summary
	for day, slot := range summary.Records {
		if day < 0 || day >= len(view.Days) {
			continue
		}
		view.Days[day] = slot.Summary
		view.Present[day] = true
	}
	return view, nil
}

// Totals folds the 13 tracked fields across all 31 slots, treating missing
// slots as zero, and derives the read-time rollups. PreviousShortage sums
// only present slots because it is carry-in, not current-period activity.
func (v *MonthView) Totals() MonthTotals {
	var t MonthTotals
	for day, s := range v.Days {
		t.LocalSale = t.LocalSale.Add(s.LocalSale)
		t.SpecialSale = t.SpecialSale.Add(s.SpecialSale)
		t.Fuel = t.Fuel.Add(s.Fuel)
		t.CommissionLocal = t.CommissionLocal.Add(s.CommissionLocalValue)
		t.CommissionSpecial = t.CommissionSpecial.Add(s.CommissionSpecialValue)
		t.Hvan = t.Hvan.Add(s.Hvan)
		t.Misc = t.Misc.Add(s.Misc)
		t.DiscountLocal = t.DiscountLocal.Add(s.DiscountLocal)
		t.DiscountSpecial = t.DiscountSpecial.Add(s.DiscountSpecial)
		t.Net = t.Net.Add(s.Net)
		t.Cash = t.Cash.Add(s.Cash)
		t.Short = t.Short.Add(s.Short)
		t.OtherExpense = t.OtherExpense.Add(s.OtherExpense)

		if v.Present[day] {
			t.PreviousShortage = t.PreviousShortage.Add(s.PreviousShort)
		}
	}

	t.TotalSale = t.LocalSale.Add(t.SpecialSale)
	t.TotalCommission = t.CommissionLocal.Add(t.CommissionSpecial)
	t.TotalExpense = t.TotalCommission.Add(t.Hvan).Add(t.OtherExpense)
	t.TotalShort = t.Short.Add(t.PreviousShortage)
	return t
}
