package core

import "time"

// Mode is the challan form state. A loaded historical record is read-only
// until the user explicitly exits back to a blank editable form.
type Mode int

const (
	ModeEditable Mode = iota
	ModeReadOnly
)

// FinanceField names a directly editable finance input. The remaining finance
// fields are derived and written only by Recompute.
type FinanceField string

const (
	FinanceMisc          FinanceField = "misc"
	FinanceHvan          FinanceField = "hvan"
	FinanceCash          FinanceField = "cash"
	FinancePreviousShort FinanceField = "previousShort"
	FinanceOtherExpense  FinanceField = "otherExpense"
)

// ReadingField names an editable odometer/fuel input.
type ReadingField string

const (
	ReadingOut          ReadingField = "readingOut"
	ReadingIn           ReadingField = "readingIn"
	ReadingTotalKm      ReadingField = "totalKm"
	ReadingRatePerKm    ReadingField = "ratePerKm"
	ReadingTotalLitre   ReadingField = "totalLitre"
	ReadingRatePerLitre ReadingField = "ratePerLitre"
)

// Challan is the daily reconciliation form: agent identity, the two category
// ledgers, reading info and the finance block, plus the commission lock
// state. Every mutating operation triggers one synchronous Recompute, so the
// derived finance fields are never stale between calls.
type Challan struct {
	Details AgentDetails
	Local   *ItemLedger
	Special *ItemLedger
	Reading ReadingInfo
	Finance FinanceBlock

	commissions *CommissionEngine
	mode        Mode
}

// NewChallan returns a blank editable form dated today.
func NewChallan() *Challan {
	c := &Challan{
		Details:     AgentDetails{Date: FormatChallanDate(time.Now())},
		Local:       NewItemLedger(CategoryLocal),
		Special:     NewItemLedger(CategorySpecial),
		commissions: NewCommissionEngine(),
	}
	c.Recompute()
	return c
}

func (c *Challan) Mode() Mode {
	return c.mode
}

// Ledger returns the item ledger for a category.
func (c *Challan) Ledger(cat Category) *ItemLedger {
	if cat == CategorySpecial {
		return c.Special
	}
	return c.Local
}

// AddRow appends an empty row to a category.
func (c *Challan) AddRow(cat Category) {
	c.Ledger(cat).AddRow()
	c.Recompute()
}

// DeleteRow removes a category row; out-of-range indexes are no-ops.
func (c *Challan) DeleteRow(cat Category, i int) {
	c.Ledger(cat).DeleteRow(i)
	c.Recompute()
}

// UpdateItem sets one cell of a category row from raw input.
func (c *Challan) UpdateItem(cat Category, i int, field ItemField, raw string) {
	c.Ledger(cat).UpdateField(i, field, raw)
	c.Recompute()
}

// UpdateReading sets one reading field from raw input.
func (c *Challan) UpdateReading(field ReadingField, raw string) {
	raw = stripGrouping(raw)
	switch field {
	case ReadingOut:
		c.Reading.ReadingOut = raw
	case ReadingIn:
		c.Reading.ReadingIn = raw
	case ReadingTotalKm:
		c.Reading.TotalKm = raw
	case ReadingRatePerKm:
		c.Reading.RatePerKm = raw
	case ReadingTotalLitre:
		c.Reading.TotalLitre = raw
	case ReadingRatePerLitre:
		c.Reading.RatePerLitre = raw
	}
	c.Recompute()
}

// UpdateFinance sets one editable finance field from raw input.
func (c *Challan) UpdateFinance(field FinanceField, raw string) {
	raw = stripGrouping(raw)
	switch field {
	case FinanceMisc:
		c.Finance.Misc = raw
	case FinanceHvan:
		c.Finance.Hvan = raw
	case FinanceCash:
		c.Finance.Cash = raw
	case FinancePreviousShort:
		c.Finance.PreviousShort = raw
	case FinanceOtherExpense:
		c.Finance.OtherExpense = raw
	}
	c.Recompute()
}

// SetCommissionPercent stores a raw percent; ignored while that category is
// finalized.
func (c *Challan) SetCommissionPercent(cat Category, raw string) {
	c.commissions.SetPercent(cat, raw)
	c.Recompute()
}

// FinalizeCommission locks a category's percent and amount as of now.
func (c *Challan) FinalizeCommission(cat Category) {
	c.commissions.Finalize(cat)
}

// UnlockCommission clears a category's percent and reactivates live
// recompute.
func (c *Challan) UnlockCommission(cat Category) {
	c.commissions.Unlock(cat)
	c.Recompute()
}

func (c *Challan) CommissionPercent(cat Category) string {
	return c.commissions.Percent(cat)
}

func (c *Challan) CommissionFinalized(cat Category) bool {
	return c.commissions.Finalized(cat)
}

// Recompute derives the finance block from the current inputs. It is pure
// over its inputs and idempotent: derived fields are written back only when
// at least one differs from the stored value, and the return reports whether
// that write happened. Nothing else is mutated, so it can never cascade.
func (c *Challan) Recompute() bool {
	localSub := c.Local.Subtotal()
	specialSub := c.Special.Subtotal()

	c.commissions.Recalc(CategoryLocal, localSub)
	c.commissions.Recalc(CategorySpecial, specialSub)
	commissionLocal := c.commissions.Amount(CategoryLocal)
	commissionSpecial := c.commissions.Amount(CategorySpecial)

	fuel := roundWhole(ParseAmount(c.Reading.RatePerLitre).Mul(ParseAmount(c.Reading.TotalLitre)))

	totalSale := localSub.Amount.Add(specialSub.Amount)
	totalDiscount := localSub.Discount.Add(specialSub.Discount)

	netSale := totalSale.
		Sub(commissionLocal).
		Sub(commissionSpecial).
		Sub(fuel).
		Sub(totalDiscount).
		Sub(ParseAmount(c.Finance.Misc)).
		Sub(ParseAmount(c.Finance.Hvan))

	short := netSale.Sub(ParseAmount(c.Finance.Cash))
	totalShortage := short.Add(ParseAmount(c.Finance.PreviousShort))

	next := c.Finance
	next.TotalSale = totalSale
	next.CommissionLocal = commissionLocal
	next.CommissionSpecial = commissionSpecial
	next.Fuel = fuel
	next.TotalDiscount = totalDiscount
	next.NetSale = netSale
	next.Short = short
	next.TotalShortage = totalShortage

	if derivedEqual(c.Finance, next) {
		return false
	}
	c.Finance = next
	return true
}

// derivedEqual compares the derived finance fields by value, not by decimal
// representation.
func derivedEqual(a, b FinanceBlock) bool {
	return a.TotalSale.Equal(b.TotalSale) &&
		a.CommissionLocal.Equal(b.CommissionLocal) &&
		a.CommissionSpecial.Equal(b.CommissionSpecial) &&
		a.Fuel.Equal(b.Fuel) &&
		a.TotalDiscount.Equal(b.TotalDiscount) &&
		a.NetSale.Equal(b.NetSale) &&
		a.Short.Equal(b.Short) &&
		a.TotalShortage.Equal(b.TotalShortage)
}

// Subtotals returns the current local and special rollups.
func (c *Challan) Subtotals() (local, special Subtotal) {
	return c.Local.Subtotal(), c.Special.Subtotal()
}

// Reset returns the form to the blank editable skeleton.
func (c *Challan) Reset() {
	*c = *NewChallan()
}

// Snapshot captures the full persisted shape of the form.
func (c *Challan) Snapshot() DailyRecord {
	return DailyRecord{
		AgentDetails:      c.Details,
		LocalRows:         append([]LineItem(nil), c.Local.Rows...),
		SpecialRows:       append([]LineItem(nil), c.Special.Rows...),
		ReadingInfo:       c.Reading,
		Finance:           c.Finance,
		CommissionLocal:   c.commissions.State(CategoryLocal),
		CommissionSpecial: c.commissions.State(CategorySpecial),
	}
}

// LoadSnapshot replaces every field with a stored record and enters ReadOnly
// mode. Both commissions are treated as finalized: a saved record's amounts
// must never re-derive while being viewed.
func (c *Challan) LoadSnapshot(rec DailyRecord) {
	c.Details = rec.AgentDetails
	c.Local = &ItemLedger{Category: CategoryLocal, Rows: append([]LineItem(nil), rec.LocalRows...)}
	c.Special = &ItemLedger{Category: CategorySpecial, Rows: append([]LineItem(nil), rec.SpecialRows...)}
	c.Reading = rec.ReadingInfo
	c.Finance = rec.Finance

	localState := rec.CommissionLocal
	localState.Finalized = true
	specialState := rec.CommissionSpecial
	specialState.Finalized = true

	c.commissions = NewCommissionEngine()
	c.commissions.Restore(CategoryLocal, localState, rec.Finance.CommissionLocal)
	c.commissions.Restore(CategorySpecial, specialState, rec.Finance.CommissionSpecial)
	c.mode = ModeReadOnly
}

// Exit leaves ReadOnly mode by resetting to the blank editable form.
func (c *Challan) Exit() {
	c.Reset()
}

// ApplyDraft hydrates an editable form from an intake draft, replacing the
// blank skeleton. The form stays editable and recomputes normally.
func (c *Challan) ApplyDraft(rec DailyRecord) {
	c.Details = rec.AgentDetails
	if len(rec.LocalRows) > 0 {
		c.Local = &ItemLedger{Category: CategoryLocal, Rows: append([]LineItem(nil), rec.LocalRows...)}
	}
	if len(rec.SpecialRows) > 0 {
		c.Special = &ItemLedger{Category: CategorySpecial, Rows: append([]LineItem(nil), rec.SpecialRows...)}
	}
	c.Reading = rec.ReadingInfo
	c.Finance.Misc = rec.Finance.Misc
	c.Finance.Hvan = rec.Finance.Hvan
	c.Finance.Cash = rec.Finance.Cash
	c.Finance.PreviousShort = rec.Finance.PreviousShort
	c.Finance.OtherExpense = rec.Finance.OtherExpense
	c.commissions.SetPercent(CategoryLocal, rec.CommissionLocal.Percent)
	c.commissions.SetPercent(CategorySpecial, rec.CommissionSpecial.Percent)
	c.mode = ModeEditable
	c.Recompute()
}

// DaySummary builds the monthly day-slot subset from the current state.
func (c *Challan) DaySummary() DaySummary {
	localSub, specialSub := c.Subtotals()
	return DaySummary{
		LocalSale:              localSub.Amount,
		SpecialSale:            specialSub.Amount,
		Total:                  c.Finance.TotalSale,
		Fuel:                   c.Finance.Fuel,
		DiscountLocal:          localSub.Discount,
		DiscountSpecial:        specialSub.Discount,
		CommissionLocalValue:   c.Finance.CommissionLocal,
		CommissionSpecialValue: c.Finance.CommissionSpecial,
		Hvan:                   ParseAmount(c.Finance.Hvan),
		Misc:                   ParseAmount(c.Finance.Misc),
		Net:                    c.Finance.NetSale,
		Cash:                   ParseAmount(c.Finance.Cash),
		Short:                  c.Finance.Short,
		PreviousShort:          ParseAmount(c.Finance.PreviousShort),
		OtherExpense:           ParseAmount(c.Finance.OtherExpense),
	}
}
