package core

import "github.com/shopspring/decimal"

type commissionSlot struct {
	state  CommissionState
	amount decimal.Decimal
}

// CommissionEngine tracks the two per-category commission entries and their
// two-phase lock. While a category is not finalized its amount follows the
// category subtotal live; Finalize freezes percent and amount as of that
// instant, Unlock clears the percent and reactivates live recompute.
//
// The lock exists so a deliberately entered percent is not silently re-based
// every time a line item changes after the user committed to it.
type CommissionEngine struct {
	slots map[Category]*commissionSlot
}

func NewCommissionEngine() *CommissionEngine {
	return &CommissionEngine{
		slots: map[Category]*commissionSlot{
			CategoryLocal:   {},
			CategorySpecial: {},
		},
	}
}

// SetPercent stores the raw entered percent. Ignored while finalized.
func (e *CommissionEngine) SetPercent(cat Category, raw string) {
	slot := e.slots[cat]
	if slot.state.Finalized {
		return
	}
	slot.state.Percent = stripGrouping(raw)
}

// Recalc re-derives the amount from the category subtotal:
// round((amount - discount) * percent / 100). A no-op while finalized; an
// empty or non-numeric percent yields zero.
func (e *CommissionEngine) Recalc(cat Category, sub Subtotal) {
	slot := e.slots[cat]
	if slot.state.Finalized {
		return
	}
	pct := ParseAmount(slot.state.Percent)
	if pct.IsZero() {
		slot.amount = decimal.Zero
		return
	}
	base := sub.Amount.Sub(sub.Discount)
	slot.amount = roundWhole(base.Mul(pct).Div(decimal.NewFromInt(100)))
}

// Finalize locks the percent and amount at their current values.
func (e *CommissionEngine) Finalize(cat Category) {
	e.slots[cat].state.Finalized = true
}

// Unlock clears the percent, drops the amount and reactivates live recompute.
func (e *CommissionEngine) Unlock(cat Category) {
	slot := e.slots[cat]
	slot.state.Percent = ""
	slot.state.Finalized = false
	slot.amount = decimal.Zero
}

func (e *CommissionEngine) Percent(cat Category) string {
	return e.slots[cat].state.Percent
}

func (e *CommissionEngine) Finalized(cat Category) bool {
	return e.slots[cat].state.Finalized
}

func (e *CommissionEngine) Amount(cat Category) decimal.Decimal {
	return e.slots[cat].amount
}

func (e *CommissionEngine) State(cat Category) CommissionState {
	return e.slots[cat].state
}

// Restore reinstates a stored state and amount, used when hydrating a saved
// record.
func (e *CommissionEngine) Restore(cat Category, state CommissionState, amount decimal.Decimal) {
	e.slots[cat] = &commissionSlot{state: state, amount: amount}
}
