package core

import "strings"

// ItemField names an editable column of a line-item row.
type ItemField string

const (
	FieldItem       ItemField = "item"
	FieldQty        ItemField = "qty"
	FieldPrice      ItemField = "price"
	FieldDiscountPc ItemField = "discountPc"
)

// ItemLedger holds the ordered line items of one sales category and derives
// its subtotal. Rows are mutable in place until the containing challan is
// saved or reset.
type ItemLedger struct {
	Category Category
	Rows     []LineItem
}

// NewItemLedger starts with a single empty row, matching the blank form.
func NewItemLedger(cat Category) *ItemLedger {
	return &ItemLedger{Category: cat, Rows: []LineItem{{}}}
}

// AddRow appends an empty row.
func (l *ItemLedger) AddRow() {
	l.Rows = append(l.Rows, LineItem{})
}

// DeleteRow removes the row at i. An out-of-range index is a silent no-op.
func (l *ItemLedger) DeleteRow(i int) {
	if i < 0 || i >= len(l.Rows) {
		return
	}
	l.Rows = append(l.Rows[:i], l.Rows[i+1:]...)
}

// UpdateField stores a raw entered value on a row. Numeric fields have their
// grouping commas stripped before storage; non-numeric text is kept as-is and
// degrades to zero in the subtotal. An out-of-range index is a silent no-op.
func (l *ItemLedger) UpdateField(i int, field ItemField, raw string) {
	if i < 0 || i >= len(l.Rows) {
		return
	}
	row := &l.Rows[i]
	switch field {
	case FieldItem:
		row.Item = raw
	case FieldQty:
		row.Qty = stripGrouping(raw)
	case FieldPrice:
		row.Price = stripGrouping(raw)
	case FieldDiscountPc:
		row.DiscountPc = stripGrouping(raw)
	}
}

func stripGrouping(raw string) string {
	return strings.ReplaceAll(raw, ",", "")
}

// Subtotal recomputes the category rollup from the current rows. No caching:
// every call reflects the rows as they stand.
func (l *ItemLedger) Subtotal() Subtotal {
	var sub Subtotal
	for _, row := range l.Rows {
		qty := ParseAmount(row.Qty)
		price := ParseAmount(row.Price)
		discountPc := ParseAmount(row.DiscountPc)

		sub.Qty = sub.Qty.Add(qty)
		sub.Price = sub.Price.Add(price)
		sub.Discount = sub.Discount.Add(qty.Mul(discountPc))
		sub.Amount = sub.Amount.Add(qty.Mul(price))
	}
	return sub
}
