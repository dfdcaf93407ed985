package core_test

import (
	"testing"

	"challan-ledger/internal/core"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestItemLedger_Subtotal(t *testing.T) {
	tests := []struct {
		name         string
		rows         [][4]string // item, qty, price, discountPc
		wantQty      string
		wantPrice    string
		wantDiscount string
		wantAmount   string
	}{
		{
			name:         "single row with per-unit discount",
			rows:         [][4]string{{"Crate 1.5L", "10", "100", "2"}},
			wantQty:      "10",
			wantPrice:    "100",
			wantDiscount: "20",
			wantAmount:   "1000",
		},
		{
			name: "multiple rows fold",
			rows: [][4]string{
				{"Crate 1.5L", "40", "120", "2"},
				{"Crate 500ml", "25", "80", ""},
			},
			wantQty:      "65",
			wantPrice:    "200",
			wantDiscount: "80",
			wantAmount:   "6800",
		},
		{
			name:         "non-numeric cells contribute zero",
			rows:         [][4]string{{"Crate", "abc", "100", "x"}},
			wantQty:      "0",
			wantPrice:    "100",
			wantDiscount: "0",
			wantAmount:   "0",
		},
		{
			name:         "blank ledger is all zero",
			rows:         nil,
			wantQty:      "0",
			wantPrice:    "0",
			wantDiscount: "0",
			wantAmount:   "0",
		},
		{
			name:         "grouped input accepted",
			rows:         [][4]string{{"Bulk", "1,000", "1,200", ""}},
			wantQty:      "1000",
			wantPrice:    "1200",
			wantDiscount: "0",
			wantAmount:   "1200000",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := core.NewItemLedger(core.CategoryLocal)
			for i, r := range tt.rows {
				if i > 0 {
					l.AddRow()
				}
				l.UpdateField(i, core.FieldItem, r[0])
				l.UpdateField(i, core.FieldQty, r[1])
				l.UpdateField(i, core.FieldPrice, r[2])
				l.UpdateField(i, core.FieldDiscountPc, r[3])
			}

			sub := l.Subtotal()
			checks := []struct {
				label string
				got   decimal.Decimal
				want  string
			}{
				{"qty", sub.Qty, tt.wantQty},
				{"price", sub.Price, tt.wantPrice},
				{"discount", sub.Discount, tt.wantDiscount},
				{"amount", sub.Amount, tt.wantAmount},
			}
			for _, c := range checks {
				if !c.got.Equal(dec(c.want)) {
					t.Errorf("%s = %s, want %s", c.label, c.got, c.want)
				}
			}
		})
	}
}

func TestItemLedger_RowOperations(t *testing.T) {
	l := core.NewItemLedger(core.CategoryLocal)
	if len(l.Rows) != 1 {
		t.Fatalf("new ledger should start with one empty row, got %d", len(l.Rows))
	}

	l.AddRow()
	l.AddRow()
	if len(l.Rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(l.Rows))
	}

	l.UpdateField(1, core.FieldItem, "Crate")
	l.DeleteRow(0)
	if len(l.Rows) != 2 {
		t.Fatalf("expected 2 rows after delete, got %d", len(l.Rows))
	}
	if l.Rows[0].Item != "Crate" {
		t.Errorf("delete removed the wrong row: rows[0].Item = %q", l.Rows[0].Item)
	}

	// Out-of-range operations are silent no-ops.
	l.DeleteRow(10)
	l.DeleteRow(-1)
	l.UpdateField(99, core.FieldQty, "5")
	if len(l.Rows) != 2 {
		t.Errorf("out-of-range ops changed row count: %d", len(l.Rows))
	}
}

func TestItemLedger_NumericFieldsStripGrouping(t *testing.T) {
	l := core.NewItemLedger(core.CategorySpecial)
	l.UpdateField(0, core.FieldQty, "1,500")
	if l.Rows[0].Qty != "1500" {
		t.Errorf("qty stored as %q, want grouping stripped", l.Rows[0].Qty)
	}
	l.UpdateField(0, core.FieldItem, "Crate 1,5L")
	if l.Rows[0].Item != "Crate 1,5L" {
		t.Errorf("item name must keep commas, got %q", l.Rows[0].Item)
	}
}
