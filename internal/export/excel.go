package export

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"challan-ledger/internal/core"
)

// Workbook exports mirror the printable reports: one daily challan sheet,
// one monthly report grid, one company roster sheet. Layout stays here, out
// of core.

const sheetName = "Sheet1"

func cell(col rune, row int) string {
	return string(col) + fmt.Sprint(row)
}

func num(d decimal.Decimal) string {
	return core.FormatAmount(d)
}

// DailyWorkbook renders one challan snapshot: header, both item tables with
// subtotals, reading info and the finance block.
func DailyWorkbook(rec core.DailyRecord) (*excelize.File, error) {
	f := excelize.NewFile()
	if _, err := f.NewSheet(sheetName); err != nil {
		return nil, err
	}

	f.SetCellValue(sheetName, "A1", "Global Trading Company")
	f.SetCellValue(sheetName, "A2", "Delivery Challan")
	f.SetCellValue(sheetName, "A4", "D.C#")
	f.SetCellValue(sheetName, "B4", rec.AgentDetails.DCNo)
	f.SetCellValue(sheetName, "A5", "Name")
	f.SetCellValue(sheetName, "B5", rec.AgentDetails.Name)
	f.SetCellValue(sheetName, "A6", "Sector")
	f.SetCellValue(sheetName, "B6", rec.AgentDetails.Sector)
	f.SetCellValue(sheetName, "A7", "Date")
	f.SetCellValue(sheetName, "B7", rec.AgentDetails.Date)

	row := 9
	row = writeItemTable(f, row, "Local Sale", rec.LocalRows)
	row += 2
	row = writeItemTable(f, row, "Special Sale", rec.SpecialRows)
	row += 2

	f.SetCellValue(sheetName, cell('A', row), "Reading Out")
	f.SetCellValue(sheetName, cell('B', row), rec.ReadingInfo.ReadingOut)
	f.SetCellValue(sheetName, cell('C', row), "Reading In")
	f.SetCellValue(sheetName, cell('D', row), rec.ReadingInfo.ReadingIn)
	row++
	f.SetCellValue(sheetName, cell('A', row), "Total KM")
	f.SetCellValue(sheetName, cell('B', row), rec.ReadingInfo.TotalKm)
	f.SetCellValue(sheetName, cell('C', row), "Rate/KM")
	f.SetCellValue(sheetName, cell('D', row), rec.ReadingInfo.RatePerKm)
	row++
	f.SetCellValue(sheetName, cell('A', row), "Total Litre")
	f.SetCellValue(sheetName, cell('B', row), rec.ReadingInfo.TotalLitre)
	f.SetCellValue(sheetName, cell('C', row), "Rate/Litre")
	f.SetCellValue(sheetName, cell('D', row), rec.ReadingInfo.RatePerLitre)
	row += 2

	finance := [][2]string{
		{"Total Sale", num(rec.Finance.TotalSale)},
		{"Commission Local", num(rec.Finance.CommissionLocal)},
		{"Commission Special", num(rec.Finance.CommissionSpecial)},
		{"Fuel", num(rec.Finance.Fuel)},
		{"Total Discount", num(rec.Finance.TotalDiscount)},
		{"Misc", rec.Finance.Misc},
		{"H.Van", rec.Finance.Hvan},
		{"Net Sale", num(rec.Finance.NetSale)},
		{"Cash", rec.Finance.Cash},
		{"Short", num(rec.Finance.Short)},
		{"Previous Short", rec.Finance.PreviousShort},
		{"Total Shortage", num(rec.Finance.TotalShortage)},
		{"Other Expense", rec.Finance.OtherExpense},
	}
	for _, kv := range finance {
		f.SetCellValue(sheetName, cell('A', row), kv[0])
		f.SetCellValue(sheetName, cell('B', row), kv[1])
		row++
	}

	return f, nil
}

func writeItemTable(f *excelize.File, row int, title string, rows []core.LineItem) int {
	f.SetCellValue(sheetName, cell('A', row), title)
	row++
	f.SetCellValue(sheetName, cell('A', row), "Item")
	f.SetCellValue(sheetName, cell('B', row), "Qty")
	f.SetCellValue(sheetName, cell('C', row), "Price")
	f.SetCellValue(sheetName, cell('D', row), "Discount/Unit")
	f.SetCellValue(sheetName, cell('E', row), "Discount")
	f.SetCellValue(sheetName, cell('F', row), "Amount")
	row++

	ledger := core.ItemLedger{Rows: rows}
	for _, item := range rows {
		qty := core.ParseAmount(item.Qty)
		price := core.ParseAmount(item.Price)
		discountPc := core.ParseAmount(item.DiscountPc)
		f.SetCellValue(sheetName, cell('A', row), item.Item)
		f.SetCellValue(sheetName, cell('B', row), item.Qty)
		f.SetCellValue(sheetName, cell('C', row), item.Price)
		f.SetCellValue(sheetName, cell('D', row), item.DiscountPc)
		f.SetCellValue(sheetName, cell('E', row), num(qty.Mul(discountPc)))
		f.SetCellValue(sheetName, cell('F', row), num(qty.Mul(price)))
		row++
	}

	sub := ledger.Subtotal()
	f.SetCellValue(sheetName, cell('A', row), "Subtotal")
	f.SetCellValue(sheetName, cell('B', row), num(sub.Qty))
	f.SetCellValue(sheetName, cell('C', row), num(sub.Price))
	f.SetCellValue(sheetName, cell('E', row), num(sub.Discount))
	f.SetCellValue(sheetName, cell('F', row), num(sub.Amount))
	return row + 1
}

// MonthlyWorkbook renders an agent-month: the 31-day grid plus the derived
// totals, commission and expense rollups.
func MonthlyWorkbook(view *core.MonthView) (*excelize.File, error) {
	f := excelize.NewFile()
	if _, err := f.NewSheet(sheetName); err != nil {
		return nil, err
	}

	f.SetCellValue(sheetName, "A1", fmt.Sprintf("Monthly Report — %s — %s", view.Name, view.Month.Label()))

	headers := []string{"Day", "Local Sale", "Special Sale", "Total", "Fuel",
		"Comm. Local", "Comm. Special", "H.Van", "Misc",
		"Disc. Local", "Disc. Special", "Net", "Cash", "Short", "Other Expense"}
	for i, h := range headers {
		f.SetCellValue(sheetName, cell(rune('A'+i), 3), h)
	}

	row := 4
	for day, s := range view.Days {
		if !view.Present[day] {
			continue
		}
		values := []string{
			fmt.Sprint(day + 1),
			num(s.LocalSale), num(s.SpecialSale), num(s.Total), num(s.Fuel),
			num(s.CommissionLocalValue), num(s.CommissionSpecialValue),
			num(s.Hvan), num(s.Misc),
			num(s.DiscountLocal), num(s.DiscountSpecial),
			num(s.Net), num(s.Cash), num(s.Short), num(s.OtherExpense),
		}
		for i, v := range values {
			f.SetCellValue(sheetName, cell(rune('A'+i), row), v)
		}
		row++
	}
	row++

	t := view.Totals()
	summary := [][2]string{
		{"Total Sale", num(t.TotalSale)},
		{"Total Commission", num(t.TotalCommission)},
		{"H.Van", num(t.Hvan)},
		{"Other Expense", num(t.OtherExpense)},
		{"Total Expense", num(t.TotalExpense)},
		{"Cash", num(t.Cash)},
		{"Short", num(t.Short)},
		{"Previous Shortage", num(t.PreviousShortage)},
		{"Total Short", num(t.TotalShort)},
	}
	for _, kv := range summary {
		f.SetCellValue(sheetName, cell('A', row), kv[0])
		f.SetCellValue(sheetName, cell('B', row), kv[1])
		row++
	}

	return f, nil
}

// RosterWorkbook renders the company-wide view for one month: a row per
// agent plus the grand totals.
func RosterWorkbook(m core.Month, entries []core.RosterEntry) (*excelize.File, error) {
	f := excelize.NewFile()
	if _, err := f.NewSheet(sheetName); err != nil {
		return nil, err
	}

	totals := core.ComputeGrandTotals(entries)
	f.SetCellValue(sheetName, "A1", fmt.Sprintf("All Agents — %s", m.Label()))
	f.SetCellValue(sheetName, "A2", fmt.Sprintf("Total Agents: %d", totals.AgentCount))
	f.SetCellValue(sheetName, "C2", fmt.Sprintf("Total Sale: %s", num(totals.Total)))

	headers := []string{"Name", "Local Sale", "Special Sale", "Total",
		"Comm. Local", "Comm. Special", "Fuel",
		"Disc. Local", "Disc. Special", "H.Van", "Misc", "Net", "Cash", "Short"}
	for i, h := range headers {
		f.SetCellValue(sheetName, cell(rune('A'+i), 4), h)
	}

	row := 5
	for _, e := range entries {
		values := []string{
			e.Name,
			num(e.LocalSale), num(e.SpecialSale), num(e.Total),
			num(e.CommissionLocal), num(e.CommissionSpecial), num(e.Fuel),
			num(e.DiscountLocal), num(e.DiscountSpecial),
			num(e.Hvan), num(e.Misc), num(e.Net), num(e.Cash), num(e.Short),
		}
		for i, v := range values {
			f.SetCellValue(sheetName, cell(rune('A'+i), row), v)
		}
		row++
	}

	grand := []string{
		"Grand Total",
		num(totals.LocalSale), num(totals.SpecialSale), num(totals.Total),
		num(totals.CommissionLocal), num(totals.CommissionSpecial), num(totals.Fuel),
		num(totals.DiscountLocal), num(totals.DiscountSpecial),
		num(totals.Hvan), num(totals.Misc), num(totals.Net), num(totals.Cash), num(totals.Short),
	}
	for i, v := range grand {
		f.SetCellValue(sheetName, cell(rune('A'+i), row), v)
	}

	return f, nil
}
