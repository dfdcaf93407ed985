package repl

import (
	"fmt"
	"strings"

	"challan-ledger/internal/app"
	"challan-ledger/internal/core"
)

func printChallan(c *core.Challan) {
	mode := "EDITABLE"
	if c.Mode() == core.ModeReadOnly {
		mode = "READ-ONLY"
	}

	fmt.Println()
	fmt.Println(strings.Repeat("=", 70))
	fmt.Printf("  DELIVERY CHALLAN  [%s]\n", mode)
	fmt.Printf("  D.C#   : %s\n", c.Details.DCNo)
	fmt.Printf("  Name   : %s\n", c.Details.Name)
	fmt.Printf("  Sector : %s\n", c.Details.Sector)
	fmt.Printf("  Date   : %s\n", c.Details.Date)
	fmt.Println(strings.Repeat("=", 70))

	printLedger("LOCAL SALE", c, core.CategoryLocal)
	printLedger("SPECIAL SALE", c, core.CategorySpecial)

	fmt.Println("  READING INFO")
	fmt.Printf("  Out %-10s In %-10s Km %-10s Rate/Km %-8s Litre %-8s Rate/L %s\n",
		blank(c.Reading.ReadingOut), blank(c.Reading.ReadingIn), blank(c.Reading.TotalKm),
		blank(c.Reading.RatePerKm), blank(c.Reading.TotalLitre), blank(c.Reading.RatePerLitre))
	fmt.Println(strings.Repeat("-", 70))

	rows := [][2]string{
		{"Total Sale", core.FormatAmount(c.Finance.TotalSale)},
		{"Commission Local", core.FormatAmount(c.Finance.CommissionLocal)},
		{"Commission Special", core.FormatAmount(c.Finance.CommissionSpecial)},
		{"Fuel", core.FormatAmount(c.Finance.Fuel)},
		{"Total Discount", core.FormatAmount(c.Finance.TotalDiscount)},
		{"Misc", blank(c.Finance.Misc)},
		{"H.Van", blank(c.Finance.Hvan)},
		{"Net Sale", core.FormatAmount(c.Finance.NetSale)},
		{"Cash", blank(c.Finance.Cash)},
		{"Short", core.FormatAmount(c.Finance.Short)},
		{"Previous Short", blank(c.Finance.PreviousShort)},
		{"Other Expense", blank(c.Finance.OtherExpense)},
		{"Total Shortage", core.FormatAmount(c.Finance.TotalShortage)},
	}
	for _, kv := range rows {
		fmt.Printf("  %-20s %15s\n", kv[0], kv[1])
	}
	fmt.Println(strings.Repeat("=", 70))
}

func printLedger(title string, c *core.Challan, cat core.Category) {
	lock := ""
	if c.CommissionFinalized(cat) {
		lock = "  [LOCKED]"
	}
	fmt.Printf("  %s  (commission %s%%)%s\n", title, blank(c.CommissionPercent(cat)), lock)
	fmt.Printf("  %-4s %-20s %8s %10s %10s %12s\n", "#", "ITEM", "QTY", "PRICE", "DISC/UNIT", "AMOUNT")
	fmt.Println(strings.Repeat("-", 70))
	for i, r := range c.Ledger(cat).Rows {
		amount := core.ParseAmount(r.Qty).Mul(core.ParseAmount(r.Price))
		fmt.Printf("  %-4d %-20s %8s %10s %10s %12s\n",
			i+1, r.Item, blank(r.Qty), blank(r.Price), blank(r.DiscountPc), core.FormatAmount(amount))
	}
	sub := c.Ledger(cat).Subtotal()
	fmt.Printf("  %-4s %-20s %8s %10s %10s %12s\n", "", "SUBTOTAL",
		core.FormatAmount(sub.Qty), "", core.FormatAmount(sub.Discount), core.FormatAmount(sub.Amount))
	fmt.Println(strings.Repeat("-", 70))
}

func printMonth(result *app.MonthlyReportResult) {
	view := result.View
	t := result.Totals

	fmt.Println()
	fmt.Println(strings.Repeat("=", 86))
	fmt.Printf("  MONTHLY REPORT — %s (%s)\n", view.Name, view.Month.Label())
	fmt.Println(strings.Repeat("=", 86))
	if view.Summary == nil {
		fmt.Println("  No records for this month.")
		fmt.Println(strings.Repeat("=", 86))
		return
	}
	fmt.Printf("  %-4s %10s %10s %10s %8s %8s %10s %10s %10s\n",
		"DAY", "LOCAL", "SPECIAL", "TOTAL", "FUEL", "COMM", "NET", "CASH", "SHORT")
	fmt.Println(strings.Repeat("-", 86))
	for day, s := range view.Days {
		if !view.Present[day] {
			continue
		}
		comm := s.CommissionLocalValue.Add(s.CommissionSpecialValue)
		fmt.Printf("  %-4d %10s %10s %10s %8s %8s %10s %10s %10s\n", day+1,
			core.FormatAmount(s.LocalSale), core.FormatAmount(s.SpecialSale),
			core.FormatAmount(s.Total), core.FormatAmount(s.Fuel), core.FormatAmount(comm),
			core.FormatAmount(s.Net), core.FormatAmount(s.Cash), core.FormatAmount(s.Short))
	}
	fmt.Println(strings.Repeat("-", 86))
	summary := [][2]string{
		{"Total Sale", core.FormatAmount(t.TotalSale)},
		{"Total Commission", core.FormatAmount(t.TotalCommission)},
		{"Fuel", core.FormatAmount(t.Fuel)},
		{"H.Van", core.FormatAmount(t.Hvan)},
		{"Misc", core.FormatAmount(t.Misc)},
		{"Total Expense", core.FormatAmount(t.TotalExpense)},
		{"Net", core.FormatAmount(t.Net)},
		{"Cash", core.FormatAmount(t.Cash)},
		{"Short", core.FormatAmount(t.Short)},
		{"Previous Shortage", core.FormatAmount(t.PreviousShortage)},
		{"Total Short", core.FormatAmount(t.TotalShort)},
	}
	for _, kv := range summary {
		fmt.Printf("  %-20s %15s\n", kv[0], kv[1])
	}
	fmt.Println(strings.Repeat("=", 86))
}

func printRoster(result *app.RosterResult) {
	fmt.Println()
	fmt.Println(strings.Repeat("=", 88))
	fmt.Printf("  ALL AGENTS — %s\n", result.Month.Label())
	fmt.Println(strings.Repeat("=", 88))
	if len(result.Entries) == 0 {
		fmt.Println("  No roster entries for this month.")
		fmt.Println(strings.Repeat("=", 88))
		return
	}
	fmt.Printf("  %-18s %12s %12s %10s %10s %10s %10s\n",
		"NAME", "TOTAL", "NET", "CASH", "SHORT", "FUEL", "H.VAN")
	fmt.Println(strings.Repeat("-", 88))
	for _, e := range result.Entries {
		fmt.Printf("  %-18s %12s %12s %10s %10s %10s %10s\n", e.Name,
			core.FormatAmount(e.Total), core.FormatAmount(e.Net),
			core.FormatAmount(e.Cash), core.FormatAmount(e.Short),
			core.FormatAmount(e.Fuel), core.FormatAmount(e.Hvan))
	}
	fmt.Println(strings.Repeat("-", 88))
	fmt.Printf("  %-18s %12s %12s %10s %10s %10s %10s\n", "GRAND TOTAL",
		core.FormatAmount(result.Totals.Total), core.FormatAmount(result.Totals.Net),
		core.FormatAmount(result.Totals.Cash), core.FormatAmount(result.Totals.Short),
		core.FormatAmount(result.Totals.Fuel), core.FormatAmount(result.Totals.Hvan))
	fmt.Printf("  Agents: %d\n", result.Totals.AgentCount)
	fmt.Println(strings.Repeat("=", 88))
}

func printDraft(d *core.ChallanDraft) {
	fmt.Printf("\nAGENT:      %s (%s)\n", d.Name, d.Sector)
	fmt.Printf("DATE:       %s   D.C# %s\n", d.Date, blank(d.DCNo))
	fmt.Printf("REASONING:  %s\n", d.Reasoning)
	fmt.Printf("CONFIDENCE: %.2f\n", d.Confidence)
	fmt.Println("LOCAL ITEMS:")
	printDraftLines(d.LocalItems)
	if len(d.SpecialItems) > 0 {
		fmt.Println("SPECIAL ITEMS:")
		printDraftLines(d.SpecialItems)
	}
	if d.RatePerLitre != "" || d.TotalLitre != "" {
		fmt.Printf("FUEL:       %s litre @ %s\n", blank(d.TotalLitre), blank(d.RatePerLitre))
	}
	fmt.Printf("CASH:       %s   Previous Short: %s\n", blank(d.Cash), blank(d.PreviousShort))
}

func printDraftLines(lines []core.DraftLine) {
	for _, l := range lines {
		fmt.Printf("  %-20s qty %-8s price %-10s disc/unit %s\n",
			l.Item, blank(l.Qty), blank(l.Price), blank(l.DiscountPc))
	}
}

func blank(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

func printHelp() {
	fmt.Println()
	fmt.Println("CHALLAN LEDGER — COMMANDS")
	fmt.Println(strings.Repeat("=", 66))
	fmt.Println()
	fmt.Println("  DAILY RECORD")
	fmt.Println("  /new                          Guided challan entry (interactive)")
	fmt.Println("  /show                         Print the current form")
	fmt.Println("  /save                         Save the form (daily + monthly rollup)")
	fmt.Println("  /load <name> <dd-mm-yyyy>     Load a stored record (read-only)")
	fmt.Println("  /back                         Exit a loaded record to a blank form")
	fmt.Println("  /prefill <name>               Copy the agent's last commission %")
	fmt.Println()
	fmt.Println("  COMMISSION")
	fmt.Println("  /pct <local|special> <n>      Set commission percent")
	fmt.Println("  /lock <local|special>         Finalize (freeze) the commission")
	fmt.Println("  /unlock <local|special>       Unlock and clear the percent")
	fmt.Println()
	fmt.Println("  REPORTS")
	fmt.Println("  /agents                       List known agent names")
	fmt.Println("  /month <name> <mm-yyyy>       Agent monthly report")
	fmt.Println("  /company <mm-yyyy>            Company-wide roster with grand totals")
	fmt.Println()
	fmt.Println("  EXPORT")
	fmt.Println("  /export day     <name> <dd-mm-yyyy> <file.xlsx>")
	fmt.Println("  /export month   <name> <mm-yyyy> <file.xlsx>")
	fmt.Println("  /export company <mm-yyyy> <file.xlsx>")
	fmt.Println()
	fmt.Println("  SESSION")
	fmt.Println("  /help                         Show this help")
	fmt.Println("  /exit                         Exit")
	fmt.Println()
	fmt.Println("  AGENT MODE  (no / prefix)")
	fmt.Println("  Dictate a daily report in natural language.")
	fmt.Println("  Example: \"Ali sector 7 sold 40 crates at 120, gave 3200 cash\"")
	fmt.Println(strings.Repeat("=", 66))
}
