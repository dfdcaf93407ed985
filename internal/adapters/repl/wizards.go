package repl

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"challan-ledger/internal/app"
	"challan-ledger/internal/core"

	"github.com/shopspring/decimal"
)

// handleNewChallan runs an interactive challan entry session against the
// shared session form.
func handleNewChallan(ctx context.Context, reader *bufio.Reader, svc app.ApplicationService, form *core.Challan) {
	fmt.Println("New challan. Leave any prompt blank to skip, type 'cancel' to abort.")

	name, cancelled := prompt(reader, "Agent name: ")
	if cancelled {
		fmt.Println("Challan entry cancelled.")
		return
	}
	form.Details.Name = name

	if found, err := svc.PrefillCommission(ctx, form, name); err == nil && found {
		fmt.Printf("  (commission prefilled from last record: local %s%%, special %s%%)\n",
			form.CommissionPercent(core.CategoryLocal), form.CommissionPercent(core.CategorySpecial))
	}

	if v, c := prompt(reader, "Sector: "); c {
		fmt.Println("Challan entry cancelled.")
		return
	} else {
		form.Details.Sector = v
	}
	if v, c := prompt(reader, "D.C number: "); c {
		fmt.Println("Challan entry cancelled.")
		return
	} else {
		form.Details.DCNo = v
	}
	if v, c := prompt(reader, fmt.Sprintf("Date [%s]: ", form.Details.Date)); c {
		fmt.Println("Challan entry cancelled.")
		return
	} else if v != "" {
		form.Details.Date = v
	}

	if !enterItemRows(reader, form, core.CategoryLocal, "LOCAL") {
		return
	}
	if !enterItemRows(reader, form, core.CategorySpecial, "SPECIAL") {
		return
	}

	fmt.Println("Reading info (blank to skip):")
	readingPrompts := []struct {
		label string
		field core.ReadingField
	}{
		{"  Reading out: ", core.ReadingOut},
		{"  Reading in: ", core.ReadingIn},
		{"  Total km: ", core.ReadingTotalKm},
		{"  Rate per km: ", core.ReadingRatePerKm},
		{"  Total litre: ", core.ReadingTotalLitre},
		{"  Rate per litre: ", core.ReadingRatePerLitre},
	}
	for _, p := range readingPrompts {
		v, c := prompt(reader, p.label)
		if c {
			fmt.Println("Challan entry cancelled.")
			return
		}
		if v != "" {
			form.UpdateReading(p.field, v)
		}
	}

	fmt.Println("Finance (blank to skip):")
	financePrompts := []struct {
		label string
		field core.FinanceField
	}{
		{"  Misc: ", core.FinanceMisc},
		{"  H.Van: ", core.FinanceHvan},
		{"  Cash received: ", core.FinanceCash},
		{"  Previous short: ", core.FinancePreviousShort},
		{"  Other expense: ", core.FinanceOtherExpense},
	}
	for _, p := range financePrompts {
		v, c := prompt(reader, p.label)
		if c {
			fmt.Println("Challan entry cancelled.")
			return
		}
		if v != "" {
			form.UpdateFinance(p.field, v)
		}
	}

	enterCommission(reader, form, core.CategoryLocal, "local")
	enterCommission(reader, form, core.CategorySpecial, "special")

	printChallan(form)

	fmt.Print("Save this challan? (y/n): ")
	choice, _ := reader.ReadString('\n')
	choice = strings.TrimSpace(strings.ToLower(choice))
	if choice != "y" && choice != "yes" {
		fmt.Println("Not saved. The form is kept; use /save when ready.")
		return
	}

	result, err := svc.SaveChallan(ctx, form)
	if err != nil {
		fmt.Printf("Save FAILED: %v\n", err)
		if result != nil && result.Key != "" {
			fmt.Println("The daily record was committed. Run /save to retry the rollup.")
		}
		return
	}
	fmt.Printf("Saved %q. Form reset.\n", result.Key)
}

// enterItemRows collects line items for one category. Returns false when the
// user cancels the whole entry.
func enterItemRows(reader *bufio.Reader, form *core.Challan, cat core.Category, title string) bool {
	fmt.Printf("%s items. Format per line: <item> <qty> <price> [disc-per-unit]\n", title)
	fmt.Println("  Type 'done' when finished, 'cancel' to abort.")

	rowNum := 0
	for {
		fmt.Printf("  %s %d: ", strings.ToLower(title), rowNum+1)
		raw, _ := reader.ReadString('\n')
		raw = strings.TrimSpace(raw)
		if strings.ToLower(raw) == "cancel" {
			fmt.Println("Challan entry cancelled.")
			return false
		}
		if strings.ToLower(raw) == "done" || raw == "" {
			return true
		}

		parts := strings.Fields(raw)
		if len(parts) < 3 {
			fmt.Println("  Invalid format. Use: <item> <qty> <price> [disc-per-unit]")
			continue
		}

		// The item name may contain spaces; qty, price and the optional
		// discount are the trailing numeric tokens.
		numeric := 2
		if len(parts) >= 4 && isNumeric(parts[len(parts)-3]) {
			numeric = 3
		}
		if !isNumeric(parts[len(parts)-2]) || !isNumeric(parts[len(parts)-1]) {
			fmt.Println("  Invalid format. Use: <item> <qty> <price> [disc-per-unit]")
			continue
		}
		item := strings.Join(parts[:len(parts)-numeric], " ")
		tail := parts[len(parts)-numeric:]

		if rowNum > 0 {
			form.AddRow(cat)
		}
		form.UpdateItem(cat, rowNum, core.FieldItem, item)
		form.UpdateItem(cat, rowNum, core.FieldQty, tail[0])
		form.UpdateItem(cat, rowNum, core.FieldPrice, tail[1])
		if numeric == 3 {
			form.UpdateItem(cat, rowNum, core.FieldDiscountPc, tail[2])
		}
		rowNum++
	}
}

func enterCommission(reader *bufio.Reader, form *core.Challan, cat core.Category, label string) {
	if form.CommissionFinalized(cat) {
		fmt.Printf("Commission %s already finalized at %s%%.\n", label, form.CommissionPercent(cat))
		return
	}
	def := form.CommissionPercent(cat)
	fmt.Printf("Commission %s percent [%s]: ", label, blank(def))
	raw, _ := reader.ReadString('\n')
	raw = strings.TrimSpace(raw)
	if raw != "" {
		form.SetCommissionPercent(cat, raw)
	}
	if form.CommissionPercent(cat) == "" {
		return
	}
	fmt.Printf("  Commission %s value: %s. Finalize now? (y/n): ", label,
		core.FormatAmount(commissionValue(form, cat)))
	choice, _ := reader.ReadString('\n')
	choice = strings.TrimSpace(strings.ToLower(choice))
	if choice == "y" || choice == "yes" {
		form.FinalizeCommission(cat)
		fmt.Printf("  Commission %s LOCKED.\n", label)
	}
}

func isNumeric(s string) bool {
	_, err := decimal.NewFromString(strings.ReplaceAll(s, ",", ""))
	return err == nil
}

func commissionValue(c *core.Challan, cat core.Category) decimal.Decimal {
	if cat == core.CategoryLocal {
		return c.Finance.CommissionLocal
	}
	return c.Finance.CommissionSpecial
}

// prompt reads one trimmed line. The second return is true when the user
// typed 'cancel'.
func prompt(reader *bufio.Reader, label string) (string, bool) {
	fmt.Print(label)
	raw, _ := reader.ReadString('\n')
	raw = strings.TrimSpace(raw)
	if strings.ToLower(raw) == "cancel" {
		return "", true
	}
	return raw, false
}
