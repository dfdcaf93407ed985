package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"

	"challan-ledger/internal/app"
	"challan-ledger/internal/core"
)

// Run executes a one-shot CLI command and exits.
// args is os.Args[1:]; the first element is the subcommand name.
func Run(ctx context.Context, svc app.ApplicationService, args []string) {
	switch args[0] {
	case "save", "s":
		var rec core.DailyRecord
		if err := json.NewDecoder(os.Stdin).Decode(&rec); err != nil {
			log.Fatalf("Invalid JSON: %v", err)
		}
		c := core.NewChallan()
		c.ApplyDraft(rec)
		result, err := svc.SaveChallan(ctx, c)
		if err != nil {
			if result != nil && result.Key != "" {
				log.Fatalf("Daily record saved as %q, but the monthly rollup failed: %v", result.Key, err)
			}
			log.Fatalf("Save failed: %v", err)
		}
		fmt.Printf("Saved %q.\n", result.Key)

	case "show":
		if len(args) < 3 {
			log.Fatal("Usage: app show <agent-name> <dd-mm-yyyy>")
		}
		c := core.NewChallan()
		result, err := svc.LoadChallan(ctx, c, args[1], args[2])
		if err != nil {
			log.Fatalf("Load failed: %v", err)
		}
		if !result.Found {
			fmt.Printf("No record for %s on %s.\n", args[1], args[2])
			os.Exit(1)
		}
		printChallan(result.Record)

	case "agents":
		result, err := svc.ListAgentNames(ctx)
		if err != nil {
			log.Fatalf("Failed to list agents: %v", err)
		}
		if len(result.Names) == 0 {
			fmt.Println("No agents recorded yet.")
			return
		}
		for _, name := range result.Names {
			fmt.Println(name)
		}

	case "month", "m":
		if len(args) < 3 {
			log.Fatal("Usage: app month <agent-name> <mm-yyyy>")
		}
		m, err := core.ParseMonth(args[2])
		if err != nil {
			log.Fatalf("Invalid month: %v", err)
		}
		result, err := svc.GetMonthlyReport(ctx, args[1], m)
		if err != nil {
			log.Fatalf("Failed to load month: %v", err)
		}
		printMonth(result)
		if result.RosterSyncErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: roster sync failed: %v\n", result.RosterSyncErr)
		}

	case "company", "c":
		if len(args) < 2 {
			log.Fatal("Usage: app company <mm-yyyy>")
		}
		m, err := core.ParseMonth(args[1])
		if err != nil {
			log.Fatalf("Invalid month: %v", err)
		}
		result, err := svc.GetCompanyRoster(ctx, m)
		if err != nil {
			log.Fatalf("Failed to load roster: %v", err)
		}
		printRoster(result)

	case "export-daily":
		if len(args) < 4 {
			log.Fatal("Usage: app export-daily <agent-name> <dd-mm-yyyy> <file.xlsx>")
		}
		if err := svc.ExportDaily(ctx, args[1], args[2], args[3]); err != nil {
			log.Fatalf("Export failed: %v", err)
		}
		fmt.Printf("Wrote %s.\n", args[3])

	case "export-month":
		if len(args) < 4 {
			log.Fatal("Usage: app export-month <agent-name> <mm-yyyy> <file.xlsx>")
		}
		m, err := core.ParseMonth(args[2])
		if err != nil {
			log.Fatalf("Invalid month: %v", err)
		}
		if err := svc.ExportMonthly(ctx, args[1], m, args[3]); err != nil {
			log.Fatalf("Export failed: %v", err)
		}
		fmt.Printf("Wrote %s.\n", args[3])

	case "export-company":
		if len(args) < 3 {
			log.Fatal("Usage: app export-company <mm-yyyy> <file.xlsx>")
		}
		m, err := core.ParseMonth(args[1])
		if err != nil {
			log.Fatalf("Invalid month: %v", err)
		}
		if err := svc.ExportRoster(ctx, m, args[2]); err != nil {
			log.Fatalf("Export failed: %v", err)
		}
		fmt.Printf("Wrote %s.\n", args[2])

	case "propose", "prop", "p":
		if len(args) < 2 {
			log.Fatal("Usage: app propose \"<dictated daily report>\"")
		}
		result, err := svc.InterpretChallan(ctx, args[1])
		if err != nil {
			log.Fatalf("Agent error: %v", err)
		}
		if result.IsClarification {
			fmt.Fprintln(os.Stderr, "AI needs clarification:", result.ClarificationMessage)
			os.Exit(1)
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		enc.Encode(result.Draft)

	default:
		log.Fatalf("Unknown command: %s\nAvailable: save, show, agents, month, company, export-daily, export-month, export-company, propose", args[0])
	}
}

func printChallan(rec *core.DailyRecord) {
	fmt.Println()
	fmt.Println(strings.Repeat("=", 62))
	fmt.Printf("  %-58s\n", "DELIVERY CHALLAN")
	fmt.Printf("  D.C#   : %s\n", rec.AgentDetails.DCNo)
	fmt.Printf("  Name   : %s\n", rec.AgentDetails.Name)
	fmt.Printf("  Sector : %s\n", rec.AgentDetails.Sector)
	fmt.Printf("  Date   : %s\n", rec.AgentDetails.Date)
	fmt.Println(strings.Repeat("=", 62))

	printItemTable("LOCAL SALE", rec.LocalRows)
	printItemTable("SPECIAL SALE", rec.SpecialRows)

	fmt.Println(strings.Repeat("-", 62))
	rows := [][2]string{
		{"Total Sale", core.FormatAmount(rec.Finance.TotalSale)},
		{"Commission Local", core.FormatAmount(rec.Finance.CommissionLocal)},
		{"Commission Special", core.FormatAmount(rec.Finance.CommissionSpecial)},
		{"Fuel", core.FormatAmount(rec.Finance.Fuel)},
		{"Total Discount", core.FormatAmount(rec.Finance.TotalDiscount)},
		{"Misc", rec.Finance.Misc},
		{"H.Van", rec.Finance.Hvan},
		{"Net Sale", core.FormatAmount(rec.Finance.NetSale)},
		{"Cash", rec.Finance.Cash},
		{"Short", core.FormatAmount(rec.Finance.Short)},
		{"Previous Short", rec.Finance.PreviousShort},
		{"Total Shortage", core.FormatAmount(rec.Finance.TotalShortage)},
	}
	for _, kv := range rows {
		fmt.Printf("  %-20s %15s\n", kv[0], kv[1])
	}
	fmt.Println(strings.Repeat("=", 62))
}

func printItemTable(title string, rows []core.LineItem) {
	fmt.Printf("  %s\n", title)
	fmt.Printf("  %-20s %8s %10s %10s\n", "ITEM", "QTY", "PRICE", "DISC/UNIT")
	fmt.Println(strings.Repeat("-", 62))
	for _, r := range rows {
		fmt.Printf("  %-20s %8s %10s %10s\n", r.Item, r.Qty, r.Price, r.DiscountPc)
	}
	sub := (&core.ItemLedger{Rows: rows}).Subtotal()
	fmt.Printf("  %-20s %8s %10s amount %s, discount %s\n", "SUBTOTAL",
		core.FormatAmount(sub.Qty), core.FormatAmount(sub.Price),
		core.FormatAmount(sub.Amount), core.FormatAmount(sub.Discount))
	fmt.Println(strings.Repeat("-", 62))
}

func printMonth(result *app.MonthlyReportResult) {
	view := result.View
	t := result.Totals

	fmt.Println()
	fmt.Println(strings.Repeat("=", 78))
	fmt.Printf("  MONTHLY REPORT: %s (%s)\n", view.Name, view.Month.Label())
	fmt.Println(strings.Repeat("=", 78))
	fmt.Printf("  %-4s %12s %12s %12s %10s %10s %10s\n",
		"DAY", "LOCAL", "SPECIAL", "TOTAL", "NET", "CASH", "SHORT")
	fmt.Println(strings.Repeat("-", 78))
	for day, s := range view.Days {
		if !view.Present[day] {
			continue
		}
		fmt.Printf("  %-4d %12s %12s %12s %10s %10s %10s\n", day+1,
			core.FormatAmount(s.LocalSale), core.FormatAmount(s.SpecialSale),
			core.FormatAmount(s.Total), core.FormatAmount(s.Net),
			core.FormatAmount(s.Cash), core.FormatAmount(s.Short))
	}
	fmt.Println(strings.Repeat("-", 78))
	fmt.Printf("  %-20s %15s\n", "Total Sale", core.FormatAmount(t.TotalSale))
	fmt.Printf("  %-20s %15s\n", "Total Commission", core.FormatAmount(t.TotalCommission))
	fmt.Printf("  %-20s %15s\n", "Total Expense", core.FormatAmount(t.TotalExpense))
	fmt.Printf("  %-20s %15s\n", "Cash", core.FormatAmount(t.Cash))
	fmt.Printf("  %-20s %15s\n", "Short", core.FormatAmount(t.Short))
	fmt.Printf("  %-20s %15s\n", "Previous Shortage", core.FormatAmount(t.PreviousShortage))
	fmt.Printf("  %-20s %15s\n", "Total Short", core.FormatAmount(t.TotalShort))
	fmt.Println(strings.Repeat("=", 78))
}

func printRoster(result *app.RosterResult) {
	fmt.Println()
	fmt.Println(strings.Repeat("=", 78))
	fmt.Printf("  ALL AGENTS: %s\n", result.Month.Label())
	fmt.Printf("  Agents: %d   Total Sale: %s\n",
		result.Totals.AgentCount, core.FormatAmount(result.Totals.Total))
	fmt.Println(strings.Repeat("=", 78))
	if len(result.Entries) == 0 {
		fmt.Println("  No roster entries for this month.")
		fmt.Println(strings.Repeat("=", 78))
		return
	}
	fmt.Printf("  %-18s %12s %12s %10s %10s %10s\n",
		"NAME", "TOTAL", "NET", "CASH", "SHORT", "FUEL")
	fmt.Println(strings.Repeat("-", 78))
	for _, e := range result.Entries {
		fmt.Printf("  %-18s %12s %12s %10s %10s %10s\n", e.Name,
			core.FormatAmount(e.Total), core.FormatAmount(e.Net),
			core.FormatAmount(e.Cash), core.FormatAmount(e.Short),
			core.FormatAmount(e.Fuel))
	}
	fmt.Println(strings.Repeat("-", 78))
	fmt.Printf("  %-18s %12s %12s %10s %10s %10s\n", "GRAND TOTAL",
		core.FormatAmount(result.Totals.Total), core.FormatAmount(result.Totals.Net),
		core.FormatAmount(result.Totals.Cash), core.FormatAmount(result.Totals.Short),
		core.FormatAmount(result.Totals.Fuel))
	fmt.Println(strings.Repeat("=", 78))
}
