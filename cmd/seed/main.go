// seed loads demo challans through the regular save pipeline so every
// namespace (daily, monthly, roster) ends up populated. Run it against an
// empty store to get a browsable data set.
//
// Usage: go run ./cmd/seed
package main

import (
	"context"
	"log"
	"os"
	"strings"

	"challan-ledger/internal/app"
	"challan-ledger/internal/core"
	"challan-ledger/internal/logging"
	"challan-ledger/internal/store"

	"github.com/joho/godotenv"
)

type seedRow struct {
	item, qty, price, disc string
}

type seedDay struct {
	name, sector, dcno, date string
	localPct, specialPct     string
	local, special           []seedRow
	ratePerLitre, totalLitre string
	misc, hvan, cash         string
	previousShort            string
}

var seedDays = []seedDay{
	{
		name: "Ali", sector: "7-B", dcno: "101", date: "03-07-2025",
		localPct: "10", specialPct: "12",
		local: []seedRow{
			{"Crate 1.5L", "40", "120", "2"},
			{"Crate 500ml", "25", "80", ""},
		},
		special:      []seedRow{{"Premium 1L", "10", "150", ""}},
		ratePerLitre: "280", totalLitre: "11.5",
		misc: "200", hvan: "500", cash: "6000",
	},
	{
		name: "Ali", sector: "7-B", dcno: "108", date: "04-07-2025",
		localPct: "10", specialPct: "12",
		local: []seedRow{
			{"Crate 1.5L", "35", "120", "2"},
		},
		ratePerLitre: "280", totalLitre: "9",
		cash: "3500", previousShort: "150",
	},
	{
		name: "Bilal", sector: "12-A", dcno: "205", date: "03-07-2025",
		localPct: "8",
		local: []seedRow{
			{"Crate 1.5L", "60", "120", ""},
			{"Crate 250ml", "30", "60", "1"},
		},
		ratePerLitre: "280", totalLitre: "14",
		hvan: "800", cash: "8200",
	},
}

func main() {
	_ = godotenv.Load()

	ctx := context.Background()
	logger := logging.New()

	backend := strings.ToLower(strings.TrimSpace(os.Getenv("CHALLAN_STORE")))
	var kv store.KV
	switch backend {
	case "", "postgres":
		pg, err := store.NewPostgres(ctx)
		if err != nil {
			log.Fatalf("Failed to connect: %v", err)
		}
		defer pg.Close()
		kv = pg
	case "redis":
		r, err := store.NewRedis(ctx)
		if err != nil {
			log.Fatalf("Failed to connect: %v", err)
		}
		defer r.Close()
		kv = r
	case "memory":
		log.Fatal("CHALLAN_STORE=memory makes no sense for seeding: nothing would persist")
	default:
		log.Fatalf("Unknown CHALLAN_STORE backend: %q", backend)
	}

	svc := app.NewAppService(kv, nil, logger)

	months := map[string]core.Month{}
	for _, day := range seedDays {
		form := buildChallan(day)
		result, err := svc.SaveChallan(ctx, form)
		if err != nil {
			log.Fatalf("Failed to seed %s %s: %v", day.name, day.date, err)
		}
		log.Printf("Seeded %q", result.Key)

		date, err := core.ParseChallanDate(day.date)
		if err != nil {
			log.Fatalf("Bad seed date %q: %v", day.date, err)
		}
		months[day.name] = core.MonthOf(date)
	}

	// Loading each monthly report upserts the roster entry as a side effect.
	for name, m := range months {
		result, err := svc.GetMonthlyReport(ctx, name, m)
		if err != nil {
			log.Fatalf("Failed to load month for %s: %v", name, err)
		}
		if result.RosterSyncErr != nil {
			log.Fatalf("Roster sync failed for %s: %v", name, result.RosterSyncErr)
		}
		log.Printf("Roster synced: %s (%s)", name, m.Label())
	}

	log.Println("Seed complete.")
}

func buildChallan(day seedDay) *core.Challan {
	c := core.NewChallan()
	c.Details.Name = day.name
	c.Details.Sector = day.sector
	c.Details.DCNo = day.dcno
	c.Details.Date = day.date

	fillRows(c, core.CategoryLocal, day.local)
	fillRows(c, core.CategorySpecial, day.special)

	if day.ratePerLitre != "" {
		c.UpdateReading(core.ReadingRatePerLitre, day.ratePerLitre)
	}
	if day.totalLitre != "" {
		c.UpdateReading(core.ReadingTotalLitre, day.totalLitre)
	}
	if day.misc != "" {
		c.UpdateFinance(core.FinanceMisc, day.misc)
	}
	if day.hvan != "" {
		c.UpdateFinance(core.FinanceHvan, day.hvan)
	}
	if day.cash != "" {
		c.UpdateFinance(core.FinanceCash, day.cash)
	}
	if day.previousShort != "" {
		c.UpdateFinance(core.FinancePreviousShort, day.previousShort)
	}

	if day.localPct != "" {
		c.SetCommissionPercent(core.CategoryLocal, day.localPct)
		c.FinalizeCommission(core.CategoryLocal)
	}
	if day.specialPct != "" {
		c.SetCommissionPercent(core.CategorySpecial, day.specialPct)
		c.FinalizeCommission(core.CategorySpecial)
	}
	return c
}

func fillRows(c *core.Challan, cat core.Category, rows []seedRow) {
	for i, r := range rows {
		if i > 0 {
			c.AddRow(cat)
		}
		c.UpdateItem(cat, i, core.FieldItem, r.item)
		c.UpdateItem(cat, i, core.FieldQty, r.qty)
		c.UpdateItem(cat, i, core.FieldPrice, r.price)
		if r.disc != "" {
			c.UpdateItem(cat, i, core.FieldDiscountPc, r.disc)
		}
	}
}
