package core

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"challan-ledger/internal/store"
)

// CompanyService maintains the per-month company roster: one entry per agent
// name, upserted whenever that agent's monthly view is computed.
type CompanyService interface {
	UpsertAgentMonth(ctx context.Context, m Month, entry RosterEntry) error
	LoadRoster(ctx context.Context, m Month) ([]RosterEntry, error)
}

type companyService struct {
	roster *RosterStore
	log    *logrus.Logger
}

func NewCompanyService(kv store.KV, log *logrus.Logger) CompanyService {
	return &companyService{roster: NewRosterStore(kv), log: log}
}

// UpsertAgentMonth replaces the named agent's entry in the month's roster, or
// appends it. The roster is small (bounded by agent count) so the linear
// scan is fine.
func (s *companyService) UpsertAgentMonth(ctx context.Context, m Month, entry RosterEntry) error {
	entries, _, err := s.roster.Get(ctx, m)
	if err != nil {
		return &StorageWriteError{Step: "roster", Key: m.Key(), Err: err}
	}

	replaced := false
	for i := range entries {
		if entries[i].Name == entry.Name {
			entries[i] = entry
			replaced = true
			break
		}
	}
	if !replaced {
		entries = append(entries, entry)
	}

	if err := s.roster.Put(ctx, m, entries); err != nil {
		werr := &StorageWriteError{Step: "roster", Key: m.Key(), Err: err}
		s.log.WithFields(logrus.Fields{"step": "roster", "key": m.Key()}).Error(err.Error())
		return werr
	}
	return nil
}

// LoadRoster returns the month's roster, empty when nothing is stored.
func (s *companyService) LoadRoster(ctx context.Context, m Month) ([]RosterEntry, error) {
	entries, _, err := s.roster.Get(ctx, m)
	return entries, err
}

// RosterEntryFromTotals maps an agent's monthly totals onto their roster row.
// Short carries the previous shortage in, matching the roster contract.
func RosterEntryFromTotals(name string, t MonthTotals) RosterEntry {
	return RosterEntry{
		Name:              name,
		LocalSale:         t.LocalSale,
		SpecialSale:       t.SpecialSale,
		Total:             t.TotalSale,
		CommissionLocal:   t.CommissionLocal,
		CommissionSpecial: t.CommissionSpecial,
		Fuel:              t.Fuel,
		DiscountLocal:     t.DiscountLocal,
		DiscountSpecial:   t.DiscountSpecial,
		Hvan:              t.Hvan,
		Misc:              t.Misc,
		Net:               t.Net,
		Cash:              t.Cash,
		Short:             t.Short.Add(t.PreviousShortage),
	}
}

// GrandTotals is the company-wide fold of one month's roster.
type GrandTotals struct {
	AgentCount        int
	LocalSale         decimal.Decimal
	SpecialSale       decimal.Decimal
	Total             decimal.Decimal
	CommissionLocal   decimal.Decimal
	CommissionSpecial decimal.Decimal
	Fuel              decimal.Decimal
	DiscountLocal     decimal.Decimal
	DiscountSpecial   decimal.Decimal
	Hvan              decimal.Decimal
	Misc              decimal.Decimal
	Net               decimal.Decimal
	Cash              decimal.Decimal
	Short             decimal.Decimal
}

// ComputeGrandTotals folds all roster entries for a month. Recomputed on
// read, never stored.
func ComputeGrandTotals(entries []RosterEntry) GrandTotals {
	t := GrandTotals{AgentCount: len(entries)}
	for _, e := range entries {
		t.LocalSale = t.LocalSale.Add(e.LocalSale)
		t.SpecialSale = t.SpecialSale.Add(e.SpecialSale)
		t.Total = t.Total.Add(e.Total)
		t.CommissionLocal = t.CommissionLocal.Add(e.CommissionLocal)
		t.CommissionSpecial = t.CommissionSpecial.Add(e.CommissionSpecial)
		t.Fuel = t.Fuel.Add(e.Fuel)
		t.DiscountLocal = t.DiscountLocal.Add(e.DiscountLocal)
		t.DiscountSpecial = t.DiscountSpecial.Add(e.DiscountSpecial)
		t.Hvan = t.Hvan.Add(e.Hvan)
		t.Misc = t.Misc.Add(e.Misc)
		t.Net = t.Net.Add(e.Net)
		t.Cash = t.Cash.Add(e.Cash)
		t.Short = t.Short.Add(e.Short)
	}
	return t
}
