package core

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"

	"challan-ledger/internal/store"
)

// RecordService owns the daily save/load pipeline. A save writes the daily
// snapshot first, then derives and upserts the agent's monthly day slot; the
// two writes are best-effort sequential, so a monthly failure leaves the
// daily record committed and is reported, never swallowed.
type RecordService interface {
	Save(ctx context.Context, c *Challan) (string, error)
	Load(ctx context.Context, c *Challan, name, date string) (bool, error)
	AgentNames(ctx context.Context) ([]string, error)
	PrefillCommission(ctx context.Context, c *Challan, name string) (bool, error)
}

type recordService struct {
	daily   *DailyStore
	monthly *MonthlyStore
	log     *logrus.Logger
}

func NewRecordService(kv store.KV, log *logrus.Logger) RecordService {
	return &recordService{
		daily:   NewDailyStore(kv),
		monthly: NewMonthlyStore(kv),
		log:     log,
	}
}

// DailyKey builds the composite daily-namespace key.
func DailyKey(name, date string) string {
	return name + "__" + date
}

// MonthlyKey builds the monthly-namespace key for an agent and month.
func MonthlyKey(name string, m Month) string {
	return fmt.Sprintf("M.R %s %s", name, m.ShortKey())
}

func (s *recordService) Save(ctx context.Context, c *Challan) (string, error) {
	if c.Mode() == ModeReadOnly {
		return "", &ValidationError{Field: "mode", Reason: "loaded record is read-only; exit before saving a new one"}
	}

	name := strings.TrimSpace(c.Details.Name)
	if name == "" {
		return "", &ValidationError{Field: "name", Reason: "agent name is required"}
	}

	date, err := ParseChallanDate(c.Details.Date)
	if err != nil {
		return "", &ValidationError{Field: "date", Reason: err.Error()}
	}

	c.Recompute()

	key := DailyKey(name, c.Details.Date)
	snapshot := c.Snapshot()
	snapshot.AgentDetails.Name = name

	if err := s.daily.Put(ctx, key, snapshot); err != nil {
		werr := &StorageWriteError{Step: "daily", Key: key, Err: err}
		s.log.WithFields(logrus.Fields{"step": "daily", "key": key}).Error(err.Error())
		return "", werr
	}

	if err := s.upsertMonthly(ctx, c, name, date.Day(), MonthOf(date)); err != nil {
		// The daily write above is already committed and stays committed.
		s.log.WithFields(logrus.Fields{"step": "monthly", "key": key}).Error(err.Error())
		return key, err
	}

	c.Reset()
	return key, nil
}

// upsertMonthly reads or creates the agent-month summary and replaces the
// day's slot with the finance subset of the record being saved.
func (s *recordService) upsertMonthly(ctx context.Context, c *Challan, name string, day int, m Month) error {
	mrKey := MonthlyKey(name, m)

	summary, found, err := s.monthly.Get(ctx, mrKey)
	if err != nil {
		return &StorageWriteError{Step: "monthly", Key: mrKey, Err: err}
	}
	if !found {
		summary = &MonthlySummary{
			Name:                     name,
			Sector:                   c.Details.Sector,
			Month:                    m.ShortKey(),
			CommissionLocalPercent:   c.CommissionPercent(CategoryLocal),
			CommissionSpecialPercent: c.CommissionPercent(CategorySpecial),
			Records:                  make(map[int]DaySlot),
		}
	}
	if summary.Records == nil {
		summary.Records = make(map[int]DaySlot)
	}

	summary.Records[day-1] = DaySlot{Summary: c.DaySummary()}

	if err := s.monthly.Put(ctx, mrKey, *summary); err != nil {
		return &StorageWriteError{Step: "monthly", Key: mrKey, Err: err}
	}
	return nil
}

// Load looks up a record by agent and date. A miss leaves the form untouched
// and returns false; a hit replaces every field and puts the form in
// ReadOnly mode.
func (s *recordService) Load(ctx context.Context, c *Challan, name, date string) (bool, error) {
	key := DailyKey(strings.TrimSpace(name), date)
	rec, found, err := s.daily.Get(ctx, key)
	if err != nil {
		return false, err
	}
	if !found {
		return false, nil
	}
	c.LoadSnapshot(*rec)
	return true, nil
}

// AgentNames returns the distinct non-blank agent names observed across all
// daily keys, sorted.
func (s *recordService) AgentNames(ctx context.Context) ([]string, error) {
	keys, err := s.daily.Keys(ctx)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var names []string
	for _, key := range keys {
		name, _, ok := strings.Cut(key, "__")
		if !ok {
			continue
		}
		name = strings.TrimSpace(name)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// PrefillCommission copies the commission percents from any prior record of
// the named agent into the form. The finalized lock is never carried over:
// the amounts must re-base live against the new day's line items.
func (s *recordService) PrefillCommission(ctx context.Context, c *Challan, name string) (bool, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return false, nil
	}

	keys, err := s.daily.Keys(ctx)
	if err != nil {
		return false, err
	}
	sort.Strings(keys)

	for _, key := range keys {
		if !strings.HasPrefix(key, name+"__") {
			continue
		}
		rec, found, err := s.daily.Get(ctx, key)
		if err != nil {
			return false, err
		}
		if !found {
			continue
		}
		c.SetCommissionPercent(CategoryLocal, rec.CommissionLocal.Percent)
		c.SetCommissionPercent(CategorySpecial, rec.CommissionSpecial.Percent)
		return true, nil
	}
	return false, nil
}
