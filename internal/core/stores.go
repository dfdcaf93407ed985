package core

import (
	"context"
	"encoding/json"
	"fmt"

	"challan-ledger/internal/store"
)

// The three repositories below are the only code that touches the KV
// substrate. Each owns exactly one namespace and JSON-encodes its record
// shape; nothing above them sees raw storage values.

// DailyStore persists challan snapshots under "{name}__{dd-mm-yyyy}".
type DailyStore struct {
	kv store.KV
}

func NewDailyStore(kv store.KV) *DailyStore {
	return &DailyStore{kv: kv}
}

func (s *DailyStore) Put(ctx context.Context, key string, rec DailyRecord) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to encode daily record %q: %w", key, err)
	}
	return s.kv.Put(ctx, store.NamespaceDaily, key, string(data))
}

func (s *DailyStore) Get(ctx context.Context, key string) (*DailyRecord, bool, error) {
	raw, found, err := s.kv.Get(ctx, store.NamespaceDaily, key)
	if err != nil || !found {
		return nil, false, err
	}
	var rec DailyRecord
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		return nil, false, fmt.Errorf("failed to decode daily record %q: %w", key, err)
	}
	return &rec, true, nil
}

func (s *DailyStore) Keys(ctx context.Context) ([]string, error) {
	return s.kv.Keys(ctx, store.NamespaceDaily)
}

// MonthlyStore persists agent-month summaries under "M.R {name} {mm-yy}".
type MonthlyStore struct {
	kv store.KV
}

func NewMonthlyStore(kv store.KV) *MonthlyStore {
	return &MonthlyStore{kv: kv}
}

func (s *MonthlyStore) Put(ctx context.Context, key string, summary MonthlySummary) error {
	data, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("failed to encode monthly summary %q: %w", key, err)
	}
	return s.kv.Put(ctx, store.NamespaceMonthly, key, string(data))
}

func (s *MonthlyStore) Get(ctx context.Context, key string) (*MonthlySummary, bool, error) {
	raw, found, err := s.kv.Get(ctx, store.NamespaceMonthly, key)
	if err != nil || !found {
		return nil, false, err
	}
	var summary MonthlySummary
	if err := json.Unmarshal([]byte(raw), &summary); err != nil {
		return nil, false, fmt.Errorf("failed to decode monthly summary %q: %w", key, err)
	}
	return &summary, true, nil
}

// RosterStore persists one roster list per "mm-yyyy" month key.
type RosterStore struct {
	kv store.KV
}

func NewRosterStore(kv store.KV) *RosterStore {
	return &RosterStore{kv: kv}
}

func (s *RosterStore) Put(ctx context.Context, m Month, entries []RosterEntry) error {
	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("failed to encode roster %q: %w", m.Key(), err)
	}
	return s.kv.Put(ctx, store.NamespaceRoster, m.Key(), string(data))
}

func (s *RosterStore) Get(ctx context.Context, m Month) ([]RosterEntry, bool, error) {
	raw, found, err := s.kv.Get(ctx, store.NamespaceRoster, m.Key())
	if err != nil || !found {
		return nil, false, err
	}
	var entries []RosterEntry
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		return nil, false, fmt.Errorf("failed to decode roster %q: %w", m.Key(), err)
	}
	return entries, true, nil
}

func (s *RosterStore) Keys(ctx context.Context) ([]string, error) {
	return s.kv.Keys(ctx, store.NamespaceRoster)
}
