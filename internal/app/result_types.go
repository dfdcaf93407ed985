package app

import "challan-ledger/internal/core"

// SaveResult is returned by SaveChallan.
type SaveResult struct {
	Key string
}

// LoadResult is returned by LoadChallan.
type LoadResult struct {
	Found  bool
	Record *core.DailyRecord
}

// AgentNamesResult is returned by ListAgentNames.
type AgentNamesResult struct {
	Names []string
}

// MonthlyReportResult is returned by GetMonthlyReport. RosterSyncErr carries
// a roster upsert failure that must not discard the report itself.
type MonthlyReportResult struct {
	View          *core.MonthView
	Totals        core.MonthTotals
	RosterSynced  bool
	RosterSyncErr error
}

// RosterResult is returned by GetCompanyRoster.
type RosterResult struct {
	Month   core.Month
	Entries []core.RosterEntry
	Totals  core.GrandTotals
}

// AIResult is returned by InterpretChallan.
type AIResult struct {
	Draft                *core.ChallanDraft
	ClarificationMessage string
	IsClarification      bool
}
