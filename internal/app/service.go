package app

import (
	"context"

	"challan-ledger/internal/core"
)

// ApplicationService is the single interface all UI adapters (REPL, CLI)
// call. It decouples presentation from business logic. Implementations must
// contain no fmt.Println, no ANSI codes, and no display logic of any kind.
type ApplicationService interface {
	// SaveChallan runs the save pipeline: daily write, monthly day-slot
	// upsert, then form reset. A monthly failure leaves the daily record
	// committed, the form intact for retry, and is returned as a
	// StorageWriteError alongside the committed key.
	SaveChallan(ctx context.Context, c *core.Challan) (*SaveResult, error)

	// LoadChallan looks up a saved record by agent and dd-mm-yyyy date. A hit
	// hydrates the form into ReadOnly mode; a miss leaves it untouched.
	LoadChallan(ctx context.Context, c *core.Challan, name, date string) (*LoadResult, error)

	// ListAgentNames returns the distinct agent names seen across all stored
	// daily records, for autocomplete.
	ListAgentNames(ctx context.Context) (*AgentNamesResult, error)

	// PrefillCommission copies the commission percents from the named agent's
	// most recent stored record into the form, without the finalized lock.
	PrefillCommission(ctx context.Context, c *core.Challan, name string) (bool, error)

	// GetMonthlyReport loads the agent-month view and its totals. When the
	// month has data, the company roster entry for the agent is upserted as a
	// side effect; a roster failure is logged and reported on the result
	// without discarding the report.
	GetMonthlyReport(ctx context.Context, name string, m core.Month) (*MonthlyReportResult, error)

	// GetCompanyRoster returns the month's roster with company-wide grand
	// totals.
	GetCompanyRoster(ctx context.Context, m core.Month) (*RosterResult, error)

	// InterpretChallan sends a dictated daily report to the AI agent and
	// returns either a challan draft or a clarification request.
	InterpretChallan(ctx context.Context, text string) (*AIResult, error)

	// ExportDaily writes a stored challan to an xlsx workbook at path.
	ExportDaily(ctx context.Context, name, date, path string) error

	// ExportMonthly writes an agent-month report to an xlsx workbook at path.
	ExportMonthly(ctx context.Context, name string, m core.Month, path string) error

	// ExportRoster writes a month's company roster to an xlsx workbook at path.
	ExportRoster(ctx context.Context, m core.Month, path string) error
}
