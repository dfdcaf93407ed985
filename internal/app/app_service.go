package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"challan-ledger/internal/ai"
	"challan-ledger/internal/core"
	"challan-ledger/internal/export"
	"challan-ledger/internal/store"
)

type appService struct {
	records core.RecordService
	monthly core.MonthlyService
	company core.CompanyService
	agent   *ai.Agent
	log     *logrus.Logger
}

// NewAppService constructs an appService that satisfies ApplicationService.
// agent may be nil when no API key is configured; InterpretChallan then
// reports the feature as unavailable.
func NewAppService(kv store.KV, agent *ai.Agent, log *logrus.Logger) ApplicationService {
	return &appService{
		records: core.NewRecordService(kv, log),
		monthly: core.NewMonthlyService(kv),
		company: core.NewCompanyService(kv, log),
		agent:   agent,
		log:     log,
	}
}

func (s *appService) SaveChallan(ctx context.Context, c *core.Challan) (*SaveResult, error) {
	key, err := s.records.Save(ctx, c)
	if err != nil {
		if key != "" {
			// Daily committed, monthly failed. Surface both.
			return &SaveResult{Key: key}, err
		}
		return nil, err
	}
	return &SaveResult{Key: key}, nil
}

func (s *appService) LoadChallan(ctx context.Context, c *core.Challan, name, date string) (*LoadResult, error) {
	found, err := s.records.Load(ctx, c, name, date)
	if err != nil {
		return nil, err
	}
	if !found {
		return &LoadResult{Found: false}, nil
	}
	rec := c.Snapshot()
	return &LoadResult{Found: true, Record: &rec}, nil
}

func (s *appService) ListAgentNames(ctx context.Context) (*AgentNamesResult, error) {
	names, err := s.records.AgentNames(ctx)
	if err != nil {
		return nil, err
	}
	return &AgentNamesResult{Names: names}, nil
}

func (s *appService) PrefillCommission(ctx context.Context, c *core.Challan, name string) (bool, error) {
	return s.records.PrefillCommission(ctx, c, name)
}

// GetMonthlyReport loads and folds the agent-month, then keeps the company
// roster synchronized: whenever monthly data exists for the selection, its
// totals are upserted into the month's roster. The upsert tracks whatever
// the monthly data currently is, not only explicit saves.
func (s *appService) GetMonthlyReport(ctx context.Context, name string, m core.Month) (*MonthlyReportResult, error) {
	name = strings.TrimSpace(name)
	view, err := s.monthly.LoadMonth(ctx, name, m)
	if err != nil {
		return nil, err
	}

	result := &MonthlyReportResult{View: view, Totals: view.Totals()}

	if name != "" && view.Summary != nil {
		entry := core.RosterEntryFromTotals(name, result.Totals)
		if err := s.company.UpsertAgentMonth(ctx, m, entry); err != nil {
			result.RosterSyncErr = err
		} else {
			result.RosterSynced = true
		}
	}
	return result, nil
}

func (s *appService) GetCompanyRoster(ctx context.Context, m core.Month) (*RosterResult, error) {
	entries, err := s.company.LoadRoster(ctx, m)
	if err != nil {
		return nil, err
	}
	return &RosterResult{
		Month:   m,
		Entries: entries,
		Totals:  core.ComputeGrandTotals(entries),
	}, nil
}

func (s *appService) InterpretChallan(ctx context.Context, text string) (*AIResult, error) {
	if s.agent == nil {
		return nil, fmt.Errorf("AI intake unavailable: OPENAI_API_KEY is not set")
	}

	names, err := s.records.AgentNames(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list agent names: %w", err)
	}
	known := "(none yet)"
	if len(names) > 0 {
		known = "- " + strings.Join(names, "\n- ")
	}

	response, err := s.agent.InterpretChallan(ctx, text, known)
	if err != nil {
		return nil, err
	}

	if response.IsClarificationRequest {
		return &AIResult{
			IsClarification:      true,
			ClarificationMessage: response.Clarification.Message,
		}, nil
	}

	return &AIResult{Draft: response.Draft}, nil
}

func (s *appService) ExportDaily(ctx context.Context, name, date, path string) error {
	c := core.NewChallan()
	found, err := s.records.Load(ctx, c, name, date)
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("no record found for %s on %s", name, date)
	}
	f, err := export.DailyWorkbook(c.Snapshot())
	if err != nil {
		return fmt.Errorf("failed to build daily workbook: %w", err)
	}
	return f.SaveAs(path)
}

func (s *appService) ExportMonthly(ctx context.Context, name string, m core.Month, path string) error {
	report, err := s.GetMonthlyReport(ctx, name, m)
	if err != nil {
		return err
	}
	f, err := export.MonthlyWorkbook(report.View)
	if err != nil {
		return fmt.Errorf("failed to build monthly workbook: %w", err)
	}
	return f.SaveAs(path)
}

func (s *appService) ExportRoster(ctx context.Context, m core.Month, path string) error {
	roster, err := s.GetCompanyRoster(ctx, m)
	if err != nil {
		return err
	}
	f, err := export.RosterWorkbook(m, roster.Entries)
	if err != nil {
		return fmt.Errorf("failed to build roster workbook: %w", err)
	}
	return f.SaveAs(path)
}
