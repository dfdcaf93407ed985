package core

import (
	"errors"
	"strings"
	"time"
)

// DraftLine is one dictated line item in an intake draft. Amounts stay
// strings so the form's lenient parsing applies unchanged.
type DraftLine struct {
	Item       string `json:"item" jsonschema_description:"The item name exactly as dictated"`
	Qty        string `json:"qty" jsonschema_description:"Quantity as a plain numeric string, e.g. '10'"`
	Price      string `json:"price" jsonschema_description:"Unit price as a plain numeric string without grouping separators"`
	DiscountPc string `json:"discount_per_unit" jsonschema_description:"Per-unit discount as a plain numeric string; empty if none was mentioned"`
}

// ChallanDraft is the AI-interpreted structure of a dictated daily report.
// It feeds the same editable form path as manual entry; nothing is persisted
// until the user reviews and saves.
type ChallanDraft struct {
	Name                     string      `json:"name" jsonschema_description:"The sales agent's name"`
	Sector                   string      `json:"sector" jsonschema_description:"The agent's sector or route; empty if not mentioned"`
	DCNo                     string      `json:"dcno" jsonschema_description:"The delivery challan number; empty if not mentioned"`
	Date                     string      `json:"date" jsonschema_description:"The challan date in dd-mm-yyyy format. Use today's date if unspecified."`
	LocalItems               []DraftLine `json:"local_items" jsonschema_description:"Line items sold in the Local category"`
	SpecialItems             []DraftLine `json:"special_items" jsonschema_description:"Line items sold in the Special category"`
	CommissionLocalPercent   string      `json:"commission_local_percent" jsonschema_description:"Local commission percentage as a numeric string; empty if not mentioned"`
	CommissionSpecialPercent string      `json:"commission_special_percent" jsonschema_description:"Special commission percentage as a numeric string; empty if not mentioned"`
	RatePerLitre             string      `json:"rate_per_litre" jsonschema_description:"Fuel rate per litre as a numeric string; empty if not mentioned"`
	TotalLitre               string      `json:"total_litre" jsonschema_description:"Total litres of fuel as a numeric string; empty if not mentioned"`
	Misc                     string      `json:"misc" jsonschema_description:"Miscellaneous expense as a numeric string; empty if none"`
	Hvan                     string      `json:"hvan" jsonschema_description:"Hired-vehicle (H.Van) rental expense as a numeric string; empty if none"`
	Cash                     string      `json:"cash" jsonschema_description:"Cash received as a numeric string; empty if not mentioned"`
	PreviousShort            string      `json:"previous_short" jsonschema_description:"Carried-over shortage from earlier periods as a numeric string; empty if none"`
	OtherExpense             string      `json:"other_expense" jsonschema_description:"Other expense as a numeric string; empty if none"`
	Confidence               float64     `json:"confidence" jsonschema_description:"Confidence score between 0.0 and 1.0"`
	Reasoning                string      `json:"reasoning" jsonschema_description:"Explanation of how the dictated report was interpreted"`
}

// ClarificationRequest is returned by the AI when the dictated report is
// missing something it cannot guess.
type ClarificationRequest struct {
	Message string `json:"message" jsonschema_description:"A message asking the user for the missing details (e.g. 'Which agent is this report for?')."`
}

// IntakeResponse wraps the AI output to branch between a usable draft and a
// clarification request. Exactly one of the two is set.
type IntakeResponse struct {
	IsClarificationRequest bool                  `json:"is_clarification_request" jsonschema_description:"Set to true ONLY if you lack enough information to build a confident draft."`
	Clarification          *ClarificationRequest `json:"clarification,omitempty" jsonschema_description:"Required if is_clarification_request is true."`
	Draft                  *ChallanDraft         `json:"draft,omitempty" jsonschema_description:"Required if is_clarification_request is false."`
}

// Normalize cleans up common LLM formatting issues before validation.
func (d *ChallanDraft) Normalize() {
	clean := func(s string) string {
		s = strings.TrimSpace(s)
		if strings.EqualFold(s, "null") {
			return ""
		}
		return stripGrouping(s)
	}

	d.Name = strings.TrimSpace(d.Name)
	d.Sector = strings.TrimSpace(d.Sector)
	d.DCNo = strings.TrimSpace(d.DCNo)
	d.Date = strings.TrimSpace(d.Date)
	if d.Date == "" {
		d.Date = FormatChallanDate(time.Now())
	}

	for i := range d.LocalItems {
		line := &d.LocalItems[i]
		line.Item = strings.TrimSpace(line.Item)
		line.Qty = clean(line.Qty)
		line.Price = clean(line.Price)
		line.DiscountPc = clean(line.DiscountPc)
	}
	for i := range d.SpecialItems {
		line := &d.SpecialItems[i]
		line.Item = strings.TrimSpace(line.Item)
		line.Qty = clean(line.Qty)
		line.Price = clean(line.Price)
		line.DiscountPc = clean(line.DiscountPc)
	}

	d.CommissionLocalPercent = clean(d.CommissionLocalPercent)
	d.CommissionSpecialPercent = clean(d.CommissionSpecialPercent)
	d.RatePerLitre = clean(d.RatePerLitre)
	d.TotalLitre = clean(d.TotalLitre)
	d.Misc = clean(d.Misc)
	d.Hvan = clean(d.Hvan)
	d.Cash = clean(d.Cash)
	d.PreviousShort = clean(d.PreviousShort)
	d.OtherExpense = clean(d.OtherExpense)
}

// Validate checks the draft carries enough to open a form: an agent name, a
// parseable date and at least one line item.
func (d *ChallanDraft) Validate() error {
	if d.Name == "" {
		return errors.New("draft must name the agent")
	}
	if _, err := ParseChallanDate(d.Date); err != nil {
		return err
	}
	if len(d.LocalItems) == 0 && len(d.SpecialItems) == 0 {
		return errors.New("draft must contain at least one line item")
	}
	return nil
}

// ToRecord maps the draft onto the persisted record shape consumed by
// Challan.ApplyDraft.
func (d *ChallanDraft) ToRecord() DailyRecord {
	toRows := func(lines []DraftLine) []LineItem {
		rows := make([]LineItem, len(lines))
		for i, l := range lines {
			rows[i] = LineItem{Item: l.Item, Qty: l.Qty, Price: l.Price, DiscountPc: l.DiscountPc}
		}
		return rows
	}

	return DailyRecord{
		AgentDetails: AgentDetails{
			Name:   d.Name,
			Sector: d.Sector,
			DCNo:   d.DCNo,
			Date:   d.Date,
		},
		LocalRows:   toRows(d.LocalItems),
		SpecialRows: toRows(d.SpecialItems),
		ReadingInfo: ReadingInfo{
			RatePerLitre: d.RatePerLitre,
			TotalLitre:   d.TotalLitre,
		},
		Finance: FinanceBlock{
			Misc:          d.Misc,
			Hvan:          d.Hvan,
			Cash:          d.Cash,
			PreviousShort: d.PreviousShort,
			OtherExpense:  d.OtherExpense,
		},
		CommissionLocal:   CommissionState{Percent: d.CommissionLocalPercent},
		CommissionSpecial: CommissionState{Percent: d.CommissionSpecialPercent},
	}
}
