package core

import "github.com/shopspring/decimal"

// Category selects one of the two independent sales sections of a challan.
type Category string

const (
	CategoryLocal   Category = "local"
	CategorySpecial Category = "special"
)

// LineItem is one row of a category table. Numeric fields hold the raw
// entered strings; parsing happens at summation time so a half-typed value
// never blocks the form.
type LineItem struct {
	Item       string `json:"item"`
	Qty        string `json:"qty"`
	Price      string `json:"price"`
	DiscountPc string `json:"discountPc"`
}

// Subtotal is the derived rollup of one category's rows. Never stored on its
// own; recomputed from the rows on every read.
type Subtotal struct {
	Qty      decimal.Decimal `json:"qty"`
	Price    decimal.Decimal `json:"price"`
	Discount decimal.Decimal `json:"discount"` // Σ qty * discountPc
	Amount   decimal.Decimal `json:"amount"`   // Σ qty * price
}

// AgentDetails identifies the challan: agent name plus the dd-mm-yyyy date
// form the composite storage key.
type AgentDetails struct {
	Name   string `json:"name"`
	Sector string `json:"sector"`
	DCNo   string `json:"dcno"`
	Date   string `json:"date"`
}

// ReadingInfo carries the odometer and fuel figures. All raw strings; only
// RatePerLitre and TotalLitre feed a derived value (fuel).
type ReadingInfo struct {
	ReadingOut   string `json:"readingOut"`
	ReadingIn    string `json:"readingIn"`
	TotalKm      string `json:"totalKm"`
	RatePerKm    string `json:"ratePerKm"`
	TotalLitre   string `json:"totalLitre"`
	RatePerLitre string `json:"ratePerLitre"`
}

// FinanceBlock mixes derived decimals (written only by Recompute) with the
// raw expense inputs the user types directly.
type FinanceBlock struct {
	TotalSale         decimal.Decimal `json:"totalSale"`
	CommissionLocal   decimal.Decimal `json:"commissionLocal"`
	CommissionSpecial decimal.Decimal `json:"commissionSpecial"`
	Fuel              decimal.Decimal `json:"fuel"`
	TotalDiscount     decimal.Decimal `json:"totalDiscount"`
	Misc              string          `json:"misc"`
	Hvan              string          `json:"hvan"`
	NetSale           decimal.Decimal `json:"netSale"`
	Cash              string          `json:"cash"`
	Short             decimal.Decimal `json:"short"`
	PreviousShort     string          `json:"previousShort"`
	TotalShortage     decimal.Decimal `json:"totalShortage"`
	OtherExpense      string          `json:"otherExpense"`
}

// CommissionState tracks one category's commission entry. While Finalized is
// true the percent and the derived amount are frozen until an explicit unlock.
type CommissionState struct {
	Percent   string `json:"percent"`
	Finalized bool   `json:"finalized"`
}

// DailyRecord is the snapshot persisted to the daily namespace on save and
// hydrated back on load.
type DailyRecord struct {
	AgentDetails      AgentDetails    `json:"agentDetails"`
	LocalRows         []LineItem      `json:"localRows"`
	SpecialRows       []LineItem      `json:"specialRows"`
	ReadingInfo       ReadingInfo     `json:"readingInfo"`
	Finance           FinanceBlock    `json:"finance"`
	CommissionLocal   CommissionState `json:"commissionLocal"`
	CommissionSpecial CommissionState `json:"commissionSpecial"`
}

// DaySummary is the finance subset written into a monthly day slot on every
// daily save.
type DaySummary struct {
	LocalSale              decimal.Decimal `json:"localSale"`
	SpecialSale            decimal.Decimal `json:"specialSale"`
	Total                  decimal.Decimal `json:"total"`
	Fuel                   decimal.Decimal `json:"fuel"`
	DiscountLocal          decimal.Decimal `json:"discountLocal"`
	DiscountSpecial        decimal.Decimal `json:"discountSpecial"`
	CommissionLocalValue   decimal.Decimal `json:"commissionLocalValue"`
	CommissionSpecialValue decimal.Decimal `json:"commissionSpecialValue"`
	Hvan                   decimal.Decimal `json:"hvan"`
	Misc                   decimal.Decimal `json:"misc"`
	Net                    decimal.Decimal `json:"net"`
	Cash                   decimal.Decimal `json:"cash"`
	Short                  decimal.Decimal `json:"short"`
	PreviousShort          decimal.Decimal `json:"previousShort"`
	OtherExpense           decimal.Decimal `json:"otherExpense"`
}

// DaySlot wraps a DaySummary under the "summary" key the stored shape uses.
type DaySlot struct {
	Summary DaySummary `json:"summary"`
}

// MonthlySummary is one agent-month record in the monthly namespace. Records
// maps day-of-month index (0..30) to the slot saved for that day; slots are
// independent and never cross-validated.
type MonthlySummary struct {
	Name                     string          `json:"name"`
	Sector                   string          `json:"sector"`
	Month                    string          `json:"month"` // mm-yy
	CommissionLocalPercent   string          `json:"commissionLocalPercent"`
	CommissionSpecialPercent string          `json:"commissionSpecialPercent"`
	Records                  map[int]DaySlot `json:"records"`
}

// RosterEntry is one agent's row in a month's company roster. Short already
// includes the agent's carried-over previous shortage.
type RosterEntry struct {
	Name              string          `json:"name"`
	LocalSale         decimal.Decimal `json:"localSale"`
	SpecialSale       decimal.Decimal `json:"specialSale"`
	Total             decimal.Decimal `json:"total"`
	CommissionLocal   decimal.Decimal `json:"commissionLocal"`
	CommissionSpecial decimal.Decimal `json:"commissionSpecial"`
	Fuel              decimal.Decimal `json:"fuel"`
	DiscountLocal     decimal.Decimal `json:"discountLocal"`
	DiscountSpecial   decimal.Decimal `json:"discountSpecial"`
	Hvan              decimal.Decimal `json:"hvan"`
	Misc              decimal.Decimal `json:"misc"`
	Net               decimal.Decimal `json:"net"`
	Cash              decimal.Decimal `json:"cash"`
	Short             decimal.Decimal `json:"short"`
}
