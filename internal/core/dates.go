package core

import (
	"fmt"
	"time"
)

// Challan dates are carried as dd-mm-yyyy strings end to end; the stored keys
// embed them verbatim.
const dateLayout = "02-01-2006"

func ParseChallanDate(s string) (time.Time, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid challan date %q (want dd-mm-yyyy): %w", s, err)
	}
	return t, nil
}

func FormatChallanDate(t time.Time) string {
	return t.Format(dateLayout)
}

// Month is the canonical month representation. The monthly namespace keys use
// the short mm-yy form, the roster namespace the full mm-yyyy form; both are
// derived from here and never parsed back out of each other.
type Month struct {
	Year  int        // four digits
	Month time.Month // 1..12
}

func MonthOf(t time.Time) Month {
	return Month{Year: t.Year(), Month: t.Month()}
}

// ParseMonth accepts the mm-yyyy form used by the roster namespace and the
// month selectors.
func ParseMonth(s string) (Month, error) {
	t, err := time.Parse("01-2006", s)
	if err != nil {
		return Month{}, fmt.Errorf("invalid month %q (want mm-yyyy): %w", s, err)
	}
	return MonthOf(t), nil
}

// Key returns the mm-yyyy form, e.g. "07-2025".
func (m Month) Key() string {
	return fmt.Sprintf("%02d-%04d", int(m.Month), m.Year)
}

// ShortKey returns the mm-yy form, e.g. "07-25".
func (m Month) ShortKey() string {
	return fmt.Sprintf("%02d-%02d", int(m.Month), m.Year%100)
}

// Label returns a display form, e.g. "July 25".
func (m Month) Label() string {
	return fmt.Sprintf("%s %02d", m.Month.String(), m.Year%100)
}
