// Package dateutils decodes statement dates and derives period keys.
package dateutils

import (
	"strings"
	"time"
)

// Layouts recognized in statement exports.
const (
	LayoutISO       = "2006-01-02"
	LayoutDayFirst  = "02/01/2006"
	LayoutPeriodKey = "2006-01"
)

var statementLayouts = []string{
	LayoutDayFirst,
	LayoutISO,
}

// ParseDate decodes a slash-delimited day/month/year or hyphen-delimited
// year-month-day date. ok is false for anything else.
func ParseDate(dateStr string) (time.Time, bool) {
	cleaned := strings.TrimSpace(dateStr)
	for _, layout := range statementLayouts {
		if t, err := time.Parse(layout, cleaned); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Normalize returns the ISO form of a parseable date. Unparseable input
// passes through unchanged as display text; decoding never raises.
func Normalize(dateStr string) string {
	if t, ok := ParseDate(dateStr); ok {
		return t.Format(LayoutISO)
	}
	return dateStr
}

// Period is a month+year bucket key derived from a decoded date.
type Period struct {
	Year  int
	Month time.Month
}

// PeriodOf derives the period of a normalized or raw statement date. ok is
// false when the date does not decode; such records belong to no bucket.
func PeriodOf(dateStr string) (Period, bool) {
	t, ok := ParseDate(dateStr)
	if !ok {
		return Period{}, false
	}
	return Period{Year: t.Year(), Month: t.Month()}, true
}

// String renders the period as YYYY-MM.
func (p Period) String() string {
	return time.Date(p.Year, p.Month, 1, 0, 0, 0, 0, time.UTC).Format(LayoutPeriodKey)
}

// Before orders periods latest-first: a period sorts before another when it
// is more recent.
func (p Period) Before(other Period) bool {
	if p.Year != other.Year {
		return p.Year > other.Year
	}
	return p.Month > other.Month
}
