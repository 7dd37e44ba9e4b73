// Package view derives period buckets, filters and totals over the canonical
// record store. Totals are recomputed from the filtered subset on every call,
// never cached across filter changes.
package view

import (
	"sort"

	"rlopes/conciliador/internal/dateutils"
	"rlopes/conciliador/internal/models"

	"github.com/shopspring/decimal"
)

// Summary aggregates a record subset.
type Summary struct {
	Count int
	Sum   decimal.Decimal
}

// Periods returns the distinct month+year keys present among the records,
// sorted latest-year-first, then latest-month-within-year. Records whose
// dates do not decode belong to no period.
func Periods(records []models.CanonicalRecord) []dateutils.Period {
	seen := make(map[dateutils.Period]bool)
	var periods []dateutils.Period
	for _, record := range records {
		period, ok := dateutils.PeriodOf(record.Date)
		if !ok || seen[period] {
			continue
		}
		seen[period] = true
		periods = append(periods, period)
	}

	sort.Slice(periods, func(i, j int) bool {
		return periods[i].Before(periods[j])
	})
	return periods
}

// Filter returns the records whose decoded date falls in the given period.
// Records with undecodable dates are excluded from every period bucket but
// remain in the unfiltered list.
func Filter(records []models.CanonicalRecord, period dateutils.Period) []models.CanonicalRecord {
	var matched []models.CanonicalRecord
	for _, record := range records {
		p, ok := dateutils.PeriodOf(record.Date)
		if ok && p == period {
			matched = append(matched, record)
		}
	}
	return matched
}

// Totalize sums the given subset exactly.
func Totalize(records []models.CanonicalRecord) Summary {
	sum := decimal.Zero
	for _, record := range records {
		sum = sum.Add(record.Amount)
	}
	return Summary{Count: len(records), Sum: sum}
}
