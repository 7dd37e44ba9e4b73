package view

import (
	"testing"
	"time"

	"rlopes/conciliador/internal/dateutils"
	"rlopes/conciliador/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func record(date, description, amount string) models.CanonicalRecord {
	r := models.CanonicalRecord{
		Date:        date,
		Label:       "EXTRATO X",
		Description: description,
		Amount:      decimal.RequireFromString(amount),
	}
	r.Identify()
	return r
}

func sampleRecords() []models.CanonicalRecord {
	return []models.CanonicalRecord{
		record("2024-01-10", "MERCADO", "100.10"),
		record("2024-03-15", "PAGAMENTO CARTAO", "1234.56"),
		record("2024-03-20", "PIX RECEBIDO", "500.00"),
		record("2023-12-01", "TARIFA", "-9.90"),
		record("SALDO ANTERIOR", "ABERTURA", "0.00"), // undecodable date
	}
}

func TestPeriods_LatestFirst(t *testing.T) {
	periods := Periods(sampleRecords())

	require.Equal(t, []dateutils.Period{
		{Year: 2024, Month: time.March},
		{Year: 2024, Month: time.January},
		{Year: 2023, Month: time.December},
	}, periods, "undecodable dates belong to no bucket")
}

func TestFilter_ExactPeriodMatch(t *testing.T) {
	records := sampleRecords()
	march := dateutils.Period{Year: 2024, Month: time.March}

	matched := Filter(records, march)
	require.Len(t, matched, 2)
	assert.Equal(t, "PAGAMENTO CARTAO", matched[0].Description)
	assert.Equal(t, "PIX RECEBIDO", matched[1].Description)

	// The unfiltered list still carries the undecodable-date record.
	assert.Len(t, records, 5)
}

func TestTotalize_ExactDecimalSum(t *testing.T) {
	march := dateutils.Period{Year: 2024, Month: time.March}
	summary := Totalize(Filter(sampleRecords(), march))

	assert.Equal(t, 2, summary.Count)
	assert.Equal(t, "1734.56", summary.Sum.StringFixed(2))
}

func TestTotalize_RecomputedPerCall(t *testing.T) {
	records := sampleRecords()

	all := Totalize(records)
	assert.Equal(t, 5, all.Count)

	december := Totalize(Filter(records, dateutils.Period{Year: 2023, Month: time.December}))
	assert.Equal(t, 1, december.Count)
	assert.Equal(t, "-9.90", december.Sum.StringFixed(2))

	// Switching filters back reuses nothing.
	again := Totalize(records)
	assert.Equal(t, all, again)
}
