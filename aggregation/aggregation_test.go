package aggregation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/densahealth/phcu-report-api/aggregation"
	"github.com/densahealth/phcu-report-api/models"
	"github.com/densahealth/phcu-report-api/schema"
)

func record(institution, date string, metrics map[string]interface{}) models.Record {
	return models.Record{
		ReportDate:    date,
		ReporterName:  "Abebe K",
		ReporterPhone: "0911000000",
		Institution:   institution,
		Metrics:       metrics,
	}
}

func TestSumColumnsEmptyRecordSet(t *testing.T) {
	cols := schema.CountColumns()
	totals := aggregation.SumColumns(nil, cols)

	assert.Len(t, totals, len(cols))
	for _, col := range cols {
		assert.Equal(t, int64(0), totals[col])
	}
}

func TestSumColumnsCoercesBadCells(t *testing.T) {
	records := []models.Record{
		record("03 Derew Health Post", "2025-11-03", map[string]interface{}{
			"Household visited": int32(4),
		}),
		record("03 Derew Health Post", "2025-11-04", map[string]interface{}{
			"Household visited": "7",
		}),
		record("03 Derew Health Post", "2025-11-05", map[string]interface{}{
			"Household visited": "not-a-number",
		}),
		record("03 Derew Health Post", "2025-11-06", map[string]interface{}{
			"Household visited": 2.0,
		}),
		record("03 Derew Health Post", "2025-11-07", map[string]interface{}{}),
	}

	totals := aggregation.SumColumns(records, []string{"Household visited"})
	assert.Equal(t, int64(13), totals["Household visited"])
}

func TestCoerceNumeric(t *testing.T) {
	assert.Equal(t, int64(5), aggregation.CoerceNumeric(5))
	assert.Equal(t, int64(5), aggregation.CoerceNumeric(int64(5)))
	assert.Equal(t, int64(5), aggregation.CoerceNumeric("5"))
	assert.Equal(t, int64(5), aggregation.CoerceNumeric(" 5 "))
	assert.Equal(t, int64(5), aggregation.CoerceNumeric(5.4))
	assert.Equal(t, int64(0), aggregation.CoerceNumeric(""))
	assert.Equal(t, int64(0), aggregation.CoerceNumeric("x"))
	assert.Equal(t, int64(0), aggregation.CoerceNumeric(nil))
	assert.Equal(t, int64(0), aggregation.CoerceNumeric(true))
}

func TestFilterEmptySelectionReturnsAll(t *testing.T) {
	records := []models.Record{
		record("03 Derew Health Post", "2025-11-03", nil),
		record("04 Wejed Health Post", "2025-11-03", nil),
	}

	got := aggregation.Filter(records, nil, "")
	assert.Len(t, got, 2)

	got = aggregation.Filter(records, map[string]bool{}, "")
	assert.Len(t, got, 2)
}

func TestFilterInstitutionMembership(t *testing.T) {
	records := []models.Record{
		record("03 Derew Health Post", "2025-11-03", nil),
		record("04 Wejed Health Post", "2025-11-03", nil),
		record("03 Derew Health Post", "2025-11-04", nil),
	}

	got := aggregation.Filter(records, map[string]bool{"03 Derew Health Post": true}, "")
	assert.Len(t, got, 2)
	for _, r := range got {
		assert.Equal(t, "03 Derew Health Post", r.Institution)
	}
}

func TestFilterExactDate(t *testing.T) {
	records := []models.Record{
		record("03 Derew Health Post", "2025-11-03", nil),
		record("03 Derew Health Post", "2025-11-04", nil),
	}

	got := aggregation.Filter(records, nil, "2025-11-04")
	assert.Len(t, got, 1)
	assert.Equal(t, "2025-11-04", got[0].ReportDate)
}

func TestSummaryExcludesCurrencyColumns(t *testing.T) {
	records := []models.Record{
		record("03 Derew Health Post", "2025-11-03", map[string]interface{}{
			"Household visited":          3,
			"CBHI money collected (ETB)": 1500,
		}),
	}

	for _, ct := range aggregation.Summary(records) {
		ind, ok := schema.Lookup(ct.Column)
		assert.True(t, ok)
		assert.Equal(t, schema.UnitCount, ind.Unit)
	}

	currency := aggregation.CurrencyTotals(records)
	assert.Len(t, currency, 2)
	assert.Equal(t, "CBHI money collected (ETB)", currency[0].Column)
	assert.Equal(t, int64(1500), currency[0].Total)
}

func TestPerformanceDerewEndToEnd(t *testing.T) {
	metrics := map[string]interface{}{
		"CBHI membership renewal (higher paid)": 5,
		"CBHI membership renewal (medium paid)": 3,
		"CBHI membership renewal (free)":        2,
		"CBHI new membership":                   1,
	}
	records := []models.Record{record("03 Derew Health Post", "2025-11-03", metrics)}

	rows := aggregation.Performance(records, schema.Plans())

	var derew *aggregation.PerformanceRow
	for i := range rows {
		if rows[i].Institution == "03 Derew Health Post" {
			derew = &rows[i]
		}
	}
	if assert.NotNil(t, derew) {
		assert.Equal(t, int64(456), derew.PlanHigherPaid)
		assert.Equal(t, int64(5), derew.AchievedHigherPaid)
		assert.Equal(t, int64(3), derew.AchievedMediumPaid)
		assert.Equal(t, int64(2), derew.AchievedFree)
		assert.Equal(t, int64(1), derew.AchievedNewMembership)
		assert.Equal(t, int64(11), derew.AchievedTotal)
		assert.NotEqual(t, aggregation.PercentageNA, derew.Percentage)
	}
}

func TestPerformanceZeroPlanReturnsSentinel(t *testing.T) {
	metrics := map[string]interface{}{
		"CBHI membership renewal (higher paid)": 9,
	}
	records := []models.Record{record("03 Derew Health Post", "2025-11-03", metrics)}

	// Synthetic plan table with a zero plan for the reporting institution
	plans := map[string]models.InstitutionPlan{
		"03 Derew Health Post": {Institution: "03 Derew Health Post"},
	}

	rows := aggregation.Performance(records, plans)
	for _, row := range rows {
		if row.Institution == "03 Derew Health Post" {
			assert.Equal(t, int64(9), row.AchievedTotal)
			assert.Equal(t, aggregation.PercentageNA, row.Percentage)
		}
	}
}

func TestFormatPercentage(t *testing.T) {
	assert.Equal(t, "50.0", aggregation.FormatPercentage(50, 100))
	assert.Equal(t, "2.4", aggregation.FormatPercentage(11, 456))
	assert.Equal(t, "N/A", aggregation.FormatPercentage(11, 0))
}
