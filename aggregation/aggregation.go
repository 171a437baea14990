// Package aggregation rebuilds tabular views over the full record store.
// Views are ephemeral: every dashboard request loads, filters and sums from
// scratch (subject to the short-lived loader cache).
package aggregation

import (
	"strconv"
	"strings"

	"github.com/densahealth/phcu-report-api/models"
	"github.com/densahealth/phcu-report-api/schema"
)

// ColumnTotal is one column-wise sum in a summary view
type ColumnTotal struct {
	Column string `json:"column"`
	Total  int64  `json:"total"`
}

// Filter narrows records by institution membership and exact report date.
// An empty or nil institution set passes every record; an empty date passes
// every date.
func Filter(records []models.Record, institutions map[string]bool, date string) []models.Record {
	if len(institutions) == 0 && date == "" {
		return records
	}
	var out []models.Record
	for _, r := range records {
		if len(institutions) > 0 && !institutions[r.Institution] {
			continue
		}
		if date != "" && r.ReportDate != date {
			continue
		}
		out = append(out, r)
	}
	return out
}

// SumColumns sums the named metric columns across records. Every requested
// column is present in the result, zero-valued over an empty record set.
// Cells that are missing or fail to parse as a number coerce to zero rather
// than failing the aggregation.
func SumColumns(records []models.Record, columns []string) map[string]int64 {
	totals := make(map[string]int64, len(columns))
	for _, col := range columns {
		totals[col] = 0
	}
	for _, r := range records {
		for _, col := range columns {
			totals[col] += CoerceNumeric(r.Metrics[col])
		}
	}
	return totals
}

// CoerceNumeric converts a stored metric cell to an int64, treating anything
// unparseable as zero. Legacy rows imported from the spreadsheet variant can
// carry strings or floats in metric cells.
func CoerceNumeric(v interface{}) int64 {
	switch n := v.(type) {
	case int:
		return int64(n)
	case int32:
		return int64(n)
	case int64:
		return n
	case float64:
		return int64(n)
	case float32:
		return int64(n)
	case string:
		s := strings.TrimSpace(n)
		if s == "" {
			return 0
		}
		if i, err := strconv.ParseInt(s, 10, 64); err == nil {
			return i
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return int64(f)
		}
		return 0
	default:
		return 0
	}
}

// Summary returns column-wise totals over the count indicators, in flattened
// schema order. Currency indicators are excluded by unit tag; CurrencyTotals
// reports them separately.
func Summary(records []models.Record) []ColumnTotal {
	return totalsFor(records, schema.CountColumns())
}

// CurrencyTotals returns column-wise totals over the currency indicators
func CurrencyTotals(records []models.Record) []ColumnTotal {
	return totalsFor(records, schema.ColumnsByUnit(schema.UnitCurrency))
}

func totalsFor(records []models.Record, columns []string) []ColumnTotal {
	sums := SumColumns(records, columns)
	out := make([]ColumnTotal, 0, len(columns))
	for _, col := range columns {
		out = append(out, ColumnTotal{Column: col, Total: sums[col]})
	}
	return out
}
