// Package export serializes aggregated report tables to spreadsheet and CSV
// byte streams. All functions are pure: no I/O beyond the returned buffer.
package export

import (
	"bytes"
	"encoding/csv"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/densahealth/phcu-report-api/aggregation"
	"github.com/densahealth/phcu-report-api/models"
	"github.com/densahealth/phcu-report-api/schema"
)

// SheetName is the single sheet every XLSX export carries
const SheetName = "Reports"

// Table is a rendered view: a fixed header row plus data rows in the same
// column order
type Table struct {
	Headers []string
	Rows    [][]string
}

var metaHeaders = []string{"Date of Report", "Reporter Name", "Reporter Phone", "Institution", "Submitted At"}

// BuildTable renders records into the export layout: the meta columns, every
// indicator column in flattened schema order, and a final TOTAL row with
// column-wise sums of the indicator columns.
func BuildTable(records []models.Record) Table {
	indicators := schema.Flattened()

	headers := append([]string{}, metaHeaders...)
	headers = append(headers, indicators...)

	rows := make([][]string, 0, len(records)+1)
	for _, r := range records {
		row := []string{
			r.ReportDate,
			r.ReporterName,
			r.ReporterPhone,
			r.Institution,
			r.SubmittedAt.Time().UTC().Format(time.RFC3339),
		}
		for _, col := range indicators {
			row = append(row, strconv.FormatInt(aggregation.CoerceNumeric(r.Metrics[col]), 10))
		}
		rows = append(rows, row)
	}

	totals := aggregation.SumColumns(records, indicators)
	totalRow := []string{"TOTAL", "", "", "", ""}
	for _, col := range indicators {
		totalRow = append(totalRow, strconv.FormatInt(totals[col], 10))
	}
	rows = append(rows, totalRow)

	return Table{Headers: headers, Rows: rows}
}

// ToXLSX serializes the table into a single-sheet xlsx byte stream
func ToXLSX(t Table) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(SheetName)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}

	writeRow := func(rowIdx int, cells []string) error {
		cell, err := excelize.CoordinatesToCellName(1, rowIdx)
		if err != nil {
			return err
		}
		row := make([]interface{}, len(cells))
		for i, c := range cells {
			row[i] = c
		}
		return f.SetSheetRow(SheetName, cell, &row)
	}

	if err := writeRow(1, t.Headers); err != nil {
		return nil, err
	}
	for i, row := range t.Rows {
		if err := writeRow(i+2, row); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ToCSV serializes the table into a CSV byte stream, header row first
func ToCSV(t Table) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(t.Headers); err != nil {
		return nil, err
	}
	for _, row := range t.Rows {
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
