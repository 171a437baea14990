package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/densahealth/phcu-report-api/aggregation"
	"github.com/densahealth/phcu-report-api/api"
	"github.com/densahealth/phcu-report-api/config"
	"github.com/densahealth/phcu-report-api/models"
	"github.com/densahealth/phcu-report-api/schema"
)

// Dashboard handles the admin read views: filtered listings, aggregated
// totals and the CBHI performance table
type Dashboard struct {
	Source aggregation.RecordSource
}

type summaryResponse struct {
	Reports        int                       `json:"reports"`
	Totals         []aggregation.ColumnTotal `json:"totals"`
	CurrencyTotals []aggregation.ColumnTotal `json:"currencyTotals"`
}

// parseFilters reads the shared dashboard query parameters: a comma-separated
// institution list, an exact report date and an explicit cache refresh flag
func parseFilters(r *http.Request) (map[string]bool, string, bool) {
	institutions := map[string]bool{}
	if raw := r.URL.Query().Get("institutions"); raw != "" {
		for _, inst := range strings.Split(raw, ",") {
			if inst = strings.TrimSpace(inst); inst != "" {
				institutions[inst] = true
			}
		}
	}
	date := r.URL.Query().Get("date")
	refresh := r.URL.Query().Get("refresh") == "true"
	return institutions, date, refresh
}

func (d Dashboard) loadFiltered(w http.ResponseWriter, r *http.Request) ([]models.Record, bool) {
	institutions, date, refresh := parseFilters(r)
	if refresh {
		d.Source.Invalidate()
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	records, err := d.Source.Load(ctx)
	if err != nil {
		config.ErrorStatus("failed to load reports", http.StatusInternalServerError, w, err)
		return nil, false
	}
	return aggregation.Filter(records, institutions, date), true
}

// ReportsHandler returns the filtered report listing
func (d Dashboard) ReportsHandler(w http.ResponseWriter, r *http.Request) {
	filtered, ok := d.loadFiltered(w, r)
	if !ok {
		return
	}
	// the frontend expects a list even when nothing matched
	if len(filtered) == 0 {
		filtered = []models.Record{}
	}
	b, err := json.Marshal(filtered)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// SummaryHandler returns column-wise totals over the filtered records, with
// count and currency indicators reported separately
func (d Dashboard) SummaryHandler(w http.ResponseWriter, r *http.Request) {
	filtered, ok := d.loadFiltered(w, r)
	if !ok {
		return
	}
	resp := summaryResponse{
		Reports:        len(filtered),
		Totals:         aggregation.Summary(filtered),
		CurrencyTotals: aggregation.CurrencyTotals(filtered),
	}
	b, err := json.Marshal(resp)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// PerformanceHandler returns the CBHI plan-vs-achieved table over the
// filtered records
func (d Dashboard) PerformanceHandler(w http.ResponseWriter, r *http.Request) {
	filtered, ok := d.loadFiltered(w, r)
	if !ok {
		return
	}
	rows := aggregation.Performance(filtered, schema.Plans())
	b, err := json.Marshal(rows)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}
