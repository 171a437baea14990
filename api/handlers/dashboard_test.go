package handlers_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/densahealth/phcu-report-api/aggregation"
	"github.com/densahealth/phcu-report-api/api/handlers"
	"github.com/densahealth/phcu-report-api/models"
)

func sampleRecords() []models.Record {
	return []models.Record{
		{
			ReportDate:  "2025-03-14",
			Institution: "03 Derew Health Post",
			Metrics: map[string]interface{}{
				"Household visited":                     int64(12),
				"CBHI membership renewal (higher paid)": int64(5),
				"CBHI membership renewal (medium paid)": int64(3),
				"CBHI membership renewal (free)":        int64(2),
				"CBHI new membership":                   int64(1),
				"Total CBHI (Auto)":                     int64(11),
				"CBHI money collected (ETB)":            int64(2500),
			},
		},
		{
			ReportDate:  "2025-03-15",
			Institution: "04 Wejed Health Post",
			Metrics: map[string]interface{}{
				"Household visited": int64(7),
			},
		},
	}
}

func TestDashboard_ReportsHandlerSuccess(t *testing.T) {
	req, err := http.NewRequest("GET", "/api/v1/dashboard/reports", nil)
	if err != nil {
		t.Fatal(err)
	}

	d := handlers.Dashboard{Source: &stubSource{records: sampleRecords()}}

	rr := httptest.NewRecorder()
	http.HandlerFunc(d.ReportsHandler).ServeHTTP(rr, req)

	if status := rr.Code; status != http.StatusOK {
		t.Errorf("handler returned wrong status code: got %v want %v", status, http.StatusOK)
	}

	var reports []models.Record
	_ = json.Unmarshal(rr.Body.Bytes(), &reports)

	assert.Len(t, reports, 2)
	assert.Equal(t, "03 Derew Health Post", reports[0].Institution)
}

func TestDashboard_ReportsHandlerInstitutionFilter(t *testing.T) {
	req, err := http.NewRequest("GET", "/api/v1/dashboard/reports?institutions=04+Wejed+Health+Post", nil)
	if err != nil {
		t.Fatal(err)
	}

	d := handlers.Dashboard{Source: &stubSource{records: sampleRecords()}}

	rr := httptest.NewRecorder()
	http.HandlerFunc(d.ReportsHandler).ServeHTTP(rr, req)

	if status := rr.Code; status != http.StatusOK {
		t.Errorf("handler returned wrong status code: got %v want %v", status, http.StatusOK)
	}

	var reports []models.Record
	_ = json.Unmarshal(rr.Body.Bytes(), &reports)

	assert.Len(t, reports, 1)
	assert.Equal(t, "04 Wejed Health Post", reports[0].Institution)
}

func TestDashboard_ReportsHandlerDateFilterEmptyResponse(t *testing.T) {
	req, err := http.NewRequest("GET", "/api/v1/dashboard/reports?date=2025-01-01", nil)
	if err != nil {
		t.Fatal(err)
	}

	d := handlers.Dashboard{Source: &stubSource{records: sampleRecords()}}

	rr := httptest.NewRecorder()
	http.HandlerFunc(d.ReportsHandler).ServeHTTP(rr, req)

	if status := rr.Code; status != http.StatusOK {
		t.Errorf("handler returned wrong status code: got %v want %v", status, http.StatusOK)
	}

	expected := "[]"
	if rr.Body.String() != expected {
		t.Errorf("handler returned unexpected body: \ngot: %v \nwant: %v", rr.Body.String(), expected)
	}
}

func TestDashboard_ReportsHandlerRefreshInvalidates(t *testing.T) {
	req, err := http.NewRequest("GET", "/api/v1/dashboard/reports?refresh=true", nil)
	if err != nil {
		t.Fatal(err)
	}

	source := &stubSource{records: sampleRecords()}
	d := handlers.Dashboard{Source: source}

	rr := httptest.NewRecorder()
	http.HandlerFunc(d.ReportsHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, 1, source.invalidated)
}

func TestDashboard_ReportsHandlerLoadFailure(t *testing.T) {
	req, err := http.NewRequest("GET", "/api/v1/dashboard/reports", nil)
	if err != nil {
		t.Fatal(err)
	}

	d := handlers.Dashboard{Source: &stubSource{err: errors.New("mocked-error")}}

	rr := httptest.NewRecorder()
	http.HandlerFunc(d.ReportsHandler).ServeHTTP(rr, req)

	if status := rr.Code; status != http.StatusInternalServerError {
		t.Errorf("handler returned wrong status code: got %v want %v", status, http.StatusInternalServerError)
	}

	expected := models.ErrorMessageResponse{Response: models.MessageError{Message: "failed to load reports", Error: "mocked-error"}}
	b, _ := json.Marshal(expected)
	if rr.Body.String() != string(b) {
		t.Errorf("handler returned unexpected body: \ngot: %v \nwant: %v", rr.Body.String(), expected)
	}
}

func TestDashboard_SummaryHandlerSuccess(t *testing.T) {
	req, err := http.NewRequest("GET", "/api/v1/dashboard/summary", nil)
	if err != nil {
		t.Fatal(err)
	}

	d := handlers.Dashboard{Source: &stubSource{records: sampleRecords()}}

	rr := httptest.NewRecorder()
	http.HandlerFunc(d.SummaryHandler).ServeHTTP(rr, req)

	if status := rr.Code; status != http.StatusOK {
		t.Errorf("handler returned wrong status code: got %v want %v", status, http.StatusOK)
	}

	var resp struct {
		Reports        int                       `json:"reports"`
		Totals         []aggregation.ColumnTotal `json:"totals"`
		CurrencyTotals []aggregation.ColumnTotal `json:"currencyTotals"`
	}
	_ = json.Unmarshal(rr.Body.Bytes(), &resp)

	assert.Equal(t, 2, resp.Reports)

	totals := make(map[string]int64, len(resp.Totals))
	for _, ct := range resp.Totals {
		totals[ct.Column] = ct.Total
	}
	assert.Equal(t, int64(19), totals["Household visited"])
	assert.Equal(t, int64(11), totals["Total CBHI (Auto)"])
	// money columns stay out of the count totals
	_, ok := totals["CBHI money collected (ETB)"]
	assert.False(t, ok)

	currency := make(map[string]int64, len(resp.CurrencyTotals))
	for _, ct := range resp.CurrencyTotals {
		currency[ct.Column] = ct.Total
	}
	assert.Equal(t, int64(2500), currency["CBHI money collected (ETB)"])
}

func TestDashboard_PerformanceHandlerSuccess(t *testing.T) {
	req, err := http.NewRequest("GET", "/api/v1/dashboard/performance", nil)
	if err != nil {
		t.Fatal(err)
	}

	d := handlers.Dashboard{Source: &stubSource{records: sampleRecords()}}

	rr := httptest.NewRecorder()
	http.HandlerFunc(d.PerformanceHandler).ServeHTTP(rr, req)

	if status := rr.Code; status != http.StatusOK {
		t.Errorf("handler returned wrong status code: got %v want %v", status, http.StatusOK)
	}

	var rows []aggregation.PerformanceRow
	_ = json.Unmarshal(rr.Body.Bytes(), &rows)

	// one row per institution in the fixed set
	assert.Len(t, rows, 8)

	var derew aggregation.PerformanceRow
	for _, row := range rows {
		if row.Institution == "03 Derew Health Post" {
			derew = row
		}
	}
	assert.Equal(t, int64(456), derew.PlanHigherPaid)
	assert.Equal(t, int64(5), derew.AchievedHigherPaid)
	assert.Equal(t, int64(11), derew.AchievedTotal)
	assert.NotEqual(t, aggregation.PercentageNA, derew.Percentage)
}

func TestDashboard_PerformanceHandlerLoadFailure(t *testing.T) {
	req, err := http.NewRequest("GET", "/api/v1/dashboard/performance", nil)
	if err != nil {
		t.Fatal(err)
	}

	d := handlers.Dashboard{Source: &stubSource{err: errors.New("mocked-error")}}

	rr := httptest.NewRecorder()
	http.HandlerFunc(d.PerformanceHandler).ServeHTTP(rr, req)

	if status := rr.Code; status != http.StatusInternalServerError {
		t.Errorf("handler returned wrong status code: got %v want %v", status, http.StatusInternalServerError)
	}
}
