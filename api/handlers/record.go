package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/densahealth/phcu-report-api/aggregation"
	"github.com/densahealth/phcu-report-api/api"
	"github.com/densahealth/phcu-report-api/config"
	"github.com/densahealth/phcu-report-api/databases"
	"github.com/densahealth/phcu-report-api/models"
	"github.com/densahealth/phcu-report-api/schema"
)

// Record handles report submission requests
type Record struct {
	DB     databases.RecordDatabase
	Source aggregation.RecordSource
}

type reportSubmission struct {
	ReportDate    string           `json:"reportDate"`
	ReporterName  string           `json:"reporterName"`
	ReporterPhone string           `json:"reporterPhone"`
	Institution   string           `json:"institution"`
	Metrics       map[string]int64 `json:"metrics"`
}

// CreateReportHandler validates and appends one daily activity report.
// Every accepted submission writes exactly one document; duplicates are
// allowed by design, there is no idempotency key.
func (re Record) CreateReportHandler(w http.ResponseWriter, r *http.Request) {
	var sub reportSubmission
	if err := json.NewDecoder(r.Body).Decode(&sub); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}

	sub.ReporterName = strings.TrimSpace(sub.ReporterName)
	sub.ReporterPhone = strings.TrimSpace(sub.ReporterPhone)
	if sub.ReporterName == "" || sub.ReporterPhone == "" {
		config.ErrorStatus("reporter name and phone are required", http.StatusBadRequest, w,
			fmt.Errorf("missing mandatory reporter fields"))
		return
	}

	if _, err := time.Parse("2006-01-02", sub.ReportDate); err != nil {
		config.ErrorStatus("invalid report date", http.StatusBadRequest, w, err)
		return
	}

	if !schema.ValidInstitution(sub.Institution) {
		config.ErrorStatus("unknown institution", http.StatusBadRequest, w,
			fmt.Errorf("institution %q is not in the reporting set", sub.Institution))
		return
	}

	metrics := make(map[string]interface{}, len(schema.Flattened()))
	for _, name := range schema.Flattened() {
		if !schema.Derived(name) {
			metrics[name] = int64(0)
		}
	}
	for name, value := range sub.Metrics {
		ind, ok := schema.Lookup(name)
		if !ok {
			config.ErrorStatus("unknown indicator", http.StatusBadRequest, w,
				fmt.Errorf("indicator %q is not in the schema", name))
			return
		}
		if ind.Derived {
			// derived values are computed below, submitted ones are ignored
			continue
		}
		if value < 0 {
			config.ErrorStatus("indicator values must be non-negative", http.StatusBadRequest, w,
				fmt.Errorf("indicator %q has value %d", name, value))
			return
		}
		metrics[name] = value
	}

	var totalCBHI int64
	for _, component := range schema.CBHIComponents() {
		totalCBHI += aggregation.CoerceNumeric(metrics[component])
	}
	metrics[schema.TotalCBHI] = totalCBHI

	record := models.Record{
		ID:            primitive.NewObjectID(),
		ReportDate:    sub.ReportDate,
		ReporterName:  sub.ReporterName,
		ReporterPhone: sub.ReporterPhone,
		Institution:   sub.Institution,
		SubmittedAt:   primitive.NewDateTimeFromTime(time.Now()),
		Metrics:       metrics,
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	if _, err := re.DB.InsertOne(ctx, record); err != nil {
		config.ErrorStatus("failed to save report", http.StatusInternalServerError, w, err)
		return
	}

	// the next dashboard read must see this write
	re.Source.Invalidate()

	zap.S().Infow("report submitted",
		"institution", record.Institution,
		"reportDate", record.ReportDate,
	)

	b, err := json.Marshal(record)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
	w.Write(b)
}

// ReportByIDHandler returns a report by ID
func (re Record) ReportByIDHandler(w http.ResponseWriter, r *http.Request) {
	reportID := mux.Vars(r)["report_id"]

	zap.S().Debugf("report_id: %v", reportID)

	rID, err := primitive.ObjectIDFromHex(reportID)
	if err != nil {
		config.ErrorStatus("failed to get objectID from Hex", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	dbResp, err := re.DB.FindOne(ctx, bson.M{"_id": rID})
	if err != nil {
		config.ErrorStatus("failed to get report by ID", http.StatusNotFound, w, err)
		return
	}

	b, err := json.Marshal(dbResp)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}
