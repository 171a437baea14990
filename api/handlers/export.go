package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/densahealth/phcu-report-api/aggregation"
	"github.com/densahealth/phcu-report-api/api"
	"github.com/densahealth/phcu-report-api/config"
	"github.com/densahealth/phcu-report-api/export"
	"github.com/densahealth/phcu-report-api/mailer"
	templates "github.com/densahealth/phcu-report-api/templates/html"
)

// Export handles report downloads and email dispatch
type Export struct {
	Source aggregation.RecordSource
	Mailer mailer.Mailer
}

type emailRequest struct {
	Recipient string `json:"recipient"`
}

type emailResponse struct {
	Sent    bool   `json:"sent"`
	Message string `json:"message"`
}

func (e Export) buildTable(w http.ResponseWriter, r *http.Request) (export.Table, bool) {
	institutions, date, refresh := parseFilters(r)
	if refresh {
		e.Source.Invalidate()
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	records, err := e.Source.Load(ctx)
	if err != nil {
		config.ErrorStatus("failed to load reports", http.StatusInternalServerError, w, err)
		return export.Table{}, false
	}
	return export.BuildTable(aggregation.Filter(records, institutions, date)), true
}

// ExportHandler streams the filtered table as an xlsx or csv download
func (e Export) ExportHandler(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = "xlsx"
	}

	table, ok := e.buildTable(w, r)
	if !ok {
		return
	}

	switch format {
	case "xlsx":
		b, err := export.ToXLSX(table)
		if err != nil {
			config.ErrorStatus("failed to serialize spreadsheet", http.StatusInternalServerError, w, err)
			return
		}
		w.Header().Set("Content-Type", mailer.XLSXContentType)
		w.Header().Set("Content-Disposition", `attachment; filename="Densa_Report.xlsx"`)
		w.WriteHeader(http.StatusOK)
		w.Write(b)
	case "csv":
		b, err := export.ToCSV(table)
		if err != nil {
			config.ErrorStatus("failed to serialize csv", http.StatusInternalServerError, w, err)
			return
		}
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", `attachment; filename="Densa_Report.csv"`)
		w.WriteHeader(http.StatusOK)
		w.Write(b)
	default:
		config.ErrorStatus("unsupported export format", http.StatusBadRequest, w,
			fmt.Errorf("format %q is not xlsx or csv", format))
	}
}

// EmailHandler sends the filtered table to a recipient with the spreadsheet
// attached. The result reflects whether the provider actually accepted the
// message; dispatch failures are never reported as success.
func (e Export) EmailHandler(w http.ResponseWriter, r *http.Request) {
	var req emailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}
	req.Recipient = strings.TrimSpace(req.Recipient)
	if req.Recipient == "" || !strings.Contains(req.Recipient, "@") {
		config.ErrorStatus("valid recipient address required", http.StatusBadRequest, w,
			fmt.Errorf("recipient %q", req.Recipient))
		return
	}

	table, ok := e.buildTable(w, r)
	if !ok {
		return
	}

	attachment, err := export.ToXLSX(table)
	if err != nil {
		config.ErrorStatus("failed to serialize spreadsheet", http.StatusInternalServerError, w, err)
		return
	}

	subject := "Densa PHCU Activity Report"
	body := fmt.Sprintf("The requested activity report is attached.\nRows: %d", len(table.Rows))

	err = e.Mailer.Send(mailer.Message{
		Recipient:      req.Recipient,
		Subject:        subject,
		PlainBody:      body,
		HTMLBody:       templates.RenderReportEmail(subject, body),
		Attachment:     attachment,
		AttachmentName: "Densa_Report.xlsx",
	})
	if err != nil {
		zap.S().Errorw("failed to send report email",
			"recipient", req.Recipient,
			"error", err)
		w.WriteHeader(http.StatusBadGateway)
		b, _ := json.Marshal(emailResponse{Sent: false, Message: err.Error()})
		w.Write(b)
		return
	}

	b, _ := json.Marshal(emailResponse{Sent: true, Message: fmt.Sprintf("report emailed to %s", req.Recipient)})
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}
