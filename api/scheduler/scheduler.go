// Package scheduler runs the periodic background jobs for the reporting
// system.
package scheduler

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/densahealth/phcu-report-api/aggregation"
	"github.com/densahealth/phcu-report-api/export"
	"github.com/densahealth/phcu-report-api/mailer"
	"github.com/densahealth/phcu-report-api/models"
	templates "github.com/densahealth/phcu-report-api/templates/html"
)

// Scheduler emails the daily activity summary to the woreda focal person
type Scheduler struct {
	cron      *cron.Cron
	Source    aggregation.RecordSource
	Mailer    mailer.Mailer
	Recipient string
}

// NewScheduler creates a new scheduler instance. An empty recipient turns
// the summary job into a no-op.
func NewScheduler(source aggregation.RecordSource, m mailer.Mailer, recipient string) *Scheduler {
	return &Scheduler{
		cron:      cron.New(cron.WithLocation(time.UTC)),
		Source:    source,
		Mailer:    m,
		Recipient: recipient,
	}
}

// Start begins the scheduler with all registered jobs
func (s *Scheduler) Start() {
	// Send the daily summary at 17:00 UTC, after the reporting day closes
	_, err := s.cron.AddFunc("0 17 * * *", s.SendDailySummary)
	if err != nil {
		zap.S().Errorw("failed to register daily summary job", "error", err)
	}

	s.cron.Start()
	zap.S().Info("daily summary scheduler started")
}

// Stop gracefully stops the scheduler
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	zap.S().Info("daily summary scheduler stopped")
}

// SendDailySummary builds today's aggregated totals and emails them with the
// full table attached. Failures are logged and surfaced to the mail result,
// never fatal.
func (s *Scheduler) SendDailySummary() {
	if s.Recipient == "" {
		zap.S().Debug("no summary recipient configured, skipping daily summary")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	records, err := s.Source.Load(ctx)
	if err != nil {
		zap.S().Errorw("failed to load records for daily summary", "error", err)
		return
	}

	today := time.Now().UTC().Format("2006-01-02")
	todays := aggregation.Filter(records, nil, today)

	subject := fmt.Sprintf("Densa PHCU Daily Summary %s", today)
	body := summaryBody(today, todays)

	attachment, err := export.ToXLSX(export.BuildTable(todays))
	if err != nil {
		zap.S().Errorw("failed to build summary attachment", "error", err)
		return
	}

	err = s.Mailer.Send(mailer.Message{
		Recipient:      s.Recipient,
		Subject:        subject,
		PlainBody:      body,
		HTMLBody:       templates.RenderReportEmail(subject, body),
		Attachment:     attachment,
		AttachmentName: fmt.Sprintf("Densa_Report_%s.xlsx", today),
	})
	if err != nil {
		zap.S().Errorw("failed to send daily summary", "error", err, "recipient", s.Recipient)
		return
	}
	zap.S().Infow("daily summary sent", "recipient", s.Recipient, "reports", len(todays))
}

func summaryBody(date string, records []models.Record) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Daily activity summary for %s.\n", date)
	fmt.Fprintf(&b, "Reports received: %d\n\n", len(records))
	for _, ct := range aggregation.Summary(records) {
		if ct.Total == 0 {
			continue
		}
		fmt.Fprintf(&b, "%s: %d\n", ct.Column, ct.Total)
	}
	for _, ct := range aggregation.CurrencyTotals(records) {
		if ct.Total == 0 {
			continue
		}
		fmt.Fprintf(&b, "%s: %d\n", ct.Column, ct.Total)
	}
	return b.String()
}
