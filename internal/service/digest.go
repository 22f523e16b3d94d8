package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/nkraev/pos-backend/internal/mykafka"
)

// DailyDigest computes the previous day's sales report and publishes it as an
// event. Scheduled from main via cron; implements cron.Job.
type DailyDigest struct {
	Reports  *ReportService
	Producer *mykafka.Producer
	Log      *slog.Logger
}

func (j *DailyDigest) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	day := time.Now().UTC().AddDate(0, 0, -1).Truncate(24 * time.Hour)
	report, err := j.Reports.Sales(ctx, day, day)
	if err != nil {
		j.Log.Error("daily_digest_failed", "date", day.Format("2006-01-02"), "error", err)
		return
	}

	event := map[string]any{
		"type":   "daily_sales_summary",
		"date":   day.Format("2006-01-02"),
		"report": report,
	}
	if err := j.Producer.PublishEvent(ctx, mykafka.TopicReports, day.Format("2006-01-02"), event); err != nil {
		j.Log.Error("daily_digest_publish_failed", "error", err)
		return
	}

	j.Log.Info("daily_digest_published",
		"date", day.Format("2006-01-02"),
		"total_orders", report.Summary.TotalOrders,
		"total_revenue", report.Summary.TotalRevenue)
}
