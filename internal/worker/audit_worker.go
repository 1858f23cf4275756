package worker

import (
	"context"
	"fmt"
	"log/slog"

	"salesdash/internal/amqp"
	"salesdash/internal/core"
	"salesdash/internal/records"
)

// AuditWorker logs a per-month profile of the dataset. It runs after every
// reseed event and on a periodic fallback tick, so operators can sanity
// check what a reseed actually loaded without querying the API.
type AuditWorker struct {
	store records.RangeFinder
	year  int
}

func NewAuditWorker(store records.RangeFinder, referenceYear int) *AuditWorker {
	return &AuditWorker{store: store, year: referenceYear}
}

// MonthProfile is the audit summary for one month.
type MonthProfile struct {
	Month       int
	Count       int
	TotalAmount float64
	SoldCount   int
}

// HandleReseedMessage is the AMQP consumer callback.
func (w *AuditWorker) HandleReseedMessage(msg *amqp.ReseedCompletedMessage) error {
	ctx := context.Background()
	slog.InfoContext(ctx, "Auditing dataset after reseed",
		"reported_count", msg.Count,
		"source", msg.Source)
	return w.Audit(ctx)
}

// Audit computes and logs the twelve-month dataset profile.
func (w *AuditWorker) Audit(ctx context.Context) error {
	profiles, err := w.Profile(ctx)
	if err != nil {
		return fmt.Errorf("profile dataset: %w", err)
	}

	var total int
	for _, p := range profiles {
		total += p.Count
		if p.Count == 0 {
			continue
		}
		slog.InfoContext(ctx, "Month profile",
			"month", p.Month,
			"count", p.Count,
			"total_amount", p.TotalAmount,
			"sold", p.SoldCount)
	}
	slog.InfoContext(ctx, "Dataset audit complete", "year", w.year, "records_in_year", total)

	return nil
}

// Profile summarizes every month of the reference year.
func (w *AuditWorker) Profile(ctx context.Context) ([]MonthProfile, error) {
	profiles := make([]MonthProfile, 0, 12)
	for month := 1; month <= 12; month++ {
		window, err := core.NewMonthWindow(w.year, month)
		if err != nil {
			return nil, fmt.Errorf("resolve month %d: %w", month, err)
		}
		ts, err := w.store.FindRange(ctx, window)
		if err != nil {
			return nil, fmt.Errorf("read month %d: %w", month, err)
		}
		stats := core.Summarize(ts)
		profiles = append(profiles, MonthProfile{
			Month:       month,
			Count:       len(ts),
			TotalAmount: stats.TotalSaleAmount,
			SoldCount:   stats.SoldCount,
		})
	}
	return profiles, nil
}
