package service

import (
	"context"
	"fmt"
	"time"

	"github.com/nkraev/pos-backend/internal/repo"
	"github.com/nkraev/pos-backend/internal/transport"
)

// ReportService runs the read-only aggregations. Callers pass user-facing
// inclusive end dates; the exclusive upper bound (end + one day) is applied
// here, so every range below is half-open.
type ReportService struct {
	Repo *repo.GormRepo
}

func (s *ReportService) Sales(ctx context.Context, start, end time.Time) (*transport.SalesReport, error) {
	if end.Before(start) {
		return nil, fmt.Errorf("%w: end_date before start_date", ErrValidation)
	}
	return s.Repo.SalesReport(ctx, start, end.AddDate(0, 0, 1))
}

// Customers aggregates per-customer totals. With a nil range the totals are
// lifetime; either way every customer appears, zero-valued when no orders
// match.
func (s *ReportService) Customers(ctx context.Context, start, end *time.Time) ([]transport.CustomerReportRow, error) {
	if (start == nil) != (end == nil) {
		return nil, fmt.Errorf("%w: start_date and end_date must be supplied together", ErrValidation)
	}
	if start != nil {
		if end.Before(*start) {
			return nil, fmt.Errorf("%w: end_date before start_date", ErrValidation)
		}
		endExclusive := end.AddDate(0, 0, 1)
		return s.Repo.CustomerReport(ctx, start, &endExclusive)
	}
	return s.Repo.CustomerReport(ctx, nil, nil)
}

func (s *ReportService) OrderDetails(ctx context.Context, start, end time.Time) ([]transport.OrderDetailRow, error) {
	if end.Before(start) {
		return nil, fmt.Errorf("%w: end_date before start_date", ErrValidation)
	}
	return s.Repo.OrderDetails(ctx, start, end.AddDate(0, 0, 1))
}
