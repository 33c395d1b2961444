package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type Report struct {
	TotalBookings    int
	TotalSeatsBooked int
	TotalRevenue     decimal.Decimal
	RevenueByMovie   map[string]decimal.Decimal
}

// ReportWindow bounds the report to bookings created within [Start, End).
// Nil bounds mean all time.
type ReportWindow struct {
	Start *time.Time
	End   *time.Time
}

type ReportRepository interface {
	Compute(ctx context.Context, window ReportWindow) (*Report, error)
}
