package mocks

import (
	"context"

	"github.com/pattadon/movie-booking-api/internal/domain"
)

type MockReportRepo struct {
	domain.ReportRepository
	ComputeFunc func(ctx context.Context, window domain.ReportWindow) (*domain.Report, error)
}

func (m *MockReportRepo) Compute(ctx context.Context, window domain.ReportWindow) (*domain.Report, error) {
	return m.ComputeFunc(ctx, window)
}
