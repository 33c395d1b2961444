package mocks

import (
	"context"

	"github.com/pattadon/movie-booking-api/internal/domain"
)

type MockSeatRepo struct {
	domain.SeatRepository
	GetAvailableByShowtimeFunc func(ctx context.Context, showtimeID int) ([]domain.Seat, error)
}

func (m *MockSeatRepo) GetAvailableByShowtime(ctx context.Context, showtimeID int) ([]domain.Seat, error) {
	return m.GetAvailableByShowtimeFunc(ctx, showtimeID)
}
