package mocks

import (
	"context"
	"time"

	"github.com/pattadon/movie-booking-api/internal/domain"
)

type MockShowtimeRepo struct {
	domain.ShowtimeRepository
	GetAllFunc       func(ctx context.Context, day *time.Time) ([]domain.Showtime, error)
	GetByMovieIdFunc func(ctx context.Context, movieID int) ([]domain.Showtime, error)
}

func (m *MockShowtimeRepo) GetAll(ctx context.Context, day *time.Time) ([]domain.Showtime, error) {
	return m.GetAllFunc(ctx, day)
}

func (m *MockShowtimeRepo) GetByMovieId(ctx context.Context, movieID int) ([]domain.Showtime, error) {
	return m.GetByMovieIdFunc(ctx, movieID)
}
