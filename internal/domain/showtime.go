package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type Showtime struct {
	ID        int
	MovieID   int
	MovieName string
	StartTime time.Time
	EndTime   time.Time
	Capacity  int
	Price     decimal.Decimal
	Seats     []Seat
}

// Seat belongs to exactly one showtime; SeatNumber is unique within it.
// The seat map is fixed when the showtime is created.
type Seat struct {
	ID         int
	ShowtimeID int
	SeatNumber string
	Row        string
}

type ShowtimeRepository interface {
	// GetAll lists showtimes, optionally restricted to the calendar day of day.
	GetAll(ctx context.Context, day *time.Time) ([]Showtime, error)
	GetByMovieId(ctx context.Context, movieID int) ([]Showtime, error)
}

type SeatRepository interface {
	GetAvailableByShowtime(ctx context.Context, showtimeID int) ([]Seat, error)
}
