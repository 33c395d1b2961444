package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Booking is created atomically with its seat links and destroyed atomically
// with them on cancellation. There is no explicit status column: a booking is
// active while it exists, and implicitly consumed once its showtime starts.
type Booking struct {
	ID            int
	Reference     uuid.UUID
	UserID        int
	ShowtimeID    int
	ShowtimeStart time.Time
	MovieName     string
	TotalPrice    decimal.Decimal
	SeatNumbers   []string
	CreatedAt     time.Time
}

// BookingSummary is the read model for booking listings. Username is only
// populated for the admin listing.
type BookingSummary struct {
	ID            int
	Reference     uuid.UUID
	UserID        int
	Username      string
	MovieName     string
	ShowtimeStart time.Time
	SeatNumbers   []string
	TotalPrice    decimal.Decimal
	CreatedAt     time.Time
}

type BookingRepository interface {
	// Create reserves booking.SeatNumbers for booking.ShowtimeID inside one
	// serializable transaction. It either commits the booking row plus one
	// booking_seats row per seat, or leaves no trace. Returns
	// ErrShowtimeNotFound, ErrSeatNotFound, or ErrSeatAlreadyBooked; the
	// caller is expected to re-read availability after ErrSeatAlreadyBooked.
	Create(ctx context.Context, booking *Booking) error

	GetById(ctx context.Context, id int) (*Booking, error)

	// Cancel deletes the booking's seat links and the booking itself in one
	// transaction, returning its seats to the available pool.
	Cancel(ctx context.Context, id int) error

	GetAllByUserId(ctx context.Context, userID int) ([]BookingSummary, error)
	GetAll(ctx context.Context) ([]BookingSummary, error)
}
