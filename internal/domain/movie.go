package domain

import (
	"context"
	"time"
)

type Movie struct {
	ID          int
	Name        string
	Description string
	ImageUrl    string
	CreatedBy   int
	CreatedAt   time.Time
	Showtimes   []Showtime
}

type MovieRepository interface {
	// CreateWithShowtimes inserts the movie, its showtimes and their seat maps
	// in one transaction. Seat inventory is static after this point.
	CreateWithShowtimes(ctx context.Context, movie *Movie) error
	GetAll(ctx context.Context, pagination Pagination) ([]Movie, *Metadata, error)
	GetById(ctx context.Context, id int) (*Movie, error)
	Delete(ctx context.Context, id int) error
}
