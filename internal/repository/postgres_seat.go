package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pattadon/movie-booking-api/internal/domain"
)

type PostgresSeatRepository struct {
	db *pgxpool.Pool
}

func NewPostgresSeatRepository(db *pgxpool.Pool) *PostgresSeatRepository {
	return &PostgresSeatRepository{
		db: db,
	}
}

// GetAvailableByShowtime returns the seats of a showtime that have no live
// booking_seats row. Availability is purely derived from the absence of that
// row; this read takes no locks and may be stale by the time it is used.
func (p *PostgresSeatRepository) GetAvailableByShowtime(ctx context.Context, showtimeID int) ([]domain.Seat, error) {
	var exists bool

	err := p.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM showtimes WHERE id = $1)`, showtimeID).Scan(&exists)
	if err != nil {
		return nil, err
	}

	if !exists {
		return nil, domain.ErrShowtimeNotFound
	}

	query := `
		SELECT s.id, s.showtime_id, s.seat_number, s.row_label
		FROM seats s
		WHERE s.showtime_id = $1
			AND NOT EXISTS (SELECT 1 FROM booking_seats bs WHERE bs.seat_id = s.id)
		ORDER BY s.row_label, s.seat_number
	`

	rows, err := p.db.Query(ctx, query, showtimeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	seats := make([]domain.Seat, 0)

	for rows.Next() {
		var seat domain.Seat

		err = rows.Scan(&seat.ID, &seat.ShowtimeID, &seat.SeatNumber, &seat.Row)
		if err != nil {
			return nil, err
		}

		seats = append(seats, seat)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return seats, nil
}
