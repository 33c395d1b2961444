package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pattadon/movie-booking-api/internal/domain"
	"github.com/shopspring/decimal"
)

type PostgresReportRepository struct {
	db *pgxpool.Pool
}

func NewPostgresReportRepository(db *pgxpool.Pool) *PostgresReportRepository {
	return &PostgresReportRepository{
		db: db,
	}
}

// Compute aggregates committed bookings only; it never observes partial
// reservation state because booking rows appear atomically with their seats.
func (p *PostgresReportRepository) Compute(ctx context.Context, window domain.ReportWindow) (*domain.Report, error) {
	report := domain.Report{
		TotalRevenue:   decimal.Zero,
		RevenueByMovie: make(map[string]decimal.Decimal),
	}

	query := `
		SELECT COUNT(*), COALESCE(SUM(total_price), 0)
		FROM bookings
		WHERE ($1::timestamptz IS NULL OR created_at >= $1)
			AND ($2::timestamptz IS NULL OR created_at < $2)
	`

	err := p.db.QueryRow(ctx, query, window.Start, window.End).Scan(
		&report.TotalBookings,
		&report.TotalRevenue,
	)
	if err != nil {
		return nil, err
	}

	query = `
		SELECT COUNT(*)
		FROM booking_seats bs
		JOIN bookings b ON bs.booking_id = b.id
		WHERE ($1::timestamptz IS NULL OR b.created_at >= $1)
			AND ($2::timestamptz IS NULL OR b.created_at < $2)
	`

	err = p.db.QueryRow(ctx, query, window.Start, window.End).Scan(&report.TotalSeatsBooked)
	if err != nil {
		return nil, err
	}

	query = `
		SELECT m.name, SUM(b.total_price)
		FROM bookings b
		JOIN showtimes s ON b.showtime_id = s.id
		JOIN movies m ON s.movie_id = m.id
		WHERE ($1::timestamptz IS NULL OR b.created_at >= $1)
			AND ($2::timestamptz IS NULL OR b.created_at < $2)
		GROUP BY m.name
	`

	rows, err := p.db.Query(ctx, query, window.Start, window.End)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var movieName string
		var revenue decimal.Decimal

		if err := rows.Scan(&movieName, &revenue); err != nil {
			return nil, err
		}

		report.RevenueByMovie[movieName] = revenue
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return &report, nil
}
