package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pattadon/movie-booking-api/internal/domain"
)

type PostgresShowtimeRepository struct {
	db *pgxpool.Pool
}

func NewPostgresShowtimeRepository(db *pgxpool.Pool) *PostgresShowtimeRepository {
	return &PostgresShowtimeRepository{
		db: db,
	}
}

func (p *PostgresShowtimeRepository) GetAll(ctx context.Context, day *time.Time) ([]domain.Showtime, error) {
	query := `
		SELECT s.id, s.movie_id, m.name, s.start_time, s.end_time, s.capacity, s.price
		FROM showtimes s
		JOIN movies m ON s.movie_id = m.id
		WHERE $1::timestamptz IS NULL
			OR (s.start_time >= $1 AND s.start_time < $2)
		ORDER BY s.start_time
	`

	var startOfDay, endOfDay *time.Time

	if day != nil {
		start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
		end := start.AddDate(0, 0, 1)
		startOfDay, endOfDay = &start, &end
	}

	return p.queryShowtimes(ctx, query, startOfDay, endOfDay)
}

func (p *PostgresShowtimeRepository) GetByMovieId(ctx context.Context, movieID int) ([]domain.Showtime, error) {
	var exists bool

	err := p.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM movies WHERE id = $1)`, movieID).Scan(&exists)
	if err != nil {
		return nil, err
	}

	if !exists {
		return nil, domain.ErrRecordNotFound
	}

	query := `
		SELECT s.id, s.movie_id, m.name, s.start_time, s.end_time, s.capacity, s.price
		FROM showtimes s
		JOIN movies m ON s.movie_id = m.id
		WHERE s.movie_id = $1
		ORDER BY s.start_time
	`

	return p.queryShowtimes(ctx, query, movieID)
}

func (p *PostgresShowtimeRepository) queryShowtimes(ctx context.Context, query string, args ...any) ([]domain.Showtime, error) {
	rows, err := p.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	showtimes := make([]domain.Showtime, 0)

	for rows.Next() {
		var showtime domain.Showtime

		err = rows.Scan(
			&showtime.ID,
			&showtime.MovieID,
			&showtime.MovieName,
			&showtime.StartTime,
			&showtime.EndTime,
			&showtime.Capacity,
			&showtime.Price,
		)
		if err != nil {
			return nil, err
		}

		showtimes = append(showtimes, showtime)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return showtimes, nil
}
