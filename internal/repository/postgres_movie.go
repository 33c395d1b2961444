package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pattadon/movie-booking-api/internal/domain"
)

type PostgresMovieRepository struct {
	db *pgxpool.Pool
}

func NewPostgresMovieRepository(db *pgxpool.Pool) *PostgresMovieRepository {
	return &PostgresMovieRepository{
		db: db,
	}
}

// CreateWithShowtimes inserts the movie, its showtimes and their seat maps in
// one transaction, so a half-created seat inventory is never observable.
func (p *PostgresMovieRepository) CreateWithShowtimes(ctx context.Context, movie *domain.Movie) error {
	err := runInTx(ctx, p.db, pgx.TxOptions{}, func(tx pgx.Tx) error {
		query := `
			INSERT INTO movies (name, description, image_url, created_by)
			VALUES ($1, $2, $3, $4)
			RETURNING id, created_at
		`

		err := tx.QueryRow(
			ctx,
			query,
			movie.Name,
			movie.Description,
			movie.ImageUrl,
			movie.CreatedBy).Scan(&movie.ID, &movie.CreatedAt)

		if err != nil {
			return err
		}

		query = `
			INSERT INTO showtimes (movie_id, start_time, end_time, capacity, price)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id
		`

		for i := range movie.Showtimes {
			showtime := &movie.Showtimes[i]
			showtime.MovieID = movie.ID

			err = tx.QueryRow(
				ctx,
				query,
				showtime.MovieID,
				showtime.StartTime,
				showtime.EndTime,
				showtime.Capacity,
				showtime.Price).Scan(&showtime.ID)

			if err != nil {
				return err
			}

			seatRows := make([][]any, 0, len(showtime.Seats))
			for _, seat := range showtime.Seats {
				seatRows = append(seatRows, []any{showtime.ID, seat.SeatNumber, seat.Row})
			}

			_, err = tx.CopyFrom(
				ctx,
				pgx.Identifier{"seats"},
				[]string{"showtime_id", "seat_number", "row_label"},
				pgx.CopyFromRows(seatRows),
			)
			if err != nil {
				return err
			}
		}

		return nil
	})

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return domain.ErrMovieAlreadyExists
		}

		return err
	}

	return nil
}

func (p *PostgresMovieRepository) GetAll(ctx context.Context, pagination domain.Pagination) ([]domain.Movie, *domain.Metadata, error) {
	query := `
		SELECT COUNT(*) OVER(), id, name, description, image_url, created_by, created_at
		FROM movies
		ORDER BY id
		LIMIT $1 OFFSET $2
	`

	rows, err := p.db.Query(ctx, query, pagination.Limit(), pagination.Offset())
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	movies := make([]domain.Movie, 0)
	totalRecords := 0

	for rows.Next() {
		var movie domain.Movie

		err = rows.Scan(
			&totalRecords,
			&movie.ID,
			&movie.Name,
			&movie.Description,
			&movie.ImageUrl,
			&movie.CreatedBy,
			&movie.CreatedAt,
		)
		if err != nil {
			return nil, nil, err
		}

		movies = append(movies, movie)
	}

	if err = rows.Err(); err != nil {
		return nil, nil, err
	}

	metadata := domain.NewMetadata(totalRecords, pagination.Page, pagination.PageSize)

	return movies, metadata, nil
}

func (p *PostgresMovieRepository) GetById(ctx context.Context, id int) (*domain.Movie, error) {
	query := `
		SELECT id, name, description, image_url, created_by, created_at
		FROM movies
		WHERE id = $1
	`

	var movie domain.Movie

	err := p.db.QueryRow(ctx, query, id).Scan(
		&movie.ID,
		&movie.Name,
		&movie.Description,
		&movie.ImageUrl,
		&movie.CreatedBy,
		&movie.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	query = `
		SELECT id, movie_id, start_time, end_time, capacity, price
		FROM showtimes
		WHERE movie_id = $1
		ORDER BY start_time
	`

	rows, err := p.db.Query(ctx, query, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var showtime domain.Showtime

		err = rows.Scan(
			&showtime.ID,
			&showtime.MovieID,
			&showtime.StartTime,
			&showtime.EndTime,
			&showtime.Capacity,
			&showtime.Price,
		)
		if err != nil {
			return nil, err
		}

		movie.Showtimes = append(movie.Showtimes, showtime)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return &movie, nil
}

// Delete removes the movie together with its showtimes and seats (cascade),
// but refuses while any booking still points at one of those showtimes.
func (p *PostgresMovieRepository) Delete(ctx context.Context, id int) error {
	return runInTx(ctx, p.db, pgx.TxOptions{}, func(tx pgx.Tx) error {
		var hasBookings bool

		query := `
			SELECT EXISTS(
				SELECT 1
				FROM bookings b
				JOIN showtimes s ON b.showtime_id = s.id
				WHERE s.movie_id = $1
			)
		`

		err := tx.QueryRow(ctx, query, id).Scan(&hasBookings)
		if err != nil {
			return err
		}

		if hasBookings {
			return domain.ErrMovieHasBookings
		}

		tag, err := tx.Exec(ctx, `DELETE FROM movies WHERE id = $1`, id)
		if err != nil {
			return err
		}

		if tag.RowsAffected() == 0 {
			return domain.ErrRecordNotFound
		}

		return nil
	})
}
