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

type PostgresBookingRepository struct {
	db *pgxpool.Pool
}

func NewPostgresBookingRepository(db *pgxpool.Pool) *PostgresBookingRepository {
	return &PostgresBookingRepository{
		db: db,
	}
}

// Create reserves booking.SeatNumbers for the showtime inside one serializable
// transaction. The availability check and the booking_seats inserts share that
// transaction, and booking_seats carries a unique constraint on seat_id, so of
// two concurrent attempts on an overlapping seat set at most one can commit.
// The loser surfaces as ErrSeatAlreadyBooked, either from the in-transaction
// check or from the constraint at commit time. No retry happens here.
func (p *PostgresBookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	err := runInTx(ctx, p.db, pgx.TxOptions{IsoLevel: pgx.Serializable}, func(tx pgx.Tx) error {
		query := `
			SELECT s.start_time, m.name
			FROM showtimes s
			JOIN movies m ON s.movie_id = m.id
			WHERE s.id = $1
		`

		err := tx.QueryRow(ctx, query, booking.ShowtimeID).Scan(&booking.ShowtimeStart, &booking.MovieName)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domain.ErrShowtimeNotFound
			}

			return err
		}

		query = `
			SELECT id, seat_number
			FROM seats
			WHERE showtime_id = $1 AND seat_number = ANY($2)
		`

		rows, err := tx.Query(ctx, query, booking.ShowtimeID, booking.SeatNumbers)
		if err != nil {
			return err
		}

		seatIDs := make([]int, 0, len(booking.SeatNumbers))

		for rows.Next() {
			var seatID int
			var seatNumber string

			if err := rows.Scan(&seatID, &seatNumber); err != nil {
				rows.Close()
				return err
			}

			seatIDs = append(seatIDs, seatID)
		}

		rows.Close()

		if err := rows.Err(); err != nil {
			return err
		}

		// all-or-nothing resolution: a partial match rejects the whole request
		if len(seatIDs) != len(booking.SeatNumbers) {
			return domain.ErrSeatNotFound
		}

		var taken int

		query = `SELECT COUNT(*) FROM booking_seats WHERE seat_id = ANY($1)`

		err = tx.QueryRow(ctx, query, seatIDs).Scan(&taken)
		if err != nil {
			return err
		}

		if taken > 0 {
			return domain.ErrSeatAlreadyBooked
		}

		query = `
			INSERT INTO bookings (reference, user_id, showtime_id, total_price)
			VALUES ($1, $2, $3, $4)
			RETURNING id, created_at
		`

		err = tx.QueryRow(
			ctx,
			query,
			booking.Reference,
			booking.UserID,
			booking.ShowtimeID,
			booking.TotalPrice).Scan(&booking.ID, &booking.CreatedAt)

		if err != nil {
			return err
		}

		seatRows := make([][]any, 0, len(seatIDs))
		for _, seatID := range seatIDs {
			seatRows = append(seatRows, []any{booking.ID, seatID})
		}

		_, err = tx.CopyFrom(
			ctx,
			pgx.Identifier{"booking_seats"},
			[]string{"booking_id", "seat_id"},
			pgx.CopyFromRows(seatRows),
		)

		return err
	})

	if err != nil {
		// A competing transaction that won the race shows up here as a unique
		// violation on booking_seats.seat_id or as a serialization failure.
		// Both mean the same thing to the caller: the seats are gone.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) &&
			(pgErr.Code == pgerrcode.UniqueViolation || pgErr.Code == pgerrcode.SerializationFailure) {
			return domain.ErrSeatAlreadyBooked
		}

		return err
	}

	return nil
}

func runInTx(ctx context.Context, db *pgxpool.Pool, txOptions pgx.TxOptions, fn func(tx pgx.Tx) error) error {
	tx, err := db.BeginTx(ctx, txOptions)
	if err != nil {
		return err
	}

	err = fn(tx)
	if err == nil {
		return tx.Commit(ctx)
	}

	rollbackErr := tx.Rollback(ctx)
	if rollbackErr != nil {
		return errors.Join(err, rollbackErr)
	}

	return err
}

func (p *PostgresBookingRepository) GetById(ctx context.Context, id int) (*domain.Booking, error) {
	query := `
		SELECT b.id, b.reference, b.user_id, b.showtime_id, s.start_time, m.name, b.total_price, b.created_at
		FROM bookings b
		JOIN showtimes s ON b.showtime_id = s.id
		JOIN movies m ON s.movie_id = m.id
		WHERE b.id = $1
	`

	var booking domain.Booking

	err := p.db.QueryRow(ctx, query, id).Scan(
		&booking.ID,
		&booking.Reference,
		&booking.UserID,
		&booking.ShowtimeID,
		&booking.ShowtimeStart,
		&booking.MovieName,
		&booking.TotalPrice,
		&booking.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	query = `
		SELECT s.seat_number
		FROM booking_seats bs
		JOIN seats s ON bs.seat_id = s.id
		WHERE bs.booking_id = $1
		ORDER BY s.seat_number
	`

	rows, err := p.db.Query(ctx, query, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var seatNumber string

		if err := rows.Scan(&seatNumber); err != nil {
			return nil, err
		}

		booking.SeatNumbers = append(booking.SeatNumbers, seatNumber)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return &booking, nil
}

// Cancel removes the seat links and the booking in one transaction. Deleting
// the booking_seats rows is what returns the seats to the available pool.
func (p *PostgresBookingRepository) Cancel(ctx context.Context, id int) error {
	return runInTx(ctx, p.db, pgx.TxOptions{}, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `DELETE FROM booking_seats WHERE booking_id = $1`, id)
		if err != nil {
			return err
		}

		tag, err := tx.Exec(ctx, `DELETE FROM bookings WHERE id = $1`, id)
		if err != nil {
			return err
		}

		if tag.RowsAffected() == 0 {
			return domain.ErrRecordNotFound
		}

		return nil
	})
}

func (p *PostgresBookingRepository) GetAllByUserId(ctx context.Context, userID int) ([]domain.BookingSummary, error) {
	query := `
		SELECT
			b.id,
			b.reference,
			b.user_id,
			u.username,
			m.name,
			s.start_time,
			ARRAY_AGG(se.seat_number ORDER BY se.seat_number),
			b.total_price,
			b.created_at
		FROM bookings b
		JOIN users u ON b.user_id = u.id
		JOIN showtimes s ON b.showtime_id = s.id
		JOIN movies m ON s.movie_id = m.id
		JOIN booking_seats bs ON bs.booking_id = b.id
		JOIN seats se ON bs.seat_id = se.id
		WHERE b.user_id = $1
		GROUP BY b.id, u.username, m.name, s.start_time
		ORDER BY b.created_at DESC
	`

	return p.querySummaries(ctx, query, userID)
}

func (p *PostgresBookingRepository) GetAll(ctx context.Context) ([]domain.BookingSummary, error) {
	query := `
		SELECT
			b.id,
			b.reference,
			b.user_id,
			u.username,
			m.name,
			s.start_time,
			ARRAY_AGG(se.seat_number ORDER BY se.seat_number),
			b.total_price,
			b.created_at
		FROM bookings b
		JOIN users u ON b.user_id = u.id
		JOIN showtimes s ON b.showtime_id = s.id
		JOIN movies m ON s.movie_id = m.id
		JOIN booking_seats bs ON bs.booking_id = b.id
		JOIN seats se ON bs.seat_id = se.id
		GROUP BY b.id, u.username, m.name, s.start_time
		ORDER BY b.created_at DESC
	`

	return p.querySummaries(ctx, query)
}

func (p *PostgresBookingRepository) querySummaries(ctx context.Context, query string, args ...any) ([]domain.BookingSummary, error) {
	rows, err := p.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	summaries := make([]domain.BookingSummary, 0)

	for rows.Next() {
		var summary domain.BookingSummary

		err = rows.Scan(
			&summary.ID,
			&summary.Reference,
			&summary.UserID,
			&summary.Username,
			&summary.MovieName,
			&summary.ShowtimeStart,
			&summary.SeatNumbers,
			&summary.TotalPrice,
			&summary.CreatedAt,
		)

		if err != nil {
			return nil, err
		}

		summaries = append(summaries, summary)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return summaries, nil
}
