package domain

import "errors"

var (
	ErrRecordNotFound         = errors.New("record not found")
	ErrEditConflict           = errors.New("edit conflict")
	ErrUserAlreadyExists      = errors.New("user already exists")
	ErrMovieAlreadyExists     = errors.New("movie with this name already exists")
	ErrShowtimeNotFound       = errors.New("showtime not found")
	ErrSeatNotFound           = errors.New("one or more seats not found")
	ErrSeatAlreadyBooked      = errors.New("one or more seats are already booked")
	ErrShowtimeAlreadyStarted = errors.New("showtime already started")
	ErrMovieHasBookings       = errors.New("movie has existing bookings")
)
