package app

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pattadon/movie-booking-api/api"
	"github.com/pattadon/movie-booking-api/internal/domain"
	"github.com/shopspring/decimal"
)

func (app *Application) CreateBookingHandler(w http.ResponseWriter, r *http.Request) {
	var req api.CreateBookingRequest

	err := app.readJSON(w, r, &req)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(req)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	if req.TotalPrice.LessThan(decimal.Zero) {
		app.badRequestResponse(w, r, errors.New("totalPrice must not be negative"))
		return
	}

	booking := &domain.Booking{
		Reference:   uuid.New(),
		UserID:      app.contextGetUserId(r),
		ShowtimeID:  req.ShowtimeId,
		TotalPrice:  req.TotalPrice,
		SeatNumbers: dedupeSeatNumbers(req.SeatNumbers),
	}

	err = app.bookingRepo.Create(r.Context(), booking)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrShowtimeNotFound), errors.Is(err, domain.ErrSeatNotFound):
			app.errorResponse(w, r, http.StatusNotFound, err.Error())
		case errors.Is(err, domain.ErrSeatAlreadyBooked):
			app.conflictResponse(w, r, err)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	app.sendBookingConfirmation(r, booking)

	resp := api.BookingResponse{
		BookingId:   booking.ID,
		Reference:   booking.Reference,
		ShowtimeId:  booking.ShowtimeID,
		SeatNumbers: booking.SeatNumbers,
		TotalPrice:  booking.TotalPrice,
		CreatedAt:   booking.CreatedAt,
	}

	err = app.writeJSON(w, http.StatusCreated, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) CancelBookingHandler(w http.ResponseWriter, r *http.Request) {
	bookingId, err := app.readIDParam(r, "bookingId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	booking, err := app.bookingRepo.GetById(r.Context(), bookingId)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	if booking.UserID != app.contextGetUserId(r) {
		app.forbiddenResponse(w, r)
		return
	}

	if !time.Now().Before(booking.ShowtimeStart) {
		app.badRequestResponse(w, r, domain.ErrShowtimeAlreadyStarted)
		return
	}

	err = app.bookingRepo.Cancel(r.Context(), bookingId)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (app *Application) GetUserBookingsHandler(w http.ResponseWriter, r *http.Request) {
	bookings, err := app.bookingRepo.GetAllByUserId(r.Context(), app.contextGetUserId(r))
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := api.BookingListResponse{
		Bookings: make([]api.BookingSummary, len(bookings)),
	}

	for i, booking := range bookings {
		resp.Bookings[i] = api.BookingSummary{
			Id:          booking.ID,
			Reference:   booking.Reference,
			MovieName:   booking.MovieName,
			Date:        booking.ShowtimeStart,
			SeatNumbers: booking.SeatNumbers,
			TotalPrice:  booking.TotalPrice,
			CreatedAt:   booking.CreatedAt,
		}
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) GetAllBookingsHandler(w http.ResponseWriter, r *http.Request) {
	bookings, err := app.bookingRepo.GetAll(r.Context())
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := api.BookingListResponse{
		Bookings: make([]api.BookingSummary, len(bookings)),
	}

	for i, booking := range bookings {
		resp.Bookings[i] = api.BookingSummary{
			Id:          booking.ID,
			Reference:   booking.Reference,
			UserId:      booking.UserID,
			Username:    booking.Username,
			MovieName:   booking.MovieName,
			Date:        booking.ShowtimeStart,
			SeatNumbers: booking.SeatNumbers,
			TotalPrice:  booking.TotalPrice,
			CreatedAt:   booking.CreatedAt,
		}
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) sendBookingConfirmation(r *http.Request, booking *domain.Booking) {
	logger := app.contextGetLogger(r)

	user, err := app.userRepo.GetById(r.Context(), booking.UserID)
	if err != nil {
		logger.Error("failed to load user for booking confirmation", "error", err)
		return
	}

	go func() {
		defer func() {
			if err := recover(); err != nil {
				logger.Error("failed to send booking confirmation email", "error", err)
			}
		}()

		data := map[string]any{
			"username":   user.Username,
			"reference":  booking.Reference.String(),
			"movieName":  booking.MovieName,
			"showtime":   booking.ShowtimeStart.Format(time.RFC1123),
			"seats":      strings.Join(booking.SeatNumbers, ", "),
			"totalPrice": booking.TotalPrice.StringFixed(2),
		}

		err := app.mailer.Send(user.Email, "booking_confirmation.tmpl", data)
		if err != nil {
			logger.Error("failed to send booking confirmation email", "error", err)
		}
	}()
}

// dedupeSeatNumbers drops repeated seat numbers, keeping first-seen order.
func dedupeSeatNumbers(seatNumbers []string) []string {
	seen := make(map[string]bool, len(seatNumbers))
	deduped := make([]string, 0, len(seatNumbers))

	for _, seatNumber := range seatNumbers {
		if seen[seatNumber] {
			continue
		}
		seen[seatNumber] = true
		deduped = append(deduped, seatNumber)
	}

	return deduped
}
