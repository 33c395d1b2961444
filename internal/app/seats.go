package app

import (
	"errors"
	"net/http"

	"github.com/pattadon/movie-booking-api/api"
	"github.com/pattadon/movie-booking-api/internal/domain"
)

func (app *Application) GetAvailableSeatsHandler(w http.ResponseWriter, r *http.Request) {
	showtimeId, err := app.readIDParam(r, "showtimeId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	seats, err := app.seatRepo.GetAvailableByShowtime(r.Context(), showtimeId)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrShowtimeNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	resp := api.AvailableSeatsResponse{
		ShowtimeId: showtimeId,
		Seats:      make([]api.Seat, len(seats)),
	}

	for i, seat := range seats {
		resp.Seats[i] = api.Seat{
			SeatNumber: seat.SeatNumber,
			Row:        seat.Row,
		}
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
