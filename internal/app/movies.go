package app

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/pattadon/movie-booking-api/api"
	"github.com/pattadon/movie-booking-api/internal/domain"
	"github.com/shopspring/decimal"
)

func (app *Application) CreateMovieHandler(w http.ResponseWriter, r *http.Request) {
	var req api.CreateMovieRequest

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

	for i, showtime := range req.Showtimes {
		if showtime.Price.LessThanOrEqual(decimal.Zero) {
			app.badRequestResponse(w, r, fmt.Errorf("showtimes[%d]: price must be greater than zero", i))
			return
		}

		if len(showtime.Seats) > showtime.Capacity {
			app.badRequestResponse(w, r, fmt.Errorf("showtimes[%d]: seat count exceeds capacity", i))
			return
		}

		seen := make(map[string]bool, len(showtime.Seats))
		for _, seat := range showtime.Seats {
			if seen[seat.SeatNumber] {
				app.badRequestResponse(w, r, fmt.Errorf("showtimes[%d]: duplicate seat number %s", i, seat.SeatNumber))
				return
			}
			seen[seat.SeatNumber] = true
		}
	}

	movie := &domain.Movie{
		Name:        req.Name,
		Description: req.Description,
		ImageUrl:    req.ImageUrl,
		CreatedBy:   app.contextGetUserId(r),
	}

	for _, showtimeReq := range req.Showtimes {
		showtime := domain.Showtime{
			StartTime: showtimeReq.StartTime,
			EndTime:   showtimeReq.EndTime,
			Capacity:  showtimeReq.Capacity,
			Price:     showtimeReq.Price,
		}

		for _, seatReq := range showtimeReq.Seats {
			showtime.Seats = append(showtime.Seats, domain.Seat{
				SeatNumber: seatReq.SeatNumber,
				Row:        seatReq.Row,
			})
		}

		movie.Showtimes = append(movie.Showtimes, showtime)
	}

	err = app.movieRepo.CreateWithShowtimes(r.Context(), movie)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrMovieAlreadyExists):
			app.badRequestResponse(w, r, err)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusCreated, toMovieResponse(movie), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) GetMoviesHandler(w http.ResponseWriter, r *http.Request) {
	pagination, err := app.readPagination(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	movies, metadata, err := app.movieRepo.GetAll(r.Context(), pagination)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := api.MovieListResponse{
		Movies: make([]api.MovieResponse, len(movies)),
		Metadata: api.Metadata{
			CurrentPage:  metadata.CurrentPage,
			FirstPage:    metadata.FirstPage,
			LastPage:     metadata.LastPage,
			PageSize:     metadata.PageSize,
			TotalRecords: metadata.TotalRecords,
		},
	}

	for i := range movies {
		resp.Movies[i] = toMovieResponse(&movies[i])
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) GetMovieHandler(w http.ResponseWriter, r *http.Request) {
	movieId, err := app.readIDParam(r, "movieId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	movie, err := app.movieRepo.GetById(r.Context(), movieId)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusOK, toMovieResponse(movie), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) DeleteMovieHandler(w http.ResponseWriter, r *http.Request) {
	movieId, err := app.readIDParam(r, "movieId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.movieRepo.Delete(r.Context(), movieId)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		case errors.Is(err, domain.ErrMovieHasBookings):
			app.conflictResponse(w, r, err)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (app *Application) GetMovieShowtimesHandler(w http.ResponseWriter, r *http.Request) {
	movieId, err := app.readIDParam(r, "movieId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	showtimes, err := app.showtimeRepo.GetByMovieId(r.Context(), movieId)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}
		return
	}

	err = app.writeJSON(w, http.StatusOK, toShowtimeListResponse(showtimes), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) GetShowtimesHandler(w http.ResponseWriter, r *http.Request) {
	var day *time.Time

	if date := r.URL.Query().Get("date"); date != "" {
		parsed, err := time.Parse("2006-01-02", date)
		if err != nil {
			app.badRequestResponse(w, r, errors.New("date must be in YYYY-MM-DD format"))
			return
		}
		day = &parsed
	}

	showtimes, err := app.showtimeRepo.GetAll(r.Context(), day)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, toShowtimeListResponse(showtimes), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) readPagination(r *http.Request) (domain.Pagination, error) {
	pagination := domain.Pagination{Page: 1, PageSize: 20}

	query := r.URL.Query()

	if page := query.Get("page"); page != "" {
		n, err := strconv.Atoi(page)
		if err != nil || n < 1 {
			return pagination, errors.New("page must be a positive integer")
		}
		pagination.Page = n
	}

	if pageSize := query.Get("pageSize"); pageSize != "" {
		n, err := strconv.Atoi(pageSize)
		if err != nil || n < 1 || n > 100 {
			return pagination, errors.New("pageSize must be between 1 and 100")
		}
		pagination.PageSize = n
	}

	return pagination, nil
}

func toMovieResponse(movie *domain.Movie) api.MovieResponse {
	resp := api.MovieResponse{
		Id:          movie.ID,
		Name:        movie.Name,
		Description: movie.Description,
		ImageUrl:    movie.ImageUrl,
		CreatedAt:   movie.CreatedAt,
	}

	for _, showtime := range movie.Showtimes {
		resp.Showtimes = append(resp.Showtimes, toShowtimeResponse(showtime))
	}

	return resp
}

func toShowtimeResponse(showtime domain.Showtime) api.ShowtimeResponse {
	return api.ShowtimeResponse{
		Id:        showtime.ID,
		MovieId:   showtime.MovieID,
		MovieName: showtime.MovieName,
		StartTime: showtime.StartTime,
		EndTime:   showtime.EndTime,
		Capacity:  showtime.Capacity,
		Price:     showtime.Price,
	}
}

func toShowtimeListResponse(showtimes []domain.Showtime) api.ShowtimeListResponse {
	resp := api.ShowtimeListResponse{
		Showtimes: make([]api.ShowtimeResponse, len(showtimes)),
	}

	for i, showtime := range showtimes {
		resp.Showtimes[i] = toShowtimeResponse(showtime)
	}

	return resp
}
