package app

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/pattadon/movie-booking-api/api"
	"github.com/pattadon/movie-booking-api/internal/domain"
	"github.com/redis/go-redis/v9"
)

const reportCacheTTL = time.Minute

func (app *Application) GetReportHandler(w http.ResponseWriter, r *http.Request) {
	window, err := readReportWindow(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	cacheKey := reportCacheKey(window)

	cached, err := app.redis.Get(r.Context(), cacheKey).Bytes()
	if err == nil {
		var resp api.ReportResponse
		if err := json.Unmarshal(cached, &resp); err == nil {
			err = app.writeJSON(w, http.StatusOK, resp, nil)
			if err != nil {
				app.serverErrorResponse(w, r, err)
			}
			return
		}
	} else if !errors.Is(err, redis.Nil) {
		// cache failures degrade to a direct read
		app.contextGetLogger(r).Warn("report cache read failed", "error", err)
	}

	report, err := app.reportRepo.Compute(r.Context(), window)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := api.ReportResponse{
		TotalBookings:    report.TotalBookings,
		TotalSeatsBooked: report.TotalSeatsBooked,
		TotalRevenue:     report.TotalRevenue,
		RevenueByMovie:   report.RevenueByMovie,
	}

	if payload, err := json.Marshal(resp); err == nil {
		if err := app.redis.Set(r.Context(), cacheKey, payload, reportCacheTTL).Err(); err != nil {
			app.contextGetLogger(r).Warn("report cache write failed", "error", err)
		}
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func readReportWindow(r *http.Request) (domain.ReportWindow, error) {
	var window domain.ReportWindow

	query := r.URL.Query()
	startDate := query.Get("startDate")
	endDate := query.Get("endDate")

	if startDate == "" && endDate == "" {
		return window, nil
	}

	if startDate == "" || endDate == "" {
		return window, errors.New("startDate and endDate must be provided together")
	}

	start, err := time.Parse("2006-01-02", startDate)
	if err != nil {
		return window, errors.New("startDate must be in YYYY-MM-DD format")
	}

	end, err := time.Parse("2006-01-02", endDate)
	if err != nil {
		return window, errors.New("endDate must be in YYYY-MM-DD format")
	}

	if end.Before(start) {
		return window, errors.New("endDate must not be before startDate")
	}

	// the end bound is inclusive of the whole day
	end = end.AddDate(0, 0, 1)

	window.Start = &start
	window.End = &end

	return window, nil
}

func reportCacheKey(window domain.ReportWindow) string {
	if window.Start == nil {
		return "reports:all"
	}

	return fmt.Sprintf("reports:%s:%s",
		window.Start.Format("2006-01-02"),
		window.End.Format("2006-01-02"))
}
