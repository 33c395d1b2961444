package integration_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/pattadon/movie-booking-api/api"
	"github.com/stretchr/testify/require"
)

var keysToIgnore = map[string]struct{}{
	"timestamp": {},
	"requestId": {},
	"createdAt": {},
	"reference": {},
}

func prepareRequest(method, path string, body io.Reader, headers map[string]string, cookies []*http.Cookie) (*http.Request, error) {
	req := httptest.NewRequest(method, path, body)

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}

	return req, nil
}

func compareResponse(t testing.TB, body io.Reader, expectedResponse string) {
	var actual map[string]any
	require.NoError(t, json.NewDecoder(body).Decode(&actual))

	cleanMap(actual)

	var expected map[string]any
	require.NoError(t, json.Unmarshal([]byte(expectedResponse), &expected))

	// ignore indeterministic fields while comparing
	opts := cmpopts.IgnoreMapEntries(func(k string, _ any) bool {
		_, ok := keysToIgnore[k]
		return ok
	})

	if diff := cmp.Diff(expected, actual, opts); diff != "" {
		t.Errorf("response mismatch (-want +got):\n%s", diff)
	}
}

func cleanMap(m map[string]any) {
	for k := range m {
		if _, ok := keysToIgnore[k]; ok {
			delete(m, k)
			continue
		}
		switch nested := m[k].(type) {
		case map[string]any:
			cleanMap(nested)
		case []any:
			for _, item := range nested {
				if nestedMap, ok := item.(map[string]any); ok {
					cleanMap(nestedMap)
				}
			}
		}
	}
}

func jsonBody(t testing.TB, v any) io.Reader {
	t.Helper()

	data, err := json.Marshal(v)
	require.NoError(t, err)

	return bytes.NewReader(data)
}

// truncateTables resets all mutable state between tests. The migration
// history table is left alone.
func truncateTables(t testing.TB, app *TestApp) {
	t.Helper()

	_, err := app.DB.Exec(context.Background(),
		`TRUNCATE booking_seats, bookings, seats, showtimes, movies, users RESTART IDENTITY CASCADE`)
	require.NoError(t, err)
}

// registerUser creates a user through the public API and optionally promotes
// it to admin directly in the database.
func registerUser(t testing.TB, app *TestApp, username, email, password string, admin bool) {
	t.Helper()

	body := jsonBody(t, api.RegisterRequest{
		Username: username,
		Email:    email,
		Password: password,
	})

	req, err := prepareRequest(http.MethodPost, "/users", body, nil, nil)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	app.App.Routes().ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)

	if admin {
		_, err := app.DB.Exec(context.Background(),
			`UPDATE users SET role = 'ADMIN' WHERE email = $1`, email)
		require.NoError(t, err)
	}
}

// login authenticates through the API and returns the session cookie.
func login(t testing.TB, app *TestApp, email, password string) *http.Cookie {
	t.Helper()

	body := jsonBody(t, api.LoginRequest{Email: email, Password: password})

	req, err := prepareRequest(http.MethodPost, "/sessions", body, nil, nil)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	app.App.Routes().ServeHTTP(rec, req)
	require.Equal(t, http.StatusNoContent, rec.Code)

	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == "session_id" {
			return cookie
		}
	}

	t.Fatal("session cookie not found in login response")
	return nil
}

// seedMovieWithShowtime inserts a movie with one showtime and a small seat
// map, returning the showtime ID. The showtime starts at the given time.
func seedMovieWithShowtime(t testing.TB, app *TestApp, name string, startTime time.Time, seatNumbers []string) int {
	t.Helper()

	ctx := context.Background()

	var userId int
	err := app.DB.QueryRow(ctx, `SELECT id FROM users ORDER BY id LIMIT 1`).Scan(&userId)
	require.NoError(t, err)

	var movieId int
	err = app.DB.QueryRow(ctx,
		`INSERT INTO movies (name, description, image_url, created_by) VALUES ($1, $2, $3, $4) RETURNING id`,
		name, TestMovieDescription, TestMovieImageUrl, userId).Scan(&movieId)
	require.NoError(t, err)

	var showtimeId int
	err = app.DB.QueryRow(ctx,
		`INSERT INTO showtimes (movie_id, start_time, end_time, capacity, price)
		 VALUES ($1, $2, $3, $4, 10.00) RETURNING id`,
		movieId, startTime, startTime.Add(2*time.Hour), len(seatNumbers)).Scan(&showtimeId)
	require.NoError(t, err)

	for _, seatNumber := range seatNumbers {
		_, err = app.DB.Exec(ctx,
			`INSERT INTO seats (showtime_id, seat_number, row_label) VALUES ($1, $2, $3)`,
			showtimeId, seatNumber, seatNumber[:1])
		require.NoError(t, err)
	}

	return showtimeId
}

func availableSeats(t testing.TB, app *TestApp, showtimeId int, cookie *http.Cookie) []string {
	t.Helper()

	url := fmt.Sprintf("/showtimes/%d/seats", showtimeId)

	req, err := prepareRequest(http.MethodGet, url, nil, nil, []*http.Cookie{cookie})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	app.App.Routes().ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp api.AvailableSeatsResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))

	seats := make([]string, len(resp.Seats))
	for i, seat := range resp.Seats {
		seats[i] = seat.SeatNumber
	}

	return seats
}
