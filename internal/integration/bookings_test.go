package integration_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/pattadon/movie-booking-api/api"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type BookingsSuite struct {
	BaseSuite
	userCookie  *http.Cookie
	otherCookie *http.Cookie
	adminCookie *http.Cookie
}

func TestBookingsSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration tests in short mode")
	}
	suite.Run(t, new(BookingsSuite))
}

func (s *BookingsSuite) SetupTest() {
	truncateTables(s.T(), s.app)

	registerUser(s.T(), s.app, TestAdminUsername, TestAdminEmail, TestAdminPassword, true)
	registerUser(s.T(), s.app, TestUserUsername, TestUserEmail, TestUserPassword, false)
	registerUser(s.T(), s.app, "cinephile", "other@example.com", TestUserPassword, false)

	s.adminCookie = login(s.T(), s.app, TestAdminEmail, TestAdminPassword)
	s.userCookie = login(s.T(), s.app, TestUserEmail, TestUserPassword)
	s.otherCookie = login(s.T(), s.app, "other@example.com", TestUserPassword)
}

func (s *BookingsSuite) bookSeats(cookie *http.Cookie, showtimeId int, seats []string, price int64) *httptest.ResponseRecorder {
	body := jsonBody(s.T(), api.CreateBookingRequest{
		ShowtimeId:  showtimeId,
		SeatNumbers: seats,
		TotalPrice:  decimal.NewFromInt(price),
	})

	req, err := prepareRequest(http.MethodPost, "/bookings", body, nil, []*http.Cookie{cookie})
	s.Require().NoError(err)

	rec := httptest.NewRecorder()
	s.app.App.Routes().ServeHTTP(rec, req)

	return rec
}

func (s *BookingsSuite) TestBookingLifecycle() {
	start := time.Now().Add(48 * time.Hour)
	showtimeId := seedMovieWithShowtime(s.T(), s.app, TestMovieName, start, []string{"A1", "A2", "B1", "B2"})

	// the first caller takes A1 and A2
	rec := s.bookSeats(s.userCookie, showtimeId, []string{"A1", "A2"}, 20)
	s.Require().Equal(http.StatusCreated, rec.Code)

	var booking api.BookingResponse
	s.Require().NoError(json.NewDecoder(rec.Body).Decode(&booking))
	s.Equal([]string{"A1", "A2"}, booking.SeatNumbers)

	// a second caller asking for an overlapping set is rejected whole
	rec = s.bookSeats(s.otherCookie, showtimeId, []string{"A2", "B1"}, 20)
	s.Equal(http.StatusConflict, rec.Code)

	// and availability reflects only the committed booking
	s.Equal([]string{"B1", "B2"}, availableSeats(s.T(), s.app, showtimeId, s.otherCookie))

	// cancelling returns the seats to the pool
	req, err := prepareRequest(http.MethodDelete, fmt.Sprintf("/bookings/%d", booking.BookingId), nil, nil, []*http.Cookie{s.userCookie})
	s.Require().NoError(err)

	rec = httptest.NewRecorder()
	s.app.App.Routes().ServeHTTP(rec, req)
	s.Require().Equal(http.StatusNoContent, rec.Code)

	s.Equal([]string{"A1", "A2", "B1", "B2"}, availableSeats(s.T(), s.app, showtimeId, s.userCookie))

	// the freed seats can be booked again by someone else
	rec = s.bookSeats(s.otherCookie, showtimeId, []string{"A1"}, 10)
	s.Equal(http.StatusCreated, rec.Code)
}

func (s *BookingsSuite) TestCancelRules() {
	past := time.Now().Add(time.Second)
	showtimeId := seedMovieWithShowtime(s.T(), s.app, TestMovieName, past, []string{"A1"})

	rec := s.bookSeats(s.userCookie, showtimeId, []string{"A1"}, 10)
	s.Require().Equal(http.StatusCreated, rec.Code)

	var booking api.BookingResponse
	s.Require().NoError(json.NewDecoder(rec.Body).Decode(&booking))

	url := fmt.Sprintf("/bookings/%d", booking.BookingId)

	// another user cannot cancel it
	req, err := prepareRequest(http.MethodDelete, url, nil, nil, []*http.Cookie{s.otherCookie})
	s.Require().NoError(err)

	rec = httptest.NewRecorder()
	s.app.App.Routes().ServeHTTP(rec, req)
	s.Equal(http.StatusForbidden, rec.Code)

	// once the showtime starts, the owner cannot cancel either
	time.Sleep(time.Until(past) + 100*time.Millisecond)

	req, err = prepareRequest(http.MethodDelete, url, nil, nil, []*http.Cookie{s.userCookie})
	s.Require().NoError(err)

	rec = httptest.NewRecorder()
	s.app.App.Routes().ServeHTTP(rec, req)
	s.Equal(http.StatusBadRequest, rec.Code)

	// the booking is untouched
	var count int
	err = s.app.DB.QueryRow(context.Background(), `SELECT COUNT(*) FROM bookings`).Scan(&count)
	s.Require().NoError(err)
	s.Equal(1, count)
}

// TestConcurrentBooking races two users over the same seat and requires that
// exactly one wins while the other gets a conflict.
func (s *BookingsSuite) TestConcurrentBooking() {
	start := time.Now().Add(48 * time.Hour)
	showtimeId := seedMovieWithShowtime(s.T(), s.app, TestMovieName, start, []string{"A1", "A2"})

	cookies := []*http.Cookie{s.userCookie, s.otherCookie}
	codes := make([]int, len(cookies))

	var wg sync.WaitGroup

	for i, cookie := range cookies {
		wg.Add(1)

		go func(i int, cookie *http.Cookie) {
			defer wg.Done()
			codes[i] = s.bookSeats(cookie, showtimeId, []string{"A1"}, 10).Code
		}(i, cookie)
	}

	wg.Wait()

	created, conflicted := 0, 0
	for _, code := range codes {
		switch code {
		case http.StatusCreated:
			created++
		case http.StatusConflict:
			conflicted++
		}
	}

	s.Equal(1, created, "exactly one attempt must win the seat")
	s.Equal(1, conflicted, "the losing attempt must see a conflict")

	// no partial state: one booking, one seat link
	var bookings, seatLinks int
	s.Require().NoError(s.app.DB.QueryRow(context.Background(), `SELECT COUNT(*) FROM bookings`).Scan(&bookings))
	s.Require().NoError(s.app.DB.QueryRow(context.Background(), `SELECT COUNT(*) FROM booking_seats`).Scan(&seatLinks))
	s.Equal(1, bookings)
	s.Equal(1, seatLinks)
}

func (s *BookingsSuite) TestBookingValidation() {
	start := time.Now().Add(48 * time.Hour)
	showtimeId := seedMovieWithShowtime(s.T(), s.app, TestMovieName, start, []string{"A1", "A2"})

	scenarios := []Scenario{
		{
			Name:           "rejects unauthenticated booking attempts",
			Method:         http.MethodPost,
			URL:            "/bookings",
			Body:           jsonBody(s.T(), api.CreateBookingRequest{ShowtimeId: showtimeId, SeatNumbers: []string{"A1"}, TotalPrice: decimal.NewFromInt(10)}),
			ExpectedStatus: http.StatusUnauthorized,
		},
		{
			Name:           "rejects bookings against unknown showtimes",
			Method:         http.MethodPost,
			URL:            "/bookings",
			Body:           jsonBody(s.T(), api.CreateBookingRequest{ShowtimeId: 9999, SeatNumbers: []string{"A1"}, TotalPrice: decimal.NewFromInt(10)}),
			Cookies:        []*http.Cookie{s.userCookie},
			ExpectedStatus: http.StatusNotFound,
		},
		{
			Name:           "rejects the whole request when one seat is unknown",
			Method:         http.MethodPost,
			URL:            "/bookings",
			Body:           jsonBody(s.T(), api.CreateBookingRequest{ShowtimeId: showtimeId, SeatNumbers: []string{"A1", "Z9"}, TotalPrice: decimal.NewFromInt(20)}),
			Cookies:        []*http.Cookie{s.userCookie},
			ExpectedStatus: http.StatusNotFound,
			AfterTestFunc: func(t testing.TB, app *TestApp, res *http.Response) {
				var count int
				err := app.DB.QueryRow(context.Background(), `SELECT COUNT(*) FROM bookings`).Scan(&count)
				if err != nil {
					t.Fatal(err)
				}
				if count != 0 {
					t.Errorf("expected no bookings after all-or-nothing rejection, got %d", count)
				}
			},
		},
	}

	for _, scenario := range scenarios {
		scenario.Run(s.T(), s.app)
	}
}

func (s *BookingsSuite) TestUserAndAdminListings() {
	start := time.Now().Add(48 * time.Hour)
	showtimeId := seedMovieWithShowtime(s.T(), s.app, TestMovieName, start, []string{"A1", "A2", "B1"})

	s.Require().Equal(http.StatusCreated, s.bookSeats(s.userCookie, showtimeId, []string{"A1"}, 10).Code)
	s.Require().Equal(http.StatusCreated, s.bookSeats(s.otherCookie, showtimeId, []string{"B1"}, 10).Code)

	// own listing holds only the caller's booking, without user fields
	req, err := prepareRequest(http.MethodGet, "/bookings", nil, nil, []*http.Cookie{s.userCookie})
	s.Require().NoError(err)

	rec := httptest.NewRecorder()
	s.app.App.Routes().ServeHTTP(rec, req)
	s.Require().Equal(http.StatusOK, rec.Code)

	var own api.BookingListResponse
	s.Require().NoError(json.NewDecoder(rec.Body).Decode(&own))
	s.Require().Len(own.Bookings, 1)
	s.Equal([]string{"A1"}, own.Bookings[0].SeatNumbers)
	s.Empty(own.Bookings[0].Username)

	// the admin listing holds both, with usernames
	req, err = prepareRequest(http.MethodGet, "/admin/bookings", nil, nil, []*http.Cookie{s.adminCookie})
	s.Require().NoError(err)

	rec = httptest.NewRecorder()
	s.app.App.Routes().ServeHTTP(rec, req)
	s.Require().Equal(http.StatusOK, rec.Code)

	var all api.BookingListResponse
	s.Require().NoError(json.NewDecoder(rec.Body).Decode(&all))
	s.Require().Len(all.Bookings, 2)
	s.NotEmpty(all.Bookings[0].Username)

	// a regular user is turned away from the admin listing
	req, err = prepareRequest(http.MethodGet, "/admin/bookings", nil, nil, []*http.Cookie{s.userCookie})
	s.Require().NoError(err)

	rec = httptest.NewRecorder()
	s.app.App.Routes().ServeHTTP(rec, req)
	s.Equal(http.StatusForbidden, rec.Code)
}
