// Package api defines the request and response types of the HTTP contract.
package api

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ErrorResponse struct {
	Message   string    `json:"message"`
	RequestId string    `json:"requestId,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

type ValidationError struct {
	Field string `json:"field"`
	Issue string `json:"issue"`
}

type ValidationErrorResponse struct {
	Message          string            `json:"message"`
	RequestId        string            `json:"requestId,omitempty"`
	Timestamp        time.Time         `json:"timestamp"`
	ValidationErrors []ValidationError `json:"validationErrors"`
}

type Metadata struct {
	CurrentPage  int `json:"currentPage"`
	FirstPage    int `json:"firstPage"`
	LastPage     int `json:"lastPage"`
	PageSize     int `json:"pageSize"`
	TotalRecords int `json:"totalRecords"`
}

type SystemInfo struct {
	Version     string `json:"version"`
	Environment string `json:"environment"`
}

type HealthcheckResponse struct {
	Status     string     `json:"status"`
	SystemInfo SystemInfo `json:"systemInfo"`
}

type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=30"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,password"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UserResponse struct {
	Id        int       `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

type UpdateUserRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=USER ADMIN"`
}

type UserListResponse struct {
	Users    []UserResponse `json:"users"`
	Metadata Metadata       `json:"metadata"`
}

type CreateSeatRequest struct {
	SeatNumber string `json:"seatNumber" validate:"required,seat_number"`
	Row        string `json:"row" validate:"required,alpha,max=2"`
}

type CreateShowtimeRequest struct {
	StartTime time.Time           `json:"startTime" validate:"required"`
	EndTime   time.Time           `json:"endTime" validate:"required,gtfield=StartTime"`
	Capacity  int                 `json:"capacity" validate:"required,min=1"`
	Price     decimal.Decimal     `json:"price"`
	Seats     []CreateSeatRequest `json:"seats" validate:"required,min=1,dive"`
}

type CreateMovieRequest struct {
	Name        string                  `json:"name" validate:"required,max=200"`
	Description string                  `json:"description" validate:"max=2000"`
	ImageUrl    string                  `json:"imageUrl" validate:"required,url"`
	Showtimes   []CreateShowtimeRequest `json:"showtimes" validate:"omitempty,min=1,dive"`
}

type ShowtimeResponse struct {
	Id        int             `json:"id"`
	MovieId   int             `json:"movieId"`
	MovieName string          `json:"movieName,omitempty"`
	StartTime time.Time       `json:"startTime"`
	EndTime   time.Time       `json:"endTime"`
	Capacity  int             `json:"capacity"`
	Price     decimal.Decimal `json:"price"`
}

type MovieResponse struct {
	Id          int                `json:"id"`
	Name        string             `json:"name"`
	Description string             `json:"description,omitempty"`
	ImageUrl    string             `json:"imageUrl"`
	CreatedAt   time.Time          `json:"createdAt"`
	Showtimes   []ShowtimeResponse `json:"showtimes,omitempty"`
}

type MovieListResponse struct {
	Movies   []MovieResponse `json:"movies"`
	Metadata Metadata        `json:"metadata"`
}

type ShowtimeListResponse struct {
	Showtimes []ShowtimeResponse `json:"showtimes"`
}

type Seat struct {
	SeatNumber string `json:"seatNumber"`
	Row        string `json:"row"`
}

type AvailableSeatsResponse struct {
	ShowtimeId int    `json:"showtimeId"`
	Seats      []Seat `json:"seats"`
}

type CreateBookingRequest struct {
	ShowtimeId  int             `json:"showtimeId" validate:"required,min=1"`
	SeatNumbers []string        `json:"seatNumbers" validate:"required,min=1,dive,seat_number"`
	TotalPrice  decimal.Decimal `json:"totalPrice"`
}

type BookingResponse struct {
	BookingId   int             `json:"bookingId"`
	Reference   uuid.UUID       `json:"reference"`
	ShowtimeId  int             `json:"showtimeId"`
	SeatNumbers []string        `json:"seatNumbers"`
	TotalPrice  decimal.Decimal `json:"totalPrice"`
	CreatedAt   time.Time       `json:"createdAt"`
}

type BookingSummary struct {
	Id          int             `json:"id"`
	Reference   uuid.UUID       `json:"reference"`
	UserId      int             `json:"userId,omitempty"`
	Username    string          `json:"username,omitempty"`
	MovieName   string          `json:"movieName"`
	Date        time.Time       `json:"date"`
	SeatNumbers []string        `json:"seatNumbers"`
	TotalPrice  decimal.Decimal `json:"totalPrice"`
	CreatedAt   time.Time       `json:"createdAt"`
}

type BookingListResponse struct {
	Bookings []BookingSummary `json:"bookings"`
}

type ReportResponse struct {
	TotalBookings    int                        `json:"totalBookings"`
	TotalSeatsBooked int                        `json:"totalSeatsBooked"`
	TotalRevenue     decimal.Decimal            `json:"totalRevenue"`
	RevenueByMovie   map[string]decimal.Decimal `json:"revenueByMovie"`
}
