package mocks

import (
	"context"

	"github.com/pattadon/movie-booking-api/internal/domain"
)

type MockBookingRepo struct {
	domain.BookingRepository
	CreateFunc         func(ctx context.Context, booking *domain.Booking) error
	GetByIdFunc        func(ctx context.Context, id int) (*domain.Booking, error)
	CancelFunc         func(ctx context.Context, id int) error
	GetAllByUserIdFunc func(ctx context.Context, userID int) ([]domain.BookingSummary, error)
	GetAllFunc         func(ctx context.Context) ([]domain.BookingSummary, error)
}

func (m *MockBookingRepo) Create(ctx context.Context, booking *domain.Booking) error {
	return m.CreateFunc(ctx, booking)
}

func (m *MockBookingRepo) GetById(ctx context.Context, id int) (*domain.Booking, error) {
	return m.GetByIdFunc(ctx, id)
}

func (m *MockBookingRepo) Cancel(ctx context.Context, id int) error {
	return m.CancelFunc(ctx, id)
}

func (m *MockBookingRepo) GetAllByUserId(ctx context.Context, userID int) ([]domain.BookingSummary, error) {
	return m.GetAllByUserIdFunc(ctx, userID)
}

func (m *MockBookingRepo) GetAll(ctx context.Context) ([]domain.BookingSummary, error) {
	return m.GetAllFunc(ctx)
}
