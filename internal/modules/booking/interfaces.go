package booking

import (
	"context"

	"travia/internal/domain"
)

type BookingRepository interface {
	Create(ctx context.Context, b *domain.Booking) error
	GetByOrderID(ctx context.Context, orderID string) (*domain.Booking, error)
	List(ctx context.Context, limit, offset int) ([]domain.Booking, error)
}

type ScheduleReader interface {
	GetByID(ctx context.Context, id string) (*domain.Schedule, error)
}

type EventSender interface {
	BookingCreated(b *domain.Booking)
}
