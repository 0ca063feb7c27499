package notify

import (
	"time"

	"travia/internal/domain"
)

type BookingCreatedEvent struct {
	Type       string    `json:"type"`
	OrderID    string    `json:"order_id"`
	RouteFrom  string    `json:"route_from"`
	RouteTo    string    `json:"route_to"`
	TravelDate string    `json:"travel_date"`
	TotalPrice int64     `json:"total_price"`
	OccurredAt time.Time `json:"occurred_at"`
}

type PaymentStatusEvent struct {
	Type       string               `json:"type"`
	OrderID    string               `json:"order_id"`
	Status     domain.PaymentStatus `json:"status"`
	OccurredAt time.Time            `json:"occurred_at"`
}

// Sender adapts the hub to the booking and payment modules' event
// interfaces. All sends are fire-and-forget.
type Sender struct {
	hub *Hub
}

func NewSender(hub *Hub) *Sender {
	return &Sender{hub: hub}
}

func (s *Sender) BookingCreated(b *domain.Booking) {
	s.hub.Broadcast(BookingCreatedEvent{
		Type:       "booking_created",
		OrderID:    b.OrderID,
		RouteFrom:  b.RouteFrom,
		RouteTo:    b.RouteTo,
		TravelDate: b.TravelDate,
		TotalPrice: b.TotalPrice,
		OccurredAt: time.Now().UTC(),
	})
}

func (s *Sender) PaymentStatusChanged(orderID string, status domain.PaymentStatus) {
	s.hub.Broadcast(PaymentStatusEvent{
		Type:       "payment_status",
		OrderID:    orderID,
		Status:     status,
		OccurredAt: time.Now().UTC(),
	})
}
