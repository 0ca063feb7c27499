package domain

import "time"

type PaymentStatus string

const (
	PaymentPending             PaymentStatus = "pending"
	PaymentWaitingVerification PaymentStatus = "waiting_verification"
	PaymentPaid                PaymentStatus = "paid"
	PaymentCancelled           PaymentStatus = "cancelled"
	PaymentRefunded            PaymentStatus = "refunded"
)

// Booking is one seat reservation on a scheduled departure. OrderID is the
// join key with the payment gateway's transaction record; PaymentStatus is
// mutated only by the payment webhook after creation.
type Booking struct {
	ID             int64         `json:"id"`
	OrderID        string        `json:"order_id" gorm:"uniqueIndex"`
	CustomerName   string        `json:"customer_name"`
	CustomerPhone  string        `json:"customer_phone"`
	CustomerEmail  string        `json:"customer_email,omitempty"`
	RouteFrom      string        `json:"route_from"`
	RouteTo        string        `json:"route_to"`
	RouteVia       string        `json:"route_via,omitempty"`
	PickupTime     string        `json:"pickup_time"`
	TravelDate     string        `json:"travel_date"`
	Passengers     int           `json:"passengers"`
	TotalPrice     int64         `json:"total_price"`
	PickupAddress  string        `json:"pickup_address"`
	DropoffAddress string        `json:"dropoff_address,omitempty"`
	Notes          string        `json:"notes,omitempty" gorm:"type:text"`
	PaymentStatus  PaymentStatus `json:"payment_status"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
}
