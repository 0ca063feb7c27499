package domain

import "time"

// Schedule is a recurring departure on a fixed route. Prices are in the
// smallest currency unit (IDR has no decimals).
type Schedule struct {
	ID         string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	RouteFrom  string    `json:"route_from"`
	RouteTo    string    `json:"route_to"`
	RouteVia   string    `json:"route_via,omitempty"`
	PickupTime string    `json:"pickup_time"`
	Price      int64     `json:"price"`
	Category   string    `json:"category"`
	IsActive   bool      `json:"is_active"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
