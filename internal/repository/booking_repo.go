package repository

import (
	"context"
	"time"

	"travia/internal/domain"

	"gorm.io/gorm"
)

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

type bookingModel struct {
	ID             int64     `gorm:"column:id;primaryKey"`
	OrderID        string    `gorm:"column:order_id;uniqueIndex"`
	CustomerName   string    `gorm:"column:customer_name"`
	CustomerPhone  string    `gorm:"column:customer_phone"`
	CustomerEmail  *string   `gorm:"column:customer_email"`
	RouteFrom      string    `gorm:"column:route_from"`
	RouteTo        string    `gorm:"column:route_to"`
	RouteVia       *string   `gorm:"column:route_via"`
	PickupTime     string    `gorm:"column:pickup_time"`
	TravelDate     string    `gorm:"column:travel_date"`
	Passengers     int       `gorm:"column:passengers"`
	TotalPrice     int64     `gorm:"column:total_price"`
	PickupAddress  string    `gorm:"column:pickup_address"`
	DropoffAddress *string   `gorm:"column:dropoff_address"`
	Notes          *string   `gorm:"column:notes"`
	PaymentStatus  string    `gorm:"column:payment_status"`
	CreatedAt      time.Time `gorm:"column:created_at"`
	UpdatedAt      time.Time `gorm:"column:updated_at"`
}

func (bookingModel) TableName() string { return "bookings" }

func strOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func strOrNil(s string) *string {
	if s == "" {
		return nil
	}
	v := s
	return &v
}

func toDomainBooking(m bookingModel) *domain.Booking {
	return &domain.Booking{
		ID:             m.ID,
		OrderID:        m.OrderID,
		CustomerName:   m.CustomerName,
		CustomerPhone:  m.CustomerPhone,
		CustomerEmail:  strOrEmpty(m.CustomerEmail),
		RouteFrom:      m.RouteFrom,
		RouteTo:        m.RouteTo,
		RouteVia:       strOrEmpty(m.RouteVia),
		PickupTime:     m.PickupTime,
		TravelDate:     m.TravelDate,
		Passengers:     m.Passengers,
		TotalPrice:     m.TotalPrice,
		PickupAddress:  m.PickupAddress,
		DropoffAddress: strOrEmpty(m.DropoffAddress),
		Notes:          strOrEmpty(m.Notes),
		PaymentStatus:  domain.PaymentStatus(m.PaymentStatus),
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

func toBookingModel(b *domain.Booking) bookingModel {
	return bookingModel{
		ID:             b.ID,
		OrderID:        b.OrderID,
		CustomerName:   b.CustomerName,
		CustomerPhone:  b.CustomerPhone,
		CustomerEmail:  strOrNil(b.CustomerEmail),
		RouteFrom:      b.RouteFrom,
		RouteTo:        b.RouteTo,
		RouteVia:       strOrNil(b.RouteVia),
		PickupTime:     b.PickupTime,
		TravelDate:     b.TravelDate,
		Passengers:     b.Passengers,
		TotalPrice:     b.TotalPrice,
		PickupAddress:  b.PickupAddress,
		DropoffAddress: strOrNil(b.DropoffAddress),
		Notes:          strOrNil(b.Notes),
		PaymentStatus:  string(b.PaymentStatus),
		CreatedAt:      b.CreatedAt,
		UpdatedAt:      b.UpdatedAt,
	}
}

func (r *BookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	m := toBookingModel(b)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*b = *toDomainBooking(m)
	return nil
}

func (r *BookingRepository) GetByOrderID(ctx context.Context, orderID string) (*domain.Booking, error) {
	var m bookingModel
	tx := r.db.WithContext(ctx).Where("order_id = ?", orderID).First(&m)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainBooking(m), nil
}

func (r *BookingRepository) List(ctx context.Context, limit, offset int) ([]domain.Booking, error) {
	var rows []bookingModel
	tx := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.Booking, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainBooking(m))
	}
	return out, nil
}

// UpdatePaymentStatusByOrderID is the webhook's write path: a plain
// single-row overwrite, no read-modify-write. Returns the number of rows
// matched so the caller can log notifications for unknown orders.
func (r *BookingRepository) UpdatePaymentStatusByOrderID(ctx context.Context, orderID string, status domain.PaymentStatus) (int64, error) {
	tx := r.db.WithContext(ctx).
		Model(&bookingModel{}).
		Where("order_id = ?", orderID).
		Updates(map[string]interface{}{
			"payment_status": string(status),
			"updated_at":     time.Now().UTC(),
		})
	if tx.Error != nil {
		return 0, tx.Error
	}
	return tx.RowsAffected, nil
}

func (r *BookingRepository) Count(ctx context.Context) (int64, error) {
	var cnt int64
	tx := r.db.WithContext(ctx).Model(&bookingModel{}).Count(&cnt)
	return cnt, tx.Error
}

func (r *BookingRepository) CountByPaymentStatus(ctx context.Context, status domain.PaymentStatus) (int64, error) {
	var cnt int64
	tx := r.db.WithContext(ctx).
		Model(&bookingModel{}).
		Where("payment_status = ?", string(status)).
		Count(&cnt)
	return cnt, tx.Error
}
