package booking

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"travia/internal/domain"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const orderIDAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

type Service struct {
	bookings  BookingRepository
	schedules ScheduleReader
	notifs    EventSender
}

func NewService(bookings BookingRepository, schedules ScheduleReader, notifs EventSender) *Service {
	return &Service{
		bookings:  bookings,
		schedules: schedules,
		notifs:    notifs,
	}
}

// GenerateOrderID produces the booking identifiers shared with the payment
// gateway, e.g. TRV-20250101-AB12.
func GenerateOrderID(now time.Time) string {
	suffix := make([]byte, 4)
	for i := range suffix {
		suffix[i] = orderIDAlphabet[rand.Intn(len(orderIDAlphabet))]
	}
	return fmt.Sprintf("TRV-%s-%s", now.Format("20060102"), suffix)
}

func (s *Service) CreateBooking(ctx context.Context, req CreateBookingRequest) (*domain.Booking, error) {
	return s.create(ctx, req, domain.PaymentPending, req.Notes)
}

// CreateOfflineBooking records a walk-in order on behalf of staff. Offline
// notes carry the [OFFLINE] tag so reports can tell the channels apart.
func (s *Service) CreateOfflineBooking(ctx context.Context, req OfflineBookingRequest) (*domain.Booking, error) {
	notes := "[OFFLINE]"
	if trimmed := strings.TrimSpace(req.Notes); trimmed != "" {
		notes = "[OFFLINE] " + trimmed
	}
	return s.create(ctx, req.CreateBookingRequest, domain.PaymentStatus(req.PaymentStatus), notes)
}

func (s *Service) create(ctx context.Context, req CreateBookingRequest, paymentStatus domain.PaymentStatus, notes string) (*domain.Booking, error) {
	if _, err := time.Parse("2006-01-02", req.TravelDate); err != nil {
		return nil, ErrValidation
	}
	if req.Passengers < 1 {
		return nil, ErrValidation
	}

	sched, err := s.schedules.GetByID(ctx, req.ScheduleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrScheduleNotFound
		}
		return nil, err
	}
	if !sched.IsActive {
		return nil, ErrScheduleInactive
	}

	b := &domain.Booking{
		OrderID:        GenerateOrderID(time.Now()),
		CustomerName:   strings.TrimSpace(req.CustomerName),
		CustomerPhone:  strings.TrimSpace(req.CustomerPhone),
		CustomerEmail:  strings.TrimSpace(req.CustomerEmail),
		RouteFrom:      sched.RouteFrom,
		RouteTo:        sched.RouteTo,
		RouteVia:       sched.RouteVia,
		PickupTime:     sched.PickupTime,
		TravelDate:     req.TravelDate,
		Passengers:     req.Passengers,
		TotalPrice:     sched.Price * int64(req.Passengers),
		PickupAddress:  strings.TrimSpace(req.PickupAddress),
		DropoffAddress: strings.TrimSpace(req.DropoffAddress),
		Notes:          notes,
		PaymentStatus:  paymentStatus,
	}

	if err := s.bookings.Create(ctx, b); err != nil {
		// Order-id suffixes can collide; retry once with a fresh one.
		if isUniqueViolation(err) {
			b.ID = 0
			b.OrderID = GenerateOrderID(time.Now())
			err = s.bookings.Create(ctx, b)
		}
		if err != nil {
			return nil, err
		}
	}

	if s.notifs != nil {
		s.notifs.BookingCreated(b)
	}

	return b, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return true
	}
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

func (s *Service) GetByOrderID(ctx context.Context, orderID string) (*domain.Booking, error) {
	if orderID == "" {
		return nil, ErrValidation
	}

	b, err := s.bookings.GetByOrderID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return b, nil
}

func (s *Service) ListBookings(ctx context.Context, limit, offset int) ([]domain.Booking, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.bookings.List(ctx, limit, offset)
}
