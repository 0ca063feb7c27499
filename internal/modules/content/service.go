package content

import (
	"context"
	"math"

	"travia/internal/domain"
)

type TestimonialRepository interface {
	ListActive(ctx context.Context) ([]domain.Testimonial, error)
	AverageRating(ctx context.Context) (float64, error)
}

type BookingCounter interface {
	Count(ctx context.Context) (int64, error)
	CountByPaymentStatus(ctx context.Context, status domain.PaymentStatus) (int64, error)
}

type CityCounter interface {
	CountCities(ctx context.Context) (int64, error)
}

// SiteStats feeds the landing-page counters.
type SiteStats struct {
	TotalBookings  int64   `json:"total_bookings"`
	CompletedTrips int64   `json:"completed_trips"`
	CitiesServed   int64   `json:"cities_served"`
	AverageRating  float64 `json:"average_rating"`
}

type Service struct {
	testimonials TestimonialRepository
	bookings     BookingCounter
	schedules    CityCounter
}

func NewService(testimonials TestimonialRepository, bookings BookingCounter, schedules CityCounter) *Service {
	return &Service{
		testimonials: testimonials,
		bookings:     bookings,
		schedules:    schedules,
	}
}

func (s *Service) ListTestimonials(ctx context.Context) ([]domain.Testimonial, error) {
	return s.testimonials.ListActive(ctx)
}

func (s *Service) Stats(ctx context.Context) (*SiteStats, error) {
	total, err := s.bookings.Count(ctx)
	if err != nil {
		return nil, err
	}
	paid, err := s.bookings.CountByPaymentStatus(ctx, domain.PaymentPaid)
	if err != nil {
		return nil, err
	}
	cities, err := s.schedules.CountCities(ctx)
	if err != nil {
		return nil, err
	}
	rating, err := s.testimonials.AverageRating(ctx)
	if err != nil {
		return nil, err
	}

	return &SiteStats{
		TotalBookings:  total,
		CompletedTrips: paid,
		CitiesServed:   cities,
		AverageRating:  math.Round(rating*10) / 10,
	}, nil
}
