package booking

import (
	"context"
	"regexp"
	"testing"
	"time"

	"travia/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type MockBookingRepo struct {
	mock.Mock
}

func (m *MockBookingRepo) Create(ctx context.Context, b *domain.Booking) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockBookingRepo) GetByOrderID(ctx context.Context, orderID string) (*domain.Booking, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepo) List(ctx context.Context, limit, offset int) ([]domain.Booking, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

type MockScheduleReader struct {
	mock.Mock
}

func (m *MockScheduleReader) GetByID(ctx context.Context, id string) (*domain.Schedule, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Schedule), args.Error(1)
}

type MockEventSender struct {
	mock.Mock
}

func (m *MockEventSender) BookingCreated(b *domain.Booking) {
	m.Called(b)
}

var orderIDPattern = regexp.MustCompile(`^TRV-\d{8}-[0-9A-Z]{4}$`)

func activeSchedule() *domain.Schedule {
	return &domain.Schedule{
		ID:         "sched-1",
		RouteFrom:  "Surabaya",
		RouteTo:    "Denpasar",
		RouteVia:   "Probolinggo",
		PickupTime: "19:00",
		Price:      175000,
		IsActive:   true,
	}
}

func validRequest() CreateBookingRequest {
	return CreateBookingRequest{
		ScheduleID:    "sched-1",
		CustomerName:  "Budi Santoso",
		CustomerPhone: "+628123456789",
		TravelDate:    "2025-06-01",
		Passengers:    2,
		PickupAddress: "Jl. Pemuda 12, Surabaya",
	}
}

func TestGenerateOrderID(t *testing.T) {
	now := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	id := GenerateOrderID(now)
	assert.Regexp(t, orderIDPattern, id)
	assert.Contains(t, id, "TRV-20250101-")
}

func TestCreateBooking(t *testing.T) {
	bookings := new(MockBookingRepo)
	schedules := new(MockScheduleReader)
	notifs := new(MockEventSender)
	service := NewService(bookings, schedules, notifs)

	schedules.On("GetByID", mock.Anything, "sched-1").Return(activeSchedule(), nil)
	bookings.On("Create", mock.Anything, mock.Anything).Return(nil)
	notifs.On("BookingCreated", mock.Anything).Return()

	b, err := service.CreateBooking(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Regexp(t, orderIDPattern, b.OrderID)
	assert.Equal(t, "Surabaya", b.RouteFrom)
	assert.Equal(t, "Denpasar", b.RouteTo)
	assert.Equal(t, "19:00", b.PickupTime)
	assert.Equal(t, int64(350000), b.TotalPrice)
	assert.Equal(t, domain.PaymentPending, b.PaymentStatus)
	notifs.AssertExpectations(t)
}

func TestCreateBooking_ScheduleNotFound(t *testing.T) {
	bookings := new(MockBookingRepo)
	schedules := new(MockScheduleReader)
	service := NewService(bookings, schedules, nil)

	schedules.On("GetByID", mock.Anything, "sched-1").Return(nil, gorm.ErrRecordNotFound)

	_, err := service.CreateBooking(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrScheduleNotFound)
	bookings.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateBooking_InactiveSchedule(t *testing.T) {
	bookings := new(MockBookingRepo)
	schedules := new(MockScheduleReader)
	service := NewService(bookings, schedules, nil)

	sched := activeSchedule()
	sched.IsActive = false
	schedules.On("GetByID", mock.Anything, "sched-1").Return(sched, nil)

	_, err := service.CreateBooking(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrScheduleInactive)
	bookings.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateBooking_InvalidDate(t *testing.T) {
	bookings := new(MockBookingRepo)
	schedules := new(MockScheduleReader)
	service := NewService(bookings, schedules, nil)

	req := validRequest()
	req.TravelDate = "01-06-2025"

	_, err := service.CreateBooking(context.Background(), req)
	assert.ErrorIs(t, err, ErrValidation)
	schedules.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestCreateBooking_RetriesOnDuplicateOrderID(t *testing.T) {
	bookings := new(MockBookingRepo)
	schedules := new(MockScheduleReader)
	service := NewService(bookings, schedules, nil)

	schedules.On("GetByID", mock.Anything, "sched-1").Return(activeSchedule(), nil)
	bookings.On("Create", mock.Anything, mock.Anything).Return(gorm.ErrDuplicatedKey).Once()
	bookings.On("Create", mock.Anything, mock.Anything).Return(nil).Once()

	b, err := service.CreateBooking(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Regexp(t, orderIDPattern, b.OrderID)
	bookings.AssertNumberOfCalls(t, "Create", 2)
}

func TestCreateOfflineBooking(t *testing.T) {
	bookings := new(MockBookingRepo)
	schedules := new(MockScheduleReader)
	service := NewService(bookings, schedules, nil)

	schedules.On("GetByID", mock.Anything, "sched-1").Return(activeSchedule(), nil)
	bookings.On("Create", mock.Anything, mock.Anything).Return(nil)

	req := OfflineBookingRequest{
		CreateBookingRequest: validRequest(),
		PaymentStatus:        "paid",
	}
	req.Notes = "bayar tunai"

	b, err := service.CreateOfflineBooking(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentPaid, b.PaymentStatus)
	assert.Equal(t, "[OFFLINE] bayar tunai", b.Notes)
}

func TestCreateOfflineBooking_EmptyNotes(t *testing.T) {
	bookings := new(MockBookingRepo)
	schedules := new(MockScheduleReader)
	service := NewService(bookings, schedules, nil)

	schedules.On("GetByID", mock.Anything, "sched-1").Return(activeSchedule(), nil)
	bookings.On("Create", mock.Anything, mock.Anything).Return(nil)

	req := OfflineBookingRequest{
		CreateBookingRequest: validRequest(),
		PaymentStatus:        "pending",
	}

	b, err := service.CreateOfflineBooking(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentPending, b.PaymentStatus)
	assert.Equal(t, "[OFFLINE]", b.Notes)
}

func TestGetByOrderID_NotFound(t *testing.T) {
	bookings := new(MockBookingRepo)
	service := NewService(bookings, nil, nil)

	bookings.On("GetByOrderID", mock.Anything, "TRV-20990101-ZZ99").Return(nil, gorm.ErrRecordNotFound)

	_, err := service.GetByOrderID(context.Background(), "TRV-20990101-ZZ99")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetByOrderID_Empty(t *testing.T) {
	service := NewService(new(MockBookingRepo), nil, nil)

	_, err := service.GetByOrderID(context.Background(), "")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestListBookings_DefaultsLimit(t *testing.T) {
	bookings := new(MockBookingRepo)
	service := NewService(bookings, nil, nil)

	bookings.On("List", mock.Anything, 20, 0).Return([]domain.Booking{}, nil)

	_, err := service.ListBookings(context.Background(), 0, -5)
	require.NoError(t, err)
	bookings.AssertExpectations(t)
}
