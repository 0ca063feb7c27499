package payment

import (
	"context"
	"crypto/sha512"
	"encoding/hex"
	"errors"
	"net/http"
	"testing"

	"travia/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testServerKey = "SB-Mid-server-testkey123"

type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) CreateTransaction(ctx context.Context, req SnapRequest) (*SnapResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*SnapResponse), args.Error(1)
}

func (m *MockGateway) TransactionStatus(ctx context.Context, orderID string) (map[string]interface{}, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]interface{}), args.Error(1)
}

type MockBookingWriter struct {
	mock.Mock
}

func (m *MockBookingWriter) UpdatePaymentStatusByOrderID(ctx context.Context, orderID string, status domain.PaymentStatus) (int64, error) {
	args := m.Called(ctx, orderID, status)
	return args.Get(0).(int64), args.Error(1)
}

type MockEventSender struct {
	mock.Mock
}

func (m *MockEventSender) PaymentStatusChanged(orderID string, status domain.PaymentStatus) {
	m.Called(orderID, status)
}

func signNotification(n *Notification, serverKey string) {
	h := sha512.Sum512([]byte(n.OrderID + n.StatusCode + n.GrossAmount + serverKey))
	n.SignatureKey = hex.EncodeToString(h[:])
}

func TestMapTransactionStatus(t *testing.T) {
	cases := []struct {
		transactionStatus string
		fraudStatus       string
		want              domain.PaymentStatus
	}{
		{"capture", "accept", domain.PaymentPaid},
		{"capture", "", domain.PaymentPaid},
		{"settlement", "", domain.PaymentPaid},
		{"pending", "", domain.PaymentWaitingVerification},
		{"deny", "", domain.PaymentCancelled},
		{"cancel", "", domain.PaymentCancelled},
		{"expire", "", domain.PaymentCancelled},
		{"failure", "", domain.PaymentCancelled},
		{"refund", "", domain.PaymentRefunded},
		{"partial_refund", "", domain.PaymentRefunded},
		{"authorize", "", domain.PaymentPending},
		{"", "", domain.PaymentPending},
		// captured but still under fraud review must not count as settled
		{"capture", "challenge", domain.PaymentWaitingVerification},
		// challenge is only meaningful for capture
		{"settlement", "challenge", domain.PaymentPaid},
	}

	for _, tc := range cases {
		got := MapTransactionStatus(tc.transactionStatus, tc.fraudStatus)
		assert.Equal(t, tc.want, got, "transaction_status=%q fraud_status=%q", tc.transactionStatus, tc.fraudStatus)
	}
}

func TestService_HandleNotification_Settlement(t *testing.T) {
	bookings := new(MockBookingWriter)
	events := new(MockEventSender)
	service := NewService(nil, bookings, events, testServerKey, nil)

	n := Notification{
		OrderID:           "TRV-20250101-AB12",
		StatusCode:        "200",
		GrossAmount:       "350000.00",
		TransactionStatus: "settlement",
	}
	signNotification(&n, testServerKey)

	bookings.On("UpdatePaymentStatusByOrderID", mock.Anything, "TRV-20250101-AB12", domain.PaymentPaid).Return(int64(1), nil)
	events.On("PaymentStatusChanged", "TRV-20250101-AB12", domain.PaymentPaid).Return()

	status, err := service.HandleNotification(context.Background(), n)

	require.NoError(t, err)
	assert.Equal(t, domain.PaymentPaid, status)
	bookings.AssertExpectations(t)
	events.AssertExpectations(t)
}

func TestService_HandleNotification_CaptureChallenge(t *testing.T) {
	bookings := new(MockBookingWriter)
	service := NewService(nil, bookings, nil, testServerKey, nil)

	n := Notification{
		OrderID:           "TRV-20250101-CC01",
		StatusCode:        "200",
		GrossAmount:       "150000.00",
		TransactionStatus: "capture",
		FraudStatus:       "challenge",
	}
	signNotification(&n, testServerKey)

	bookings.On("UpdatePaymentStatusByOrderID", mock.Anything, "TRV-20250101-CC01", domain.PaymentWaitingVerification).Return(int64(1), nil)

	status, err := service.HandleNotification(context.Background(), n)

	require.NoError(t, err)
	assert.Equal(t, domain.PaymentWaitingVerification, status)
}

func TestService_HandleNotification_InvalidSignature(t *testing.T) {
	bookings := new(MockBookingWriter)
	service := NewService(nil, bookings, nil, testServerKey, nil)

	n := Notification{
		OrderID:           "TRV-20250101-AB12",
		StatusCode:        "200",
		GrossAmount:       "350000.00",
		TransactionStatus: "settlement",
	}
	signNotification(&n, testServerKey)
	// flip a single character of an otherwise valid signature
	if n.SignatureKey[0] == 'a' {
		n.SignatureKey = "b" + n.SignatureKey[1:]
	} else {
		n.SignatureKey = "a" + n.SignatureKey[1:]
	}

	_, err := service.HandleNotification(context.Background(), n)

	assert.ErrorIs(t, err, ErrInvalidSignature)
	bookings.AssertNotCalled(t, "UpdatePaymentStatusByOrderID", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_HandleNotification_Idempotent(t *testing.T) {
	bookings := new(MockBookingWriter)
	events := new(MockEventSender)
	service := NewService(nil, bookings, events, testServerKey, nil)

	n := Notification{
		OrderID:           "TRV-20250102-DD44",
		StatusCode:        "200",
		GrossAmount:       "225000.00",
		TransactionStatus: "settlement",
	}
	signNotification(&n, testServerKey)

	bookings.On("UpdatePaymentStatusByOrderID", mock.Anything, n.OrderID, domain.PaymentPaid).Return(int64(1), nil).Twice()
	events.On("PaymentStatusChanged", n.OrderID, domain.PaymentPaid).Return().Twice()

	first, err := service.HandleNotification(context.Background(), n)
	require.NoError(t, err)
	second, err := service.HandleNotification(context.Background(), n)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	bookings.AssertExpectations(t)
}

func TestService_HandleNotification_UnknownOrder(t *testing.T) {
	bookings := new(MockBookingWriter)
	events := new(MockEventSender)
	service := NewService(nil, bookings, events, testServerKey, nil)

	n := Notification{
		OrderID:           "TRV-20250103-XX99",
		StatusCode:        "200",
		GrossAmount:       "100000.00",
		TransactionStatus: "expire",
	}
	signNotification(&n, testServerKey)

	bookings.On("UpdatePaymentStatusByOrderID", mock.Anything, n.OrderID, domain.PaymentCancelled).Return(int64(0), nil)

	status, err := service.HandleNotification(context.Background(), n)

	// unknown orders are acknowledged, not bounced back for endless retries
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentCancelled, status)
	events.AssertNotCalled(t, "PaymentStatusChanged", mock.Anything, mock.Anything)
}

func TestService_HandleNotification_StoreFailure(t *testing.T) {
	bookings := new(MockBookingWriter)
	service := NewService(nil, bookings, nil, testServerKey, nil)

	n := Notification{
		OrderID:           "TRV-20250103-EE55",
		StatusCode:        "200",
		GrossAmount:       "100000.00",
		TransactionStatus: "settlement",
	}
	signNotification(&n, testServerKey)

	bookings.On("UpdatePaymentStatusByOrderID", mock.Anything, n.OrderID, domain.PaymentPaid).Return(int64(0), errors.New("connection reset"))

	_, err := service.HandleNotification(context.Background(), n)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidSignature)
}

func TestService_CheckStatus_NotFoundFallback(t *testing.T) {
	gateway := new(MockGateway)
	service := NewService(gateway, nil, nil, testServerKey, nil)

	gateway.On("TransactionStatus", mock.Anything, "TRV-20250104-FF66").
		Return(nil, &GatewayError{StatusCode: http.StatusNotFound, Body: `{"status_code":"404"}`})

	payload, err := service.CheckStatus(context.Background(), "TRV-20250104-FF66")

	require.NoError(t, err)
	assert.Equal(t, "pending", payload["transaction_status"])
	assert.Equal(t, "TRV-20250104-FF66", payload["order_id"])
}

func TestService_CheckStatus_GatewayError(t *testing.T) {
	gateway := new(MockGateway)
	service := NewService(gateway, nil, nil, testServerKey, nil)

	gwErr := &GatewayError{StatusCode: http.StatusUnauthorized, Body: `{"status_message":"unauthorized"}`}
	gateway.On("TransactionStatus", mock.Anything, "TRV-20250104-GG77").Return(nil, gwErr)

	_, err := service.CheckStatus(context.Background(), "TRV-20250104-GG77")

	var got *GatewayError
	require.ErrorAs(t, err, &got)
	assert.Equal(t, http.StatusUnauthorized, got.StatusCode)
}

func TestService_CheckStatus_MissingOrderID(t *testing.T) {
	gateway := new(MockGateway)
	service := NewService(gateway, nil, nil, testServerKey, nil)

	_, err := service.CheckStatus(context.Background(), "")

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	gateway.AssertNotCalled(t, "TransactionStatus", mock.Anything, mock.Anything)
}

func TestService_CreateTransaction_Success(t *testing.T) {
	gateway := new(MockGateway)
	service := NewService(gateway, nil, nil, testServerKey, nil)

	var captured SnapRequest
	gateway.On("CreateTransaction", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			captured = args.Get(1).(SnapRequest)
		}).
		Return(&SnapResponse{Token: "snap-token-1", RedirectURL: "https://app.sandbox.midtrans.com/snap/v2/vtweb/snap-token-1"}, nil)

	resp, err := service.CreateTransaction(context.Background(), CreateTransactionRequest{
		OrderID:       "TRV-20250105-HH88",
		GrossAmount:   350000,
		CustomerName:  "Budi Santoso",
		CustomerPhone: "+628123456789",
	}, "https://travia.id")

	require.NoError(t, err)
	assert.Equal(t, "snap-token-1", resp.Token)
	assert.NotEmpty(t, resp.RedirectURL)

	// defaulted single TICKET line item priced at the gross amount
	require.Len(t, captured.ItemDetails, 1)
	assert.Equal(t, "TICKET", captured.ItemDetails[0].ID)
	assert.Equal(t, int64(350000), captured.ItemDetails[0].Price)
	assert.Equal(t, 1, captured.ItemDetails[0].Quantity)

	assert.Equal(t, "https://travia.id/booking?status=finish", captured.Callbacks.Finish)
	assert.Equal(t, "https://travia.id/booking?status=error", captured.Callbacks.Error)
	assert.Equal(t, "https://travia.id/booking?status=pending", captured.Callbacks.Pending)
}

func TestService_CreateTransaction_KeepsProvidedItems(t *testing.T) {
	gateway := new(MockGateway)
	service := NewService(gateway, nil, nil, testServerKey, nil)

	gateway.On("CreateTransaction", mock.Anything, mock.MatchedBy(func(req SnapRequest) bool {
		return len(req.ItemDetails) == 2 && req.ItemDetails[0].ID == "SEAT-A"
	})).Return(&SnapResponse{Token: "snap-token-2"}, nil)

	_, err := service.CreateTransaction(context.Background(), CreateTransactionRequest{
		OrderID:       "TRV-20250105-II99",
		GrossAmount:   500000,
		CustomerName:  "Siti Rahma",
		CustomerPhone: "+628111111111",
		ItemDetails: []ItemDetail{
			{ID: "SEAT-A", Name: "Kursi 1A", Price: 250000, Quantity: 1},
			{ID: "SEAT-B", Name: "Kursi 1B", Price: 250000, Quantity: 1},
		},
	}, "https://travia.id")

	require.NoError(t, err)
	gateway.AssertExpectations(t)
}

func TestService_CreateTransaction_MissingField(t *testing.T) {
	gateway := new(MockGateway)
	service := NewService(gateway, nil, nil, testServerKey, nil)

	_, err := service.CreateTransaction(context.Background(), CreateTransactionRequest{
		OrderID:      "TRV-20250105-JJ00",
		GrossAmount:  350000,
		CustomerName: "Budi Santoso",
		// customer_phone omitted
	}, "https://travia.id")

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	gateway.AssertNotCalled(t, "CreateTransaction", mock.Anything, mock.Anything)
}
