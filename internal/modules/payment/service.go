package payment

import (
	"context"
	"crypto/sha512"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"

	"travia/internal/domain"
)

// statusMap translates the gateway's transaction-status vocabulary into the
// booking payment-status vocabulary. Unknown values fall back to pending.
var statusMap = map[string]domain.PaymentStatus{
	"capture":        domain.PaymentPaid,
	"settlement":     domain.PaymentPaid,
	"pending":        domain.PaymentWaitingVerification,
	"deny":           domain.PaymentCancelled,
	"cancel":         domain.PaymentCancelled,
	"expire":         domain.PaymentCancelled,
	"failure":        domain.PaymentCancelled,
	"refund":         domain.PaymentRefunded,
	"partial_refund": domain.PaymentRefunded,
}

// MapTransactionStatus is a pure function of the notification fields: the
// result never depends on the booking's prior state. A captured card payment
// still under fraud review is not settled funds, so capture+challenge forces
// waiting_verification over the table's capture→paid row.
func MapTransactionStatus(transactionStatus, fraudStatus string) domain.PaymentStatus {
	if transactionStatus == "capture" && fraudStatus == "challenge" {
		return domain.PaymentWaitingVerification
	}
	if status, ok := statusMap[transactionStatus]; ok {
		return status
	}
	return domain.PaymentPending
}

type Service struct {
	gateway   Gateway
	bookings  bookingStatusWriter
	events    EventSender
	serverKey string
	loggerf   func(format string, args ...interface{})
}

func NewService(gateway Gateway, bookings bookingStatusWriter, events EventSender, serverKey string, loggerf func(format string, args ...interface{})) *Service {
	if loggerf == nil {
		loggerf = func(string, ...interface{}) {}
	}
	return &Service{
		gateway:   gateway,
		bookings:  bookings,
		events:    events,
		serverKey: serverKey,
		loggerf:   loggerf,
	}
}

// CreateTransaction opens a checkout session at the gateway and returns its
// token and redirect URL. The booking row is expected to already exist in
// pending status; nothing is persisted here.
func (s *Service) CreateTransaction(ctx context.Context, req CreateTransactionRequest, origin string) (*CreateTransactionResponse, error) {
	if req.OrderID == "" || req.GrossAmount <= 0 || req.CustomerName == "" || req.CustomerPhone == "" {
		return nil, &ValidationError{
			Message: "Missing required fields: order_id, gross_amount, customer_name, customer_phone",
		}
	}

	items := req.ItemDetails
	if len(items) == 0 {
		items = []ItemDetail{
			{
				ID:       "TICKET",
				Name:     "Tiket Travel",
				Price:    req.GrossAmount,
				Quantity: 1,
			},
		}
	}

	snapReq := SnapRequest{
		TransactionDetails: snapTransactionDetails{
			OrderID:     req.OrderID,
			GrossAmount: req.GrossAmount,
		},
		CustomerDetails: snapCustomerDetails{
			FirstName: req.CustomerName,
			Email:     req.CustomerEmail,
			Phone:     req.CustomerPhone,
		},
		ItemDetails: items,
		Callbacks: snapCallbacks{
			Finish:  origin + "/booking?status=finish",
			Error:   origin + "/booking?status=error",
			Pending: origin + "/booking?status=pending",
		},
	}

	s.loggerf("level=info msg=creating midtrans transaction order_id=%s gross_amount=%d", req.OrderID, req.GrossAmount)

	resp, err := s.gateway.CreateTransaction(ctx, snapReq)
	if err != nil {
		return nil, err
	}

	return &CreateTransactionResponse{
		Token:       resp.Token,
		RedirectURL: resp.RedirectURL,
	}, nil
}

// CheckStatus is the client-side fallback poll. A gateway 404 is an expected
// transient state for a session that was created but never completed, so it
// becomes a synthetic pending payload instead of an error.
func (s *Service) CheckStatus(ctx context.Context, orderID string) (map[string]interface{}, error) {
	if orderID == "" {
		return nil, &ValidationError{Message: "order_id is required"}
	}

	payload, err := s.gateway.TransactionStatus(ctx, orderID)
	if err != nil {
		var gwErr *GatewayError
		if errors.As(err, &gwErr) && gwErr.StatusCode == http.StatusNotFound {
			return map[string]interface{}{
				"transaction_status": "pending",
				"order_id":           orderID,
			}, nil
		}
		return nil, err
	}
	return payload, nil
}

// HandleNotification processes one asynchronous gateway push: verify the
// signature, map the status, overwrite the booking row. Each step is a hard
// gate; processing the same notification twice converges on the same stored
// status (the write is a plain overwrite, never an increment).
func (s *Service) HandleNotification(ctx context.Context, n Notification) (domain.PaymentStatus, error) {
	if n.SignatureKey != s.expectedSignature(n) {
		s.loggerf("level=error msg=webhook signature mismatch order_id=%s", n.OrderID)
		return "", ErrInvalidSignature
	}

	status := MapTransactionStatus(n.TransactionStatus, n.FraudStatus)

	s.loggerf("level=info msg=updating booking payment status order_id=%s transaction_status=%s fraud_status=%s new_status=%s",
		n.OrderID, n.TransactionStatus, n.FraudStatus, status)

	rows, err := s.bookings.UpdatePaymentStatusByOrderID(ctx, n.OrderID, status)
	if err != nil {
		return "", fmt.Errorf("update booking %s: %w", n.OrderID, err)
	}
	if rows == 0 {
		// Acknowledge anyway: the gateway retries on failure, and a webhook
		// can legitimately arrive before the booking row commits.
		s.loggerf("level=warn msg=webhook matched no booking order_id=%s", n.OrderID)
	}

	if s.events != nil && rows > 0 {
		s.events.PaymentStatusChanged(n.OrderID, status)
	}

	return status, nil
}

// expectedSignature is SHA-512 over order_id, status_code, gross_amount and
// the server key, concatenated verbatim, rendered as lowercase hex.
func (s *Service) expectedSignature(n Notification) string {
	h := sha512.Sum512([]byte(n.OrderID + n.StatusCode + n.GrossAmount + s.serverKey))
	return hex.EncodeToString(h[:])
}
