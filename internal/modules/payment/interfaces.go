package payment

import (
	"context"

	"travia/internal/domain"
)

type Gateway interface {
	CreateTransaction(ctx context.Context, req SnapRequest) (*SnapResponse, error)
	TransactionStatus(ctx context.Context, orderID string) (map[string]interface{}, error)
}

type bookingStatusWriter interface {
	UpdatePaymentStatusByOrderID(ctx context.Context, orderID string, status domain.PaymentStatus) (int64, error)
}

// EventSender pushes status changes to connected admin clients. Best effort:
// implementations must never block the webhook path.
type EventSender interface {
	PaymentStatusChanged(orderID string, status domain.PaymentStatus)
}
