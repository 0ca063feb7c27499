package payment

import (
	"errors"
	"fmt"
)

// ErrInvalidSignature aborts webhook processing before any mutation. The
// expected signature is never included in responses or errors.
var ErrInvalidSignature = errors.New("invalid signature")

// ValidationError is a missing or unusable request field, always a client
// error and always raised before any outbound gateway call.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// GatewayError is a non-success response from the payment gateway. Body
// carries the raw gateway response for diagnostics.
type GatewayError struct {
	StatusCode int
	Body       string
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("midtrans API error: %s", e.Body)
}
