package payment

import "errors"

var (
	// ErrInvalidAmount: amount missing or not positive.
	ErrInvalidAmount = errors.New("amount is required (in paise)")

	// ErrNotConfigured: processor credentials or signing secret absent.
	// A configuration fault, not a caller input fault.
	ErrNotConfigured = errors.New("payment gateway is not configured")

	// ErrInvalidPayload: verification payload missing a field.
	ErrInvalidPayload = errors.New("invalid payment verification payload")

	// ErrVerificationFailed: signature mismatch. The stored order is left
	// untouched.
	ErrVerificationFailed = errors.New("payment verification failed")
)

// GatewayError wraps a failure reported by the external processor so the
// transport layer can map it to an upstream-dependency status.
type GatewayError struct {
	Err error
}

func (e *GatewayError) Error() string {
	return "payment gateway: " + e.Err.Error()
}

func (e *GatewayError) Unwrap() error {
	return e.Err
}
