package common

import "errors"

// Sentinel errors shared across services. Handlers translate these into the
// HTTP error taxonomy: validation 400, not-found 404, auth 401, conflict 409,
// dependency failure 500.
var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("already exists")

	// Identity resolution failures
	ErrInvalidToken    = errors.New("invalid or expired token")
	ErrMalformedClaims = errors.New("token claims missing subject or role")
	ErrUnknownSubject  = errors.New("token subject not found")
	ErrUnknownRole     = errors.New("unknown role in token")

	// OTP login failures
	ErrInvalidOTP   = errors.New("invalid OTP")
	ErrExpiredOTP   = errors.New("OTP expired")
	ErrOTPThrottled = errors.New("OTP recently sent, wait before requesting again")

	// Password login failures
	ErrInvalidPassword = errors.New("incorrect password")
	ErrInactiveAccount = errors.New("account is inactive")

	// Outbound notification failed after state was already persisted.
	ErrNotificationFailed = errors.New("failed to send notification")
)

// IsAuthError reports whether err belongs to the 401 family.
func IsAuthError(err error) bool {
	return errors.Is(err, ErrInvalidToken) ||
		errors.Is(err, ErrMalformedClaims) ||
		errors.Is(err, ErrUnknownSubject) ||
		errors.Is(err, ErrUnknownRole) ||
		errors.Is(err, ErrInvalidPassword) ||
		errors.Is(err, ErrInactiveAccount)
}
