package auth

import (
	"strings"

	"github.com/goliatone/go-errors"
)

// Text codes surfaced to API clients alongside the envelope message.
const (
	TextCodeInvalidCreds     = "INVALID_CREDENTIALS"
	TextCodeAccountDisabled  = "ACCOUNT_DISABLED"
	TextCodeDuplicateEmail   = "DUPLICATE_EMAIL"
	TextCodeDuplicateUser    = "DUPLICATE_USERNAME"
	TextCodeInvalidOrExpired = "INVALID_OR_EXPIRED"
	TextCodeTokenExpired     = "TOKEN_EXPIRED"
	TextCodeTokenMalformed   = "TOKEN_MALFORMED"
	TextCodeUnauthenticated  = "UNAUTHENTICATED"
	TextCodeForbidden        = "FORBIDDEN"
	TextCodeDeliveryFailure  = "EMAIL_DELIVERY_FAILED"
	TextCodeEmptyPassword    = "EMPTY_PASSWORD"
	TextCodeAccountNotFound  = "ACCOUNT_NOT_FOUND"
)

// ErrAccountNotFound is returned when no account matches the identifier
var ErrAccountNotFound = errors.New("account not found", errors.CategoryNotFound).
	WithTextCode(TextCodeAccountNotFound).
	WithCode(errors.CodeNotFound)

// ErrInvalidCredentials covers both a missing account and a password
// mismatch so callers cannot probe for account existence.
var ErrInvalidCredentials = errors.New("invalid email or password", errors.CategoryAuth).
	WithTextCode(TextCodeInvalidCreds).
	WithCode(errors.CodeUnauthorized)

// ErrDuplicateEmail is returned when registering an email already in use
var ErrDuplicateEmail = errors.New("email already exists", errors.CategoryConflict).
	WithTextCode(TextCodeDuplicateEmail).
	WithCode(errors.CodeConflict)

// ErrDuplicateUsername is returned when registering a username already in use
var ErrDuplicateUsername = errors.New("username already exists", errors.CategoryConflict).
	WithTextCode(TextCodeDuplicateUser).
	WithCode(errors.CodeConflict)

// ErrInvalidOrExpired covers every OTP or reset-token failure: mismatch,
// expiry, and attempt exhaustion are deliberately indistinguishable.
var ErrInvalidOrExpired = errors.New("invalid or expired code", errors.CategoryValidation).
	WithTextCode(TextCodeInvalidOrExpired).
	WithCode(errors.CodeBadRequest)

// ErrTokenExpired is returned when a session token is past its expiry
var ErrTokenExpired = errors.New("token has expired", errors.CategoryAuth).
	WithTextCode(TextCodeTokenExpired).
	WithCode(errors.CodeUnauthorized)

// ErrTokenMalformed is returned when a token's structure or signature
// cannot be verified
var ErrTokenMalformed = errors.New("invalid token", errors.CategoryAuth).
	WithTextCode(TextCodeTokenMalformed).
	WithCode(errors.CodeUnauthorized)

// ErrUnauthenticated is returned by the access policy when no valid
// identity is presented for a protected operation
var ErrUnauthenticated = errors.New("authentication required", errors.CategoryAuth).
	WithTextCode(TextCodeUnauthenticated).
	WithCode(errors.CodeUnauthorized)

// ErrForbidden is returned by the access policy when the authenticated
// role is not in the operation's allowed set
var ErrForbidden = errors.New("insufficient permissions", errors.CategoryAuthz).
	WithTextCode(TextCodeForbidden).
	WithCode(errors.CodeForbidden)

// ErrDeliveryFailure wraps an email dispatch error; distinct from
// ErrAccountNotFound so the reset flow can surface a server error.
var ErrDeliveryFailure = errors.New("failed to send email", errors.CategoryInternal).
	WithTextCode(TextCodeDeliveryFailure).
	WithCode(errors.CodeInternal)

// ErrNoEmptyString rejects empty passwords before hashing
var ErrNoEmptyString = errors.New("password must not be empty", errors.CategoryValidation).
	WithTextCode(TextCodeEmptyPassword).
	WithCode(errors.CodeBadRequest)

// NewAccountDisabled builds the AccountDisabled error with the
// status-specific message shown to the user.
func NewAccountDisabled(message string) *errors.Error {
	return errors.New(message, errors.CategoryAuthz).
		WithTextCode(TextCodeAccountDisabled).
		WithCode(errors.CodeForbidden)
}

// IsTokenExpiredError will check for expired tokens
func IsTokenExpiredError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrTokenExpired) {
		return true
	}
	return strings.Contains(err.Error(), "token is expired")
}

// IsMalformedError will check for error message
func IsMalformedError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrTokenMalformed) {
		return true
	}
	return strings.Contains(err.Error(), "token is malformed") ||
		strings.Contains(err.Error(), "missing or malformed JWT")
}

// IsDuplicateFieldError reports whether err is one of the registration
// uniqueness conflicts, or a database unique-constraint violation that
// slipped past the pre-write checks (concurrent registration).
func IsDuplicateFieldError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrDuplicateEmail) || errors.Is(err, ErrDuplicateUsername) {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "unique constraint")
}
