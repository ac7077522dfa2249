// internal/util/errors.go
package util

import "errors"

// Common application-specific errors.
var (
	ErrNotFound       = errors.New("resource not found")
	ErrInvalidInput   = errors.New("invalid input provided")
	ErrNotAcceptable  = errors.New("not acceptable")    // illegal state transition or immutable field mutation
	ErrUnauthorized   = errors.New("unauthorized")      // credential missing or invalid
	ErrForbidden      = errors.New("forbidden")         // credential subject does not match resource owner
	ErrDuplicateEntry = errors.New("duplicate entry")   // unique constraint violation from the storage layer
	ErrMalformedID    = errors.New("malformed id")      // identifier that cannot be parsed, distinct from absent
	ErrUserNotFound   = errors.New("user not found")
	ErrBankNotFound   = errors.New("bank not found")
	ErrCreditNotFound = errors.New("credit not found")
)

// IsError reports whether err wraps target.
func IsError(err, target error) bool {
	return errors.Is(err, target)
}
