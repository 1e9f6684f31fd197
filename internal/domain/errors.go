package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Error kinds. Match with errors.Is; the concrete types below carry detail.
var (
	ErrValidation        = errors.New("validation failed")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrNotFound          = errors.New("not found")
)

// ValidationError reports malformed input or an operation that is not
// allowed in the current state.
type ValidationError struct {
	Field  string
	Reason string
}

func NewValidationError(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return e.Field + ": " + e.Reason
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// InsufficientFundsError is returned when cash tendered is below the total.
type InsufficientFundsError struct {
	Tendered decimal.Decimal
	Total    decimal.Decimal
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("insufficient funds: tendered %s, total %s",
		e.Tendered.StringFixed(2), e.Total.StringFixed(2))
}

func (e *InsufficientFundsError) Unwrap() error { return ErrInsufficientFunds }

// Shortfall is how much more cash is needed.
func (e *InsufficientFundsError) Shortfall() decimal.Decimal {
	return e.Total.Sub(e.Tendered)
}

// AuthorizationError is returned when an access gate rejects a credential.
type AuthorizationError struct {
	Gate string
}

func (e *AuthorizationError) Error() string {
	return fmt.Sprintf("%s access denied", e.Gate)
}

func (e *AuthorizationError) Unwrap() error { return ErrUnauthorized }

// NotFoundError is returned when an id does not resolve.
type NotFoundError struct {
	Kind string
	ID   string
}

func NewNotFoundError(kind, id string) *NotFoundError {
	return &NotFoundError{Kind: kind, ID: id}
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.ID)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }
