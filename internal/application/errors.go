package application

import (
	"errors"

	"github.com/brintopos/brintopos/internal/domain"
)

// IsDomainError reports whether err is a recoverable rejection from the
// core rather than a fault.
func IsDomainError(err error) bool {
	return errors.Is(err, domain.ErrValidation) ||
		errors.Is(err, domain.ErrInsufficientFunds) ||
		errors.Is(err, domain.ErrUnauthorized) ||
		errors.Is(err, domain.ErrNotFound)
}
