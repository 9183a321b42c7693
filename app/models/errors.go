package models

import (
	"errors"
	"fmt"
)

// Domain errors. Every path returning one of these must be reachable only
// before any persistent mutation in the request, or after full rollback.
var (
	ErrNotFound           = errors.New("not found")
	ErrInvalidInput       = errors.New("invalid input")
	ErrEmptyCart          = errors.New("cart is empty")
	ErrInvalidTransition  = errors.New("invalid status transition")
	ErrConflict           = errors.New("conflict")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrForbidden          = errors.New("forbidden")
)

// ErrFatal marks a failure past the point of no return: side-effect state is
// unknown and operator reconciliation is required. Wrapped, never returned
// bare.
var ErrFatal = errors.New("fatal: reconciliation required")

// InsufficientStockError reports which product a placement could not
// reserve. Carries the display name because that is what the buyer sees.
type InsufficientStockError struct {
	ProductName string
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %s", e.ProductName)
}

// IsInsufficientStock reports whether err is an InsufficientStockError.
func IsInsufficientStock(err error) bool {
	var target *InsufficientStockError
	return errors.As(err, &target)
}
