package domain

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a referenced entity does not exist.
var ErrNotFound = errors.New("not found")

// ValidationError covers missing or malformed input fields.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func Validationf(format string, args ...any) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// InsufficientStockError is returned when a reservation asks for more units
// than a product has free.
type InsufficientStockError struct {
	ProductID   int64
	ProductName string
	Available   int64
	Requested   int64
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %q: available %d, requested %d",
		e.ProductName, e.Available, e.Requested)
}

// OverReturnError is returned when a return line exceeds the outstanding
// borrowed quantity for that product.
type OverReturnError struct {
	ProductID   int64
	Outstanding int64
	Requested   int64
}

func (e *OverReturnError) Error() string {
	return fmt.Sprintf("return quantity exceeds outstanding for product %d: outstanding %d, requested %d",
		e.ProductID, e.Outstanding, e.Requested)
}
