package domain

import (
	"errors"
	"fmt"
)

// Validation and business-rule failures carry the message shown to the user;
// handlers surface err.Error() directly as a flash message or JSON envelope.
var (
	ErrNameTooShort     = errors.New("name must be at least 2 characters")
	ErrInvalidEmail     = errors.New("email is not valid")
	ErrEmailTaken       = errors.New("email is already registered")
	ErrInvalidPrice     = errors.New("price is not valid")
	ErrNonPositivePrice = errors.New("price must be greater than 0")
	ErrInvalidStock     = errors.New("stock must be a valid integer")
	ErrNegativeStock    = errors.New("stock cannot be negative")

	ErrFieldsRequired   = errors.New("all fields are required")
	ErrNonPositiveQty   = errors.New("quantity must be greater than 0")
	ErrUserNotFound     = errors.New("user does not exist")
	ErrProductNotFound  = errors.New("product does not exist")
	ErrOrderNotFound    = errors.New("order does not exist")
	ErrAlreadyCancelled = errors.New("order is already cancelled")

	ErrInsufficientStock = errors.New("insufficient stock")
)

// InsufficientStockError reports how much stock was actually available.
type InsufficientStockError struct {
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock, available: %d", e.Available)
}

func (e *InsufficientStockError) Is(target error) bool {
	return target == ErrInsufficientStock
}

type InvalidStatusError struct {
	Status string
}

func (e *InvalidStatusError) Error() string {
	return fmt.Sprintf("invalid status %q, valid statuses: pending, processing, shipped, delivered, cancelled", e.Status)
}
