package order

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation is wrapped by every caller-input error below.
	ErrValidation = errors.New("validation error")

	ErrInvalidStatus        = fmt.Errorf("%w: invalid order status", ErrValidation)
	ErrInvalidSortKey       = fmt.Errorf("%w: invalid sort key", ErrValidation)
	ErrInvalidSortDirection = fmt.Errorf("%w: invalid sort direction", ErrValidation)
	ErrInvalidDateRange     = fmt.Errorf("%w: invalid date range", ErrValidation)

	ErrOrderNotFound = errors.New("order not found")
)
