package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Input errors
	ErrEmptyTable     = errors.New("table contains no rows")
	ErrColumnNotFound = errors.New("column not found")
	ErrInvalidRole    = errors.New("invalid variable role")

	// Selection errors
	ErrNoSuitableTest = errors.New("no suitable test for data profile")

	// Execution errors
	ErrUnsupportedShape = errors.New("data shape not supported by test")
	ErrInsufficientData = errors.New("insufficient data for analysis")
)

// Error constructors with context
func NewColumnNotFoundError(role, column string) error {
	return fmt.Errorf("%w: %s variable %q", ErrColumnNotFound, role, column)
}

func NewUnsupportedShapeError(test string, reason string) error {
	return fmt.Errorf("%w: %s %s", ErrUnsupportedShape, test, reason)
}

// Error checking helpers
func IsInputError(err error) bool {
	return errors.Is(err, ErrEmptyTable) ||
		errors.Is(err, ErrColumnNotFound) ||
		errors.Is(err, ErrInvalidRole)
}

func IsUnsupportedShape(err error) bool {
	return errors.Is(err, ErrUnsupportedShape)
}
