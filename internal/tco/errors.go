package tco

import (
	"errors"
	"fmt"
	"math"
)

// ErrValidation is matched by every *ValidationError via errors.Is.
var ErrValidation = errors.New("invalid cost parameter")

// ValidationError reports an out-of-domain calculator input.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// Is lets callers test against ErrValidation.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

func nonNegative(field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return invalid(field, "must be a finite number")
	}
	if v < 0 {
		return invalid(field, fmt.Sprintf("must not be negative, got %g", v))
	}
	return nil
}

func positive(field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return invalid(field, "must be a finite number")
	}
	if v <= 0 {
		return invalid(field, fmt.Sprintf("must be greater than zero, got %g", v))
	}
	return nil
}

func unitRate(field string, v float64) error {
	if math.IsNaN(v) || v < 0 || v > 1 {
		return invalid(field, fmt.Sprintf("must be within [0,1], got %g", v))
	}
	return nil
}

// within qualifies the field of a validation error with its parent.
func within(parent string, err error) error {
	var verr *ValidationError
	if !errors.As(err, &verr) {
		return err
	}
	return &ValidationError{Field: parent + "." + verr.Field, Reason: verr.Reason}
}

// firstErr returns the first non-nil error, in field order.
func firstErr(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
