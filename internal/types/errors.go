package types

import (
	"errors"
	"fmt"
)

// InputDataError marks a malformed descriptor or transcript item. The batch
// continues past it; the item is skipped and recorded in diagnostics.
type InputDataError struct {
	ID     string
	Reason string
}

func (e *InputDataError) Error() string {
	return fmt.Sprintf("input data error: %s: %s", e.ID, e.Reason)
}

func NewInputDataError(id, format string, args ...any) error {
	return &InputDataError{ID: id, Reason: fmt.Sprintf(format, args...)}
}

// InvariantViolation marks an internal defect, e.g. an assembled segment
// overlapping another on the same track. Always fatal, never repaired: a
// timeline that violates its own invariants cannot be handed downstream.
type InvariantViolation struct {
	Detail string
}

func (e *InvariantViolation) Error() string {
	return "invariant violation: " + e.Detail
}

func Invariantf(format string, args ...any) error {
	return &InvariantViolation{Detail: fmt.Sprintf(format, args...)}
}

func IsInvariantViolation(err error) bool {
	var iv *InvariantViolation
	return errors.As(err, &iv)
}
