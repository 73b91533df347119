// Package bherr defines the recoverable error kinds raised by the session
// state machine and its collaborators, following the teacher's pattern of
// one exported sentinel/typed error per failure mode plus fmt.Errorf
// wrapping for context (see internal/executor/security.go in the reference
// tree this module was adapted from).
package bherr

import "fmt"

// BudgetError signals a budget, lifetime, or submission-interval guard
// violation (spec.md §7 "Budget/lifetime errors"). The session remains
// usable after one, except after private_eval.
type BudgetError struct {
	Message string
}

func (e *BudgetError) Error() string { return e.Message }

// NewBudgetError builds a BudgetError with a formatted message.
func NewBudgetError(format string, args ...any) error {
	return &BudgetError{Message: fmt.Sprintf(format, args...)}
}

// ArgumentError signals an invalid seed, language/version pair, code size,
// or memory-limit suffix (spec.md §7 "Argument errors"). Always
// recoverable and side-effect free to construct.
type ArgumentError struct {
	Message string
}

func (e *ArgumentError) Error() string { return e.Message }

// NewArgumentError builds an ArgumentError with a formatted message.
func NewArgumentError(format string, args ...any) error {
	return &ArgumentError{Message: fmt.Sprintf(format, args...)}
}

// InternalError wraps a backend/profile/visualiser transport failure
// (spec.md §7 "Transport / infrastructure errors"). The session itself
// remains alive; only the affected case is marked INTERNAL_ERROR.
type InternalError struct {
	Message string
	Cause   error
}

func (e *InternalError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *InternalError) Unwrap() error { return e.Cause }

// NewInternalError wraps cause with a human-readable message.
func NewInternalError(message string, cause error) error {
	return &InternalError{Message: message, Cause: cause}
}

// IsBudget reports whether err is a *BudgetError.
func IsBudget(err error) bool {
	_, ok := err.(*BudgetError)
	return ok
}

// IsArgument reports whether err is an *ArgumentError.
func IsArgument(err error) bool {
	_, ok := err.(*ArgumentError)
	return ok
}

// IsInternal reports whether err is an *InternalError.
func IsInternal(err error) bool {
	_, ok := err.(*InternalError)
	return ok
}
