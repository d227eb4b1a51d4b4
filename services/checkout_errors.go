package services

import (
	"errors"
	"fmt"
)

// ErrCheckoutInProgress rejects a second checkout attempt while one is
// already running for the same user.
var ErrCheckoutInProgress = errors.New("a checkout is already in progress")

// ValidationError is a pre-payment rejection: nothing was charged and the
// cart is untouched.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

// DeclinedError carries the gateway's refusal to the caller. The cart is
// preserved so the user can retry or switch method.
type DeclinedError struct {
	Reason   string
	TimedOut bool
}

func (e *DeclinedError) Error() string {
	return "payment declined: " + e.Reason
}

// PersistenceError is the severe case: payment was secured or initiated
// but the order record could not be written. The customer may have been
// charged with nothing recorded, so this must surface distinctly and must
// never be auto-retried.
type PersistenceError struct {
	TransactionRef string
	Err            error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("payment completed but order could not be recorded (ref %s): %v", e.TransactionRef, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
