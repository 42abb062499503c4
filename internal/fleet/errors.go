package fleet

import (
	"errors"
	"fmt"
)

// Error represents a ledger operation failure.
//
// Note the taxonomy is deliberately small: invalid status input is not an
// error at all (it is coerced to the fallback), so the only failures are
// identity and persistence failures.
type Error struct {
	// Code identifies the error category.
	Code ErrorCode

	// Message is a human-readable description.
	Message string

	// Cart identifies the affected cart, when known.
	Cart string

	// Err is the underlying cause (persistence failures).
	Err error
}

// ErrorCode categorizes ledger errors.
type ErrorCode string

const (
	// ErrCodeUnknownCart indicates an identifier outside the fixed registry.
	ErrCodeUnknownCart ErrorCode = "UNKNOWN_CART"

	// ErrCodePersistence indicates the durable write failed before anything
	// was committed; in-memory state is unchanged.
	ErrCodePersistence ErrorCode = "PERSISTENCE_FAILURE"

	// ErrCodePartialCommit indicates the snapshot was written durably but the
	// history write failed; current state is correct, history under-reports.
	ErrCodePartialCommit ErrorCode = "PARTIAL_COMMIT"
)

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cart != "" {
		return fmt.Sprintf("%s: %s (cart=%s)", e.Code, e.Message, e.Cart)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause, if any.
func (e *Error) Unwrap() error {
	return e.Err
}

// IsUnknownCart reports whether err is an unknown-cart error.
// Uses errors.As to handle wrapped errors.
func IsUnknownCart(err error) bool {
	var fe *Error
	return errors.As(err, &fe) && fe.Code == ErrCodeUnknownCart
}

// IsPartialCommit reports whether err is a partial-commit error.
func IsPartialCommit(err error) bool {
	var fe *Error
	return errors.As(err, &fe) && fe.Code == ErrCodePartialCommit
}

// NewUnknownCartError creates an Error for an unregistered identifier.
func NewUnknownCartError(cart string) *Error {
	return &Error{
		Code:    ErrCodeUnknownCart,
		Message: "cart is not in the registry",
		Cart:    cart,
	}
}

// NewPersistenceError creates an Error for a failed durable write.
func NewPersistenceError(cart string, err error) *Error {
	return &Error{
		Code:    ErrCodePersistence,
		Message: "failed to persist update",
		Cart:    cart,
		Err:     err,
	}
}

// NewPartialCommitError creates an Error for a snapshot-committed,
// history-failed update.
func NewPartialCommitError(cart string, err error) *Error {
	return &Error{
		Code:    ErrCodePartialCommit,
		Message: "snapshot committed but history write failed",
		Cart:    cart,
		Err:     err,
	}
}
