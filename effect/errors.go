package effect

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by effect services.
// These errors enable reliable error classification using errors.Is().
var (
	// ErrIllegalArgument indicates a parameter value outside what the effect accepts.
	ErrIllegalArgument = errors.New("illegal argument")

	// ErrIllegalState indicates the operation is not valid in the effect's current state.
	ErrIllegalState = errors.New("illegal state")

	// ErrUnsupportedOperation indicates the effect does not implement the operation.
	ErrUnsupportedOperation = errors.New("unsupported operation")

	// ErrNullPointer indicates a required handle or value was nil.
	ErrNullPointer = errors.New("null pointer")
)

// Exception is the classification of a service call result.
type Exception int

const (
	// ExNone means the call succeeded.
	ExNone Exception = iota
	// ExIllegalArgument means the call was rejected because of its arguments.
	ExIllegalArgument
	// ExIllegalState means the call was rejected because of the effect state.
	ExIllegalState
	// ExUnsupportedOperation means the call is not implemented.
	ExUnsupportedOperation
	// ExNullPointer means a required value was missing.
	ExNullPointer
	// ExTransactionFailed covers every error that matches no other class.
	ExTransactionFailed
)

// String returns the exception name.
func (e Exception) String() string {
	switch e {
	case ExNone:
		return "EX_NONE"
	case ExIllegalArgument:
		return "EX_ILLEGAL_ARGUMENT"
	case ExIllegalState:
		return "EX_ILLEGAL_STATE"
	case ExUnsupportedOperation:
		return "EX_UNSUPPORTED_OPERATION"
	case ExNullPointer:
		return "EX_NULL_POINTER"
	case ExTransactionFailed:
		return "EX_TRANSACTION_FAILED"
	default:
		return fmt.Sprintf("Exception(%d)", int(e))
	}
}

// ExceptionOf classifies the result of a service call.
func ExceptionOf(err error) Exception {
	switch {
	case err == nil:
		return ExNone
	case errors.Is(err, ErrIllegalArgument):
		return ExIllegalArgument
	case errors.Is(err, ErrIllegalState):
		return ExIllegalState
	case errors.Is(err, ErrUnsupportedOperation):
		return ExUnsupportedOperation
	case errors.Is(err, ErrNullPointer):
		return ExNullPointer
	default:
		return ExTransactionFailed
	}
}
