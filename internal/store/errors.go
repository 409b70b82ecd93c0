package store

import "fmt"

// Kind discriminates the failure classes an operation can report, so callers
// can tell a rejected argument from an unreachable database from a failed
// statement without parsing messages.
type Kind string

const (
	// KindValidation means a caller-supplied argument failed a precondition.
	// Detected before any database access.
	KindValidation Kind = "validation"
	// KindConnection means the database was unreachable or rejected the
	// configured credentials.
	KindConnection Kind = "connection"
	// KindExecution means a statement failed after the connection was
	// established.
	KindExecution Kind = "execution"
)

// Error is the store's error type. Message is safe to surface to tool
// callers; Cause carries the underlying driver error, if any.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

func validationError(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

func connectionError(cause error) *Error {
	return &Error{Kind: KindConnection, Message: "failed to connect to database", Cause: cause}
}

func executionError(message string, cause error) *Error {
	return &Error{Kind: KindExecution, Message: message, Cause: cause}
}
