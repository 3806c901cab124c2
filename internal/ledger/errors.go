package ledger

import "errors"

var (
	ErrNoActiveSession   = errors.New("no active session")
	ErrEmptyTitle        = errors.New("transaction title is required")
	ErrInvalidAmount     = errors.New("amount must be positive")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrMessageNotFound   = errors.New("message not found")
	ErrValidation        = errors.New("validation failed")
)

// ValidationError carries the user-facing message for a rejected request.
// errors.Is matches both ErrValidation and the wrapped cause.
type ValidationError struct {
	Message string
	Cause   error
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Unwrap() []error {
	if e.Cause == nil {
		return []error{ErrValidation}
	}
	return []error{ErrValidation, e.Cause}
}

// Invalid builds a ValidationError with the given message and optional cause.
func Invalid(message string, cause error) error {
	return &ValidationError{Message: message, Cause: cause}
}
