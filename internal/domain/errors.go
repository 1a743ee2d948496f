package domain

import (
	"errors"
	"fmt"
)

// DomainError represents a business logic error
type DomainError struct {
	Code    string
	Message string
	Err     error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for errors.Is/As support
func (e *DomainError) Unwrap() error {
	return e.Err
}

var (
	ErrInvalidOrderID       = errors.New("invalid order identifier")
	ErrOrderNotFound        = errors.New("order not found")
	ErrInvalidAmount        = errors.New("invalid amount")
	ErrCurrencyMismatch     = errors.New("currency mismatch")
	ErrMalformedVersion     = errors.New("malformed protocol version")
	ErrInvalidTransition    = errors.New("invalid lifecycle transition")
	ErrInvalidEndpoint      = errors.New("invalid backend endpoint")
	ErrMissingRequiredField = errors.New("missing required field")
)

// Domain validation errors
const (
	ErrCodeInvalidOrderID       = "INVALID_ORDER_ID"
	ErrCodeOrderNotFound        = "ORDER_NOT_FOUND"
	ErrCodeInvalidAmount        = "INVALID_AMOUNT"
	ErrCodeCurrencyMismatch     = "CURRENCY_MISMATCH"
	ErrCodeMalformedVersion     = "MALFORMED_VERSION"
	ErrCodeInvalidTransition    = "INVALID_TRANSITION"
	ErrCodeInvalidEndpoint      = "INVALID_ENDPOINT"
	ErrCodeMissingRequiredField = "MISSING_REQUIRED_FIELD"
)

func NewInvalidOrderIDError(raw string) *DomainError {
	return &DomainError{
		Code:    ErrCodeInvalidOrderID,
		Message: fmt.Sprintf("order identifier %q is not of the form <key>-<number>", raw),
		Err:     ErrInvalidOrderID,
	}
}

func NewOrderNotFoundError(number string) *DomainError {
	return &DomainError{
		Code:    ErrCodeOrderNotFound,
		Message: fmt.Sprintf("order %s not found", number),
		Err:     ErrOrderNotFound,
	}
}

func NewInvalidAmountError(reason string) *DomainError {
	return &DomainError{
		Code:    ErrCodeInvalidAmount,
		Message: reason,
		Err:     ErrInvalidAmount,
	}
}

func NewCurrencyMismatchError(expected, actual string) *DomainError {
	return &DomainError{
		Code:    ErrCodeCurrencyMismatch,
		Message: fmt.Sprintf("currency mismatch: expected %s, got %s", expected, actual),
		Err:     ErrCurrencyMismatch,
	}
}

func NewMalformedVersionError(raw string) *DomainError {
	return &DomainError{
		Code:    ErrCodeMalformedVersion,
		Message: fmt.Sprintf("'%s' is not a valid version", raw),
		Err:     ErrMalformedVersion,
	}
}

func NewInvalidTransitionError(from, to Phase) *DomainError {
	return &DomainError{
		Code:    ErrCodeInvalidTransition,
		Message: fmt.Sprintf("cannot transition from %s to %s", from, to),
		Err:     ErrInvalidTransition,
	}
}

func NewInvalidEndpointError(raw string) *DomainError {
	return &DomainError{
		Code:    ErrCodeInvalidEndpoint,
		Message: fmt.Sprintf("backend URL %q must be an absolute http(s) URL", raw),
		Err:     ErrInvalidEndpoint,
	}
}

func NewMissingRequiredFieldError(field string) *DomainError {
	return &DomainError{
		Code:    ErrCodeMissingRequiredField,
		Message: fmt.Sprintf("%s is required", field),
		Err:     ErrMissingRequiredField,
	}
}

// IsErrorCode checks if an error is a DomainError with a specific code
func IsErrorCode(err error, code string) bool {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Code == code
	}
	return false
}
