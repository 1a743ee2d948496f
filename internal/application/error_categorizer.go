package application

import (
	"context"
	"errors"
	"net/http"

	"github.com/DanielPopoola/taler-merchant-gateway/internal/domain"
)

// ErrorCategory represents the nature of an error for logging and operator hints
type ErrorCategory string

const (
	CategoryTransient      ErrorCategory = "TRANSIENT"
	CategoryPermanent      ErrorCategory = "PERMANENT"
	CategoryBusinessRule   ErrorCategory = "BUSINESS_RULE"
	CategoryClientError    ErrorCategory = "CLIENT_ERROR"
	CategoryInfrastructure ErrorCategory = "INFRASTRUCTURE"
)

// CategorizeError determines error category. Nothing is retried
// automatically; the category only tells an operator whether trying the same
// call again could succeed.
func CategorizeError(err error) ErrorCategory {
	if err == nil {
		return ""
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return CategoryTransient
	}

	if errors.Is(err, domain.ErrInvalidAmount) ||
		errors.Is(err, domain.ErrCurrencyMismatch) ||
		errors.Is(err, domain.ErrInvalidTransition) {
		return CategoryBusinessRule
	}

	if errors.Is(err, domain.ErrOrderNotFound) ||
		errors.Is(err, domain.ErrInvalidOrderID) ||
		errors.Is(err, domain.ErrMissingRequiredField) {
		return CategoryClientError
	}

	if svcErr, ok := IsServiceError(err); ok {
		switch svcErr.Kind {
		case KindTransportFailure:
			return CategoryTransient
		case KindBackendError:
			if svcErr.BackendStatus >= 500 {
				return CategoryTransient
			}
			return CategoryPermanent
		case KindProtocolIncompatible, KindMalformedResponse, KindBackendRejected:
			return CategoryPermanent
		case KindPreconditionFailed:
			if svcErr.Code == ErrCodeInvalidInput {
				return CategoryClientError
			}
			return CategoryBusinessRule
		case KindInternal:
			return CategoryInfrastructure
		}
	}

	return CategoryInfrastructure
}

// IsRetryable returns true if the error category suggests a manual retry may succeed
func IsRetryable(err error) bool {
	category := CategorizeError(err)
	return category == CategoryTransient || category == CategoryInfrastructure
}

// ToHTTPStatus maps error to appropriate HTTP status code
func ToHTTPStatus(err error) int {
	if err == nil {
		return http.StatusOK
	}

	if svcErr, ok := IsServiceError(err); ok {
		return svcErr.HTTPStatus
	}

	switch {
	case errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrCurrencyMismatch),
		errors.Is(err, domain.ErrInvalidOrderID),
		errors.Is(err, domain.ErrMissingRequiredField):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrInvalidTransition):
		return http.StatusConflict
	case errors.Is(err, domain.ErrOrderNotFound):
		return http.StatusNotFound
	case errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, context.Canceled):
		return http.StatusRequestTimeout
	}

	return http.StatusInternalServerError
}

// ToErrorCode clear error code for API responses
func ToErrorCode(err error) string {
	if svcErr, ok := IsServiceError(err); ok {
		return svcErr.Code
	}

	var domainErr *domain.DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Code
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return "TIMEOUT"
	}

	return ErrCodeInternal
}

// UserMessage returns the text that may be shown to a shopper for err.
func UserMessage(err error) string {
	if svcErr, ok := IsServiceError(err); ok && svcErr.UserMessage != "" {
		return svcErr.UserMessage
	}
	return userMessageContactAdmin
}
