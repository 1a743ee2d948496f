package application

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorKind is the failure taxonomy of backend interactions.
type ErrorKind string

const (
	KindTransportFailure     ErrorKind = "TRANSPORT_FAILURE"
	KindProtocolIncompatible ErrorKind = "PROTOCOL_INCOMPATIBLE"
	KindMalformedResponse    ErrorKind = "MALFORMED_RESPONSE"
	KindBackendRejected      ErrorKind = "BACKEND_REJECTED"
	KindBackendError         ErrorKind = "BACKEND_ERROR"
	KindPreconditionFailed   ErrorKind = "PRECONDITION_FAILED"
	KindInternal             ErrorKind = "INTERNAL"
)

// ServiceError carries technical detail in Message and a shopper-safe text
// in UserMessage. BackendStatus and BackendCode are zero when unknown.
type ServiceError struct {
	Kind          ErrorKind
	Code          string
	Message       string
	UserMessage   string
	HTTPStatus    int
	BackendStatus int
	BackendCode   int
	Err           error
}

func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

const (
	ErrCodeBackendUnreachable       = "BACKEND_UNREACHABLE"
	ErrCodeBackendIncompatible      = "BACKEND_INCOMPATIBLE"
	ErrCodeMalformedResponse        = "MALFORMED_RESPONSE"
	ErrCodeBackendMisconfigured     = "BACKEND_MISCONFIGURED"
	ErrCodeBackendError             = "BACKEND_ERROR"
	ErrCodeRefundsDisabled          = "REFUNDS_DISABLED"
	ErrCodeRefundInstanceUnknown    = "REFUND_INSTANCE_UNKNOWN"
	ErrCodeRefundOrderUnknown       = "REFUND_ORDER_UNKNOWN"
	ErrCodeRefundAmountExceeded     = "REFUND_AMOUNT_EXCEEDED"
	ErrCodeRefundWireTransferred    = "REFUND_WIRE_TRANSFERRED"
	ErrCodeOrderStatusNotRefundable = "ORDER_STATUS_NOT_REFUNDABLE"
	ErrCodeOrderStatusNotPayable    = "ORDER_STATUS_NOT_PAYABLE"
	ErrCodeInternal                 = "INTERNAL_ERROR"
	ErrCodeInvalidInput             = "INVALID_INPUT"
)

const (
	userMessageContactAdmin = "Unexpected problem with the Taler backend. Please contact the system administrator."
	userMessageMalformed    = "Malformed response from Taler backend. Please contact the system administrator."
)

func NewTransportFailureError(detail string) *ServiceError {
	return &ServiceError{
		Kind:        KindTransportFailure,
		Code:        ErrCodeBackendUnreachable,
		Message:     "Taler backend unreachable: " + detail,
		UserMessage: userMessageContactAdmin,
		HTTPStatus:  http.StatusBadGateway,
	}
}

func NewProtocolIncompatibleError(reason string) *ServiceError {
	return &ServiceError{
		Kind:        KindProtocolIncompatible,
		Code:        ErrCodeBackendIncompatible,
		Message:     "Taler backend incompatible: " + reason,
		UserMessage: "Something went wrong, please contact the system administrator of the webshop and send the following error: Taler backend URL invalid",
		HTTPStatus:  http.StatusServiceUnavailable,
	}
}

func NewMalformedResponseError(status int, err error) *ServiceError {
	return &ServiceError{
		Kind:          KindMalformedResponse,
		Code:          ErrCodeMalformedResponse,
		Message:       fmt.Sprintf("Malformed %d response from Taler backend", status),
		UserMessage:   userMessageMalformed,
		HTTPStatus:    http.StatusBadGateway,
		BackendStatus: status,
		Err:           err,
	}
}

func NewBackendMisconfiguredError(status, backendCode int) *ServiceError {
	return &ServiceError{
		Kind:          KindBackendRejected,
		Code:          ErrCodeBackendMisconfigured,
		Message:       fmt.Sprintf("Taler backend rejected the request with code %d (%d)", backendCode, status),
		UserMessage:   "Taler backend not configured correctly. Please contact the system administrator.",
		HTTPStatus:    http.StatusBadGateway,
		BackendStatus: status,
		BackendCode:   backendCode,
	}
}

func NewBackendError(status, backendCode int) *ServiceError {
	return &ServiceError{
		Kind:          KindBackendError,
		Code:          ErrCodeBackendError,
		Message:       fmt.Sprintf("Unexpected failure %d/%d from Taler backend", status, backendCode),
		UserMessage:   userMessageContactAdmin,
		HTTPStatus:    http.StatusBadGateway,
		BackendStatus: status,
		BackendCode:   backendCode,
	}
}

func NewRefundsDisabledError() *ServiceError {
	return &ServiceError{
		Kind:          KindBackendRejected,
		Code:          ErrCodeRefundsDisabled,
		Message:       "Refunds are disabled for this order. Check the refund delay configured for the Taler payment gateway.",
		HTTPStatus:    http.StatusConflict,
		BackendStatus: http.StatusForbidden,
	}
}

func NewRefundInstanceUnknownError() *ServiceError {
	return &ServiceError{
		Kind:          KindBackendRejected,
		Code:          ErrCodeRefundInstanceUnknown,
		Message:       "Instance unknown reported by Taler backend",
		HTTPStatus:    http.StatusBadGateway,
		BackendStatus: http.StatusNotFound,
		BackendCode:   2000,
	}
}

func NewRefundOrderUnknownError() *ServiceError {
	return &ServiceError{
		Kind:          KindBackendRejected,
		Code:          ErrCodeRefundOrderUnknown,
		Message:       "Order unknown reported by Taler backend",
		HTTPStatus:    http.StatusNotFound,
		BackendStatus: http.StatusNotFound,
		BackendCode:   2601,
	}
}

func NewRefundUnexpectedCodeError(backendCode int) *ServiceError {
	return &ServiceError{
		Kind:          KindBackendRejected,
		Code:          ErrCodeBackendError,
		Message:       fmt.Sprintf("Unexpected error %d reported by Taler backend", backendCode),
		HTTPStatus:    http.StatusBadGateway,
		BackendStatus: http.StatusNotFound,
		BackendCode:   backendCode,
	}
}

func NewRefundNotFoundError() *ServiceError {
	return &ServiceError{
		Kind:          KindBackendError,
		Code:          ErrCodeBackendError,
		Message:       fmt.Sprintf("Unexpected failure %d without Taler error code from Taler backend", http.StatusNotFound),
		HTTPStatus:    http.StatusBadGateway,
		BackendStatus: http.StatusNotFound,
	}
}

func NewRefundAmountExceededError() *ServiceError {
	return &ServiceError{
		Kind:          KindBackendRejected,
		Code:          ErrCodeRefundAmountExceeded,
		Message:       "Requested refund amount exceeds original payment. This is not allowed!",
		HTTPStatus:    http.StatusConflict,
		BackendStatus: http.StatusConflict,
	}
}

func NewRefundWireTransferredError() *ServiceError {
	return &ServiceError{
		Kind:          KindBackendRejected,
		Code:          ErrCodeRefundWireTransferred,
		Message:       "Wire transfer already happened. It is too late for a refund with Taler!",
		HTTPStatus:    http.StatusGone,
		BackendStatus: http.StatusGone,
	}
}

func NewNotRefundableError(status string) *ServiceError {
	return &ServiceError{
		Kind:       KindPreconditionFailed,
		Code:       ErrCodeOrderStatusNotRefundable,
		Message:    fmt.Sprintf("The status of the order (%s) does not allow for a refund.", status),
		HTTPStatus: http.StatusConflict,
	}
}

func NewNotPayableError(status string) *ServiceError {
	return &ServiceError{
		Kind:        KindPreconditionFailed,
		Code:        ErrCodeOrderStatusNotPayable,
		Message:     fmt.Sprintf("The status of the order (%s) does not allow another payment.", status),
		UserMessage: "This order cannot be paid again.",
		HTTPStatus:  http.StatusConflict,
	}
}

func NewInternalError(err error) *ServiceError {
	return &ServiceError{
		Kind:        KindInternal,
		Code:        ErrCodeInternal,
		Message:     "An internal error occurred",
		UserMessage: userMessageContactAdmin,
		HTTPStatus:  http.StatusInternalServerError,
		Err:         err,
	}
}

func NewInvalidInputError(err error) *ServiceError {
	return &ServiceError{
		Kind:       KindPreconditionFailed,
		Code:       ErrCodeInvalidInput,
		Message:    "Invalid input",
		HTTPStatus: http.StatusBadRequest,
		Err:        err,
	}
}

func IsServiceError(err error) (*ServiceError, bool) {
	var svcErr *ServiceError
	ok := errors.As(err, &svcErr)
	return svcErr, ok
}

// IsKind reports whether err is a ServiceError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	svcErr, ok := IsServiceError(err)
	return ok && svcErr.Kind == kind
}
