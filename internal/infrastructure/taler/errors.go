package taler

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// Failure codes carried in the body of a status-0 Outcome.
const (
	FailureTimeout          = "timeout"
	FailureDNS              = "dns_failure"
	FailureRedirectLimit    = "redirect_limit"
	FailureResponseTooLarge = "response_too_large"
	FailureDecode           = "decode_failed"
	FailureEncode           = "encode_failed"
	FailureConnection       = "connection_failed"
)

var (
	errRedirectLimit    = errors.New("stopped after too many redirects")
	errResponseTooLarge = errors.New("response body exceeds the size limit")
)

// transportError is a call that ended without a usable HTTP status.
type transportError struct {
	Code string
	Err  error
}

func (e *transportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Code, e.Err)
}

func (e *transportError) Unwrap() error {
	return e.Err
}

func classifyDoError(err error) *transportError {
	var dnsErr *net.DNSError
	var netErr net.Error

	switch {
	case errors.Is(err, errRedirectLimit):
		return &transportError{Code: FailureRedirectLimit, Err: err}
	case errors.As(err, &dnsErr):
		return &transportError{Code: FailureDNS, Err: err}
	case errors.Is(err, context.DeadlineExceeded),
		errors.As(err, &netErr) && netErr.Timeout():
		return &transportError{Code: FailureTimeout, Err: err}
	default:
		return &transportError{Code: FailureConnection, Err: err}
	}
}
