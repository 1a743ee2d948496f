package rest

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/DanielPopoola/taler-merchant-gateway/internal/application"
)

type ErrorResponse struct {
	Success bool        `json:"success"`
	Error   ErrorDetail `json:"error"`
}

// ErrorDetail is the error envelope body. Message and the Backend fields carry
// technical detail for the administrator; UserMessage is the only text fit for
// a shopper.
type ErrorDetail struct {
	Code          string `json:"code"`
	Kind          string `json:"kind,omitempty"`
	Message       string `json:"message"`
	UserMessage   string `json:"user_message,omitempty"`
	Category      string `json:"category,omitempty"`
	BackendStatus int    `json:"backend_status,omitempty"`
	BackendCode   int    `json:"backend_code,omitempty"`
	Retryable     bool   `json:"retryable"`
}

// WriteError maps application errors to HTTP responses. Message carries the
// technical detail; UserMessage is the text a shopper may see.
func WriteError(w http.ResponseWriter, err error, logger *slog.Logger) {
	statusCode := application.ToHTTPStatus(err)
	detail := ErrorDetail{
		Code:      application.ToErrorCode(err),
		Message:   err.Error(),
		Category:  string(application.CategorizeError(err)),
		Retryable: application.IsRetryable(err),
	}

	if svcErr, ok := application.IsServiceError(err); ok {
		detail.Kind = string(svcErr.Kind)
		detail.UserMessage = application.UserMessage(err)
		detail.BackendStatus = svcErr.BackendStatus
		detail.BackendCode = svcErr.BackendCode
	}

	if statusCode >= http.StatusInternalServerError && logger != nil {
		logger.Error("request failed", "code", detail.Code, "error", err)
	}

	WriteJSON(w, statusCode, ErrorResponse{Success: false, Error: detail})
}

// WriteValidationError answers 400 for a request that failed decoding or
// validation before reaching a service.
func WriteValidationError(w http.ResponseWriter, err error) {
	WriteJSON(w, http.StatusBadRequest, ErrorResponse{
		Success: false,
		Error: ErrorDetail{
			Code:    application.ErrCodeInvalidInput,
			Message: err.Error(),
		},
	})
}

func WriteJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
