package types

import (
	"fmt"
	"net/http"
)

// ErrorCode categorizes model provider errors
type ErrorCode string

const (
	ErrCodeUnknown         ErrorCode = "unknown"
	ErrCodeInvalidArgument ErrorCode = "invalid_argument"
	ErrCodeParse           ErrorCode = "parse"
	ErrCodeNotFound        ErrorCode = "not_found"
	ErrCodeUnauthorized    ErrorCode = "unauthorized"
	ErrCodeRateLimit       ErrorCode = "rate_limit"
	ErrCodeNetwork         ErrorCode = "network"
)

// ModelProviderError represents a failure raised while producing a model
type ModelProviderError struct {
	Code        ErrorCode    // Categorized error code
	Message     string       // Human-readable message
	StatusCode  int          // HTTP status code (0 if not applicable)
	Provider    ProviderType // Which provider generated this error
	Operation   string       // What operation failed (e.g., "get_model", "read_source")
	OriginalErr error        // Wrapped original error
}

// Error implements the error interface
func (e *ModelProviderError) Error() string {
	msg := e.Message
	if e.OriginalErr != nil {
		msg = fmt.Sprintf("%s: %v", e.Message, e.OriginalErr)
	}
	if e.StatusCode > 0 {
		return fmt.Sprintf("[%s] %s (status=%d, code=%s)", e.Provider, msg, e.StatusCode, e.Code)
	}
	return fmt.Sprintf("[%s] %s (code=%s)", e.Provider, msg, e.Code)
}

// Unwrap returns the original error for errors.Is/As
func (e *ModelProviderError) Unwrap() error {
	return e.OriginalErr
}

// IsRetryable returns true if the error is potentially recoverable with retry
func (e *ModelProviderError) IsRetryable() bool {
	switch e.Code {
	case ErrCodeRateLimit, ErrCodeNetwork:
		return true
	}
	return false
}

// WithOperation sets the operation field and returns the error for chaining
func (e *ModelProviderError) WithOperation(operation string) *ModelProviderError {
	e.Operation = operation
	return e
}

// WithStatusCode sets the status code field and returns the error for chaining
func (e *ModelProviderError) WithStatusCode(statusCode int) *ModelProviderError {
	e.StatusCode = statusCode
	return e
}

// WithOriginalErr sets the original error field and returns the error for chaining
func (e *ModelProviderError) WithOriginalErr(err error) *ModelProviderError {
	e.OriginalErr = err
	return e
}

// NewModelProviderError creates a new ModelProviderError
func NewModelProviderError(provider ProviderType, code ErrorCode, message string) *ModelProviderError {
	return &ModelProviderError{
		Code:     code,
		Message:  message,
		Provider: provider,
	}
}

// NewParseError creates an error for malformed model source
func NewParseError(provider ProviderType, err error) *ModelProviderError {
	return &ModelProviderError{
		Code:        ErrCodeParse,
		Message:     "malformed model source",
		Provider:    provider,
		Operation:   "get_model",
		OriginalErr: err,
	}
}

// NewInvalidArgumentError creates a new invalid argument error
func NewInvalidArgumentError(provider ProviderType, message string) *ModelProviderError {
	return &ModelProviderError{
		Code:     ErrCodeInvalidArgument,
		Message:  message,
		Provider: provider,
	}
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(provider ProviderType, message string) *ModelProviderError {
	return &ModelProviderError{
		Code:     ErrCodeNotFound,
		Message:  message,
		Provider: provider,
	}
}

// NewNetworkError creates a new network error
func NewNetworkError(provider ProviderType, err error) *ModelProviderError {
	return &ModelProviderError{
		Code:        ErrCodeNetwork,
		Message:     "request failed",
		Provider:    provider,
		OriginalErr: err,
	}
}

// ClassifyHTTPError determines error code from HTTP status
func ClassifyHTTPError(statusCode int) ErrorCode {
	switch statusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrCodeUnauthorized
	case http.StatusTooManyRequests:
		return ErrCodeRateLimit
	case http.StatusBadRequest:
		return ErrCodeInvalidArgument
	case http.StatusNotFound, http.StatusGone:
		return ErrCodeNotFound
	default:
		if statusCode >= 500 {
			return ErrCodeNetwork
		}
		return ErrCodeUnknown
	}
}
