package errors

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
)

// ErrorType categorizes different error types
type ErrorType string

const (
	// Transport errors
	ErrorTypeNetwork ErrorType = "network"
	ErrorTypeTimeout ErrorType = "timeout"

	// Non-success HTTP status with a structured payload
	ErrorTypeHTTP         ErrorType = "http"
	ErrorTypeUnauthorized ErrorType = "unauthorized"
	ErrorTypeForbidden    ErrorType = "forbidden"
	ErrorTypeNotFound     ErrorType = "not_found"
	ErrorTypeRateLimit    ErrorType = "rate_limit"
	ErrorTypeServer       ErrorType = "server"
	ErrorTypeValidation   ErrorType = "validation"

	// Designed terminal signal, not a failure
	ErrorTypeNoMoreData ErrorType = "no_more_data"

	ErrorTypeUnknown ErrorType = "unknown"
)

// ErrNoMoreData is returned when a paginated or searched resource has
// nothing further to give (the server answered 404).
var ErrNoMoreData = errors.New("no more data")

// CLIError represents a structured error with context
type CLIError struct {
	Type       ErrorType
	Message    string
	Cause      error
	Suggestion string
	StatusCode int
	RetryAfter int
}

// Error implements the error interface
func (e *CLIError) Error() string {
	return e.Message
}

// WithSuggestion adds a helpful suggestion to the error
func (e *CLIError) WithSuggestion(suggestion string) *CLIError {
	e.Suggestion = suggestion
	return e
}

// HasSuggestion returns true if the error has a suggestion
func (e *CLIError) HasSuggestion() bool {
	return e.Suggestion != ""
}

// Unwrap returns the underlying error
func (e *CLIError) Unwrap() error {
	return e.Cause
}

// NewCLIError creates a new CLI error
func NewCLIError(errorType ErrorType, message string, cause error) *CLIError {
	return &CLIError{
		Type:    errorType,
		Message: message,
		Cause:   cause,
	}
}

// NetworkError creates a network error
func NetworkError(message string) *CLIError {
	err := NewCLIError(ErrorTypeNetwork, message, nil)
	err.Suggestion = "Check your internet connection and try again."
	return err
}

// TimeoutError creates a timeout error
func TimeoutError() *CLIError {
	err := NewCLIError(ErrorTypeTimeout, "Request timed out", nil)
	err.Suggestion = "The server is taking too long to respond. Try again in a moment."
	return err
}

// UnauthorizedError creates an unauthorized error
func UnauthorizedError() *CLIError {
	err := NewCLIError(ErrorTypeUnauthorized, "You are not signed in", nil)
	err.StatusCode = 401
	err.Suggestion = "Run 'inkbloom auth login' and store the session with 'inkbloom auth session'."
	return err
}

// ForbiddenError creates a forbidden error
func ForbiddenError() *CLIError {
	err := NewCLIError(ErrorTypeForbidden, "You are not allowed to do that", nil)
	err.StatusCode = 403
	err.Suggestion = "Only the owner of a resource can change it."
	return err
}

// ValidationError creates a validation error
func ValidationError(field, reason string) *CLIError {
	message := fmt.Sprintf("Validation error: %s - %s", field, reason)
	return NewCLIError(ErrorTypeValidation, message, nil)
}

// RequiredFieldsError reports every missing field at once.
func RequiredFieldsError(fields []string) *CLIError {
	message := "The following fields are required: " + strings.Join(fields, ", ")
	return NewCLIError(ErrorTypeValidation, message, nil)
}

// ServerError creates a server error
func ServerError() *CLIError {
	err := NewCLIError(ErrorTypeServer, "Server error", nil)
	err.Suggestion = "The server encountered an error. Try again in a few moments."
	return err
}

// NotFoundError creates a not found error
func NotFoundError(resourceType, identifier string) *CLIError {
	err := NewCLIError(ErrorTypeNotFound,
		fmt.Sprintf("%s not found: %s", resourceType, identifier),
		nil)
	err.StatusCode = 404
	return err
}

// RateLimitError creates a rate limit error
func RateLimitError(retryAfter int) *CLIError {
	err := NewCLIError(ErrorTypeRateLimit,
		"Too many requests, please try again later!",
		nil)
	err.StatusCode = 429
	err.RetryAfter = retryAfter
	err.Suggestion = fmt.Sprintf("Please wait %d seconds before trying again.", retryAfter)
	return err
}

// HTTPError wraps a non-success status carrying the server's message.
func HTTPError(statusCode int, message string, cause error) *CLIError {
	err := NewCLIError(ErrorTypeHTTP, message, cause)
	err.StatusCode = statusCode
	return err
}

// StatusCoder is implemented by errors that know their HTTP status.
type StatusCoder interface {
	HTTPStatus() int
}

// IsTransport reports whether err is a transport failure: nothing came
// back from the server.
func IsTransport(err error) bool {
	if err == nil {
		return false
	}
	var sc StatusCoder
	if errors.As(err, &sc) {
		return false
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var cliErr *CLIError
	if errors.As(err, &cliErr) {
		return cliErr.Type == ErrorTypeNetwork || cliErr.Type == ErrorTypeTimeout
	}
	msg := err.Error()
	return strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "no such host") ||
		strings.Contains(msg, "EOF")
}

// CategorizeError converts a standard error into a CLIError
func CategorizeError(err error) *CLIError {
	if err == nil {
		return nil
	}

	var cliErr *CLIError
	if errors.As(err, &cliErr) {
		return cliErr
	}

	if errors.Is(err, ErrNoMoreData) {
		return NewCLIError(ErrorTypeNoMoreData, "Nothing more to show", err)
	}

	var sc StatusCoder
	if errors.As(err, &sc) {
		return categorizeStatus(sc.HTTPStatus(), err)
	}

	errMsg := err.Error()

	switch {
	case errors.Is(err, context.DeadlineExceeded),
		strings.Contains(errMsg, "timeout"):
		return TimeoutError()
	case strings.Contains(errMsg, "connection refused"):
		return NetworkError("Could not connect to server. Make sure it's running.")
	case IsTransport(err):
		return NetworkError(errMsg)
	default:
		return NewCLIError(ErrorTypeUnknown, errMsg, err)
	}
}

func categorizeStatus(status int, cause error) *CLIError {
	var out *CLIError
	switch {
	case status == 401:
		out = UnauthorizedError()
	case status == 403:
		out = ForbiddenError()
	case status == 404:
		out = NotFoundError("Resource", "unknown")
	case status == 429:
		out = RateLimitError(60)
	case status >= 500:
		out = ServerError()
		out.StatusCode = status
	default:
		out = HTTPError(status, cause.Error(), nil)
	}
	out.Cause = cause
	return out
}

// FormatError returns a user-friendly error message
func FormatError(err error) string {
	if err == nil {
		return ""
	}

	cliErr := CategorizeError(err)
	var sb strings.Builder

	sb.WriteString("Error")
	if cliErr.Type != ErrorTypeUnknown {
		sb.WriteString(" (")
		sb.WriteString(string(cliErr.Type))
		sb.WriteString(")")
	}
	sb.WriteString(": ")
	sb.WriteString(cliErr.Message)
	sb.WriteString("\n")

	if cliErr.HasSuggestion() {
		sb.WriteString("\nSuggestion: ")
		sb.WriteString(cliErr.Suggestion)
		sb.WriteString("\n")
	}

	if cliErr.Type == ErrorTypeRateLimit && cliErr.RetryAfter > 0 {
		sb.WriteString(fmt.Sprintf("\nRetry in: %d seconds\n", cliErr.RetryAfter))
	}

	return sb.String()
}
