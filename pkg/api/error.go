package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-resty/resty/v2"
	json "github.com/json-iterator/go"
)

// APIError represents a non-success answer from the server
type APIError struct {
	StatusCode int
	Status     string
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("[%d] %s", e.StatusCode, e.Message)
}

// HTTPStatus exposes the status code to the error taxonomy
func (e *APIError) HTTPStatus() int {
	return e.StatusCode
}

// ParseError parses an error response from the API
func ParseError(resp *resty.Response) error {
	statusCode := resp.StatusCode()

	var env StatusResponse
	if err := json.Unmarshal(resp.Body(), &env); err == nil && env.Message != "" {
		return &APIError{
			StatusCode: statusCode,
			Status:     env.Status,
			Message:    env.Message,
		}
	}

	message := http.StatusText(statusCode)
	if message == "" {
		message = "unknown error"
	}
	return &APIError{
		StatusCode: statusCode,
		Status:     "error",
		Message:    message,
	}
}

func statusOf(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

// IsUnauthorized checks if error is due to missing/invalid authentication
func IsUnauthorized(err error) bool {
	return statusOf(err) == http.StatusUnauthorized
}

// IsForbidden checks if error is due to insufficient permissions
func IsForbidden(err error) bool {
	return statusOf(err) == http.StatusForbidden
}

// IsNotFound checks if error is due to resource not found
func IsNotFound(err error) bool {
	return statusOf(err) == http.StatusNotFound
}

// IsServerError checks if error is due to server error (5xx)
func IsServerError(err error) bool {
	return statusOf(err) >= 500
}

// CheckResponse checks if response is successful and returns error if not
func CheckResponse(resp *resty.Response, err error) error {
	if err != nil {
		return err
	}

	if !resp.IsSuccess() {
		return ParseError(resp)
	}

	return nil
}

// decodeStatus checks the response and its {status, message} envelope.
// The server answers some failures with 200 and status "error".
func decodeStatus(resp *resty.Response, err error) (*StatusResponse, error) {
	if err := CheckResponse(resp, err); err != nil {
		return nil, err
	}

	var env StatusResponse
	if len(resp.Body()) > 0 {
		if err := json.Unmarshal(resp.Body(), &env); err != nil {
			return nil, fmt.Errorf("decode response: %w", err)
		}
	}
	if !env.OK() {
		return nil, &APIError{StatusCode: resp.StatusCode(), Status: env.Status, Message: env.Message}
	}
	return &env, nil
}
