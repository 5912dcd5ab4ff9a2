package service

import (
	"errors"

	"github.com/Om-Mishra7/InkBloom/pkg/api"
	clierrors "github.com/Om-Mishra7/InkBloom/pkg/errors"
)

// failureMessage prefers the server's own message
func failureMessage(err error) string {
	var apiErr *api.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return clierrors.CategorizeError(err).Message
}

// messageOr returns the server message, or fallback when it is empty
func messageOr(env *api.StatusResponse, fallback string) string {
	if env != nil && env.Message != "" {
		return env.Message
	}
	return fallback
}
