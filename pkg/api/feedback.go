package api

import (
	"context"

	"github.com/Om-Mishra7/InkBloom/pkg/logger"
)

// SendFeedback submits free-form feedback
func (c *Client) SendFeedback(ctx context.Context, text string) (*StatusResponse, error) {
	logger.Debug("Sending feedback")

	req, token, err := c.mutate(ctx)
	if err != nil {
		return nil, err
	}
	return decodeStatus(req.
		SetBody(map[string]string{"feedback": text, "csrf_token": token}).
		Post("/api/v1/feedback"))
}
