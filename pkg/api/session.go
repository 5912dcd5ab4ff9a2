package api

import (
	"context"

	"github.com/Om-Mishra7/InkBloom/pkg/logger"
	json "github.com/json-iterator/go"
)

// GetCurrentUser probes the session. A 401 comes back as an APIError.
func (c *Client) GetCurrentUser(ctx context.Context) (*User, error) {
	logger.Debug("Probing session")

	resp, err := c.read(ctx).Get("/api/v1/user")
	if err := CheckResponse(resp, err); err != nil {
		return nil, err
	}

	// the server wraps the user in {data: {...}} on newer revisions
	var wrapped struct {
		Data *User `json:"data"`
	}
	if err := json.Unmarshal(resp.Body(), &wrapped); err == nil && wrapped.Data != nil {
		return wrapped.Data, nil
	}

	var user User
	if err := json.Unmarshal(resp.Body(), &user); err != nil {
		return nil, err
	}
	return &user, nil
}
