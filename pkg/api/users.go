package api

import (
	"context"
	"fmt"
	"io"
	"net/url"

	"github.com/Om-Mishra7/InkBloom/pkg/logger"
)

func userPath(userID, action string) string {
	return fmt.Sprintf("/api/v1/users/%s/%s", url.PathEscape(userID), action)
}

// Subscribe signs email up for the author's newsletter
func (c *Client) Subscribe(ctx context.Context, userID, email string) (*StatusResponse, error) {
	logger.Debug("Subscribing", "user_id", userID)

	req, token, err := c.mutate(ctx)
	if err != nil {
		return nil, err
	}
	return decodeStatus(req.
		SetBody(map[string]string{"csrf_token": token, "email": email}).
		Put(userPath(userID, "subscribe")))
}

// Unsubscribe reverses Subscribe
func (c *Client) Unsubscribe(ctx context.Context, userID string) (*StatusResponse, error) {
	logger.Debug("Unsubscribing", "user_id", userID)

	req, token, err := c.mutate(ctx)
	if err != nil {
		return nil, err
	}
	return decodeStatus(req.
		SetBody(map[string]string{"csrf_token": token}).
		Put(userPath(userID, "unsubscribe")))
}

// DeleteAccount permanently deletes the account
func (c *Client) DeleteAccount(ctx context.Context, userID string) (*StatusResponse, error) {
	logger.Debug("Deleting account", "user_id", userID)

	req, token, err := c.mutate(ctx)
	if err != nil {
		return nil, err
	}
	return decodeStatus(req.
		SetBody(map[string]string{"csrf_token": token}).
		Delete(userPath(userID, "delete")))
}

// ExportAccount streams the account export into w and returns the number
// of bytes written.
func (c *Client) ExportAccount(ctx context.Context, userID string, w io.Writer) (int64, error) {
	logger.Debug("Exporting account", "user_id", userID)

	resp, err := c.read(ctx).
		SetDoNotParseResponse(true).
		Get(userPath(userID, "export"))
	if err != nil {
		return 0, err
	}
	body := resp.RawBody()
	defer body.Close()

	if !resp.IsSuccess() {
		data, _ := io.ReadAll(body)
		resp.SetBody(data)
		return 0, ParseError(resp)
	}
	return io.Copy(w, body)
}
