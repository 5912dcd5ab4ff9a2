package api

import (
	"context"
	"net/url"

	"github.com/Om-Mishra7/InkBloom/pkg/logger"
)

// CreateCommentRequest is the body of a new comment
type CreateCommentRequest struct {
	BlogID    string `json:"blog_id"`
	Content   string `json:"content"`
	CSRFToken string `json:"csrf_token"`
}

// CreateComment posts a comment on a blog
func (c *Client) CreateComment(ctx context.Context, blogID, content string) (*StatusResponse, error) {
	logger.Debug("Creating comment", "blog_id", blogID)

	req, token, err := c.mutate(ctx)
	if err != nil {
		return nil, err
	}
	return decodeStatus(req.
		SetBody(CreateCommentRequest{BlogID: blogID, Content: content, CSRFToken: token}).
		Post("/api/v1/user/comments"))
}

// DeleteComment removes one of the user's comments
func (c *Client) DeleteComment(ctx context.Context, commentID string) (*StatusResponse, error) {
	logger.Debug("Deleting comment", "comment_id", commentID)

	req, token, err := c.mutate(ctx)
	if err != nil {
		return nil, err
	}
	return decodeStatus(req.
		SetBody(map[string]string{"csrf_token": token}).
		Delete("/api/v1/user/comments/" + url.PathEscape(commentID)))
}
