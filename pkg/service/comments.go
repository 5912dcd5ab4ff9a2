package service

import (
	"context"
	"fmt"
	"strings"
)

// CommentService adds and removes comments
type CommentService struct {
	rt *Runtime
}

// NewCommentService creates a new comment service
func NewCommentService(rt *Runtime) *CommentService {
	return &CommentService{rt: rt}
}

// Add posts a comment on a blog
func (s *CommentService) Add(ctx context.Context, blogID, content string) error {
	content = strings.TrimSpace(content)
	if content == "" {
		return fmt.Errorf("comment cannot be empty")
	}
	env, err := s.rt.API.CreateComment(ctx, blogID, content)
	return s.rt.surface(err, messageOr(env, "Comment added"))
}

// Delete removes a comment
func (s *CommentService) Delete(ctx context.Context, commentID string) error {
	env, err := s.rt.API.DeleteComment(ctx, commentID)
	return s.rt.surface(err, messageOr(env, "Comment deleted"))
}
