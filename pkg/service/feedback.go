package service

import (
	"context"
	"fmt"
	"strings"
)

// FeedbackService sends feedback to the site owners
type FeedbackService struct {
	rt *Runtime
}

// NewFeedbackService creates a new feedback service
func NewFeedbackService(rt *Runtime) *FeedbackService {
	return &FeedbackService{rt: rt}
}

// Send submits text
func (s *FeedbackService) Send(ctx context.Context, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return fmt.Errorf("feedback cannot be empty")
	}
	env, err := s.rt.API.SendFeedback(ctx, text)
	return s.rt.surface(err, messageOr(env, "Thanks for the feedback"))
}
