package service

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/Om-Mishra7/InkBloom/pkg/output"
	"github.com/Om-Mishra7/InkBloom/pkg/prompter"
)

// ProfileService runs account actions
type ProfileService struct {
	rt *Runtime
}

// NewProfileService creates a new profile service
func NewProfileService(rt *Runtime) *ProfileService {
	return &ProfileService{rt: rt}
}

// Subscribe signs email up for an author's posts
func (s *ProfileService) Subscribe(ctx context.Context, userID, email string) error {
	if email == "" {
		return fmt.Errorf("email cannot be empty")
	}
	env, err := s.rt.API.Subscribe(ctx, userID, email)
	return s.rt.surface(err, messageOr(env, "Subscribed"))
}

// Unsubscribe stops the newsletter
func (s *ProfileService) Unsubscribe(ctx context.Context, userID string) error {
	env, err := s.rt.API.Unsubscribe(ctx, userID)
	return s.rt.surface(err, messageOr(env, "Unsubscribed"))
}

// Export writes the account export to path, or stdout when path is empty
func (s *ProfileService) Export(ctx context.Context, userID, path string) error {
	var w io.Writer = output.Out
	if path != "" {
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}

	n, err := s.rt.API.ExportAccount(ctx, userID, w)
	if err := s.rt.surface(err, "Export ready"); err != nil {
		return err
	}
	if path != "" {
		output.PrintSuccess("Wrote %d bytes to %s", n, path)
	}
	return nil
}

// Delete removes the account after confirmation unless force is set
func (s *ProfileService) Delete(ctx context.Context, userID string, force bool) (bool, error) {
	if !force {
		ok, err := prompter.PromptConfirm("Permanently delete this account and all its blogs?")
		if err != nil {
			return false, err
		}
		if !ok {
			output.PrintInfo("Cancelled")
			return false, nil
		}
	}

	env, err := s.rt.API.DeleteAccount(ctx, userID)
	if err := s.rt.surface(err, messageOr(env, "Account deleted")); err != nil {
		return false, err
	}
	return true, nil
}
