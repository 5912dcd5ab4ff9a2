package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Om-Mishra7/InkBloom/pkg/auth"
	"github.com/Om-Mishra7/InkBloom/pkg/client"
	"github.com/Om-Mishra7/InkBloom/pkg/credentials"
	"github.com/Om-Mishra7/InkBloom/pkg/logger"
	"github.com/Om-Mishra7/InkBloom/pkg/output"
	"github.com/google/uuid"
)

// AuthService manages the local session
type AuthService struct {
	rt *Runtime
}

// NewAuthService creates a new auth service
func NewAuthService(rt *Runtime) *AuthService {
	return &AuthService{rt: rt}
}

// Status runs the session guard and reports the result
func (s *AuthService) Status(ctx context.Context) (auth.Result, error) {
	guard := auth.NewGuard(s.rt.API, s.rt.Identity, credentials.Store{}, s.rt.Notifier)
	res := guard.Run(ctx)

	if res.State == auth.StateAuthenticated && res.User != nil {
		s.remember(res)
	}

	switch res.State {
	case auth.StateAuthenticated, auth.StateSkipped:
		output.PrintInfo(res.String())
	case auth.StateRedirected:
		output.PrintWarning(res.String())
	default:
		output.PrintError(res.String())
	}
	return res, res.Err
}

// Login clears the sign-out flag and prints where to sign in
func (s *AuthService) Login() (string, error) {
	creds, err := credentials.LoadOrEmpty()
	if err != nil {
		return "", err
	}
	creds.ClearSignedOut()
	if err := credentials.Save(creds); err != nil {
		return "", fmt.Errorf("failed to save credentials: %w", err)
	}

	url := s.rt.Identity.ContinuationURL(uuid.NewString())
	output.PrintInfo("Open this URL to sign in:")
	fmt.Fprintln(output.Out, url)
	output.PrintInfo("Then store the session cookie with 'inkbloom auth session COOKIE'.")
	return url, nil
}

// Logout forgets the session and records the explicit sign-out
func (s *AuthService) Logout() error {
	creds, err := credentials.LoadOrEmpty()
	if err != nil {
		return err
	}
	creds.MarkSignedOut(time.Now())
	if err := credentials.Save(creds); err != nil {
		return fmt.Errorf("failed to save credentials: %w", err)
	}
	client.ClearSession()

	output.PrintSuccess("Signed out. Auto-login stays off until 'inkbloom auth login'.")
	return nil
}

// StoreSession saves a session cookie copied from the browser and
// checks it against the server.
func (s *AuthService) StoreSession(ctx context.Context, cookie string) error {
	if cookie == "" {
		return fmt.Errorf("session cookie cannot be empty")
	}

	creds, err := credentials.LoadOrEmpty()
	if err != nil {
		return err
	}
	creds.SessionCookie = cookie
	creds.ClearSignedOut()

	client.SetSessionCookie(cookie)
	user, err := s.rt.API.GetCurrentUser(ctx)
	if err != nil {
		logger.Warn("Stored session could not be verified", "error", err)
		output.PrintWarning("Session saved but not verified: %v", err)
	} else {
		creds.UserID = user.ID
		creds.Username = user.Username
		creds.Name = user.Name
		creds.AvatarURL = user.AvatarURL
		output.PrintSuccess("Signed in as %s", user.Username)
	}

	return credentials.Save(creds)
}

func (s *AuthService) remember(res auth.Result) {
	creds, err := credentials.LoadOrEmpty()
	if err != nil {
		return
	}
	creds.UserID = res.User.ID
	creds.Username = res.User.Username
	creds.Name = res.User.Name
	creds.AvatarURL = res.User.AvatarURL
	if err := credentials.Save(creds); err != nil {
		logger.Warn("Failed to save credentials", "error", err)
	}
}
