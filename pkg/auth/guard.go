// Package auth runs the session guard: probe the session, fall back to
// silent re-authentication, and tell the user when neither works.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Om-Mishra7/InkBloom/pkg/api"
	clierrors "github.com/Om-Mishra7/InkBloom/pkg/errors"
	"github.com/Om-Mishra7/InkBloom/pkg/logger"
	"github.com/Om-Mishra7/InkBloom/pkg/notifier"
	"github.com/google/uuid"
)

// State of a guard run
type State string

const (
	StateUnknown          State = "unknown"
	StateSkipped          State = "skipped"
	StateChecking         State = "checking"
	StateAuthenticated    State = "authenticated"
	StateReauthenticating State = "reauthenticating"
	StateRedirected       State = "redirected"
	StateUnauthenticated  State = "unauthenticated"
)

// AutoLoginDisabled is shown when silent re-authentication fails
const AutoLoginDisabled = "Auto-login is disabled"

// SessionProber checks the session with the home service
type SessionProber interface {
	GetCurrentUser(ctx context.Context) (*api.User, error)
}

// Reauthenticator talks to the identity provider
type Reauthenticator interface {
	SilentAuth(ctx context.Context) error
	ContinuationURL(state string) string
}

// SignOutFlag reports whether the user explicitly signed out
type SignOutFlag interface {
	SignedOut() (bool, error)
}

// Result is the outcome of one guard run
type Result struct {
	State State
	// User is set when State is StateAuthenticated
	User *api.User
	// ContinuationURL is set when State is StateRedirected
	ContinuationURL string
	// Err holds the failure that ended the run, if any
	Err error
}

// Guard runs the session check once per invocation. Network failures end
// the run; nothing is retried.
type Guard struct {
	prober  SessionProber
	idp     Reauthenticator
	flag    SignOutFlag
	alerter notifier.Alerter
}

// NewGuard wires a guard. flag and alerter may be nil.
func NewGuard(prober SessionProber, idp Reauthenticator, flag SignOutFlag, alerter notifier.Alerter) *Guard {
	return &Guard{prober: prober, idp: idp, flag: flag, alerter: alerter}
}

// Run executes the guard state machine.
func (g *Guard) Run(ctx context.Context) Result {
	if g.flag != nil {
		signedOut, err := g.flag.SignedOut()
		if err != nil {
			logger.Warn("Could not read sign-out flag", "error", err)
		}
		if signedOut {
			logger.Debug("Session guard skipped after explicit sign-out")
			return Result{State: StateSkipped}
		}
	}

	logger.Debug("Session guard checking")
	user, err := g.prober.GetCurrentUser(ctx)
	if err == nil {
		return Result{State: StateAuthenticated, User: user}
	}

	if !IsSessionError(err) {
		return g.fail(err, "Could not check your session: "+clierrors.CategorizeError(err).Message)
	}

	logger.Debug("Session absent, attempting silent re-authentication", "error", err)
	if err := g.idp.SilentAuth(ctx); err != nil {
		if clierrors.IsTransport(err) {
			return g.fail(err, "Could not reach the sign-in service")
		}
		return g.fail(err, AutoLoginDisabled)
	}

	state := uuid.NewString()
	return Result{
		State:           StateRedirected,
		ContinuationURL: g.idp.ContinuationURL(state),
	}
}

func (g *Guard) fail(err error, message string) Result {
	logger.Warn("Session guard failed", "error", err)
	if g.alerter != nil {
		g.alerter.Show(notifier.KindDanger, message)
	}
	return Result{State: StateUnauthenticated, Err: err}
}

// IsSessionError reports whether err means the session is absent or
// expired: a 401, or a 403 whose message says it expired.
func IsSessionError(err error) bool {
	if err == nil {
		return false
	}
	if api.IsUnauthorized(err) {
		return true
	}

	var apiErr *api.APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode == 403 {
		return strings.Contains(strings.ToLower(apiErr.Message), "expired")
	}
	return false
}

// String renders a result for the status command
func (r Result) String() string {
	switch r.State {
	case StateAuthenticated:
		if r.User != nil {
			return fmt.Sprintf("Signed in as %s", r.User.Username)
		}
		return "Signed in"
	case StateRedirected:
		return "Session can be restored. Continue at: " + r.ContinuationURL
	case StateSkipped:
		return "Signed out. Run 'inkbloom auth login' to sign in again."
	default:
		return "Not signed in"
	}
}
