package service

import (
	"io"
	"os"
	"strings"

	"github.com/Om-Mishra7/InkBloom/pkg/api"
	"github.com/Om-Mishra7/InkBloom/pkg/client"
	"github.com/Om-Mishra7/InkBloom/pkg/clock"
	"github.com/Om-Mishra7/InkBloom/pkg/config"
	"github.com/Om-Mishra7/InkBloom/pkg/credentials"
	"github.com/Om-Mishra7/InkBloom/pkg/logger"
	"github.com/Om-Mishra7/InkBloom/pkg/metrics"
	"github.com/Om-Mishra7/InkBloom/pkg/notifier"
	"github.com/Om-Mishra7/InkBloom/pkg/views"
)

// Runtime bundles the components every service needs
type Runtime struct {
	API      *api.Client
	Identity *api.IdentityClient
	Notifier *notifier.Notifier
	Metrics  *metrics.Metrics
	Clock    clock.Clock
	BaseURL  string
	// StatePath is the view record database; empty keeps records in memory
	StatePath string
}

// RuntimeOptions overrides parts of the configured runtime, for tests
type RuntimeOptions struct {
	BaseURL      string
	IdentityURL  string
	AlertsOut    io.Writer
	Clock        clock.Clock
	Metrics      *metrics.Metrics
	StatePath    string
	AlertTimeout int
}

// NewRuntime builds the runtime from configuration and the stored session
func NewRuntime() (*Runtime, error) {
	creds, err := credentials.Load()
	if err != nil {
		logger.Warn("Could not load credentials", "error", err)
	}
	if creds.HasSession() {
		client.SetSessionCookie(creds.SessionCookie)
	}

	m := metrics.Default()
	n := notifier.New(os.Stderr, clock.Real{}, config.GetMillis("alerts.timeout_ms"))
	n.SetMetrics(m)

	rc := client.GetClient()
	return &Runtime{
		API:       api.Default(),
		Identity:  api.DefaultIdentityClient(rc),
		Notifier:  n,
		Metrics:   m,
		Clock:     clock.Real{},
		BaseURL:   strings.TrimRight(config.GetString("api.base_url"), "/"),
		StatePath: config.GetString("state.db"),
	}, nil
}

// NewRuntimeWith builds a runtime against explicit endpoints
func NewRuntimeWith(opts RuntimeOptions) *Runtime {
	if opts.Clock == nil {
		opts.Clock = clock.Real{}
	}
	if opts.AlertsOut == nil {
		opts.AlertsOut = io.Discard
	}

	rc := client.New(client.Options{BaseURL: opts.BaseURL, Metrics: opts.Metrics})
	idp := api.NewIdentityClient(
		client.New(client.Options{BaseURL: opts.IdentityURL}),
		api.IdentityOptions{
			SilentAuthPath: "/api/v1/oauth2/silent-auth",
			AuthorizePath:  "/api/v1/oauth2/authorize",
			RedirectURL:    strings.TrimRight(opts.BaseURL, "/") + "/oauth/_handler",
		})

	n := notifier.New(opts.AlertsOut, opts.Clock, 0)
	n.SetMetrics(opts.Metrics)

	return &Runtime{
		API:       api.New(rc, "/"),
		Identity:  idp,
		Notifier:  n,
		Metrics:   opts.Metrics,
		Clock:     opts.Clock,
		BaseURL:   strings.TrimRight(opts.BaseURL, "/"),
		StatePath: opts.StatePath,
	}
}

// OpenViewStore opens the persistent view record store, falling back to
// memory when the database cannot be opened.
func (rt *Runtime) OpenViewStore() (views.Store, func()) {
	if rt.StatePath == "" {
		return views.NewMemoryStore(), func() {}
	}
	store, err := views.OpenSQLiteStore(rt.StatePath)
	if err != nil {
		logger.Warn("Falling back to in-memory view records", "path", rt.StatePath, "error", err)
		return views.NewMemoryStore(), func() {}
	}
	return store, func() { _ = store.Close() }
}

// Close stops pending alert timers
func (rt *Runtime) Close() {
	rt.Notifier.Close()
}

// surface reports a write-path result through the notifier
func (rt *Runtime) surface(err error, success string) error {
	if err != nil {
		rt.Notifier.Show(notifier.KindDanger, failureMessage(err))
		return err
	}
	rt.Notifier.Show(notifier.KindSuccess, success)
	return nil
}
