package api

import (
	"context"
	"strings"

	"github.com/Om-Mishra7/InkBloom/pkg/config"
	"github.com/Om-Mishra7/InkBloom/pkg/logger"
	"github.com/go-resty/resty/v2"
	"golang.org/x/oauth2"
)

// IdentityClient talks to the external identity provider
type IdentityClient struct {
	http           *resty.Client
	silentAuthPath string
	oauth          *oauth2.Config
}

// IdentityOptions configures an IdentityClient
type IdentityOptions struct {
	SilentAuthPath string
	AuthorizePath  string
	ClientID       string
	RedirectURL    string
}

// NewIdentityClient wraps rc, whose base URL must be the provider's.
func NewIdentityClient(rc *resty.Client, opts IdentityOptions) *IdentityClient {
	base := strings.TrimRight(rc.BaseURL, "/")
	return &IdentityClient{
		http:           rc,
		silentAuthPath: opts.SilentAuthPath,
		oauth: &oauth2.Config{
			ClientID:    opts.ClientID,
			RedirectURL: opts.RedirectURL,
			Endpoint: oauth2.Endpoint{
				AuthURL: base + opts.AuthorizePath,
			},
		},
	}
}

// DefaultIdentityClient builds an IdentityClient from configuration,
// sharing the session cookie jar of the API client.
func DefaultIdentityClient(api *resty.Client) *IdentityClient {
	rc := resty.New().
		SetBaseURL(config.GetString("identity.base_url")).
		SetTimeout(api.GetClient().Timeout).
		SetCookieJar(api.GetClient().Jar).
		SetHeader("User-Agent", api.Header.Get("User-Agent"))
	for _, c := range api.Cookies {
		rc.SetCookie(c)
	}
	return NewIdentityClient(rc, IdentityOptions{
		SilentAuthPath: config.GetString("identity.silent_auth_path"),
		AuthorizePath:  config.GetString("identity.authorize_path"),
		ClientID:       config.GetString("identity.client_id"),
		RedirectURL:    config.GetString("identity.redirect_url"),
	})
}

// SilentAuth asks the provider to re-establish the session without user
// interaction. Any non-2xx answer is an error.
func (c *IdentityClient) SilentAuth(ctx context.Context) error {
	logger.Debug("Attempting silent re-authentication")

	resp, err := c.http.R().
		SetContext(ctx).
		Post(c.silentAuthPath)
	return CheckResponse(resp, err)
}

// ContinuationURL is where the user finishes signing in.
func (c *IdentityClient) ContinuationURL(state string) string {
	return c.oauth.AuthCodeURL(state)
}
