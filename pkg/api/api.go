// Package api wraps the InkBloom REST surface in typed calls.
package api

import (
	"context"
	"sync"

	"github.com/Om-Mishra7/InkBloom/pkg/client"
	"github.com/Om-Mishra7/InkBloom/pkg/config"
	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
)

// IdempotencyHeader is sent with every mutating request
const IdempotencyHeader = "Idempotency-Key"

// CSRFHeader carries the anti-forgery token alongside the body field
const CSRFHeader = "X-CSRFToken"

// Client issues API calls. The anti-forgery token is scraped once from
// csrfPage and reused for every mutating request.
type Client struct {
	http     *resty.Client
	csrfPage string

	mu   sync.Mutex
	csrf string
}

// New wraps rc. An empty csrfPage scrapes the site root.
func New(rc *resty.Client, csrfPage string) *Client {
	if csrfPage == "" {
		csrfPage = "/"
	}
	return &Client{http: rc, csrfPage: csrfPage}
}

// Default builds a Client on the shared HTTP client
func Default() *Client {
	return New(client.GetClient(), config.GetString("csrf.page"))
}

// HTTP exposes the underlying resty client
func (c *Client) HTTP() *resty.Client {
	return c.http
}

// SetCSRFToken installs a token, skipping the scrape
func (c *Client) SetCSRFToken(token string) {
	c.mu.Lock()
	c.csrf = token
	c.mu.Unlock()
}

// CSRFToken returns the cached token, scraping it on first use.
func (c *Client) CSRFToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	token := c.csrf
	c.mu.Unlock()
	if token != "" {
		return token, nil
	}

	token, err := c.FetchCSRFToken(ctx, c.csrfPage)
	if err != nil {
		return "", err
	}
	c.SetCSRFToken(token)
	return token, nil
}

func (c *Client) read(ctx context.Context) *resty.Request {
	return c.http.R().SetContext(ctx)
}

// mutate prepares a state-changing request with an idempotency key and
// the anti-forgery token in a header. The token is returned so callers
// can also put it in the body, which is where the server reads it.
func (c *Client) mutate(ctx context.Context) (*resty.Request, string, error) {
	token, err := c.CSRFToken(ctx)
	if err != nil {
		return nil, "", err
	}
	req := c.http.R().
		SetContext(ctx).
		SetHeader(IdempotencyHeader, uuid.NewString()).
		SetHeader(CSRFHeader, token)
	return req, token, nil
}
