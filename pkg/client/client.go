package client

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/Om-Mishra7/InkBloom/pkg/config"
	"github.com/Om-Mishra7/InkBloom/pkg/logger"
	"github.com/Om-Mishra7/InkBloom/pkg/metrics"
	"github.com/go-resty/resty/v2"
)

// UserAgent is sent with every request
const UserAgent = "InkBloom-CLI/0.1.0"

// SessionCookieName is the server's session cookie
const SessionCookieName = "session"

var httpClient *resty.Client

// Options configures a client
type Options struct {
	BaseURL string
	Timeout time.Duration
	Metrics *metrics.Metrics
}

// New builds a resty client with logging and metrics hooks. Cookies set
// by the server are kept in the client's jar, the way a browser tab
// keeps them with credentials included.
func New(opts Options) *resty.Client {
	c := resty.New()
	c.SetBaseURL(strings.TrimRight(opts.BaseURL, "/"))
	if opts.Timeout > 0 {
		c.SetTimeout(opts.Timeout)
	}
	c.SetHeader("User-Agent", UserAgent)
	c.SetHeader("Accept", "application/json")

	c.OnBeforeRequest(func(c *resty.Client, req *resty.Request) error {
		logger.Debug("HTTP Request", "method", req.Method, "url", req.URL)
		return nil
	})

	m := opts.Metrics
	c.OnAfterResponse(func(c *resty.Client, resp *resty.Response) error {
		logger.Debug("HTTP Response", "status", resp.StatusCode(), "elapsed", resp.Time())
		m.ObserveRequest(resp.Request.Method, fmt.Sprintf("%d", resp.StatusCode()), resp.Time())
		return nil
	})

	c.OnError(func(req *resty.Request, err error) {
		logger.Debug("HTTP Error", "method", req.Method, "url", req.URL, "error", err)
		m.ObserveRequest(req.Method, "error", 0)
	})

	return c
}

// Init initializes the shared HTTP client from configuration
func Init() {
	httpClient = New(Options{
		BaseURL: config.GetString("api.base_url"),
		Timeout: time.Duration(config.GetInt("api.timeout")) * time.Second,
		Metrics: metrics.Default(),
	})
}

// GetClient returns the HTTP client
func GetClient() *resty.Client {
	if httpClient == nil {
		Init()
	}
	return httpClient
}

// SetSessionCookie attaches the server session to every request
func SetSessionCookie(value string) {
	if value == "" {
		return
	}
	GetClient().SetCookie(&http.Cookie{Name: SessionCookieName, Value: value})
}

// ClearSession drops cookies by rebuilding the client
func ClearSession() {
	Init()
}
