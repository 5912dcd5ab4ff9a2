package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSilentAuth(t *testing.T) {
	var gotCookie string
	ok := true
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/oauth2/silent-auth", r.URL.Path)
		if c, err := r.Cookie("idp"); err == nil {
			gotCookie = c.Value
		}
		if !ok {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	rc := resty.New().SetBaseURL(srv.URL).SetCookie(&http.Cookie{Name: "idp", Value: "abc"})
	idp := NewIdentityClient(rc, IdentityOptions{
		SilentAuthPath: "/api/v1/oauth2/silent-auth",
		AuthorizePath:  "/api/v1/oauth2/authorize",
	})

	require.NoError(t, idp.SilentAuth(context.Background()))
	assert.Equal(t, "abc", gotCookie)

	ok = false
	assert.True(t, IsUnauthorized(idp.SilentAuth(context.Background())))
}

func TestContinuationURL(t *testing.T) {
	rc := resty.New().SetBaseURL("https://accounts.example.com/")
	idp := NewIdentityClient(rc, IdentityOptions{
		AuthorizePath: "/api/v1/oauth2/authorize",
		ClientID:      "inkbloom",
		RedirectURL:   "https://blog.example.com/oauth/_handler",
	})

	u, err := url.Parse(idp.ContinuationURL("state-1"))
	require.NoError(t, err)
	assert.Equal(t, "accounts.example.com", u.Host)
	assert.Equal(t, "/api/v1/oauth2/authorize", u.Path)
	q := u.Query()
	assert.Equal(t, "inkbloom", q.Get("client_id"))
	assert.Equal(t, "state-1", q.Get("state"))
	assert.Equal(t, "code", q.Get("response_type"))
	assert.Equal(t, "https://blog.example.com/oauth/_handler", q.Get("redirect_uri"))
}
