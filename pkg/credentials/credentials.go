package credentials

import (
	"encoding/json"
	"os"
	"time"

	"github.com/Om-Mishra7/InkBloom/pkg/config"
)

// Credentials is the locally persisted session state.
type Credentials struct {
	SessionCookie string    `json:"session_cookie,omitempty"`
	UserID        string    `json:"user_id,omitempty"`
	Username      string    `json:"username,omitempty"`
	Name          string    `json:"name,omitempty"`
	AvatarURL     string    `json:"avatar_url,omitempty"`
	SignedOut     bool      `json:"signed_out"`
	SignedOutAt   time.Time `json:"signed_out_at,omitempty"`
}

// Load loads credentials from disk
func Load() (*Credentials, error) {
	path := config.GetCredentialsPath()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil // Credentials don't exist yet
		}
		return nil, err
	}

	var creds Credentials
	if err := json.Unmarshal(data, &creds); err != nil {
		return nil, err
	}

	return &creds, nil
}

// LoadOrEmpty is Load with a zero value in place of a missing file.
func LoadOrEmpty() (*Credentials, error) {
	creds, err := Load()
	if err != nil {
		return nil, err
	}
	if creds == nil {
		creds = &Credentials{}
	}
	return creds, nil
}

// Save saves credentials to disk
func Save(creds *Credentials) error {
	path := config.GetCredentialsPath()

	data, err := json.MarshalIndent(creds, "", "  ")
	if err != nil {
		return err
	}

	// Write with restricted permissions (owner read/write only)
	return os.WriteFile(path, data, 0600)
}

// Delete deletes credentials from disk
func Delete() error {
	path := config.GetCredentialsPath()
	err := os.Remove(path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// HasSession reports whether a session cookie is stored
func (c *Credentials) HasSession() bool {
	return c != nil && c.SessionCookie != ""
}

// MarkSignedOut records an explicit sign-out and forgets the session.
func (c *Credentials) MarkSignedOut(at time.Time) {
	c.SignedOut = true
	c.SignedOutAt = at
	c.SessionCookie = ""
}

// ClearSignedOut is called on explicit sign-in.
func (c *Credentials) ClearSignedOut() {
	c.SignedOut = false
	c.SignedOutAt = time.Time{}
}

// Store adapts the on-disk credentials to the session guard's flag lookup.
type Store struct{}

// SignedOut reports whether the user explicitly signed out.
func (Store) SignedOut() (bool, error) {
	creds, err := Load()
	if err != nil || creds == nil {
		return false, err
	}
	return creds.SignedOut, nil
}
