package sheet

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/oauth2/google"
	"golang.org/x/oauth2/jwt"
)

// Credentials identify the service account used to write to the sheet.
// Either File or Email+PrivateKey must be set; File wins when both are.
type Credentials struct {
	Email      string
	PrivateKey string
	File       string
}

// UnescapeKey turns literal "\n" sequences, as found in single-line
// environment variables, into real newlines.
func UnescapeKey(key string) string {
	return strings.ReplaceAll(key, `\n`, "\n")
}

// Configured reports whether any credential source is set.
func (c Credentials) Configured() bool {
	return c.File != "" || (c.Email != "" && c.PrivateKey != "")
}

// Redacted describes the credentials without key material, for logs.
func (c Credentials) Redacted() string {
	switch {
	case c.File != "":
		return fmt.Sprintf("credentials file %s", c.File)
	case c.Email != "":
		return fmt.Sprintf("service account %s (key set: %t)", c.Email, c.PrivateKey != "")
	default:
		return "no credentials"
	}
}

// JWTConfig builds a two-legged JWT config for the given scopes.
func (c Credentials) JWTConfig(scopes ...string) (*jwt.Config, error) {
	if c.File != "" {
		data, err := os.ReadFile(c.File)
		if err != nil {
			return nil, fmt.Errorf("read credentials file: %w", err)
		}
		conf, err := google.JWTConfigFromJSON(data, scopes...)
		if err != nil {
			return nil, fmt.Errorf("parse credentials file: %w", err)
		}
		return conf, nil
	}

	if c.Email == "" || c.PrivateKey == "" {
		return nil, ErrMissingCredentials
	}

	return &jwt.Config{
		Email:      c.Email,
		PrivateKey: []byte(UnescapeKey(c.PrivateKey)),
		Scopes:     scopes,
		TokenURL:   google.JWTTokenURL,
	}, nil
}
