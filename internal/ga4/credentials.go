package ga4

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrNoCredentials is returned when no service account key is configured.
var ErrNoCredentials = errors.New("no GA4 service account key configured")

// Credentials is a decoded Google service account key.
type Credentials struct {
	Type         string `json:"type"`
	ProjectID    string `json:"project_id"`
	PrivateKeyID string `json:"private_key_id"`
	PrivateKey   string `json:"private_key"`
	ClientEmail  string `json:"client_email"`
	ClientID     string `json:"client_id"`
	TokenURI     string `json:"token_uri"`

	raw []byte
}

// JSON returns the key exactly as it was decoded.
func (c *Credentials) JSON() []byte {
	return c.raw
}

var encodings = []*base64.Encoding{
	base64.StdEncoding,
	base64.RawStdEncoding,
	base64.URLEncoding,
	base64.RawURLEncoding,
}

// DecodeCredentials decodes a Base64 encoded service account JSON key.
func DecodeCredentials(encoded string) (*Credentials, error) {
	encoded = strings.Join(strings.Fields(encoded), "")
	if encoded == "" {
		return nil, ErrNoCredentials
	}

	raw, err := decodeBase64(encoded)
	if err != nil {
		return nil, fmt.Errorf("decode service account key: %w", err)
	}

	creds := &Credentials{}
	if err := json.Unmarshal(raw, creds); err != nil {
		return nil, fmt.Errorf("parse service account key: %w", err)
	}
	if creds.ClientEmail == "" || creds.PrivateKey == "" {
		return nil, fmt.Errorf("service account key is missing client_email or private_key")
	}
	creds.raw = raw
	return creds, nil
}

func decodeBase64(s string) ([]byte, error) {
	var firstErr error
	for _, enc := range encodings {
		b, err := enc.DecodeString(s)
		if err == nil {
			return b, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return nil, firstErr
}
