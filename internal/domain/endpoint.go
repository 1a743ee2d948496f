package domain

import (
	"net/url"
	"strings"
)

// BackendEndpoint is the configured merchant backend. It is immutable once
// built and shared read-only by every request.
type BackendEndpoint struct {
	baseURL string
	apiKey  string
}

// NewBackendEndpoint normalizes rawURL so that it never ends in '/'.
func NewBackendEndpoint(rawURL, apiKey string) (BackendEndpoint, error) {
	trimmed := strings.TrimRight(strings.TrimSpace(rawURL), "/")

	u, err := url.Parse(trimmed)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return BackendEndpoint{}, NewInvalidEndpointError(rawURL)
	}

	return BackendEndpoint{
		baseURL: trimmed,
		apiKey:  apiKey,
	}, nil
}

func (e BackendEndpoint) BaseURL() string {
	return e.baseURL
}

func (e BackendEndpoint) APIKey() string {
	return e.apiKey
}
