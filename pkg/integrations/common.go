package integrations

import (
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultUserAgent identifies wallfeed to upstreams.
const DefaultUserAgent = "wallfeed/1.0 (+https://github.com/matzehuels/wallfeed)"

// NewHTTPClient creates the HTTP client shared by all upstream calls.
// It has no overall timeout of its own; deadlines are applied per fetch.
func NewHTTPClient() *http.Client {
	return &http.Client{
		Transport: &http.Transport{
			Proxy:               http.ProxyFromEnvironment,
			MaxIdleConnsPerHost: 4,
			IdleConnTimeout:     90 * time.Second,
			TLSHandshakeTimeout: 5 * time.Second,
		},
	}
}

// DefaultHeaders returns the headers sent with every upstream request.
// An empty userAgent selects DefaultUserAgent.
func DefaultHeaders(userAgent string) map[string]string {
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	return map[string]string{
		"User-Agent": userAgent,
		"Accept":     "application/json",
	}
}

// URLEncode percent-encodes a string for use as a single query value.
func URLEncode(s string) string { return url.QueryEscape(s) }

// JoinURL concatenates a base URL and a path without doubling slashes.
func JoinURL(base, path string) string {
	if path == "" {
		return base
	}
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(path, "/")
}
