package provider

import (
	"github.com/matzehuels/wallfeed/pkg/errors"
	"github.com/matzehuels/wallfeed/pkg/wallpaper"
)

// Adapter is one upstream wallpaper source.
type Adapter interface {
	// Type returns the provider tag this adapter serves.
	Type() wallpaper.Type

	// Descriptor returns the adapter's immutable configuration.
	Descriptor() Descriptor

	// BuildRequest describes the upstream call for count records starting at
	// cursor. It has no side effects; cursors are advanced by the caller.
	BuildRequest(count, cursor int) (Request, error)

	// Parse converts an upstream body into at most count records.
	// body is nil when req.URL is empty.
	Parse(req Request, body []byte, count int) ([]wallpaper.Record, error)
}

// Request is an adapter's description of a single upstream call.
type Request struct {
	Type    wallpaper.Type
	URL     string // empty when records are synthesized locally
	Headers map[string]string

	Count  int
	Cursor int
	Page   int // page drawn for page-sampled upstreams, 0 otherwise

	// Cacheable marks responses that are stable for a given URL.
	Cacheable bool
}

// Remote reports whether the request needs a network fetch.
func (r Request) Remote() bool { return r.URL != "" }

// Descriptor is the static configuration of a provider.
type Descriptor struct {
	Type       wallpaper.Type `json:"type"`
	BaseURL    string         `json:"base_url"`
	APIPath    string         `json:"api_path,omitempty"`
	ImageBase  string         `json:"image_base,omitempty"`
	Credential string         `json:"credential,omitempty"`
	PageSize   int            `json:"page_size,omitempty"`
	MaxPage    int            `json:"max_page,omitempty"`
	Locale     string         `json:"locale,omitempty"`
	Proxy      string         `json:"proxy,omitempty"`

	// HasCursor is set for providers that page through a sequence.
	HasCursor     bool `json:"has_cursor"`
	InitialCursor int  `json:"initial_cursor"`
}

// Redacted returns a copy safe to show to callers.
func (d Descriptor) Redacted() Descriptor {
	if d.Credential != "" {
		d.Credential = "REDACTED"
	}
	return d
}

// CheckCount rejects non-positive batch sizes. Adapters take no upper
// bound; the runner clamps counts before they get here.
func CheckCount(count int) error {
	return errors.ValidateCount(count, 0)
}
