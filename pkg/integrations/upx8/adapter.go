package upx8

import (
	"strconv"

	"github.com/matzehuels/wallfeed/pkg/errors"
	"github.com/matzehuels/wallfeed/pkg/integrations"
	"github.com/matzehuels/wallfeed/pkg/provider"
	"github.com/matzehuels/wallfeed/pkg/wallpaper"
)

const (
	DefaultBaseURL = "https://wp.upx8.com"
	DefaultAPIPath = "/api.php"

	// InitialCursor is the first image number handed out.
	InitialCursor = 1
)

// Options configures the adapter.
type Options struct {
	BaseURL string
	APIPath string
}

// Adapter implements [provider.Adapter] for the upx8 feed.
type Adapter struct {
	desc   provider.Descriptor
	prefix string
}

// New creates an upx8 adapter.
func New(opts Options) *Adapter {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.APIPath == "" {
		opts.APIPath = DefaultAPIPath
	}
	return &Adapter{
		desc: provider.Descriptor{
			Type:          wallpaper.TypeUpx8,
			BaseURL:       opts.BaseURL,
			APIPath:       opts.APIPath,
			HasCursor:     true,
			InitialCursor: InitialCursor,
		},
		prefix: integrations.JoinURL(opts.BaseURL, opts.APIPath) + "/0/0?random=",
	}
}

// Type returns [wallpaper.TypeUpx8].
func (a *Adapter) Type() wallpaper.Type { return wallpaper.TypeUpx8 }

// Descriptor returns the adapter configuration.
func (a *Adapter) Descriptor() provider.Descriptor { return a.desc }

// BuildRequest returns a local request; nothing is fetched.
func (a *Adapter) BuildRequest(count, cursor int) (provider.Request, error) {
	if err := provider.CheckCount(count); err != nil {
		return provider.Request{}, err
	}
	if cursor < InitialCursor {
		return provider.Request{}, errors.New(errors.ErrCodeInvalidInput, "cursor must be at least %d, got %d", InitialCursor, cursor)
	}
	return provider.Request{Type: wallpaper.TypeUpx8, Count: count, Cursor: cursor}, nil
}

// Parse synthesizes count records numbered from req.Cursor. body is ignored.
func (a *Adapter) Parse(req provider.Request, body []byte, count int) ([]wallpaper.Record, error) {
	if err := provider.CheckCount(count); err != nil {
		return nil, err
	}
	records := make([]wallpaper.Record, count)
	for i := range records {
		n := strconv.Itoa(req.Cursor + i)
		u := a.prefix + n
		records[i] = wallpaper.Record{
			Title: "UHD wallpaper " + n,
			Thumb: u,
			Full:  u,
		}
	}
	return records, nil
}

var _ provider.Adapter = (*Adapter)(nil)
