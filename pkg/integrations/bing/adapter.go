package bing

import (
	"encoding/json"
	"strconv"

	"github.com/matzehuels/wallfeed/pkg/errors"
	"github.com/matzehuels/wallfeed/pkg/integrations"
	"github.com/matzehuels/wallfeed/pkg/provider"
	"github.com/matzehuels/wallfeed/pkg/wallpaper"
)

const (
	DefaultBaseURL   = "https://cn.bing.com"
	DefaultAPIPath   = "/HPImageArchive.aspx"
	DefaultImageBase = "https://cn.bing.com"
	DefaultLocale    = "zh-CN"
	DefaultProxy     = "https://api.allorigins.win/raw?url="

	// DefaultTitle is used when an image has neither title nor copyright.
	DefaultTitle = "Bing wallpaper"

	uhdSuffix = "_UHD.jpg"
)

// Options configures the adapter. Empty fields take the package defaults.
type Options struct {
	BaseURL   string
	APIPath   string
	ImageBase string
	Locale    string
	UseProxy  bool
	Proxy     string
}

// Adapter implements [provider.Adapter] for the Bing image archive.
type Adapter struct {
	desc     provider.Descriptor
	useProxy bool
}

// New creates a Bing adapter.
func New(opts Options) *Adapter {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.APIPath == "" {
		opts.APIPath = DefaultAPIPath
	}
	if opts.ImageBase == "" {
		opts.ImageBase = DefaultImageBase
	}
	if opts.Locale == "" {
		opts.Locale = DefaultLocale
	}
	if opts.UseProxy && opts.Proxy == "" {
		opts.Proxy = DefaultProxy
	}
	d := provider.Descriptor{
		Type:          wallpaper.TypeOfficial,
		BaseURL:       opts.BaseURL,
		APIPath:       opts.APIPath,
		ImageBase:     opts.ImageBase,
		Locale:        opts.Locale,
		HasCursor:     true,
		InitialCursor: 0,
	}
	if opts.UseProxy {
		d.Proxy = opts.Proxy
	}
	return &Adapter{desc: d, useProxy: opts.UseProxy}
}

// Type returns [wallpaper.TypeOfficial].
func (a *Adapter) Type() wallpaper.Type { return wallpaper.TypeOfficial }

// Descriptor returns the adapter configuration.
func (a *Adapter) Descriptor() provider.Descriptor { return a.desc }

// BuildRequest returns the archive request for count images at offset cursor.
func (a *Adapter) BuildRequest(count, cursor int) (provider.Request, error) {
	if err := provider.CheckCount(count); err != nil {
		return provider.Request{}, err
	}
	if cursor < 0 {
		return provider.Request{}, errors.New(errors.ErrCodeInvalidInput, "cursor must not be negative, got %d", cursor)
	}

	target := integrations.JoinURL(a.desc.BaseURL, a.desc.APIPath) +
		"?format=js&idx=" + strconv.Itoa(cursor) +
		"&n=" + strconv.Itoa(count) +
		"&mkt=" + integrations.URLEncode(a.desc.Locale)
	if a.useProxy {
		target = a.desc.Proxy + integrations.URLEncode(target)
	}

	return provider.Request{
		Type:      wallpaper.TypeOfficial,
		URL:       target,
		Count:     count,
		Cursor:    cursor,
		Cacheable: true,
	}, nil
}

// Parse decodes an archive response into at most count records.
//
// Returns:
//   - [errors.ErrCodeUpstreamFormat] if body is not archive JSON
//   - [errors.ErrCodeEmptyUpstream] if no image carries both url and urlbase
func (a *Adapter) Parse(req provider.Request, body []byte, count int) ([]wallpaper.Record, error) {
	if err := provider.CheckCount(count); err != nil {
		return nil, err
	}

	var data archiveResponse
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, errors.Wrap(errors.ErrCodeUpstreamFormat, err, "decode bing archive")
	}

	records := make([]wallpaper.Record, 0, min(count, len(data.Images)))
	for _, img := range data.Images {
		if len(records) == count {
			break
		}
		if img.URL == "" || img.URLBase == "" {
			continue
		}
		records = append(records, wallpaper.Record{
			Title: titleOf(img),
			Date:  wallpaper.FormatDate(img.EndDate),
			Thumb: a.desc.ImageBase + img.URL,
			Full:  a.desc.ImageBase + img.URLBase + uhdSuffix,
		})
	}
	if len(records) == 0 {
		return nil, errors.New(errors.ErrCodeEmptyUpstream, "bing archive returned no usable images")
	}
	return records, nil
}

func titleOf(img archiveImage) string {
	switch {
	case img.Title != "":
		return img.Title
	case img.Copyright != "":
		return img.Copyright
	default:
		return DefaultTitle
	}
}

type archiveResponse struct {
	Images []archiveImage `json:"images"`
}

type archiveImage struct {
	Title     string `json:"title"`
	Copyright string `json:"copyright"`
	EndDate   string `json:"enddate"`
	URL       string `json:"url"`
	URLBase   string `json:"urlbase"`
}

var _ provider.Adapter = (*Adapter)(nil)
