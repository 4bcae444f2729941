package pixabay

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/matzehuels/wallfeed/pkg/errors"
	"github.com/matzehuels/wallfeed/pkg/integrations"
	"github.com/matzehuels/wallfeed/pkg/provider"
	"github.com/matzehuels/wallfeed/pkg/wallpaper"
)

const (
	DefaultBaseURL  = "https://pixabay.com/api/"
	DefaultPageSize = 100
	DefaultMaxPage  = 500
)

// Options configures the adapter. Zero values take the package defaults.
type Options struct {
	BaseURL  string
	Key      string
	PageSize int
	MaxPage  int
	Rand     provider.Rand
}

// Adapter implements [provider.Adapter] for Pixabay.
type Adapter struct {
	desc provider.Descriptor
	rng  provider.Rand
}

// New creates a Pixabay adapter.
func New(opts Options) *Adapter {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.PageSize <= 0 {
		opts.PageSize = DefaultPageSize
	}
	if opts.MaxPage <= 0 {
		opts.MaxPage = DefaultMaxPage
	}
	if opts.Rand == nil {
		opts.Rand = provider.NewRand()
	}
	return &Adapter{
		desc: provider.Descriptor{
			Type:       wallpaper.TypeThirdParty,
			BaseURL:    opts.BaseURL,
			Credential: opts.Key,
			PageSize:   opts.PageSize,
			MaxPage:    opts.MaxPage,
		},
		rng: opts.Rand,
	}
}

// Type returns [wallpaper.TypeThirdParty].
func (a *Adapter) Type() wallpaper.Type { return wallpaper.TypeThirdParty }

// Descriptor returns the adapter configuration, credential included.
func (a *Adapter) Descriptor() provider.Descriptor { return a.desc }

// BuildRequest draws a random page. cursor is ignored.
func (a *Adapter) BuildRequest(count, cursor int) (provider.Request, error) {
	if err := provider.CheckCount(count); err != nil {
		return provider.Request{}, err
	}
	page := a.rng.IntN(a.desc.MaxPage) + 1
	target := a.desc.BaseURL +
		"?key=" + integrations.URLEncode(a.desc.Credential) +
		"&per_page=" + strconv.Itoa(a.desc.PageSize) +
		"&page=" + strconv.Itoa(page)

	return provider.Request{
		Type:  wallpaper.TypeThirdParty,
		URL:   target,
		Count: count,
		Page:  page,
	}, nil
}

// Parse samples up to count hits from one search page.
//
// Returns:
//   - [errors.ErrCodeUpstreamFormat] if body is not search JSON
//   - [errors.ErrCodeEmptyUpstream] if the page has no usable hits
func (a *Adapter) Parse(req provider.Request, body []byte, count int) ([]wallpaper.Record, error) {
	if err := provider.CheckCount(count); err != nil {
		return nil, err
	}

	var data searchResponse
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, errors.Wrap(errors.ErrCodeUpstreamFormat, err, "decode pixabay search")
	}

	hits := make([]hit, 0, len(data.Hits))
	for _, h := range data.Hits {
		if h.LargeImageURL != "" {
			hits = append(hits, h)
		}
	}
	if len(hits) == 0 {
		return nil, errors.New(errors.ErrCodeEmptyUpstream, "pixabay page %d has no hits", req.Page)
	}

	a.rng.Shuffle(len(hits), func(i, j int) { hits[i], hits[j] = hits[j], hits[i] })
	if len(hits) > count {
		hits = hits[:count]
	}

	page := max(req.Page, 1)
	records := make([]wallpaper.Record, len(hits))
	for i, h := range hits {
		title := h.Tags
		if title == "" {
			title = fmt.Sprintf("Pixabay wallpaper %d", (page-1)*a.desc.PageSize+i+1)
		}
		records[i] = wallpaper.Record{
			Title: title,
			Thumb: h.LargeImageURL,
			Full:  h.LargeImageURL,
		}
	}
	return records, nil
}

type searchResponse struct {
	Hits []hit `json:"hits"`
}

type hit struct {
	Tags          string `json:"tags"`
	LargeImageURL string `json:"largeImageURL"`
}

var _ provider.Adapter = (*Adapter)(nil)
