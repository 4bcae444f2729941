package imgrun

import (
	"strconv"
	"time"

	"github.com/matzehuels/wallfeed/pkg/provider"
	"github.com/matzehuels/wallfeed/pkg/wallpaper"
)

const (
	DefaultURL   = "https://bing.img.run/rand_uhd.php"
	DefaultTitle = "Bing random UHD wallpaper"
)

// Options configures the adapter. Rand and Now default to real sources.
type Options struct {
	URL  string
	Rand provider.Rand
	Now  func() time.Time
}

// Adapter implements [provider.Adapter] for the img.run random feed.
type Adapter struct {
	desc provider.Descriptor
	rng  provider.Rand
	now  func() time.Time
}

// New creates an img.run adapter.
func New(opts Options) *Adapter {
	if opts.URL == "" {
		opts.URL = DefaultURL
	}
	if opts.Rand == nil {
		opts.Rand = provider.NewRand()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Adapter{
		desc: provider.Descriptor{Type: wallpaper.TypeImgrunRand, BaseURL: opts.URL},
		rng:  opts.Rand,
		now:  opts.Now,
	}
}

// Type returns [wallpaper.TypeImgrunRand].
func (a *Adapter) Type() wallpaper.Type { return wallpaper.TypeImgrunRand }

// Descriptor returns the adapter configuration.
func (a *Adapter) Descriptor() provider.Descriptor { return a.desc }

// BuildRequest returns a local request; nothing is fetched.
func (a *Adapter) BuildRequest(count, cursor int) (provider.Request, error) {
	if err := provider.CheckCount(count); err != nil {
		return provider.Request{}, err
	}
	return provider.Request{Type: wallpaper.TypeImgrunRand, Count: count}, nil
}

// Parse synthesizes count records with fresh nonces. body is ignored.
func (a *Adapter) Parse(req provider.Request, body []byte, count int) ([]wallpaper.Record, error) {
	if err := provider.CheckCount(count); err != nil {
		return nil, err
	}
	records := make([]wallpaper.Record, count)
	for i := range records {
		u := a.desc.BaseURL + "?t=" + a.nonce()
		records[i] = wallpaper.Record{Title: DefaultTitle, Thumb: u, Full: u}
	}
	return records, nil
}

func (a *Adapter) nonce() string {
	return strconv.FormatInt(a.now().UnixMilli(), 10) + "_" + strconv.FormatUint(a.rng.Uint64(), 16)
}

var _ provider.Adapter = (*Adapter)(nil)
