package pipeline

import (
	"github.com/charmbracelet/log"

	"github.com/matzehuels/wallfeed/pkg/provider"
	"github.com/matzehuels/wallfeed/pkg/wallpaper"
)

const (
	// DefaultCount is the batch size used when a caller asks for none.
	DefaultCount = 8

	// DefaultMaxCount caps a single batch.
	DefaultMaxCount = 100
)

// Options configures a Runner. Zero values select defaults.
type Options struct {
	DefaultCount int
	MaxCount     int
	Rand         provider.Rand
	Logger       *log.Logger
}

func (o *Options) setDefaults() {
	if o.DefaultCount <= 0 {
		o.DefaultCount = DefaultCount
	}
	if o.MaxCount <= 0 {
		o.MaxCount = DefaultMaxCount
	}
	if o.DefaultCount > o.MaxCount {
		o.DefaultCount = o.MaxCount
	}
	if o.Rand == nil {
		o.Rand = provider.NewRand()
	}
	if o.Logger == nil {
		o.Logger = log.Default()
	}
}

// Result is the outcome of one ResolveAndFetch call.
type Result struct {
	// Wallpapers holds only the records fetched by this call. Never nil.
	Wallpapers []wallpaper.Record

	// Provider is the sticky provider after the call, empty if none has
	// been selected yet.
	Provider wallpaper.Type

	// Rejected is set when another fetch was already in flight.
	Rejected bool

	// Err is the swallowed upstream failure, for diagnostics only.
	Err error
}
