// Package providers lists the built-in wallpaper providers and assembles a
// registry from configuration.
package providers

import (
	"github.com/matzehuels/wallfeed/pkg/config"
	"github.com/matzehuels/wallfeed/pkg/integrations/bing"
	"github.com/matzehuels/wallfeed/pkg/integrations/imgrun"
	"github.com/matzehuels/wallfeed/pkg/integrations/pixabay"
	"github.com/matzehuels/wallfeed/pkg/integrations/upx8"
	"github.com/matzehuels/wallfeed/pkg/provider"
	"github.com/matzehuels/wallfeed/pkg/wallpaper"
)

// Provider describes one built-in upstream.
type Provider struct {
	Type    wallpaper.Type
	Summary string
	Enabled func(cfg *config.ProvidersConfig) bool
	New     func(cfg *config.ProvidersConfig, rng provider.Rand) provider.Adapter

	// Missing reports why a provider that was not explicitly disabled
	// cannot be registered. Nil means the provider has no requirements.
	Missing func(cfg *config.ProvidersConfig) string
}

// All lists the built-in providers in selection order.
var All = []*Provider{
	{
		Type:    wallpaper.TypeUpx8,
		Summary: "Numbered random UHD feed from wp.upx8.com",
		Enabled: func(cfg *config.ProvidersConfig) bool { return cfg.Upx8.IsEnabled() },
		New: func(cfg *config.ProvidersConfig, _ provider.Rand) provider.Adapter {
			return upx8.New(cfg.Upx8.Options())
		},
	},
	{
		Type:    wallpaper.TypeOfficial,
		Summary: "Bing daily image archive",
		Enabled: func(cfg *config.ProvidersConfig) bool { return cfg.Official.IsEnabled() },
		New: func(cfg *config.ProvidersConfig, _ provider.Rand) provider.Adapter {
			return bing.New(cfg.Official.Options())
		},
	},
	{
		Type:    wallpaper.TypeThirdParty,
		Summary: "Pixabay search, sampled from a random result page",
		Enabled: func(cfg *config.ProvidersConfig) bool { return cfg.ThirdParty.IsEnabled() },
		New: func(cfg *config.ProvidersConfig, rng provider.Rand) provider.Adapter {
			opts := cfg.ThirdParty.Options()
			opts.Rand = rng
			return pixabay.New(opts)
		},
		Missing: func(cfg *config.ProvidersConfig) string {
			if cfg.ThirdParty.Enabled == nil && cfg.ThirdParty.Key == "" {
				return "no API key (set WALLFEED_PIXABAY_KEY)"
			}
			return ""
		},
	},
	{
		Type:    wallpaper.TypeImgrunRand,
		Summary: "Random Bing UHD images from bing.img.run",
		Enabled: func(cfg *config.ProvidersConfig) bool { return cfg.Imgrun.IsEnabled() },
		New: func(cfg *config.ProvidersConfig, rng provider.Rand) provider.Adapter {
			opts := cfg.Imgrun.Options()
			opts.Rand = rng
			return imgrun.New(opts)
		},
	},
}

// Find returns the built-in provider with the given tag, or nil.
func Find(name string) *Provider {
	t, err := wallpaper.ParseType(name)
	if err != nil {
		return nil
	}
	for _, p := range All {
		if p.Type == t {
			return p
		}
	}
	return nil
}

// Build creates a registry holding every enabled provider. A nil rng uses a
// fresh OS-seeded source.
func Build(cfg *config.ProvidersConfig, rng provider.Rand) (*provider.Registry, error) {
	if rng == nil {
		rng = provider.NewRand()
	}
	var adapters []provider.Adapter
	for _, p := range All {
		if p.Enabled(cfg) {
			adapters = append(adapters, p.New(cfg, rng))
		}
	}
	return provider.NewRegistry(adapters...)
}

// Unavailable is a built-in provider left out of the registry because its
// configuration is incomplete.
type Unavailable struct {
	Type   wallpaper.Type
	Reason string
}

// Check lists the built-in providers that are off only because of missing
// configuration. Providers disabled on purpose are not reported.
func Check(cfg *config.ProvidersConfig) []Unavailable {
	var out []Unavailable
	for _, p := range All {
		if p.Missing == nil || p.Enabled(cfg) {
			continue
		}
		if reason := p.Missing(cfg); reason != "" {
			out = append(out, Unavailable{Type: p.Type, Reason: reason})
		}
	}
	return out
}
