package config

import (
	"github.com/matzehuels/wallfeed/pkg/integrations/bing"
	"github.com/matzehuels/wallfeed/pkg/integrations/imgrun"
	"github.com/matzehuels/wallfeed/pkg/integrations/pixabay"
	"github.com/matzehuels/wallfeed/pkg/integrations/upx8"
)

// ProvidersConfig configures each upstream. Omitted fields take the adapter
// package defaults.
type ProvidersConfig struct {
	Official   OfficialConfig   `toml:"official"`
	ThirdParty ThirdPartyConfig `toml:"thirdparty"`
	Upx8       Upx8Config       `toml:"upx8"`
	Imgrun     ImgrunConfig     `toml:"imgrun"`
}

// OfficialConfig configures the Bing archive provider.
type OfficialConfig struct {
	Enabled   *bool  `toml:"enabled"`
	BaseURL   string `toml:"base_url"`
	APIPath   string `toml:"api_path"`
	ImageBase string `toml:"image_base"`
	Locale    string `toml:"locale"`
	UseProxy  *bool  `toml:"use_proxy"`
	Proxy     string `toml:"proxy"`
}

// ThirdPartyConfig configures the Pixabay provider.
type ThirdPartyConfig struct {
	Enabled  *bool  `toml:"enabled"`
	BaseURL  string `toml:"base_url"`
	Key      string `toml:"key"`
	PageSize int    `toml:"page_size"`
	MaxPage  int    `toml:"max_page"`
}

// Upx8Config configures the upx8 feed.
type Upx8Config struct {
	Enabled *bool  `toml:"enabled"`
	BaseURL string `toml:"base_url"`
	APIPath string `toml:"api_path"`
}

// ImgrunConfig configures the img.run feed.
type ImgrunConfig struct {
	Enabled *bool  `toml:"enabled"`
	URL     string `toml:"url"`
}

// Finalize applies WALLFEED_PIXABAY_KEY, WALLFEED_BING_PROXY and defaults.
func (c *ProvidersConfig) Finalize() error {
	envString("PIXABAY_KEY", &c.ThirdParty.Key)
	envBool("BING_PROXY", &c.Official.UseProxy)

	if c.Official.UseProxy == nil {
		t := true
		c.Official.UseProxy = &t
	}
	if c.Official.IsEnabled() && *c.Official.UseProxy && c.Official.Proxy == "" {
		c.Official.Proxy = bing.DefaultProxy
	}

	if c.ThirdParty.PageSize < 0 || c.ThirdParty.MaxPage < 0 {
		return invalid("thirdparty page_size and max_page must not be negative")
	}
	if c.ThirdParty.Enabled != nil && *c.ThirdParty.Enabled && c.ThirdParty.Key == "" {
		return invalid("thirdparty is enabled but has no key (set WALLFEED_PIXABAY_KEY)")
	}
	if !c.Official.IsEnabled() && !c.ThirdParty.IsEnabled() && !c.Upx8.IsEnabled() && !c.Imgrun.IsEnabled() {
		return invalid("at least one provider must be enabled")
	}
	return nil
}

// IsEnabled defaults to true.
func (c *OfficialConfig) IsEnabled() bool { return boolOr(c.Enabled, true) }

// IsEnabled defaults to true when a key is configured.
func (c *ThirdPartyConfig) IsEnabled() bool { return boolOr(c.Enabled, c.Key != "") }

// IsEnabled defaults to true.
func (c *Upx8Config) IsEnabled() bool { return boolOr(c.Enabled, true) }

// IsEnabled defaults to true.
func (c *ImgrunConfig) IsEnabled() bool { return boolOr(c.Enabled, true) }

// Options converts the section into adapter options.
func (c *OfficialConfig) Options() bing.Options {
	return bing.Options{
		BaseURL:   c.BaseURL,
		APIPath:   c.APIPath,
		ImageBase: c.ImageBase,
		Locale:    c.Locale,
		UseProxy:  boolOr(c.UseProxy, true),
		Proxy:     c.Proxy,
	}
}

// Options converts the section into adapter options. Rand is left unset.
func (c *ThirdPartyConfig) Options() pixabay.Options {
	return pixabay.Options{
		BaseURL:  c.BaseURL,
		Key:      c.Key,
		PageSize: c.PageSize,
		MaxPage:  c.MaxPage,
	}
}

// Options converts the section into adapter options.
func (c *Upx8Config) Options() upx8.Options {
	return upx8.Options{BaseURL: c.BaseURL, APIPath: c.APIPath}
}

// Options converts the section into adapter options.
func (c *ImgrunConfig) Options() imgrun.Options {
	return imgrun.Options{URL: c.URL}
}
