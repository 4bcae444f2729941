package providers

import (
	"testing"

	"github.com/matzehuels/wallfeed/pkg/config"
	"github.com/matzehuels/wallfeed/pkg/provider"
	"github.com/matzehuels/wallfeed/pkg/wallpaper"
)

func TestAllCoversEveryType(t *testing.T) {
	if len(All) != len(wallpaper.AllTypes) {
		t.Fatalf("All has %d providers, want %d", len(All), len(wallpaper.AllTypes))
	}
	for i, typ := range wallpaper.AllTypes {
		if All[i].Type != typ {
			t.Errorf("All[%d] = %s, want %s", i, All[i].Type, typ)
		}
		if All[i].Summary == "" {
			t.Errorf("%s has no summary", typ)
		}
	}
}

func TestFind(t *testing.T) {
	if p := Find("official"); p == nil || p.Type != wallpaper.TypeOfficial {
		t.Errorf("Find(official) = %v", p)
	}
	if p := Find(" upx8 "); p == nil {
		t.Error("Find should trim whitespace")
	}
	if p := Find("flickr"); p != nil {
		t.Errorf("Find(flickr) = %v, want nil", p)
	}
}

func TestBuildDefaults(t *testing.T) {
	t.Setenv("WALLFEED_PIXABAY_KEY", "")
	cfg := &config.ProvidersConfig{}
	if err := cfg.Finalize(); err != nil {
		t.Fatalf("Finalize() error: %v", err)
	}

	reg, err := Build(cfg, provider.NewSeededRand(1))
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	want := []wallpaper.Type{wallpaper.TypeUpx8, wallpaper.TypeOfficial, wallpaper.TypeImgrunRand}
	got := reg.Types()
	if len(got) != len(want) {
		t.Fatalf("Types() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Types()[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestBuildWithKey(t *testing.T) {
	cfg := &config.ProvidersConfig{ThirdParty: config.ThirdPartyConfig{Key: "k", MaxPage: 3}}
	reg, err := Build(cfg, nil)
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	a, ok := reg.Get(wallpaper.TypeThirdParty)
	if !ok {
		t.Fatal("thirdparty not registered despite key")
	}
	if d := a.Descriptor(); d.MaxPage != 3 || d.Credential != "k" {
		t.Errorf("Descriptor = %+v", d)
	}
	for _, d := range reg.Descriptors() {
		if d.Credential == "k" {
			t.Error("Descriptors() leaked the key")
		}
	}
}

func TestBuildRespectsDisabled(t *testing.T) {
	off := false
	cfg := &config.ProvidersConfig{
		Official: config.OfficialConfig{Enabled: &off},
		Imgrun:   config.ImgrunConfig{Enabled: &off},
	}
	reg, err := Build(cfg, nil)
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	if reg.Len() != 1 || !reg.Has(wallpaper.TypeUpx8) {
		t.Errorf("Types() = %v, want only upx8", reg.Types())
	}
}

func TestCheck(t *testing.T) {
	off := false
	tests := []struct {
		name string
		cfg  config.ProvidersConfig
		want []wallpaper.Type
	}{
		{"no key", config.ProvidersConfig{}, []wallpaper.Type{wallpaper.TypeThirdParty}},
		{"with key", config.ProvidersConfig{ThirdParty: config.ThirdPartyConfig{Key: "k"}}, nil},
		{"disabled on purpose", config.ProvidersConfig{ThirdParty: config.ThirdPartyConfig{Enabled: &off}}, nil},
		{"others disabled", config.ProvidersConfig{Official: config.OfficialConfig{Enabled: &off}}, []wallpaper.Type{wallpaper.TypeThirdParty}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Check(&tt.cfg)
			if len(got) != len(tt.want) {
				t.Fatalf("Check() = %+v, want %v", got, tt.want)
			}
			for i := range tt.want {
				if got[i].Type != tt.want[i] {
					t.Errorf("Check()[%d] = %s, want %s", i, got[i].Type, tt.want[i])
				}
				if got[i].Reason == "" {
					t.Errorf("Check()[%d] has no reason", i)
				}
			}
		})
	}
}
