package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/wallfeed/internal/server"
	"github.com/matzehuels/wallfeed/pkg/wallpaper"
)

// upx8Only enables only the locally synthesized feed, so commands never
// touch the network.
const upx8Only = `
[providers.official]
enabled = false

[providers.imgrun]
enabled = false

[providers.upx8]
base_url = "https://feed.example"
api_path = "/api.php"
`

// clearEnv removes WALLFEED_* overrides that would leak into the config.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, kv := range os.Environ() {
		if name, _, _ := strings.Cut(kv, "="); strings.HasPrefix(name, "WALLFEED_") {
			t.Setenv(name, "")
		}
	}
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "wallfeed.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

// run executes the root command with args and returns its stdout.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestFetchJSON(t *testing.T) {
	clearEnv(t)
	cfg := writeConfig(t, upx8Only)

	out, err := run(t, "fetch", "--config", cfg, "--json", "-n", "3")
	if err != nil {
		t.Fatalf("fetch error: %v", err)
	}

	var body server.WallpapersResponse
	if err := json.Unmarshal([]byte(out), &body); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	if !body.Success || len(body.Wallpapers) != 3 {
		t.Fatalf("body = %+v", body)
	}
	if body.CurrentAPI == nil || *body.CurrentAPI != wallpaper.TypeUpx8 {
		t.Errorf("currentApi = %v", body.CurrentAPI)
	}
	if want := "https://feed.example/api.php/0/0?random=1"; body.Wallpapers[0].Full != want {
		t.Errorf("first URL = %q, want %q", body.Wallpapers[0].Full, want)
	}
}

func TestFetchTable(t *testing.T) {
	clearEnv(t)
	cfg := writeConfig(t, upx8Only)

	out, err := run(t, "fetch", "--config", cfg, "-n", "2")
	if err != nil {
		t.Fatalf("fetch error: %v", err)
	}
	for _, want := range []string{"UHD wallpaper 1", "UHD wallpaper 2", "upx8", "2 wallpapers"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestFetchAll(t *testing.T) {
	clearEnv(t)
	cfg := writeConfig(t, upx8Only)

	out, err := run(t, "fetch", "--config", cfg, "--all", "--json", "-n", "1")
	if err != nil {
		t.Fatalf("fetch --all error: %v", err)
	}
	var batches map[wallpaper.Type][]wallpaper.Record
	if err := json.Unmarshal([]byte(out), &batches); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	if len(batches) != 1 || len(batches[wallpaper.TypeUpx8]) != 1 {
		t.Errorf("batches = %v", batches)
	}
}

func TestProvidersJSON(t *testing.T) {
	clearEnv(t)
	cfg := writeConfig(t, upx8Only+`
[providers.thirdparty]
enabled = true
key = "secret-key"
`)

	out, err := run(t, "providers", "--config", cfg, "--json")
	if err != nil {
		t.Fatalf("providers error: %v", err)
	}
	if strings.Contains(out, "secret-key") {
		t.Error("providers output leaks the credential")
	}

	var infos []providerInfo
	if err := json.Unmarshal([]byte(out), &infos); err != nil {
		t.Fatalf("decode: %v", err)
	}
	enabled := map[wallpaper.Type]bool{}
	for _, p := range infos {
		enabled[p.Descriptor.Type] = p.Enabled
	}
	want := map[wallpaper.Type]bool{
		wallpaper.TypeUpx8:       true,
		wallpaper.TypeOfficial:   false,
		wallpaper.TypeThirdParty: true,
		wallpaper.TypeImgrunRand: false,
	}
	for typ, on := range want {
		if enabled[typ] != on {
			t.Errorf("%s enabled = %v, want %v", typ, enabled[typ], on)
		}
	}
}

func TestInvalidConfig(t *testing.T) {
	clearEnv(t)
	cfg := writeConfig(t, `[fetch]
timeout = "soon"
`)
	if _, err := run(t, "providers", "--config", cfg); err == nil {
		t.Error("expected an error for an invalid timeout")
	}
}

func TestCompletion(t *testing.T) {
	out, err := run(t, "completion", "bash")
	if err != nil {
		t.Fatalf("completion error: %v", err)
	}
	if !strings.Contains(out, "wallfeed") {
		t.Error("bash completion should mention the command name")
	}
}

func TestVersion(t *testing.T) {
	out, err := run(t, "--version")
	if err != nil {
		t.Fatalf("--version error: %v", err)
	}
	if !strings.Contains(out, "wallfeed version") {
		t.Errorf("output = %q", out)
	}
}

func TestFetchWarnsAboutUnavailableProvider(t *testing.T) {
	clearEnv(t)
	cfg := writeConfig(t, upx8Only)

	var logs bytes.Buffer
	c := New(&logs, LogInfo)
	root := c.RootCommand()
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	root.SetArgs([]string{"fetch", "--config", cfg, "--json", "-n", "1"})
	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("fetch error: %v", err)
	}

	out := logs.String()
	for _, want := range []string{"provider unavailable", "thirdparty", "WALLFEED_PIXABAY_KEY"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
}
