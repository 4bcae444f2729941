package integrations

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/matzehuels/wallfeed/pkg/cache"
	"github.com/matzehuels/wallfeed/pkg/errors"
	"github.com/matzehuels/wallfeed/pkg/httputil"
	"github.com/matzehuels/wallfeed/pkg/provider"
	"github.com/matzehuels/wallfeed/pkg/wallpaper"
)

func testClient(t *testing.T, server *httptest.Server, backend cache.Cache, ttl time.Duration, headers map[string]string) *Client {
	t.Helper()
	return NewClient(httputil.NewFetcher(server.Client(), time.Second), backend, ttl, headers)
}

func TestNewClientDefaults(t *testing.T) {
	c := NewClient(nil, nil, 0, nil)
	if c.fetcher == nil {
		t.Error("NewClient() fetcher is nil")
	}
	if c.cache == nil {
		t.Error("NewClient() cache is nil")
	}
	if c.keyer == nil {
		t.Error("NewClient() keyer is nil")
	}
}

func TestClientFetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"images":[]}`))
	}))
	defer server.Close()

	c := testClient(t, server, nil, 0, nil)
	body, err := c.Fetch(context.Background(), provider.Request{Type: wallpaper.TypeOfficial, URL: server.URL})
	if err != nil {
		t.Fatalf("Fetch() error: %v", err)
	}
	if string(body) != `{"images":[]}` {
		t.Errorf("Fetch() body = %q", body)
	}
}

func TestClientFetchHeadersOverrideDefaults(t *testing.T) {
	var ua, accept string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ua = r.Header.Get("User-Agent")
		accept = r.Header.Get("Accept")
	}))
	defer server.Close()

	c := testClient(t, server, nil, 0, DefaultHeaders(""))
	_, err := c.Fetch(context.Background(), provider.Request{
		Type:    wallpaper.TypeThirdParty,
		URL:     server.URL,
		Headers: map[string]string{"User-Agent": "override"},
	})
	if err != nil {
		t.Fatalf("Fetch() error: %v", err)
	}
	if ua != "override" {
		t.Errorf("User-Agent = %q, want override", ua)
	}
	if accept != "application/json" {
		t.Errorf("Accept = %q, want application/json", accept)
	}
}

func TestClientFetchNoURL(t *testing.T) {
	c := NewClient(nil, nil, 0, nil)
	_, err := c.Fetch(context.Background(), provider.Request{Type: wallpaper.TypeUpx8})
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("Fetch() error = %v, want %s", err, errors.ErrCodeInvalidInput)
	}
}

func TestClientFetchStatus(t *testing.T) {
	for _, status := range []int{http.StatusNotFound, http.StatusTooManyRequests, http.StatusInternalServerError} {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
		}))

		c := testClient(t, server, nil, 0, nil)
		_, err := c.Fetch(context.Background(), provider.Request{Type: wallpaper.TypeOfficial, URL: server.URL})
		if !errors.Is(err, errors.ErrCodeNetwork) {
			t.Errorf("status %d: Fetch() error = %v, want %s", status, err, errors.ErrCodeNetwork)
		}
		server.Close()
	}
}

func TestClientFetchCached(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Write([]byte("payload"))
	}))
	defer server.Close()

	c := testClient(t, server, cache.NewMemoryCache(), time.Hour, nil)
	req := provider.Request{Type: wallpaper.TypeOfficial, URL: server.URL, Cacheable: true}

	for i := 0; i < 3; i++ {
		body, err := c.Fetch(context.Background(), req)
		if err != nil {
			t.Fatalf("Fetch() #%d error: %v", i, err)
		}
		if string(body) != "payload" {
			t.Errorf("Fetch() #%d body = %q", i, body)
		}
	}
	if n := calls.Load(); n != 1 {
		t.Errorf("upstream called %d times, want 1", n)
	}
}

func TestClientFetchNotCacheable(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	defer server.Close()

	c := testClient(t, server, cache.NewMemoryCache(), time.Hour, nil)
	req := provider.Request{Type: wallpaper.TypeThirdParty, URL: server.URL}
	c.Fetch(context.Background(), req)
	c.Fetch(context.Background(), req)

	if n := calls.Load(); n != 2 {
		t.Errorf("upstream called %d times, want 2", n)
	}
}

func TestClientInvalidate(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Write([]byte("payload"))
	}))
	defer server.Close()

	c := testClient(t, server, cache.NewMemoryCache(), time.Hour, nil)
	req := provider.Request{Type: wallpaper.TypeOfficial, URL: server.URL, Cacheable: true}

	c.Fetch(context.Background(), req)
	if err := c.Invalidate(context.Background(), req); err != nil {
		t.Fatalf("Invalidate() error: %v", err)
	}
	c.Fetch(context.Background(), req)
	if n := calls.Load(); n != 2 {
		t.Errorf("upstream called %d times, want 2", n)
	}

	if err := c.Invalidate(context.Background(), provider.Request{Type: wallpaper.TypeUpx8}); err != nil {
		t.Errorf("Invalidate() on local request error: %v", err)
	}
}

func TestClientCachedFetchErrorNotStored(t *testing.T) {
	backend := cache.NewMemoryCache()
	c := NewClient(nil, backend, time.Hour, nil)

	_, err := c.Cached(context.Background(), "k", "official", func() ([]byte, error) {
		return nil, errors.New(errors.ErrCodeNetwork, "boom")
	})
	if !errors.Is(err, errors.ErrCodeNetwork) {
		t.Fatalf("Cached() error = %v", err)
	}
	if _, hit, _ := backend.Get(context.Background(), "k"); hit {
		t.Error("failed fetch should not be cached")
	}
}

func TestCheckStatus(t *testing.T) {
	tests := []struct {
		code    int
		wantErr bool
	}{
		{200, false},
		{204, false},
		{301, true},
		{404, true},
		{503, true},
	}
	for _, tt := range tests {
		if err := checkStatus(tt.code); (err != nil) != tt.wantErr {
			t.Errorf("checkStatus(%d) = %v, wantErr %v", tt.code, err, tt.wantErr)
		}
	}
}

func TestJoinURL(t *testing.T) {
	tests := []struct{ base, path, want string }{
		{"https://cn.bing.com", "/HPImageArchive.aspx", "https://cn.bing.com/HPImageArchive.aspx"},
		{"https://cn.bing.com/", "HPImageArchive.aspx", "https://cn.bing.com/HPImageArchive.aspx"},
		{"https://wp.upx8.com", "", "https://wp.upx8.com"},
	}
	for _, tt := range tests {
		if got := JoinURL(tt.base, tt.path); got != tt.want {
			t.Errorf("JoinURL(%q, %q) = %q, want %q", tt.base, tt.path, got, tt.want)
		}
	}
}
