package cache

import (
	"context"
	"strings"
	"testing"
	"time"

	"go.uber.org/goleak"

	"github.com/matzehuels/wallfeed/pkg/errors"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	// Get always returns miss
	data, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit {
		t.Error("NullCache.Get should always return miss")
	}
	if data != nil {
		t.Error("NullCache.Get should return nil data")
	}

	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}
	if _, hit, _ = c.Get(ctx, "key"); hit {
		t.Error("NullCache should not store data")
	}
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

// exerciseCache runs the shared Get/Set/Delete contract against c.
func exerciseCache(t *testing.T, c Cache) {
	t.Helper()
	ctx := context.Background()

	if _, hit, err := c.Get(ctx, "missing"); err != nil || hit {
		t.Fatalf("Get(missing) = hit %v, err %v; want miss", hit, err)
	}

	if err := c.Set(ctx, "k", []byte(`{"images":[]}`), time.Hour); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	data, hit, err := c.Get(ctx, "k")
	if err != nil || !hit {
		t.Fatalf("Get(k) = hit %v, err %v; want hit", hit, err)
	}
	if string(data) != `{"images":[]}` {
		t.Errorf("Get(k) = %q", data)
	}

	if err := c.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("Get after Delete should miss")
	}
	if err := c.Delete(ctx, "never-set"); err != nil {
		t.Errorf("Delete(never-set) error: %v", err)
	}
}

func TestMemoryCache(t *testing.T) {
	c := NewMemoryCache()
	defer c.Close()
	exerciseCache(t, c)
}

func TestMemoryCacheCopiesData(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()
	defer c.Close()

	buf := []byte("abc")
	c.Set(ctx, "k", buf, 0)
	buf[0] = 'x'

	got, _, _ := c.Get(ctx, "k")
	if string(got) != "abc" {
		t.Errorf("stored value mutated through caller slice: %q", got)
	}
}

func TestMemoryCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()
	defer c.Close()

	c.Set(ctx, "k", []byte("v"), 10*time.Millisecond)
	time.Sleep(30 * time.Millisecond)
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("expired entry should miss")
	}
}

func TestMemoryCacheSetPurgesExpired(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()
	defer c.Close()

	c.Set(ctx, "old", []byte("v"), 10*time.Millisecond)
	time.Sleep(30 * time.Millisecond)
	c.Set(ctx, "new", []byte("v"), 0)
	if n := c.store.ItemCount(); n != 1 {
		t.Errorf("ItemCount = %d after Set, want 1", n)
	}
}

func TestMemoryCacheNoBackgroundGoroutine(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	c := NewMemoryCache()
	c.Set(context.Background(), "k", []byte("v"), time.Minute)
	if err := c.Close(); err != nil {
		t.Fatalf("Close error: %v", err)
	}
}

func TestMemoryCacheClear(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()
	defer c.Close()

	c.Set(ctx, "a", []byte("1"), 0)
	c.Set(ctx, "b", []byte("2"), 0)
	n, err := c.Clear(ctx)
	if err != nil {
		t.Fatalf("Clear error: %v", err)
	}
	if n != 2 {
		t.Errorf("Clear = %d, want 2", n)
	}
	if _, hit, _ := c.Get(ctx, "a"); hit {
		t.Error("Get after Clear should miss")
	}
}

func TestFileCache(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}
	exerciseCache(t, c)
}

func TestFileCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}

	c.Set(ctx, "k", []byte("v"), time.Nanosecond)
	time.Sleep(5 * time.Millisecond)
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("expired entry should miss")
	}
}

func TestFileCacheClear(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}

	for _, k := range []string{"a", "b", "c"} {
		if err := c.Set(ctx, k, []byte(k), 0); err != nil {
			t.Fatalf("Set(%s) error: %v", k, err)
		}
	}
	n, err := c.Clear(ctx)
	if err != nil {
		t.Fatalf("Clear error: %v", err)
	}
	if n != 3 {
		t.Errorf("Clear = %d, want 3", n)
	}
	if _, hit, _ := c.Get(ctx, "b"); hit {
		t.Error("Get after Clear should miss")
	}
}

func TestRedisCacheKeyPrefix(t *testing.T) {
	c, err := NewRedisCache(RedisOptions{Addr: "127.0.0.1:1"})
	if err != nil {
		t.Fatalf("NewRedisCache error: %v", err)
	}
	defer c.Close()

	if got := c.key("http:bing:abc"); got != "wallfeed:http:bing:abc" {
		t.Errorf("key() = %q", got)
	}

	custom, _ := NewRedisCache(RedisOptions{Addr: "127.0.0.1:1", Prefix: "edge-1:"})
	defer custom.Close()
	if got := custom.key("x"); got != "edge-1:x" {
		t.Errorf("key() = %q", got)
	}
}

func TestRedisCacheUnreachable(t *testing.T) {
	c, err := NewRedisCache(RedisOptions{Addr: "127.0.0.1:1", DialTimeout: 100 * time.Millisecond})
	if err != nil {
		t.Fatalf("NewRedisCache error: %v", err)
	}
	defer c.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if _, _, err := c.Get(ctx, "k"); !errors.Is(err, errors.ErrCodeNetwork) {
		t.Errorf("Get error = %v, want %s", err, errors.ErrCodeNetwork)
	}
	if err := c.Set(ctx, "k", []byte("v"), time.Minute); !errors.Is(err, errors.ErrCodeNetwork) {
		t.Errorf("Set error = %v, want %s", err, errors.ErrCodeNetwork)
	}
}

func TestRedisCacheRequiresAddr(t *testing.T) {
	if _, err := NewRedisCache(RedisOptions{}); !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("NewRedisCache() error = %v, want %s", err, errors.ErrCodeInvalidConfig)
	}
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name    string
		opts    Options
		want    string
		wantErr bool
	}{
		{"empty", Options{}, "*cache.NullCache", false},
		{"none", Options{Backend: BackendNone}, "*cache.NullCache", false},
		{"memory", Options{Backend: BackendMemory}, "*cache.MemoryCache", false},
		{"file", Options{Backend: BackendFile, Dir: dir}, "*cache.FileCache", false},
		{"file without dir", Options{Backend: BackendFile}, "", true},
		{"redis", Options{Backend: BackendRedis, Redis: RedisOptions{Addr: "127.0.0.1:1"}}, "*cache.RedisCache", false},
		{"unknown", Options{Backend: "memcached"}, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := Open(tt.opts)
			if tt.wantErr {
				if !errors.Is(err, errors.ErrCodeInvalidConfig) {
					t.Fatalf("Open() error = %v, want %s", err, errors.ErrCodeInvalidConfig)
				}
				return
			}
			if err != nil {
				t.Fatalf("Open() error: %v", err)
			}
			defer c.Close()
			if got := typeName(c); got != tt.want {
				t.Errorf("Open() = %s, want %s", got, tt.want)
			}
		})
	}
}

func typeName(c Cache) string {
	switch c.(type) {
	case *NullCache:
		return "*cache.NullCache"
	case *MemoryCache:
		return "*cache.MemoryCache"
	case *FileCache:
		return "*cache.FileCache"
	case *RedisCache:
		return "*cache.RedisCache"
	}
	return "unknown"
}

func TestHash(t *testing.T) {
	h1 := Hash([]byte("hello"))
	if h1 != Hash([]byte("hello")) {
		t.Error("Hash should be deterministic")
	}
	if h1 == Hash([]byte("world")) {
		t.Error("Different inputs should produce different hashes")
	}
	if len(h1) != 64 {
		t.Errorf("Hash length should be 64, got %d", len(h1))
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()

	key := k.HTTPKey("bing", "https://cn.bing.com/HPImageArchive.aspx?idx=0")
	if !strings.HasPrefix(key, "http:bing:") {
		t.Errorf("HTTPKey unexpected prefix: %s", key)
	}
	if len(key) != len("http:bing:")+64 {
		t.Errorf("HTTPKey should end in a full hash: %s", key)
	}
	if key == k.HTTPKey("bing", "https://cn.bing.com/HPImageArchive.aspx?idx=8") {
		t.Error("Different URLs should produce different keys")
	}
	if key == k.HTTPKey("pixabay", "https://cn.bing.com/HPImageArchive.aspx?idx=0") {
		t.Error("Different namespaces should produce different keys")
	}
}
