package integrations

import (
	"context"
	"net/http"
	"time"

	"github.com/matzehuels/wallfeed/pkg/cache"
	"github.com/matzehuels/wallfeed/pkg/errors"
	"github.com/matzehuels/wallfeed/pkg/httputil"
	"github.com/matzehuels/wallfeed/pkg/observability"
	"github.com/matzehuels/wallfeed/pkg/provider"
)

// Client provides shared HTTP functionality for all provider adapters.
// It applies default headers, enforces the fetch deadline, checks the status
// and consults the response cache for cacheable requests.
//
// Client never retries; a failed call is reported once.
type Client struct {
	fetcher *httputil.Fetcher
	cache   cache.Cache
	keyer   cache.Keyer
	ttl     time.Duration
	headers map[string]string
}

// NewClient creates a Client.
//
// Parameters:
//   - fetcher: deadline-bounded fetcher (nil uses one with the default timeout)
//   - backend: response cache (nil disables caching)
//   - ttl: lifetime of cached responses; 0 disables caching
//   - headers: applied to every request, may be nil
func NewClient(fetcher *httputil.Fetcher, backend cache.Cache, ttl time.Duration, headers map[string]string) *Client {
	if fetcher == nil {
		fetcher = httputil.NewFetcher(NewHTTPClient(), 0)
	}
	if backend == nil {
		backend = cache.NewNullCache()
	}
	return &Client{
		fetcher: fetcher,
		cache:   backend,
		keyer:   cache.NewDefaultKeyer(),
		ttl:     ttl,
		headers: headers,
	}
}

// Fetch performs the upstream call described by req and returns the body.
//
// Returns:
//   - the response body on a 2xx status
//   - [errors.ErrCodeInvalidInput] if req has no URL
//   - [errors.ErrCodeTimeout] if the deadline elapsed
//   - [errors.ErrCodeNetwork] for transport failures and non-2xx statuses
func (c *Client) Fetch(ctx context.Context, req provider.Request) ([]byte, error) {
	if !req.Remote() {
		return nil, errors.New(errors.ErrCodeInvalidInput, "request for %s has no URL", req.Type)
	}
	namespace := string(req.Type)
	if !req.Cacheable || c.ttl <= 0 {
		return c.get(ctx, req.URL, req.Headers)
	}
	return c.Cached(ctx, c.keyer.HTTPKey(namespace, req.URL), namespace, func() ([]byte, error) {
		return c.get(ctx, req.URL, req.Headers)
	})
}

// Cached returns the cached payload for key or calls fetch and stores its
// result. Cache backend failures degrade to a direct fetch.
func (c *Client) Cached(ctx context.Context, key, namespace string, fetch func() ([]byte, error)) ([]byte, error) {
	hooks := observability.Cache()
	if data, ok, err := c.cache.Get(ctx, key); err == nil && ok {
		hooks.OnCacheHit(ctx, namespace)
		return data, nil
	}
	hooks.OnCacheMiss(ctx, namespace)

	data, err := fetch()
	if err != nil {
		return nil, err
	}
	if err := c.cache.Set(ctx, key, data, c.ttl); err == nil {
		hooks.OnCacheSet(ctx, namespace, len(data))
	}
	return data, nil
}

// Invalidate drops the cached response for req, if any. Callers use it when
// a cached body fails to parse so the next call reaches the upstream again.
func (c *Client) Invalidate(ctx context.Context, req provider.Request) error {
	if !req.Cacheable || !req.Remote() {
		return nil
	}
	return c.cache.Delete(ctx, c.keyer.HTTPKey(string(req.Type), req.URL))
}

func (c *Client) get(ctx context.Context, url string, headers map[string]string) ([]byte, error) {
	merged := make(map[string]string, len(c.headers)+len(headers))
	for k, v := range c.headers {
		merged[k] = v
	}
	for k, v := range headers {
		merged[k] = v
	}

	resp, err := c.fetcher.FetchWithHeaders(ctx, url, 0, merged)
	if err != nil {
		return nil, err
	}
	if err := checkStatus(resp.StatusCode); err != nil {
		return nil, err
	}
	return resp.Body, nil
}

func checkStatus(code int) error {
	if code >= http.StatusOK && code < http.StatusMultipleChoices {
		return nil
	}
	return errors.New(errors.ErrCodeNetwork, "upstream status %d", code)
}
