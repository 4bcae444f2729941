// Package httputil provides the deadline-bounded fetch primitive used by all
// upstream clients.
//
// # Overview
//
// [Fetcher] issues a single HTTP GET and enforces a deadline on the whole
// exchange, body included. When the deadline fires first the request is
// cancelled and the returned error carries [errors.ErrCodeTimeout]; transport
// failures carry [errors.ErrCodeNetwork]. There is no retry: a failed fetch is
// reported once and the caller decides what to do.
//
// Usage:
//
//	f := httputil.NewFetcher(nil, 8*time.Second)
//	resp, err := f.Fetch(ctx, "https://cn.bing.com/HPImageArchive.aspx?format=js&n=8", 0)
//	if errors.Is(err, errors.ErrCodeTimeout) {
//	    // upstream too slow
//	}
//
// # Configuration
//
//   - Default timeout: 8 seconds ([DefaultTimeout]), overridable per call
//   - Body cap: 8 MiB ([DefaultMaxBodySize])
//
// Every call reports to [observability.HTTP] so request counts and latencies
// show up in metrics without the fetcher knowing about Prometheus.
//
// [errors.ErrCodeTimeout]: github.com/matzehuels/wallfeed/pkg/errors.ErrCodeTimeout
// [errors.ErrCodeNetwork]: github.com/matzehuels/wallfeed/pkg/errors.ErrCodeNetwork
// [observability.HTTP]: github.com/matzehuels/wallfeed/pkg/observability.HTTP
package httputil
