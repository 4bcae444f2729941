package httputil

import (
	"context"
	stderrors "errors"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/matzehuels/wallfeed/pkg/errors"
	"github.com/matzehuels/wallfeed/pkg/observability"
)

const (
	// DefaultTimeout bounds a single upstream GET, body included.
	DefaultTimeout = 8 * time.Second

	// DefaultMaxBodySize caps how much of an upstream body is buffered.
	DefaultMaxBodySize int64 = 8 << 20
)

// Response is the raw result of a completed fetch.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Fetcher performs deadline-bounded HTTP GET requests.
//
// Each call runs under its own deadline: if the deadline elapses before the
// response (headers and body) has been received, the request is cancelled and
// the error carries [errors.ErrCodeTimeout]. Fetcher never retries.
//
// A Fetcher is safe for concurrent use.
type Fetcher struct {
	client  *http.Client
	timeout time.Duration
	maxBody int64
}

// NewFetcher creates a Fetcher around client.
// A nil client uses a fresh http.Client without its own timeout, since
// deadlines are applied per call. timeout <= 0 selects DefaultTimeout.
func NewFetcher(client *http.Client, timeout time.Duration) *Fetcher {
	if client == nil {
		client = &http.Client{}
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Fetcher{client: client, timeout: timeout, maxBody: DefaultMaxBodySize}
}

// Timeout returns the default per-call deadline.
func (f *Fetcher) Timeout() time.Duration { return f.timeout }

// Fetch performs a GET of rawURL under timeout (the Fetcher default when <= 0).
func (f *Fetcher) Fetch(ctx context.Context, rawURL string, timeout time.Duration) (*Response, error) {
	return f.FetchWithHeaders(ctx, rawURL, timeout, nil)
}

// FetchWithHeaders is like Fetch but sets the given request headers.
//
// Returns:
//   - Response with the status and full body once everything arrived in time
//   - [errors.ErrCodeTimeout] if the deadline elapsed first
//   - [errors.ErrCodeNetwork] for connection, DNS, TLS or read failures
//   - [errors.ErrCodeInvalidURL] if rawURL cannot form a request
//   - [errors.ErrCodeUpstreamFormat] if the body exceeds the size cap
//
// Non-2xx statuses are not errors at this layer.
func (f *Fetcher) FetchWithHeaders(ctx context.Context, rawURL string, timeout time.Duration, headers map[string]string) (*Response, error) {
	if timeout <= 0 {
		timeout = f.timeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidURL, err, "build request")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	host, path := hostPath(req.URL)
	hooks := observability.HTTP()
	hooks.OnRequest(ctx, req.Method, host, path)
	start := time.Now()

	resp, err := f.client.Do(req)
	if err != nil {
		err = classify(ctx, err, timeout)
		hooks.OnError(ctx, req.Method, host, path, err)
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBody+1))
	if err != nil {
		err = classify(ctx, err, timeout)
		hooks.OnError(ctx, req.Method, host, path, err)
		return nil, err
	}
	if int64(len(body)) > f.maxBody {
		err = errors.New(errors.ErrCodeUpstreamFormat, "response body exceeds %d bytes", f.maxBody)
		hooks.OnError(ctx, req.Method, host, path, err)
		return nil, err
	}

	hooks.OnResponse(ctx, req.Method, host, path, resp.StatusCode, time.Since(start))
	return &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       body,
	}, nil
}

// classify maps a transport error onto the fetch error taxonomy.
func classify(ctx context.Context, err error, timeout time.Duration) error {
	if stderrors.Is(ctx.Err(), context.DeadlineExceeded) || stderrors.Is(err, context.DeadlineExceeded) {
		return errors.Wrap(errors.ErrCodeTimeout, err, "no response within %s", timeout)
	}
	var ne interface{ Timeout() bool }
	if stderrors.As(err, &ne) && ne.Timeout() {
		return errors.Wrap(errors.ErrCodeTimeout, err, "no response within %s", timeout)
	}
	return errors.Wrap(errors.ErrCodeNetwork, err, "request failed")
}

func hostPath(u *url.URL) (string, string) {
	if u == nil {
		return "", ""
	}
	return u.Host, u.Path
}
