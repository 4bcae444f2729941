package httputil

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/matzehuels/wallfeed/pkg/errors"
)

func TestNewFetcherDefaults(t *testing.T) {
	f := NewFetcher(nil, 0)
	if f.client == nil {
		t.Fatal("NewFetcher() client is nil")
	}
	if f.Timeout() != DefaultTimeout {
		t.Errorf("Timeout() = %v, want %v", f.Timeout(), DefaultTimeout)
	}
	if f.maxBody != DefaultMaxBodySize {
		t.Errorf("maxBody = %d, want %d", f.maxBody, DefaultMaxBodySize)
	}
}

func TestFetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("expected GET, got %s", r.Method)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"images":[]}`))
	}))
	defer server.Close()

	f := NewFetcher(server.Client(), time.Second)
	resp, err := f.Fetch(context.Background(), server.URL, 0)
	if err != nil {
		t.Fatalf("Fetch() error: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Errorf("StatusCode = %d, want 200", resp.StatusCode)
	}
	if string(resp.Body) != `{"images":[]}` {
		t.Errorf("Body = %q", resp.Body)
	}
	if resp.Header.Get("Content-Type") != "application/json" {
		t.Errorf("Content-Type = %q", resp.Header.Get("Content-Type"))
	}
}

func TestFetchWithHeaders(t *testing.T) {
	var got string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("User-Agent")
	}))
	defer server.Close()

	f := NewFetcher(server.Client(), time.Second)
	if _, err := f.FetchWithHeaders(context.Background(), server.URL, 0, map[string]string{"User-Agent": "wallfeed/test"}); err != nil {
		t.Fatalf("FetchWithHeaders() error: %v", err)
	}
	if got != "wallfeed/test" {
		t.Errorf("User-Agent = %q, want %q", got, "wallfeed/test")
	}
}

func TestFetchNonOKIsNotAnError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("bad gateway"))
	}))
	defer server.Close()

	f := NewFetcher(server.Client(), time.Second)
	resp, err := f.Fetch(context.Background(), server.URL, 0)
	if err != nil {
		t.Fatalf("Fetch() error: %v", err)
	}
	if resp.StatusCode != http.StatusBadGateway {
		t.Errorf("StatusCode = %d, want 502", resp.StatusCode)
	}
}

func TestFetchTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Never respond; hold until the client gives up.
		<-r.Context().Done()
	}))
	defer server.Close()

	const deadline = 100 * time.Millisecond
	f := NewFetcher(server.Client(), time.Minute)

	start := time.Now()
	_, err := f.Fetch(context.Background(), server.URL, deadline)
	elapsed := time.Since(start)

	if !errors.Is(err, errors.ErrCodeTimeout) {
		t.Fatalf("Fetch() error = %v, want %s", err, errors.ErrCodeTimeout)
	}
	if elapsed > deadline+time.Second {
		t.Errorf("Fetch() returned after %v, deadline was %v", elapsed, deadline)
	}
}

func TestFetchTimeoutDuringBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"hits":[`))
		w.(http.Flusher).Flush()
		<-r.Context().Done()
	}))
	defer server.Close()

	f := NewFetcher(server.Client(), time.Minute)
	_, err := f.Fetch(context.Background(), server.URL, 100*time.Millisecond)
	if !errors.Is(err, errors.ErrCodeTimeout) {
		t.Fatalf("Fetch() error = %v, want %s", err, errors.ErrCodeTimeout)
	}
}

func TestFetchNetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	f := NewFetcher(nil, time.Second)
	_, err := f.Fetch(context.Background(), url, 0)
	if !errors.Is(err, errors.ErrCodeNetwork) {
		t.Fatalf("Fetch() error = %v, want %s", err, errors.ErrCodeNetwork)
	}
}

func TestFetchInvalidURL(t *testing.T) {
	f := NewFetcher(nil, time.Second)
	_, err := f.Fetch(context.Background(), "://missing-scheme", 0)
	if !errors.Is(err, errors.ErrCodeInvalidURL) {
		t.Fatalf("Fetch() error = %v, want %s", err, errors.ErrCodeInvalidURL)
	}
}

func TestFetchBodyTooLarge(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(make([]byte, 64))
	}))
	defer server.Close()

	f := NewFetcher(server.Client(), time.Second)
	f.maxBody = 16

	_, err := f.Fetch(context.Background(), server.URL, 0)
	if !errors.Is(err, errors.ErrCodeUpstreamFormat) {
		t.Fatalf("Fetch() error = %v, want %s", err, errors.ErrCodeUpstreamFormat)
	}
}
