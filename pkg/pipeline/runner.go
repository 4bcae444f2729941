package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/wallfeed/pkg/errors"
	"github.com/matzehuels/wallfeed/pkg/observability"
	"github.com/matzehuels/wallfeed/pkg/provider"
	"github.com/matzehuels/wallfeed/pkg/session"
	"github.com/matzehuels/wallfeed/pkg/wallpaper"
)

// Fetcher performs the network half of a provider request.
// *integrations.Client satisfies it.
type Fetcher interface {
	Fetch(ctx context.Context, req provider.Request) ([]byte, error)
}

// Invalidator is implemented by fetchers that cache responses. The runner
// calls Invalidate when a fetched body yields no usable records, so a bad
// body is never served again from cache.
type Invalidator interface {
	Invalidate(ctx context.Context, req provider.Request) error
}

// Runner resolves a provider and fetches a batch of wallpapers from it.
//
// A Runner is safe for concurrent use, but at most one fetch runs at a time;
// see [Runner.ResolveAndFetch].
type Runner struct {
	registry *provider.Registry
	client   Fetcher
	state    *session.State
	opts     Options
	logger   *log.Logger
}

// NewRunner creates a runner over registry. Cursors start at each
// provider's descriptor value.
func NewRunner(registry *provider.Registry, client Fetcher, opts Options) *Runner {
	opts.setDefaults()

	cursors := make(map[wallpaper.Type]int)
	for _, t := range registry.Types() {
		a, _ := registry.Get(t)
		if d := a.Descriptor(); d.HasCursor {
			cursors[t] = d.InitialCursor
		}
	}

	return &Runner{
		registry: registry,
		client:   client,
		state:    session.New(cursors),
		opts:     opts,
		logger:   opts.Logger,
	}
}

// ResolveAndFetch returns a fresh batch of up to count wallpapers.
//
// hint is a provider tag; unknown or unregistered tags are ignored. count
// outside [1, MaxCount] is replaced by the default or clamped.
//
// It never fails: rejected calls and upstream failures yield an empty
// Wallpapers slice, with Rejected or Err set for diagnostics.
//
// The fetch is bounded by its own deadline rather than by ctx, so a caller
// that goes away does not abort a fetch whose results will be kept in the
// session history. Values such as the request ID still flow through.
func (r *Runner) ResolveAndFetch(ctx context.Context, count int, hint string) Result {
	hooks := observability.Fetch()
	logger := r.loggerFor(ctx)

	if !r.state.TryAcquire() {
		hooks.OnFetchRejected(ctx)
		logger.Debug("fetch already in flight, returning empty batch")
		return Result{Wallpapers: []wallpaper.Record{}, Provider: r.Current(), Rejected: true}
	}
	defer r.state.Release()

	count = r.normalizeCount(count)
	typ, ok := r.resolve(logger, hint)
	if !ok {
		logger.Warn("no providers registered")
		return Result{Wallpapers: []wallpaper.Record{}}
	}
	adapter, _ := r.registry.Get(typ)

	hooks.OnFetchStart(ctx, string(typ), count)
	start := time.Now()
	records, err := r.fetch(context.WithoutCancel(ctx), adapter, count)
	elapsed := time.Since(start)
	hooks.OnFetchComplete(ctx, string(typ), len(records), elapsed, err)

	if err != nil {
		logger.Warn("provider fetch failed",
			"provider", typ,
			"count", count,
			"code", errors.CodeOf(err),
			"duration", elapsed,
			"err", err)
		return Result{Wallpapers: []wallpaper.Record{}, Provider: typ, Err: err}
	}

	r.state.Append(records...)
	r.state.Advance(typ, count)

	logger.Debug("fetched wallpapers",
		"provider", typ,
		"count", len(records),
		"duration", elapsed)
	return Result{Wallpapers: records, Provider: typ}
}

// fetch runs build, fetch and parse for one batch. A panic anywhere in
// the adapter or client is converted into an internal error.
func (r *Runner) fetch(ctx context.Context, a provider.Adapter, count int) (records []wallpaper.Record, err error) {
	defer func() {
		if p := recover(); p != nil {
			records = nil
			err = errors.New(errors.ErrCodeInternal, "provider %s panicked: %v", a.Type(), p)
		}
	}()

	cursor, _ := r.state.Cursor(a.Type())
	req, err := a.BuildRequest(count, cursor)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	var body []byte
	if req.Remote() {
		if body, err = r.client.Fetch(ctx, req); err != nil {
			return nil, err
		}
	}

	parsed, err := a.Parse(req, body, count)
	if err != nil {
		r.invalidate(ctx, req)
		return nil, err
	}

	valid, dropped := wallpaper.Filter(parsed)
	if dropped > 0 {
		r.loggerFor(ctx).Debug("dropped invalid records", "provider", a.Type(), "dropped", dropped)
	}
	if len(valid) == 0 {
		r.invalidate(ctx, req)
		return nil, errors.New(errors.ErrCodeEmptyUpstream, "%s returned no valid records", a.Type())
	}
	if len(valid) > count {
		valid = valid[:count]
	}
	return valid, nil
}

// invalidate evicts the cached body behind req when the client caches.
func (r *Runner) invalidate(ctx context.Context, req provider.Request) {
	inv, ok := r.client.(Invalidator)
	if !ok || !req.Remote() {
		return
	}
	if err := inv.Invalidate(ctx, req); err != nil {
		r.loggerFor(ctx).Debug("cache invalidation failed", "provider", req.Type, "err", err)
	}
}

// loggerFor returns the request-scoped logger stored in ctx by
// log.WithContext, falling back to the runner's own.
func (r *Runner) loggerFor(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(log.ContextKey).(*log.Logger); ok {
		return l
	}
	return r.logger
}

// resolve picks the provider for this call and makes it sticky.
func (r *Runner) resolve(logger *log.Logger, hint string) (wallpaper.Type, bool) {
	if hint != "" {
		if t, err := wallpaper.ParseType(hint); err == nil && r.registry.Has(t) {
			r.state.SetActive(t)
			return t, true
		}
		logger.Debug("ignoring provider hint", "hint", hint)
	}
	if t, ok := r.state.Active(); ok {
		return t, true
	}
	t, ok := r.registry.Pick(r.opts.Rand)
	if ok {
		r.state.SetActive(t)
		logger.Info("selected provider", "provider", t)
	}
	return t, ok
}

func (r *Runner) normalizeCount(count int) int {
	switch {
	case count <= 0:
		return r.opts.DefaultCount
	case count > r.opts.MaxCount:
		return r.opts.MaxCount
	default:
		return count
	}
}

// Current returns the sticky provider, or "" before the first fetch.
func (r *Runner) Current() wallpaper.Type {
	t, _ := r.state.Active()
	return t
}

// History returns the most recent limit accumulated records (all if <= 0).
func (r *Runner) History(limit int) []wallpaper.Record {
	return r.state.History(limit)
}

// Snapshot returns a copy of the session state.
func (r *Runner) Snapshot() session.Snapshot {
	return r.state.Snapshot()
}

// Registry returns the provider registry.
func (r *Runner) Registry() *provider.Registry {
	return r.registry
}

// Limits returns the effective default and maximum batch sizes.
func (r *Runner) Limits() (defaultCount, maxCount int) {
	return r.opts.DefaultCount, r.opts.MaxCount
}
