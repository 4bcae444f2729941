// Package pkg holds the wallfeed libraries.
//
// # Overview
//
// Wallfeed serves wallpaper metadata from several independent upstream
// providers behind one JSON API. The libraries are layered leaf-first:
//
//  1. [errors], [wallpaper] - error codes and the normalized record type
//  2. [httputil], [cache] - deadline-bounded HTTP fetches and response caches
//  3. [provider], [integrations] - the adapter contract, the shared upstream
//     client and one subpackage per upstream
//  4. [session], [pipeline] - per-process session state and the orchestrator
//  5. [config], [providers] - configuration and registry assembly
//  6. [observability], [metrics] - hook interfaces and their Prometheus backing
//
// # Data Flow
//
//	request (count, type hint)
//	         ↓
//	    [pipeline.Runner] resolves the sticky provider
//	         ↓
//	    adapter.BuildRequest → [integrations.Client] → adapter.Parse
//	         ↓
//	    []wallpaper.Record appended to the session history
//
// # Quick Start
//
//	cfg, _ := config.Default()
//	registry, _ := providers.Build(&cfg.Providers, nil)
//	runner := pipeline.NewRunner(registry, integrations.NewClient(nil, nil, 0, nil), pipeline.Options{})
//
//	res := runner.ResolveAndFetch(ctx, 8, "official")
//	for _, w := range res.Wallpapers {
//	    fmt.Println(w.Title, w.Full)
//	}
package pkg
