// Package provider defines the contract between the fetch orchestrator and
// the individual wallpaper upstreams.
//
// An [Adapter] knows how to address one upstream and how to turn its
// response into [wallpaper.Record] values. Adapters do no I/O of their own:
// [Adapter.BuildRequest] is pure, and [Adapter.Parse] only consumes bytes the
// caller fetched. A [Request] with an empty URL means the adapter synthesizes
// its records locally and nothing needs to be fetched.
//
// A [Registry] holds the configured adapters keyed by [wallpaper.Type]. Its
// contents never change after construction.
//
// Randomness is always drawn from an injected [Rand] so tests can pin it.
//
// [wallpaper.Record]: github.com/matzehuels/wallfeed/pkg/wallpaper.Record
// [wallpaper.Type]: github.com/matzehuels/wallfeed/pkg/wallpaper.Type
package provider
