// Package pipeline orchestrates wallpaper fetches across providers.
//
// # Overview
//
// A [Runner] owns one [session.State] and a [provider.Registry]. Each call to
// [Runner.ResolveAndFetch] goes through the same stages:
//
//  1. Admission: a single-flight guard turns away concurrent callers with an
//     empty result instead of queueing them.
//  2. Resolution: an explicit, registered provider hint becomes the sticky
//     provider; without one the current sticky provider is reused, and the
//     very first call picks one at random.
//  3. Fetch: the adapter builds a request, the shared client fetches it (only
//     when it has a URL) and the adapter parses the body.
//  4. Commit: valid records are appended to the session history and the
//     provider's cursor, if any, moves forward by the batch size.
//
// Upstream failures never reach the caller. They are logged with the
// provider and error code and the call returns an empty batch. The guard is
// released on every path, panics included.
//
// # Usage
//
//	runner := pipeline.NewRunner(registry, client, pipeline.Options{Logger: logger})
//	res := runner.ResolveAndFetch(ctx, 8, "official")
//	fmt.Println(res.Provider, len(res.Wallpapers))
//
// [session.State]: github.com/matzehuels/wallfeed/pkg/session.State
// [provider.Registry]: github.com/matzehuels/wallfeed/pkg/provider.Registry
package pipeline
