// Package session holds the process-lifetime state of the wallpaper feed.
//
// A [State] records which provider is currently sticky, a paging cursor per
// provider that has one, the single-flight guard, and every record handed out
// so far. It is owned by exactly one orchestrator and dies with the process;
// nothing is persisted.
//
// The in-flight guard is an atomic flag: [State.TryAcquire] succeeds for at
// most one caller until [State.Release]. Everything else is behind a mutex,
// so a State may be shared by concurrent HTTP handlers.
package session
