// Package cache provides the optional upstream response cache.
//
// Four backends implement [Cache]:
//
//   - [NullCache]: caching disabled (default)
//   - [MemoryCache]: per-process, backed by patrickmn/go-cache
//   - [FileCache]: JSON files on disk, used by the CLI
//   - [RedisCache]: shared between instances, backed by go-redis
//
// [Open] selects one from [Options]. Keys for upstream responses come from a
// [Keyer]; the default hashes the request URL under a per-provider namespace.
//
// Only the official archive responses are worth caching: the other providers
// are random by nature, and the integrations client skips the cache for them.
package cache
