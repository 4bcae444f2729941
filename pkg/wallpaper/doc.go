// Package wallpaper defines the normalized record every provider produces.
//
// # Overview
//
// Upstream image services disagree on almost everything: the Bing archive
// returns relative paths and 8-digit date codes, Pixabay returns search hits
// with tag strings, and the random-image endpoints return nothing at all until
// an image is requested. Providers reconcile those shapes into [Record], the
// only type that crosses the API boundary.
//
// # Provider Types
//
// [Type] is the wire tag a caller uses to pin a provider:
//
//   - [TypeOfficial]: daily photo archive (date-indexed, paginated)
//   - [TypeThirdParty]: tag/keyword search (random page, shuffled hits)
//   - [TypeUpx8]: parametric random feed (paginated by integer cursor)
//   - [TypeImgrunRand]: cache-busted random feed (no pagination)
//
// # Invariants
//
// A Record returned to a caller always carries all four fields, and its Thumb
// and Full URLs are non-empty absolute http(s) URLs. [Record.Validate] checks
// this; the orchestrator drops records that fail it.
package wallpaper
