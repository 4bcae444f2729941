// Package imgrun adapts the bing.img.run random UHD endpoint.
//
// The endpoint returns a different image on every hit, so records are
// synthesized locally: each one gets its own cache-busting nonce
//
//	{url}?t={unixMillis}_{random hex}
//
// shared by its thumbnail and full image.
package imgrun
