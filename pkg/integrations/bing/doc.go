// Package bing adapts the Bing HPImageArchive endpoint, the "official" daily
// wallpaper provider.
//
// # Request
//
// A batch of count images starting at archive offset cursor is requested as
//
//	{base}/HPImageArchive.aspx?format=js&idx={cursor}&n={count}&mkt={locale}
//
// When the proxy is enabled the whole URL is percent-encoded into the proxy's
// url parameter (allorigins by default).
//
// # Records
//
// Each archive image yields one record: the title falls back to the copyright
// line and then to [DefaultTitle]; the date is the image's end date formatted
// as YYYY-MM-DD; the thumbnail is the image URL and the full image is the
// UHD rendition derived from urlbase.
//
// Archive pages are stable for a given offset, so requests are cacheable.
package bing
