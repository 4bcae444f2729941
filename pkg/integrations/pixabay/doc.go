// Package pixabay adapts the Pixabay search API, the "thirdparty" provider.
//
// Every batch requests one random page of results and samples from it:
//
//	{base}?key={key}&per_page={pageSize}&page={p}
//
// p is drawn uniformly from [1, maxPage]. Hits without an image URL are
// dropped, the rest are shuffled and the first count are returned. Sampling
// stays within that one page.
//
// Records use the hit's tags as title (or a numbered fallback), carry no
// date, and point thumbnail and full image at the same large image URL.
//
// The API key is read from configuration and never logged.
package pixabay
