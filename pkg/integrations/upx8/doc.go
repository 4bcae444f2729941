// Package upx8 adapts the wp.upx8.com random UHD feed.
//
// The feed needs no API call: record n is simply
//
//	{base}/api.php/0/0?random={n}
//
// for both thumbnail and full image. Numbers come from a cursor that starts
// at 1 and advances by the batch size after every successful batch, so
// consecutive batches never repeat a number within one process.
package upx8
