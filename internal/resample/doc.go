// Package resample rolls 1-minute bars up into coarser candles.
//
// Buckets are half-open intervals [start, start+timeframe) anchored to the
// session open on each trading date, so a 60-minute bucket never spans two
// calendar days. Supported target widths are 3, 5, 15 and 60 minutes.
package resample
