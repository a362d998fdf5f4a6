// Package model defines the shared row types of the minute-bar warehouse.
//
// Conventions:
//   - Prices: float64; a nil pointer on a Bar means the source reported no quote
//   - Timestamps: time.Time, session-local wall clock, no timezone conversion
//   - Canonical datetime text: "2006-01-02 15:04:05" (see NormalizeDatetime)
package model
