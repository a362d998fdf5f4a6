// Package dedup decides whether incoming bars already exist in a destination
// table. Identity is the destination's natural primary key — the bar
// timestamp for stock/index tables, (strike, contract type, expiry,
// timestamp) for option tables — with every component canonicalized before
// comparison so formatting differences never hide a duplicate.
//
// The engine performs no I/O: callers supply a point-in-time snapshot of the
// existing key set and receive back authoritative new/duplicate partitions.
// It makes no atomicity guarantee against rows inserted between the snapshot
// read and the subsequent append; callers serialize per destination.
package dedup
