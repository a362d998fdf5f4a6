// Package database provides the PostgreSQL connection pool for the
// warehouse. Per-symbol datasets live in separate schemas of one database;
// all table access goes through internal/store.
package database
