// Package store persists bars and candles in PostgreSQL. Per-symbol datasets
// live in separate schemas; within a schema the fixed base tables hold
// 1-minute bars and resampled siblings hold coarser candles.
//
// Identifiers (schema and table names) accepted from callers pass a strict
// allow-list check before ever appearing in SQL text; all row values travel
// as bound parameters.
package store

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/avelez/ohlc-data/internal/model"
)

// TableSpec describes one base-table shape.
type TableSpec struct {
	Kind         model.InstrumentKind
	ContractType string // "call" or "put" for option tables, empty otherwise
}

// BaseTables is the fixed set of destination tables merges may target.
// Three shapes: option call, option put, plain stock/index (VIX shares the
// stock shape under its own name).
var BaseTables = map[string]TableSpec{
	"ib_2w_call_1min": {Kind: model.KindOption, ContractType: model.ContractCall},
	"ib_2w_put_1min":  {Kind: model.KindOption, ContractType: model.ContractPut},
	"ib_stock_1min":   {Kind: model.KindStock},
	"ib_vix_1min":     {Kind: model.KindStock},
}

var identifierPattern = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

// ValidateIdentifier checks a schema or table name against the allow-list
// pattern. Postgres caps identifiers at 63 bytes.
func ValidateIdentifier(name string) error {
	if name == "" {
		return fmt.Errorf("empty identifier")
	}
	if len(name) > 63 {
		return fmt.Errorf("identifier %q exceeds 63 characters", name)
	}
	if !identifierPattern.MatchString(name) {
		return fmt.Errorf("invalid identifier %q", name)
	}
	return nil
}

// ResampledName derives the destination table name for a target timeframe
// tag by substituting the 1-minute suffix.
func ResampledName(srcTable, tag string) string {
	return strings.Replace(srcTable, "_"+model.SourceTag, "_"+tag, 1)
}

// Store wraps the warehouse database.
type Store struct {
	db     *pgxpool.Pool
	logger *slog.Logger
}

// New creates a Store.
func New(db *pgxpool.Pool, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{db: db, logger: logger}
}

// Ping verifies database connectivity.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

// qualify joins a validated schema and table into a qualified name for SQL
// text. Both parts must already have passed ValidateIdentifier.
func qualify(schema, table string) string {
	return schema + "." + table
}
