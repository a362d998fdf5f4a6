package store

import (
	"context"
	"fmt"

	"github.com/avelez/ohlc-data/internal/model"
)

const optionColumns = `
	strike_price  INTEGER NOT NULL,
	contract_type VARCHAR(10) NOT NULL,
	expiry_date   TIMESTAMP NOT NULL,
	bar_time      TIMESTAMP NOT NULL,
	open   DOUBLE PRECISION,
	close  DOUBLE PRECISION,
	high   DOUBLE PRECISION,
	low    DOUBLE PRECISION,
	volume BIGINT,
	PRIMARY KEY (strike_price, contract_type, expiry_date, bar_time)`

const stockColumns = `
	bar_time TIMESTAMP NOT NULL,
	open   DOUBLE PRECISION,
	close  DOUBLE PRECISION,
	high   DOUBLE PRECISION,
	low    DOUBLE PRECISION,
	volume BIGINT,
	PRIMARY KEY (bar_time)`

func columnsFor(kind model.InstrumentKind) string {
	if kind == model.KindOption {
		return optionColumns
	}
	return stockColumns
}

// EnsureBaseTable creates a merge destination if it does not exist yet. Base
// tables are append-only and never dropped.
func (s *Store) EnsureBaseTable(ctx context.Context, schema, table string, kind model.InstrumentKind) error {
	if err := ValidateIdentifier(schema); err != nil {
		return err
	}
	if err := ValidateIdentifier(table); err != nil {
		return err
	}

	sql := fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s\n)", qualify(schema, table), columnsFor(kind))
	if _, err := s.db.Exec(ctx, sql); err != nil {
		return fmt.Errorf("create table %s: %w", qualify(schema, table), err)
	}
	return nil
}

// RecreateResampledTable drops and recreates a resample destination,
// discarding any prior contents. Callers hold the destination lock for the
// whole rebuild.
func (s *Store) RecreateResampledTable(ctx context.Context, schema, table string, kind model.InstrumentKind) error {
	if err := ValidateIdentifier(schema); err != nil {
		return err
	}
	if err := ValidateIdentifier(table); err != nil {
		return err
	}

	qualified := qualify(schema, table)
	if _, err := s.db.Exec(ctx, "DROP TABLE IF EXISTS "+qualified); err != nil {
		return fmt.Errorf("drop table %s: %w", qualified, err)
	}

	sql := fmt.Sprintf("CREATE TABLE %s (%s\n)", qualified, columnsFor(kind))
	if _, err := s.db.Exec(ctx, sql); err != nil {
		return fmt.Errorf("create table %s: %w", qualified, err)
	}
	return nil
}
