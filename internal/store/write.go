package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/avelez/ohlc-data/internal/model"
)

// AppendBars bulk-inserts new bars into a base table. Rows must already have
// passed deduplication; a primary-key conflict here means the caller bypassed
// the destination lock and surfaces as an error rather than being swallowed.
func (s *Store) AppendBars(ctx context.Context, schema, table string, kind model.InstrumentKind, bars []model.Bar) error {
	if len(bars) == 0 {
		return nil
	}
	if err := ValidateIdentifier(schema); err != nil {
		return err
	}
	if err := ValidateIdentifier(table); err != nil {
		return err
	}

	qualified := qualify(schema, table)
	batch := &pgx.Batch{}

	for _, b := range bars {
		if kind == model.KindOption {
			batch.Queue(
				"INSERT INTO "+qualified+
					" (strike_price, contract_type, expiry_date, bar_time, open, close, high, low, volume)"+
					" VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)",
				b.StrikePrice, b.ContractType, b.ExpiryDate, b.Timestamp,
				b.Open, b.Close, b.High, b.Low, b.Volume)
		} else {
			batch.Queue(
				"INSERT INTO "+qualified+
					" (bar_time, open, close, high, low, volume)"+
					" VALUES ($1, $2, $3, $4, $5, $6)",
				b.Timestamp, b.Open, b.Close, b.High, b.Low, b.Volume)
		}
	}

	results := s.db.SendBatch(ctx, batch)
	defer results.Close()

	for range bars {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("append bars to %s: %w", qualified, err)
		}
	}
	return nil
}

// InsertCandles bulk-inserts resampled candles into a freshly recreated
// destination table.
func (s *Store) InsertCandles(ctx context.Context, schema, table string, kind model.InstrumentKind, candles []model.Candle) error {
	if len(candles) == 0 {
		return nil
	}
	if err := ValidateIdentifier(schema); err != nil {
		return err
	}
	if err := ValidateIdentifier(table); err != nil {
		return err
	}

	qualified := qualify(schema, table)
	batch := &pgx.Batch{}

	for _, c := range candles {
		if kind == model.KindOption {
			batch.Queue(
				"INSERT INTO "+qualified+
					" (strike_price, contract_type, expiry_date, bar_time, open, close, high, low, volume)"+
					" VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)",
				c.StrikePrice, c.ContractType, c.ExpiryDate, c.Timestamp,
				c.Open, c.Close, c.High, c.Low, c.Volume)
		} else {
			batch.Queue(
				"INSERT INTO "+qualified+
					" (bar_time, open, close, high, low, volume)"+
					" VALUES ($1, $2, $3, $4, $5, $6)",
				c.Timestamp, c.Open, c.Close, c.High, c.Low, c.Volume)
		}
	}

	results := s.db.SendBatch(ctx, batch)
	defer results.Close()

	for range candles {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("insert candles into %s: %w", qualified, err)
		}
	}
	return nil
}
