package store

import (
	"context"
	"fmt"
	"time"

	"github.com/avelez/ohlc-data/internal/dedup"
	"github.com/avelez/ohlc-data/internal/model"
)

// ReadKeys reads the full identity-key set of a destination table. The
// result is a point-in-time snapshot; callers hold the destination lock
// across the read and the subsequent append.
func (s *Store) ReadKeys(ctx context.Context, schema, table string, kind model.InstrumentKind) (dedup.Set, error) {
	if err := ValidateIdentifier(schema); err != nil {
		return nil, err
	}
	if err := ValidateIdentifier(table); err != nil {
		return nil, err
	}

	keys := make(dedup.Set)
	qualified := qualify(schema, table)

	if kind == model.KindStock {
		rows, err := s.db.Query(ctx, "SELECT bar_time FROM "+qualified)
		if err != nil {
			return nil, fmt.Errorf("read keys from %s: %w", qualified, err)
		}
		defer rows.Close()

		for rows.Next() {
			var ts time.Time
			if err := rows.Scan(&ts); err != nil {
				return nil, fmt.Errorf("scan key from %s: %w", qualified, err)
			}
			keys[dedup.BarKey(model.Bar{Timestamp: ts}, kind)] = struct{}{}
		}
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("read keys from %s: %w", qualified, err)
		}
		return keys, nil
	}

	rows, err := s.db.Query(ctx,
		"SELECT strike_price, contract_type, expiry_date, bar_time FROM "+qualified)
	if err != nil {
		return nil, fmt.Errorf("read keys from %s: %w", qualified, err)
	}
	defer rows.Close()

	for rows.Next() {
		var b model.Bar
		if err := rows.Scan(&b.StrikePrice, &b.ContractType, &b.ExpiryDate, &b.Timestamp); err != nil {
			return nil, fmt.Errorf("scan key from %s: %w", qualified, err)
		}
		keys[dedup.BarKey(b, kind)] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read keys from %s: %w", qualified, err)
	}
	return keys, nil
}

// ReadBars reads a full 1-minute source table for resampling.
func (s *Store) ReadBars(ctx context.Context, schema, table string, kind model.InstrumentKind) ([]model.Bar, error) {
	if err := ValidateIdentifier(schema); err != nil {
		return nil, err
	}
	if err := ValidateIdentifier(table); err != nil {
		return nil, err
	}

	qualified := qualify(schema, table)
	var sql string
	if kind == model.KindOption {
		sql = "SELECT strike_price, contract_type, expiry_date, bar_time, open, close, high, low, volume FROM " + qualified
	} else {
		sql = "SELECT bar_time, open, close, high, low, volume FROM " + qualified
	}

	rows, err := s.db.Query(ctx, sql)
	if err != nil {
		return nil, fmt.Errorf("read bars from %s: %w", qualified, err)
	}
	defer rows.Close()

	var out []model.Bar
	for rows.Next() {
		var b model.Bar
		var volume *int64
		if kind == model.KindOption {
			err = rows.Scan(&b.StrikePrice, &b.ContractType, &b.ExpiryDate, &b.Timestamp,
				&b.Open, &b.Close, &b.High, &b.Low, &volume)
		} else {
			err = rows.Scan(&b.Timestamp, &b.Open, &b.Close, &b.High, &b.Low, &volume)
		}
		if err != nil {
			return nil, fmt.Errorf("scan bar from %s: %w", qualified, err)
		}
		if volume != nil {
			b.Volume = *volume
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read bars from %s: %w", qualified, err)
	}
	return out, nil
}
