package resample

import "github.com/avelez/ohlc-data/internal/model"

// Aggregate collapses one bucket's bars into a single candle.
//
// rows must be non-empty, all from the same instrument, free of null OHLC
// fields, and sorted ascending by timestamp with the original input order
// preserved among equal timestamps. Under that ordering the tie-breaks are
// deterministic: the first row supplies the open, the last row supplies the
// close. High is the maximum, low the minimum, volume the sum.
//
// The candle's Timestamp is left zero; the pipeline stamps the bucket start.
func Aggregate(rows []model.Bar) model.Candle {
	first := rows[0]
	last := rows[len(rows)-1]

	c := model.Candle{
		StrikePrice:  first.StrikePrice,
		ContractType: first.ContractType,
		ExpiryDate:   first.ExpiryDate,
		Open:         *first.Open,
		Close:        *last.Close,
		High:         *first.High,
		Low:          *first.Low,
	}

	for _, r := range rows {
		if *r.High > c.High {
			c.High = *r.High
		}
		if *r.Low < c.Low {
			c.Low = *r.Low
		}
		c.Volume += r.Volume
	}

	return c
}
