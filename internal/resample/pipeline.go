package resample

import (
	"fmt"
	"sort"
	"time"

	"github.com/avelez/ohlc-data/internal/model"
	"github.com/avelez/ohlc-data/internal/session"
)

// groupKey identifies one output candle: the instrument identity prefix
// (zero for stock/index) plus the bucket start.
type groupKey struct {
	strike   int
	contract string
	expiry   int64
	bucket   int64
}

// Resample rolls a full 1-minute row set up to the given timeframe.
//
// Source rows outside the session window or with any null OHLC field are
// dropped. Remaining rows are grouped by (identity prefix, bucket) and each
// group aggregated into one candle. Output is sorted ascending by
// (strike, contract type, expiry, bucket start), and the whole operation is
// deterministic: the same input always yields the same output.
func Resample(src []model.Bar, tfMinutes int, kind model.InstrumentKind) ([]model.Candle, error) {
	if !Supported(tfMinutes) {
		return nil, fmt.Errorf("%w: %d minutes", ErrUnsupportedTimeframe, tfMinutes)
	}

	groups := make(map[groupKey][]model.Bar)
	starts := make(map[groupKey]time.Time)

	for _, b := range src {
		if !session.Contains(b.Timestamp) {
			continue
		}
		if b.Open == nil || b.Close == nil || b.High == nil || b.Low == nil {
			continue
		}

		bucket, err := AssignBucket(b.Timestamp, tfMinutes)
		if err != nil {
			return nil, err
		}

		k := groupKey{bucket: bucket.Unix()}
		if kind == model.KindOption {
			k.strike = b.StrikePrice
			k.contract = b.ContractType
			k.expiry = b.ExpiryDate.Unix()
		}
		groups[k] = append(groups[k], b)
		starts[k] = bucket
	}

	keys := make([]groupKey, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, b := keys[i], keys[j]
		if a.strike != b.strike {
			return a.strike < b.strike
		}
		if a.contract != b.contract {
			return a.contract < b.contract
		}
		if a.expiry != b.expiry {
			return a.expiry < b.expiry
		}
		return a.bucket < b.bucket
	})

	out := make([]model.Candle, 0, len(keys))
	for _, k := range keys {
		rows := groups[k]
		// Stable: rows sharing a timestamp keep their input order, which is
		// what makes the open/close tie-breaks deterministic.
		sort.SliceStable(rows, func(i, j int) bool {
			return rows[i].Timestamp.Before(rows[j].Timestamp)
		})

		c := Aggregate(rows)
		c.Timestamp = starts[k]
		if kind == model.KindStock {
			// Identity prefix is empty for stock/index tables.
			c.StrikePrice = 0
			c.ContractType = ""
			c.ExpiryDate = time.Time{}
		}
		out = append(out, c)
	}

	return out, nil
}
