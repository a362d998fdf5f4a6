package dedup

import (
	"strings"

	"github.com/avelez/ohlc-data/internal/model"
)

// Key is the canonical identity of one bar. For stock/index bars only
// Timestamp is set. Datetime components are canonical text
// (model.DatetimeLayout) so keys built from typed store rows and from raw
// upload text compare equal.
type Key struct {
	StrikePrice  int    `json:"strike_price,omitempty"`
	ContractType string `json:"contract_type,omitempty"`
	ExpiryDate   string `json:"expiry_date,omitempty"`
	Timestamp    string `json:"timestamp"`
}

// Set is a point-in-time snapshot of a destination's existing keys.
type Set map[Key]struct{}

// ExtractKey canonicalizes a raw row's key components. Malformed components
// yield a *model.FieldError naming the offending column (Row is -1; callers
// that know batch positions fill it in).
func ExtractKey(b model.RawBar, kind model.InstrumentKind) (Key, error) {
	ts, err := model.NormalizeDatetime(b.Timestamp)
	if err != nil {
		return Key{}, &model.FieldError{Column: "Timestamp", Value: b.Timestamp, Row: -1}
	}

	k := Key{Timestamp: ts.Format(model.DatetimeLayout)}
	if kind == model.KindStock {
		return k, nil
	}

	strike, err := model.ParseStrike(b.StrikePrice)
	if err != nil {
		return Key{}, &model.FieldError{Column: "StrikePrice", Value: b.StrikePrice, Row: -1}
	}
	k.StrikePrice = strike
	k.ContractType = strings.TrimSpace(b.ContractType)

	expiry, err := model.NormalizeDatetime(b.ExpiryDate)
	if err != nil {
		return Key{}, &model.FieldError{Column: "ExpiryDate", Value: b.ExpiryDate, Row: -1}
	}
	k.ExpiryDate = expiry.Format(model.DatetimeLayout)

	return k, nil
}

// BarKey builds the key for an already-typed bar, as read from the store.
func BarKey(b model.Bar, kind model.InstrumentKind) Key {
	k := Key{Timestamp: b.Timestamp.Format(model.DatetimeLayout)}
	if kind == model.KindOption {
		k.StrikePrice = b.StrikePrice
		k.ContractType = strings.TrimSpace(b.ContractType)
		k.ExpiryDate = b.ExpiryDate.Format(model.DatetimeLayout)
	}
	return k
}
