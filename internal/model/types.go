package model

import (
	"fmt"
	"time"
)

// InstrumentKind selects which fields participate in row identity and
// aggregation grouping.
type InstrumentKind int

const (
	// KindStock covers equities and indexes (VIX included). Identity is the
	// bar timestamp alone.
	KindStock InstrumentKind = iota

	// KindOption covers option contracts. Identity is
	// (strike, contract type, expiry, timestamp).
	KindOption
)

func (k InstrumentKind) String() string {
	switch k {
	case KindStock:
		return "stock"
	case KindOption:
		return "option"
	default:
		return fmt.Sprintf("InstrumentKind(%d)", int(k))
	}
}

// ParseInstrumentKind parses the wire form used in requests.
func ParseInstrumentKind(s string) (InstrumentKind, error) {
	switch s {
	case "stock":
		return KindStock, nil
	case "option":
		return KindOption, nil
	default:
		return 0, fmt.Errorf("unknown instrument kind %q", s)
	}
}

// Contract type values carried on option rows. Stock/index files report
// "stock" in place of a contract type.
const (
	ContractCall = "call"
	ContractPut  = "put"
	TypeStock    = "stock"
)

// Timeframes maps the supported resample target tags to their width in
// minutes. The source is always a 1-minute table.
var Timeframes = map[string]int{
	"3min":  3,
	"5min":  5,
	"15min": 15,
	"1hr":   60,
}

// SourceTag is the table-name suffix identifying 1-minute source tables.
const SourceTag = "1min"

// Bar is one persisted minute of trading. OHLC fields are nil when the
// source reported no quote for that minute. Option identity fields are
// zero-valued for stock/index bars.
type Bar struct {
	StrikePrice  int
	ContractType string
	ExpiryDate   time.Time
	Timestamp    time.Time
	Open         *float64
	Close        *float64
	High         *float64
	Low          *float64
	Volume       int64
}

// RawBar is a row as delivered by the upload layer: every field still in its
// source textual form. Key fields are canonicalized by the dedup engine
// before comparison; value fields are parsed just before persistence.
type RawBar struct {
	StrikePrice  string `json:"strike_price,omitempty"`
	ContractType string `json:"contract_type,omitempty"`
	ExpiryDate   string `json:"expiry_date,omitempty"`
	Timestamp    string `json:"timestamp"`
	Open         string `json:"open"`
	Close        string `json:"close"`
	High         string `json:"high"`
	Low          string `json:"low"`
	Volume       string `json:"volume"`
}

// Candle is one row of a resampled table: Timestamp is always a bucket start
// and the OHLCV fields are aggregates over the source bars in that bucket.
// Buckets are never empty, so OHLC is never null here.
type Candle struct {
	StrikePrice  int
	ContractType string
	ExpiryDate   time.Time
	Timestamp    time.Time
	Open         float64
	Close        float64
	High         float64
	Low          float64
	Volume       int64
}
