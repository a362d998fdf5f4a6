package model

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DatetimeLayout is the canonical textual form for datetime key components.
const DatetimeLayout = "2006-01-02 15:04:05"

// FieldError reports a row field that could not be parsed or canonicalized.
type FieldError struct {
	Column string
	Value  string
	Row    int // position in the incoming batch, -1 when unknown
}

func (e *FieldError) Error() string {
	if e.Row >= 0 {
		return fmt.Sprintf("malformed field %s=%q in row %d", e.Column, e.Value, e.Row)
	}
	return fmt.Sprintf("malformed field %s=%q", e.Column, e.Value)
}

// NormalizeDatetime parses a source datetime in any of the observed textual
// forms and reduces it to second precision: the fractional part is dropped,
// any offset suffix is dropped, and a 'T' date/time separator is treated as a
// space. A bare date parses to midnight. Two inputs naming the same wall-clock
// instant normalize to the same value regardless of formatting.
func NormalizeDatetime(s string) (time.Time, error) {
	orig := s
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty datetime")
	}

	s = strings.Replace(s, "T", " ", 1)
	if i := strings.IndexByte(s, '.'); i >= 0 {
		s = s[:i]
	}
	s = strings.TrimSuffix(s, "Z")
	if i := strings.IndexByte(s, '+'); i >= 0 {
		s = s[:i]
	}
	// A '-' inside the time portion can only start a negative offset.
	if sp := strings.IndexByte(s, ' '); sp >= 0 {
		if i := strings.IndexByte(s[sp:], '-'); i >= 0 {
			s = s[:sp+i]
		}
	}
	s = strings.TrimSpace(s)

	for _, layout := range []string{DatetimeLayout, "2006-01-02 15:04", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized datetime %q", orig)
}

// ParseStrike parses a strike price as an exact integer. A trailing all-zero
// fraction ("450.0") is accepted; any other fractional part is malformed.
// The value never passes through floating point.
func ParseStrike(s string) (int, error) {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '.'); i >= 0 {
		frac := s[i+1:]
		if frac == "" || strings.Trim(frac, "0") != "" {
			return 0, fmt.Errorf("strike %q has a fractional part", s)
		}
		s = s[:i]
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("strike %q is not an integer", s)
	}
	return n, nil
}

// ParsePrice parses an OHLC value. Empty input means the source reported no
// quote and yields nil.
func ParsePrice(s string) (*float64, error) {
	s = strings.TrimSpace(strings.Trim(strings.TrimSpace(s), `"`))
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// ParseVolume parses a volume count. Empty input counts as zero.
func ParseVolume(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		// Some feeds emit volume as "123.0".
		if f, ferr := strconv.ParseFloat(s, 64); ferr == nil && f == float64(int64(f)) {
			return int64(f), nil
		}
		return 0, err
	}
	return n, nil
}

// ParseBar converts a raw row to its typed form. Errors carry the offending
// column name; Row is filled in by the caller that knows batch positions.
func ParseBar(raw RawBar, kind InstrumentKind) (Bar, error) {
	var b Bar

	ts, err := NormalizeDatetime(raw.Timestamp)
	if err != nil {
		return Bar{}, &FieldError{Column: "Timestamp", Value: raw.Timestamp, Row: -1}
	}
	b.Timestamp = ts

	if kind == KindOption {
		strike, err := ParseStrike(raw.StrikePrice)
		if err != nil {
			return Bar{}, &FieldError{Column: "StrikePrice", Value: raw.StrikePrice, Row: -1}
		}
		b.StrikePrice = strike
		b.ContractType = strings.TrimSpace(raw.ContractType)

		expiry, err := NormalizeDatetime(raw.ExpiryDate)
		if err != nil {
			return Bar{}, &FieldError{Column: "ExpiryDate", Value: raw.ExpiryDate, Row: -1}
		}
		b.ExpiryDate = expiry
	}

	if b.Open, err = ParsePrice(raw.Open); err != nil {
		return Bar{}, &FieldError{Column: "Open", Value: raw.Open, Row: -1}
	}
	if b.Close, err = ParsePrice(raw.Close); err != nil {
		return Bar{}, &FieldError{Column: "Close", Value: raw.Close, Row: -1}
	}
	if b.High, err = ParsePrice(raw.High); err != nil {
		return Bar{}, &FieldError{Column: "High", Value: raw.High, Row: -1}
	}
	if b.Low, err = ParsePrice(raw.Low); err != nil {
		return Bar{}, &FieldError{Column: "Low", Value: raw.Low, Row: -1}
	}
	if b.Volume, err = ParseVolume(raw.Volume); err != nil {
		return Bar{}, &FieldError{Column: "Volume", Value: raw.Volume, Row: -1}
	}

	return b, nil
}
