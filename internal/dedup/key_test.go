package dedup

import (
	"errors"
	"testing"
	"time"

	"github.com/avelez/ohlc-data/internal/model"
)

func TestExtractKeyStock(t *testing.T) {
	k, err := ExtractKey(model.RawBar{Timestamp: "2026-01-02 09:31:00"}, model.KindStock)
	if err != nil {
		t.Fatal(err)
	}
	want := Key{Timestamp: "2026-01-02 09:31:00"}
	if k != want {
		t.Errorf("key = %+v, want %+v", k, want)
	}
}

func TestExtractKeyNormalizesFormatting(t *testing.T) {
	// Differently formatted texts for the same instant must produce the
	// same key so duplicates are recognized across source formats.
	variants := []model.RawBar{
		{StrikePrice: "450", ContractType: "call", ExpiryDate: "2026-01-16", Timestamp: "2026-01-02 09:31:00"},
		{StrikePrice: " 450 ", ContractType: " call ", ExpiryDate: "2026-01-16 00:00:00", Timestamp: "2026-01-02T09:31:00"},
		{StrikePrice: "450.0", ContractType: "call", ExpiryDate: "2026-01-16T00:00:00.000", Timestamp: "2026-01-02 09:31:00.500"},
		{StrikePrice: "450", ContractType: "call", ExpiryDate: "2026-01-16T00:00:00Z", Timestamp: "2026-01-02T09:31:00+05:00"},
		{StrikePrice: "450", ContractType: "call", ExpiryDate: "2026-01-16", Timestamp: "2026-01-02 09:31:00-05:00"},
	}

	want := Key{
		StrikePrice:  450,
		ContractType: "call",
		ExpiryDate:   "2026-01-16 00:00:00",
		Timestamp:    "2026-01-02 09:31:00",
	}

	for i, v := range variants {
		k, err := ExtractKey(v, model.KindOption)
		if err != nil {
			t.Fatalf("variant %d: %v", i, err)
		}
		if k != want {
			t.Errorf("variant %d: key = %+v, want %+v", i, k, want)
		}
	}
}

func TestExtractKeyMalformed(t *testing.T) {
	tests := []struct {
		name       string
		row        model.RawBar
		kind       model.InstrumentKind
		wantColumn string
	}{
		{
			name:       "bad timestamp",
			row:        model.RawBar{Timestamp: "not-a-time"},
			kind:       model.KindStock,
			wantColumn: "Timestamp",
		},
		{
			name:       "bad strike",
			row:        model.RawBar{StrikePrice: "45x", ContractType: "call", ExpiryDate: "2026-01-16", Timestamp: "2026-01-02 09:31:00"},
			kind:       model.KindOption,
			wantColumn: "StrikePrice",
		},
		{
			name:       "fractional strike",
			row:        model.RawBar{StrikePrice: "450.5", ContractType: "call", ExpiryDate: "2026-01-16", Timestamp: "2026-01-02 09:31:00"},
			kind:       model.KindOption,
			wantColumn: "StrikePrice",
		},
		{
			name:       "bad expiry",
			row:        model.RawBar{StrikePrice: "450", ContractType: "call", ExpiryDate: "soon", Timestamp: "2026-01-02 09:31:00"},
			kind:       model.KindOption,
			wantColumn: "ExpiryDate",
		},
		{
			name:       "empty timestamp",
			row:        model.RawBar{},
			kind:       model.KindStock,
			wantColumn: "Timestamp",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ExtractKey(tt.row, tt.kind)
			var fe *model.FieldError
			if !errors.As(err, &fe) {
				t.Fatalf("error = %v, want *model.FieldError", err)
			}
			if fe.Column != tt.wantColumn {
				t.Errorf("column = %q, want %q", fe.Column, tt.wantColumn)
			}
		})
	}
}

func TestBarKeyMatchesExtractKey(t *testing.T) {
	raw := model.RawBar{
		StrikePrice:  "450",
		ContractType: "call",
		ExpiryDate:   "2026-01-16T00:00:00",
		Timestamp:    "2026-01-02 09:31:00",
	}
	bar := model.Bar{
		StrikePrice:  450,
		ContractType: "call",
		ExpiryDate:   time.Date(2026, 1, 16, 0, 0, 0, 0, time.UTC),
		Timestamp:    time.Date(2026, 1, 2, 9, 31, 0, 0, time.UTC),
	}

	fromRaw, err := ExtractKey(raw, model.KindOption)
	if err != nil {
		t.Fatal(err)
	}
	fromBar := BarKey(bar, model.KindOption)
	if fromRaw != fromBar {
		t.Errorf("keys differ: raw %+v, bar %+v", fromRaw, fromBar)
	}
}
