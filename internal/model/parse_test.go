package model

import (
	"testing"
	"time"
)

func TestNormalizeDatetime(t *testing.T) {
	want := time.Date(2026, 1, 2, 9, 31, 0, 0, time.UTC)

	tests := []struct {
		name string
		in   string
		want time.Time
	}{
		{"plain", "2026-01-02 09:31:00", want},
		{"t separator", "2026-01-02T09:31:00", want},
		{"fractional seconds", "2026-01-02 09:31:00.123", want},
		{"zulu", "2026-01-02T09:31:00Z", want},
		{"positive offset", "2026-01-02T09:31:00+05:30", want},
		{"negative offset", "2026-01-02 09:31:00-05:00", want},
		{"fraction and offset", "2026-01-02T09:31:00.123456-05:00", want},
		{"surrounding whitespace", "  2026-01-02 09:31:00  ", want},
		{"no seconds", "2026-01-02 09:31", want},
		{"date only", "2026-01-02", time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeDatetime(tt.in)
			if err != nil {
				t.Fatalf("NormalizeDatetime(%q): %v", tt.in, err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("NormalizeDatetime(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalizeDatetimeRejects(t *testing.T) {
	for _, in := range []string{"", "   ", "not-a-time", "01/02/2026 09:31", "2026-13-40 09:31:00"} {
		if _, err := NormalizeDatetime(in); err == nil {
			t.Errorf("NormalizeDatetime(%q) succeeded, want error", in)
		}
	}
}

func TestParseStrike(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"450", 450, false},
		{" 450 ", 450, false},
		{"450.0", 450, false},
		{"450.000", 450, false},
		{"-10", -10, false},
		{"450.5", 0, true},
		{"450.", 0, true},
		{"abc", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		got, err := ParseStrike(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseStrike(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("ParseStrike(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestParsePrice(t *testing.T) {
	p, err := ParsePrice("12.3450")
	if err != nil || p == nil || *p != 12.345 {
		t.Errorf("ParsePrice(12.3450) = %v, %v", p, err)
	}

	p, err = ParsePrice("")
	if err != nil || p != nil {
		t.Errorf("ParsePrice(\"\") = %v, %v, want nil, nil", p, err)
	}

	p, err = ParsePrice(`"9.25"`)
	if err != nil || p == nil || *p != 9.25 {
		t.Errorf("ParsePrice(quoted) = %v, %v", p, err)
	}

	if _, err := ParsePrice("n/a"); err == nil {
		t.Error("ParsePrice(n/a) succeeded, want error")
	}
}

func TestParseVolume(t *testing.T) {
	tests := []struct {
		in      string
		want    int64
		wantErr bool
	}{
		{"123", 123, false},
		{"", 0, false},
		{"123.0", 123, false},
		{"0", 0, false},
		{"12.5", 0, true},
		{"xyz", 0, true},
	}

	for _, tt := range tests {
		got, err := ParseVolume(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseVolume(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("ParseVolume(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestParseBar(t *testing.T) {
	raw := RawBar{
		StrikePrice:  "450",
		ContractType: " call ",
		ExpiryDate:   "2026-01-16",
		Timestamp:    "2026-01-02T09:31:00",
		Open:         "5.10", Close: "5.20", High: "5.25", Low: "5.05",
		Volume: "42",
	}

	b, err := ParseBar(raw, KindOption)
	if err != nil {
		t.Fatal(err)
	}
	if b.StrikePrice != 450 || b.ContractType != "call" {
		t.Errorf("identity = %d %q", b.StrikePrice, b.ContractType)
	}
	if !b.Timestamp.Equal(time.Date(2026, 1, 2, 9, 31, 0, 0, time.UTC)) {
		t.Errorf("timestamp = %v", b.Timestamp)
	}
	if b.Open == nil || *b.Open != 5.10 || b.Volume != 42 {
		t.Errorf("values = %+v", b)
	}
}

func TestParseBarNullOHLC(t *testing.T) {
	b, err := ParseBar(RawBar{Timestamp: "2026-01-02 09:31:00"}, KindStock)
	if err != nil {
		t.Fatal(err)
	}
	if b.Open != nil || b.Close != nil || b.High != nil || b.Low != nil {
		t.Errorf("empty OHLC should parse to nil, got %+v", b)
	}
	if b.Volume != 0 {
		t.Errorf("empty volume should parse to 0, got %d", b.Volume)
	}
}

func TestParseBarMalformedNamesColumn(t *testing.T) {
	raw := RawBar{Timestamp: "2026-01-02 09:31:00", Open: "bad"}
	_, err := ParseBar(raw, KindStock)
	fe, ok := err.(*FieldError)
	if !ok {
		t.Fatalf("error = %v, want *FieldError", err)
	}
	if fe.Column != "Open" {
		t.Errorf("Column = %q, want Open", fe.Column)
	}
}
