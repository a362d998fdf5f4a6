package ingest

import "testing"

func TestParseFilename(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want FileMeta
	}{
		{
			name: "option call",
			in:   "ib_data_01152026_qqq_call_1min_2026-01-23.csv",
			want: FileMeta{Symbol: "qqq", OptionType: "call", TimeframeTag: "1min"},
		},
		{
			name: "option put uppercase",
			in:   "IB_DATA_01152026_QQQ_PUT_1MIN_2026-01-23.CSV",
			want: FileMeta{Symbol: "qqq", OptionType: "put", TimeframeTag: "1min"},
		},
		{
			name: "stock",
			in:   "ib_data_01202026_qqq_1min.csv",
			want: FileMeta{Symbol: "qqq", OptionType: "stock", TimeframeTag: "1min"},
		},
		{
			name: "stock with space in timeframe",
			in:   "ib_data_01202026_qqq_1 min.csv",
			want: FileMeta{Symbol: "qqq", OptionType: "stock", TimeframeTag: "1min"},
		},
		{
			name: "vix is stock-shaped",
			in:   "ib_data_01202026_vix_1min.csv",
			want: FileMeta{Symbol: "vix", OptionType: "stock", TimeframeTag: "1min"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseFilename(tt.in)
			if err != nil {
				t.Fatalf("ParseFilename(%q): %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseFilename(%q) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseFilenameInvalid(t *testing.T) {
	invalid := []string{
		"",
		"qqq.csv",
		"ib_data_qqq_call_1min_x.txt", // wrong extension
		"random_notes.csv",
		"ib_data_01152026_qqq_straddle_1min_x.csv", // unknown contract type
	}
	for _, name := range invalid {
		if _, err := ParseFilename(name); err == nil {
			t.Errorf("ParseFilename(%q) succeeded, want error", name)
		}
	}
}
