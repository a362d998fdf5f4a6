package session

import (
	"testing"
	"time"
)

func at(hour, minute, sec int) time.Time {
	return time.Date(2026, 1, 2, hour, minute, sec, 0, time.UTC)
}

func TestStart(t *testing.T) {
	got := Start(at(13, 45, 12))
	want := at(9, 30, 0)
	if !got.Equal(want) {
		t.Errorf("Start = %v, want %v", got, want)
	}

	// Start is a pure function of the date; time-of-day is irrelevant.
	if !Start(at(0, 0, 0)).Equal(want) {
		t.Errorf("Start at midnight = %v, want %v", Start(at(0, 0, 0)), want)
	}
}

func TestContains(t *testing.T) {
	tests := []struct {
		name string
		ts   time.Time
		want bool
	}{
		{"before open", at(9, 29, 59), false},
		{"session open", at(9, 30, 0), true},
		{"mid session", at(12, 0, 0), true},
		{"last minute", at(15, 59, 0), true},
		{"after last minute", at(16, 0, 0), false},
		{"well after close", at(18, 30, 0), false},
		{"midnight", at(0, 0, 0), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Contains(tt.ts); got != tt.want {
				t.Errorf("Contains(%v) = %v, want %v", tt.ts, got, tt.want)
			}
		})
	}
}
