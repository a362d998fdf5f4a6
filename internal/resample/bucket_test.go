package resample

import (
	"errors"
	"testing"
	"time"
)

func ts(day, hour, minute int) time.Time {
	return time.Date(2026, 1, day, hour, minute, 0, 0, time.UTC)
}

func TestAssignBucket(t *testing.T) {
	tests := []struct {
		name string
		ts   time.Time
		tf   int
		want time.Time
	}{
		{"open minute 3min", ts(2, 9, 30), 3, ts(2, 9, 30)},
		{"second minute 3min", ts(2, 9, 31), 3, ts(2, 9, 30)},
		{"third minute 3min", ts(2, 9, 32), 3, ts(2, 9, 30)},
		{"fourth minute rolls 3min", ts(2, 9, 33), 3, ts(2, 9, 33)},
		{"5min boundary", ts(2, 9, 35), 5, ts(2, 9, 35)},
		{"5min interior", ts(2, 9, 39), 5, ts(2, 9, 35)},
		{"15min interior", ts(2, 10, 14), 15, ts(2, 10, 0)},
		{"hour anchored to open", ts(2, 10, 29), 60, ts(2, 9, 30)},
		{"second hour", ts(2, 10, 30), 60, ts(2, 10, 30)},
		{"last minute", ts(2, 15, 59), 60, ts(2, 15, 30)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := AssignBucket(tt.ts, tt.tf)
			if err != nil {
				t.Fatalf("AssignBucket(%v, %d) error: %v", tt.ts, tt.tf, err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("AssignBucket(%v, %d) = %v, want %v", tt.ts, tt.tf, got, tt.want)
			}
		})
	}
}

func TestAssignBucketUnsupported(t *testing.T) {
	for _, tf := range []int{0, 1, 2, 7, 30, 120, -5} {
		if _, err := AssignBucket(ts(2, 10, 0), tf); !errors.Is(err, ErrUnsupportedTimeframe) {
			t.Errorf("AssignBucket(tf=%d) error = %v, want ErrUnsupportedTimeframe", tf, err)
		}
	}
}

func TestAssignBucketMonotonic(t *testing.T) {
	// Within one trading date, bucket starts never decrease as the
	// timestamp advances minute by minute.
	for _, tf := range []int{3, 5, 15, 60} {
		prev := time.Time{}
		for cur := ts(2, 9, 30); !cur.After(ts(2, 15, 59)); cur = cur.Add(time.Minute) {
			bucket, err := AssignBucket(cur, tf)
			if err != nil {
				t.Fatalf("AssignBucket(%v, %d): %v", cur, tf, err)
			}
			if bucket.Before(prev) {
				t.Fatalf("tf=%d: bucket %v before previous %v at ts %v", tf, bucket, prev, cur)
			}
			prev = bucket
		}
	}
}

func TestAssignBucketResetsAcrossDays(t *testing.T) {
	// 15:59 day one and 09:30 day two are 31 session minutes apart but must
	// land in different 60-minute buckets.
	b1, err := AssignBucket(ts(2, 15, 59), 60)
	if err != nil {
		t.Fatal(err)
	}
	b2, err := AssignBucket(ts(3, 9, 30), 60)
	if err != nil {
		t.Fatal(err)
	}
	if b1.Equal(b2) {
		t.Errorf("cross-day buckets collide: %v", b1)
	}
	if !b2.Equal(ts(3, 9, 30)) {
		t.Errorf("day-two bucket = %v, want %v", b2, ts(3, 9, 30))
	}
}
