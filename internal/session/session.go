// Package session defines the trading-session window. All timestamps are
// assumed session-local; no timezone conversion is performed.
package session

import "time"

// Session window in seconds-of-day. The last tradeable minute opens at 15:59,
// so the window is the closed interval [09:30:00, 15:59:00].
const (
	openSeconds       = 9*3600 + 30*60
	lastMinuteSeconds = 15*3600 + 59*60
)

// Start returns the session open (09:30:00) on the timestamp's trading date.
func Start(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 9, 30, 0, 0, t.Location())
}

// Contains reports whether the timestamp's time-of-day falls inside the
// session window. A bar at exactly 15:59:00 is in; 16:00:00 is out.
func Contains(t time.Time) bool {
	sec := t.Hour()*3600 + t.Minute()*60 + t.Second()
	return sec >= openSeconds && sec <= lastMinuteSeconds
}
