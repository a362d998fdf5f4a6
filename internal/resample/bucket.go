package resample

import (
	"errors"
	"fmt"
	"time"

	"github.com/avelez/ohlc-data/internal/model"
	"github.com/avelez/ohlc-data/internal/session"
)

// ErrUnsupportedTimeframe is returned for timeframe widths outside the
// supported set.
var ErrUnsupportedTimeframe = errors.New("unsupported timeframe")

// Supported reports whether the timeframe width (minutes) is a valid
// resample target.
func Supported(tfMinutes int) bool {
	for _, m := range model.Timeframes {
		if m == tfMinutes {
			return true
		}
	}
	return false
}

// AssignBucket maps an in-session timestamp to its candle-bucket start for
// the given timeframe width. The bucket index is computed with integer
// arithmetic on whole minutes since session open; fractional minutes never
// enter the division. Behavior is undefined for out-of-session timestamps,
// which callers must filter beforehand.
func AssignBucket(ts time.Time, tfMinutes int) (time.Time, error) {
	if !Supported(tfMinutes) {
		return time.Time{}, fmt.Errorf("%w: %d minutes", ErrUnsupportedTimeframe, tfMinutes)
	}
	open := session.Start(ts)
	elapsed := int(ts.Sub(open) / time.Minute)
	idx := elapsed / tfMinutes
	return open.Add(time.Duration(idx*tfMinutes) * time.Minute), nil
}
