// Package timing holds the time-of-day factor and the best-hour
// estimator derived from historical comment activity.
package timing

import (
	"math"
	"time"

	"github.com/zoracast/zoracast/internal/coin"
)

// Factor maps a planned posting time to a cyclical multiplier in
// [1.0, 2.0). A nil planned time means no adjustment (exactly 1.0).
// The factor is 1 + |sin(hour/12)| over the wall-clock hour 0-23, so it
// repeats every 24 hours and is continuous across midnight.
func Factor(planned *time.Time) float64 {
	if planned == nil {
		return 1.0
	}
	hour := float64(planned.Hour())
	return 1 + math.Abs(math.Sin(hour/12))
}

// BestHour returns the hour of day (0-23) at which the coin's community
// has historically been most active, as the mode of comment posting
// hours. Ties resolve to the highest hour. With no comments it falls
// back to the current hour at call time — a deliberate fallback, not a
// prediction.
func BestHour(comments []coin.Comment, now func() time.Time) int {
	if len(comments) == 0 {
		return now().Hour()
	}
	var counts [24]int
	for _, c := range comments {
		counts[c.PostedAt.Hour()]++
	}
	best := 0
	for h := 1; h < 24; h++ {
		if counts[h] >= counts[best] {
			best = h
		}
	}
	return best
}
