package timing

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/zoracast/zoracast/internal/coin"
)

func at(hour int) *time.Time {
	t := time.Date(2025, 7, 5, hour, 30, 0, 0, time.UTC)
	return &t
}

func TestFactorNilPlannedTime(t *testing.T) {
	assert.Equal(t, 1.0, Factor(nil))
}

func TestFactorHour18(t *testing.T) {
	// 1 + |sin(18/12)| = 1 + |sin(1.5)|
	assert.InDelta(t, 1+math.Abs(math.Sin(1.5)), Factor(at(18)), 1e-12)
	assert.InDelta(t, 1.997, Factor(at(18)), 0.001)
}

func TestFactorBounds(t *testing.T) {
	for h := 0; h < 24; h++ {
		f := Factor(at(h))
		assert.GreaterOrEqual(t, f, 1.0, "hour %d", h)
		assert.Less(t, f, 2.0, "hour %d", h)
	}
}

func TestFactorDailyPeriodicity(t *testing.T) {
	// Same wall-clock hour on different days yields the same factor.
	for h := 0; h < 24; h++ {
		base := time.Date(2025, 7, 5, h, 0, 0, 0, time.UTC)
		for _, k := range []int{1, 7, 365} {
			shifted := base.AddDate(0, 0, k)
			assert.Equal(t, Factor(&base), Factor(&shifted), "hour %d +%dd", h, k)
		}
	}
}

func commentAt(hour int) coin.Comment {
	return coin.Comment{Text: "x", PostedAt: time.Date(2025, 7, 5, hour, 15, 0, 0, time.UTC)}
}

func TestBestHourMode(t *testing.T) {
	comments := []coin.Comment{
		commentAt(9), commentAt(14), commentAt(14), commentAt(14), commentAt(21),
	}
	assert.Equal(t, 14, BestHour(comments, time.Now))
}

func TestBestHourTieBreaksToLatestHour(t *testing.T) {
	comments := []coin.Comment{
		commentAt(3), commentAt(3), commentAt(19), commentAt(19),
	}
	assert.Equal(t, 19, BestHour(comments, time.Now))
}

func TestBestHourEmptyFallsBackToCurrentHour(t *testing.T) {
	now := func() time.Time { return time.Date(2025, 7, 5, 11, 59, 0, 0, time.UTC) }
	assert.Equal(t, 11, BestHour(nil, now))
}

func TestBestHourRange(t *testing.T) {
	var comments []coin.Comment
	for h := 0; h < 24; h++ {
		comments = append(comments, commentAt(h))
	}
	got := BestHour(comments, time.Now)
	assert.GreaterOrEqual(t, got, 0)
	assert.LessOrEqual(t, got, 23)
}
