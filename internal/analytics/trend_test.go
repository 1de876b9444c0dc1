package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func series(values ...float64) []SeriesPoint {
	s := make([]SeriesPoint, len(values))
	for i, v := range values {
		s[i] = SeriesPoint{Period: string(rune('a' + i)), Value: v}
	}
	return s
}

func TestTrendOf(t *testing.T) {
	// Monthly spend 100,110,90,80,70,60: first-half mean 100, second-half
	// mean 70, down 30%.
	trend := TrendOf(series(100, 110, 90, 80, 70, 60), DefaultTrendTolerance)
	assert.Equal(t, TrendDecreasing, trend.Direction)
	assert.InDelta(t, -30.0, trend.ChangePercent, 0.01)

	trend = TrendOf(series(60, 70, 80, 90, 110, 100), DefaultTrendTolerance)
	assert.Equal(t, TrendIncreasing, trend.Direction)

	// Within the ±5% band counts as stable.
	trend = TrendOf(series(100, 100, 103, 101), DefaultTrendTolerance)
	assert.Equal(t, TrendStable, trend.Direction)
}

func TestTrendOfOddLengthAndDegenerate(t *testing.T) {
	// Odd length: halves of len/2 from each end, middle point ignored.
	trend := TrendOf(series(100, 100, 50, 10, 10), DefaultTrendTolerance)
	assert.Equal(t, TrendDecreasing, trend.Direction)

	assert.Equal(t, TrendStable, TrendOf(series(42), DefaultTrendTolerance).Direction)
	assert.Equal(t, TrendStable, TrendOf(nil, DefaultTrendTolerance).Direction)

	// From zero to something is an increase, not a division blowup.
	trend = TrendOf(series(0, 0, 5, 5), DefaultTrendTolerance)
	assert.Equal(t, TrendIncreasing, trend.Direction)

	assert.Equal(t, TrendStable, TrendOf(series(0, 0, 0, 0), DefaultTrendTolerance).Direction)
}

func TestForecastCompletion(t *testing.T) {
	now := mkDate(2024, time.June, 1)

	// Completing faster than acquiring: backlog of 6 at net 2/month clears
	// in 3 months.
	f := ForecastCompletion(1, 3, 6, now)
	assert.False(t, f.Never)
	assert.Equal(t, 3, f.Months)
	assert.Equal(t, mkDate(2024, time.September, 1), f.ETA)

	// Fractional net rate rounds the horizon up.
	f = ForecastCompletion(1, 2.5, 4, now)
	assert.Equal(t, 3, f.Months)

	// Equal rates: the backlog never clears. Sentinel, not infinity.
	f = ForecastCompletion(2, 2, 6, now)
	assert.True(t, f.Never)
	assert.True(t, f.ETA.IsZero())

	// Acquiring faster than completing: same sentinel.
	assert.True(t, ForecastCompletion(3, 1, 6, now).Never)

	// Nothing in the backlog clears immediately.
	f = ForecastCompletion(5, 0, 0, now)
	assert.False(t, f.Never)
	assert.Equal(t, 0, f.Months)
	assert.Equal(t, now, f.ETA)
}

func TestTrailingMonthlyRate(t *testing.T) {
	asOf := mkDate(2024, time.June, 15)
	dates := []Date{
		mkDate(2024, time.April, 3),
		mkDate(2024, time.May, 20),
		mkDate(2024, time.June, 1),
		mkDate(2024, time.January, 1), // outside the window
		mkDate(2024, time.July, 1),    // future, ignored
	}

	rate, ok := TrailingMonthlyRate(dates, asOf, 3)
	assert.True(t, ok)
	assert.InDelta(t, 1.0, rate, 0.001)

	rate, ok = TrailingMonthlyRate(nil, asOf, 3)
	assert.True(t, ok)
	assert.Equal(t, 0.0, rate)

	// Zero-length window short-circuits instead of dividing by zero.
	_, ok = TrailingMonthlyRate(dates, asOf, 0)
	assert.False(t, ok)
}
