package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mkDate(y int, m time.Month, d int) Date { return Date{Year: y, Month: m, Day: d} }

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-01-15")
	require.NoError(t, err)
	assert.Equal(t, mkDate(2024, time.January, 15), d)

	_, err = ParseDate("2024-1-15")
	assert.Error(t, err)
	_, err = ParseDate("not a date")
	assert.Error(t, err)
	_, err = ParseDate("2024-01-15T00:00:00Z")
	assert.Error(t, err)
}

// The same date string must mean the same calendar day regardless of the
// host timezone. This exact class of off-by-one bugs is why Date exists.
func TestParseDateTimezoneInvariance(t *testing.T) {
	zones := []*time.Location{
		time.FixedZone("UTC-8", -8*3600),
		time.UTC,
		time.FixedZone("UTC+8", 8*3600),
	}
	for _, loc := range zones {
		d, err := ParseDate("2024-01-15")
		require.NoError(t, err)
		assert.Equal(t, 15, d.Day, "zone %s", loc)

		at := d.Time(loc)
		assert.Equal(t, 2024, at.Year(), "zone %s", loc)
		assert.Equal(t, time.January, at.Month(), "zone %s", loc)
		assert.Equal(t, 15, at.Day(), "zone %s", loc)

		// Round-tripping through a time.Time in that zone keeps the day.
		assert.Equal(t, d, DateOf(at), "zone %s", loc)
	}
}

func TestDateArithmetic(t *testing.T) {
	d := mkDate(2024, time.February, 28)
	assert.Equal(t, mkDate(2024, time.February, 29), d.AddDays(1)) // leap year
	assert.Equal(t, mkDate(2024, time.March, 1), d.AddDays(2))
	assert.Equal(t, mkDate(2023, time.December, 31), mkDate(2024, time.January, 1).AddDays(-1))

	assert.Equal(t, 2, mkDate(2024, time.March, 1).DaysSince(d))
	assert.Equal(t, -2, d.DaysSince(mkDate(2024, time.March, 1)))

	assert.Equal(t, mkDate(2024, time.April, 30), mkDate(2024, time.January, 30).AddMonths(3))
	assert.Equal(t, mkDate(2025, time.January, 15), mkDate(2024, time.December, 15).AddMonths(1))
}

func TestDateJSON(t *testing.T) {
	d := mkDate(2024, time.March, 7)
	raw, err := d.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `"2024-03-07"`, string(raw))

	var back Date
	require.NoError(t, back.UnmarshalJSON(raw))
	assert.Equal(t, d, back)

	assert.Error(t, back.UnmarshalJSON([]byte(`42`)))
}
