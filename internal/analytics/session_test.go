package analytics

import (
	"io"
	"math"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxviazov/gamelib-analytics/internal/model"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func testLogger() zerolog.Logger { return zerolog.New(io.Discard) }

func TestExtractSessionsOrdering(t *testing.T) {
	games := []model.Game{
		{ID: 1, Name: "Hades", Sessions: []model.PlaySession{
			{ID: 10, GameID: 1, Date: day(2024, 3, 2), Hours: 2},
			{ID: 11, GameID: 1, Date: day(2024, 3, 1), Hours: 1},
		}},
		{ID: 2, Name: "Celeste", Sessions: []model.PlaySession{
			{ID: 20, GameID: 2, Date: day(2024, 3, 1), Hours: 3},
		}},
	}
	events := ExtractSessions(games, testLogger())
	require.Len(t, events, 3)

	assert.Equal(t, mkDate(2024, time.March, 1), events[0].Date)
	assert.Equal(t, mkDate(2024, time.March, 1), events[1].Date)
	assert.Equal(t, mkDate(2024, time.March, 2), events[2].Date)

	// Stable on ties: Hades' Mar 1 session was seen before Celeste's.
	assert.Equal(t, "Hades", events[0].GameName)
	assert.Equal(t, "Celeste", events[1].GameName)
}

func TestExtractSessionsDropsMalformed(t *testing.T) {
	games := []model.Game{
		{ID: 1, Name: "Hades", Sessions: []model.PlaySession{
			{ID: 1, GameID: 1, Date: day(2024, 3, 1), Hours: -5},
			{ID: 2, GameID: 1, Date: day(2024, 3, 2), Hours: 2},
			{ID: 3, GameID: 1, Date: day(2024, 3, 3), Hours: math.NaN()},
			{ID: 4, GameID: 1, Date: day(2024, 3, 4), Hours: math.Inf(1)},
		}},
	}
	events := ExtractSessions(games, testLogger())

	// The bad rows vanish; the valid session of the same game survives.
	require.Len(t, events, 1)
	assert.Equal(t, 2.0, events[0].Hours)
	assert.Equal(t, mkDate(2024, time.March, 2), events[0].Date)
}

func TestExtractSessionsEmptyAndIdempotent(t *testing.T) {
	assert.Empty(t, ExtractSessions(nil, testLogger()))
	assert.Empty(t, ExtractSessions([]model.Game{{ID: 1, Name: "No sessions"}}, testLogger()))

	games := []model.Game{
		{ID: 1, Name: "Hades", Sessions: []model.PlaySession{
			{ID: 1, GameID: 1, Date: day(2024, 3, 1), Hours: 1.5},
			{ID: 2, GameID: 1, Date: day(2024, 3, 2), Hours: 0.5},
		}},
	}
	first := ExtractSessions(games, testLogger())
	second := ExtractSessions(games, testLogger())
	assert.Equal(t, first, second)
}
