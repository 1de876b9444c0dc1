package analytics

import (
	"math"
	"sort"

	"github.com/rs/zerolog"

	"github.com/maxviazov/gamelib-analytics/internal/model"
)

// Event is one play session flattened out of its owning game. Downstream
// derivations consume this instead of walking Game.Sessions themselves so
// the ordering and filtering rules live in exactly one place.
type Event struct {
	Date     Date    `json:"date"`
	GameID   int64   `json:"game_id"`
	GameName string  `json:"game_name"`
	Hours    float64 `json:"hours"`
	Note     string  `json:"note,omitempty"`
}

// ExtractSessions flattens all games' session logs into a single sequence
// sorted ascending by date. The sort is stable: same-day sessions keep their
// per-game insertion order. Sessions with negative or non-finite hours are
// dropped with a warning; one malformed row must never blank out the
// dashboard, so this is best-effort by contract.
func ExtractSessions(games []model.Game, log zerolog.Logger) []Event {
	var events []Event
	for _, g := range games {
		for _, s := range g.Sessions {
			if s.Hours < 0 || math.IsNaN(s.Hours) || math.IsInf(s.Hours, 0) {
				log.Warn().
					Int64("game_id", g.ID).
					Int64("session_id", s.ID).
					Float64("hours", s.Hours).
					Msg("dropping session with invalid hours")
				continue
			}
			events = append(events, Event{
				Date:     DateOf(s.Date),
				GameID:   g.ID,
				GameName: g.Name,
				Hours:    s.Hours,
				Note:     s.Note,
			})
		}
	}
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Date.Before(events[j].Date)
	})
	return events
}

// activeDays reduces events to the sorted set of distinct calendar days with
// at least one session. Shared by streak and drought scans.
func activeDays(events []Event) []Date {
	seen := make(map[Date]struct{}, len(events))
	var days []Date
	for _, e := range events {
		if _, ok := seen[e.Date]; ok {
			continue
		}
		seen[e.Date] = struct{}{}
		days = append(days, e.Date)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })
	return days
}
