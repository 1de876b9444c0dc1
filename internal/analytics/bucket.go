package analytics

import (
	"fmt"
	"time"
)

// Granularity selects the calendar period size for bucketed aggregates.
type Granularity string

const (
	ByDay     Granularity = "day"
	ByWeek    Granularity = "week"
	ByMonth   Granularity = "month"
	ByQuarter Granularity = "quarter"
	ByYear    Granularity = "year"
)

// Valid reports whether g is a known granularity.
func (g Granularity) Valid() bool {
	switch g {
	case ByDay, ByWeek, ByMonth, ByQuarter, ByYear:
		return true
	default:
		return false
	}
}

// Bucket is the per-period aggregate. DominantGame is nil for periods with
// no sessions so charts can tell "no data" apart from "played nothing much".
type Bucket struct {
	PeriodKey         string  `json:"period"`
	Start             Date    `json:"start"`
	End               Date    `json:"end"`
	TotalHours        float64 `json:"total_hours"`
	SessionCount      int     `json:"session_count"`
	DistinctGameCount int     `json:"distinct_game_count"`
	DominantGame      *string `json:"dominant_game"`
}

// DateRange is a closed interval of calendar days.
type DateRange struct {
	From Date
	To   Date
}

// BucketBy groups events into contiguous fixed-size calendar buckets and
// aggregates each. Buckets cover the requested range (or the full data span
// when r is nil) with no gaps: empty periods appear with zero aggregates.
// Weeks start on Sunday to match the calendar-grid UI. Periods are defined
// purely on calendar dates; daylight-saving transitions are irrelevant here.
func BucketBy(events []Event, g Granularity, r *DateRange) []Bucket {
	if !g.Valid() {
		return nil
	}
	if r == nil {
		if len(events) == 0 {
			return nil
		}
		r = &DateRange{From: events[0].Date, To: events[len(events)-1].Date}
	}
	if r.To.Before(r.From) {
		return nil
	}

	var buckets []Bucket
	for start := periodStart(r.From, g); !start.After(r.To); start = nextPeriodStart(start, g) {
		end := nextPeriodStart(start, g).AddDays(-1)
		buckets = append(buckets, makeBucket(events, g, start, end))
	}
	return buckets
}

func makeBucket(events []Event, g Granularity, start, end Date) Bucket {
	b := Bucket{PeriodKey: periodKey(start, g), Start: start, End: end}

	hoursByGame := make(map[int64]float64)
	nameByGame := make(map[int64]string)
	firstSeen := make(map[int64]int) // game id -> index of first event in bucket
	for i, e := range events {
		if e.Date.Before(start) || e.Date.After(end) {
			continue
		}
		b.TotalHours += e.Hours
		b.SessionCount++
		if _, ok := hoursByGame[e.GameID]; !ok {
			firstSeen[e.GameID] = i
			nameByGame[e.GameID] = e.GameName
		}
		hoursByGame[e.GameID] += e.Hours
	}
	b.DistinctGameCount = len(hoursByGame)

	// Dominant game: most hours in the bucket, ties broken by whichever
	// game had the earlier first session (events are date-ordered).
	var bestID int64
	found := false
	for id, h := range hoursByGame {
		if !found || h > hoursByGame[bestID] ||
			(h == hoursByGame[bestID] && firstSeen[id] < firstSeen[bestID]) {
			bestID = id
			found = true
		}
	}
	if found {
		name := nameByGame[bestID]
		b.DominantGame = &name
	}
	return b
}

// periodStart snaps d to the first day of its period.
func periodStart(d Date, g Granularity) Date {
	switch g {
	case ByDay:
		return d
	case ByWeek:
		return d.AddDays(-int(d.Weekday())) // back to Sunday
	case ByMonth:
		return Date{Year: d.Year, Month: d.Month, Day: 1}
	case ByQuarter:
		q := (int(d.Month) - 1) / 3
		return Date{Year: d.Year, Month: time.Month(q*3 + 1), Day: 1}
	case ByYear:
		return Date{Year: d.Year, Month: 1, Day: 1}
	}
	return d
}

// nextPeriodStart returns the first day of the following period.
func nextPeriodStart(d Date, g Granularity) Date {
	switch g {
	case ByDay:
		return d.AddDays(1)
	case ByWeek:
		return d.AddDays(7)
	case ByMonth:
		return d.AddMonths(1)
	case ByQuarter:
		return d.AddMonths(3)
	case ByYear:
		return d.AddMonths(12)
	}
	return d.AddDays(1)
}

// periodKey renders the chart axis label for the period starting at d.
func periodKey(d Date, g Granularity) string {
	switch g {
	case ByDay:
		return d.String()
	case ByWeek:
		year, week := d.utc().ISOWeek()
		return fmt.Sprintf("%04d-W%02d", year, week)
	case ByMonth:
		return fmt.Sprintf("%04d-%02d", d.Year, int(d.Month))
	case ByQuarter:
		return fmt.Sprintf("%04d-Q%d", d.Year, (int(d.Month)-1)/3+1)
	case ByYear:
		return fmt.Sprintf("%04d", d.Year)
	}
	return d.String()
}
