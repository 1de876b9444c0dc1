package analytics

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/maxviazov/gamelib-analytics/internal/model"
)

// SessionStyle labels how the user tends to sit down with games.
type SessionStyle string

const (
	StyleMarathonRunner   SessionStyle = "marathon_runner"
	StyleSnackGamer       SessionStyle = "snack_gamer"
	StyleWeekendWarrior   SessionStyle = "weekend_warrior"
	StyleConsistentPlayer SessionStyle = "consistent_player"
	StyleBingeAndRest     SessionStyle = "binge_and_rest"
	StyleUnknown          SessionStyle = "insufficient_data"
)

// RotationHealth labels how many games are in active rotation.
type RotationHealth string

const (
	RotationFocused     RotationHealth = "focused"
	RotationHealthy     RotationHealth = "healthy"
	RotationJuggling    RotationHealth = "juggling"
	RotationOverwhelmed RotationHealth = "overwhelmed"
	RotationObsessed    RotationHealth = "obsessed"
	RotationUnknown     RotationHealth = "insufficient_data"
)

// Personality is the archetype assigned by the weighted-feature classifier.
type Personality string

const (
	PersonalityCompletionist Personality = "completionist"
	PersonalityDeepDiver     Personality = "deep_diver"
	PersonalityVarietySeeker Personality = "variety_seeker"
	PersonalityCasualDrifter Personality = "casual_drifter"
	PersonalityUnknown       Personality = "insufficient_data"
)

// Score is the common result shape of all classifiers: a label from a closed
// set, a 0-100 confidence, and a human-readable rationale for narrative UI.
type Score[L ~string] struct {
	Label     L      `json:"label"`
	Value     int    `json:"value"`
	Rationale string `json:"rationale"`
}

// SessionStyleFeatures are the aggregate inputs to the style classifier.
type SessionStyleFeatures struct {
	SessionCount    int
	AvgSessionHours float64
	SessionsPerWeek float64
	// Variation is the coefficient of variation of session length
	// (stddev / mean); high values mean bursty play.
	Variation    float64
	WeekendShare float64 // share of hours logged on Sat/Sun
}

// SessionStyleFeaturesOf computes style features over the trailing span of
// the event sequence. With no events it returns the zero value, which the
// classifier maps to the insufficient-data label.
func SessionStyleFeaturesOf(events []Event, asOf Date) SessionStyleFeatures {
	f := SessionStyleFeatures{SessionCount: len(events)}
	if len(events) == 0 {
		return f
	}

	var total, weekend float64
	for _, e := range events {
		total += e.Hours
		if wd := e.Date.Weekday(); wd == time.Saturday || wd == time.Sunday {
			weekend += e.Hours
		}
	}
	f.AvgSessionHours = total / float64(len(events))
	if total > 0 {
		f.WeekendShare = weekend / total
	}

	var varSum float64
	for _, e := range events {
		d := e.Hours - f.AvgSessionHours
		varSum += d * d
	}
	if f.AvgSessionHours > 0 {
		f.Variation = math.Sqrt(varSum/float64(len(events))) / f.AvgSessionHours
	}

	spanDays := asOf.DaysSince(events[0].Date) + 1
	if spanDays < 7 {
		spanDays = 7
	}
	f.SessionsPerWeek = float64(len(events)) / (float64(spanDays) / 7)
	return f
}

// ClassifySessionStyle maps style features to a label with fixed thresholds.
// Order matters: average length dominates, then weekend concentration, then
// variation splits binge-and-rest from consistent play.
func ClassifySessionStyle(f SessionStyleFeatures, th Thresholds) Score[SessionStyle] {
	if f.SessionCount < th.MinSessions {
		return Score[SessionStyle]{
			Label:     StyleUnknown,
			Rationale: fmt.Sprintf("only %d sessions logged, need %d to classify", f.SessionCount, th.MinSessions),
		}
	}

	switch {
	case f.AvgSessionHours >= th.MarathonAvgHours:
		return Score[SessionStyle]{
			Label:     StyleMarathonRunner,
			Value:     confidence(f.AvgSessionHours/th.MarathonAvgHours - 1),
			Rationale: fmt.Sprintf("average session runs %.1fh", f.AvgSessionHours),
		}
	case f.AvgSessionHours < th.SnackAvgHours:
		return Score[SessionStyle]{
			Label:     StyleSnackGamer,
			Value:     confidence(1 - f.AvgSessionHours/th.SnackAvgHours),
			Rationale: fmt.Sprintf("average session is only %.1fh", f.AvgSessionHours),
		}
	case f.WeekendShare >= th.WeekendShare:
		return Score[SessionStyle]{
			Label:     StyleWeekendWarrior,
			Value:     confidence(f.WeekendShare - th.WeekendShare),
			Rationale: fmt.Sprintf("%.0f%% of hours land on weekends", f.WeekendShare*100),
		}
	case f.Variation >= th.BingeVariation:
		return Score[SessionStyle]{
			Label:     StyleBingeAndRest,
			Value:     confidence(f.Variation - th.BingeVariation),
			Rationale: "session length swings hard between binges and breaks",
		}
	case f.Variation <= th.ConsistentVariation:
		return Score[SessionStyle]{
			Label:     StyleConsistentPlayer,
			Value:     confidence(th.ConsistentVariation - f.Variation),
			Rationale: "session length barely varies",
		}
	default:
		// Middle of the variation band: lean consistent, low confidence.
		return Score[SessionStyle]{
			Label:     StyleConsistentPlayer,
			Value:     40,
			Rationale: "moderate, fairly regular sessions",
		}
	}
}

// RotationFeatures are the inputs to the rotation-health classifier.
type RotationFeatures struct {
	ActiveGames        int     // distinct games with activity in the rotation window
	TopGameWeeklyHours float64 // hours on the single busiest game in the trailing 7 days
}

// RotationFeaturesOf counts active games over the rotation window and
// measures the busiest game's hours over the trailing 7 days, so a weekend
// binge registers at full weekly intensity instead of being diluted across
// the longer window.
func RotationFeaturesOf(events []Event, asOf Date, th Thresholds) RotationFeatures {
	windowStart := asOf.AddDays(-(th.RotationWindowDays - 1))
	weekStart := asOf.AddDays(-6)
	hoursByGame := make(map[int64]float64)
	weekHoursByGame := make(map[int64]float64)
	for _, e := range events {
		if e.Date.Before(windowStart) || e.Date.After(asOf) {
			continue
		}
		hoursByGame[e.GameID] += e.Hours
		if !e.Date.Before(weekStart) {
			weekHoursByGame[e.GameID] += e.Hours
		}
	}

	f := RotationFeatures{ActiveGames: len(hoursByGame)}
	for _, h := range weekHoursByGame {
		if h > f.TopGameWeeklyHours {
			f.TopGameWeeklyHours = h
		}
	}
	return f
}

// ClassifyRotationHealth buckets the trailing-window active game count.
// Obsessed overrides Focused when the single active game eats more than the
// weekly hour threshold.
func ClassifyRotationHealth(f RotationFeatures, th Thresholds) Score[RotationHealth] {
	switch {
	case f.ActiveGames == 0:
		return Score[RotationHealth]{
			Label:     RotationUnknown,
			Rationale: fmt.Sprintf("no activity in the last %d days", th.RotationWindowDays),
		}
	case f.ActiveGames == 1 && f.TopGameWeeklyHours > th.ObsessedWeeklyHours:
		return Score[RotationHealth]{
			Label:     RotationObsessed,
			Value:     confidence(f.TopGameWeeklyHours/th.ObsessedWeeklyHours - 1),
			Rationale: fmt.Sprintf("one game at %.0fh/week", f.TopGameWeeklyHours),
		}
	case f.ActiveGames == 1:
		return Score[RotationHealth]{Label: RotationFocused, Value: 75, Rationale: "one game in rotation"}
	case f.ActiveGames <= 3:
		return Score[RotationHealth]{Label: RotationHealthy, Value: 90, Rationale: fmt.Sprintf("%d games in rotation", f.ActiveGames)}
	case f.ActiveGames <= 6:
		return Score[RotationHealth]{Label: RotationJuggling, Value: 70, Rationale: fmt.Sprintf("%d games in rotation", f.ActiveGames)}
	default:
		return Score[RotationHealth]{Label: RotationOverwhelmed, Value: 85, Rationale: fmt.Sprintf("%d games in rotation", f.ActiveGames)}
	}
}

// PersonalityFeatures are normalized to [0,1] so archetype distance is
// comparable across dimensions.
type PersonalityFeatures struct {
	CompletionRate     float64 // completed / owned (wishlist excluded)
	GenreConcentration float64 // hours share of the dominant genre
	SessionDepth       float64 // avg session hours / marathon threshold, capped at 1
}

// PersonalityFeaturesOf derives the three personality dimensions from the
// library and its flattened events.
func PersonalityFeaturesOf(games []model.Game, events []Event, th Thresholds) PersonalityFeatures {
	var f PersonalityFeatures

	owned, completed := 0, 0
	for _, g := range games {
		if g.Status == model.StatusWishlist {
			continue
		}
		owned++
		if g.Status == model.StatusCompleted {
			completed++
		}
	}
	if owned > 0 {
		f.CompletionRate = float64(completed) / float64(owned)
	}

	genreByID := make(map[int64]string, len(games))
	for _, g := range games {
		genreByID[g.ID] = g.Genre
	}
	hoursByGenre := make(map[string]float64)
	var total float64
	for _, e := range events {
		hoursByGenre[genreByID[e.GameID]] += e.Hours
		total += e.Hours
	}
	if total > 0 {
		var top float64
		for _, h := range hoursByGenre {
			if h > top {
				top = h
			}
		}
		f.GenreConcentration = top / total
	}

	if len(events) > 0 {
		f.SessionDepth = math.Min(total/float64(len(events))/th.MarathonAvgHours, 1)
	}
	return f
}

// archetype centroids in (completion, genre concentration, depth) space.
var personalityArchetypes = []struct {
	label    Personality
	centroid [3]float64
}{
	{PersonalityCompletionist, [3]float64{0.9, 0.5, 0.5}},
	{PersonalityDeepDiver, [3]float64{0.5, 0.85, 0.8}},
	{PersonalityVarietySeeker, [3]float64{0.35, 0.25, 0.4}},
	{PersonalityCasualDrifter, [3]float64{0.2, 0.4, 0.15}},
}

// ClassifyPersonality picks the nearest archetype centroid and reports match
// strength as the normalized inverse distance. Too few sessions and the
// feature vector is numerically meaningless, hence the sentinel label.
func ClassifyPersonality(f PersonalityFeatures, sessionCount int, th Thresholds) Score[Personality] {
	if sessionCount < th.MinSessions {
		return Score[Personality]{
			Label:     PersonalityUnknown,
			Rationale: fmt.Sprintf("only %d sessions logged, need %d to classify", sessionCount, th.MinSessions),
		}
	}

	vec := [3]float64{f.CompletionRate, f.GenreConcentration, f.SessionDepth}
	best := personalityArchetypes[0]
	bestDist := math.Inf(1)
	for _, a := range personalityArchetypes {
		var sum float64
		for i := range vec {
			d := vec[i] - a.centroid[i]
			sum += d * d
		}
		if dist := math.Sqrt(sum); dist < bestDist {
			bestDist = dist
			best = a
		}
	}

	maxDist := math.Sqrt(3) // farthest corner of the unit cube
	match := int(math.Round((1 - bestDist/maxDist) * 100))
	rationale := fmt.Sprintf("completion %.0f%%, dominant genre %.0f%% of hours",
		f.CompletionRate*100, f.GenreConcentration*100)
	if f.GenreConcentration >= th.GenreRutShare {
		rationale += " (genre rut territory)"
	}
	return Score[Personality]{Label: best.label, Value: clamp(match, 0, 100), Rationale: rationale}
}

// GenreBreakdown returns hours per genre, descending, for the overview card.
func GenreBreakdown(games []model.Game, events []Event) []SeriesPoint {
	genreByID := make(map[int64]string, len(games))
	for _, g := range games {
		genreByID[g.ID] = g.Genre
	}
	byGenre := make(map[string]float64)
	for _, e := range events {
		byGenre[genreByID[e.GameID]] += e.Hours
	}
	points := make([]SeriesPoint, 0, len(byGenre))
	for genre, hours := range byGenre {
		points = append(points, SeriesPoint{Period: genre, Value: hours})
	}
	sort.Slice(points, func(i, j int) bool {
		if points[i].Value != points[j].Value {
			return points[i].Value > points[j].Value
		}
		return points[i].Period < points[j].Period
	})
	return points
}

// confidence squashes an arbitrary non-negative margin into 50..95.
func confidence(margin float64) int {
	if margin < 0 {
		margin = 0
	}
	return clamp(50+int(math.Round(margin*50)), 50, 95)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
