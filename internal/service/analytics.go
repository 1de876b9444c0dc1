package service

import (
	"context"
	"encoding/json"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/maxviazov/gamelib-analytics/internal/analytics"
	"github.com/maxviazov/gamelib-analytics/internal/model"
	"github.com/maxviazov/gamelib-analytics/internal/repository"
)

// forecastWindowMonths is the trailing window for acquisition/completion
// rates. Three calendar months, arithmetic mean, no seasonal adjustment.
const forecastWindowMonths = 3

// Overview is the dashboard headline card.
type Overview struct {
	TotalGames    int                     `json:"total_games"`
	OwnedGames    int                     `json:"owned_games"`
	BacklogSize   int                     `json:"backlog_size"`
	TotalHours    float64                 `json:"total_hours"`
	TotalSpend    float64                 `json:"total_spend"`
	CostPerHour   float64                 `json:"cost_per_hour"` // 0 when no hours logged
	Streak        analytics.Streak        `json:"streak"`
	HoursTrend    analytics.Trend         `json:"hours_trend"`
	SpendingTrend analytics.Trend         `json:"spending_trend"`
	TopGenres     []analytics.SeriesPoint `json:"top_genres"`
}

// Classifications bundles all heuristic scorers for the personality card.
type Classifications struct {
	SessionStyle   analytics.Score[analytics.SessionStyle]   `json:"session_style"`
	RotationHealth analytics.Score[analytics.RotationHealth] `json:"rotation_health"`
	Personality    analytics.Score[analytics.Personality]    `json:"personality"`
}

// Cache stores serialized derived results keyed by library revision.
// A nil Cache is valid and disables memoization entirely; results are
// recomputed per call, which is correct, just slower.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}

type analyticsService struct {
	library    repository.LibraryRepository
	cache      Cache
	thresholds analytics.Thresholds
	now        Clock
	log        zerolog.Logger
}

// NewAnalyticsService wires the derivation engine to the stored library.
// The clock is injected so streaks and forecasts are deterministic in tests.
func NewAnalyticsService(library repository.LibraryRepository, cache Cache, th analytics.Thresholds, now Clock, logger zerolog.Logger) AnalyticsService {
	if now == nil {
		now = time.Now
	}
	l := logger.With().Str("module", "service").Str("component", "analytics").Logger()
	return &analyticsService{library: library, cache: cache, thresholds: th, now: now, log: l}
}

func (s *analyticsService) today() analytics.Date {
	return analytics.DateOf(s.now())
}

func (s *analyticsService) snapshot(ctx context.Context) ([]model.Game, []analytics.Event, string, error) {
	games, revision, err := s.library.Snapshot(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("library snapshot failed")
		return nil, nil, "", err
	}
	return games, analytics.ExtractSessions(games, s.log), revision, nil
}

// fromCache attempts a cache hit; any cache failure degrades to a recompute.
func fromCache[T any](ctx context.Context, s *analyticsService, key string, out *T) bool {
	if s.cache == nil {
		return false
	}
	raw, err := s.cache.Get(ctx, key)
	if err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("cache get failed")
		return false
	}
	if raw == nil {
		return false
	}
	if err := json.Unmarshal(raw, out); err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("cache payload unreadable")
		return false
	}
	return true
}

func toCache[T any](ctx context.Context, s *analyticsService, key string, v T) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, raw); err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("cache set failed")
	}
}

func (s *analyticsService) Overview(ctx context.Context) (Overview, error) {
	games, events, revision, err := s.snapshot(ctx)
	if err != nil {
		return Overview{}, err
	}

	key := "overview:" + revision + ":" + s.today().String()
	var cached Overview
	if fromCache(ctx, s, key, &cached) {
		return cached, nil
	}

	o := Overview{TotalGames: len(games)}
	for _, g := range games {
		if g.Status == model.StatusWishlist {
			continue
		}
		o.OwnedGames++
		o.TotalSpend += g.Price
		o.TotalHours += g.TotalHours()
		if g.Status == model.StatusNotStarted || g.Status == model.StatusInProgress {
			o.BacklogSize++
		}
	}
	if o.TotalHours > 0 {
		o.CostPerHour = o.TotalSpend / o.TotalHours
	}

	o.Streak = analytics.CurrentStreak(events, s.today())
	o.HoursTrend = analytics.TrendOf(monthlyHoursSeries(events), analytics.DefaultTrendTolerance)
	o.SpendingTrend = analytics.TrendOf(monthlySpendSeries(games), analytics.DefaultTrendTolerance)
	o.TopGenres = analytics.GenreBreakdown(games, events)

	toCache(ctx, s, key, o)
	return o, nil
}

func (s *analyticsService) Buckets(ctx context.Context, g analytics.Granularity, from, to string) ([]analytics.Bucket, error) {
	if !g.Valid() {
		return nil, NewInvalidInputError([]FieldError{{Field: "granularity", Message: "must be one of day|week|month|quarter|year"}})
	}
	var r *analytics.DateRange
	if from != "" || to != "" {
		fromDate, err := analytics.ParseDate(from)
		if err != nil {
			return nil, NewInvalidInputError([]FieldError{{Field: "from", Message: "must be YYYY-MM-DD"}})
		}
		toDate, err := analytics.ParseDate(to)
		if err != nil {
			return nil, NewInvalidInputError([]FieldError{{Field: "to", Message: "must be YYYY-MM-DD"}})
		}
		if toDate.Before(fromDate) {
			return nil, NewInvalidInputError([]FieldError{{Field: "to", Message: "must not precede from"}})
		}
		r = &analytics.DateRange{From: fromDate, To: toDate}
	}

	_, events, _, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return analytics.BucketBy(events, g, r), nil
}

func (s *analyticsService) Streak(ctx context.Context) (analytics.Streak, error) {
	_, events, _, err := s.snapshot(ctx)
	if err != nil {
		return analytics.Streak{}, err
	}
	return analytics.CurrentStreak(events, s.today()), nil
}

func (s *analyticsService) Droughts(ctx context.Context, thresholdDays int) ([]analytics.Drought, error) {
	if thresholdDays < 1 {
		return nil, NewInvalidInputError([]FieldError{{Field: "threshold_days", Message: "must be >= 1"}})
	}
	_, events, _, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return analytics.FindDroughts(events, thresholdDays), nil
}

// Forecast projects the backlog-clearance date from trailing acquisition and
// completion rates. No owned games at all means there is nothing to project.
func (s *analyticsService) Forecast(ctx context.Context) (analytics.Forecast, error) {
	games, _, _, err := s.snapshot(ctx)
	if err != nil {
		return analytics.Forecast{}, err
	}

	var purchases, completions []analytics.Date
	backlog := 0
	owned := 0
	for _, g := range games {
		if g.Status == model.StatusWishlist {
			continue
		}
		owned++
		if g.PurchaseDate != nil {
			purchases = append(purchases, analytics.DateOf(*g.PurchaseDate))
		}
		if g.Status == model.StatusCompleted && g.EndDate != nil {
			completions = append(completions, analytics.DateOf(*g.EndDate))
		}
		if g.Status == model.StatusNotStarted || g.Status == model.StatusInProgress {
			backlog++
		}
	}
	if owned == 0 {
		return analytics.Forecast{InsufficientData: true}, nil
	}

	today := s.today()
	acqRate, ok := analytics.TrailingMonthlyRate(purchases, today, forecastWindowMonths)
	if !ok {
		return analytics.Forecast{InsufficientData: true}, nil
	}
	compRate, ok := analytics.TrailingMonthlyRate(completions, today, forecastWindowMonths)
	if !ok {
		return analytics.Forecast{InsufficientData: true}, nil
	}
	return analytics.ForecastCompletion(acqRate, compRate, backlog, today), nil
}

func (s *analyticsService) Classifications(ctx context.Context) (Classifications, error) {
	games, events, revision, err := s.snapshot(ctx)
	if err != nil {
		return Classifications{}, err
	}

	key := "classifications:" + revision + ":" + s.today().String()
	var cached Classifications
	if fromCache(ctx, s, key, &cached) {
		return cached, nil
	}

	today := s.today()
	c := Classifications{
		SessionStyle: analytics.ClassifySessionStyle(
			analytics.SessionStyleFeaturesOf(events, today), s.thresholds),
		RotationHealth: analytics.ClassifyRotationHealth(
			analytics.RotationFeaturesOf(events, today, s.thresholds), s.thresholds),
		Personality: analytics.ClassifyPersonality(
			analytics.PersonalityFeaturesOf(games, events, s.thresholds), len(events), s.thresholds),
	}

	toCache(ctx, s, key, c)
	return c, nil
}

// monthlyHoursSeries folds events into a month-keyed hours series for trend
// detection.
func monthlyHoursSeries(events []analytics.Event) []analytics.SeriesPoint {
	buckets := analytics.BucketBy(events, analytics.ByMonth, nil)
	series := make([]analytics.SeriesPoint, 0, len(buckets))
	for _, b := range buckets {
		series = append(series, analytics.SeriesPoint{Period: b.PeriodKey, Value: b.TotalHours})
	}
	return series
}

// monthlySpendSeries groups purchase prices by purchase month. Games without
// a purchase date cannot be placed on the timeline and are skipped here;
// they still count toward total spend.
func monthlySpendSeries(games []model.Game) []analytics.SeriesPoint {
	byMonth := make(map[string]float64)
	var keys []string
	for _, g := range games {
		if g.PurchaseDate == nil || g.Status == model.StatusWishlist {
			continue
		}
		d := analytics.DateOf(*g.PurchaseDate)
		key := d.String()[:7] // YYYY-MM
		if _, ok := byMonth[key]; !ok {
			keys = append(keys, key)
		}
		byMonth[key] += g.Price
	}
	sort.Strings(keys)
	series := make([]analytics.SeriesPoint, 0, len(keys))
	for _, k := range keys {
		series = append(series, analytics.SeriesPoint{Period: k, Value: byMonth[k]})
	}
	return series
}
