// Package service holds business logic orchestration across repositories and
// handlers. Kept intentionally lean: only use-case coordination, validation
// and domain error shaping.
package service

import (
	"context"
	"errors"
	"time"

	"github.com/maxviazov/gamelib-analytics/internal/analytics"
	"github.com/maxviazov/gamelib-analytics/internal/model"
	"github.com/maxviazov/gamelib-analytics/internal/repository"
)

// ErrInvalidInput is the marker error for aggregated validation failures
// (maps to HTTP 400). Field-level details are retrieved via FieldErrors(err).
var ErrInvalidInput = errors.New("invalid input")

// FieldError describes a single invalid field in a client request.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// invalidInputError aggregates multiple FieldError instances and unwraps to
// ErrInvalidInput.
type invalidInputError struct {
	fields []FieldError
}

func (e *invalidInputError) Error() string        { return ErrInvalidInput.Error() }
func (e *invalidInputError) Unwrap() error        { return ErrInvalidInput }
func (e *invalidInputError) Fields() []FieldError { return e.fields }

// NewInvalidInputError builds an aggregated validation error if any field
// errors are present, nil otherwise.
func NewInvalidInputError(fe []FieldError) error {
	if len(fe) == 0 {
		return nil
	}
	return &invalidInputError{fields: fe}
}

// FieldErrors extracts field errors from an aggregated validation error.
func FieldErrors(err error) []FieldError {
	if err == nil {
		return nil
	}
	type feIface interface{ Fields() []FieldError }
	if v, ok := err.(feIface); ok && errors.Is(err, ErrInvalidInput) {
		return v.Fields()
	}
	return nil
}

// GameService defines library-entry use cases.
type GameService interface {
	CreateGame(ctx context.Context, g model.Game) (model.Game, error)
	GetGame(ctx context.Context, id int64) (model.Game, error)
	UpdateGame(ctx context.Context, g model.Game) (model.Game, error)
	DeleteGame(ctx context.Context, id int64) error
	ListGames(ctx context.Context, page repository.Page) (repository.PageResult[model.Game], error)
}

// SessionService defines play-session use cases. Sessions are immutable;
// an edit is a delete followed by a fresh log.
type SessionService interface {
	LogSession(ctx context.Context, gameID int64, date string, hours float64, note string) (model.PlaySession, error)
	DeleteSession(ctx context.Context, id int64) error
	ListSessions(ctx context.Context, gameID int64) ([]model.PlaySession, error)
}

// AnalyticsService exposes the derivation engine over the stored library.
type AnalyticsService interface {
	Overview(ctx context.Context) (Overview, error)
	Buckets(ctx context.Context, g analytics.Granularity, from, to string) ([]analytics.Bucket, error)
	Streak(ctx context.Context) (analytics.Streak, error)
	Droughts(ctx context.Context, thresholdDays int) ([]analytics.Drought, error)
	Forecast(ctx context.Context) (analytics.Forecast, error)
	Classifications(ctx context.Context) (Classifications, error)
}

// Clock supplies "now" so every derivation is reproducible in tests.
type Clock func() time.Time
