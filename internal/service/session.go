package service

import (
	"context"
	"errors"
	"math"

	"github.com/rs/zerolog"

	"github.com/maxviazov/gamelib-analytics/internal/analytics"
	"github.com/maxviazov/gamelib-analytics/internal/model"
	"github.com/maxviazov/gamelib-analytics/internal/repository"
)

type sessionService struct {
	sessions repository.SessionRepository
	games    repository.GameRepository
	tx       repository.TxManager
	log      zerolog.Logger
}

func NewSessionService(sessions repository.SessionRepository, games repository.GameRepository, tx repository.TxManager, logger zerolog.Logger) SessionService {
	l := logger.With().Str("module", "service").Str("component", "session").Logger()
	return &sessionService{sessions: sessions, games: games, tx: tx, log: l}
}

// LogSession validates and persists one play session. The date arrives as a
// plain "YYYY-MM-DD" string and goes through the one blessed parser; handing
// RFC3339 instants around is how the old dashboard grew its off-by-one-day
// bugs.
func (s *sessionService) LogSession(ctx context.Context, gameID int64, date string, hours float64, note string) (model.PlaySession, error) {
	var ferrs []FieldError
	if gameID <= 0 {
		ferrs = append(ferrs, FieldError{Field: "game_id", Message: "must be > 0"})
	}
	day, err := analytics.ParseDate(date)
	if err != nil {
		ferrs = append(ferrs, FieldError{Field: "date", Message: "must be YYYY-MM-DD"})
	}
	if hours < 0 || math.IsNaN(hours) || math.IsInf(hours, 0) {
		ferrs = append(ferrs, FieldError{Field: "hours", Message: "must be a finite number >= 0"})
	}
	if err := NewInvalidInputError(ferrs); err != nil {
		s.log.Debug().Interface("field_errors", FieldErrors(err)).Msg("session validation failed")
		return model.PlaySession{}, err
	}

	var existenceErrs []FieldError
	var out model.PlaySession
	txErr := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if _, err := s.games.GetByID(ctx, gameID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				existenceErrs = append(existenceErrs, FieldError{Field: "game_id", Message: "game does not exist"})
				return nil
			}
			return err
		}
		created, err := s.sessions.Create(ctx, model.PlaySession{
			GameID: gameID,
			Date:   day.Time(nil),
			Hours:  hours,
			Note:   note,
		})
		if err != nil {
			return err
		}
		out = created
		return nil
	})
	if txErr != nil {
		s.log.Error().Err(txErr).Int64("game_id", gameID).Msg("log session failed")
		return model.PlaySession{}, txErr
	}
	if err := NewInvalidInputError(existenceErrs); err != nil {
		return model.PlaySession{}, err
	}
	return out, nil
}

func (s *sessionService) DeleteSession(ctx context.Context, id int64) error {
	if id <= 0 {
		return NewInvalidInputError([]FieldError{{Field: "id", Message: "must be > 0"}})
	}
	return s.sessions.Delete(ctx, id)
}

func (s *sessionService) ListSessions(ctx context.Context, gameID int64) ([]model.PlaySession, error) {
	if gameID <= 0 {
		return nil, NewInvalidInputError([]FieldError{{Field: "game_id", Message: "must be > 0"}})
	}
	return s.sessions.ListByGame(ctx, gameID)
}
