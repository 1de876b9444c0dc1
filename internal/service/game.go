package service

import (
	"context"
	"math"
	"strings"

	"github.com/rs/zerolog"

	"github.com/maxviazov/gamelib-analytics/internal/model"
	"github.com/maxviazov/gamelib-analytics/internal/repository"
)

type gameService struct {
	games repository.GameRepository
	tx    repository.TxManager
	log   zerolog.Logger
}

func NewGameService(games repository.GameRepository, tx repository.TxManager, logger zerolog.Logger) GameService {
	l := logger.With().Str("module", "service").Str("component", "game").Logger()
	return &gameService{games: games, tx: tx, log: l}
}

// validateGame collects structural problems without touching storage.
// Status transitions are deliberately unconstrained; only the values
// themselves are checked. Inconsistent end < start is allowed and handled
// defensively downstream, it is a data-quality smell, not an error.
func validateGame(g model.Game) []FieldError {
	var ferrs []FieldError
	if strings.TrimSpace(g.Name) == "" {
		ferrs = append(ferrs, FieldError{Field: "name", Message: "must not be empty"})
	}
	if g.Price < 0 || math.IsNaN(g.Price) || math.IsInf(g.Price, 0) {
		ferrs = append(ferrs, FieldError{Field: "price", Message: "must be a finite number >= 0"})
	}
	if !g.Status.Valid() {
		ferrs = append(ferrs, FieldError{Field: "status", Message: "must be one of not_started|in_progress|completed|wishlist|abandoned"})
	}
	if g.Rating < 0 || g.Rating > 10 {
		ferrs = append(ferrs, FieldError{Field: "rating", Message: "must be between 0 and 10"})
	}
	if g.BaselineHours < 0 || math.IsNaN(g.BaselineHours) || math.IsInf(g.BaselineHours, 0) {
		ferrs = append(ferrs, FieldError{Field: "baseline_hours", Message: "must be a finite number >= 0"})
	}
	return ferrs
}

func (s *gameService) CreateGame(ctx context.Context, g model.Game) (model.Game, error) {
	g.Name = strings.TrimSpace(g.Name)
	if err := NewInvalidInputError(validateGame(g)); err != nil {
		s.log.Debug().Interface("field_errors", FieldErrors(err)).Msg("game validation failed")
		return model.Game{}, err
	}

	var out model.Game
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		created, err := s.games.Create(ctx, g)
		if err != nil {
			return err
		}
		out = created
		return nil
	})
	if err != nil {
		s.log.Error().Err(err).Str("name", g.Name).Msg("create game failed")
		return model.Game{}, err
	}
	return out, nil
}

func (s *gameService) GetGame(ctx context.Context, id int64) (model.Game, error) {
	if id <= 0 {
		return model.Game{}, NewInvalidInputError([]FieldError{{Field: "id", Message: "must be > 0"}})
	}
	return s.games.GetByID(ctx, id)
}

func (s *gameService) UpdateGame(ctx context.Context, g model.Game) (model.Game, error) {
	ferrs := validateGame(g)
	if g.ID <= 0 {
		ferrs = append(ferrs, FieldError{Field: "id", Message: "must be > 0"})
	}
	if err := NewInvalidInputError(ferrs); err != nil {
		return model.Game{}, err
	}
	g.Name = strings.TrimSpace(g.Name)

	out, err := s.games.Update(ctx, g)
	if err != nil {
		s.log.Error().Err(err).Int64("id", g.ID).Msg("update game failed")
		return model.Game{}, err
	}
	return out, nil
}

func (s *gameService) DeleteGame(ctx context.Context, id int64) error {
	if id <= 0 {
		return NewInvalidInputError([]FieldError{{Field: "id", Message: "must be > 0"}})
	}
	if err := s.games.Delete(ctx, id); err != nil {
		s.log.Error().Err(err).Int64("id", id).Msg("delete game failed")
		return err
	}
	return nil
}

func (s *gameService) ListGames(ctx context.Context, page repository.Page) (repository.PageResult[model.Game], error) {
	p := normalizePage(page)
	res, err := s.games.List(ctx, p)
	if err != nil {
		s.log.Error().Err(err).Int("limit", p.Limit).Int("offset", p.Offset).Msg("list games failed")
		return repository.PageResult[model.Game]{}, err
	}
	return res, nil
}
