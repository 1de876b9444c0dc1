package service_test

import (
	"context"
	"errors"
	"io"
	"math"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxviazov/gamelib-analytics/internal/model"
	"github.com/maxviazov/gamelib-analytics/internal/repository"
	"github.com/maxviazov/gamelib-analytics/internal/service"
)

type fakeGameRepo struct {
	byID   map[int64]model.Game
	nextID int64
}

func newFakeGameRepo() *fakeGameRepo {
	return &fakeGameRepo{byID: map[int64]model.Game{}, nextID: 1}
}

func (f *fakeGameRepo) Create(_ context.Context, g model.Game) (model.Game, error) {
	g.ID = f.nextID
	f.nextID++
	f.byID[g.ID] = g
	return g, nil
}

func (f *fakeGameRepo) GetByID(_ context.Context, id int64) (model.Game, error) {
	if g, ok := f.byID[id]; ok {
		return g, nil
	}
	return model.Game{}, repository.ErrNotFound
}

func (f *fakeGameRepo) Update(_ context.Context, g model.Game) (model.Game, error) {
	if _, ok := f.byID[g.ID]; !ok {
		return model.Game{}, repository.ErrNotFound
	}
	f.byID[g.ID] = g
	return g, nil
}

func (f *fakeGameRepo) Delete(_ context.Context, id int64) error {
	if _, ok := f.byID[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

func (f *fakeGameRepo) List(_ context.Context, _ repository.Page) (repository.PageResult[model.Game], error) {
	return repository.PageResult[model.Game]{}, nil
}

var _ repository.GameRepository = (*fakeGameRepo)(nil)

type fakeTx struct{}

func (fakeTx) WithinTx(ctx context.Context, fn repository.TxFunc) error { return fn(ctx) }

var _ repository.TxManager = fakeTx{}

func hasFieldError(err error, field string) bool {
	for _, fe := range service.FieldErrors(err) {
		if fe.Field == field {
			return true
		}
	}
	return false
}

func TestGameServiceCreateValidation(t *testing.T) {
	svc := service.NewGameService(newFakeGameRepo(), fakeTx{}, zerolog.New(io.Discard))
	ctx := context.Background()

	cases := []struct {
		name    string
		game    model.Game
		wantErr bool
		field   string
	}{
		{"empty name", model.Game{Status: model.StatusNotStarted}, true, "name"},
		{"negative price", model.Game{Name: "Hades", Price: -1, Status: model.StatusNotStarted}, true, "price"},
		{"nan price", model.Game{Name: "Hades", Price: math.NaN(), Status: model.StatusNotStarted}, true, "price"},
		{"bad status", model.Game{Name: "Hades", Status: "playing"}, true, "status"},
		{"rating too high", model.Game{Name: "Hades", Status: model.StatusCompleted, Rating: 11}, true, "rating"},
		{"negative baseline", model.Game{Name: "Hades", Status: model.StatusNotStarted, BaselineHours: -2}, true, "baseline_hours"},
		{"ok", model.Game{Name: "Hades", Price: 25, Status: model.StatusInProgress, Rating: 9}, false, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			created, err := svc.CreateGame(ctx, tc.game)
			if tc.wantErr {
				require.ErrorIs(t, err, service.ErrInvalidInput)
				assert.True(t, hasFieldError(err, tc.field), "expected field error for %q", tc.field)
				return
			}
			require.NoError(t, err)
			assert.NotZero(t, created.ID)
		})
	}
}

func TestGameServiceGetUpdateDelete(t *testing.T) {
	repo := newFakeGameRepo()
	svc := service.NewGameService(repo, fakeTx{}, zerolog.New(io.Discard))
	ctx := context.Background()

	created, err := svc.CreateGame(ctx, model.Game{Name: "Hades", Status: model.StatusInProgress})
	require.NoError(t, err)

	_, err = svc.GetGame(ctx, 0)
	assert.ErrorIs(t, err, service.ErrInvalidInput)

	got, err := svc.GetGame(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Hades", got.Name)

	got.Status = model.StatusCompleted
	updated, err := svc.UpdateGame(ctx, got)
	require.NoError(t, err)
	assert.Equal(t, model.StatusCompleted, updated.Status)

	require.NoError(t, svc.DeleteGame(ctx, created.ID))
	_, err = svc.GetGame(ctx, created.ID)
	assert.True(t, errors.Is(err, repository.ErrNotFound))
}
