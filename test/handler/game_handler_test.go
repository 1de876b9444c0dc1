package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxviazov/gamelib-analytics/internal/handler"
	"github.com/maxviazov/gamelib-analytics/internal/model"
	"github.com/maxviazov/gamelib-analytics/internal/repository"
	"github.com/maxviazov/gamelib-analytics/internal/service"
)

type fakeGameService struct {
	created model.Game
}

func (f *fakeGameService) CreateGame(_ context.Context, g model.Game) (model.Game, error) {
	if g.Name == "" {
		return model.Game{}, service.NewInvalidInputError([]service.FieldError{{Field: "name", Message: "must not be empty"}})
	}
	g.ID = 1
	f.created = g
	return g, nil
}

func (f *fakeGameService) GetGame(_ context.Context, id int64) (model.Game, error) {
	if id == 1 {
		return model.Game{ID: 1, Name: "Hades", Status: model.StatusInProgress}, nil
	}
	return model.Game{}, repository.ErrNotFound
}

func (f *fakeGameService) UpdateGame(_ context.Context, g model.Game) (model.Game, error) {
	return g, nil
}

func (f *fakeGameService) DeleteGame(_ context.Context, id int64) error {
	if id != 1 {
		return repository.ErrNotFound
	}
	return nil
}

func (f *fakeGameService) ListGames(context.Context, repository.Page) (repository.PageResult[model.Game], error) {
	return repository.PageResult[model.Game]{Items: []model.Game{{ID: 1, Name: "Hades"}}, Total: 1}, nil
}

var _ service.GameService = (*fakeGameService)(nil)

func newGameRouter(svc service.GameService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handler.NewGameHandler(svc).Register(r.Group(handler.APIV1Prefix))
	return r
}

func TestGameCreateEndpoint(t *testing.T) {
	fake := &fakeGameService{}
	r := newGameRouter(fake)

	payload := `{"name":"Hades","price":25,"status":"in_progress","rating":9,"purchase_date":"2024-04-01"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/games", bytes.NewBufferString(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	require.NotNil(t, fake.created.PurchaseDate)
	assert.Equal(t, 1, fake.created.PurchaseDate.Day())

	// Unparseable purchase date is rejected before the service sees it.
	bad := `{"name":"Hades","status":"in_progress","purchase_date":"01/04/2024"}`
	req = httptest.NewRequest(http.MethodPost, "/api/v1/games", bytes.NewBufferString(bad))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Malformed JSON body.
	req = httptest.NewRequest(http.MethodPost, "/api/v1/games", bytes.NewBufferString("{"))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGameGetEndpoint(t *testing.T) {
	r := newGameRouter(&fakeGameService{})

	w := doGET(t, r, "/api/v1/games/1")
	require.Equal(t, http.StatusOK, w.Code)
	var g model.Game
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &g))
	assert.Equal(t, "Hades", g.Name)

	w = doGET(t, r, "/api/v1/games/99")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGameDeleteEndpoint(t *testing.T) {
	r := newGameRouter(&fakeGameService{})

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/games/1", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)

	req = httptest.NewRequest(http.MethodDelete, "/api/v1/games/2", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGameListEndpoint(t *testing.T) {
	r := newGameRouter(&fakeGameService{})

	w := doGET(t, r, "/api/v1/games?limit=10")
	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Items []model.Game `json:"items"`
		Total int          `json:"total"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 1, body.Total)
	require.Len(t, body.Items, 1)
}
