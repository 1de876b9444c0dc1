package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxviazov/gamelib-analytics/internal/analytics"
	"github.com/maxviazov/gamelib-analytics/internal/handler"
	"github.com/maxviazov/gamelib-analytics/internal/service"
)

type fakeAnalyticsService struct {
	droughtThreshold int
	granularity      analytics.Granularity
}

func (f *fakeAnalyticsService) Overview(context.Context) (service.Overview, error) {
	return service.Overview{TotalGames: 3, TotalHours: 12.5}, nil
}

func (f *fakeAnalyticsService) Buckets(_ context.Context, g analytics.Granularity, from, to string) ([]analytics.Bucket, error) {
	f.granularity = g
	if !g.Valid() {
		return nil, service.NewInvalidInputError([]service.FieldError{{Field: "granularity", Message: "must be one of day|week|month|quarter|year"}})
	}
	return []analytics.Bucket{{PeriodKey: "2024-06", SessionCount: 2}}, nil
}

func (f *fakeAnalyticsService) Streak(context.Context) (analytics.Streak, error) {
	return analytics.Streak{CurrentLength: 4}, nil
}

func (f *fakeAnalyticsService) Droughts(_ context.Context, thresholdDays int) ([]analytics.Drought, error) {
	f.droughtThreshold = thresholdDays
	return nil, nil
}

func (f *fakeAnalyticsService) Forecast(context.Context) (analytics.Forecast, error) {
	return analytics.Forecast{Never: true}, nil
}

func (f *fakeAnalyticsService) Classifications(context.Context) (service.Classifications, error) {
	return service.Classifications{
		SessionStyle: analytics.Score[analytics.SessionStyle]{Label: analytics.StyleMarathonRunner, Value: 80},
	}, nil
}

var _ service.AnalyticsService = (*fakeAnalyticsService)(nil)

func newAnalyticsRouter(svc service.AnalyticsService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handler.NewAnalyticsHandler(svc).Register(r.Group(handler.APIV1Prefix))
	return r
}

func doGET(t *testing.T, r *gin.Engine, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAnalyticsOverviewEndpoint(t *testing.T) {
	r := newAnalyticsRouter(&fakeAnalyticsService{})
	w := doGET(t, r, "/api/v1/analytics/overview")

	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, float64(3), body["total_games"])
}

func TestAnalyticsBucketsEndpoint(t *testing.T) {
	fake := &fakeAnalyticsService{}
	r := newAnalyticsRouter(fake)

	w := doGET(t, r, "/api/v1/analytics/buckets?granularity=week")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, analytics.ByWeek, fake.granularity)

	// Defaults to month when the client doesn't say.
	doGET(t, r, "/api/v1/analytics/buckets")
	assert.Equal(t, analytics.ByMonth, fake.granularity)

	w = doGET(t, r, "/api/v1/analytics/buckets?granularity=fortnight")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAnalyticsDroughtsEndpoint(t *testing.T) {
	fake := &fakeAnalyticsService{}
	r := newAnalyticsRouter(fake)

	w := doGET(t, r, "/api/v1/analytics/droughts")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 7, fake.droughtThreshold) // documented default

	doGET(t, r, "/api/v1/analytics/droughts?threshold_days=30")
	assert.Equal(t, 30, fake.droughtThreshold)

	w = doGET(t, r, "/api/v1/analytics/droughts?threshold_days=soon")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// A nil drought list serializes as an empty array, not null.
	w = doGET(t, r, "/api/v1/analytics/droughts")
	assert.Equal(t, "[]", w.Body.String())
}

func TestAnalyticsForecastEndpoint(t *testing.T) {
	r := newAnalyticsRouter(&fakeAnalyticsService{})
	w := doGET(t, r, "/api/v1/analytics/forecast")

	require.Equal(t, http.StatusOK, w.Code)
	var f analytics.Forecast
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &f))
	assert.True(t, f.Never)
}

func TestAnalyticsClassificationsEndpoint(t *testing.T) {
	r := newAnalyticsRouter(&fakeAnalyticsService{})
	w := doGET(t, r, "/api/v1/analytics/classifications")

	require.Equal(t, http.StatusOK, w.Code)
	var c service.Classifications
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &c))
	assert.Equal(t, analytics.StyleMarathonRunner, c.SessionStyle.Label)
}
