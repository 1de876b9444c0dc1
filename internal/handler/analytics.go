package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/maxviazov/gamelib-analytics/internal/analytics"
	"github.com/maxviazov/gamelib-analytics/internal/service"
	"github.com/maxviazov/gamelib-analytics/pkg/response"
)

// defaultDroughtThreshold is the gap length, in days, that counts as a
// drought when the client doesn't say otherwise.
const defaultDroughtThreshold = 7

type AnalyticsHandler struct {
	svc service.AnalyticsService
}

func NewAnalyticsHandler(svc service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{svc: svc}
}

func (h *AnalyticsHandler) Register(r *gin.RouterGroup) {
	a := r.Group("/analytics")
	{
		a.GET("/overview", h.overview)
		a.GET("/buckets", h.buckets)
		a.GET("/streak", h.streak)
		a.GET("/droughts", h.droughts)
		a.GET("/forecast", h.forecast)
		a.GET("/classifications", h.classifications)
	}
}

func (h *AnalyticsHandler) overview(c *gin.Context) {
	o, err := h.svc.Overview(c.Request.Context())
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, o)
}

func (h *AnalyticsHandler) buckets(c *gin.Context) {
	g := analytics.Granularity(c.DefaultQuery("granularity", string(analytics.ByMonth)))
	buckets, err := h.svc.Buckets(c.Request.Context(), g, c.Query("from"), c.Query("to"))
	if err != nil {
		response.WriteError(c, err)
		return
	}
	if buckets == nil {
		buckets = []analytics.Bucket{}
	}
	response.WriteData(c, http.StatusOK, buckets)
}

func (h *AnalyticsHandler) streak(c *gin.Context) {
	s, err := h.svc.Streak(c.Request.Context())
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, s)
}

func (h *AnalyticsHandler) droughts(c *gin.Context) {
	threshold, err := strconv.Atoi(c.DefaultQuery("threshold_days", strconv.Itoa(defaultDroughtThreshold)))
	if err != nil {
		response.WriteError(c, service.NewInvalidInputError([]service.FieldError{{Field: "threshold_days", Message: "must be an integer"}}))
		return
	}
	droughts, err := h.svc.Droughts(c.Request.Context(), threshold)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	if droughts == nil {
		droughts = []analytics.Drought{}
	}
	response.WriteData(c, http.StatusOK, droughts)
}

func (h *AnalyticsHandler) forecast(c *gin.Context) {
	f, err := h.svc.Forecast(c.Request.Context())
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, f)
}

func (h *AnalyticsHandler) classifications(c *gin.Context) {
	cl, err := h.svc.Classifications(c.Request.Context())
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, cl)
}
