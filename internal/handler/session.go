package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/maxviazov/gamelib-analytics/internal/service"
	"github.com/maxviazov/gamelib-analytics/pkg/response"
)

type SessionHandler struct {
	svc service.SessionService
}

func NewSessionHandler(svc service.SessionService) *SessionHandler {
	return &SessionHandler{svc: svc}
}

func (h *SessionHandler) Register(r *gin.RouterGroup) {
	s := r.Group("/sessions")
	{
		s.POST("", h.log)
		s.DELETE(":id", h.delete)
	}
	// Listing by game id: /api/v1/games/:id/sessions
	r.Group("/games").GET("/:id/sessions", h.listByGame)
}

type logSessionRequest struct {
	GameID int64   `json:"game_id"`
	Date   string  `json:"date"` // YYYY-MM-DD
	Hours  float64 `json:"hours"`
	Note   string  `json:"note"`
}

func (h *SessionHandler) log(c *gin.Context) {
	var req logSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.WriteError(c, service.ErrInvalidInput)
		return
	}
	created, err := h.svc.LogSession(c.Request.Context(), req.GameID, req.Date, req.Hours, req.Note)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusCreated, created)
}

func (h *SessionHandler) delete(c *gin.Context) {
	id, _ := strconv.ParseInt(c.Param("id"), 10, 64)
	if err := h.svc.DeleteSession(c.Request.Context(), id); err != nil {
		response.WriteError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *SessionHandler) listByGame(c *gin.Context) {
	gameID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || gameID <= 0 {
		response.WriteError(c, service.NewInvalidInputError([]service.FieldError{{Field: "id", Message: "must be a valid integer > 0"}}))
		return
	}
	sessions, err := h.svc.ListSessions(c.Request.Context(), gameID)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, sessions)
}
