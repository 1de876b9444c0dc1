package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/maxviazov/gamelib-analytics/internal/analytics"
	"github.com/maxviazov/gamelib-analytics/internal/model"
	"github.com/maxviazov/gamelib-analytics/internal/repository"
	"github.com/maxviazov/gamelib-analytics/internal/service"
	"github.com/maxviazov/gamelib-analytics/pkg/response"
)

type GameHandler struct {
	svc service.GameService
}

func NewGameHandler(svc service.GameService) *GameHandler { return &GameHandler{svc: svc} }

func (h *GameHandler) Register(r *gin.RouterGroup) {
	g := r.Group("/games")
	{
		g.POST("", h.create)
		g.GET(":id", h.getByID)
		g.GET("", h.list)
		g.PUT(":id", h.update)
		g.DELETE(":id", h.delete)
	}
}

type gameRequest struct {
	Name          string  `json:"name"`
	Price         float64 `json:"price"`
	Status        string  `json:"status"`
	Rating        int     `json:"rating"`
	Genre         string  `json:"genre"`
	Platform      string  `json:"platform"`
	PurchaseDate  string  `json:"purchase_date"` // YYYY-MM-DD, optional
	StartDate     string  `json:"start_date"`
	EndDate       string  `json:"end_date"`
	BaselineHours float64 `json:"baseline_hours"`
}

// toModel converts the wire shape, reporting unparseable dates as field
// errors instead of letting them default silently.
func (r gameRequest) toModel() (model.Game, []service.FieldError) {
	var ferrs []service.FieldError
	parse := func(field, value string) *time.Time {
		if value == "" {
			return nil
		}
		d, err := analytics.ParseDate(value)
		if err != nil {
			ferrs = append(ferrs, service.FieldError{Field: field, Message: "must be YYYY-MM-DD"})
			return nil
		}
		t := d.Time(nil)
		return &t
	}
	g := model.Game{
		Name:          r.Name,
		Price:         r.Price,
		Status:        model.GameStatus(r.Status),
		Rating:        r.Rating,
		Genre:         r.Genre,
		Platform:      r.Platform,
		PurchaseDate:  parse("purchase_date", r.PurchaseDate),
		StartDate:     parse("start_date", r.StartDate),
		EndDate:       parse("end_date", r.EndDate),
		BaselineHours: r.BaselineHours,
	}
	return g, ferrs
}

func (h *GameHandler) create(c *gin.Context) {
	var req gameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.WriteError(c, service.ErrInvalidInput)
		return
	}
	g, ferrs := req.toModel()
	if err := service.NewInvalidInputError(ferrs); err != nil {
		response.WriteError(c, err)
		return
	}
	created, err := h.svc.CreateGame(c.Request.Context(), g)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusCreated, created)
}

func (h *GameHandler) getByID(c *gin.Context) {
	id, _ := strconv.ParseInt(c.Param("id"), 10, 64)
	game, err := h.svc.GetGame(c.Request.Context(), id)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, game)
}

func (h *GameHandler) update(c *gin.Context) {
	id, _ := strconv.ParseInt(c.Param("id"), 10, 64)
	var req gameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.WriteError(c, service.ErrInvalidInput)
		return
	}
	g, ferrs := req.toModel()
	if err := service.NewInvalidInputError(ferrs); err != nil {
		response.WriteError(c, err)
		return
	}
	g.ID = id
	updated, err := h.svc.UpdateGame(c.Request.Context(), g)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, updated)
}

func (h *GameHandler) delete(c *gin.Context) {
	id, _ := strconv.ParseInt(c.Param("id"), 10, 64)
	if err := h.svc.DeleteGame(c.Request.Context(), id); err != nil {
		response.WriteError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *GameHandler) list(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	res, err := h.svc.ListGames(c.Request.Context(), repository.Page{Limit: limit, Offset: offset})
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, gin.H{"items": res.Items, "total": res.Total})
}
