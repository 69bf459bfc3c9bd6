package api

import (
	"errors"
	"net/http"

	"questbot/internal/middleware"
	"questbot/internal/model"
	"questbot/internal/service"

	"github.com/gin-gonic/gin"
)

type questRoutes struct {
	qs service.QuestServiceI
}

func NewQuestRoutes(handler *gin.RouterGroup, qs service.QuestServiceI, a *middleware.Authorization) {
	h := &questRoutes{qs: qs}

	quests := handler.Group("/quests")
	quests.Use(a.TokenAuth())
	{
		quests.GET("", h.ListActive)
		quests.GET("/:id", h.GetByID)
	}
}

type questResponse struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url,omitempty"`
	Deadline    *int64 `json:"deadline,omitempty"`
	Points      int    `json:"points"`
	CreatedBy   int64  `json:"created_by"`
	CreatedAt   int64  `json:"created_at"`
	Status      string `json:"status"`
}

func toQuestResponse(q *model.Quest) questResponse {
	resp := questResponse{
		ID:          q.ID,
		Title:       q.Title,
		Description: q.Description,
		ImageURL:    q.ImageURL,
		Points:      q.Points,
		CreatedBy:   q.CreatedBy,
		CreatedAt:   q.CreatedAt.Unix(),
		Status:      string(q.Status),
	}
	if q.Deadline != nil {
		unix := q.Deadline.Unix()
		resp.Deadline = &unix
	}
	return resp
}

func (h *questRoutes) ListActive(c *gin.Context) {
	quests, err := h.qs.ListActiveQuests(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	response := make([]questResponse, len(quests))
	for i, q := range quests {
		response[i] = toQuestResponse(q)
	}

	c.JSON(http.StatusOK, response)
}

func (h *questRoutes) GetByID(c *gin.Context) {
	quest, err := h.qs.GetQuestByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrQuestNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "quest not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, toQuestResponse(quest))
}
