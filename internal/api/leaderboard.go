package api

import (
	"net/http"
	"strconv"

	"questbot/internal/middleware"
	"questbot/internal/service"

	"github.com/gin-gonic/gin"
)

type leaderboardRoutes struct {
	us service.UserServiceI
}

func NewLeaderboardRoutes(handler *gin.RouterGroup, us service.UserServiceI, a *middleware.Authorization) {
	h := &leaderboardRoutes{us: us}

	leaderboard := handler.Group("/leaderboard")
	leaderboard.Use(a.TokenAuth())
	{
		leaderboard.GET("", h.Top)
	}
}

type leaderboardEntry struct {
	Rank            int    `json:"rank"`
	TelegramID      int64  `json:"telegram_id"`
	Username        string `json:"username"`
	Points          int    `json:"points"`
	QuestsCompleted int    `json:"quests_completed"`
}

func (h *leaderboardRoutes) Top(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
			return
		}
		limit = parsed
	}

	users, err := h.us.Leaderboard(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	response := make([]leaderboardEntry, len(users))
	for i, u := range users {
		response[i] = leaderboardEntry{
			Rank:            i + 1,
			TelegramID:      u.TelegramID,
			Username:        u.Username,
			Points:          u.Points,
			QuestsCompleted: u.QuestsCompleted,
		}
	}

	c.JSON(http.StatusOK, response)
}
