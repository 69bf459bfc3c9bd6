package api

import (
	"errors"
	"net/http"

	"questbot/internal/middleware"
	"questbot/internal/service"

	"github.com/gin-gonic/gin"
)

type submissionRoutes struct {
	ss service.SubmissionServiceI
}

func NewSubmissionRoutes(handler *gin.RouterGroup, ss service.SubmissionServiceI, a *middleware.Authorization) {
	h := &submissionRoutes{ss: ss}

	submissions := handler.Group("/submissions")
	submissions.Use(a.TokenAuth())
	{
		submissions.GET("/:id", h.GetByID)
	}
}

type submissionResponse struct {
	ID             string   `json:"id"`
	QuestID        string   `json:"quest_id"`
	UserID         int64    `json:"user_id"`
	SubmissionText string   `json:"submission_text"`
	Media          []string `json:"media,omitempty"`
	Status         string   `json:"status"`
	ReviewedBy     *int64   `json:"reviewed_by,omitempty"`
	ReviewedAt     *int64   `json:"reviewed_at,omitempty"`
	Feedback       *string  `json:"feedback,omitempty"`
	SubmittedAt    int64    `json:"submitted_at"`
}

func (h *submissionRoutes) GetByID(c *gin.Context) {
	submission, err := h.ss.GetSubmissionByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrSubmissionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "submission not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	resp := submissionResponse{
		ID:             submission.ID,
		QuestID:        submission.QuestID,
		UserID:         submission.UserID,
		SubmissionText: submission.SubmissionText,
		Media:          submission.SubmissionMedia,
		Status:         string(submission.Status),
		ReviewedBy:     submission.ReviewedBy,
		Feedback:       submission.Feedback,
		SubmittedAt:    submission.SubmittedAt.Unix(),
	}
	if submission.ReviewedAt != nil {
		unix := submission.ReviewedAt.Unix()
		resp.ReviewedAt = &unix
	}

	c.JSON(http.StatusOK, resp)
}
