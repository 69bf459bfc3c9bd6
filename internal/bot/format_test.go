package bot

import (
	"testing"
	"time"

	"questbot/internal/model"

	"github.com/stretchr/testify/assert"
)

func questFixture() *model.Quest {
	return &model.Quest{
		ID:          "Q123456ABC",
		Title:       "Find the flag",
		Description: "Locate the hidden flag in the park",
		Points:      15,
		Status:      model.QuestStatusActive,
	}
}

func TestFormatDraftConfirmation(t *testing.T) {
	deadline := time.Date(2025, 1, 15, 10, 30, 0, 0, time.Local)
	draft := &model.QuestDraft{
		Title:       "Find the flag",
		Description: "Locate the hidden flag in the park",
		Points:      15,
		Deadline:    &deadline,
	}

	text := formatDraftConfirmation(draft)
	assert.Contains(t, text, "Create new quest?")
	assert.Contains(t, text, "Title: Find the flag")
	assert.Contains(t, text, "Points: 15")
	assert.Contains(t, text, "Deadline: 2025-01-15 10:30")
}

func TestFormatDraftConfirmationWithoutDeadline(t *testing.T) {
	draft := &model.QuestDraft{Title: "T", Description: "D", Points: 10}
	assert.NotContains(t, formatDraftConfirmation(draft), "Deadline:")
}

func TestFormatNotices(t *testing.T) {
	quest := questFixture()

	approved := formatApprovedNotice(quest)
	assert.Contains(t, approved, "approved")
	assert.Contains(t, approved, "15 points")

	denied := formatDeniedNotice(quest)
	assert.Contains(t, denied, "denied")
}

func TestFormatSubmissionReview(t *testing.T) {
	text := formatSubmissionReview(questFixture())
	assert.Equal(t, "New submission for quest Find the flag (Q123456ABC)", text)
}
