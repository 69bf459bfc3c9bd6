package bot

import (
	"fmt"
	"strings"

	"questbot/internal/model"
)

const questFormatHelp = "Please provide quest details in the format:\n" +
	"Title\n" +
	"Description\n" +
	"Deadline: YYYY-MM-DD HH:MM (optional)\n" +
	"Points: [number] (optional, default 10)\n\n" +
	"You can also attach an image to the message."

const deadlineDisplayLayout = "2006-01-02 15:04"

func formatDraftConfirmation(draft *model.QuestDraft) string {
	var b strings.Builder
	b.WriteString("Create new quest?\n\n")
	fmt.Fprintf(&b, "Title: %s\n", draft.Title)
	fmt.Fprintf(&b, "Description: %s\n", draft.Description)
	fmt.Fprintf(&b, "Points: %d", draft.Points)
	if draft.Deadline != nil {
		fmt.Fprintf(&b, "\nDeadline: %s", draft.Deadline.Format(deadlineDisplayLayout))
	}
	return b.String()
}

// formatQuestCreated renders the persisted record, not the draft, so the
// admin sees the assigned id.
func formatQuestCreated(quest *model.Quest) string {
	var b strings.Builder
	b.WriteString("Quest created successfully!\n\n")
	fmt.Fprintf(&b, "Title: %s\n", quest.Title)
	fmt.Fprintf(&b, "Code: %s\n", quest.ID)
	fmt.Fprintf(&b, "Points: %d\n", quest.Points)
	fmt.Fprintf(&b, "Description: %s", quest.Description)
	if quest.Deadline != nil {
		fmt.Fprintf(&b, "\nDeadline: %s", quest.Deadline.Format(deadlineDisplayLayout))
	}
	return b.String()
}

func formatQuestCard(quest *model.Quest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Title: %s\n", quest.Title)
	fmt.Fprintf(&b, "Code: %s\n", quest.ID)
	fmt.Fprintf(&b, "Points: %d\n", quest.Points)
	fmt.Fprintf(&b, "Description: %s", quest.Description)
	if quest.Deadline != nil {
		fmt.Fprintf(&b, "\nDeadline: %s", quest.Deadline.Format(deadlineDisplayLayout))
	}
	return b.String()
}

func formatSubmissionReview(quest *model.Quest) string {
	return fmt.Sprintf("New submission for quest %s (%s)", quest.Title, quest.ID)
}

func formatApprovedNotice(quest *model.Quest) string {
	return fmt.Sprintf("Your submission for quest %s has been approved! 🎉\nYou earned %d points!",
		quest.Title, quest.Points)
}

func formatDeniedNotice(quest *model.Quest) string {
	return fmt.Sprintf("Your submission for quest %s has been denied. Please try again!", quest.Title)
}
