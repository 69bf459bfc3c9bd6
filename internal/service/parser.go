package service

import (
	"strconv"
	"strings"
	"time"

	"questbot/internal/model"
)

const (
	deadlinePrefix = "Deadline:"
	pointsPrefix   = "Points:"
	deadlineLayout = "2006-01-02 15:04"

	minReferenceLen = 3
)

// ParseQuestDraft turns a free-text admin message into a draft. The first
// line is the title, the second the description; any further line may
// annotate a deadline or a points override. An unparseable annotation
// aborts the whole parse so the admin gets told instead of losing it.
func ParseQuestDraft(text, imageURL string) (*model.QuestDraft, error) {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}

	if len(lines) < 2 {
		return nil, ErrMalformedQuestText
	}

	draft := &model.QuestDraft{
		Title:       lines[0],
		Description: lines[1],
		Points:      model.DefaultQuestPoints,
		ImageURL:    imageURL,
	}

	for _, line := range lines[2:] {
		switch {
		case strings.HasPrefix(line, deadlinePrefix):
			raw := strings.TrimSpace(strings.TrimPrefix(line, deadlinePrefix))
			deadline, err := time.ParseInLocation(deadlineLayout, raw, time.Local)
			if err != nil {
				return nil, ErrInvalidDeadline
			}
			draft.Deadline = &deadline
		case strings.HasPrefix(line, pointsPrefix):
			raw := strings.TrimSpace(strings.TrimPrefix(line, pointsPrefix))
			points, err := strconv.Atoi(raw)
			if err != nil || points < 0 {
				return nil, ErrInvalidPoints
			}
			draft.Points = points
		}
	}

	return draft, nil
}

// ExtractQuestReference scans a user message for a quest identifier: the
// first token of at least three uppercase alphanumerics, optionally led
// by '#'. Returns "" when nothing matches; that is a normal outcome.
func ExtractQuestReference(text string) string {
	for _, token := range strings.Fields(text) {
		token = strings.TrimPrefix(token, "#")
		token = strings.TrimRight(token, ".,!?:;)")
		if isQuestReference(token) {
			return token
		}
	}
	return ""
}

func isQuestReference(token string) bool {
	if len(token) < minReferenceLen {
		return false
	}
	for _, r := range token {
		if (r < 'A' || r > 'Z') && (r < '0' || r > '9') {
			return false
		}
	}
	return true
}
