package model

import "time"

type QuestStatus string

const (
	QuestStatusActive    QuestStatus = "active"
	QuestStatusCompleted QuestStatus = "completed"
	QuestStatusArchived  QuestStatus = "archived"
)

const DefaultQuestPoints = 10

type Quest struct {
	ID          string
	Title       string
	Description string
	ImageURL    string
	Deadline    *time.Time
	Points      int
	CreatedBy   int64
	CreatedAt   time.Time
	Status      QuestStatus
}

// QuestDraft is an unconfirmed quest definition held in memory while the
// authoring admin decides to confirm or cancel it.
type QuestDraft struct {
	Title       string
	Description string
	Deadline    *time.Time
	Points      int
	ImageURL    string
}
