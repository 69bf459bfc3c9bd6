package model

import "time"

type SubmissionStatus string

const (
	SubmissionStatusPending  SubmissionStatus = "pending"
	SubmissionStatusApproved SubmissionStatus = "approved"
	SubmissionStatusDenied   SubmissionStatus = "denied"
)

type Submission struct {
	ID              string
	QuestID         string
	UserID          int64
	SubmissionText  string
	SubmissionMedia []string

	// Message correlation tokens from the chat transport. Opaque here;
	// the bot uses them to edit and reply.
	OriginalMessageID *int
	AdminMessageID    *int

	Status      SubmissionStatus
	ReviewedBy  *int64
	ReviewedAt  *time.Time
	Feedback    *string
	SubmittedAt time.Time
}
