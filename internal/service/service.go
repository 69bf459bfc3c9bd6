package service

import (
	"context"
	"errors"
	"time"

	"questbot/internal/model"
)

var (
	ErrQuestNotFound      = errors.New("quest not found")
	ErrSubmissionNotFound = errors.New("submission not found")
	ErrAlreadyReviewed    = errors.New("submission already reviewed")

	ErrMalformedQuestText = errors.New("quest text must contain a title and a description")
	ErrInvalidDeadline    = errors.New("invalid deadline format")
	ErrInvalidPoints      = errors.New("invalid points format")
)

type Service struct {
	*QuestService
	*SubmissionService
	*UserService
}

func NewService(quests *QuestService, submissions *SubmissionService, users *UserService) *Service {
	return &Service{
		QuestService:      quests,
		SubmissionService: submissions,
		UserService:       users,
	}
}

type QuestServiceI interface {
	CreateQuest(ctx context.Context, draft *model.QuestDraft, createdBy int64) (*model.Quest, error)
	GetQuestByID(ctx context.Context, id string) (*model.Quest, error)
	ListActiveQuests(ctx context.Context) ([]*model.Quest, error)
	ArchiveExpired(ctx context.Context) (int64, error)
}

type QuestRepository interface {
	CreateQuest(ctx context.Context, q *model.Quest) error
	GetQuestByID(ctx context.Context, id string) (*model.Quest, error)
	ListActiveQuests(ctx context.Context) ([]*model.Quest, error)
	ArchiveExpiredQuests(ctx context.Context, now time.Time) (int64, error)
}

type SubmissionServiceI interface {
	Submit(ctx context.Context, questID string, userID int64, text string, media []string, originalMessageID *int) (*model.Submission, *model.Quest, error)
	AttachAdminMessage(ctx context.Context, submissionID string, adminMessageID int) error
	GetSubmissionByID(ctx context.Context, id string) (*model.Submission, error)
	Review(ctx context.Context, submissionID string, status model.SubmissionStatus, reviewerID int64, feedback *string) (*model.Submission, *model.Quest, error)
}

type SubmissionRepository interface {
	CreateSubmission(ctx context.Context, s *model.Submission) error
	GetSubmissionByID(ctx context.Context, id string) (*model.Submission, error)
	SetSubmissionAdminMessage(ctx context.Context, id string, adminMessageID int) error
	TransitionSubmission(ctx context.Context, id string, status model.SubmissionStatus, reviewerID int64, feedback *string) error
}

type UserServiceI interface {
	GetOrCreateUser(ctx context.Context, telegramID int64, username, firstName, lastName string, isAdmin bool) (*model.User, error)
	Leaderboard(ctx context.Context, limit int) ([]*model.User, error)
}

type UserRepository interface {
	GetUserByTelegramID(ctx context.Context, telegramID int64) (*model.User, error)
	CreateUser(ctx context.Context, u *model.User) error
	UpdateUserPoints(ctx context.Context, telegramID int64, points int) error
	IncrementUserSubmitted(ctx context.Context, telegramID int64) error
	IncrementUserCompleted(ctx context.Context, telegramID int64) error
	GetTopUsers(ctx context.Context, limit int) ([]*model.User, error)
}
