package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"questbot/internal/model"
	"questbot/internal/repository"
	"questbot/pkg/ident"
	"questbot/pkg/logger"

	"go.uber.org/zap"
)

type SubmissionService struct {
	repo      SubmissionRepository
	questRepo QuestRepository
	userRepo  UserRepository
}

func NewSubmissionService(repo SubmissionRepository, questRepo QuestRepository, userRepo UserRepository) *SubmissionService {
	return &SubmissionService{
		repo:      repo,
		questRepo: questRepo,
		userRepo:  userRepo,
	}
}

// Submit records a pending submission for an existing quest. The quest is
// looked up first so a dangling reference fails fast with ErrQuestNotFound.
func (s *SubmissionService) Submit(ctx context.Context, questID string, userID int64, text string, media []string, originalMessageID *int) (*model.Submission, *model.Quest, error) {
	quest, err := s.questRepo.GetQuestByID(ctx, questID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil, ErrQuestNotFound
		}
		return nil, nil, fmt.Errorf("failed to get quest: %w", err)
	}

	submission := &model.Submission{
		ID:                ident.NewSubmissionID(),
		QuestID:           quest.ID,
		UserID:            userID,
		SubmissionText:    text,
		SubmissionMedia:   media,
		OriginalMessageID: originalMessageID,
		Status:            model.SubmissionStatusPending,
		SubmittedAt:       time.Now(),
	}

	err = s.repo.CreateSubmission(ctx, submission)
	if errors.Is(err, repository.ErrDuplicateID) {
		submission.ID = ident.NewSubmissionID()
		err = s.repo.CreateSubmission(ctx, submission)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create submission: %w", err)
	}

	if err := s.userRepo.IncrementUserSubmitted(ctx, userID); err != nil {
		logger.Logger().Warn("failed to bump submitted counter",
			zap.Int64("user_id", userID), zap.Error(err))
	}

	return submission, quest, nil
}

func (s *SubmissionService) AttachAdminMessage(ctx context.Context, submissionID string, adminMessageID int) error {
	err := s.repo.SetSubmissionAdminMessage(ctx, submissionID, adminMessageID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrSubmissionNotFound
		}
		return fmt.Errorf("failed to attach admin message: %w", err)
	}
	return nil
}

func (s *SubmissionService) GetSubmissionByID(ctx context.Context, id string) (*model.Submission, error) {
	submission, err := s.repo.GetSubmissionByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrSubmissionNotFound
		}
		return nil, fmt.Errorf("failed to get submission: %w", err)
	}
	return submission, nil
}

// Review resolves a pending submission. The store enforces the pending
// precondition, so a duplicate or concurrent review surfaces as
// ErrAlreadyReviewed and the original resolution stands. Points are only
// awarded after the transition has won.
func (s *SubmissionService) Review(ctx context.Context, submissionID string, status model.SubmissionStatus, reviewerID int64, feedback *string) (*model.Submission, *model.Quest, error) {
	if status != model.SubmissionStatusApproved && status != model.SubmissionStatusDenied {
		return nil, nil, fmt.Errorf("invalid review status %q", status)
	}

	err := s.repo.TransitionSubmission(ctx, submissionID, status, reviewerID, feedback)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return nil, nil, ErrSubmissionNotFound
		case errors.Is(err, repository.ErrAlreadyReviewed):
			return nil, nil, ErrAlreadyReviewed
		default:
			return nil, nil, fmt.Errorf("failed to transition submission: %w", err)
		}
	}

	submission, err := s.repo.GetSubmissionByID(ctx, submissionID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to reread submission: %w", err)
	}

	quest, err := s.questRepo.GetQuestByID(ctx, submission.QuestID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get quest for submission: %w", err)
	}

	if status == model.SubmissionStatusApproved {
		if err := s.userRepo.UpdateUserPoints(ctx, submission.UserID, quest.Points); err != nil {
			return nil, nil, fmt.Errorf("failed to award points: %w", err)
		}
		if err := s.userRepo.IncrementUserCompleted(ctx, submission.UserID); err != nil {
			logger.Logger().Warn("failed to bump completed counter",
				zap.Int64("user_id", submission.UserID), zap.Error(err))
		}
	}

	return submission, quest, nil
}
