package service

import (
	"context"
	"testing"
	"time"

	"questbot/internal/model"
	"questbot/internal/repository"
	"questbot/internal/service/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newSubmissionFixture() (*SubmissionService, *mocks.MockSubmissionRepository, *mocks.MockQuestRepository, *mocks.MockUserRepository) {
	subRepo := &mocks.MockSubmissionRepository{}
	questRepo := &mocks.MockQuestRepository{}
	userRepo := &mocks.MockUserRepository{}
	return NewSubmissionService(subRepo, questRepo, userRepo), subRepo, questRepo, userRepo
}

func TestSubmissionService_Submit(t *testing.T) {
	quest := &model.Quest{
		ID:     "Q123456ABC",
		Title:  "Find the flag",
		Points: 10,
		Status: model.QuestStatusActive,
	}

	t.Run("creates a pending submission", func(t *testing.T) {
		service, subRepo, questRepo, userRepo := newSubmissionFixture()

		questRepo.On("GetQuestByID", mock.Anything, "Q123456ABC").Return(quest, nil)
		subRepo.On("CreateSubmission", mock.Anything, mock.MatchedBy(func(s *model.Submission) bool {
			return s.QuestID == "Q123456ABC" &&
				s.UserID == int64(555) &&
				s.SubmissionText == "did it #Q123456ABC" &&
				s.Status == model.SubmissionStatusPending &&
				s.ID[0] == 'S'
		})).Return(nil)
		userRepo.On("IncrementUserSubmitted", mock.Anything, int64(555)).Return(nil)

		msgID := 99
		submission, got, err := service.Submit(context.Background(), "Q123456ABC", 555, "did it #Q123456ABC", nil, &msgID)

		assert.NoError(t, err)
		assert.Equal(t, quest, got)
		assert.Equal(t, model.SubmissionStatusPending, submission.Status)
		assert.Equal(t, &msgID, submission.OriginalMessageID)
		subRepo.AssertExpectations(t)
	})

	t.Run("unknown quest fails fast, nothing persisted", func(t *testing.T) {
		service, subRepo, questRepo, _ := newSubmissionFixture()

		questRepo.On("GetQuestByID", mock.Anything, "Q000000XXX").
			Return(nil, repository.ErrNotFound)

		submission, got, err := service.Submit(context.Background(), "Q000000XXX", 555, "text", nil, nil)

		assert.Nil(t, submission)
		assert.Nil(t, got)
		assert.ErrorIs(t, err, ErrQuestNotFound)
		subRepo.AssertNotCalled(t, "CreateSubmission", mock.Anything, mock.Anything)
	})

	t.Run("id collision retried once", func(t *testing.T) {
		service, subRepo, questRepo, userRepo := newSubmissionFixture()

		questRepo.On("GetQuestByID", mock.Anything, "Q123456ABC").Return(quest, nil)
		subRepo.On("CreateSubmission", mock.Anything, mock.Anything).
			Return(repository.ErrDuplicateID).Once()
		subRepo.On("CreateSubmission", mock.Anything, mock.Anything).
			Return(nil).Once()
		userRepo.On("IncrementUserSubmitted", mock.Anything, int64(555)).Return(nil)

		submission, _, err := service.Submit(context.Background(), "Q123456ABC", 555, "text", nil, nil)

		assert.NoError(t, err)
		assert.NotNil(t, submission)
		subRepo.AssertNumberOfCalls(t, "CreateSubmission", 2)
	})
}

func TestSubmissionService_Review(t *testing.T) {
	reviewed := func(status model.SubmissionStatus) *model.Submission {
		now := time.Now()
		reviewer := int64(42)
		return &model.Submission{
			ID:         "S123456DEF",
			QuestID:    "Q123456ABC",
			UserID:     555,
			Status:     status,
			ReviewedBy: &reviewer,
			ReviewedAt: &now,
		}
	}
	quest := &model.Quest{ID: "Q123456ABC", Title: "Find the flag", Points: 15}

	t.Run("approve awards points", func(t *testing.T) {
		service, subRepo, questRepo, userRepo := newSubmissionFixture()

		subRepo.On("TransitionSubmission", mock.Anything, "S123456DEF",
			model.SubmissionStatusApproved, int64(42), (*string)(nil)).Return(nil)
		subRepo.On("GetSubmissionByID", mock.Anything, "S123456DEF").
			Return(reviewed(model.SubmissionStatusApproved), nil)
		questRepo.On("GetQuestByID", mock.Anything, "Q123456ABC").Return(quest, nil)
		userRepo.On("UpdateUserPoints", mock.Anything, int64(555), 15).Return(nil)
		userRepo.On("IncrementUserCompleted", mock.Anything, int64(555)).Return(nil)

		submission, got, err := service.Review(context.Background(), "S123456DEF",
			model.SubmissionStatusApproved, 42, nil)

		assert.NoError(t, err)
		assert.Equal(t, model.SubmissionStatusApproved, submission.Status)
		assert.Equal(t, quest, got)
		userRepo.AssertExpectations(t)
	})

	t.Run("deny does not award points", func(t *testing.T) {
		service, subRepo, questRepo, userRepo := newSubmissionFixture()

		subRepo.On("TransitionSubmission", mock.Anything, "S123456DEF",
			model.SubmissionStatusDenied, int64(42), (*string)(nil)).Return(nil)
		subRepo.On("GetSubmissionByID", mock.Anything, "S123456DEF").
			Return(reviewed(model.SubmissionStatusDenied), nil)
		questRepo.On("GetQuestByID", mock.Anything, "Q123456ABC").Return(quest, nil)

		_, _, err := service.Review(context.Background(), "S123456DEF",
			model.SubmissionStatusDenied, 42, nil)

		assert.NoError(t, err)
		userRepo.AssertNotCalled(t, "UpdateUserPoints", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("second review loses with AlreadyReviewed", func(t *testing.T) {
		service, subRepo, questRepo, userRepo := newSubmissionFixture()

		subRepo.On("TransitionSubmission", mock.Anything, "S123456DEF",
			model.SubmissionStatusApproved, int64(42), (*string)(nil)).Return(nil).Once()
		subRepo.On("GetSubmissionByID", mock.Anything, "S123456DEF").
			Return(reviewed(model.SubmissionStatusApproved), nil)
		questRepo.On("GetQuestByID", mock.Anything, "Q123456ABC").Return(quest, nil)
		userRepo.On("UpdateUserPoints", mock.Anything, int64(555), 15).Return(nil)
		userRepo.On("IncrementUserCompleted", mock.Anything, int64(555)).Return(nil)

		first, _, err := service.Review(context.Background(), "S123456DEF",
			model.SubmissionStatusApproved, 42, nil)
		assert.NoError(t, err)
		assert.Equal(t, model.SubmissionStatusApproved, first.Status)

		subRepo.On("TransitionSubmission", mock.Anything, "S123456DEF",
			model.SubmissionStatusDenied, int64(43), (*string)(nil)).
			Return(repository.ErrAlreadyReviewed).Once()

		second, _, err := service.Review(context.Background(), "S123456DEF",
			model.SubmissionStatusDenied, 43, nil)
		assert.Nil(t, second)
		assert.ErrorIs(t, err, ErrAlreadyReviewed)

		// the denial must not have touched points
		userRepo.AssertNumberOfCalls(t, "UpdateUserPoints", 1)
	})

	t.Run("unknown submission", func(t *testing.T) {
		service, subRepo, _, _ := newSubmissionFixture()

		subRepo.On("TransitionSubmission", mock.Anything, "S000000XXX",
			model.SubmissionStatusApproved, int64(42), (*string)(nil)).
			Return(repository.ErrNotFound)

		_, _, err := service.Review(context.Background(), "S000000XXX",
			model.SubmissionStatusApproved, 42, nil)
		assert.ErrorIs(t, err, ErrSubmissionNotFound)
	})

	t.Run("rejects non-terminal target status", func(t *testing.T) {
		service, subRepo, _, _ := newSubmissionFixture()

		_, _, err := service.Review(context.Background(), "S123456DEF",
			model.SubmissionStatusPending, 42, nil)
		assert.Error(t, err)
		subRepo.AssertNotCalled(t, "TransitionSubmission",
			mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}
