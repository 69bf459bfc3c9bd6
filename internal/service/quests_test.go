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

func TestQuestService_CreateQuest(t *testing.T) {
	t.Run("draft fields reach the stored quest", func(t *testing.T) {
		mockRepo := &mocks.MockQuestRepository{}
		service := NewQuestService(mockRepo)

		var stored *model.Quest
		mockRepo.On("CreateQuest", mock.Anything, mock.MatchedBy(func(q *model.Quest) bool {
			stored = q
			return q.Title == "T" && q.Description == "D" && q.Points == 5 &&
				q.Status == model.QuestStatusActive && q.CreatedBy == int64(42)
		})).Return(nil)

		quest, err := service.CreateQuest(context.Background(), &model.QuestDraft{
			Title:       "T",
			Description: "D",
			Points:      5,
		}, 42)

		assert.NoError(t, err)
		assert.Equal(t, stored, quest)
		assert.NotEmpty(t, quest.ID)
		assert.Equal(t, byte('Q'), quest.ID[0])
		assert.WithinDuration(t, time.Now(), quest.CreatedAt, 2*time.Second)
		mockRepo.AssertExpectations(t)
	})

	t.Run("id collision retried once", func(t *testing.T) {
		mockRepo := &mocks.MockQuestRepository{}
		service := NewQuestService(mockRepo)

		mockRepo.On("CreateQuest", mock.Anything, mock.Anything).
			Return(repository.ErrDuplicateID).Once()
		mockRepo.On("CreateQuest", mock.Anything, mock.Anything).
			Return(nil).Once()

		quest, err := service.CreateQuest(context.Background(), &model.QuestDraft{
			Title:       "T",
			Description: "D",
			Points:      10,
		}, 1)

		assert.NoError(t, err)
		assert.NotNil(t, quest)
		mockRepo.AssertNumberOfCalls(t, "CreateQuest", 2)
	})

	t.Run("second collision is fatal", func(t *testing.T) {
		mockRepo := &mocks.MockQuestRepository{}
		service := NewQuestService(mockRepo)

		mockRepo.On("CreateQuest", mock.Anything, mock.Anything).
			Return(repository.ErrDuplicateID)

		quest, err := service.CreateQuest(context.Background(), &model.QuestDraft{
			Title:       "T",
			Description: "D",
			Points:      10,
		}, 1)

		assert.Nil(t, quest)
		assert.ErrorIs(t, err, repository.ErrDuplicateID)
		mockRepo.AssertNumberOfCalls(t, "CreateQuest", 2)
	})
}

func TestQuestService_GetQuestByID(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		mockRepo := &mocks.MockQuestRepository{}
		service := NewQuestService(mockRepo)

		var created *model.Quest
		mockRepo.On("CreateQuest", mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) {
				created = args.Get(1).(*model.Quest)
			}).Return(nil)

		_, err := service.CreateQuest(context.Background(), &model.QuestDraft{
			Title:       "T",
			Description: "D",
			Points:      5,
		}, 42)
		assert.NoError(t, err)

		mockRepo.On("GetQuestByID", mock.Anything, created.ID).Return(created, nil)

		got, err := service.GetQuestByID(context.Background(), created.ID)
		assert.NoError(t, err)
		assert.Equal(t, "T", got.Title)
		assert.Equal(t, "D", got.Description)
		assert.Equal(t, 5, got.Points)
		assert.Equal(t, model.QuestStatusActive, got.Status)
	})

	t.Run("unknown id", func(t *testing.T) {
		mockRepo := &mocks.MockQuestRepository{}
		service := NewQuestService(mockRepo)

		mockRepo.On("GetQuestByID", mock.Anything, "Q000000XXX").
			Return(nil, repository.ErrNotFound)

		got, err := service.GetQuestByID(context.Background(), "Q000000XXX")
		assert.Nil(t, got)
		assert.ErrorIs(t, err, ErrQuestNotFound)
	})
}

func TestQuestService_ArchiveExpired(t *testing.T) {
	mockRepo := &mocks.MockQuestRepository{}
	service := NewQuestService(mockRepo)

	mockRepo.On("ArchiveExpiredQuests", mock.Anything, mock.MatchedBy(func(now time.Time) bool {
		return time.Since(now) < 2*time.Second
	})).Return(int64(3), nil)

	archived, err := service.ArchiveExpired(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, int64(3), archived)
	mockRepo.AssertExpectations(t)
}
