package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"questbot/internal/model"
	"questbot/internal/repository"
	"questbot/pkg/ident"
)

type QuestService struct {
	repo QuestRepository
}

func NewQuestService(repo QuestRepository) *QuestService {
	return &QuestService{
		repo: repo,
	}
}

// CreateQuest promotes a confirmed draft into a persisted quest. A
// generated-id collision is retried once with a fresh id; a second
// collision fails the operation.
func (s *QuestService) CreateQuest(ctx context.Context, draft *model.QuestDraft, createdBy int64) (*model.Quest, error) {
	quest := &model.Quest{
		ID:          ident.NewQuestID(),
		Title:       draft.Title,
		Description: draft.Description,
		ImageURL:    draft.ImageURL,
		Deadline:    draft.Deadline,
		Points:      draft.Points,
		CreatedBy:   createdBy,
		CreatedAt:   time.Now(),
		Status:      model.QuestStatusActive,
	}

	err := s.repo.CreateQuest(ctx, quest)
	if errors.Is(err, repository.ErrDuplicateID) {
		quest.ID = ident.NewQuestID()
		err = s.repo.CreateQuest(ctx, quest)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create quest: %w", err)
	}

	return quest, nil
}

func (s *QuestService) GetQuestByID(ctx context.Context, id string) (*model.Quest, error) {
	quest, err := s.repo.GetQuestByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrQuestNotFound
		}
		return nil, fmt.Errorf("failed to get quest: %w", err)
	}
	return quest, nil
}

func (s *QuestService) ListActiveQuests(ctx context.Context) ([]*model.Quest, error) {
	quests, err := s.repo.ListActiveQuests(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list active quests: %w", err)
	}
	return quests, nil
}

func (s *QuestService) ArchiveExpired(ctx context.Context) (int64, error) {
	archived, err := s.repo.ArchiveExpiredQuests(ctx, time.Now())
	if err != nil {
		return 0, fmt.Errorf("failed to archive expired quests: %w", err)
	}
	return archived, nil
}
