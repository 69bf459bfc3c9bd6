package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"questbot/internal/model"
	"questbot/internal/repository"
)

const defaultLeaderboardSize = 10

type UserService struct {
	repo UserRepository
}

func NewUserService(repo UserRepository) *UserService {
	return &UserService{
		repo: repo,
	}
}

func (s *UserService) GetOrCreateUser(ctx context.Context, telegramID int64, username, firstName, lastName string, isAdmin bool) (*model.User, error) {
	user, err := s.repo.GetUserByTelegramID(ctx, telegramID)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	user = &model.User{
		TelegramID:       telegramID,
		Username:         username,
		FirstName:        firstName,
		LastName:         lastName,
		IsAdmin:          isAdmin,
		RegistrationDate: time.Now(),
	}
	if err := s.repo.CreateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

func (s *UserService) Leaderboard(ctx context.Context, limit int) ([]*model.User, error) {
	if limit <= 0 {
		limit = defaultLeaderboardSize
	}
	users, err := s.repo.GetTopUsers(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get leaderboard: %w", err)
	}
	return users, nil
}
