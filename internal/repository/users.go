package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"questbot/internal/model"

	"github.com/Masterminds/squirrel"
)

type user struct {
	TelegramID       int64     `db:"telegram_id"`
	Username         string    `db:"username"`
	FirstName        string    `db:"first_name"`
	LastName         string    `db:"last_name"`
	IsAdmin          bool      `db:"is_admin"`
	Points           int       `db:"points"`
	QuestsCompleted  int       `db:"quests_completed"`
	QuestsSubmitted  int       `db:"quests_submitted"`
	RegistrationDate time.Time `db:"registration_date"`
}

func (u *user) toModel() *model.User {
	return &model.User{
		TelegramID:       u.TelegramID,
		Username:         u.Username,
		FirstName:        u.FirstName,
		LastName:         u.LastName,
		IsAdmin:          u.IsAdmin,
		Points:           u.Points,
		QuestsCompleted:  u.QuestsCompleted,
		QuestsSubmitted:  u.QuestsSubmitted,
		RegistrationDate: u.RegistrationDate,
	}
}

var userColumns = []string{
	"telegram_id", "username", "first_name", "last_name", "is_admin",
	"points", "quests_completed", "quests_submitted", "registration_date",
}

func (r *Repository) GetUserByTelegramID(ctx context.Context, telegramID int64) (*model.User, error) {
	query, args, err := squirrel.
		Select(userColumns...).
		From("users").
		Where(squirrel.Eq{"telegram_id": telegramID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build user select query: %w", err)
	}

	var u user
	err = r.db.GetContext(ctx, &u, query, args...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return u.toModel(), nil
}

func (r *Repository) CreateUser(ctx context.Context, u *model.User) error {
	query, args, err := squirrel.
		Insert("users").
		SetMap(map[string]interface{}{
			"telegram_id":       u.TelegramID,
			"username":          u.Username,
			"first_name":        u.FirstName,
			"last_name":         u.LastName,
			"is_admin":          u.IsAdmin,
			"points":            u.Points,
			"quests_completed":  u.QuestsCompleted,
			"quests_submitted":  u.QuestsSubmitted,
			"registration_date": u.RegistrationDate,
		}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build user insert query: %w", err)
	}

	_, err = r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to insert user: %w", err)
	}

	return nil
}

func (r *Repository) UpdateUserPoints(ctx context.Context, telegramID int64, points int) error {
	query, args, err := squirrel.
		Update("users").
		Set("points", squirrel.Expr("points + ?", points)).
		Where(squirrel.Eq{"telegram_id": telegramID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build points update query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update user points: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *Repository) IncrementUserSubmitted(ctx context.Context, telegramID int64) error {
	return r.incrementUserCounter(ctx, telegramID, "quests_submitted")
}

func (r *Repository) IncrementUserCompleted(ctx context.Context, telegramID int64) error {
	return r.incrementUserCounter(ctx, telegramID, "quests_completed")
}

func (r *Repository) incrementUserCounter(ctx context.Context, telegramID int64, column string) error {
	query, args, err := squirrel.
		Update("users").
		Set(column, squirrel.Expr(column+" + 1")).
		Where(squirrel.Eq{"telegram_id": telegramID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build counter update query: %w", err)
	}

	_, err = r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to increment %s: %w", column, err)
	}

	return nil
}

func (r *Repository) GetTopUsers(ctx context.Context, limit int) ([]*model.User, error) {
	query, args, err := squirrel.
		Select(userColumns...).
		From("users").
		OrderBy("points DESC", "quests_completed DESC").
		Limit(uint64(limit)).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build leaderboard query: %w", err)
	}

	var dbUsers []*user
	err = r.db.SelectContext(ctx, &dbUsers, query, args...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return []*model.User{}, nil
		}
		return nil, fmt.Errorf("failed to get top users: %w", err)
	}

	users := make([]*model.User, len(dbUsers))
	for i, u := range dbUsers {
		users[i] = u.toModel()
	}

	return users, nil
}
