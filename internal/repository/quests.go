package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"questbot/internal/model"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolation = "23505"

type quest struct {
	ID          string     `db:"id"`
	Title       string     `db:"title"`
	Description string     `db:"description"`
	ImageURL    string     `db:"image_url"`
	Deadline    *time.Time `db:"deadline"`
	Points      int        `db:"points"`
	CreatedBy   int64      `db:"created_by"`
	CreatedAt   time.Time  `db:"created_at"`
	Status      string     `db:"status"`
}

func (q *quest) toModel() *model.Quest {
	return &model.Quest{
		ID:          q.ID,
		Title:       q.Title,
		Description: q.Description,
		ImageURL:    q.ImageURL,
		Deadline:    q.Deadline,
		Points:      q.Points,
		CreatedBy:   q.CreatedBy,
		CreatedAt:   q.CreatedAt,
		Status:      model.QuestStatus(q.Status),
	}
}

func (r *Repository) CreateQuest(ctx context.Context, q *model.Quest) error {
	query, args, err := squirrel.
		Insert("quests").
		SetMap(map[string]interface{}{
			"id":          q.ID,
			"title":       q.Title,
			"description": q.Description,
			"image_url":   q.ImageURL,
			"deadline":    q.Deadline,
			"points":      q.Points,
			"created_by":  q.CreatedBy,
			"created_at":  q.CreatedAt,
			"status":      string(q.Status),
		}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build quest insert query: %w", err)
	}

	_, err = r.db.ExecContext(ctx, query, args...)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return ErrDuplicateID
		}
		return fmt.Errorf("failed to insert quest: %w", err)
	}

	return nil
}

func (r *Repository) GetQuestByID(ctx context.Context, id string) (*model.Quest, error) {
	query, args, err := squirrel.
		Select("id", "title", "description", "image_url", "deadline", "points", "created_by", "created_at", "status").
		From("quests").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build quest select query: %w", err)
	}

	var q quest
	err = r.db.GetContext(ctx, &q, query, args...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get quest: %w", err)
	}

	return q.toModel(), nil
}

func (r *Repository) ListActiveQuests(ctx context.Context) ([]*model.Quest, error) {
	query, args, err := squirrel.
		Select("id", "title", "description", "image_url", "deadline", "points", "created_by", "created_at", "status").
		From("quests").
		Where(squirrel.Eq{"status": string(model.QuestStatusActive)}).
		OrderBy("created_at").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build active quests query: %w", err)
	}

	var dbQuests []*quest
	err = r.db.SelectContext(ctx, &dbQuests, query, args...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return []*model.Quest{}, nil
		}
		return nil, fmt.Errorf("failed to list active quests: %w", err)
	}

	quests := make([]*model.Quest, len(dbQuests))
	for i, q := range dbQuests {
		quests[i] = q.toModel()
	}

	return quests, nil
}

// ArchiveExpiredQuests flips active quests whose deadline has passed to
// archived and returns how many rows changed.
func (r *Repository) ArchiveExpiredQuests(ctx context.Context, now time.Time) (int64, error) {
	query, args, err := squirrel.
		Update("quests").
		Set("status", string(model.QuestStatusArchived)).
		Where(squirrel.And{
			squirrel.Eq{"status": string(model.QuestStatusActive)},
			squirrel.NotEq{"deadline": nil},
			squirrel.LtOrEq{"deadline": now},
		}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build archive query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to archive expired quests: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get affected rows: %w", err)
	}

	return rows, nil
}
