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
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type submission struct {
	ID                string         `db:"id"`
	QuestID           string         `db:"quest_id"`
	UserID            int64          `db:"user_id"`
	SubmissionText    string         `db:"submission_text"`
	SubmissionMedia   pq.StringArray `db:"submission_media"`
	OriginalMessageID *int           `db:"original_message_id"`
	AdminMessageID    *int           `db:"admin_message_id"`
	Status            string         `db:"status"`
	ReviewedBy        *int64         `db:"reviewed_by"`
	ReviewedAt        *time.Time     `db:"reviewed_at"`
	Feedback          *string        `db:"feedback"`
	SubmittedAt       time.Time      `db:"submitted_at"`
}

func (s *submission) toModel() *model.Submission {
	return &model.Submission{
		ID:                s.ID,
		QuestID:           s.QuestID,
		UserID:            s.UserID,
		SubmissionText:    s.SubmissionText,
		SubmissionMedia:   s.SubmissionMedia,
		OriginalMessageID: s.OriginalMessageID,
		AdminMessageID:    s.AdminMessageID,
		Status:            model.SubmissionStatus(s.Status),
		ReviewedBy:        s.ReviewedBy,
		ReviewedAt:        s.ReviewedAt,
		Feedback:          s.Feedback,
		SubmittedAt:       s.SubmittedAt,
	}
}

var submissionColumns = []string{
	"id", "quest_id", "user_id", "submission_text", "submission_media",
	"original_message_id", "admin_message_id", "status",
	"reviewed_by", "reviewed_at", "feedback", "submitted_at",
}

func (r *Repository) CreateSubmission(ctx context.Context, s *model.Submission) error {
	query, args, err := squirrel.
		Insert("submissions").
		SetMap(map[string]interface{}{
			"id":                  s.ID,
			"quest_id":            s.QuestID,
			"user_id":             s.UserID,
			"submission_text":     s.SubmissionText,
			"submission_media":    pq.StringArray(s.SubmissionMedia),
			"original_message_id": s.OriginalMessageID,
			"status":              string(s.Status),
			"submitted_at":        s.SubmittedAt,
		}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build submission insert query: %w", err)
	}

	_, err = r.db.ExecContext(ctx, query, args...)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return ErrDuplicateID
		}
		return fmt.Errorf("failed to insert submission: %w", err)
	}

	return nil
}

func (r *Repository) GetSubmissionByID(ctx context.Context, id string) (*model.Submission, error) {
	query, args, err := squirrel.
		Select(submissionColumns...).
		From("submissions").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build submission select query: %w", err)
	}

	var s submission
	err = r.db.GetContext(ctx, &s, query, args...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get submission: %w", err)
	}

	return s.toModel(), nil
}

func (r *Repository) SetSubmissionAdminMessage(ctx context.Context, id string, adminMessageID int) error {
	query, args, err := squirrel.
		Update("submissions").
		Set("admin_message_id", adminMessageID).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build admin message update query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to set admin message: %w", err)
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

// TransitionSubmission moves a pending submission to a terminal status.
// The status precondition lives in the WHERE clause, so concurrent
// reviews of the same submission have exactly one winner.
func (r *Repository) TransitionSubmission(ctx context.Context, id string, status model.SubmissionStatus, reviewerID int64, feedback *string) error {
	return r.Transaction(ctx, func(tx *sqlx.Tx) error {
		query, args, err := squirrel.
			Update("submissions").
			Set("status", string(status)).
			Set("reviewed_by", reviewerID).
			Set("reviewed_at", time.Now()).
			Set("feedback", feedback).
			Where(squirrel.Eq{
				"id":     id,
				"status": string(model.SubmissionStatusPending),
			}).
			PlaceholderFormat(squirrel.Dollar).
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build transition query: %w", err)
		}

		result, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			return fmt.Errorf("failed to transition submission: %w", err)
		}

		rows, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to get affected rows: %w", err)
		}

		if rows == 0 {
			checkQuery, checkArgs, err := squirrel.
				Select("status").
				From("submissions").
				Where(squirrel.Eq{"id": id}).
				PlaceholderFormat(squirrel.Dollar).
				ToSql()
			if err != nil {
				return fmt.Errorf("failed to build check query: %w", err)
			}

			var current string
			err = tx.GetContext(ctx, &current, checkQuery, checkArgs...)
			if err != nil {
				if errors.Is(err, sql.ErrNoRows) {
					return ErrNotFound
				}
				return fmt.Errorf("failed to check submission status: %w", err)
			}

			return ErrAlreadyReviewed
		}

		return nil
	})
}
