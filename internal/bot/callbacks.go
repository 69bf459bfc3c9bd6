package bot

import (
	"context"
	"errors"
	"strings"

	"questbot/internal/model"
	"questbot/internal/service"
	"questbot/pkg/logger"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// splitCallback separates the action tag from its payload. Everything
// after the first underscore belongs to the payload, so ids containing
// the delimiter survive intact.
func splitCallback(data string) (action, payload string) {
	switch data {
	case actionConfirmQuest, actionCancelQuest, actionViewQuests, actionCreateQuest:
		return data, ""
	}
	action, payload, _ = strings.Cut(data, "_")
	return action, payload
}

func (b *Bot) handleCallback(ctx context.Context, query *tgbotapi.CallbackQuery) error {
	logger.Logger().Info("callback received",
		zap.Int64("user_id", query.From.ID),
		zap.String("data", query.Data))

	if query.Message == nil {
		return b.answerCallback(query.ID, "")
	}

	action, payload := splitCallback(query.Data)

	switch action {
	case actionConfirmQuest:
		return b.handleConfirmQuest(ctx, query)
	case actionCancelQuest:
		return b.handleCancelQuest(ctx, query)
	case actionViewQuests:
		return b.handleViewQuests(ctx, query)
	case actionCreateQuest:
		if err := b.answerCallback(query.ID, ""); err != nil {
			return err
		}
		return b.send(tgbotapi.NewMessage(query.Message.Chat.ID, questFormatHelp))
	case actionApprove:
		return b.handleReview(ctx, query, payload, model.SubmissionStatusApproved)
	case actionDeny:
		return b.handleReview(ctx, query, payload, model.SubmissionStatusDenied)
	default:
		return b.answerCallback(query.ID, "Unknown action")
	}
}

func (b *Bot) answerCallback(queryID, text string) error {
	_, err := b.api.Request(tgbotapi.NewCallback(queryID, text))
	if err != nil {
		logger.Logger().Error("failed to answer callback", zap.Error(err))
	}
	return err
}

func (b *Bot) handleConfirmQuest(ctx context.Context, query *tgbotapi.CallbackQuery) error {
	if err := b.answerCallback(query.ID, ""); err != nil {
		return err
	}

	chatID := query.Message.Chat.ID
	draft := b.drafts.Take(query.From.ID)
	if draft == nil {
		edit := tgbotapi.NewEditMessageTextAndMarkup(chatID, query.Message.MessageID,
			"No pending quest found. Please try creating a quest again.",
			mainKeyboard(true))
		return b.send(edit)
	}

	if _, err := b.users.GetOrCreateUser(ctx, query.From.ID, query.From.UserName,
		query.From.FirstName, query.From.LastName, true); err != nil {
		logger.Logger().Warn("failed to register admin", zap.Int64("user_id", query.From.ID), zap.Error(err))
	}

	quest, err := b.quests.CreateQuest(ctx, draft, query.From.ID)
	if err != nil {
		logger.Logger().Error("failed to create quest", zap.Error(err))
		return b.send(tgbotapi.NewMessage(chatID, genericFailureText))
	}

	logger.Logger().Info("quest created",
		zap.String("quest_id", quest.ID),
		zap.Int64("created_by", query.From.ID))

	if quest.ImageURL != "" {
		photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileURL(quest.ImageURL))
		photo.Caption = formatQuestCreated(quest)
		photo.ReplyMarkup = mainKeyboard(true)
		return b.send(photo)
	}

	edit := tgbotapi.NewEditMessageTextAndMarkup(chatID, query.Message.MessageID,
		formatQuestCreated(quest), mainKeyboard(true))
	return b.send(edit)
}

func (b *Bot) handleCancelQuest(ctx context.Context, query *tgbotapi.CallbackQuery) error {
	if err := b.answerCallback(query.ID, ""); err != nil {
		return err
	}

	b.drafts.Take(query.From.ID)

	edit := tgbotapi.NewEditMessageTextAndMarkup(query.Message.Chat.ID, query.Message.MessageID,
		"Quest creation cancelled.", mainKeyboard(true))
	return b.send(edit)
}

func (b *Bot) handleViewQuests(ctx context.Context, query *tgbotapi.CallbackQuery) error {
	if err := b.answerCallback(query.ID, ""); err != nil {
		return err
	}

	chatID := query.Message.Chat.ID
	quests, err := b.quests.ListActiveQuests(ctx)
	if err != nil {
		logger.Logger().Error("failed to list quests", zap.Error(err))
		return b.send(tgbotapi.NewMessage(chatID, genericFailureText))
	}

	if len(quests) == 0 {
		edit := tgbotapi.NewEditMessageTextAndMarkup(chatID, query.Message.MessageID,
			"No active quests found.", mainKeyboard(b.isAdminChat(chatID)))
		return b.send(edit)
	}

	for _, quest := range quests {
		if quest.ImageURL != "" {
			photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileURL(quest.ImageURL))
			photo.Caption = formatQuestCard(quest)
			photo.ReplyMarkup = questListKeyboard(quest)
			b.send(photo)
			continue
		}
		card := tgbotapi.NewMessage(chatID, formatQuestCard(quest))
		card.ReplyMarkup = questListKeyboard(quest)
		b.send(card)
	}

	return nil
}

// handleReview resolves a pending submission. The losing side of a
// concurrent approve/deny gets told the submission was already reviewed;
// the original resolution stands.
func (b *Bot) handleReview(ctx context.Context, query *tgbotapi.CallbackQuery, submissionID string, status model.SubmissionStatus) error {
	if submissionID == "" {
		return b.answerCallback(query.ID, "Invalid submission reference")
	}

	submission, quest, err := b.subs.Review(ctx, submissionID, status, query.From.ID, nil)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAlreadyReviewed):
			return b.answerCallback(query.ID, "This submission has already been reviewed.")
		case errors.Is(err, service.ErrSubmissionNotFound):
			return b.answerCallback(query.ID, "Submission not found.")
		default:
			logger.Logger().Error("review failed",
				zap.String("submission_id", submissionID), zap.Error(err))
			return b.answerCallback(query.ID, genericFailureText)
		}
	}

	if err := b.answerCallback(query.ID, ""); err != nil {
		return err
	}

	logger.Logger().Info("submission reviewed",
		zap.String("submission_id", submission.ID),
		zap.String("status", string(submission.Status)),
		zap.Int64("reviewed_by", query.From.ID))

	var notice, resolution string
	if status == model.SubmissionStatusApproved {
		notice = formatApprovedNotice(quest)
		resolution = "Submission approved!"
	} else {
		notice = formatDeniedNotice(quest)
		resolution = "Submission denied."
	}

	// Notify the submitter; a delivery failure does not undo the review.
	if err := b.send(tgbotapi.NewMessage(submission.UserID, notice)); err != nil {
		logger.Logger().Error("failed to notify submitter",
			zap.Int64("user_id", submission.UserID), zap.Error(err))
	}

	edit := tgbotapi.NewEditMessageText(query.Message.Chat.ID, query.Message.MessageID, resolution)
	return b.send(edit)
}
