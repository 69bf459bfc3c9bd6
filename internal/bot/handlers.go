package bot

import (
	"context"
	"errors"

	"questbot/internal/service"
	"questbot/pkg/logger"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

const genericFailureText = "Something went wrong, please try again later."

func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) error {
	isAdmin := b.isAdminChat(msg.Chat.ID)

	if _, err := b.users.GetOrCreateUser(ctx, msg.From.ID, msg.From.UserName,
		msg.From.FirstName, msg.From.LastName, isAdmin); err != nil {
		logger.Logger().Warn("failed to register user", zap.Int64("user_id", msg.From.ID), zap.Error(err))
	}

	switch msg.Command() {
	case "start":
		reply := tgbotapi.NewMessage(msg.Chat.ID, "Welcome to the Quest Bot! Choose an option:")
		reply.ReplyMarkup = mainKeyboard(isAdmin)
		return b.send(reply)
	case "help":
		helpText := "This bot manages quests between admins and users.\n\n" +
			"For Users:\n" +
			"- View active quests\n" +
			"- Submit quests with their code\n" +
			"- Track your submissions and points\n\n" +
			"For Admins:\n" +
			"- Create new quests\n" +
			"- Review submissions\n" +
			"- Approve/deny submissions"
		reply := tgbotapi.NewMessage(msg.Chat.ID, helpText)
		reply.ReplyMarkup = mainKeyboard(isAdmin)
		return b.send(reply)
	}
	return nil
}

// handleAdminMessage parses a free-text quest definition, stages it and
// asks for confirmation. Parse errors re-prompt with corrective guidance
// and leave any previously staged draft untouched.
func (b *Bot) handleAdminMessage(ctx context.Context, msg *tgbotapi.Message) error {
	text := msg.Text
	if text == "" {
		text = msg.Caption
	}
	if text == "" {
		return nil
	}

	imageURL, err := b.photoURL(msg.Photo)
	if err != nil {
		logger.Logger().Warn("failed to resolve attached photo", zap.Error(err))
	}

	draft, err := service.ParseQuestDraft(text, imageURL)
	if err != nil {
		var guidance string
		switch {
		case errors.Is(err, service.ErrInvalidDeadline):
			guidance = "Invalid deadline format. Please use: Deadline: YYYY-MM-DD HH:MM"
		case errors.Is(err, service.ErrInvalidPoints):
			guidance = "Invalid points format. Please use: Points: [number]"
		default:
			guidance = questFormatHelp
		}
		return b.send(tgbotapi.NewMessage(msg.Chat.ID, guidance))
	}

	b.drafts.Put(msg.From.ID, draft)

	prompt := tgbotapi.NewMessage(msg.Chat.ID, formatDraftConfirmation(draft))
	prompt.ReplyMarkup = confirmKeyboard()
	return b.send(prompt)
}

// handleUserMessage turns a message carrying a known quest reference into
// a pending submission and forwards it to the admin group for review. A
// message without a recognizable reference, or one referencing an unknown
// quest, is deliberately ignored.
func (b *Bot) handleUserMessage(ctx context.Context, msg *tgbotapi.Message) error {
	text := msg.Text
	if text == "" {
		text = msg.Caption
	}

	ref := service.ExtractQuestReference(text)
	if ref == "" {
		return nil
	}

	if _, err := b.users.GetOrCreateUser(ctx, msg.From.ID, msg.From.UserName,
		msg.From.FirstName, msg.From.LastName, false); err != nil {
		logger.Logger().Warn("failed to register user", zap.Int64("user_id", msg.From.ID), zap.Error(err))
	}

	var media []string
	if url, err := b.photoURL(msg.Photo); err == nil && url != "" {
		media = append(media, url)
	}

	originalID := msg.MessageID
	submission, quest, err := b.subs.Submit(ctx, ref, msg.From.ID, text, media, &originalID)
	if err != nil {
		if errors.Is(err, service.ErrQuestNotFound) {
			// unknown code in normal chatter, stay silent
			return nil
		}
		b.send(tgbotapi.NewMessage(msg.Chat.ID, genericFailureText))
		return err
	}

	logger.Logger().Info("submission created",
		zap.String("submission_id", submission.ID),
		zap.String("quest_id", quest.ID),
		zap.Int64("user_id", msg.From.ID))

	// The submission is committed; forwarding failures are logged and the
	// admin group simply never sees the prompt.
	forwarded, err := b.api.Send(tgbotapi.NewForward(b.cfg.AdminChatID, msg.Chat.ID, msg.MessageID))
	if err != nil {
		logger.Logger().Error("failed to forward submission", zap.Error(err))
		return err
	}

	review := tgbotapi.NewMessage(b.cfg.AdminChatID, formatSubmissionReview(quest))
	review.ReplyToMessageID = forwarded.MessageID
	review.ReplyMarkup = approvalKeyboard(submission.ID)
	adminMsg, err := b.api.Send(review)
	if err != nil {
		logger.Logger().Error("failed to send review prompt", zap.Error(err))
		return err
	}

	if err := b.subs.AttachAdminMessage(ctx, submission.ID, adminMsg.MessageID); err != nil {
		logger.Logger().Warn("failed to record admin message id", zap.Error(err))
	}

	return b.send(tgbotapi.NewMessage(msg.Chat.ID, "Your submission has been sent for review!"))
}
