package bot

import (
	"context"
	"fmt"

	"questbot/internal/service"
	"questbot/pkg/logger"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

type Config struct {
	Token       string `yaml:"token"`
	AdminChatID int64  `yaml:"adminChatId"`
	UserChatID  int64  `yaml:"userChatId"`
	Debug       bool   `yaml:"debug"`
}

// Bot drives the quest workflow over Telegram: admin messages in the
// admin group become quest drafts, user messages in the user group become
// submissions, and inline buttons resolve both.
type Bot struct {
	api    *tgbotapi.BotAPI
	cfg    Config
	quests service.QuestServiceI
	subs   service.SubmissionServiceI
	users  service.UserServiceI
	drafts *service.DraftStore
}

func New(cfg Config, quests service.QuestServiceI, subs service.SubmissionServiceI, users service.UserServiceI, drafts *service.DraftStore) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize bot: %w", err)
	}
	api.Debug = cfg.Debug

	return &Bot{
		api:    api,
		cfg:    cfg,
		quests: quests,
		subs:   subs,
		users:  users,
		drafts: drafts,
	}, nil
}

// Start runs the long-polling loop until ctx is cancelled. Each update is
// handled independently; a failing handler is logged and never stops the
// loop.
func (b *Bot) Start(ctx context.Context) {
	log := logger.Logger()
	log.Info("Starting bot polling", zap.String("username", b.api.Self.UserName))

	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = 60

	updates := b.api.GetUpdatesChan(updateConfig)

	for {
		select {
		case update := <-updates:
			b.handleUpdate(ctx, update)
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			log.Info("Bot polling stopped")
			return
		}
	}
}

func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	log := logger.Logger()

	switch {
	case update.CallbackQuery != nil:
		if err := b.handleCallback(ctx, update.CallbackQuery); err != nil {
			log.Error("callback handler failed",
				zap.String("data", update.CallbackQuery.Data),
				zap.Error(err))
		}
	case update.Message != nil && update.Message.IsCommand():
		if err := b.handleCommand(ctx, update.Message); err != nil {
			log.Error("command handler failed",
				zap.String("command", update.Message.Command()),
				zap.Error(err))
		}
	case update.Message != nil && update.Message.Chat.ID == b.cfg.AdminChatID:
		if err := b.handleAdminMessage(ctx, update.Message); err != nil {
			log.Error("admin message handler failed", zap.Error(err))
		}
	case update.Message != nil && update.Message.Chat.ID == b.cfg.UserChatID:
		if err := b.handleUserMessage(ctx, update.Message); err != nil {
			log.Error("user message handler failed", zap.Error(err))
		}
	}
}

func (b *Bot) isAdminChat(chatID int64) bool {
	return chatID == b.cfg.AdminChatID
}

func (b *Bot) send(c tgbotapi.Chattable) error {
	_, err := b.api.Send(c)
	if err != nil {
		logger.Logger().Error("transport send failed", zap.Error(err))
	}
	return err
}

// photoURL resolves the largest size of an attached photo to a file URL.
func (b *Bot) photoURL(sizes []tgbotapi.PhotoSize) (string, error) {
	if len(sizes) == 0 {
		return "", nil
	}
	largest := sizes[len(sizes)-1]
	file, err := b.api.GetFile(tgbotapi.FileConfig{FileID: largest.FileID})
	if err != nil {
		return "", fmt.Errorf("failed to get file: %w", err)
	}
	return file.Link(b.api.Token), nil
}
