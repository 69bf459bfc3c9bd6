package bot

import (
	"fmt"

	"questbot/internal/model"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const (
	actionConfirmQuest = "confirm_quest"
	actionCancelQuest  = "cancel_quest"
	actionViewQuests   = "view_quests"
	actionCreateQuest  = "create_quest"
	actionApprove      = "approve"
	actionDeny         = "deny"
)

func mainKeyboard(isAdmin bool) tgbotapi.InlineKeyboardMarkup {
	rows := [][]tgbotapi.InlineKeyboardButton{
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("View Active Quests", actionViewQuests),
		),
	}
	if isAdmin {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Create New Quest", actionCreateQuest),
		))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func confirmKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Yes", actionConfirmQuest),
			tgbotapi.NewInlineKeyboardButtonData("No", actionCancelQuest),
		),
	)
}

func approvalKeyboard(submissionID string) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ Approve", fmt.Sprintf("%s_%s", actionApprove, submissionID)),
			tgbotapi.NewInlineKeyboardButtonData("❌ Deny", fmt.Sprintf("%s_%s", actionDeny, submissionID)),
		),
	)
}

func questListKeyboard(quest *model.Quest) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(
				fmt.Sprintf("%s (%s)", quest.Title, quest.ID),
				actionViewQuests,
			),
		),
	)
}
