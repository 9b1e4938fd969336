package telegram

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
)

func (r *Router) handleCallback(ctx context.Context, cb tgbotapi.CallbackQuery) {
	cid := cb.Message.Chat.ID

	if !strings.HasPrefix(cb.Data, levelPrefix) {
		_, _ = r.Bot.Request(tgbotapi.NewCallback(cb.ID, ""))
		return
	}
	lvl, err := strconv.Atoi(strings.TrimPrefix(cb.Data, levelPrefix))
	if err == nil {
		err = r.SetLevel(cid, lvl)
	}
	if err != nil {
		zerolog.Ctx(ctx).Warn().Str("data", cb.Data).Msg("bad level callback")
		_, _ = r.Bot.Request(tgbotapi.NewCallback(cb.ID, "Unknown level"))
		return
	}

	_, _ = r.Bot.Request(tgbotapi.NewCallback(cb.ID, fmt.Sprintf("Level %d", lvl)))
	// drop the keyboard
	edit := tgbotapi.NewEditMessageReplyMarkup(cid, cb.Message.MessageID, tgbotapi.InlineKeyboardMarkup{
		InlineKeyboard: [][]tgbotapi.InlineKeyboardButton{},
	})
	_, _ = r.Bot.Send(edit)
	r.send(cid, fmt.Sprintf("Roast level set to %s", levelLabels[lvl]))
}

// onLevelCommand handles "/level" (shows the keyboard) and "/level N".
func (r *Router) onLevelCommand(cid int64, args string) {
	args = strings.TrimSpace(args)
	if args == "" {
		msg := tgbotapi.NewMessage(cid, fmt.Sprintf("Current level: %d. Pick a new one:", r.Level(cid)))
		msg.ReplyMarkup = makeLevelKeyboard(r.Level(cid))
		_, _ = r.Bot.Send(msg)
		return
	}
	lvl, err := strconv.Atoi(args)
	if err == nil {
		err = r.SetLevel(cid, lvl)
	}
	if err != nil {
		r.send(cid, "Level must be between 1 and 5.")
		return
	}
	r.send(cid, fmt.Sprintf("Roast level set to %s", levelLabels[lvl]))
}
