package telegram

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"

	"roast-bot/api/internal/roast"
	"roast-bot/api/internal/util"
)

const (
	defaultLevel  = 3
	maxMessageLen = 3900
)

// Bot is the subset of *tgbotapi.BotAPI the router uses.
type Bot interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetFileDirectURL(fileID string) (string, error)
}

type Roaster interface {
	Roast(ctx context.Context, req roast.Request) (roast.Result, error)
}

type Router struct {
	Bot       Bot
	Roaster   Roaster
	Log       zerolog.Logger
	HTTP      *http.Client
	MaxUpload int64

	levels sync.Map // chatID -> int
}

func (r *Router) HandleUpdate(ctx context.Context, upd tgbotapi.Update) {
	if upd.CallbackQuery != nil {
		if upd.CallbackQuery.Message == nil || upd.CallbackQuery.Message.Chat == nil {
			return
		}
		ctx = r.Log.With().Int64("chat_id", upd.CallbackQuery.Message.Chat.ID).Logger().WithContext(ctx)
		r.handleCallback(ctx, *upd.CallbackQuery)
		return
	}
	if upd.Message == nil || upd.Message.Chat == nil {
		return
	}
	msg := upd.Message
	ctx = r.Log.With().Int64("chat_id", msg.Chat.ID).Int("update_id", upd.UpdateID).Logger().WithContext(ctx)

	switch {
	case len(msg.Photo) > 0:
		r.acceptPhoto(ctx, *msg)
	case msg.IsCommand():
		r.HandleCommand(ctx, *msg)
	case strings.TrimSpace(msg.Text) != "":
		r.send(msg.Chat.ID, usageText)
	}
}

func (r *Router) HandleCommand(ctx context.Context, msg tgbotapi.Message) {
	cid := msg.Chat.ID
	switch msg.Command() {
	case "start", "help":
		r.send(cid, startText)
	case "level":
		r.onLevelCommand(cid, msg.CommandArguments())
	case "roast":
		args, err := ParseArgs(msg.CommandArguments(), r.Level(cid))
		if err != nil {
			r.send(cid, err.Error()+"\n\n"+usageText)
			return
		}
		r.runRoast(ctx, cid, args, nil)
	default:
		r.send(cid, "Unknown command. Try /roast or /level.")
	}
}

func (r *Router) runRoast(ctx context.Context, cid int64, args Args, image []byte) {
	_, _ = r.Bot.Request(tgbotapi.NewChatAction(cid, tgbotapi.ChatTyping))

	res, err := r.Roaster.Roast(ctx, roast.Request{Name: args.Name, Habit: args.Habit, Level: args.Level, Image: image})
	switch {
	case err == nil:
	case errors.Is(err, roast.ErrNameHabitRequired):
		r.send(cid, "Name and habit are required.\n\n"+usageText)
		return
	case errors.Is(err, roast.ErrLevelOutOfRange):
		r.send(cid, "Level must be between 1 and 5.")
		return
	default:
		zerolog.Ctx(ctx).Error().Err(err).Msg("roast failed")
		r.send(cid, "Something went wrong, try again in a bit.")
		return
	}
	r.send(cid, FormatResult(res))
}

func (r *Router) send(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, util.ClampRunes(text, maxMessageLen))
	if _, err := r.Bot.Send(msg); err != nil {
		r.Log.Warn().Err(err).Int64("chat_id", chatID).Msg("telegram send failed")
	}
}
