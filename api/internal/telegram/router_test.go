package telegram

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roast-bot/api/internal/roast"
)

type fakeBot struct {
	mu       sync.Mutex
	sent     []tgbotapi.Chattable
	requests []tgbotapi.Chattable
	fileURL  string
}

func (b *fakeBot) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.sent = append(b.sent, c)
	return tgbotapi.Message{}, nil
}

func (b *fakeBot) Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.requests = append(b.requests, c)
	return &tgbotapi.APIResponse{Ok: true}, nil
}

func (b *fakeBot) GetFileDirectURL(string) (string, error) {
	if b.fileURL == "" {
		return "", errors.New("no file")
	}
	return b.fileURL, nil
}

func (b *fakeBot) texts() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	var out []string
	for _, c := range b.sent {
		if m, ok := c.(tgbotapi.MessageConfig); ok {
			out = append(out, m.Text)
		}
	}
	return out
}

type fakeRoaster struct {
	got   []roast.Request
	err   error
	reply roast.Result
}

func (f *fakeRoaster) Roast(_ context.Context, req roast.Request) (roast.Result, error) {
	f.got = append(f.got, req)
	if f.err != nil {
		return roast.Result{}, f.err
	}
	if err := req.Validate(); err != nil {
		return roast.Result{}, err
	}
	return f.reply, nil
}

func command(chatID int64, text, cmd string) tgbotapi.Update {
	return tgbotapi.Update{Message: &tgbotapi.Message{
		Chat:     &tgbotapi.Chat{ID: chatID},
		Text:     text,
		Entities: []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: len(cmd)}},
	}}
}

func newRouter(bot *fakeBot, rs *fakeRoaster) *Router {
	return &Router{Bot: bot, Roaster: rs, Log: zerolog.Nop(), MaxUpload: 1 << 10}
}

var sample = roast.Result{
	Roast: "Rahul bhai, 3am pe code?", Compliment: "Dedication solid hai",
	Tag: "Night Owl", ConfidencePct: "87%", WitScore: 8.2,
}

func TestRouter_RoastCommand(t *testing.T) {
	bot := &fakeBot{}
	rs := &fakeRoaster{reply: sample}
	r := newRouter(bot, rs)

	r.HandleUpdate(context.Background(), command(7, "/roast Rahul | codes at 3am | 4", "/roast"))

	require.Len(t, rs.got, 1)
	assert.Equal(t, roast.Request{Name: "Rahul", Habit: "codes at 3am", Level: 4}, rs.got[0])
	texts := bot.texts()
	require.Len(t, texts, 1)
	assert.Contains(t, texts[0], "Rahul bhai, 3am pe code?")
	assert.Contains(t, texts[0], "Wit: 8.2/10")
}

func TestRouter_RoastUsesChatLevel(t *testing.T) {
	rs := &fakeRoaster{reply: sample}
	r := newRouter(&fakeBot{}, rs)

	r.HandleUpdate(context.Background(), command(7, "/level 5", "/level"))
	r.HandleUpdate(context.Background(), command(7, "/roast Rahul | snoozes", "/roast"))
	r.HandleUpdate(context.Background(), command(8, "/roast Priya | snoozes", "/roast"))

	require.Len(t, rs.got, 2)
	assert.Equal(t, 5, rs.got[0].Level)
	assert.Equal(t, defaultLevel, rs.got[1].Level)
}

func TestRouter_RoastValidation(t *testing.T) {
	bot := &fakeBot{}
	r := newRouter(bot, &fakeRoaster{reply: sample})

	r.HandleUpdate(context.Background(), command(7, "/roast Rahul | codes | 9", "/roast"))
	r.HandleUpdate(context.Background(), command(7, "/roast  | codes", "/roast"))
	r.HandleUpdate(context.Background(), command(7, "/roast", "/roast"))

	texts := bot.texts()
	require.Len(t, texts, 3)
	assert.Contains(t, texts[0], "Level must be between 1 and 5")
	assert.Contains(t, texts[1], "Name and habit are required")
	assert.Contains(t, texts[2], usageText)
}

func TestRouter_UnexpectedError(t *testing.T) {
	bot := &fakeBot{}
	r := newRouter(bot, &fakeRoaster{err: errors.New("kaboom")})

	r.HandleUpdate(context.Background(), command(7, "/roast A | B", "/roast"))

	assert.Equal(t, []string{"Something went wrong, try again in a bit."}, bot.texts())
}

func TestRouter_LevelCallback(t *testing.T) {
	bot := &fakeBot{}
	r := newRouter(bot, &fakeRoaster{})

	r.HandleUpdate(context.Background(), command(7, "/level", "/level"))
	require.Len(t, bot.sent, 1)
	kb, ok := bot.sent[0].(tgbotapi.MessageConfig).ReplyMarkup.(tgbotapi.InlineKeyboardMarkup)
	require.True(t, ok)
	require.Len(t, kb.InlineKeyboard[0], 5)
	assert.Equal(t, "level:2", *kb.InlineKeyboard[0][1].CallbackData)

	cb := tgbotapi.Update{CallbackQuery: &tgbotapi.CallbackQuery{
		ID:      "cb1",
		Data:    "level:2",
		Message: &tgbotapi.Message{MessageID: 10, Chat: &tgbotapi.Chat{ID: 7}},
	}}
	r.HandleUpdate(context.Background(), cb)
	assert.Equal(t, 2, r.Level(7))

	cb.CallbackQuery.Data = "level:9"
	r.HandleUpdate(context.Background(), cb)
	assert.Equal(t, 2, r.Level(7))
}

func TestRouter_Photo(t *testing.T) {
	img := []byte{0xFF, 0xD8, 0xFF, 0xE0}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write(img)
	}))
	defer srv.Close()

	bot := &fakeBot{fileURL: srv.URL}
	rs := &fakeRoaster{reply: sample}
	r := newRouter(bot, rs)

	r.HandleUpdate(context.Background(), tgbotapi.Update{Message: &tgbotapi.Message{
		Chat:    &tgbotapi.Chat{ID: 7},
		Photo:   []tgbotapi.PhotoSize{{FileID: "small"}, {FileID: "big"}},
		Caption: "Priya | tabs hoarding | 2",
	}})

	require.Len(t, rs.got, 1)
	assert.Equal(t, img, rs.got[0].Image)
	assert.Equal(t, 2, rs.got[0].Level)
}

func TestRouter_PhotoDownloadFailsStillRoasts(t *testing.T) {
	rs := &fakeRoaster{reply: sample}
	r := newRouter(&fakeBot{}, rs)

	r.HandleUpdate(context.Background(), tgbotapi.Update{Message: &tgbotapi.Message{
		Chat:    &tgbotapi.Chat{ID: 7},
		Photo:   []tgbotapi.PhotoSize{{FileID: "big"}},
		Caption: "Priya | tabs hoarding",
	}})

	require.Len(t, rs.got, 1)
	assert.Nil(t, rs.got[0].Image)
}

func TestRouter_PhotoTooLarge(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write(make([]byte, 4<<10))
	}))
	defer srv.Close()

	r := newRouter(&fakeBot{fileURL: srv.URL}, &fakeRoaster{})
	_, err := r.downloadFile(context.Background(), "big")
	assert.Error(t, err)
}

func TestRouter_PhotoWithoutCaption(t *testing.T) {
	bot := &fakeBot{}
	rs := &fakeRoaster{}
	r := newRouter(bot, rs)

	r.HandleUpdate(context.Background(), tgbotapi.Update{Message: &tgbotapi.Message{
		Chat:  &tgbotapi.Chat{ID: 7},
		Photo: []tgbotapi.PhotoSize{{FileID: "big"}},
	}})

	assert.Empty(t, rs.got)
	require.Len(t, bot.texts(), 1)
}
