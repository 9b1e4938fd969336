package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"regexp"
	"strconv"
	"strings"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"

	"roast-bot/api/internal/app"
	"roast-bot/api/internal/config"
	"roast-bot/api/internal/handle"
	"roast-bot/api/internal/httpserver"
	"roast-bot/api/internal/logging"
	"roast-bot/api/internal/telegram"
)

func main() {
	boot := logging.New("info", false)
	if err := config.LoadDotEnv(".env"); err != nil {
		boot.Fatal().Err(err).Msg("read .env")
	}
	cfg, err := config.Load()
	if err != nil {
		boot.Fatal().Err(err).Msg("config")
	}
	log := logging.New(cfg.LogLevel, cfg.LogPretty)
	if strings.TrimSpace(cfg.TelegramBotToken) == "" {
		log.Fatal().Msg("TELEGRAM_BOT_TOKEN is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.Build(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("init llm engine")
	}
	defer a.Close()

	bot, err := tgbotapi.NewBotAPI(cfg.TelegramBotToken)
	if err != nil {
		log.Fatal().Err(err).Msg("telegram")
	}
	bot.Debug = false
	log.Info().Str("bot", bot.Self.UserName).Msg("telegram authorized")

	r := &telegram.Router{
		Bot:       bot,
		Roaster:   a.Service,
		Log:       log,
		HTTP:      &http.Client{Timeout: 60 * time.Second},
		MaxUpload: cfg.MaxUploadBytes,
	}

	// the bot process also serves the HTTP API
	mux := http.NewServeMux()
	handle.New(a.Service, cfg.MaxUploadBytes, log).Register(mux)

	addr := ":" + cfg.Port
	if webhookURL := strings.TrimSpace(cfg.WebhookURL); webhookURL != "" {
		err = startWebhookMode(ctx, addr, mux, bot, r, webhookURL, log)
	} else {
		err = startPollingMode(ctx, addr, mux, bot, r, log)
	}
	if err != nil {
		log.Error().Err(err).Msg("bot stopped")
	}
}

// ---------------- Modes -----------------

func startWebhookMode(ctx context.Context, addr string, mux *http.ServeMux, bot *tgbotapi.BotAPI, r *telegram.Router, baseURL string, log zerolog.Logger) error {
	// secret webhook path
	path := "/webhook/" + shortHash(bot.Token)
	public := strings.TrimRight(baseURL, "/") + path

	wh, err := tgbotapi.NewWebhook(public)
	if err != nil {
		return err
	}
	wh.DropPendingUpdates = true
	if _, err := bot.Request(wh); err != nil {
		return err
	}

	mux.HandleFunc("POST "+path, func(w http.ResponseWriter, req *http.Request) {
		upd, err := bot.HandleUpdate(req)
		if err != nil {
			log.Warn().Err(err).Msg("bad webhook update")
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		// Telegram retries slow webhooks; answer first, roast after.
		go r.HandleUpdate(ctx, *upd)
		w.WriteHeader(http.StatusOK)
	})

	log.Info().Str("addr", addr).Str("path", path).Msg("webhook mode")
	return httpserver.Run(ctx, addr, chain(mux, log), log)
}

func startPollingMode(ctx context.Context, addr string, mux *http.ServeMux, bot *tgbotapi.BotAPI, r *telegram.Router, log zerolog.Logger) error {
	if _, err := bot.Request(tgbotapi.DeleteWebhookConfig{}); err != nil {
		log.Warn().Err(err).Msg("delete webhook")
	}

	log.Info().Msg("polling mode")
	return runAlongside(ctx,
		func(ctx context.Context) error {
			return httpserver.Run(ctx, addr, chain(mux, log), log)
		},
		func(ctx context.Context) {
			runPolling(ctx, bot, log, func(upd tgbotapi.Update) {
				go r.HandleUpdate(ctx, upd)
			})
		},
	)
}

// runAlongside runs serve in the background while fg runs. Whichever ends
// first stops the other; it returns once serve has fully shut down.
func runAlongside(ctx context.Context, serve func(context.Context) error, fg func(context.Context)) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	errc := make(chan error, 1)
	go func() {
		errc <- serve(ctx)
		cancel()
	}()

	fg(ctx)
	cancel()
	return <-errc
}

func chain(mux *http.ServeMux, log zerolog.Logger) http.Handler {
	return httpserver.Chain(mux,
		httpserver.RequestLogger(log),
		httpserver.AccessLog(),
		httpserver.Recover(),
	)
}

// ---------------- Polling loop -----------------

var reRetryAfter = regexp.MustCompile(`(?i)retry after\s+(\d+)`)

func retryDelayFromError(err error) time.Duration {
	if err == nil {
		return 0
	}
	s := strings.ToLower(err.Error())
	if strings.Contains(s, "too many requests") { // HTTP 429 from Telegram
		if m := reRetryAfter.FindStringSubmatch(s); len(m) == 2 {
			if n, _ := strconv.Atoi(m[1]); n > 0 {
				return time.Duration(n) * time.Second
			}
		}
		return 3 * time.Second
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return 2 * time.Second
	}
	return 1 * time.Second
}

func runPolling(ctx context.Context, bot *tgbotapi.BotAPI, log zerolog.Logger, handle func(tgbotapi.Update)) {
	offset := 0
	baseDelay := 1 * time.Second
	maxDelay := 15 * time.Second

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("polling: context cancelled")
			return
		default:
		}

		u := tgbotapi.NewUpdate(offset)
		u.Timeout = 30 // long polling timeout (sec)

		updates, err := bot.GetUpdates(u)
		if err != nil {
			d := min(max(retryDelayFromError(err), baseDelay), maxDelay)
			log.Warn().Err(err).Dur("retry_in", d).Msg("polling error")
			sleep(ctx, d)
			continue
		}

		for _, upd := range updates {
			if upd.UpdateID >= offset {
				offset = upd.UpdateID + 1
			}
			handle(upd)
		}

		if len(updates) == 0 {
			sleep(ctx, 200*time.Millisecond)
		}
	}
}

func sleep(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}

// ---------------- Helpers -----------------

func shortHash(s string) string {
	// FNV-1a, stable per token; not a secret on its own
	h := uint64(1469598103934665603)
	const prime = 1099511628211
	for i := 0; i < len(s); i++ {
		h ^= uint64(s[i])
		h *= prime
	}
	const hexdigits = "0123456789abcdef"
	out := make([]byte, 16)
	for i := 15; i >= 0; i-- {
		out[i] = hexdigits[h&0xF]
		h >>= 4
	}
	return string(out)
}
