package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"roast-bot/api/internal/app"
	"roast-bot/api/internal/config"
	"roast-bot/api/internal/handle"
	"roast-bot/api/internal/httpserver"
	"roast-bot/api/internal/logging"
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

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.Build(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("init llm engine")
	}
	defer a.Close()

	h := newHandler(a.Service, cfg.MaxUploadBytes, log)

	addr := ":" + cfg.Port
	log.Info().Str("addr", addr).Str("engine", a.Engine.Name()).Str("model", a.Engine.GetModel()).Msg("starting roast api")
	if err := httpserver.Run(ctx, addr, h, log); err != nil {
		log.Error().Err(err).Msg("server stopped")
		_ = a.Close()
		stop()
		os.Exit(1)
	}
}

func newHandler(svc handle.Roaster, maxUpload int64, log zerolog.Logger) http.Handler {
	mux := http.NewServeMux()
	handle.New(svc, maxUpload, log).Register(mux)

	return httpserver.Chain(mux,
		httpserver.RequestLogger(log),
		httpserver.AccessLog(),
		httpserver.Recover(),
	)
}
