// Package app wires configuration into a ready roast service. Both the HTTP
// API and the Telegram bot start from here.
package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"roast-bot/api/internal/config"
	"roast-bot/api/internal/llm"
	"roast-bot/api/internal/llm/gemini"
	"roast-bot/api/internal/llm/openai"
	"roast-bot/api/internal/roast"
	"roast-bot/api/internal/safety"
)

type App struct {
	Service *roast.Service
	Engine  llm.Engine

	close func() error
}

// Build creates the configured engine (one client per process), wraps it
// with the timeout/retry/concurrency guard and assembles the service.
func Build(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*App, error) {
	engines := &llm.Engines{}
	closeFn := func() error { return nil }

	switch cfg.LLMProvider {
	case "openai":
		engines.OpenAI = openai.New(&http.Client{Timeout: 2 * cfg.LLMTimeout}, cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.OpenAIModel)
	default:
		g, err := gemini.New(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			return nil, fmt.Errorf("gemini client: %w", err)
		}
		engines.Gemini = g
		closeFn = g.Close
	}

	eng, err := engines.GetEngine(cfg.LLMProvider)
	if err != nil {
		_ = closeFn()
		return nil, err
	}
	return New(eng, cfg, log, closeFn), nil
}

// New assembles the service around an already built engine.
func New(eng llm.Engine, cfg *config.Config, log zerolog.Logger, closeFn func() error) *App {
	guarded := llm.NewGuard(eng, llm.GuardOptions{
		Timeout:       cfg.LLMTimeout,
		Retries:       cfg.LLMRetries,
		MaxConcurrent: cfg.LLMMaxConcurrency,
		Backoff:       500 * time.Millisecond,
	}, log)

	captions := safety.NewSanitizer(guarded, safety.DefaultPolicy(), log)
	if closeFn == nil {
		closeFn = func() error { return nil }
	}
	return &App{
		Service: roast.NewService(captions, guarded, log),
		Engine:  guarded,
		close:   closeFn,
	}
}

func (a *App) Close() error { return a.close() }
