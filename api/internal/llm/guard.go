package llm

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/semaphore"
)

type GuardOptions struct {
	// Timeout bounds a single attempt. Zero means no per-attempt deadline.
	Timeout time.Duration
	// Retries is the number of extra attempts after the first failure.
	Retries int
	// MaxConcurrent caps in-flight calls across all requests.
	MaxConcurrent int64
	// Backoff is multiplied by the attempt number between attempts.
	Backoff time.Duration
}

// Guard wraps an Engine with a per-attempt timeout, a bounded retry and a
// process-wide concurrency limit.
type Guard struct {
	next Engine
	opts GuardOptions
	sem  *semaphore.Weighted
	log  zerolog.Logger
}

func NewGuard(next Engine, opts GuardOptions, log zerolog.Logger) *Guard {
	if opts.MaxConcurrent < 1 {
		opts.MaxConcurrent = 1
	}
	if opts.Retries < 0 {
		opts.Retries = 0
	}
	if opts.Backoff == 0 {
		opts.Backoff = 300 * time.Millisecond
	}
	return &Guard{
		next: next,
		opts: opts,
		sem:  semaphore.NewWeighted(opts.MaxConcurrent),
		log:  log,
	}
}

func (g *Guard) Name() string     { return g.next.Name() }
func (g *Guard) GetModel() string { return g.next.GetModel() }

func (g *Guard) Describe(ctx context.Context, prompt string, image []byte) (string, error) {
	return g.do(ctx, "describe", func(ctx context.Context) (string, error) {
		return g.next.Describe(ctx, prompt, image)
	})
}

func (g *Guard) Generate(ctx context.Context, prompt string) (string, error) {
	return g.do(ctx, "generate", func(ctx context.Context) (string, error) {
		return g.next.Generate(ctx, prompt)
	})
}

func (g *Guard) do(ctx context.Context, op string, call func(context.Context) (string, error)) (string, error) {
	if err := g.sem.Acquire(ctx, 1); err != nil {
		return "", fmt.Errorf("%s: waiting for model slot: %w", op, err)
	}
	defer g.sem.Release(1)

	var lastErr error
	for attempt := 0; attempt <= g.opts.Retries; attempt++ {
		if attempt > 0 {
			g.log.Warn().Err(lastErr).Str("op", op).Str("engine", g.next.Name()).Int("attempt", attempt+1).Msg("retrying model call")
			select {
			case <-ctx.Done():
				return "", fmt.Errorf("%s: %w", op, ctx.Err())
			case <-time.After(time.Duration(attempt) * g.opts.Backoff):
			}
		}

		out, err := g.attempt(ctx, call)
		if err == nil {
			return out, nil
		}
		lastErr = err
		if ctx.Err() != nil {
			break
		}
	}
	return "", fmt.Errorf("%s: %w", op, lastErr)
}

func (g *Guard) attempt(ctx context.Context, call func(context.Context) (string, error)) (string, error) {
	if g.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.opts.Timeout)
		defer cancel()
	}
	return call(ctx)
}
