package logging

import (
	"context"

	"github.com/rs/zerolog"
)

// From returns the request-scoped logger stored in ctx, or fallback when the
// context carries none.
func From(ctx context.Context, fallback zerolog.Logger) *zerolog.Logger {
	if l := zerolog.Ctx(ctx); l.GetLevel() != zerolog.Disabled {
		return l
	}
	return &fallback
}
