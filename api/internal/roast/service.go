package roast

import (
	"context"

	"github.com/rs/zerolog"

	"roast-bot/api/internal/llm"
	"roast-bot/api/internal/logging"
	"roast-bot/api/internal/safety"
)

// Captioner produces a safe, non-empty caption for a photo.
type Captioner interface {
	Caption(ctx context.Context, image []byte) string
}

// Service runs one roast: optional photo caption, prompt, model call,
// parse, fallback.
type Service struct {
	captions Captioner
	text     llm.TextModel
	log      zerolog.Logger
}

func NewService(captions Captioner, text llm.TextModel, log zerolog.Logger) *Service {
	return &Service{captions: captions, text: text, log: log}
}

// Roast validates req and produces a result. The only errors returned are
// validation errors; model problems end in the fallback record.
func (s *Service) Roast(ctx context.Context, req Request) (Result, error) {
	if err := req.Validate(); err != nil {
		return Result{}, err
	}

	caption := safety.SafeCaption
	if len(req.Image) > 0 {
		caption = s.captions.Caption(ctx, req.Image)
		logging.From(ctx, s.log).Info().Str("caption", caption).Msg("generated photo caption")
	}

	return s.Generate(ctx, req.Name, req.Habit, req.Level, caption), nil
}

// Generate asks the text model for a roast and falls back to the canned
// record on any failure.
func (s *Service) Generate(ctx context.Context, name, habit string, level int, caption string) Result {
	log := logging.From(ctx, s.log)
	prompt := BuildPrompt(name, habit, level, caption)
	log.Info().Str("name", name).Int("level", level).Msg("generated roast prompt")

	raw, err := s.text.Generate(ctx, prompt)
	if err != nil {
		log.Error().Err(err).Msg("error calling text model")
		return withCaption(Fallback(name, habit), caption)
	}

	res, err := ParseReply(raw)
	if err != nil {
		log.Warn().Err(err).Msg("invalid JSON response from text model")
		log.Info().Str("raw", raw).Msg("raw model response")
		return withCaption(Fallback(name, habit), caption)
	}
	return withCaption(res, caption)
}

func withCaption(r Result, caption string) Result {
	r.PhotoCaption = caption
	return r
}

// IsFallback reports whether r is the canned record for name and habit.
func IsFallback(r Result, name, habit string) bool {
	f := Fallback(name, habit)
	return r.Roast == f.Roast && r.Compliment == f.Compliment && r.Tag == f.Tag
}
