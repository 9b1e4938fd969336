package safety

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"roast-bot/api/internal/llm"
	"roast-bot/api/internal/logging"
)

// SafeCaption replaces any caption that cannot be used as is.
const SafeCaption = "Casual focused vibe"

const visionPrompt = `Describe this image in a neutral, safe way focusing only on:
- General vibe/atmosphere
- Objects or setting (if appropriate)
- Activity or pose (if appropriate)

DO NOT mention or infer:
- Race, ethnicity, or skin color
- Body type, weight, or physical appearance
- Gender or gender expression
- Age or age-related features
- Any physical flaws or imperfections
- Clothing choices or fashion
- Personal characteristics

Keep it brief (1-2 lines) and focus on the overall mood/vibe.
If you can't safely describe it, just say "Casual focused vibe".`

type Sanitizer struct {
	vision llm.VisionModel
	policy *Policy
	log    zerolog.Logger
}

func NewSanitizer(vision llm.VisionModel, policy *Policy, log zerolog.Logger) *Sanitizer {
	if policy == nil {
		policy = DefaultPolicy()
	}
	return &Sanitizer{vision: vision, policy: policy, log: log}
}

// Caption describes the photo through the vision model and screens the
// answer. It never fails: every problem yields SafeCaption.
func (s *Sanitizer) Caption(ctx context.Context, image []byte) string {
	raw, err := s.vision.Describe(ctx, visionPrompt, image)
	if err != nil {
		logging.From(ctx, s.log).Error().Err(err).Msg("error generating photo caption")
		return SafeCaption
	}
	return s.Screen(ctx, raw)
}

// Screen applies the policy to an already generated caption.
func (s *Sanitizer) Screen(ctx context.Context, caption string) string {
	caption = strings.TrimSpace(caption)
	if caption == "" {
		return SafeCaption
	}
	if d := s.policy.Evaluate(caption); !d.Allowed {
		logging.From(ctx, s.log).Warn().Str("caption", caption).Str("rule", d.Rule).Str("term", d.Term).
			Msg("potentially sensitive caption detected")
		return SafeCaption
	}
	return caption
}
