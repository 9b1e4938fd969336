package llm

import (
	"context"
	"errors"
	"strings"
)

// VisionModel turns an instruction plus a photo into free text.
type VisionModel interface {
	Describe(ctx context.Context, prompt string, image []byte) (string, error)
}

// TextModel turns an instruction into free text (expected to be JSON-shaped
// by callers that ask for it).
type TextModel interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

type Engine interface {
	Name() string
	GetModel() string
	VisionModel
	TextModel
}

var ErrEmptyResponse = errors.New("llm: empty response")

type Engines struct {
	Gemini Engine
	OpenAI Engine
}

func (e *Engines) GetEngine(name string) (Engine, error) {
	var eng Engine
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "gemini", "":
		eng = e.Gemini
	case "gpt", "openai":
		eng = e.OpenAI
	default:
		return nil, errors.New("unknown llm provider; use 'gemini' or 'openai'")
	}
	if eng == nil {
		return nil, errors.New("llm provider " + name + " is not configured")
	}
	return eng, nil
}
