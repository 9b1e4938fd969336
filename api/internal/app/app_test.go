package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roast-bot/api/internal/config"
	"roast-bot/api/internal/roast"
	"roast-bot/api/internal/safety"
)

type flakyEngine struct {
	visionCalls, textCalls int
}

func (f *flakyEngine) Name() string     { return "fake" }
func (f *flakyEngine) GetModel() string { return "fake-1" }

func (f *flakyEngine) Describe(context.Context, string, []byte) (string, error) {
	f.visionCalls++
	return "", errors.New("vision down")
}

func (f *flakyEngine) Generate(context.Context, string) (string, error) {
	f.textCalls++
	if f.textCalls == 1 {
		return "", errors.New("503")
	}
	return `{"roast":"r","compliment":"c","tag":"t","confidence_pct":"90%","wit_score":9}`, nil
}

func TestNew_GuardedPipeline(t *testing.T) {
	eng := &flakyEngine{}
	cfg := &config.Config{LLMTimeout: time.Second, LLMRetries: 1, LLMMaxConcurrency: 2}
	a := New(eng, cfg, zerolog.Nop(), nil)
	defer a.Close()

	res, err := a.Service.Roast(context.Background(), roast.Request{Name: "A", Habit: "B", Level: 3, Image: []byte{1}})
	require.NoError(t, err)

	assert.Equal(t, "t", res.Tag)
	assert.Equal(t, safety.SafeCaption, res.PhotoCaption)
	assert.Equal(t, 2, eng.visionCalls)
	assert.Equal(t, 2, eng.textCalls)
	assert.Equal(t, "fake", a.Engine.Name())
}

func TestBuild_OpenAI(t *testing.T) {
	cfg := &config.Config{LLMProvider: "openai", OpenAIAPIKey: "sk", OpenAIModel: "gpt-4o-mini",
		OpenAIBaseURL: "http://127.0.0.1:1", LLMTimeout: time.Second, LLMMaxConcurrency: 1}

	a, err := Build(context.Background(), cfg, zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, "gpt", a.Engine.Name())
	assert.Equal(t, "gpt-4o-mini", a.Engine.GetModel())
	assert.NoError(t, a.Close())
}
