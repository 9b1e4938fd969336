package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port string

	LLMProvider       string // "gemini" | "openai"
	LLMTimeout        time.Duration
	LLMRetries        int
	LLMMaxConcurrency int64

	GeminiAPIKey  string
	GeminiModel   string
	OpenAIAPIKey  string
	OpenAIModel   string
	OpenAIBaseURL string

	MaxUploadBytes int64

	LogLevel  string
	LogPretty bool

	TelegramBotToken string
	WebhookURL       string
}

func getEnv(k, def string) string {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		return v
	}
	return def
}

// LoadDotEnv loads variables from path without overriding the process
// environment. A missing file is not an error.
func LoadDotEnv(path string) error {
	err := godotenv.Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

// Load reads the process environment. It fails when the credential for the
// selected provider is absent.
func Load() (*Config, error) {
	c := &Config{
		Port: getEnv("PORT", "8000"),

		LLMProvider:       strings.ToLower(getEnv("LLM_PROVIDER", "gemini")),
		LLMTimeout:        30 * time.Second,
		LLMRetries:        1,
		LLMMaxConcurrency: 8,

		GeminiAPIKey:  getEnv("GOOGLE_API_KEY", getEnv("GEMINI_API_KEY", "")),
		GeminiModel:   getEnv("GEMINI_MODEL", "gemini-1.5-flash"),
		OpenAIAPIKey:  getEnv("OPENAI_API_KEY", ""),
		OpenAIModel:   getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		OpenAIBaseURL: getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),

		MaxUploadBytes: 10 << 20,

		LogLevel: strings.ToLower(getEnv("LOG_LEVEL", "info")),

		TelegramBotToken: getEnv("TELEGRAM_BOT_TOKEN", ""),
		WebhookURL:       getEnv("WEBHOOK_URL", ""),
	}

	if v := getEnv("LLM_TIMEOUT", ""); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return nil, fmt.Errorf("invalid LLM_TIMEOUT %q", v)
		}
		c.LLMTimeout = d
	}
	if v := getEnv("LLM_RETRIES", ""); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("invalid LLM_RETRIES %q", v)
		}
		c.LLMRetries = n
	}
	if v := getEnv("LLM_MAX_CONCURRENCY", ""); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil || n < 1 {
			return nil, fmt.Errorf("invalid LLM_MAX_CONCURRENCY %q", v)
		}
		c.LLMMaxConcurrency = n
	}
	if v := getEnv("MAX_UPLOAD_MB", ""); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil || n < 1 {
			return nil, fmt.Errorf("invalid MAX_UPLOAD_MB %q", v)
		}
		c.MaxUploadBytes = n << 20
	}
	if v := getEnv("LOG_PRETTY", ""); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("invalid LOG_PRETTY %q: %w", v, err)
		}
		c.LogPretty = b
	}

	switch c.LLMProvider {
	case "gemini":
		if c.GeminiAPIKey == "" {
			return nil, errors.New("GOOGLE_API_KEY environment variable is required")
		}
	case "openai", "gpt":
		c.LLMProvider = "openai"
		if c.OpenAIAPIKey == "" {
			return nil, errors.New("OPENAI_API_KEY environment variable is required when LLM_PROVIDER=openai")
		}
	default:
		return nil, fmt.Errorf("unknown LLM_PROVIDER %q; use gemini or openai", c.LLMProvider)
	}

	return c, nil
}

// Model returns the model name of the selected provider.
func (c *Config) Model() string {
	if c.LLMProvider == "openai" {
		return c.OpenAIModel
	}
	return c.GeminiModel
}
