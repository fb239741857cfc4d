// Package llm wraps the optional text-generation backends used to phrase
// price explanations. Every failure is reported as one of the sentinel errors
// so callers can fall back without caring which provider is configured.
package llm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
)

var (
	ErrDisabled = errors.New("llm disabled")
	ErrAuth     = errors.New("llm authentication failed")
	ErrNetwork  = errors.New("llm request failed")
)

type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
	Provider() string
	Model() string
}

// Disabled is the default generator; it always fails with ErrDisabled.
type Disabled struct{}

func (Disabled) Generate(context.Context, string) (string, error) { return "", ErrDisabled }
func (Disabled) Provider() string                                 { return ProviderNone }
func (Disabled) Model() string                                    { return "" }

// Enabled reports whether g can produce text at all.
func Enabled(g Generator) bool {
	if g == nil {
		return false
	}
	_, off := g.(Disabled)
	return !off
}

const (
	ProviderNone        = "none"
	ProviderGroq        = "groq"
	ProviderHuggingFace = "huggingface"
	ProviderOpenRouter  = "openrouter"
	ProviderOllama      = "ollama"
)

type Config struct {
	Provider    string
	Model       string
	BaseURL     string
	APIKey      string
	Temperature float64
	MaxTokens   int
	Timeout     time.Duration
	Retries     int
	Logger      *slog.Logger
}

func New(cfg Config) (Generator, error) {
	provider := strings.ToLower(strings.TrimSpace(cfg.Provider))
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = 200
	}
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	client := newHTTPClient(cfg.Timeout, cfg.Retries, cfg.Logger)

	switch provider {
	case "", ProviderNone:
		return Disabled{}, nil
	case ProviderGroq:
		if baseURL == "" {
			baseURL = "https://api.groq.com/openai/v1"
		}
		model := cfg.Model
		if model == "" {
			model = "llama-3.1-8b-instant"
		}
		return newChat(ProviderGroq, baseURL, cfg.APIKey, model, cfg, client), nil
	case ProviderOpenRouter:
		if baseURL == "" {
			baseURL = "https://openrouter.ai/api/v1"
		}
		return newChat(ProviderOpenRouter, baseURL, cfg.APIKey, cfg.Model, cfg, client), nil
	case ProviderHuggingFace:
		if baseURL == "" {
			baseURL = "https://api-inference.huggingface.co"
		}
		return &HuggingFace{
			baseURL:     baseURL,
			apiKey:      cfg.APIKey,
			model:       cfg.Model,
			temperature: cfg.Temperature,
			maxTokens:   cfg.MaxTokens,
			client:      client,
		}, nil
	case ProviderOllama:
		if baseURL == "" {
			baseURL = "http://localhost:11434"
		}
		model := cfg.Model
		if model == "" {
			model = "llama3.2"
		}
		return &Ollama{
			baseURL:     baseURL,
			model:       model,
			temperature: cfg.Temperature,
			maxTokens:   cfg.MaxTokens,
			client:      client,
		}, nil
	default:
		return nil, fmt.Errorf("unknown llm provider: %s", provider)
	}
}
