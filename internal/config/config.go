package config

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"marketagents/internal/llm"
)

type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Log      LogConfig      `koanf:"log"`
	LLM      LLMConfig      `koanf:"llm"`
	Cache    CacheConfig    `koanf:"cache"`
	Storage  StorageConfig  `koanf:"storage"`
	Notifier NotifierConfig `koanf:"notifier"`
}

type ServerConfig struct {
	Addr   string `koanf:"addr"`
	APIKey string `koanf:"api_key"`
}

type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

type LLMConfig struct {
	Enabled     bool          `koanf:"enabled"`
	Provider    string        `koanf:"provider"`
	Timeout     time.Duration `koanf:"timeout"`
	MaxTokens   int           `koanf:"max_tokens"`
	Temperature float64       `koanf:"temperature"`
	Retries     int           `koanf:"retries"`

	Groq        ProviderConfig `koanf:"groq"`
	HuggingFace ProviderConfig `koanf:"huggingface"`
	OpenRouter  ProviderConfig `koanf:"openrouter"`
	Ollama      ProviderConfig `koanf:"ollama"`
}

type ProviderConfig struct {
	APIKey  string `koanf:"api_key"`
	Model   string `koanf:"model"`
	BaseURL string `koanf:"base_url"`
}

// Selected returns the active provider name and its settings. A disabled
// LLM always reports provider "none".
func (c LLMConfig) Selected() (string, ProviderConfig) {
	name := strings.ToLower(strings.TrimSpace(c.Provider))
	if !c.Enabled || name == "" {
		return "none", ProviderConfig{}
	}
	switch name {
	case "groq":
		return name, c.Groq
	case "huggingface":
		return name, c.HuggingFace
	case "openrouter":
		return name, c.OpenRouter
	case "ollama":
		return name, c.Ollama
	}
	return name, ProviderConfig{}
}

// Client converts the selected provider into generator settings.
func (c LLMConfig) Client(logger *slog.Logger) llm.Config {
	name, p := c.Selected()
	return llm.Config{
		Provider:    name,
		Model:       p.Model,
		BaseURL:     p.BaseURL,
		APIKey:      p.APIKey,
		Temperature: c.Temperature,
		MaxTokens:   c.MaxTokens,
		Timeout:     c.Timeout,
		Retries:     c.Retries,
		Logger:      logger,
	}
}

type CacheConfig struct {
	Driver   string        `koanf:"driver"`
	RedisURL string        `koanf:"redis_url"`
	TTL      time.Duration `koanf:"ttl"`
	Size     int           `koanf:"size"`
}

type StorageConfig struct {
	Driver string `koanf:"driver"`
	Path   string `koanf:"path"`
	DSN    string `koanf:"dsn"`
}

type NotifierConfig struct {
	TelegramToken   string   `koanf:"telegram_token"`
	TelegramChatIDs []string `koanf:"telegram_chat_ids"`
}

func Default() Config {
	return Config{
		Server: ServerConfig{
			Addr:   ":8000",
			APIKey: "devkey123",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		LLM: LLMConfig{
			Provider:    "none",
			Timeout:     30 * time.Second,
			MaxTokens:   200,
			Temperature: 0.7,
			Retries:     2,
			Groq:        ProviderConfig{Model: "llama-3.1-8b-instant"},
			Ollama:      ProviderConfig{BaseURL: "http://localhost:11434", Model: "llama3.2"},
		},
		Cache: CacheConfig{
			Driver: "memory",
			TTL:    24 * time.Hour,
			Size:   1024,
		},
		Storage: StorageConfig{
			Path: "reports/price_suggestions.csv",
		},
	}
}

// environment variable -> config key
var envKeys = map[string]string{
	"PORT":               "server.addr",
	"API_KEY":            "server.api_key",
	"LOG_LEVEL":          "log.level",
	"LOG_FORMAT":         "log.format",
	"USE_LLM":            "llm.enabled",
	"LLM_PROVIDER":       "llm.provider",
	"LLM_TIMEOUT":        "llm.timeout",
	"GROQ_API_KEY":       "llm.groq.api_key",
	"GROQ_MODEL":         "llm.groq.model",
	"HF_API_KEY":         "llm.huggingface.api_key",
	"HF_MODEL":           "llm.huggingface.model",
	"OPENROUTER_API_KEY": "llm.openrouter.api_key",
	"OPENROUTER_MODEL":   "llm.openrouter.model",
	"OLLAMA_BASE_URL":    "llm.ollama.base_url",
	"OLLAMA_MODEL":       "llm.ollama.model",
	"CACHE_DRIVER":       "cache.driver",
	"REDIS_URL":          "cache.redis_url",
	"STORAGE_DRIVER":     "storage.driver",
	"REPORT_PATH":        "storage.path",
	"DATABASE_URL":       "storage.dsn",
	"TELEGRAM_TOKEN":     "notifier.telegram_token",
	"TELEGRAM_CHAT_IDS":  "notifier.telegram_chat_ids",
}

// Load layers the optional YAML file at path and then the environment over
// Default. A missing file is not an error.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	if err := k.Load(env.ProviderWithValue("", ".", fromEnv), nil); err != nil {
		return nil, err
	}

	cfg := Default()
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func fromEnv(name, value string) (string, interface{}) {
	key, ok := envKeys[name]
	if !ok {
		return "", nil
	}
	value = strings.TrimSpace(value)
	if value == "" {
		return "", nil
	}

	switch key {
	case "server.addr":
		if !strings.Contains(value, ":") {
			value = ":" + value
		}
	case "llm.enabled":
		return key, truthy(value)
	case "notifier.telegram_chat_ids":
		var ids []string
		for _, id := range strings.Split(value, ",") {
			if id = strings.TrimSpace(id); id != "" {
				ids = append(ids, id)
			}
		}
		return key, ids
	}
	return key, value
}

func truthy(s string) bool {
	switch strings.ToLower(s) {
	case "1", "true", "yes":
		return true
	}
	return false
}

// Path returns the config file location, overridable with CONFIG_PATH.
func Path() string {
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		return p
	}
	return "config.yaml"
}
