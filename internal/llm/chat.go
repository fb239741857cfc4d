package llm

import (
	"context"
	"fmt"
	"net/http"
	"strings"
)

// Chat talks to OpenAI-compatible chat/completions endpoints (Groq,
// OpenRouter).
type Chat struct {
	provider    string
	baseURL     string
	apiKey      string
	model       string
	temperature float64
	maxTokens   int
	client      *http.Client
}

func newChat(provider, baseURL, apiKey, model string, cfg Config, client *http.Client) *Chat {
	return &Chat{
		provider:    provider,
		baseURL:     baseURL,
		apiKey:      apiKey,
		model:       model,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
		client:      client,
	}
}

func (c *Chat) Provider() string { return c.provider }
func (c *Chat) Model() string    { return c.model }

func (c *Chat) Generate(ctx context.Context, prompt string) (string, error) {
	if strings.TrimSpace(c.apiKey) == "" {
		return "", fmt.Errorf("%w: %s api key not configured", ErrAuth, c.provider)
	}

	reqBody := map[string]any{
		"model": c.model,
		"messages": []map[string]string{
			{"role": "user", "content": prompt},
		},
		"max_tokens": c.maxTokens,
	}
	if c.temperature > 0 {
		reqBody["temperature"] = c.temperature
	}

	var apiResp struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}

	if err := postJSON(ctx, c.client, c.provider, c.baseURL+"/chat/completions", bearer(c.apiKey), reqBody, &apiResp); err != nil {
		return "", err
	}

	if len(apiResp.Choices) == 0 {
		return "", fmt.Errorf("%w: no response from %s", ErrNetwork, c.provider)
	}

	return cleanOutput(apiResp.Choices[0].Message.Content), nil
}

func cleanOutput(content string) string {
	content = strings.TrimSpace(content)
	if len(content) > 1 && strings.HasPrefix(content, `"`) && strings.HasSuffix(content, `"`) {
		content = content[1 : len(content)-1]
	}
	return strings.TrimSpace(content)
}
