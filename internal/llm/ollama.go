package llm

import (
	"context"
	"fmt"
	"net/http"
	"strings"
)

type Ollama struct {
	baseURL     string
	model       string
	temperature float64
	maxTokens   int
	client      *http.Client
}

type ollamaResponse struct {
	Message struct {
		Content string `json:"content"`
	} `json:"message"`
	Error string `json:"error"`
}

func (o *Ollama) Provider() string { return ProviderOllama }
func (o *Ollama) Model() string    { return o.model }

func (o *Ollama) Generate(ctx context.Context, prompt string) (string, error) {
	payload := map[string]any{
		"model": o.model,
		"messages": []map[string]string{
			{"role": "user", "content": prompt},
		},
		"stream": false,
	}

	options := map[string]any{}
	if o.temperature > 0 {
		options["temperature"] = o.temperature
	}
	if o.maxTokens > 0 {
		options["num_predict"] = o.maxTokens
	}
	if len(options) > 0 {
		payload["options"] = options
	}

	var parsed ollamaResponse
	if err := postJSON(ctx, o.client, ProviderOllama, o.baseURL+"/api/chat", nil, payload, &parsed); err != nil {
		return "", err
	}
	if strings.TrimSpace(parsed.Error) != "" {
		return "", fmt.Errorf("%w: ollama error: %s", ErrNetwork, parsed.Error)
	}
	return cleanOutput(parsed.Message.Content), nil
}
