package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// HuggingFace calls the hosted inference API for text-generation models.
type HuggingFace struct {
	baseURL     string
	apiKey      string
	model       string
	temperature float64
	maxTokens   int
	client      *http.Client
}

func (h *HuggingFace) Provider() string { return ProviderHuggingFace }
func (h *HuggingFace) Model() string    { return h.model }

func (h *HuggingFace) Generate(ctx context.Context, prompt string) (string, error) {
	if strings.TrimSpace(h.apiKey) == "" {
		return "", fmt.Errorf("%w: huggingface api key not configured", ErrAuth)
	}
	if strings.TrimSpace(h.model) == "" {
		return "", fmt.Errorf("%w: huggingface model not configured", ErrNetwork)
	}

	params := map[string]any{
		"max_new_tokens":   h.maxTokens,
		"return_full_text": false,
	}
	if h.temperature > 0 {
		params["temperature"] = h.temperature
	}
	payload := map[string]any{
		"inputs":     prompt,
		"parameters": params,
	}

	var raw json.RawMessage
	if err := postJSON(ctx, h.client, ProviderHuggingFace, h.baseURL+"/models/"+h.model, bearer(h.apiKey), payload, &raw); err != nil {
		return "", err
	}

	var outputs []struct {
		GeneratedText string `json:"generated_text"`
	}
	if err := json.Unmarshal(raw, &outputs); err != nil {
		var apiErr struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(raw, &apiErr) == nil && apiErr.Error != "" {
			return "", fmt.Errorf("%w: huggingface error: %s", ErrNetwork, apiErr.Error)
		}
		return "", fmt.Errorf("%w: huggingface: unexpected response", ErrNetwork)
	}
	if len(outputs) == 0 {
		return "", fmt.Errorf("%w: huggingface returned no generations", ErrNetwork)
	}
	return cleanOutput(outputs[0].GeneratedText), nil
}
