package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
)

const maxResponseBytes = 2 << 20

// newHTTPClient retries connection errors, 5xx and 429 responses. The
// timeout bounds the whole call, retries included.
func newHTTPClient(timeout time.Duration, retries int, logger *slog.Logger) *http.Client {
	rc := retryablehttp.NewClient()
	rc.RetryMax = max(retries, 0)
	rc.RetryWaitMin = 500 * time.Millisecond
	rc.RetryWaitMax = 5 * time.Second
	rc.Logger = nil
	if logger != nil {
		rc.Logger = logger
	}
	client := rc.StandardClient()
	client.Timeout = timeout
	return client
}

// postJSON sends payload and decodes a 2xx answer into out. Credential
// rejections map to ErrAuth, everything else to ErrNetwork.
func postJSON(ctx context.Context, client *http.Client, provider, url string, headers map[string]string, payload, out any) (err error) {
	defer func() { observe(provider, err) }()

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrNetwork, provider, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrNetwork, provider, err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return fmt.Errorf("%w: %s: status %d", ErrAuth, provider, resp.StatusCode)
	case resp.StatusCode >= 300:
		return fmt.Errorf("%w: %s error (%d): %s", ErrNetwork, provider, resp.StatusCode, strings.TrimSpace(string(respBody)))
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("%w: %s: decode: %v", ErrNetwork, provider, err)
	}
	return nil
}

func bearer(key string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + key}
}
