package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"log/slog"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"
)

const telegramAPI = "https://api.telegram.org"

type Telegram struct {
	apiBase  string
	botToken string
	chatIDs  []string
	client   *http.Client
}

var _ Notifier = (*Telegram)(nil)

func NewTelegram(botToken string, chatIDs []string, logger *slog.Logger) *Telegram {
	rc := retryablehttp.NewClient()
	rc.RetryMax = 2
	rc.RetryWaitMin = 500 * time.Millisecond
	rc.RetryWaitMax = 2 * time.Second
	rc.Logger = nil
	if logger != nil {
		rc.Logger = logger
	}

	client := rc.StandardClient()
	client.Timeout = 10 * time.Second

	return &Telegram{
		apiBase:  telegramAPI,
		botToken: botToken,
		chatIDs:  chatIDs,
		client:   client,
	}
}

// Notify sends the alert to every chat and reports all failures together.
func (t *Telegram) Notify(ctx context.Context, a Alert) error {
	text := formatAlert(a)

	var errs []error
	for _, chatID := range t.chatIDs {
		if err := t.send(ctx, chatID, text); err != nil {
			errs = append(errs, fmt.Errorf("chat %s: %w", chatID, err))
		}
	}

	return errors.Join(errs...)
}

func (t *Telegram) send(ctx context.Context, chatID, text string) error {
	url := fmt.Sprintf("%s/bot%s/sendMessage", t.apiBase, t.botToken)

	body, _ := json.Marshal(map[string]any{
		"chat_id":    chatID,
		"text":       text,
		"parse_mode": "HTML",
	})

	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("telegram error: %d", resp.StatusCode)
	}

	return nil
}

func formatAlert(a Alert) string {
	p := a.Product
	title := p.Title
	if title == "" {
		title = "untitled listing"
	}

	return fmt.Sprintf(`🚨 <b>Suspicious listing</b>

<b>Title:</b> %s
<b>Category:</b> %s
<b>Asking:</b> ₹%.0f
<b>Fair range:</b> ₹%d - ₹%d

<b>Reason:</b> %s`,
		html.EscapeString(title),
		html.EscapeString(p.Category),
		a.Verdict.AskingPrice,
		a.Verdict.SuggestedMin,
		a.Verdict.SuggestedMax,
		html.EscapeString(a.Verdict.Reason),
	)
}
