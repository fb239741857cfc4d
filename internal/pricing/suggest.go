package pricing

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"marketagents/internal/cache"
	"marketagents/internal/domain"
	"marketagents/internal/llm"
)

type Suggestion struct {
	Min         int    `json:"suggested_price_min"`
	Max         int    `json:"suggested_price_max"`
	Reason      string `json:"reason"`
	LLMProvider string `json:"llm_provider,omitempty"`
	LLMModel    string `json:"llm_model,omitempty"`
}

func (s Suggestion) Validate() error {
	if s.Min < 0 || s.Max < s.Min {
		return fmt.Errorf("invalid price band %d - %d", s.Min, s.Max)
	}
	if s.Reason == "" {
		return errors.New("missing reason")
	}
	return nil
}

// Agent suggests prices and optionally asks a language model to phrase the
// explanation. The model never changes the numbers.
type Agent struct {
	gen     llm.Generator
	cache   cache.Store
	timeout time.Duration
	logger  *slog.Logger

	requested bool
}

type Option func(*Agent)

func WithCache(c cache.Store) Option {
	return func(a *Agent) { a.cache = c }
}

func WithTimeout(d time.Duration) Option {
	return func(a *Agent) { a.timeout = d }
}

func WithLogger(l *slog.Logger) Option {
	return func(a *Agent) { a.logger = l }
}

// WithLLMRequested marks LLM explanations as asked for by configuration.
// Suggestions then name the provider even when none is available.
func WithLLMRequested(on bool) Option {
	return func(a *Agent) { a.requested = on }
}

func NewAgent(gen llm.Generator, opts ...Option) *Agent {
	if gen == nil {
		gen = llm.Disabled{}
	}
	a := &Agent{
		gen:     gen,
		timeout: 30 * time.Second,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func (a *Agent) Suggest(ctx context.Context, p domain.Product) Suggestion {
	est := EstimatePrice(p)
	s := Suggestion{
		Min:    est.Min,
		Max:    est.Max,
		Reason: est.Reason,
	}

	if !llm.Enabled(a.gen) {
		if a.requested {
			s.LLMProvider = llm.ProviderNone
		}
		return s
	}
	s.LLMProvider = a.gen.Provider()
	s.LLMModel = a.gen.Model()

	if text, err := a.explain(ctx, explainPrompt(p, est)); err != nil {
		a.logger.Warn("llm explanation failed, using rule-based reason",
			"provider", s.LLMProvider, "model", s.LLMModel, "err", err)
	} else {
		s.Reason = text
	}
	return s
}

func (a *Agent) explain(ctx context.Context, prompt string) (string, error) {
	key := cache.Key(a.gen.Provider(), a.gen.Model(), prompt)
	if a.cache != nil {
		if text, err := a.cache.Get(ctx, key); err != nil {
			a.logger.Warn("explanation cache read failed", "err", err)
		} else if text != "" {
			return text, nil
		}
	}

	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	text, err := a.gen.Generate(ctx, prompt)
	if err != nil {
		return "", err
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return "", fmt.Errorf("%w: empty explanation", llm.ErrNetwork)
	}

	if a.cache != nil {
		if err := a.cache.Set(ctx, key, text); err != nil {
			a.logger.Warn("explanation cache write failed", "err", err)
		}
	}
	return text, nil
}

func explainPrompt(p domain.Product, est Estimate) string {
	return fmt.Sprintf(`
Product details: %s
Suggested price range: ₹%d - ₹%d.
Write 2 short friendly sentences explaining why this range is fair (mention age, condition, brand).
`, describe(p), est.Min, est.Max)
}

func describe(p domain.Product) string {
	fields := []string{
		"title: " + p.Title,
		"category: " + p.Category,
		"brand: " + p.Brand,
		"condition: " + p.Condition,
		fmt.Sprintf("age_months: %d", p.AgeMonths),
		"asking_price: " + formatPrice(p.AskingPrice),
	}
	if p.Location != "" {
		fields = append(fields, "location: "+p.Location)
	}
	return strings.Join(fields, ", ")
}
