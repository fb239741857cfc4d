package storage

import (
	"context"
	"strings"
	"time"

	"marketagents/internal/domain"
	"marketagents/internal/pricing"
)

// Record is one logged price suggestion.
type Record struct {
	Time        time.Time `json:"time"`
	Title       string    `json:"title"`
	Brand       string    `json:"brand"`
	AgeMonths   int       `json:"age_months"`
	AskingPrice float64   `json:"asking_price"`
	Min         int       `json:"suggested_price_min"`
	Max         int       `json:"suggested_price_max"`
	Reason      string    `json:"reason"`
	LLMProvider string    `json:"llm_provider,omitempty"`
	LLMModel    string    `json:"llm_model,omitempty"`
}

func NewRecord(p domain.Product, s pricing.Suggestion, at time.Time) Record {
	return Record{
		Time:        at.UTC(),
		Title:       p.Title,
		Brand:       p.Brand,
		AgeMonths:   p.AgeMonths,
		AskingPrice: p.AskingPrice,
		Min:         s.Min,
		Max:         s.Max,
		Reason:      strings.ReplaceAll(s.Reason, "\n", " "),
		LLMProvider: s.LLMProvider,
		LLMModel:    s.LLMModel,
	}
}

type SuggestionRepository interface {
	Save(ctx context.Context, rec Record) error
	// FindRecent returns up to limit records, newest first.
	FindRecent(ctx context.Context, limit int) ([]Record, error)
}
