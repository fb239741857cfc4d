package notifier

import (
	"context"

	"marketagents/internal/domain"
	"marketagents/internal/pricing"
)

// Alert describes a listing the fraud check flagged.
type Alert struct {
	Product domain.Product
	Verdict pricing.FraudVerdict
}

type Notifier interface {
	Notify(ctx context.Context, a Alert) error
}

// Noop drops every alert.
type Noop struct{}

func (Noop) Notify(context.Context, Alert) error { return nil }
