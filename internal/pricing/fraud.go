package pricing

import (
	"errors"
	"fmt"

	"marketagents/internal/domain"
)

type FraudStatus string

const (
	FraudSafe       FraudStatus = "Safe"
	FraudSuspicious FraudStatus = "Suspicious"
)

const (
	underpricedRatio = 0.5
	overpricedRatio  = 2.0
)

type FraudVerdict struct {
	Status       FraudStatus `json:"status"`
	Reason       string      `json:"reason"`
	AskingPrice  float64     `json:"asking_price"`
	SuggestedMin int         `json:"suggested_min"`
	SuggestedMax int         `json:"suggested_max"`
}

func (v FraudVerdict) Validate() error {
	if v.Status != FraudSafe && v.Status != FraudSuspicious {
		return errors.New("missing status")
	}
	return nil
}

// neutralEstimate prices the product from its category baseline so that the
// seller's own asking price does not feed into the fair range.
func neutralEstimate(p domain.Product) Estimate {
	return EstimatePrice(p.WithAskingPrice(Baseline(p.Category)))
}

// DetectFraud flags listings priced far below or far above the fair range.
func DetectFraud(p domain.Product) FraudVerdict {
	est := neutralEstimate(p)
	asking := p.AskingPrice

	v := FraudVerdict{
		Status:       FraudSafe,
		Reason:       "Asking price is within the expected range.",
		AskingPrice:  asking,
		SuggestedMin: est.Min,
		SuggestedMax: est.Max,
	}

	switch {
	case asking < underpricedRatio*float64(est.Min):
		v.Status = FraudSuspicious
		v.Reason = fmt.Sprintf("Asking price ₹%s is more than 50%% below the fair minimum ₹%d. Possible scam listing.",
			formatPrice(asking), est.Min)
	case asking > overpricedRatio*float64(est.Max):
		v.Status = FraudSuspicious
		v.Reason = fmt.Sprintf("Asking price ₹%s is more than 200%% above the fair maximum ₹%d. Overpriced listing.",
			formatPrice(asking), est.Max)
	}
	return v
}
