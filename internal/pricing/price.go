package pricing

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"marketagents/internal/domain"
)

// Estimate is the rule-based fair price band for a product.
type Estimate struct {
	Min      int
	Max      int
	Adjusted float64
	Rate     float64
	Reason   string
}

// EstimatePrice depreciates the asking price per month of age, applies the
// condition factor and brand premium, and returns an 88%-112% band around
// the result.
func EstimatePrice(p domain.Product) Estimate {
	rate := DepreciationRate(p.Category)
	brand := strings.ToLower(p.Brand)

	adjusted := p.AskingPrice * math.Pow(1-rate, float64(p.AgeMonths))
	adjusted *= ConditionFactor(p.Condition)
	if _, ok := premiumBrands[brand]; ok {
		adjusted *= brandPremium
	}

	return Estimate{
		Min:      truncInt(adjusted * bandLow),
		Max:      truncInt(adjusted * bandHigh),
		Adjusted: adjusted,
		Rate:     rate,
		Reason: fmt.Sprintf(
			"Suggested based on asking price %s, category %s (rate %.2f%%/month), age %d months, condition %s, brand %s.",
			formatPrice(p.AskingPrice), p.Category, rate*100, p.AgeMonths, p.Condition,
			cases.Title(language.Und).String(brand),
		),
	}
}

// truncInt truncates toward zero and saturates at the int range.
func truncInt(v float64) int {
	switch {
	case math.IsNaN(v):
		return 0
	case v >= math.MaxInt:
		return math.MaxInt
	case v <= math.MinInt:
		return math.MinInt
	}
	return int(v)
}

func formatPrice(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
