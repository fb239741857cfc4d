package pricing

import "marketagents/internal/domain"

// monthly depreciation per category
var depreciationRates = map[string]float64{
	domain.CategoryMobile:      0.012,
	domain.CategoryLaptop:      0.009,
	domain.CategoryFurniture:   0.005,
	domain.CategoryElectronics: 0.008,
	domain.CategoryFashion:     0.015,
	domain.CategoryCamera:      0.009,
}

const defaultDepreciationRate = 0.01

var conditionFactors = map[string]float64{
	domain.ConditionLikeNew: 1.05,
	domain.ConditionGood:    0.95,
	domain.ConditionFair:    0.80,
}

// lower-cased brand names that earn a resale premium
var premiumBrands = map[string]struct{}{
	"apple":  {},
	"sony":   {},
	"nike":   {},
	"adidas": {},
}

const (
	brandPremium = 1.05
	bandLow      = 0.88
	bandHigh     = 1.12
)

// Baselines are neutral reference prices used instead of the seller's own
// asking price when judging whether that price is fair.
var baselines = map[string]float64{
	domain.CategoryMobile:      30000,
	domain.CategoryLaptop:      50000,
	domain.CategoryFurniture:   20000,
	domain.CategoryElectronics: 25000,
	domain.CategoryCamera:      30000,
	domain.CategoryFashion:     5000,
}

const defaultBaseline = 20000

func DepreciationRate(category string) float64 {
	if r, ok := depreciationRates[category]; ok {
		return r
	}
	return defaultDepreciationRate
}

func ConditionFactor(condition string) float64 {
	if f, ok := conditionFactors[condition]; ok {
		return f
	}
	return 1.0
}

func Baseline(category string) float64 {
	if b, ok := baselines[category]; ok {
		return b
	}
	return defaultBaseline
}
