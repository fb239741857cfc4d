package pricing

import (
	"context"
	"errors"
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"marketagents/internal/cache"
	"marketagents/internal/domain"
	"marketagents/internal/llm"
)

type fakeGenerator struct {
	text  string
	err   error
	calls int
	last  string
}

func (f *fakeGenerator) Generate(_ context.Context, prompt string) (string, error) {
	f.calls++
	f.last = prompt
	return f.text, f.err
}

func (f *fakeGenerator) Provider() string { return "fake" }
func (f *fakeGenerator) Model() string    { return "fake-1" }

var iphone = domain.Product{
	Title:       "iPhone 12",
	Category:    domain.CategoryMobile,
	Brand:       "Apple",
	Condition:   domain.ConditionGood,
	AgeMonths:   24,
	AskingPrice: 35000,
	Location:    "Mumbai",
}

func TestEstimatePrice(t *testing.T) {
	assert := assert.New(t)

	est := EstimatePrice(iphone)
	assert.Equal(22994, est.Min)
	assert.Equal(29266, est.Max)
	assert.Equal(0.012, est.Rate)
	assert.Equal("Suggested based on asking price 35000, category Mobile (rate 1.20%/month), age 24 months, condition Good, brand Apple.", est.Reason)

	est = EstimatePrice(domain.Product{Category: "Toys", Condition: "Mint", AgeMonths: 12, AskingPrice: 1000})
	assert.Equal(780, est.Min)
	assert.Equal(992, est.Max)
	assert.Equal(0.01, est.Rate)
}

func TestEstimatePriceNewCondition(t *testing.T) {
	assert := assert.New(t)

	for _, category := range []string{domain.CategoryLaptop, domain.CategoryFashion, "Other"} {
		price := 40000.0
		est := EstimatePrice(domain.Product{
			Category:    category,
			Brand:       "Dell",
			Condition:   domain.ConditionLikeNew,
			AskingPrice: price,
		})
		adjusted := price * 1.05
		assert.Equal(int(math.Floor(adjusted*0.88)), est.Min, category)
		assert.Equal(int(math.Floor(adjusted*1.12)), est.Max, category)
	}
}

func TestBrandPremiumIsCaseInsensitive(t *testing.T) {
	assert := assert.New(t)

	base := domain.Product{Category: domain.CategoryFashion, AskingPrice: 10000}
	plain := EstimatePrice(base)

	branded := base
	branded.Brand = "NIKE"
	premium := EstimatePrice(branded)

	assert.Greater(premium.Adjusted, plain.Adjusted)
	assert.InDelta(plain.Adjusted*1.05, premium.Adjusted, 1e-9)
	assert.Contains(premium.Reason, "brand Nike.")
}

func TestSuggestWithoutLLM(t *testing.T) {
	assert := assert.New(t)

	s := NewAgent(nil).Suggest(context.Background(), iphone)
	assert.Equal(22994, s.Min)
	assert.Equal(29266, s.Max)
	assert.Empty(s.LLMProvider)
	assert.Empty(s.LLMModel)
	assert.NoError(s.Validate())
}

func TestSuggestReportsMissingProvider(t *testing.T) {
	assert := assert.New(t)

	s := NewAgent(llm.Disabled{}, WithLLMRequested(true)).Suggest(context.Background(), iphone)
	assert.Equal(llm.ProviderNone, s.LLMProvider)
	assert.Empty(s.LLMModel)
	assert.Equal(EstimatePrice(iphone).Reason, s.Reason)

	s = NewAgent(llm.Disabled{}, WithLLMRequested(false)).Suggest(context.Background(), iphone)
	assert.Empty(s.LLMProvider)
}

func TestSuggestWithLLM(t *testing.T) {
	assert := assert.New(t)

	gen := &fakeGenerator{text: "  A two year old iPhone in good shape holds value well.  "}
	s := NewAgent(gen).Suggest(context.Background(), iphone)

	assert.Equal("A two year old iPhone in good shape holds value well.", s.Reason)
	assert.Equal("fake", s.LLMProvider)
	assert.Equal("fake-1", s.LLMModel)
	assert.Equal(22994, s.Min)
	assert.Contains(gen.last, "Suggested price range: ₹22994 - ₹29266.")
	assert.Contains(gen.last, "title: iPhone 12")
}

func TestSuggestFallsBackOnLLMFailure(t *testing.T) {
	assert := assert.New(t)

	for _, err := range []error{
		llm.ErrAuth,
		fmt.Errorf("%w: timeout", llm.ErrNetwork),
		errors.New("boom"),
	} {
		gen := &fakeGenerator{err: err}
		s := NewAgent(gen).Suggest(context.Background(), iphone)
		assert.Equal(EstimatePrice(iphone).Reason, s.Reason)
		assert.Equal("fake", s.LLMProvider)
	}

	gen := &fakeGenerator{text: "   "}
	s := NewAgent(gen).Suggest(context.Background(), iphone)
	assert.Equal(EstimatePrice(iphone).Reason, s.Reason)
}

func TestSuggestUsesCache(t *testing.T) {
	assert := assert.New(t)

	gen := &fakeGenerator{text: "Cached answer."}
	agent := NewAgent(gen, WithCache(cache.NewMemory(16, time.Hour)), WithTimeout(time.Second))

	first := agent.Suggest(context.Background(), iphone)
	second := agent.Suggest(context.Background(), iphone)

	assert.Equal("Cached answer.", first.Reason)
	assert.Equal(first, second)
	assert.Equal(1, gen.calls)
}

func TestDetectFraud(t *testing.T) {
	assert := assert.New(t)

	phone := domain.Product{Category: domain.CategoryMobile, Condition: domain.ConditionGood}

	fixtures := []struct {
		asking float64
		status FraudStatus
		reason string
	}{
		{asking: 30000, status: FraudSafe, reason: "Asking price is within the expected range."},
		{asking: 60000, status: FraudSafe},
		{asking: 12540, status: FraudSafe},
		{asking: 12539, status: FraudSuspicious},
		{asking: 10000, status: FraudSuspicious, reason: "Asking price ₹10000 is more than 50% below the fair minimum ₹25080. Possible scam listing."},
		{asking: 70000, status: FraudSuspicious, reason: "Asking price ₹70000 is more than 200% above the fair maximum ₹31920. Overpriced listing."},
	}

	for _, fix := range fixtures {
		v := DetectFraud(phone.WithAskingPrice(fix.asking))
		assert.Equal(fix.status, v.Status, fix.asking)
		assert.Equal(25080, v.SuggestedMin)
		assert.Equal(31920, v.SuggestedMax)
		assert.Equal(fix.asking, v.AskingPrice)
		if fix.reason != "" {
			assert.Equal(fix.reason, v.Reason)
		}
		assert.NoError(v.Validate())
	}
}

func TestDetectFraudIgnoresAskingPriceForRange(t *testing.T) {
	assert := assert.New(t)

	sofa := domain.Product{Category: domain.CategoryFurniture, Condition: domain.ConditionFair, AgeMonths: 6}
	low := DetectFraud(sofa.WithAskingPrice(4000))
	high := DetectFraud(sofa.WithAskingPrice(15000))

	assert.Equal(13662, low.SuggestedMin)
	assert.Equal(17389, low.SuggestedMax)
	assert.Equal(low.SuggestedMin, high.SuggestedMin)
	assert.Equal(FraudSuspicious, low.Status)
	assert.Equal(FraudSafe, high.Status)
}

func TestNegotiate(t *testing.T) {
	assert := assert.New(t)

	d := Negotiate(domain.Product{Category: domain.CategoryMobile, Condition: domain.ConditionGood, AskingPrice: 35000})
	assert.Equal(Deal{
		SellerInitial:    35000,
		BuyerOffer:       28500,
		FinalAgreedPrice: 31750,
		SuggestedRange:   "25080 - 31920",
	}, d)

	d = Negotiate(iphone)
	assert.Equal(22397, d.BuyerOffer)
	assert.Equal(28698, d.FinalAgreedPrice)
	assert.Equal("19709 - 25085", d.SuggestedRange)
}

func TestHugePricesSaturate(t *testing.T) {
	assert := assert.New(t)

	huge := domain.Product{Category: domain.CategoryMobile, Condition: domain.ConditionGood, AskingPrice: 1e20}

	est := EstimatePrice(huge)
	assert.Equal(math.MaxInt, est.Min)
	assert.Equal(math.MaxInt, est.Max)

	d := Negotiate(huge)
	assert.Equal(28500, d.BuyerOffer)
	assert.Equal(math.MaxInt, d.FinalAgreedPrice)
	assert.NoError(d.Validate())

	assert.Equal(0, truncInt(math.NaN()))
	assert.Equal(math.MinInt, truncInt(-1e30))
	assert.Equal(-3, truncInt(-3.9))
}

func TestDealValidate(t *testing.T) {
	assert := assert.New(t)

	assert.NoError(Negotiate(iphone).Validate())
	assert.Error(Deal{SellerInitial: 100, BuyerOffer: -1, FinalAgreedPrice: 50, SuggestedRange: "1 - 2"}.Validate())
	assert.Error(Deal{SellerInitial: 100, BuyerOffer: 10, FinalAgreedPrice: math.MinInt, SuggestedRange: "1 - 2"}.Validate())
	assert.Error(Deal{SellerInitial: 100, BuyerOffer: 10, FinalAgreedPrice: 50}.Validate())
}

func TestBaseline(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(50000.0, Baseline(domain.CategoryLaptop))
	assert.Equal(5000.0, Baseline(domain.CategoryFashion))
	assert.Equal(20000.0, Baseline("Toys"))
	assert.Equal(20000.0, Baseline(""))
}

func TestSuggestionValidate(t *testing.T) {
	assert := assert.New(t)

	assert.Error(Suggestion{Min: 10, Max: 5, Reason: "x"}.Validate())
	assert.Error(Suggestion{Min: 1, Max: 5}.Validate())
	assert.NoError(Suggestion{Min: 1, Max: 5, Reason: "x"}.Validate())
	assert.Error(FraudVerdict{}.Validate())
}
