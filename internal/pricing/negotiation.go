package pricing

import (
	"errors"
	"fmt"

	"marketagents/internal/domain"
)

type Deal struct {
	SellerInitial    float64 `json:"seller_initial"`
	BuyerOffer       int     `json:"buyer_offer"`
	FinalAgreedPrice int     `json:"final_agreed_price"`
	SuggestedRange   string  `json:"suggested_range"`
}

func (d Deal) Validate() error {
	if d.SellerInitial < 0 || d.BuyerOffer < 0 || d.FinalAgreedPrice < 0 {
		return fmt.Errorf("negative price in deal %v / %d / %d", d.SellerInitial, d.BuyerOffer, d.FinalAgreedPrice)
	}
	if d.SuggestedRange == "" {
		return errors.New("missing suggested range")
	}
	return nil
}

// Negotiate simulates one round: the buyer offers the middle of the fair
// range, the seller holds the asking price and both settle halfway.
func Negotiate(p domain.Product) Deal {
	est := neutralEstimate(p)

	buyer := (est.Min + est.Max) / 2
	seller := p.AskingPrice

	return Deal{
		SellerInitial:    seller,
		BuyerOffer:       buyer,
		FinalAgreedPrice: truncInt((float64(buyer) + seller) / 2),
		SuggestedRange:   fmt.Sprintf("%d - %d", est.Min, est.Max),
	}
}
