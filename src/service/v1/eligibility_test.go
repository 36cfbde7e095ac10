package service

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/ProjectsTask/EasyAuctionBackend/src/model/base"
)

func activeProduct(sellerID int64) *base.Product {
	now := time.Now().Unix()
	return &base.Product{
		ID:              1,
		SellerID:        sellerID,
		CurrentPrice:    d("100"),
		PriceStep:       d("10"),
		StartTime:       now - 3600,
		EndTime:         now + 3600,
		Status:          base.ProductStatusActive,
		AllowNewBidders: true,
	}
}

func ratedUser(id int64) *base.User {
	return &base.User{ID: id, Nickname: "Alice Smith", PositiveRating: 9, NegativeRating: 1}
}

func TestEvaluateEligibility_Ordering(t *testing.T) {
	now := time.Now().Unix()

	tests := []struct {
		name        string
		mutate      func(p *base.Product, u *base.User)
		wantCanBid  bool
		wantMessage string
	}{
		{
			name:       "happy path",
			mutate:     func(p *base.Product, u *base.User) {},
			wantCanBid: true,
		},
		{
			name:        "own product rejected first",
			mutate:      func(p *base.Product, u *base.User) { p.SellerID = u.ID; p.Status = base.ProductStatusCanceled },
			wantCanBid:  false,
			wantMessage: "cannot bid on your own product",
		},
		{
			name:        "inactive product",
			mutate:      func(p *base.Product, u *base.User) { p.Status = base.ProductStatusCompleted },
			wantCanBid:  false,
			wantMessage: "this auction is no longer active",
		},
		{
			name:        "auction ended",
			mutate:      func(p *base.Product, u *base.User) { p.EndTime = now - 60 },
			wantCanBid:  false,
			wantMessage: "this auction has ended",
		},
		{
			name:        "auction not started",
			mutate:      func(p *base.Product, u *base.User) { p.StartTime = now + 600 },
			wantCanBid:  false,
			wantMessage: "this auction has not started yet",
		},
		{
			name: "rating below threshold",
			mutate: func(p *base.Product, u *base.User) {
				u.PositiveRating = 3
				u.NegativeRating = 2
			},
			wantCanBid:  false,
			wantMessage: "your rating score 60.0% is below the required 80%",
		},
		{
			name: "new bidder disallowed",
			mutate: func(p *base.Product, u *base.User) {
				u.PositiveRating = 0
				u.NegativeRating = 0
				p.AllowNewBidders = false
			},
			wantCanBid:  false,
			wantMessage: "you have no ratings yet and the seller does not accept bids from new bidders",
		},
		{
			name: "new bidder allowed",
			mutate: func(p *base.Product, u *base.User) {
				u.PositiveRating = 0
				u.NegativeRating = 0
				p.AllowNewBidders = true
			},
			wantCanBid: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			product := activeProduct(100)
			user := ratedUser(9)
			tt.mutate(product, user)

			result := evaluateEligibility(eligibilityInput{
				Product: product,
				User:    user,
				Now:     now,
			})

			assert.Equal(t, tt.wantCanBid, result.CanBid)
			assert.Equal(t, tt.wantMessage, result.Message)
		})
	}
}

func TestEvaluateEligibility_SuggestedAmountAlwaysComputed(t *testing.T) {
	// 拍卖已截止时 can_bid=false, 但 suggested_amount 照常给出
	product := activeProduct(100)
	product.EndTime = time.Now().Unix() - 60
	user := ratedUser(9)

	result := evaluateEligibility(eligibilityInput{
		Product: product,
		User:    user,
		Now:     time.Now().Unix(),
	})

	assert.False(t, result.CanBid)
	assert.True(t, result.SuggestedAmount.Equal(d("110")))
	assert.True(t, result.CurrentPrice.Equal(d("100")))
	assert.True(t, result.StepPrice.Equal(d("10")))
}

func TestEvaluateEligibility_BuyNowCeiling(t *testing.T) {
	// 建议出价触达一口价时按一口价封顶, 并在 message 里提示
	product := activeProduct(100)
	product.BuyNowPrice = decimal.NullDecimal{Decimal: d("105"), Valid: true}
	user := ratedUser(9)

	result := evaluateEligibility(eligibilityInput{
		Product: product,
		User:    user,
		Now:     time.Now().Unix(),
	})

	assert.True(t, result.CanBid)
	assert.True(t, result.SuggestedAmount.Equal(d("105")))
	assert.Equal(t, "the suggested amount has reached the buy-now price of 105", result.Message)
}

func TestEvaluateEligibility_BuyNowAboveSuggested(t *testing.T) {
	// 一口价还没被触达: 建议出价照常为当前价+幅度, 无提示
	product := activeProduct(100)
	product.BuyNowPrice = decimal.NullDecimal{Decimal: d("500"), Valid: true}
	user := ratedUser(9)

	result := evaluateEligibility(eligibilityInput{
		Product: product,
		User:    user,
		Now:     time.Now().Unix(),
	})

	assert.True(t, result.CanBid)
	assert.True(t, result.SuggestedAmount.Equal(d("110")))
	assert.Empty(t, result.Message)
}

func TestEvaluateEligibility_CarriesBiddingAndSellerFlags(t *testing.T) {
	product := activeProduct(100)
	user := ratedUser(9)

	result := evaluateEligibility(eligibilityInput{
		Product:   product,
		User:      user,
		Now:       time.Now().Unix(),
		IsBidding: true,
	})

	assert.True(t, result.IsBidding)
	assert.False(t, result.IsSeller)
	assert.InDelta(t, 90.0, result.RatingScore, 0.0001)
	assert.Equal(t, 10, result.RatingTotal)
}
