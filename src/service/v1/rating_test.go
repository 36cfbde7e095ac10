package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ProjectsTask/EasyAuctionBackend/src/model/base"
)

func TestRatingSummary(t *testing.T) {
	tests := []struct {
		name      string
		positive  int
		negative  int
		wantScore float64
		wantTotal int
	}{
		{name: "no ratings", positive: 0, negative: 0, wantScore: 0, wantTotal: 0},
		{name: "all positive", positive: 10, negative: 0, wantScore: 100, wantTotal: 10},
		{name: "all negative", positive: 0, negative: 5, wantScore: 0, wantTotal: 5},
		{name: "mixed", positive: 8, negative: 2, wantScore: 80, wantTotal: 10},
		{name: "below threshold", positive: 7, negative: 3, wantScore: 70, wantTotal: 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			summary := ratingSummary(&base.User{
				PositiveRating: tt.positive,
				NegativeRating: tt.negative,
			})
			assert.InDelta(t, tt.wantScore, summary.Score, 0.0001)
			assert.Equal(t, tt.wantTotal, summary.Total)
			assert.Equal(t, tt.positive, summary.Positive)
			assert.Equal(t, tt.negative, summary.Negative)
		})
	}
}

func TestCanUserBid(t *testing.T) {
	tests := []struct {
		name            string
		positive        int
		negative        int
		allowNewBidders bool
		want            bool
	}{
		// 新用户由拍品的 allow_new_bidders 决定
		{name: "new bidder allowed", positive: 0, negative: 0, allowNewBidders: true, want: true},
		{name: "new bidder disallowed", positive: 0, negative: 0, allowNewBidders: false, want: false},
		// 有评价的用户只看好评率门槛
		{name: "at threshold", positive: 8, negative: 2, allowNewBidders: false, want: true},
		{name: "above threshold", positive: 9, negative: 1, allowNewBidders: false, want: true},
		{name: "below threshold", positive: 7, negative: 3, allowNewBidders: true, want: false},
		{name: "single negative only", positive: 0, negative: 1, allowNewBidders: true, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user := &base.User{PositiveRating: tt.positive, NegativeRating: tt.negative}
			assert.Equal(t, tt.want, canUserBid(user, tt.allowNewBidders))
		})
	}
}
