package service

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ProjectsTask/EasyAuctionBackend/src/model/base"
	types "github.com/ProjectsTask/EasyAuctionBackend/src/types/v1"
)

func TestCurrentBidStatus(t *testing.T) {
	tests := []struct {
		name        string
		winnerID    int64
		price       string
		bid         base.Bid
		wantStatus  string
		wantBudget  string
		wantMaxSeen bool
	}{
		{
			name:       "winning manual bid",
			winnerID:   9,
			price:      "110",
			bid:        base.Bid{ID: 1, UserID: 9, Amount: d("110")},
			wantStatus: types.BidStatusWinning,
			wantBudget: "0",
		},
		{
			name:     "winning proxy bid with budget left",
			winnerID: 9,
			price:    "110",
			bid: base.Bid{ID: 1, UserID: 9, Amount: d("110"),
				MaxAmount: decimal.NullDecimal{Decimal: d("200"), Valid: true}, IsProxy: true},
			wantStatus:  types.BidStatusWinning,
			wantBudget:  "90",
			wantMaxSeen: true,
		},
		{
			name:     "outbid despite cap covering current price",
			winnerID: 42,
			price:    "150",
			bid: base.Bid{ID: 1, UserID: 9, Amount: d("150"),
				MaxAmount: decimal.NullDecimal{Decimal: d("150"), Valid: true}, IsProxy: true},
			wantStatus:  types.BidStatusOutbid,
			wantBudget:  "0",
			wantMaxSeen: true,
		},
		{
			name:     "losing, cap exhausted below current price",
			winnerID: 42,
			price:    "160",
			bid: base.Bid{ID: 1, UserID: 9, Amount: d("150"),
				MaxAmount: decimal.NullDecimal{Decimal: d("150"), Valid: true}, IsProxy: true},
			wantStatus: types.BidStatusLosing,
			wantBudget: "0", // 预算不出现负数
		},
		{
			name:       "losing manual bid",
			winnerID:   42,
			price:      "160",
			bid:        base.Bid{ID: 1, UserID: 9, Amount: d("150")},
			wantStatus: types.BidStatusLosing,
			wantBudget: "0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			product := activeProduct(100)
			product.WinnerID = tt.winnerID
			product.CurrentPrice = d(tt.price)

			status := currentBidStatus(product, &tt.bid, 9)

			assert.Equal(t, tt.wantStatus, status.Status)
			assert.True(t, status.RemainingBudget.Equal(d(tt.wantBudget)),
				"remaining budget = %s, want %s", status.RemainingBudget, tt.wantBudget)
			assert.True(t, status.CurrentPrice.Equal(d(tt.price)))
			if tt.wantMaxSeen {
				require.NotNil(t, status.MaxAmount)
				assert.True(t, status.MaxAmount.Equal(tt.bid.MaxAmount.Decimal))
			}
		})
	}
}
