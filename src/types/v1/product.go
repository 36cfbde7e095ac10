package types

import (
	"github.com/shopspring/decimal"
)

// ProductDetail 拍品详情
type ProductDetail struct {
	ID              int64            `json:"id"`
	SellerID        int64            `json:"seller_id"`
	Name            string           `json:"name"`
	CurrentPrice    decimal.Decimal  `json:"current_price"`
	PriceStep       decimal.Decimal  `json:"price_step"`
	BuyNowPrice     *decimal.Decimal `json:"buy_now_price,omitempty"`
	StartTime       int64            `json:"start_time"`
	EndTime         int64            `json:"end_time"`
	Status          int              `json:"status"`
	WinnerID        int64            `json:"winner_id,omitempty"`
	AllowNewBidders bool             `json:"allow_new_bidders"`
	ExtendedCount   int              `json:"extended_count"`
}
