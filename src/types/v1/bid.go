package types

import (
	"github.com/shopspring/decimal"
)

// PlaceBidReq 出价请求
type PlaceBidReq struct {
	Amount    decimal.Decimal  `json:"amount"`               // 本次出价金额
	MaxAmount *decimal.Decimal `json:"max_amount,omitempty"` // 代理出价上限, 传了即为代理出价
	Confirmed bool             `json:"confirmed"`            // 二次确认标记, 必须为 true
}

// ValidationResult 出价资格校验结果
type ValidationResult struct {
	CanBid          bool            `json:"can_bid"`           // 是否允许出价
	SuggestedAmount decimal.Decimal `json:"suggested_amount"`  // 建议出价 = 当前价 + 加价幅度
	CurrentPrice    decimal.Decimal `json:"current_price"`     // 当前价
	StepPrice       decimal.Decimal `json:"step_price"`        // 加价幅度
	RatingScore     float64         `json:"rating_score"`      // 好评率 0~100
	RatingTotal     int             `json:"rating_total"`      // 评价总数
	Message         string          `json:"message,omitempty"` // 不允许出价的原因, 或一口价封顶提示
	IsSeller        bool            `json:"is_seller"`         // 请求者是否卖家本人
	IsBidding       bool            `json:"is_bidding"`        // 请求者是否已有未被驳回的出价
}

// BidResult 出价结果
type BidResult struct {
	BidID        int64           `json:"bid_id"`        // 本次落库的出价记录 ID
	FinalAmount  decimal.Decimal `json:"final_amount"`  // 请求者出价行的落库金额
	IsWinning    bool            `json:"is_winning"`    // 本次出价后请求者是否领先
	CurrentPrice decimal.Decimal `json:"current_price"` // 出价后的拍品当前价
	Message      string          `json:"message"`       // 结果说明
}

// 出价类型 (对外展示)
const (
	BidTypeAuto   = "auto"   // 代理出价
	BidTypeManual = "manual" // 普通出价
)

// BidHistoryItem 出价记录展示项
// BidderName 对非卖家非本人脱敏; MaxAmount 只有出价人本人可见
type BidHistoryItem struct {
	BidID      int64            `json:"bid_id"`
	BidderName string           `json:"bidder_name"`
	Amount     decimal.Decimal  `json:"amount"`
	MaxAmount  *decimal.Decimal `json:"max_amount,omitempty"`
	BidType    string           `json:"bid_type"` // auto / manual
	IsMine     bool             `json:"is_mine"`
	CreatedAt  int64            `json:"created_at"` // unix 秒
}

// 请求者当前状态
const (
	BidStatusWinning = "winning" // 正在领先
	BidStatusOutbid  = "outbid"  // 代理上限未耗尽却没有领先
	BidStatusLosing  = "losing"  // 已落后
)

// CurrentBidStatus 请求者在某拍品上的出价状态
type CurrentBidStatus struct {
	BidID           int64            `json:"bid_id"`
	Amount          decimal.Decimal  `json:"amount"`
	MaxAmount       *decimal.Decimal `json:"max_amount,omitempty"`
	IsWinning       bool             `json:"is_winning"`
	Status          string           `json:"status"` // winning / outbid / losing
	CurrentPrice    decimal.Decimal  `json:"current_price"`
	RemainingBudget decimal.Decimal  `json:"remaining_budget"` // max(0, max_amount - current_price)
}
