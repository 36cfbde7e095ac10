package service

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/ProjectsTask/EasyAuctionBackend/pkg/errcode"
	"github.com/ProjectsTask/EasyAuctionBackend/src/model/base"
	"github.com/ProjectsTask/EasyAuctionBackend/src/service/svc"
	types "github.com/ProjectsTask/EasyAuctionBackend/src/types/v1"
)

// currentBidStatus 请求者当前状态的纯计算
// winning: 请求者是拍品领先者
// outbid:  请求者声明的代理上限 >= 当前价却没有领先
//          (代理本应顶上去却没有, 单独暴露这个状态而不是笼统报 losing)
// losing:  其余情况
func currentBidStatus(product *base.Product, bid *base.Bid, userID int64) *types.CurrentBidStatus {
	status := &types.CurrentBidStatus{
		BidID:           bid.ID,
		Amount:          bid.Amount,
		IsWinning:       product.WinnerID == userID,
		CurrentPrice:    product.CurrentPrice,
		RemainingBudget: decimal.Zero,
	}

	if bid.HasMaxAmount() {
		maxAmount := bid.MaxAmount.Decimal
		status.MaxAmount = &maxAmount
		if budget := maxAmount.Sub(product.CurrentPrice); budget.GreaterThan(decimal.Zero) {
			status.RemainingBudget = budget
		}
	}

	switch {
	case status.IsWinning:
		status.Status = types.BidStatusWinning
	case bid.HasMaxAmount() && bid.MaxAmount.Decimal.GreaterThanOrEqual(product.CurrentPrice):
		status.Status = types.BidStatusOutbid
	default:
		status.Status = types.BidStatusLosing
	}

	return status
}

// GetMyCurrentBid 查询请求者在某拍品上的出价状态
// 请求者没有有效出价时返回 (nil, nil)
func GetMyCurrentBid(ctx context.Context, svcCtx *svc.ServerCtx, productID, userID int64) (*types.CurrentBidStatus, error) {
	product, err := svcCtx.Dao.GetProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, errcode.ErrNotFound
	}

	bid, err := svcCtx.Dao.GetUserBestBid(ctx, productID, userID)
	if err != nil {
		return nil, err
	}
	if bid == nil {
		return nil, nil
	}

	return currentBidStatus(product, bid, userID), nil
}
