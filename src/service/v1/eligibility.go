package service

import (
	"context"
	"fmt"
	"time"

	"github.com/ProjectsTask/EasyAuctionBackend/pkg/errcode"
	"github.com/ProjectsTask/EasyAuctionBackend/src/model/base"
	"github.com/ProjectsTask/EasyAuctionBackend/src/service/svc"
	types "github.com/ProjectsTask/EasyAuctionBackend/src/types/v1"
)

// eligibilityInput 资格判定的全部输入
// 纯计算, product 由调用方保证非空; now 为 unix 秒
type eligibilityInput struct {
	Product   *base.Product
	User      *base.User
	Now       int64
	IsBidding bool
}

// evaluateEligibility 按固定顺序执行资格检查, 首个命中的规则决定结果
// 顺序: 卖家本人 -> 拍品状态 -> 已截止 -> 未开拍 -> 评价门槛
// 无论是否通过, suggested_amount 都会给出;
// 拍品带一口价且建议出价触达时, 建议出价按一口价封顶并在 message 里提示
// (只影响校验展示, 不做自动成交)
func evaluateEligibility(in eligibilityInput) *types.ValidationResult {
	product := in.Product
	summary := ratingSummary(in.User)

	suggested := product.CurrentPrice.Add(product.PriceStep)
	buyNowReached := product.BuyNowPrice.Valid &&
		suggested.GreaterThanOrEqual(product.BuyNowPrice.Decimal)
	if buyNowReached {
		suggested = product.BuyNowPrice.Decimal
	}

	result := &types.ValidationResult{
		SuggestedAmount: suggested,
		CurrentPrice:    product.CurrentPrice,
		StepPrice:       product.PriceStep,
		RatingScore:     summary.Score,
		RatingTotal:     summary.Total,
		IsSeller:        product.SellerID == in.User.ID,
		IsBidding:       in.IsBidding,
	}

	switch {
	case result.IsSeller:
		result.Message = "cannot bid on your own product"
	case product.Status != base.ProductStatusActive:
		result.Message = "this auction is no longer active"
	case in.Now > product.EndTime:
		result.Message = "this auction has ended"
	case in.Now < product.StartTime:
		result.Message = "this auction has not started yet"
	case !canUserBid(in.User, product.AllowNewBidders):
		if summary.Total == 0 {
			result.Message = "you have no ratings yet and the seller does not accept bids from new bidders"
		} else {
			result.Message = fmt.Sprintf("your rating score %.1f%% is below the required %.0f%%",
				summary.Score, ratingScoreThreshold)
		}
	default:
		result.CanBid = true
		if buyNowReached {
			result.Message = fmt.Sprintf("the suggested amount has reached the buy-now price of %s",
				product.BuyNowPrice.Decimal.String())
		}
	}

	return result
}

// ValidateBid 出价资格校验 (只读)
// 注意: 出价放置事务内部还会对最新快照重跑一遍同样的检查,
// 事务外的这次校验只用于快速拒绝与前端提示
func ValidateBid(ctx context.Context, svcCtx *svc.ServerCtx, productID, userID int64) (*types.ValidationResult, error) {
	product, err := svcCtx.Dao.GetProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, errcode.ErrNotFound
	}

	user, err := svcCtx.Dao.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errcode.ErrNotFound
	}

	isBidding, err := svcCtx.Dao.HasActiveBid(ctx, productID, userID)
	if err != nil {
		return nil, err
	}

	return evaluateEligibility(eligibilityInput{
		Product:   product,
		User:      user,
		Now:       time.Now().Unix(),
		IsBidding: isBidding,
	}), nil
}
