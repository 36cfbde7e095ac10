package service

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/ProjectsTask/EasyAuctionBackend/pkg/errcode"
	"github.com/ProjectsTask/EasyAuctionBackend/pkg/logger/xzap"
	"github.com/ProjectsTask/EasyAuctionBackend/src/dao"
	"github.com/ProjectsTask/EasyAuctionBackend/src/model/base"
	"github.com/ProjectsTask/EasyAuctionBackend/src/service/mq"
	"github.com/ProjectsTask/EasyAuctionBackend/src/service/svc"
	types "github.com/ProjectsTask/EasyAuctionBackend/src/types/v1"
)

// 事务冲突的默认重试次数, 可被配置覆盖
const defaultPlacementMaxRetries = 3

// PlaceBid 出价放置入口
// 流程: 事务外快速校验 -> 事务内决策并落库 (冲突整体重试) -> 投递出价事件
// 事件投递失败只记日志, 不影响出价结果
func PlaceBid(ctx context.Context, svcCtx *svc.ServerCtx, productID, userID int64, req types.PlaceBidReq) (*types.BidResult, error) {
	// 事务外的快速拒绝: 资格 + 参数
	// 这里的校验结果不是权威的, 事务内会对最新快照重跑
	validation, err := ValidateBid(ctx, svcCtx, productID, userID)
	if err != nil {
		return nil, err
	}
	if err := checkPlacementRequest(validation, req); err != nil {
		return nil, err
	}

	maxRetries := svcCtx.C.Auction.PlacementMaxRetries
	result, err := placeBidWithStore(ctx, svcCtx.Dao, maxRetries, productID, userID, req, time.Now)
	if err != nil {
		return nil, err
	}

	// 出价事件异步驱动软关闭延时, 投递失败不回抛 (fire-and-forget)
	event := &mq.BidPlacedEvent{
		ProductID: productID,
		BidID:     result.BidID,
		UserID:    userID,
		Price:     result.CurrentPrice,
		BidTime:   time.Now().Unix(),
	}
	if err := mq.AddBidPlacedEvent(svcCtx.KvStore, svcCtx.C.ProjectCfg.Name, event); err != nil {
		xzap.WithContext(ctx).Error("failed on publish bid placed event",
			zap.Int64("product_id", productID), zap.Int64("bid_id", result.BidID), zap.Error(err))
	}

	return result, nil
}

// checkPlacementRequest 事务外的快速拒绝 (纯校验)
// 资格不通过报 403, 参数不满足报 400;
// 最低出价门槛只在这里检查一次, 事务内不复查 (相同请求重复提交各自成行)
func checkPlacementRequest(validation *types.ValidationResult, req types.PlaceBidReq) error {
	if !validation.CanBid {
		return errcode.NewForbiddenErr(validation.Message)
	}
	if !req.Confirmed {
		return errcode.NewInvalidRequestErr("bid must be confirmed")
	}
	if req.Amount.LessThan(validation.SuggestedAmount) {
		return errcode.NewInvalidRequestErr(
			fmt.Sprintf("bid amount is below the minimum of %s", validation.SuggestedAmount.String()))
	}
	if req.MaxAmount != nil && req.MaxAmount.LessThan(req.Amount) {
		return errcode.NewInvalidRequestErr("maximum amount must not be below the bid amount")
	}
	return nil
}

// placeBidWithStore 在工作单元上执行出价放置
// 事务冲突时以全新快照整体重试, 重试耗尽报瞬态错误 (区别于业务错误)
func placeBidWithStore(ctx context.Context, store dao.PlacementStore, maxRetries int,
	productID, userID int64, req types.PlaceBidReq, now func() time.Time) (*types.BidResult, error) {
	if maxRetries <= 0 {
		maxRetries = defaultPlacementMaxRetries
	}

	var result *types.BidResult
	for attempt := 0; ; attempt++ {
		err := store.RunPlacement(ctx, func(tx dao.PlacementTx) error {
			var txErr error
			result, txErr = placeBidInTx(tx, productID, userID, req, now().UTC())
			return txErr
		})
		if err == nil {
			return result, nil
		}
		if !errors.Is(err, dao.ErrTxConflict) {
			return nil, err
		}
		if attempt >= maxRetries {
			return nil, errcode.ErrTooManyConflicts
		}
		xzap.WithContext(ctx).Warn("placement conflict, retrying with fresh snapshot",
			zap.Int64("product_id", productID), zap.Int("attempt", attempt+1))
	}
}

// placeBidInTx 出价事务体, 与拍品行锁一起构成原子单元
// 1. 锁定拍品行, 取权威快照
// 2. 对最新快照复验出价资格 (check 与 commit 之间时间会流逝)
// 3. 选出竞争者上限并决策
//
// 最低出价门槛只在事务外检查: 五个分支各自写入的
// (当前价, 领先者) 都来自本事务新插入的行, 快照陈旧不会破坏一致性,
// 相同请求重复提交也各自成行, 不做去重

// 4. 落库请求者出价行 (以及可能的反击出价行)
// 5. 同一事务内更新拍品当前价与领先者
func placeBidInTx(tx dao.PlacementTx, productID, userID int64, req types.PlaceBidReq, now time.Time) (*types.BidResult, error) {
	product, err := tx.ProductForUpdate(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, errcode.ErrNotFound
	}

	user, err := tx.UserByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errcode.ErrNotFound
	}

	isBidding, err := tx.HasActiveBid(productID, userID)
	if err != nil {
		return nil, err
	}

	validation := evaluateEligibility(eligibilityInput{
		Product:   product,
		User:      user,
		Now:       now.Unix(),
		IsBidding: isBidding,
	})
	if !validation.CanBid {
		return nil, errcode.NewForbiddenErr(validation.Message)
	}

	proxyBids, err := tx.ProxyBids(productID)
	if err != nil {
		return nil, err
	}
	competitor := pickCompetitor(proxyBids, userID)

	res, err := resolveBid(productSnapshot{
		ID:           product.ID,
		CurrentPrice: product.CurrentPrice,
		PriceStep:    product.PriceStep,
		WinnerID:     product.WinnerID,
	}, competitor, placementParams{
		UserID:    userID,
		Amount:    req.Amount,
		MaxAmount: req.MaxAmount,
	})
	if err != nil {
		return nil, err
	}

	bid := &base.Bid{
		ProductID: productID,
		UserID:    userID,
		Amount:    res.FinalAmount,
		IsProxy:   req.MaxAmount != nil,
		CreatedAt: now,
	}
	if req.MaxAmount != nil {
		bid.MaxAmount.Decimal = *req.MaxAmount
		bid.MaxAmount.Valid = true
	}
	if err := tx.InsertBid(bid); err != nil {
		return nil, err
	}

	if res.Counter != nil {
		counter := &base.Bid{
			ProductID: productID,
			UserID:    res.Counter.UserID,
			Amount:    res.Counter.Amount,
			IsProxy:   true,
			CreatedAt: now,
		}
		counter.MaxAmount.Decimal = res.Counter.MaxAmount
		counter.MaxAmount.Valid = true
		if err := tx.InsertBid(counter); err != nil {
			return nil, err
		}
	}

	if err := tx.UpdateProductPriceWinner(productID, res.WinningPrice, res.WinnerID); err != nil {
		return nil, err
	}

	return &types.BidResult{
		BidID:        bid.ID,
		FinalAmount:  res.FinalAmount,
		IsWinning:    res.WinnerID == userID,
		CurrentPrice: res.WinningPrice,
		Message:      res.Message,
	}, nil
}
