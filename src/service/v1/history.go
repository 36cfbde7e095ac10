package service

import (
	"context"
	"strings"

	"github.com/ProjectsTask/EasyAuctionBackend/pkg/errcode"
	"github.com/ProjectsTask/EasyAuctionBackend/src/model/base"
	"github.com/ProjectsTask/EasyAuctionBackend/src/service/svc"
	types "github.com/ProjectsTask/EasyAuctionBackend/src/types/v1"
)

// maskBidderName 出价人展示名脱敏
// 保留展示名的最后一段, 前缀统一为 "****"
func maskBidderName(nickname string) string {
	fields := strings.Fields(nickname)
	if len(fields) == 0 {
		return "****"
	}
	return "****" + fields[len(fields)-1]
}

// presentBidHistory 账本 -> 展示项的纯转换
// 脱敏规则:
// 1. 请求者既不是卖家也不是出价人本人时, 展示名脱敏
// 2. max_amount 只对出价人本人可见 (对卖家也不可见)
// requesterID 为 0 表示匿名访问
func presentBidHistory(product *base.Product, bids []base.Bid, users map[int64]base.User, requesterID int64) []types.BidHistoryItem {
	items := make([]types.BidHistoryItem, 0, len(bids))
	isSeller := requesterID != 0 && requesterID == product.SellerID

	for _, bid := range bids {
		isMine := requesterID != 0 && requesterID == bid.UserID

		name := users[bid.UserID].Nickname
		if !isSeller && !isMine {
			name = maskBidderName(name)
		}

		bidType := types.BidTypeManual
		if bid.IsProxy {
			bidType = types.BidTypeAuto
		}

		item := types.BidHistoryItem{
			BidID:      bid.ID,
			BidderName: name,
			Amount:     bid.Amount,
			BidType:    bidType,
			IsMine:     isMine,
			CreatedAt:  bid.CreatedAt.Unix(),
		}
		if isMine && bid.HasMaxAmount() {
			maxAmount := bid.MaxAmount.Decimal
			item.MaxAmount = &maxAmount
		}
		items = append(items, item)
	}

	return items
}

// GetBidHistory 查询拍品出价记录 (脱敏后)
// requesterID 为 0 表示匿名访问, 全部脱敏
func GetBidHistory(ctx context.Context, svcCtx *svc.ServerCtx, productID, requesterID int64) ([]types.BidHistoryItem, error) {
	product, err := svcCtx.Dao.GetProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, errcode.ErrNotFound
	}

	bids, err := svcCtx.Dao.GetBidHistory(ctx, productID)
	if err != nil {
		return nil, err
	}

	userIDs := make([]int64, 0, len(bids))
	seen := make(map[int64]struct{}, len(bids))
	for _, bid := range bids {
		if _, ok := seen[bid.UserID]; ok {
			continue
		}
		seen[bid.UserID] = struct{}{}
		userIDs = append(userIDs, bid.UserID)
	}

	users, err := svcCtx.Dao.GetUsers(ctx, userIDs)
	if err != nil {
		return nil, err
	}

	return presentBidHistory(product, bids, users, requesterID), nil
}
