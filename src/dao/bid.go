package dao

import (
	"context"

	"github.com/pkg/errors"

	"github.com/ProjectsTask/EasyAuctionBackend/src/model/base"
)

// HasActiveBid 请求者在该拍品上是否已有未被驳回的出价
func (d *Dao) HasActiveBid(ctx context.Context, productID, userID int64) (bool, error) {
	var count int64
	db := d.DB.WithContext(ctx).Table(base.BidTableName()).
		Where("product_id = ? and user_id = ? and rejected = ?", productID, userID, false).
		Count(&count)
	if db.Error != nil {
		return false, errors.Wrap(db.Error, "failed on count user bids")
	}

	return count > 0, nil
}

// GetBidHistory 查询拍品的全部有效出价, 新的在前
// 展示层的脱敏在 service 层完成, 这里只取原始账本
func (d *Dao) GetBidHistory(ctx context.Context, productID int64) ([]base.Bid, error) {
	var bids []base.Bid
	db := d.DB.WithContext(ctx).Table(base.BidTableName()).
		Where("product_id = ? and rejected = ?", productID, false).
		Order("created_at desc, id desc").
		Find(&bids)
	if db.Error != nil {
		return nil, errors.Wrap(db.Error, "failed on get bid history")
	}

	return bids, nil
}

// GetUserBestBid 查询请求者在该拍品上的最优出价
// 金额最高者优先, 同金额取较新的一条; 没有出价时返回 (nil, nil)
func (d *Dao) GetUserBestBid(ctx context.Context, productID, userID int64) (*base.Bid, error) {
	var bids []base.Bid
	db := d.DB.WithContext(ctx).Table(base.BidTableName()).
		Where("product_id = ? and user_id = ? and rejected = ?", productID, userID, false).
		Order("amount desc, created_at desc, id desc").
		Limit(1).
		Find(&bids)
	if db.Error != nil {
		return nil, errors.Wrap(db.Error, "failed on get user best bid")
	}

	if len(bids) == 0 {
		return nil, nil
	}
	return &bids[0], nil
}
