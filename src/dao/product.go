package dao

import (
	"context"

	"github.com/pkg/errors"

	"github.com/ProjectsTask/EasyAuctionBackend/src/model/base"
)

// GetProduct 按 ID 查询拍品
// 拍品不存在时返回 (nil, nil)
func (d *Dao) GetProduct(ctx context.Context, productID int64) (*base.Product, error) {
	var product base.Product
	db := d.DB.WithContext(ctx).Table(base.ProductTableName()).
		Where("id = ?", productID).
		Find(&product)
	if db.Error != nil {
		return nil, errors.Wrap(db.Error, "failed on get product info")
	}

	if product.ID == 0 {
		return nil, nil
	}
	return &product, nil
}

// ExtendProduct 软关闭延时: 后移截止时间并累加延时次数
// 带上 extended_count 的乐观条件, 避免事件重放造成重复延时
func (d *Dao) ExtendProduct(ctx context.Context, productID int64, newEndTime int64, fromExtendedCount int) (bool, error) {
	db := d.DB.WithContext(ctx).Table(base.ProductTableName()).
		Where("id = ? and status = ? and extended_count = ?",
			productID, base.ProductStatusActive, fromExtendedCount).
		Updates(map[string]interface{}{
			"end_time":       newEndTime,
			"extended_count": fromExtendedCount + 1,
		})
	if db.Error != nil {
		return false, errors.Wrap(db.Error, "failed on extend product end time")
	}

	return db.RowsAffected > 0, nil
}

// CompleteEndedProducts 把已过截止时间的在拍拍品置为已结束
// 领先者与成交价由出价事务维护, 这里只做状态迁移
func (d *Dao) CompleteEndedProducts(ctx context.Context, now int64) (int64, error) {
	db := d.DB.WithContext(ctx).Table(base.ProductTableName()).
		Where("status = ? and end_time < ?", base.ProductStatusActive, now).
		Update("status", base.ProductStatusCompleted)
	if db.Error != nil {
		return 0, errors.Wrap(db.Error, "failed on complete ended products")
	}

	return db.RowsAffected, nil
}
