package base

import (
	"github.com/shopspring/decimal"
)

// 拍品状态
const (
	ProductStatusActive    = 1 // 拍卖中
	ProductStatusCompleted = 2 // 已结束
	ProductStatusCanceled  = 3 // 已取消
)

// Product 拍品 (一场定时拍卖)
// CurrentPrice/WinnerID 是唯一的竞争写入点, 只能在出价事务内更新
type Product struct {
	ID              int64           `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	SellerID        int64           `gorm:"column:seller_id;not null;index" json:"seller_id"`                // 卖家用户 ID
	Name            string          `gorm:"column:name;type:varchar(256);not null" json:"name"`              // 拍品名称
	CurrentPrice    decimal.Decimal `gorm:"column:current_price;type:decimal(30,10);not null" json:"current_price"` // 当前价, 恒等于领先出价行的 amount
	PriceStep       decimal.Decimal `gorm:"column:price_step;type:decimal(30,10);not null" json:"price_step"`       // 最小加价幅度
	BuyNowPrice     decimal.NullDecimal `gorm:"column:buy_now_price;type:decimal(30,10)" json:"buy_now_price"`      // 一口价, 可空
	StartTime       int64           `gorm:"column:start_time;not null" json:"start_time"`                    // 开拍时间 (unix 秒)
	EndTime         int64           `gorm:"column:end_time;not null;index" json:"end_time"`                  // 截止时间 (unix 秒), 软关闭延时会后移
	Status          int             `gorm:"column:status;type:tinyint;not null;default:1" json:"status"`     // 拍品状态
	WinnerID        int64           `gorm:"column:winner_id;not null;default:0" json:"winner_id"`            // 当前领先者, 0 表示暂无
	AllowNewBidders bool            `gorm:"column:allow_new_bidders;not null;default:1" json:"allow_new_bidders"` // 是否允许无评价的新用户出价
	ExtendedCount   int             `gorm:"column:extended_count;not null;default:0" json:"extended_count"`  // 已触发软关闭延时的次数
	CreateTime      int64           `gorm:"column:create_time;autoCreateTime" json:"create_time"`
	UpdateTime      int64           `gorm:"column:update_time;autoUpdateTime" json:"update_time"`
}

func ProductTableName() string {
	return "ea_product"
}

func (Product) TableName() string {
	return ProductTableName()
}
