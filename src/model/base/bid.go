package base

import (
	"time"

	"github.com/shopspring/decimal"
)

// Bid 出价记录, 只追加不修改
// MaxAmount 非空即为代理出价 (proxy bid), 引擎会代替买家自动加价到该上限
// Rejected 是唯一允许翻转的列, 留给运营后台, 引擎本身不修改它
type Bid struct {
	ID        int64               `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	ProductID int64               `gorm:"column:product_id;not null;index:idx_product_rejected" json:"product_id"`
	UserID    int64               `gorm:"column:user_id;not null;index" json:"user_id"`
	Amount    decimal.Decimal     `gorm:"column:amount;type:decimal(30,10);not null" json:"amount"`       // 本次出价的落库金额
	MaxAmount decimal.NullDecimal `gorm:"column:max_amount;type:decimal(30,10)" json:"max_amount"`        // 代理出价上限, 可空
	IsProxy   bool                `gorm:"column:is_proxy;not null;default:0" json:"is_proxy"`             // 是否代理出价 (含引擎代下的反击出价)
	Rejected  bool                `gorm:"column:rejected;not null;default:0;index:idx_product_rejected" json:"rejected"`
	CreatedAt time.Time           `gorm:"column:created_at;type:datetime(6);autoCreateTime:false" json:"created_at"` // 微秒精度, 用于同上限先到先得的排序
}

func BidTableName() string {
	return "ea_bid"
}

func (Bid) TableName() string {
	return BidTableName()
}

// HasMaxAmount 是否携带代理上限
func (b *Bid) HasMaxAmount() bool {
	return b.MaxAmount.Valid
}
