package dao

import (
	"context"

	"github.com/go-sql-driver/mysql"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ProjectsTask/EasyAuctionBackend/src/model/base"
)

// ErrTxConflict 出价事务与并发提交冲突
// 调用方应以全新快照整体重试, 重试耗尽后再向外报瞬态错误
var ErrTxConflict = errors.New("placement transaction conflict")

// MySQL 错误码: 死锁 / 锁等待超时, 二者都按冲突重试处理
const (
	mysqlErrDeadlock    = 1213
	mysqlErrLockTimeout = 1205
)

// PlacementStore 出价放置的工作单元入口
// RunPlacement 中的回调要么整体提交要么整体回滚;
// 并发冲突以 ErrTxConflict 返回, 其余错误原样透出
type PlacementStore interface {
	RunPlacement(ctx context.Context, fn func(tx PlacementTx) error) error
}

// PlacementTx 出价事务内可用的读写操作
// ProductForUpdate 必须先于其它读取调用: 它对拍品行加锁,
// 保证同一拍品上的并发放置串行化 (对应行级锁要求)
type PlacementTx interface {
	// ProductForUpdate 锁定并返回权威拍品快照, 不存在时返回 (nil, nil)
	ProductForUpdate(productID int64) (*base.Product, error)
	// UserByID 事务内读取用户 (资格复验用), 不存在时返回 (nil, nil)
	UserByID(userID int64) (*base.User, error)
	// HasActiveBid 请求者是否已持有未驳回出价
	HasActiveBid(productID, userID int64) (bool, error)
	// ProxyBids 拍品上所有未驳回且带代理上限的出价
	// 不保证顺序, 竞争者的选择与排序由引擎的比较器完成
	ProxyBids(productID int64) ([]base.Bid, error)
	// InsertBid 追加一条出价记录, 回填自增 ID
	InsertBid(bid *base.Bid) error
	// UpdateProductPriceWinner 更新拍品当前价与领先者
	UpdateProductPriceWinner(productID int64, price decimal.Decimal, winnerID int64) error
}

// RunPlacement 以数据库事务实现 PlacementStore
func (d *Dao) RunPlacement(ctx context.Context, fn func(tx PlacementTx) error) error {
	err := d.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormPlacementTx{tx: tx})
	})
	if err != nil {
		if isConflictErr(err) {
			return ErrTxConflict
		}
		return err
	}
	return nil
}

// isConflictErr 判断是否因并发竞争失败 (死锁/锁等待超时)
func isConflictErr(err error) bool {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number == mysqlErrDeadlock || mysqlErr.Number == mysqlErrLockTimeout
	}
	return false
}

// gormPlacementTx 事务作用域内的 PlacementTx 实现
type gormPlacementTx struct {
	tx *gorm.DB
}

func (g *gormPlacementTx) ProductForUpdate(productID int64) (*base.Product, error) {
	var product base.Product
	// SELECT ... FOR UPDATE: 拍品行是唯一的竞争写入点, 锁到提交为止
	db := g.tx.Table(base.ProductTableName()).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", productID).
		Find(&product)
	if db.Error != nil {
		return nil, errors.Wrap(db.Error, "failed on lock product row")
	}

	if product.ID == 0 {
		return nil, nil
	}
	return &product, nil
}

func (g *gormPlacementTx) UserByID(userID int64) (*base.User, error) {
	var user base.User
	db := g.tx.Table(base.UserTableName()).
		Where("id = ?", userID).
		Find(&user)
	if db.Error != nil {
		return nil, errors.Wrap(db.Error, "failed on get user in tx")
	}

	if user.ID == 0 {
		return nil, nil
	}
	return &user, nil
}

func (g *gormPlacementTx) HasActiveBid(productID, userID int64) (bool, error) {
	var count int64
	db := g.tx.Table(base.BidTableName()).
		Where("product_id = ? and user_id = ? and rejected = ?", productID, userID, false).
		Count(&count)
	if db.Error != nil {
		return false, errors.Wrap(db.Error, "failed on count user bids in tx")
	}

	return count > 0, nil
}

func (g *gormPlacementTx) ProxyBids(productID int64) ([]base.Bid, error) {
	var bids []base.Bid
	db := g.tx.Table(base.BidTableName()).
		Where("product_id = ? and rejected = ? and max_amount is not null", productID, false).
		Find(&bids)
	if db.Error != nil {
		return nil, errors.Wrap(db.Error, "failed on get proxy bids in tx")
	}

	return bids, nil
}

func (g *gormPlacementTx) InsertBid(bid *base.Bid) error {
	if err := g.tx.Table(base.BidTableName()).Create(bid).Error; err != nil {
		return errors.Wrap(err, "failed on insert bid")
	}
	return nil
}

func (g *gormPlacementTx) UpdateProductPriceWinner(productID int64, price decimal.Decimal, winnerID int64) error {
	db := g.tx.Table(base.ProductTableName()).
		Where("id = ?", productID).
		Updates(map[string]interface{}{
			"current_price": price,
			"winner_id":     winnerID,
		})
	if db.Error != nil {
		return errors.Wrap(db.Error, "failed on update product price and winner")
	}
	return nil
}
