package extension

import (
	"context"
	"time"

	"github.com/zeromicro/go-zero/core/threading"
	"go.uber.org/zap"

	"github.com/ProjectsTask/EasyAuctionBackend/pkg/logger/xzap"
	"github.com/ProjectsTask/EasyAuctionBackend/pkg/stores/xkv"
	"github.com/ProjectsTask/EasyAuctionBackend/src/config"
	"github.com/ProjectsTask/EasyAuctionBackend/src/dao"
	"github.com/ProjectsTask/EasyAuctionBackend/src/model/base"
	"github.com/ProjectsTask/EasyAuctionBackend/src/service/mq"
)

const (
	defaultEventPollInterval = 2 * time.Second
	defaultSweepInterval     = 30 * time.Second
)

// Service 软关闭延时与到期结算 worker
// 消费出价事件队列触发延时, 并周期性把到期拍品置为已结束
// 所有失败只记日志, 不影响出价链路
type Service struct {
	ctx     context.Context
	cfg     *config.Config
	dao     *dao.Dao
	kvStore *xkv.Store
	project string
}

// New 创建 worker 实例
func New(ctx context.Context, cfg *config.Config, dao *dao.Dao, kvStore *xkv.Store) *Service {
	return &Service{
		ctx:     ctx,
		cfg:     cfg,
		dao:     dao,
		kvStore: kvStore,
		project: cfg.ProjectCfg.Name,
	}
}

// Start 启动后台循环 (异步运行)
func (s *Service) Start() {
	threading.GoSafe(s.consumeBidEventsLoop)
	threading.GoSafe(s.sweepEndedProductsLoop)
}

// consumeBidEventsLoop 轮询出价事件队列, 逐个处理软关闭延时
func (s *Service) consumeBidEventsLoop() {
	interval := defaultEventPollInterval
	if s.cfg.Auction.EventPollIntervalSec > 0 {
		interval = time.Duration(s.cfg.Auction.EventPollIntervalSec) * time.Second
	}

	timer := time.NewTicker(interval)
	defer timer.Stop()

	for {
		select {
		case <-s.ctx.Done():
			return
		case <-timer.C:
			// 每个周期把队列抽干
			for {
				event, err := mq.PopBidPlacedEvent(s.kvStore, s.project)
				if err != nil {
					xzap.WithContext(s.ctx).Error("failed on pop bid placed event", zap.Error(err))
					break
				}
				if event == nil {
					break
				}
				s.handleBidPlaced(event)
			}
		}
	}
}

// handleBidPlaced 处理单个出价事件
// 防重入锁保证事件重放时同一出价只延时一次
func (s *Service) handleBidPlaced(event *mq.BidPlacedEvent) {
	reentrancyKey := mq.GetExtensionReentrancyKey(s.project, event.BidID)
	handled, err := s.kvStore.Get(reentrancyKey)
	if err != nil {
		xzap.WithContext(s.ctx).Error("failed on check extension reentrancy", zap.Error(err))
		return
	}
	if handled != "" {
		return
	}

	product, err := s.dao.GetProduct(s.ctx, event.ProductID)
	if err != nil {
		xzap.WithContext(s.ctx).Error("failed on get product for extension",
			zap.Int64("product_id", event.ProductID), zap.Error(err))
		return
	}
	if product == nil || product.Status != base.ProductStatusActive {
		return
	}

	shouldExtend, newEndTime := CheckAutoExtension(product, event.BidTime, &s.cfg.Auction)
	if shouldExtend {
		extended, err := s.dao.ExtendProduct(s.ctx, product.ID, newEndTime, product.ExtendedCount)
		if err != nil {
			xzap.WithContext(s.ctx).Error("failed on extend product",
				zap.Int64("product_id", product.ID), zap.Error(err))
			return
		}
		if extended {
			xzap.WithContext(s.ctx).Info("auction soft-close extended",
				zap.Int64("product_id", product.ID),
				zap.Int64("new_end_time", newEndTime),
				zap.Int("extended_count", product.ExtendedCount+1))
		}
	}

	_ = s.kvStore.Setex(reentrancyKey, "true", mq.PreventReentrancyPeriod)
}

// CheckAutoExtension 软关闭延时判定 (纯函数)
// 出价落在截止前 extension_window 秒内且未超出最大延时次数时,
// 截止时间后移 extend_by 秒
func CheckAutoExtension(product *base.Product, bidTime int64, cfg *config.AuctionCfg) (bool, int64) {
	if cfg.ExtensionWindowSecs <= 0 || cfg.ExtendBySecs <= 0 {
		return false, 0
	}
	if cfg.MaxExtensions > 0 && product.ExtendedCount >= cfg.MaxExtensions {
		return false, 0
	}
	if bidTime > product.EndTime || bidTime < product.EndTime-cfg.ExtensionWindowSecs {
		return false, 0
	}
	return true, product.EndTime + cfg.ExtendBySecs
}

// sweepEndedProductsLoop 周期性把过了截止时间的拍品置为已结束
// 领先者与成交价在出价事务里已经是一致的, 这里只迁移状态
func (s *Service) sweepEndedProductsLoop() {
	interval := defaultSweepInterval
	if s.cfg.Auction.SweepIntervalSec > 0 {
		interval = time.Duration(s.cfg.Auction.SweepIntervalSec) * time.Second
	}

	timer := time.NewTicker(interval)
	defer timer.Stop()

	for {
		select {
		case <-s.ctx.Done():
			return
		case <-timer.C:
			completed, err := s.dao.CompleteEndedProducts(s.ctx, time.Now().Unix())
			if err != nil {
				xzap.WithContext(s.ctx).Error("failed on complete ended products", zap.Error(err))
				continue
			}
			if completed > 0 {
				xzap.WithContext(s.ctx).Info("ended auctions completed", zap.Int64("count", completed))
			}
		}
	}
}
