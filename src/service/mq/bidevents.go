package mq

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/zeromicro/go-zero/core/stores/redis"

	"github.com/ProjectsTask/EasyAuctionBackend/pkg/stores/xkv"
)

// 出价事件队列 (Redis Set)
// 出价事务提交后由引擎投递, 软关闭延时 worker 异步消费
const QueueBidPlacedKey = "queue:%s:bid:placed"

func GetBidPlacedQueueKey(project string) string {
	return fmt.Sprintf(QueueBidPlacedKey, strings.ToLower(project))
}

// 延时处理防重入锁, 同一出价事件短时间内只处理一次
const CacheExtensionPreventReentrancyKeyPrefix = "cache:%s:extension:prevent:reentrancy:%d"
const PreventReentrancyPeriod = 10 // second

func GetExtensionReentrancyKey(project string, bidID int64) string {
	return fmt.Sprintf(CacheExtensionPreventReentrancyKeyPrefix, strings.ToLower(project), bidID)
}

// BidPlacedEvent 出价落库事件
type BidPlacedEvent struct {
	ProductID int64           `json:"product_id"`
	BidID     int64           `json:"bid_id"`
	UserID    int64           `json:"user_id"`
	Price     decimal.Decimal `json:"price"`    // 出价后的拍品当前价
	BidTime   int64           `json:"bid_time"` // 出价时间 (unix 秒)
}

// AddBidPlacedEvent 把出价事件推入队列
// 功能:
// 1. 将事件序列化为 JSON
// 2. 推送到 Redis Set 队列中 (SAdd)
// 投递失败由调用方记日志, 绝不回抛进出价响应
func AddBidPlacedEvent(kvStore *xkv.Store, project string, event *BidPlacedEvent) error {
	rawInfo, err := json.Marshal(event)
	if err != nil {
		return errors.Wrap(err, "failed on marshal bid placed event")
	}

	_, err = kvStore.Sadd(GetBidPlacedQueueKey(project), string(rawInfo))
	if err != nil {
		return errors.Wrap(err, "failed on push bid placed event to queue")
	}

	return nil
}

// PopBidPlacedEvent 从队列弹出一个事件
// 队列为空时返回 (nil, nil); 其它存储错误原样回抛, 由消费方记日志
func PopBidPlacedEvent(kvStore *xkv.Store, project string) (*BidPlacedEvent, error) {
	raw, err := kvStore.Spop(GetBidPlacedQueueKey(project))
	if err != nil {
		// go-zero 对空集合返回 redis.Nil, 只有这种情况按队列为空处理
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "failed on pop bid placed event from queue")
	}
	if raw == "" {
		return nil, nil
	}

	var event BidPlacedEvent
	if err := json.Unmarshal([]byte(raw), &event); err != nil {
		return nil, errors.Wrap(err, "failed on unmarshal bid placed event")
	}

	return &event, nil
}
