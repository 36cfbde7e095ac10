package mq

import (
	"testing"

	pkgerrors "github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zeromicro/go-zero/core/stores/kv"
	"github.com/zeromicro/go-zero/core/stores/redis"

	"github.com/ProjectsTask/EasyAuctionBackend/pkg/stores/xkv"
)

// stubKv 只覆写 Spop 的 kv.Store 桩
type stubKv struct {
	kv.Store
	popVal string
	popErr error
}

func (s *stubKv) Spop(_ string) (string, error) {
	return s.popVal, s.popErr
}

func stubStore(val string, err error) *xkv.Store {
	return &xkv.Store{Store: &stubKv{popVal: val, popErr: err}}
}

func TestPopBidPlacedEvent_EmptyQueue(t *testing.T) {
	// 空集合的 redis.Nil 按队列为空处理, 不算错误
	event, err := PopBidPlacedEvent(stubStore("", redis.Nil), "EasyAuction")
	assert.NoError(t, err)
	assert.Nil(t, event)
}

func TestPopBidPlacedEvent_StoreFailure(t *testing.T) {
	// 存储故障必须回抛, 不能伪装成空队列
	storeErr := pkgerrors.New("connection refused")

	event, err := PopBidPlacedEvent(stubStore("", storeErr), "EasyAuction")
	require.Error(t, err)
	assert.Nil(t, event)
	assert.True(t, pkgerrors.Is(err, storeErr))
}

func TestPopBidPlacedEvent_DecodesEvent(t *testing.T) {
	raw := `{"product_id":1,"bid_id":7,"user_id":9,"price":"160","bid_time":1700000000}`

	event, err := PopBidPlacedEvent(stubStore(raw, nil), "EasyAuction")
	require.NoError(t, err)
	require.NotNil(t, event)
	assert.Equal(t, int64(1), event.ProductID)
	assert.Equal(t, int64(7), event.BidID)
	assert.Equal(t, int64(9), event.UserID)
	assert.True(t, event.Price.Equal(decimal.RequireFromString("160")))
	assert.Equal(t, int64(1700000000), event.BidTime)
}

func TestPopBidPlacedEvent_CorruptPayload(t *testing.T) {
	event, err := PopBidPlacedEvent(stubStore("not-json", nil), "EasyAuction")
	require.Error(t, err)
	assert.Nil(t, event)
}
