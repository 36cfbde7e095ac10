package service

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ProjectsTask/EasyAuctionBackend/pkg/errcode"
	"github.com/ProjectsTask/EasyAuctionBackend/src/model/base"
)

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

func dp(s string) *decimal.Decimal {
	v := d(s)
	return &v
}

func proxyBid(id, userID int64, maxAmount string, createdAt time.Time) base.Bid {
	return base.Bid{
		ID:        id,
		UserID:    userID,
		MaxAmount: decimal.NullDecimal{Decimal: d(maxAmount), Valid: true},
		IsProxy:   true,
		CreatedAt: createdAt,
	}
}

func testSnapshot() productSnapshot {
	return productSnapshot{
		ID:           1,
		CurrentPrice: d("100"),
		PriceStep:    d("10"),
		WinnerID:     0,
	}
}

func TestResolveBid_AutoBeatsCompetitorCap(t *testing.T) {
	// (a) 上限反超: 成交价压到竞争者上限+步长, 不合成反击
	competitor := proxyBid(7, 42, "150", time.Now())

	res, err := resolveBid(testSnapshot(), &competitor, placementParams{
		UserID: 9, Amount: d("110"), MaxAmount: dp("200"),
	})
	require.NoError(t, err)

	assert.True(t, res.FinalAmount.Equal(d("160")))
	assert.Equal(t, int64(9), res.WinnerID)
	assert.True(t, res.WinningPrice.Equal(d("160")))
	assert.Nil(t, res.Counter)
}

func TestResolveBid_AutoBeatsCompetitorCapClampedByOwnMax(t *testing.T) {
	// (a) 竞争者上限+步长超过自己上限时, 按自己上限成交
	competitor := proxyBid(7, 42, "195", time.Now())

	res, err := resolveBid(testSnapshot(), &competitor, placementParams{
		UserID: 9, Amount: d("110"), MaxAmount: dp("200"),
	})
	require.NoError(t, err)

	assert.True(t, res.FinalAmount.Equal(d("200")))
	assert.True(t, res.WinningPrice.Equal(d("200")))
	assert.True(t, res.FinalAmount.LessThanOrEqual(d("200")), "never exceeds own max")
}

func TestResolveBid_EqualMaxAmountRejected(t *testing.T) {
	// (b) 同上限直接拒绝, 不按先到先得解决
	competitor := proxyBid(7, 42, "200", time.Now())

	res, err := resolveBid(testSnapshot(), &competitor, placementParams{
		UserID: 9, Amount: d("110"), MaxAmount: dp("200"),
	})
	require.Error(t, err)
	assert.Nil(t, res)

	bizErr, ok := errcode.AsErr(err)
	require.True(t, ok)
	assert.Equal(t, errcode.CodeInvalidRequest, bizErr.Code)
}

func TestResolveBid_AutoLosesToCompetitorCap(t *testing.T) {
	// (c) 上限不敌: 自己按上限落库, 竞争者以 min(上限+步长, 竞争者上限) 反击
	competitor := proxyBid(7, 42, "200", time.Now())

	res, err := resolveBid(testSnapshot(), &competitor, placementParams{
		UserID: 9, Amount: d("120"), MaxAmount: dp("150"),
	})
	require.NoError(t, err)

	assert.True(t, res.FinalAmount.Equal(d("150")))
	assert.Equal(t, int64(42), res.WinnerID)
	assert.True(t, res.WinningPrice.Equal(d("160")))
	require.NotNil(t, res.Counter)
	assert.Equal(t, int64(42), res.Counter.UserID)
	assert.True(t, res.Counter.Amount.Equal(d("160")))
	assert.True(t, res.Counter.MaxAmount.Equal(d("200")))
	// 反击出价的不变量
	assert.True(t, res.Counter.Amount.LessThanOrEqual(res.Counter.MaxAmount))
	assert.True(t, res.Counter.Amount.LessThanOrEqual(d("150").Add(d("10"))))
}

func TestResolveBid_AutoLosesCounterClampedByCompetitorCap(t *testing.T) {
	// (c) 竞争者上限不足一个步长时, 反击只到上限为止
	competitor := proxyBid(7, 42, "155", time.Now())

	res, err := resolveBid(testSnapshot(), &competitor, placementParams{
		UserID: 9, Amount: d("120"), MaxAmount: dp("150"),
	})
	require.NoError(t, err)

	require.NotNil(t, res.Counter)
	assert.True(t, res.Counter.Amount.Equal(d("155")))
	assert.True(t, res.WinningPrice.Equal(d("155")))
}

func TestResolveBid_ManualMeetsCompetitorCap(t *testing.T) {
	// (d) 普通出价撞上代理上限: 按面值落库, 竞争者反击
	competitor := proxyBid(7, 42, "200", time.Now())

	res, err := resolveBid(testSnapshot(), &competitor, placementParams{
		UserID: 9, Amount: d("120"),
	})
	require.NoError(t, err)

	assert.True(t, res.FinalAmount.Equal(d("120")))
	assert.Equal(t, int64(42), res.WinnerID)
	require.NotNil(t, res.Counter)
	assert.True(t, res.Counter.Amount.Equal(d("130")))
	assert.True(t, res.WinningPrice.Equal(d("130")))
}

func TestResolveBid_ManualEqualsCompetitorCap(t *testing.T) {
	// (d) 与 (b) 刻意不对称: 普通出价等于竞争者上限时不拒绝, 以反击解决
	competitor := proxyBid(7, 42, "120", time.Now())

	res, err := resolveBid(testSnapshot(), &competitor, placementParams{
		UserID: 9, Amount: d("120"),
	})
	require.NoError(t, err)

	assert.Equal(t, int64(42), res.WinnerID)
	require.NotNil(t, res.Counter)
	// min(120+10, 120) = 120: 反击不超过竞争者上限
	assert.True(t, res.Counter.Amount.Equal(d("120")))
}

func TestResolveBid_ManualBeatsCompetitorCap(t *testing.T) {
	// (e) 普通出价直接超过竞争者上限: 请求者按面值领先
	competitor := proxyBid(7, 42, "115", time.Now())

	res, err := resolveBid(testSnapshot(), &competitor, placementParams{
		UserID: 9, Amount: d("120"),
	})
	require.NoError(t, err)

	assert.True(t, res.FinalAmount.Equal(d("120")))
	assert.Equal(t, int64(9), res.WinnerID)
	assert.True(t, res.WinningPrice.Equal(d("120")))
	assert.Nil(t, res.Counter)
	assert.Equal(t, msgWonOutright, res.Message)
}

func TestResolveBid_NoCompetitor(t *testing.T) {
	// (e) 无竞争者: 普通与代理都按出价金额领先
	tests := []struct {
		name      string
		maxAmount *decimal.Decimal
		message   string
	}{
		{name: "manual", maxAmount: nil, message: msgWonOutright},
		{name: "auto", maxAmount: dp("300"), message: msgAutoActive},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := resolveBid(testSnapshot(), nil, placementParams{
				UserID: 9, Amount: d("110"), MaxAmount: tt.maxAmount,
			})
			require.NoError(t, err)

			assert.True(t, res.FinalAmount.Equal(d("110")))
			assert.Equal(t, int64(9), res.WinnerID)
			assert.True(t, res.WinningPrice.Equal(d("110")))
			assert.Nil(t, res.Counter)
			assert.Equal(t, tt.message, res.Message)
		})
	}
}

func TestPickCompetitor_HighestCapThenEarliest(t *testing.T) {
	now := time.Now()
	bids := []base.Bid{
		proxyBid(1, 11, "150", now),
		proxyBid(2, 22, "200", now.Add(2*time.Second)), // 最高上限
		proxyBid(3, 33, "200", now.Add(5*time.Second)), // 同上限但更晚
		proxyBid(4, 44, "300", now),                    // 请求者自己, 排除
	}

	competitor := pickCompetitor(bids, 44)
	require.NotNil(t, competitor)
	assert.Equal(t, int64(22), competitor.UserID, "highest cap wins, earliest breaks ties")
}

func TestPickCompetitor_SkipsRejectedAndManual(t *testing.T) {
	now := time.Now()
	rejected := proxyBid(1, 11, "500", now)
	rejected.Rejected = true
	manual := base.Bid{ID: 2, UserID: 22, Amount: d("400"), CreatedAt: now}

	competitor := pickCompetitor([]base.Bid{rejected, manual, proxyBid(3, 33, "150", now)}, 9)
	require.NotNil(t, competitor)
	assert.Equal(t, int64(33), competitor.UserID)
}

func TestPickCompetitor_NoCandidates(t *testing.T) {
	assert.Nil(t, pickCompetitor(nil, 9))
	assert.Nil(t, pickCompetitor([]base.Bid{proxyBid(1, 9, "100", time.Now())}, 9),
		"requester's own proxy bid is not a competitor")
}

func TestCompetitorLess_Deterministic(t *testing.T) {
	now := time.Now()
	a := proxyBid(1, 11, "200", now)
	b := proxyBid(2, 22, "200", now)

	// 同上限同时间退化到按 ID 排序, 保证确定性
	assert.True(t, competitorLess(&a, &b))
	assert.False(t, competitorLess(&b, &a))
}
