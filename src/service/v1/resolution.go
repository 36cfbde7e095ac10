package service

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/ProjectsTask/EasyAuctionBackend/pkg/errcode"
	"github.com/ProjectsTask/EasyAuctionBackend/src/model/base"
)

// 出价结果说明文案
const (
	msgWonOutright = "you are now the highest bidder"
	msgAutoActive  = "auto-bid active: the system will re-raise for you up to your maximum"
	msgOutbid      = "you were immediately outbid by a competing auto-bid"
)

// productSnapshot 事务内锁定后的权威拍品快照
// 决策只依赖这份快照与竞争者上限, 不做任何 I/O
type productSnapshot struct {
	ID           int64
	CurrentPrice decimal.Decimal
	PriceStep    decimal.Decimal
	WinnerID     int64
}

// placementParams 归一化后的出价参数 (确认标记等在进入解析前已校验)
type placementParams struct {
	UserID    int64
	Amount    decimal.Decimal
	MaxAmount *decimal.Decimal // nil 表示普通出价
}

// counterBid 引擎代竞争者合成的反击出价
type counterBid struct {
	UserID    int64
	Amount    decimal.Decimal
	MaxAmount decimal.Decimal // 竞争者原有上限, 原样带回
}

// resolution 单次出价的完整决策结果
type resolution struct {
	FinalAmount  decimal.Decimal // 请求者出价行的落库金额
	WinnerID     int64           // 决策后的领先者
	WinningPrice decimal.Decimal // 决策后的拍品当前价
	Counter      *counterBid     // 需要合成的反击出价, 可为空
	Message      string
}

// competitorLess 竞争者优先级比较器
// 上限高者优先, 同上限先出价者优先, 再同则取较早落库的行
// 显式写成代码而不是依赖存储层的默认排序
func competitorLess(a, b *base.Bid) bool {
	if !a.MaxAmount.Decimal.Equal(b.MaxAmount.Decimal) {
		return a.MaxAmount.Decimal.GreaterThan(b.MaxAmount.Decimal)
	}
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.Before(b.CreatedAt)
	}
	return a.ID < b.ID
}

// pickCompetitor 从拍品的代理出价中选出请求者之外优先级最高的竞争者
// 没有合格竞争者时返回 nil
func pickCompetitor(proxyBids []base.Bid, excludeUserID int64) *base.Bid {
	var candidates []base.Bid
	for _, b := range proxyBids {
		if b.UserID == excludeUserID || b.Rejected || !b.HasMaxAmount() {
			continue
		}
		candidates = append(candidates, b)
	}
	if len(candidates) == 0 {
		return nil
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return competitorLess(&candidates[i], &candidates[j])
	})
	return &candidates[0]
}

// resolveBid 代理出价决策 (eBay 式)
// 五个互斥分支:
//
//	(a) 代理出价且上限高于竞争者上限: 请求者直接领先,
//	    成交价压到 min(竞争者上限+步长, 自己上限), 不合成反击
//	(b) 代理出价且上限与竞争者完全相同: 拒绝, 不落任何记录
//	    (同上限不按先到先得解决, 与 (d) 的处理刻意不对称)
//	(c) 代理出价但上限低于竞争者上限: 请求者按自己上限落库,
//	    合成竞争者的反击出价 min(请求者上限+步长, 竞争者上限), 竞争者继续领先
//	(d) 普通出价且竞争者上限 >= 出价: 请求者按面值落库,
//	    合成反击 min(出价+步长, 竞争者上限), 竞争者继续领先
//	(e) 其余情形: 没有合格竞争者上限, 请求者按出价金额领先
func resolveBid(snap productSnapshot, competitor *base.Bid, p placementParams) (*resolution, error) {
	isAutoBid := p.MaxAmount != nil

	if competitor != nil {
		cap := competitor.MaxAmount.Decimal

		if isAutoBid {
			switch p.MaxAmount.Cmp(cap) {
			case 1: // (a) 上限反超竞争者
				finalAmount := decimal.Min(cap.Add(snap.PriceStep), *p.MaxAmount)
				return &resolution{
					FinalAmount:  finalAmount,
					WinnerID:     p.UserID,
					WinningPrice: finalAmount,
					Message:      msgAutoActive,
				}, nil
			case 0: // (b) 同上限, 拒绝
				return nil, errcode.NewInvalidRequestErr("someone already placed the same maximum amount before you")
			default: // (c) 上限不敌竞争者
				counterAmount := decimal.Min(p.MaxAmount.Add(snap.PriceStep), cap)
				return &resolution{
					FinalAmount:  *p.MaxAmount,
					WinnerID:     competitor.UserID,
					WinningPrice: counterAmount,
					Counter: &counterBid{
						UserID:    competitor.UserID,
						Amount:    counterAmount,
						MaxAmount: cap,
					},
					Message: msgOutbid,
				}, nil
			}
		}

		if cap.GreaterThanOrEqual(p.Amount) { // (d) 普通出价撞上代理上限
			counterAmount := decimal.Min(p.Amount.Add(snap.PriceStep), cap)
			return &resolution{
				FinalAmount:  p.Amount,
				WinnerID:     competitor.UserID,
				WinningPrice: counterAmount,
				Counter: &counterBid{
					UserID:    competitor.UserID,
					Amount:    counterAmount,
					MaxAmount: cap,
				},
				Message: msgOutbid,
			}, nil
		}
	}

	// (e) 无合格竞争者上限 (或普通出价直接超过了竞争者上限)
	message := msgWonOutright
	if isAutoBid {
		message = msgAutoActive
	}
	return &resolution{
		FinalAmount:  p.Amount,
		WinnerID:     p.UserID,
		WinningPrice: p.Amount,
		Message:      message,
	}, nil
}
