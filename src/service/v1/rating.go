package service

import (
	"github.com/ProjectsTask/EasyAuctionBackend/src/model/base"
)

// 新用户之外的买家必须达到的好评率门槛 (%)
const ratingScoreThreshold = 80.0

// RatingSummary 评价汇总
type RatingSummary struct {
	Score    float64 `json:"score"`    // 好评率 0~100, 无评价时为 0
	Total    int     `json:"total"`    // 评价总数
	Positive int     `json:"positive"` // 好评数
	Negative int     `json:"negative"` // 差评数
}

// ratingSummary 计算用户的评价汇总
// 纯函数: score = positive / (positive+negative) * 100, 无评价时为 0
func ratingSummary(user *base.User) RatingSummary {
	total := user.PositiveRating + user.NegativeRating
	var score float64
	if total > 0 {
		score = float64(user.PositiveRating) / float64(total) * 100
	}
	return RatingSummary{
		Score:    score,
		Total:    total,
		Positive: user.PositiveRating,
		Negative: user.NegativeRating,
	}
}

// canUserBid 评价门槛判定
// 无任何评价的新用户能否出价由拍品的 allow_new_bidders 决定,
// 有评价的用户要求好评率不低于 ratingScoreThreshold
func canUserBid(user *base.User, productAllowsNewBidders bool) bool {
	summary := ratingSummary(user)
	if summary.Total == 0 {
		return productAllowsNewBidders
	}
	return summary.Score >= ratingScoreThreshold
}
