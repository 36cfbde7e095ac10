package v1

import (
	"github.com/gin-gonic/gin"

	"github.com/ProjectsTask/EasyAuctionBackend/pkg/errcode"
	"github.com/ProjectsTask/EasyAuctionBackend/pkg/xhttp"
	"github.com/ProjectsTask/EasyAuctionBackend/src/service/svc"
	service "github.com/ProjectsTask/EasyAuctionBackend/src/service/v1"
	types "github.com/ProjectsTask/EasyAuctionBackend/src/types/v1"
)

// BidValidateHandler 出价资格校验
// 只读接口, 返回 can_bid 与建议出价; 真正的准入判定在出价事务内重做
func BidValidateHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		productID, ok := parseProductID(c)
		if !ok {
			return
		}
		userID, ok := requireUserID(c)
		if !ok {
			return
		}

		res, err := service.ValidateBid(c.Request.Context(), svcCtx, productID, userID)
		if err != nil {
			xhttp.Error(c, err)
			return
		}
		xhttp.OkJson(c, struct {
			Result interface{} `json:"result"`
		}{Result: res})
	}
}

// PlaceBidHandler 出价
// 请求体: amount + 可选 max_amount (代理出价) + confirmed
func PlaceBidHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		productID, ok := parseProductID(c)
		if !ok {
			return
		}
		userID, ok := requireUserID(c)
		if !ok {
			return
		}

		var req types.PlaceBidReq
		if err := c.ShouldBindJSON(&req); err != nil {
			xhttp.Error(c, errcode.ErrInvalidParams)
			return
		}

		res, err := service.PlaceBid(c.Request.Context(), svcCtx, productID, userID, req)
		if err != nil {
			xhttp.Error(c, err)
			return
		}
		xhttp.OkJson(c, struct {
			Result interface{} `json:"result"`
		}{Result: res})
	}
}

// BidHistoryHandler 出价记录
// 匿名可访问, 脱敏程度取决于请求者身份
func BidHistoryHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		productID, ok := parseProductID(c)
		if !ok {
			return
		}
		requesterID := optionalUserID(c)

		res, err := service.GetBidHistory(c.Request.Context(), svcCtx, productID, requesterID)
		if err != nil {
			xhttp.Error(c, err)
			return
		}
		xhttp.OkJson(c, struct {
			Result interface{} `json:"result"`
		}{Result: res})
	}
}

// MyCurrentBidHandler 请求者在该拍品上的出价状态
// 没有出价时 result 为 null
func MyCurrentBidHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		productID, ok := parseProductID(c)
		if !ok {
			return
		}
		userID, ok := requireUserID(c)
		if !ok {
			return
		}

		res, err := service.GetMyCurrentBid(c.Request.Context(), svcCtx, productID, userID)
		if err != nil {
			xhttp.Error(c, err)
			return
		}
		xhttp.OkJson(c, struct {
			Result interface{} `json:"result"`
		}{Result: res})
	}
}
