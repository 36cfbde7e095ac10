package v1

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ProjectsTask/EasyAuctionBackend/pkg/errcode"
	"github.com/ProjectsTask/EasyAuctionBackend/pkg/xhttp"
)

// 网关透传的已认证用户标识 (会话校验在边界之外完成)
const headerUserID = "X-User-Id"

// parseProductID 从路径参数解析拍品 ID
func parseProductID(c *gin.Context) (int64, bool) {
	productID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || productID <= 0 {
		xhttp.Error(c, errcode.ErrInvalidParams)
		return 0, false
	}
	return productID, true
}

// requireUserID 解析请求者用户 ID, 缺失即拒绝
func requireUserID(c *gin.Context) (int64, bool) {
	userID, err := strconv.ParseInt(c.GetHeader(headerUserID), 10, 64)
	if err != nil || userID <= 0 {
		xhttp.Error(c, errcode.NewCustomErr("missing or invalid user identity"))
		return 0, false
	}
	return userID, true
}

// optionalUserID 解析可选的请求者用户 ID, 缺失按匿名处理 (返回 0)
func optionalUserID(c *gin.Context) int64 {
	userID, err := strconv.ParseInt(c.GetHeader(headerUserID), 10, 64)
	if err != nil || userID <= 0 {
		return 0
	}
	return userID
}
