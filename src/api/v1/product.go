package v1

import (
	"github.com/gin-gonic/gin"

	"github.com/ProjectsTask/EasyAuctionBackend/pkg/xhttp"
	"github.com/ProjectsTask/EasyAuctionBackend/src/service/svc"
	service "github.com/ProjectsTask/EasyAuctionBackend/src/service/v1"
)

// ProductDetailHandler 拍品详情
func ProductDetailHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		productID, ok := parseProductID(c)
		if !ok {
			return
		}

		res, err := service.GetProductDetail(c.Request.Context(), svcCtx, productID)
		if err != nil {
			xhttp.Error(c, err)
			return
		}
		xhttp.OkJson(c, struct {
			Result interface{} `json:"result"`
		}{Result: res})
	}
}
