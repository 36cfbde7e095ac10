package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/ProjectsTask/EasyAuctionBackend/src/api/middleware"
	v1 "github.com/ProjectsTask/EasyAuctionBackend/src/api/v1"
	"github.com/ProjectsTask/EasyAuctionBackend/src/service/svc"
)

func NewRouter(svcCtx *svc.ServerCtx) *gin.Engine {
	// 强制控制台颜色输出，使日志更易读
	gin.ForceConsoleColor()
	// 设置 Gin 为发布模式 (ReleaseMode)
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()                        // 新建一个gin引擎实例
	r.Use(middleware.RecoverMiddleware()) // 使用自定义的恢复中间件，处理 Panic
	r.Use(middleware.RLog())              // 使用请求日志中间件，记录API访问日志

	r.Use(cors.New(cors.Config{ // 使用cors中间件，配置跨域访问策略
		AllowAllOrigins:  true,                                                         // 允许所有源
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"}, // 允许的方法
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "X-CSRF-Token", "Authorization", "X-User-Id"},
		ExposeHeaders:    []string{"Content-Length", "Content-Type", "Access-Control-Allow-Origin", "Access-Control-Allow-Headers", "X-GW-Error-Code", "X-GW-Error-Message", "X-Trace-Id"},
		AllowCredentials: true,
		MaxAge:           1 * time.Hour,
	}))
	loadV1(r, svcCtx) // 加载 v1 版本的路由分组

	return r
}

// loadV1 注册 v1 版本的全部路由
func loadV1(r *gin.Engine, svcCtx *svc.ServerCtx) {
	apiV1 := r.Group("/api/v1")

	products := apiV1.Group("/products")
	{
		products.GET("/:id", v1.ProductDetailHandler(svcCtx))                  // 拍品详情
		products.GET("/:id/bids", v1.BidHistoryHandler(svcCtx))                // 出价记录 (脱敏)
		products.GET("/:id/bids/validate", v1.BidValidateHandler(svcCtx))      // 出价资格校验
		products.GET("/:id/bids/me", v1.MyCurrentBidHandler(svcCtx))           // 请求者出价状态
		products.POST("/:id/bids", v1.PlaceBidHandler(svcCtx))                 // 出价
	}
}
