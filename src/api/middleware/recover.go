package middleware

import (
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ProjectsTask/EasyAuctionBackend/pkg/errcode"
	"github.com/ProjectsTask/EasyAuctionBackend/pkg/logger/xzap"
	"github.com/ProjectsTask/EasyAuctionBackend/pkg/xhttp"
)

// RecoverMiddleware 捕获 handler panic, 记录堆栈并返回 500
func RecoverMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				xzap.WithContext(c.Request.Context()).Error("panic recovered",
					zap.Any("panic", r),
					zap.String("path", c.Request.URL.Path),
					zap.ByteString("stack", debug.Stack()))
				c.Abort()
				xhttp.Error(c, errcode.ErrUnexpected)
			}
		}()
		c.Next()
	}
}
