package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ProjectsTask/EasyAuctionBackend/pkg/logger/xzap"
)

// RLog 请求日志中间件
// 为每个请求生成 trace_id, 绑定请求级 logger 并记录访问日志
func RLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		traceID := uuid.NewString()

		reqLogger := xzap.WithContext(c.Request.Context()).With(zap.String("trace_id", traceID))
		c.Request = c.Request.WithContext(xzap.NewContext(c.Request.Context(), reqLogger))
		c.Header("X-Trace-Id", traceID)

		c.Next()

		reqLogger.Info("api access",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()))
	}
}
