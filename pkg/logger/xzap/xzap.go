package xzap

import (
	"context"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/ProjectsTask/EasyAuctionBackend/pkg/logger"
)

// CtxKey 用于在 context 中存放请求级 logger 的 key 类型
type CtxKey struct{}

var globalLogger *zap.Logger

func init() {
	// 未调用 SetUp 之前提供一个可用的兜底 logger, 避免空指针
	globalLogger, _ = zap.NewProduction()
}

// SetUp 根据配置初始化全局 zap logger
// mode 为 file 时使用 lumberjack 做日志滚动, 否则输出到标准输出
func SetUp(c *logger.LogConf) (*zap.Logger, error) {
	level := zapcore.InfoLevel
	if c.Level != "" {
		if err := level.Set(c.Level); err != nil {
			return nil, err
		}
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.TimeKey = "ts"
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	var ws zapcore.WriteSyncer
	if c.Mode == "file" {
		ws = zapcore.AddSync(&lumberjack.Logger{
			Filename:   filepath.Join(c.Path, c.ServiceName+".log"),
			MaxSize:    c.MaxSize,
			MaxBackups: c.MaxBackups,
			MaxAge:     c.KeepDays,
			Compress:   c.Compress,
		})
	} else {
		ws = zapcore.AddSync(os.Stdout)
	}

	core := zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), ws, level)
	globalLogger = zap.New(core, zap.AddCaller()).
		With(zap.String("service", c.ServiceName))

	zap.ReplaceGlobals(globalLogger)
	return globalLogger, nil
}

// WithContext 返回绑定到 ctx 的 logger
// 中间件会把带 trace_id 的 logger 放进 ctx, 没有时退回全局 logger
func WithContext(ctx context.Context) *zap.Logger {
	if ctx != nil {
		if l, ok := ctx.Value(CtxKey{}).(*zap.Logger); ok && l != nil {
			return l
		}
	}
	return globalLogger
}

// NewContext 把 logger 写入 ctx, 供 WithContext 取出
func NewContext(ctx context.Context, l *zap.Logger) context.Context {
	return context.WithValue(ctx, CtxKey{}, l)
}
