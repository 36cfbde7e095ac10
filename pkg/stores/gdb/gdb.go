package gdb

import (
	"log"
	"os"
	"time"

	"github.com/pkg/errors"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	glogger "gorm.io/gorm/logger"
)

// Config 数据库配置
type Config struct {
	Dsn             string `toml:"dsn" mapstructure:"dsn" json:"dsn"`                                           // MySQL DSN
	MaxIdleConns    int    `toml:"max_idle_conns" mapstructure:"max_idle_conns" json:"max_idle_conns"`          // 最大空闲连接数
	MaxOpenConns    int    `toml:"max_open_conns" mapstructure:"max_open_conns" json:"max_open_conns"`          // 最大打开连接数
	ConnMaxLifetime int    `toml:"conn_max_lifetime" mapstructure:"conn_max_lifetime" json:"conn_max_lifetime"` // 连接最大存活时间 (秒)
	LogLevel        string `toml:"log_level" mapstructure:"log_level" json:"log_level"`                         // gorm 日志级别: silent / error / warn / info
	SlowThresholdMs int    `toml:"slow_threshold_ms" mapstructure:"slow_threshold_ms" json:"slow_threshold_ms"` // 慢查询阈值 (毫秒)
}

// NewDB 初始化 GORM 数据库连接
func NewDB(c *Config) (*gorm.DB, error) {
	level := glogger.Warn
	switch c.LogLevel {
	case "silent":
		level = glogger.Silent
	case "error":
		level = glogger.Error
	case "info":
		level = glogger.Info
	}

	slowThreshold := 200 * time.Millisecond
	if c.SlowThresholdMs > 0 {
		slowThreshold = time.Duration(c.SlowThresholdMs) * time.Millisecond
	}

	gormLogger := glogger.New(log.New(os.Stdout, "\r\n", log.LstdFlags), glogger.Config{
		SlowThreshold:             slowThreshold,
		LogLevel:                  level,
		IgnoreRecordNotFoundError: true,
	})

	db, err := gorm.Open(mysql.Open(c.Dsn), &gorm.Config{
		Logger: gormLogger,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed on open mysql connection")
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(err, "failed on get sql db")
	}

	if c.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(c.MaxIdleConns)
	}
	if c.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(c.MaxOpenConns)
	}
	if c.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(time.Duration(c.ConnMaxLifetime) * time.Second)
	}

	return db, nil
}
