package config

import (
	"strings"

	"github.com/spf13/viper"

	"github.com/ProjectsTask/EasyAuctionBackend/pkg/logger"
	"github.com/ProjectsTask/EasyAuctionBackend/pkg/stores/gdb"
)

// Config 定义了应用程序的全局配置结构
type Config struct {
	Api        Api             `toml:"api" mapstructure:"api" json:"api"`                         // HTTP 服务配置
	Log        *logger.LogConf `toml:"log" mapstructure:"log" json:"log"`                         // 日志配置
	Kv         *KvConf         `toml:"kv" mapstructure:"kv" json:"kv"`                            // KV存储配置 (Redis)
	DB         *gdb.Config     `toml:"db" mapstructure:"db" json:"db"`                            // 数据库配置 (MySQL)
	Auction    AuctionCfg      `toml:"auction" mapstructure:"auction" json:"auction"`             // 竞拍引擎配置
	ProjectCfg ProjectCfg      `toml:"project_cfg" mapstructure:"project_cfg" json:"project_cfg"` // 项目名称配置
}

// Api 定义 HTTP 服务配置
type Api struct {
	Port string `toml:"port" mapstructure:"port" json:"port"` // 监听端口, 形如 ":9100"
}

// AuctionCfg 定义竞拍引擎的业务参数
type AuctionCfg struct {
	PlacementMaxRetries  int   `toml:"placement_max_retries" mapstructure:"placement_max_retries" json:"placement_max_retries"`    // 出价事务冲突最大重试次数
	ExtensionWindowSecs  int64 `toml:"extension_window_secs" mapstructure:"extension_window_secs" json:"extension_window_secs"`    // 软关闭延时窗口 (秒): 截止前多少秒内的出价触发延时
	ExtendBySecs         int64 `toml:"extend_by_secs" mapstructure:"extend_by_secs" json:"extend_by_secs"`                         // 每次延时的时长 (秒)
	MaxExtensions        int   `toml:"max_extensions" mapstructure:"max_extensions" json:"max_extensions"`                         // 单个拍品最多延时次数
	EventPollIntervalSec int   `toml:"event_poll_interval_sec" mapstructure:"event_poll_interval_sec" json:"event_poll_interval_sec"` // 出价事件队列轮询间隔 (秒)
	SweepIntervalSec     int   `toml:"sweep_interval_sec" mapstructure:"sweep_interval_sec" json:"sweep_interval_sec"`             // 到期拍品结算巡检间隔 (秒)
}

// ProjectCfg 定义项目配置
type ProjectCfg struct {
	Name string `toml:"name" mapstructure:"name" json:"name"` // 项目名称, 用于拼接缓存 key
}

// KvConf 定义 Key-Value 存储配置
type KvConf struct {
	Redis []*Redis `toml:"redis" mapstructure:"redis" json:"redis"` // Redis 列表（可能支持多实例）
}

// Redis 定义 Redis 连接配置
type Redis struct {
	Host string `toml:"host" mapstructure:"host" json:"host"` // Redis 主机地址
	Type string `toml:"type" mapstructure:"type" json:"type"` // Redis 类型 (node, cluster)
	Pass string `toml:"pass" mapstructure:"pass" json:"pass"` // Redis 密码
}

// UnmarshalConfig 加载并解析指定路径的配置文件
// @params configFilePath: 配置文件路径
func UnmarshalConfig(configFilePath string) (*Config, error) {
	viper.SetConfigFile(configFilePath) // 设置配置文件路径
	viper.SetConfigType("toml")         // 设置配置文件类型为 TOML
	viper.AutomaticEnv()                // 自动读取环境变量
	viper.SetEnvPrefix("EAUCTION")      // 设置环境变量前缀，如 EAUCTION_DB_DSN
	replacer := strings.NewReplacer(".", "_")
	viper.SetEnvKeyReplacer(replacer) // 替换 key 中的 . 为 _

	if err := viper.ReadInConfig(); err != nil { // 读取配置
		return nil, err
	}

	var c Config
	if err := viper.Unmarshal(&c); err != nil { // 解析到结构体
		return nil, err
	}

	return &c, nil
}
