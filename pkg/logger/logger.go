package logger

// LogConf 日志配置
// 与配置文件中的 [log] 段对应
type LogConf struct {
	ServiceName string `toml:"service_name" mapstructure:"service_name" json:"service_name"` // 服务名称
	Mode        string `toml:"mode" mapstructure:"mode" json:"mode"`                         // 输出模式: console / file
	Path        string `toml:"path" mapstructure:"path" json:"path"`                         // 日志文件目录
	Level       string `toml:"level" mapstructure:"level" json:"level"`                      // 日志级别: debug / info / warn / error
	Compress    bool   `toml:"compress" mapstructure:"compress" json:"compress"`             // 是否压缩历史日志
	KeepDays    int    `toml:"keep_days" mapstructure:"keep_days" json:"keep_days"`          // 日志保留天数
	MaxSize     int    `toml:"max_size" mapstructure:"max_size" json:"max_size"`             // 单个日志文件最大体积 (MB)
	MaxBackups  int    `toml:"max_backups" mapstructure:"max_backups" json:"max_backups"`    // 最多保留的日志文件个数
}
