package config

import (
	"github.com/sasamaylina/responsi-paw/internal/logger"
	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Auth      AuthConfig      `mapstructure:"auth"`
	Upload    UploadConfig    `mapstructure:"upload"`
	Donation  DonationConfig  `mapstructure:"donation"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
	Log       LogConfig       `mapstructure:"log"`
}

type ServerConfig struct {
	Port string `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
}

type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
}

// AuthConfig 认证配置
type AuthConfig struct {
	JWTSecret     string `mapstructure:"jwt_secret"`      // JWT签名密钥
	TokenTTLHours int    `mapstructure:"token_ttl_hours"` // Token有效期（小时）
}

// UploadConfig 图片上传配置
type UploadConfig struct {
	Dir         string   `mapstructure:"dir"`          // 上传文件存储目录
	MaxSize     int64    `mapstructure:"max_size"`     // 单个文件最大字节数
	AllowedExts []string `mapstructure:"allowed_exts"` // 允许的文件扩展名
}

// DonationConfig 捐款配置
type DonationConfig struct {
	MinAmount int64 `mapstructure:"min_amount"` // 单笔捐款最低金额
}

type SchedulerConfig struct {
	Interval int `mapstructure:"interval"` // 秒
}

type LogConfig struct {
	Level  string `mapstructure:"level"`  // 日志级别: debug, info, warn, error, fatal
	Output string `mapstructure:"output"` // 输出目标: stdout, file
	File   string `mapstructure:"file"`   // 日志文件路径（当output为file时使用）
}

func Load() *Config {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AddConfigPath("/etc/responsi-paw")

	// 设置默认值
	viper.SetDefault("server.port", "8080")
	viper.SetDefault("server.mode", "debug")
	viper.SetDefault("database.host", "localhost")
	viper.SetDefault("database.port", 5432)
	viper.SetDefault("database.user", "postgres")
	viper.SetDefault("database.password", "")
	viper.SetDefault("database.dbname", "donasi")
	viper.SetDefault("database.sslmode", "disable")
	viper.SetDefault("auth.jwt_secret", "dev-secret-key-change-in-production")
	viper.SetDefault("auth.token_ttl_hours", 24)
	viper.SetDefault("upload.dir", "uploads")
	viper.SetDefault("upload.max_size", 5*1024*1024)
	viper.SetDefault("upload.allowed_exts", []string{"png", "jpg", "jpeg", "gif", "webp"})
	viper.SetDefault("donation.min_amount", 1000)
	viper.SetDefault("scheduler.interval", 300)
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.output", "stdout")
	viper.SetDefault("log.file", "logs/app.log")

	// 自动读取环境变量
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logger.Warn("Warning: Could not read config file: %v", err)
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		logger.Fatal("Unable to decode config into struct: %v", err)
	}

	return &config
}
