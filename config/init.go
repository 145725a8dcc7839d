package config

import (
	"errors"
	"strings"
	"sync"

	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/viper"
)

var (
	cfg  *Config
	once sync.Once
)

// Default 返回不依赖任何配置文件即可运行的默认配置（开发环境 SQLite）
func Default() *Config {
	return &Config{
		Host: "0.0.0.0",
		Port: "8000",
		Mode: ModeRelease,
		Database: Database{
			URL:             "sqlite:///./activities.db",
			MaxOpenConns:    10,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
			BusyTimeout:     20000,
		},
		Backup: Backup{Dir: "./backups"},
		JWT:    JWT{AccessExpire: 24 * 60 * 60},
		Log: Log{
			Level:      "info",
			MaxSize:    100,
			MaxBackups: 7,
			MaxAge:     30,
		},
		OTel: OTel{ServiceName: "activity-signup"},
	}
}

// Load 读取 config.yaml（可选）并用环境变量覆盖
func Load(paths ...string) (*Config, error) {
	c := Default()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if len(paths) == 0 {
		paths = []string{".", "./config"}
	}
	for _, p := range paths {
		v.AddConfigPath(p)
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	} else if err := v.Unmarshal(c); err != nil {
		return nil, err
	}

	if err := envconfig.Process("", c); err != nil {
		return nil, err
	}

	c.normalize()
	return c, nil
}

func (c *Config) normalize() {
	if c.Debug {
		c.Mode = ModeDebug
	}
	if c.Mode != ModeDebug {
		c.Mode = ModeRelease
	}
	c.Prefix = strings.Trim(c.Prefix, "/")
}

// Init 加载全局配置，失败直接 panic
func Init() {
	once.Do(func() {
		c, err := Load()
		if err != nil {
			panic(err)
		}
		cfg = c
	})
}

// Set 替换全局配置，供 cmd 工具和测试使用
func Set(c *Config) {
	once.Do(func() {})
	c.normalize()
	cfg = c
}

func Get() *Config {
	if cfg == nil {
		Init()
	}
	return cfg
}

// ErrNoJWTSecret 未配置签名密钥时所有需要登录的接口都会返回 401
var ErrNoJWTSecret = errors.New("JWT_ACCESS_SECRET is not set")

// Validate 检查启动必需的配置项
func (c *Config) Validate() error {
	if strings.TrimSpace(c.JWT.AccessSecret) == "" {
		return ErrNoJWTSecret
	}
	return nil
}
