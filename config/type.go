package config

import (
	"fmt"
	"time"
)

// AppConfig 应用配置结构
type AppConfig struct {
	Server   ServerConfig   `koanf:"server"`
	Database DatabaseConfig `koanf:"database"`
	Log      LogConfig      `koanf:"log"`
	JWT      JWTConfig      `koanf:"jwt"`
}

type ServerConfig struct {
	Host           string        `koanf:"host"`
	Port           int           `koanf:"port"`
	Mode           string        `koanf:"mode"`          // debug, release, test
	ReadTimeout    time.Duration `koanf:"read_timeout"`  // 秒
	WriteTimeout   time.Duration `koanf:"write_timeout"` // 秒
	AllowedOrigins []string      `koanf:"allowed_origins"`
}

type DatabaseConfig struct {
	Driver       string `koanf:"driver"` // postgres, sqlite
	Host         string `koanf:"host"`
	Port         int    `koanf:"port"`
	Username     string `koanf:"username"`
	Password     string `koanf:"password"`
	Database     string `koanf:"database"`
	Path         string `koanf:"path"` // sqlite 文件路径，空表示内存库
	SSLMode      bool   `koanf:"sslmode"`
	LogLevel     string `koanf:"log_level"` // 数据库日志级别
	MaxOpenConns int    `koanf:"max_open_conns"`
	MaxIdleConns int    `koanf:"max_idle_conns"`
	MaxLifetime  int    `koanf:"max_lifetime"` // 秒
}

type LogConfig struct {
	Level string `koanf:"level"` // debug, info, warn, error
}

type JWTConfig struct {
	Secret        string `koanf:"secret"`
	ExpireMinutes int    `koanf:"expire_minutes"`
}

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	defaultPort          = 8080
	defaultExpireMinutes = 30
)

// Addr 监听地址
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// TokenTTL 访问令牌有效期
func (j JWTConfig) TokenTTL() time.Duration {
	return time.Duration(j.ExpireMinutes) * time.Minute
}

// applyDefaults 填充未配置的字段
func (c *AppConfig) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = defaultPort
	}
	if c.Database.Driver == "" {
		c.Database.Driver = DriverPostgres
	}
	if c.JWT.ExpireMinutes == 0 {
		c.JWT.ExpireMinutes = defaultExpireMinutes
	}
}

// Validate 启动前校验，缺少签名密钥直接失败
func (c *AppConfig) Validate() error {
	if c.JWT.Secret == "" {
		return fmt.Errorf("jwt.secret is not set (JWT_SECRET)")
	}
	if c.JWT.ExpireMinutes < 0 {
		return fmt.Errorf("jwt.expire_minutes must not be negative")
	}
	switch c.Database.Driver {
	case DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}
	return nil
}
