package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
)

type HTTP struct {
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	ReadTimeoutSec  int    `mapstructure:"read_timeout_sec"`
	WriteTimeoutSec int    `mapstructure:"write_timeout_sec"`
	IdleTimeoutSec  int    `mapstructure:"idle_timeout_sec"`
}

type AdminHTTP struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

type App struct {
	Name  string    `mapstructure:"name"`
	Env   string    `mapstructure:"env"`
	HTTP  HTTP      `mapstructure:"http"`
	Admin AdminHTTP `mapstructure:"admin"`
}

type Log struct {
	Level  string `mapstructure:"level"`
	JSON   bool   `mapstructure:"json"`
	File   string `mapstructure:"file"` // 为空则只输出到 stdout
	MaxMB  int    `mapstructure:"max_mb"`
	Backup int    `mapstructure:"backup"`
	Days   int    `mapstructure:"days"`
}

type JWT struct {
	Secret            string        `mapstructure:"secret"`
	Algorithm         string        `mapstructure:"algorithm"` // HS256 / HS384 / HS512
	Issuer            string        `mapstructure:"issuer"`
	AccessTokenTTLMin int           `mapstructure:"access_token_ttl_min"`
	Leeway            time.Duration `mapstructure:"leeway"`
}

// Admin 固定凭证，不落库
type Admin struct {
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

type Redis struct {
	Addr       string        `mapstructure:"addr"`
	Password   string        `mapstructure:"password"`
	DB         int           `mapstructure:"db"`
	SettingTTL time.Duration `mapstructure:"setting_ttl"`
}

type DB struct {
	Driver             string `mapstructure:"driver"`
	DSN                string `mapstructure:"dsn"`
	Username           string `mapstructure:"username"`
	Password           string `mapstructure:"password"`
	MaxOpenConns       int    `mapstructure:"max_open_conns"`
	MaxIdleConns       int    `mapstructure:"max_idle_conns"`
	ConnMaxLifetimeMin int    `mapstructure:"conn_max_lifetime_min"`
	AutoMigrate        bool   `mapstructure:"auto_migrate"`
	LogLevel           string `mapstructure:"log_level"`
}

type Limits struct {
	RPS            float64       `mapstructure:"rps"`
	Burst          int           `mapstructure:"burst"`
	PerIPRPS       float64       `mapstructure:"per_ip_rps"`
	PerIPBurst     int           `mapstructure:"per_ip_burst"`
	MaxInFlight    int64         `mapstructure:"max_in_flight"`
	MaxBodyBytes   int64         `mapstructure:"max_body_bytes"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	QueueWait      time.Duration `mapstructure:"queue_wait"` // 并发满时最多排队多久
}

type CORS struct {
	AllowOrigins []string `mapstructure:"allow_origins"`
}

type Config struct {
	App    App    `mapstructure:"app"`
	Log    Log    `mapstructure:"log"`
	JWT    JWT    `mapstructure:"jwt"`
	Admin  Admin  `mapstructure:"admin"`
	DB     DB     `mapstructure:"db"`
	Redis  Redis  `mapstructure:"redis"`
	Limits Limits `mapstructure:"limits"`
	CORS   CORS   `mapstructure:"cors"`
}

// AccessTTL 用户 token 默认有效期
func (c *Config) AccessTTL() time.Duration {
	return time.Duration(c.JWT.AccessTokenTTLMin) * time.Minute
}

// Load 读取 yaml + APP_ 前缀环境变量；配置文件缺失时只用默认值和环境变量
func Load(path string) (*Config, error) {
	v := viper.New()
	if path == "" {
		path = os.Getenv("CONFIG_PATH")
		if path == "" {
			path = "./configs/config.local.yaml"
		}
	}
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c, viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	))); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Config) validate() error {
	switch strings.ToUpper(c.JWT.Algorithm) {
	case "HS256", "HS384", "HS512":
		c.JWT.Algorithm = strings.ToUpper(c.JWT.Algorithm)
	default:
		return fmt.Errorf("jwt.algorithm %q not supported", c.JWT.Algorithm)
	}
	if c.JWT.Secret == "" {
		return errors.New("jwt.secret is required")
	}
	if c.JWT.AccessTokenTTLMin <= 0 {
		return errors.New("jwt.access_token_ttl_min must be positive")
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "photostudio")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.http.host", "0.0.0.0")
	v.SetDefault("app.http.port", 8001)
	v.SetDefault("app.http.read_timeout_sec", 5)
	v.SetDefault("app.http.write_timeout_sec", 10)
	v.SetDefault("app.http.idle_timeout_sec", 60)
	v.SetDefault("app.admin.host", "127.0.0.1")
	v.SetDefault("app.admin.port", 8002)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.json", false)
	v.SetDefault("log.file", "")
	v.SetDefault("log.max_mb", 100)
	v.SetDefault("log.backup", 7)
	v.SetDefault("log.days", 30)

	v.SetDefault("jwt.secret", "your-secret-key-change-in-production")
	v.SetDefault("jwt.algorithm", "HS256")
	v.SetDefault("jwt.issuer", "photostudio")
	v.SetDefault("jwt.access_token_ttl_min", 30)
	v.SetDefault("jwt.leeway", "0s")

	v.SetDefault("admin.username", "admin")
	v.SetDefault("admin.password", "admin123")

	v.SetDefault("db.driver", "sqlite")
	v.SetDefault("db.dsn", "photostudio.db")
	v.SetDefault("db.username", "")
	v.SetDefault("db.password", "")
	v.SetDefault("db.max_open_conns", 20)
	v.SetDefault("db.max_idle_conns", 5)
	v.SetDefault("db.conn_max_lifetime_min", 30)
	v.SetDefault("db.auto_migrate", true)
	v.SetDefault("db.log_level", "warn")

	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.setting_ttl", "5m")

	v.SetDefault("limits.rps", 200)
	v.SetDefault("limits.burst", 400)
	v.SetDefault("limits.per_ip_rps", 5)
	v.SetDefault("limits.per_ip_burst", 20)
	v.SetDefault("limits.max_in_flight", 300)
	v.SetDefault("limits.max_body_bytes", 16<<20)
	v.SetDefault("limits.request_timeout", "10s")
	v.SetDefault("limits.queue_wait", "2s")

	v.SetDefault("cors.allow_origins", []string{"*"})
}
