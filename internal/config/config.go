package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the application configuration loaded from files and environment variables.
type Config struct {
	AppName  string `mapstructure:"app_name"`
	Env      string `mapstructure:"app_env"`
	LogLevel string `mapstructure:"log_level"`

	SerpAPIKey         string        `mapstructure:"serp_api_key"`
	SerpBaseURL        string        `mapstructure:"serp_base_url"`
	SerpTimeoutSeconds int64         `mapstructure:"serp_timeout_seconds"`
	SerpTimeout        time.Duration `mapstructure:"-"`

	ListenAddr             string        `mapstructure:"listen_addr"`
	ShutdownTimeoutSeconds int64         `mapstructure:"shutdown_timeout_seconds"`
	ShutdownTimeout        time.Duration `mapstructure:"-"`

	CacheType           string        `mapstructure:"cache_type"`
	BBoltPath           string        `mapstructure:"bbolt_path"`
	RedisAddr           string        `mapstructure:"redis_addr"`
	RedisPassword       string        `mapstructure:"redis_password"`
	RedisDB             int           `mapstructure:"redis_db"`
	CacheTTLSeconds     int64         `mapstructure:"cache_ttl_seconds"`
	CacheCleanupSeconds int64         `mapstructure:"cache_cleanup_interval_seconds"`
	CacheTTL            time.Duration `mapstructure:"-"`
	CacheCleanup        time.Duration `mapstructure:"-"`

	PublishersFile string `mapstructure:"publishers_file"`
}

// Load reads configuration from environment variables and config files.
func Load() (*Config, error) {
	_ = godotenv.Load("configs/.env")

	v := viper.New()

	v.SetDefault("app_name", "trends-proxy")
	v.SetDefault("app_env", "development")
	v.SetDefault("log_level", "info")
	v.SetDefault("serp_api_key", "")
	v.SetDefault("serp_base_url", "https://serpapi.com/search.json")
	v.SetDefault("serp_timeout_seconds", 0) // no upstream timeout
	v.SetDefault("listen_addr", ":3000")
	v.SetDefault("shutdown_timeout_seconds", 10)
	v.SetDefault("cache_type", "none")
	v.SetDefault("bbolt_path", "./data/cache.db")
	v.SetDefault("redis_addr", "localhost:6379")
	v.SetDefault("redis_password", "")
	v.SetDefault("redis_db", 0)
	v.SetDefault("cache_ttl_seconds", int64((5*time.Minute)/time.Second))
	v.SetDefault("cache_cleanup_interval_seconds", int64(time.Hour/time.Second))
	v.SetDefault("publishers_file", "")

	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// normalize validates the raw second counts and derives the duration fields.
func (c *Config) normalize() error {
	if c.SerpTimeoutSeconds < 0 {
		return fmt.Errorf("invalid serp_timeout_seconds (must be zero or positive seconds)")
	}
	c.SerpTimeout = time.Duration(c.SerpTimeoutSeconds) * time.Second

	if c.ShutdownTimeoutSeconds <= 0 {
		return fmt.Errorf("invalid shutdown_timeout_seconds (must be positive seconds)")
	}
	c.ShutdownTimeout = time.Duration(c.ShutdownTimeoutSeconds) * time.Second

	if c.CacheTTLSeconds <= 0 {
		return fmt.Errorf("invalid cache_ttl_seconds (must be positive seconds)")
	}
	if c.CacheCleanupSeconds <= 0 {
		return fmt.Errorf("invalid cache_cleanup_interval_seconds (must be positive seconds)")
	}
	c.CacheTTL = time.Duration(c.CacheTTLSeconds) * time.Second
	c.CacheCleanup = time.Duration(c.CacheCleanupSeconds) * time.Second

	return nil
}

// Redacted returns a copy safe for logging.
func (c Config) Redacted() Config {
	if c.SerpAPIKey != "" {
		c.SerpAPIKey = "***"
	}
	if c.RedisPassword != "" {
		c.RedisPassword = "***"
	}
	return c
}
