package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	DBDriver      string
	DBDSN         string
	ServerPort    string
	SessionSecret string

	PublicBaseURL string
	UploadDir     string
	CORSOrigin    string

	CacheDriver   string
	CacheTTL      time.Duration
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	LogLevel       string
	LogFormat      string
	MetricsEnabled bool
}

// Load reads an optional .env file, then the environment. A config file
// (yaml/json/toml) given by path is layered underneath the environment.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("DB_DRIVER", "postgres")
	v.SetDefault("SERVER_PORT", "3000")
	v.SetDefault("UPLOAD_DIR", "uploads")
	v.SetDefault("CORS_ORIGIN", "http://localhost:8080")
	v.SetDefault("CACHE_DRIVER", "memory")
	v.SetDefault("CACHE_TTL", "30s")
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("METRICS_ENABLED", true)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	cfg := &Config{
		DBDriver:       strings.ToLower(v.GetString("DB_DRIVER")),
		DBDSN:          v.GetString("DB_DSN"),
		ServerPort:     v.GetString("SERVER_PORT"),
		SessionSecret:  v.GetString("SESSION_SECRET"),
		PublicBaseURL:  v.GetString("PUBLIC_BASE_URL"),
		UploadDir:      v.GetString("UPLOAD_DIR"),
		CORSOrigin:     v.GetString("CORS_ORIGIN"),
		CacheDriver:    strings.ToLower(v.GetString("CACHE_DRIVER")),
		CacheTTL:       v.GetDuration("CACHE_TTL"),
		RedisAddr:      v.GetString("REDIS_ADDR"),
		RedisPassword:  v.GetString("REDIS_PASSWORD"),
		RedisDB:        v.GetInt("REDIS_DB"),
		LogLevel:       v.GetString("LOG_LEVEL"),
		LogFormat:      v.GetString("LOG_FORMAT"),
		MetricsEnabled: v.GetBool("METRICS_ENABLED"),
	}

	if cfg.DBDSN == "" {
		return nil, errors.New("DB_DSN is not set")
	}
	if cfg.SessionSecret == "" {
		return nil, errors.New("SESSION_SECRET is not set")
	}
	switch cfg.DBDriver {
	case "postgres", "sqlite":
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}
	switch cfg.CacheDriver {
	case "memory", "redis", "none":
	default:
		return nil, fmt.Errorf("unsupported CACHE_DRIVER %q", cfg.CacheDriver)
	}
	if cfg.PublicBaseURL == "" {
		cfg.PublicBaseURL = "http://localhost:" + cfg.ServerPort
	}
	cfg.PublicBaseURL = strings.TrimRight(cfg.PublicBaseURL, "/")

	return cfg, nil
}

func (c *Config) Addr() string {
	return ":" + c.ServerPort
}
