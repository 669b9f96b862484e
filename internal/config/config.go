package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/yungbote/petshop-storefront/internal/envutil"
)

type Backend struct {
	BaseURL        string `yaml:"base_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

type Cache struct {
	// Backend selects the persistent cart cache: "sqlite" (default,
	// embedded), "postgres", or "redis".
	Backend       string `yaml:"backend"`
	SQLitePath    string `yaml:"sqlite_path"`
	PostgresDSN   string `yaml:"postgres_dsn"`
	RedisAddr     string `yaml:"redis_addr"`
	RedisPassword string `yaml:"redis_password"`
	RedisDB       int    `yaml:"redis_db"`
}

type Config struct {
	LogMode     string  `yaml:"log_mode"`
	ListenAddr  string  `yaml:"listen_addr"`
	CatalogPath string  `yaml:"catalog_path"`
	Backend     Backend `yaml:"backend"`
	Cache       Cache   `yaml:"cache"`
}

func defaults() Config {
	return Config{
		LogMode:     "development",
		ListenAddr:  ":8081",
		CatalogPath: "catalog.yaml",
		Backend: Backend{
			BaseURL:        "http://localhost:8080/api",
			TimeoutSeconds: 10,
		},
		Cache: Cache{
			Backend:    "sqlite",
			SQLitePath: "petshop-cart.db",
			RedisAddr:  "localhost:6379",
		},
	}
}

// Load reads the YAML config at path (skipped when the file does not
// exist), then lets environment variables override individual fields.
func Load(path string) (Config, error) {
	cfg := defaults()

	if path != "" {
		raw, err := os.ReadFile(path)
		if err == nil {
			if err := yaml.Unmarshal(raw, &cfg); err != nil {
				return Config{}, fmt.Errorf("parse config %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	cfg.LogMode = envutil.Str("LOG_MODE", cfg.LogMode)
	cfg.ListenAddr = envutil.Str("LISTEN_ADDR", cfg.ListenAddr)
	cfg.CatalogPath = envutil.Str("CATALOG_PATH", cfg.CatalogPath)
	cfg.Backend.BaseURL = envutil.Str("BACKEND_BASE_URL", cfg.Backend.BaseURL)
	cfg.Backend.TimeoutSeconds = envutil.Int("BACKEND_TIMEOUT_SECONDS", cfg.Backend.TimeoutSeconds)
	cfg.Cache.Backend = envutil.Str("CACHE_BACKEND", cfg.Cache.Backend)
	cfg.Cache.SQLitePath = envutil.Str("CACHE_SQLITE_PATH", cfg.Cache.SQLitePath)
	cfg.Cache.PostgresDSN = envutil.Str("CACHE_POSTGRES_DSN", cfg.Cache.PostgresDSN)
	cfg.Cache.RedisAddr = envutil.Str("CACHE_REDIS_ADDR", cfg.Cache.RedisAddr)
	cfg.Cache.RedisPassword = envutil.Str("CACHE_REDIS_PASSWORD", cfg.Cache.RedisPassword)
	cfg.Cache.RedisDB = envutil.Int("CACHE_REDIS_DB", cfg.Cache.RedisDB)

	return cfg, nil
}
