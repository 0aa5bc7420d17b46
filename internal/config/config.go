// Package config loads zoracast configuration from YAML files, one
// file per concern. A missing file falls back to typed defaults; the
// merged result is validated before use.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v2"

	"github.com/zoracast/zoracast/internal/model"
	"github.com/zoracast/zoracast/internal/provider"
)

// Config is the full runtime configuration.
type Config struct {
	Server   ServerConfig
	Provider ProviderConfig
	Cache    CacheConfig
	Model    model.Config
	Postgres PostgresConfig
}

type ServerConfig struct {
	Host         string        `yaml:"host"`
	Port         int           `yaml:"port"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
	IdleTimeout  time.Duration `yaml:"idle_timeout"`
}

type ProviderConfig struct {
	// Mode selects the implementation: "zora" (default) or "mock".
	Mode string              `yaml:"mode"`
	Zora provider.ZoraConfig `yaml:"zora"`
}

type CacheConfig struct {
	RedisAddr string        `yaml:"redis_addr"`
	TTL       time.Duration `yaml:"ttl"`
}

type PostgresConfig struct {
	DSN     string        `yaml:"dsn"`
	Timeout time.Duration `yaml:"timeout"`
}

func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			Host:         "127.0.0.1",
			Port:         8080,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		Provider: ProviderConfig{
			Mode: "zora",
			Zora: provider.DefaultZoraConfig(),
		},
		Cache: CacheConfig{
			TTL: 5 * time.Minute,
		},
		Model: model.DefaultConfig(),
		Postgres: PostgresConfig{
			Timeout: 5 * time.Second,
		},
	}
}

// Load reads configuration from configDir. Every file is optional;
// absent files keep their defaults.
func Load(configDir string) (*Config, error) {
	cfg := defaults()

	if err := loadFile(configDir, "server.yaml", &cfg.Server); err != nil {
		return nil, fmt.Errorf("load server config: %w", err)
	}
	if err := loadFile(configDir, "provider.yaml", &cfg.Provider); err != nil {
		return nil, fmt.Errorf("load provider config: %w", err)
	}
	if err := loadFile(configDir, "cache.yaml", &cfg.Cache); err != nil {
		return nil, fmt.Errorf("load cache config: %w", err)
	}
	if err := loadFile(configDir, "model.yaml", &cfg.Model); err != nil {
		return nil, fmt.Errorf("load model config: %w", err)
	}
	if err := loadFile(configDir, "postgres.yaml", &cfg.Postgres); err != nil {
		return nil, fmt.Errorf("load postgres config: %w", err)
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

func loadFile(configDir, name string, out interface{}) error {
	path := filepath.Join(configDir, name)
	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("parse %s: %w", name, err)
	}
	return nil
}

func validate(cfg *Config) error {
	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return fmt.Errorf("server port %d out of range", cfg.Server.Port)
	}
	switch cfg.Provider.Mode {
	case "zora", "mock":
	default:
		return fmt.Errorf("unknown provider mode %q", cfg.Provider.Mode)
	}
	if cfg.Provider.Mode == "zora" && cfg.Provider.Zora.BaseURL == "" {
		return fmt.Errorf("zora base_url required")
	}
	if cfg.Cache.TTL < 0 {
		return fmt.Errorf("cache ttl must not be negative")
	}
	if cfg.Model.Epochs < 0 || cfg.Model.BatchSize < 0 {
		return fmt.Errorf("model epochs and batch_size must not be negative")
	}
	return nil
}
