package server

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/iwvelando/proforma-forecast/internal/config"
	"github.com/iwvelando/proforma-forecast/pkg/constants"
	"gopkg.in/yaml.v3"
)

// StoreConfig selects the model store backend.
type StoreConfig struct {
	Backend         string `yaml:"backend"` // memory, redis
	RedisAddr       string `yaml:"redisAddr"`
	RedisTTLMinutes int    `yaml:"redisTTLMinutes"` // 0 keeps models indefinitely
}

// Config defines runtime parameters for the HTTP server.
type Config struct {
	Address      string               `yaml:"address"`
	MaxBodyBytes int64                `yaml:"maxBodyBytes"`
	Logging      config.LoggingConfig `yaml:"logging"`
	Store        StoreConfig          `yaml:"store"`
}

// LoadConfig loads the server configuration from YAML. If the file does not exist,
// defaults are returned without error.
func LoadConfig(path string) (*Config, error) {
	cfg := &Config{
		Address:      constants.DefaultServerAddress,
		MaxBodyBytes: constants.DefaultMaxBodySizeBytes,
		Store:        StoreConfig{Backend: "memory"},
	}

	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read server config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse server config: %w", err)
	}

	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) normalize() error {
	if c.Address == "" {
		c.Address = constants.DefaultServerAddress
	}
	if c.MaxBodyBytes <= 0 {
		c.MaxBodyBytes = constants.DefaultMaxBodySizeBytes
	}
	if c.Store.Backend == "" {
		c.Store.Backend = "memory"
	}
	switch c.Store.Backend {
	case "memory":
	case "redis":
		if c.Store.RedisAddr == "" {
			return fmt.Errorf("store backend redis requires redisAddr")
		}
	default:
		return fmt.Errorf("unknown store backend %q; expected memory or redis", c.Store.Backend)
	}
	if c.Store.RedisTTLMinutes < 0 {
		return fmt.Errorf("redisTTLMinutes must not be negative, got %d", c.Store.RedisTTLMinutes)
	}
	return nil
}
