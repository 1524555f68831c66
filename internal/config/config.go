package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	envPrefix     = "BANCA_"
	envConfigFile = "BANCA_CONFIG"
)

type Config struct {
	API      APIConfig      `koanf:"api"`
	Log      LogConfig      `koanf:"log"`
	Storage  StorageConfig  `koanf:"storage"`
	Auth     AuthConfig     `koanf:"auth"`
	Postgres PostgresConfig `koanf:"postgres"`
	Exchange ExchangeConfig `koanf:"exchange"`
	Poll     PollConfig     `koanf:"poll"`
	Operator OperatorConfig `koanf:"operator"`
}

type APIConfig struct {
	Port string `koanf:"port"`
}

type LogConfig struct {
	Level string `koanf:"level"`
}

// StorageConfig locates the local key-value file (locale, persisted auth session).
type StorageConfig struct {
	Path string `koanf:"path"`
}

// AuthConfig points at a GoTrue-compatible auth provider.
type AuthConfig struct {
	URL string `koanf:"url"`
	Key string `koanf:"key"`
}

type PostgresConfig struct {
	Address  string `koanf:"address"`
	Port     string `koanf:"port"`
	DB       string `koanf:"db"`
	Username string `koanf:"username"`
	Password string `koanf:"password"`
	SSLMode  string `koanf:"sslmode"`
}

type ExchangeConfig struct {
	URL      string        `koanf:"url"`
	Fallback float64       `koanf:"fallback"`
	Timeout  time.Duration `koanf:"timeout"`
}

type PollConfig struct {
	Interval time.Duration `koanf:"interval"`
}

type OperatorConfig struct {
	Workers int `koanf:"workers"`
}

func defaults() map[string]interface{} {
	return map[string]interface{}{
		"api.port":          "9446",
		"log.level":         "info",
		"storage.path":      ".banca/state.json",
		"postgres.port":     "5432",
		"postgres.db":       "postgres",
		"postgres.username": "postgres",
		"postgres.sslmode":  "require",
		"exchange.url":      "https://api.exchangerate.host/latest",
		"exchange.fallback": 24.5,
		"exchange.timeout":  "10s",
		"poll.interval":     "30s",
		"operator.workers":  1,
	}
}

// ProcessEnvironmentVariables layers defaults, the optional YAML file named by
// BANCA_CONFIG and BANCA_* variables, in that order.
func ProcessEnvironmentVariables() (*Config, error) {
	return Load(os.Getenv(envConfigFile))
}

func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("config: defaults: %w", err)
	}

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("config: file %s: %w", path, err)
		}
	}

	err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		if s == envConfigFile {
			return ""
		}
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, envPrefix)), "_", ".")
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("config: env: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}

	if cfg.Operator.Workers < 1 {
		cfg.Operator.Workers = 1
	}

	return &cfg, nil
}

// BackendConfigured reports whether the live data backend can be used.
func (c *Config) BackendConfigured() bool {
	return strings.TrimSpace(c.Postgres.Address) != ""
}

// AuthConfigured reports whether the auth provider can be used.
func (c *Config) AuthConfigured() bool {
	return strings.TrimSpace(c.Auth.URL) != "" && strings.TrimSpace(c.Auth.Key) != ""
}

func (c *Config) PostgresDSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.Postgres.Username, c.Postgres.Password),
		Host:     c.Postgres.Address + ":" + c.Postgres.Port,
		Path:     "/" + c.Postgres.DB,
		RawQuery: "sslmode=" + url.QueryEscape(c.Postgres.SSLMode),
	}
	return u.String()
}
