// Package config loads the tool's settings from defaults, an optional
// jobpilot.yaml, the environment and command-line flags, in increasing
// precedence.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jonathan/jobpilot/internal/ingestion"
	"github.com/jonathan/jobpilot/internal/llm"
	"github.com/jonathan/jobpilot/internal/store"
	"github.com/jonathan/jobpilot/internal/types"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. JOBPILOT_STORE_BACKEND.
const EnvPrefix = "JOBPILOT"

// Config is the full tool configuration.
type Config struct {
	Store  StoreConfig  `mapstructure:"store"`
	LLM    LLMConfig    `mapstructure:"llm"`
	Search SearchConfig `mapstructure:"search"`
	Log    LogConfig    `mapstructure:"log"`
	Server ServerConfig `mapstructure:"server"`
	Photo  PhotoConfig  `mapstructure:"photo"`
	Leads  LeadsConfig  `mapstructure:"leads"`
	Fetch  FetchConfig  `mapstructure:"fetch"`
}

type StoreConfig struct {
	Backend       string `mapstructure:"backend"`
	SQLitePath    string `mapstructure:"sqlite_path"`
	RedisAddr     string `mapstructure:"redis_addr"`
	RedisPassword string `mapstructure:"redis_password"`
	RedisDB       int    `mapstructure:"redis_db"`
	RedisPrefix   string `mapstructure:"redis_prefix"`
	PostgresURL   string `mapstructure:"postgres_url"`
}

type LLMConfig struct {
	APIKey      string     `mapstructure:"api_key"`
	Models      llm.Models `mapstructure:"models"`
	Temperature float32    `mapstructure:"temperature"`
}

// SearchConfig enables web grounding of the advisor chat. Grounding is off
// when CX is empty.
type SearchConfig struct {
	APIKey string `mapstructure:"api_key"`
	CX     string `mapstructure:"cx"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type ServerConfig struct {
	Port        int      `mapstructure:"port"`
	CORSOrigins []string `mapstructure:"cors_origins"`
}

type PhotoConfig struct {
	MaxBytes int64 `mapstructure:"max_bytes"`
}

type LeadsConfig struct {
	DenyGenericDomains  bool     `mapstructure:"deny_generic_domains"`
	GenericEmailDomains []string `mapstructure:"generic_email_domains"`
}

type FetchConfig struct {
	UseBrowser bool `mapstructure:"use_browser"`
}

// FlagKeys maps command-line flag names to configuration keys.
var FlagKeys = map[string]string{
	"backend":    "store.backend",
	"db":         "store.sqlite_path",
	"log-level":  "log.level",
	"log-format": "log.format",
	"port":       "server.port",
	"browser":    "fetch.use_browser",
}

func setDefaults(v *viper.Viper) {
	defaults := llm.DefaultGeminiConfig()
	models := defaults.Models

	v.SetDefault("store.backend", store.BackendSQLite)
	v.SetDefault("store.sqlite_path", "jobpilot.db")
	v.SetDefault("store.redis_addr", "localhost:6379")
	v.SetDefault("store.redis_password", "")
	v.SetDefault("store.redis_db", 0)
	v.SetDefault("store.redis_prefix", "jobpilot:")
	v.SetDefault("store.postgres_url", "")
	v.SetDefault("llm.api_key", "")
	v.SetDefault("llm.models.lite", models.Lite)
	v.SetDefault("llm.models.standard", models.Standard)
	v.SetDefault("llm.models.advanced", models.Advanced)
	v.SetDefault("llm.models.image", models.Image)
	v.SetDefault("llm.temperature", defaults.Temperature)
	v.SetDefault("search.api_key", "")
	v.SetDefault("search.cx", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.cors_origins", []string{"*"})
	v.SetDefault("photo.max_bytes", ingestion.DefaultMaxImageBytes)
	v.SetDefault("leads.deny_generic_domains", true)
	v.SetDefault("leads.generic_email_domains", types.DefaultGenericEmailDomains())
	v.SetDefault("fetch.use_browser", false)
}

// LoadConfig reads the configuration. An empty path searches for
// jobpilot.yaml in ".", "./configs" and "$HOME/.jobpilot" and tolerates its
// absence; an explicit path must exist. Flags named in FlagKeys override
// everything else when they were set on the command line.
func LoadConfig(path string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("jobpilot")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		v.AddConfigPath("$HOME/.jobpilot")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// Conventional names used by the hosted services, accepted alongside the prefixed ones.
	_ = v.BindEnv("llm.api_key", EnvPrefix+"_LLM_API_KEY", "GEMINI_API_KEY")
	_ = v.BindEnv("search.api_key", EnvPrefix+"_SEARCH_API_KEY", "GOOGLE_SEARCH_API_KEY")
	_ = v.BindEnv("search.cx", EnvPrefix+"_SEARCH_CX", "GOOGLE_SEARCH_CX")
	_ = v.BindEnv("store.postgres_url", EnvPrefix+"_STORE_POSTGRES_URL", "DATABASE_URL")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if flags != nil {
		for name, key := range FlagKeys {
			if f := flags.Lookup(name); f != nil && f.Changed {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("failed to bind flag %s: %w", name, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &cfg, nil
}

// Validate checks that the configuration has valid values. The API key is
// not required here since commands that never call the model can run without it.
func (c *Config) Validate() error {
	switch c.Store.Backend {
	case store.BackendMemory:
	case store.BackendSQLite:
		if strings.TrimSpace(c.Store.SQLitePath) == "" {
			return fmt.Errorf("config error: 'store.sqlite_path' is required for the sqlite backend")
		}
	case store.BackendRedis:
		if strings.TrimSpace(c.Store.RedisAddr) == "" {
			return fmt.Errorf("config error: 'store.redis_addr' is required for the redis backend")
		}
		if c.Store.RedisDB < 0 {
			return fmt.Errorf("config error: 'store.redis_db' must be non-negative")
		}
	case store.BackendPostgres:
		if strings.TrimSpace(c.Store.PostgresURL) == "" {
			return fmt.Errorf("config error: 'store.postgres_url' is required for the postgres backend")
		}
	default:
		return fmt.Errorf("config error: unknown store backend %q (want memory, sqlite, redis or postgres)", c.Store.Backend)
	}

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("config error: 'server.port' must be between 1 and 65535")
	}
	if c.Photo.MaxBytes < 0 {
		return fmt.Errorf("config error: 'photo.max_bytes' must be non-negative")
	}
	if c.Search.CX != "" && c.Search.APIKey == "" {
		return fmt.Errorf("config error: 'search.api_key' is required when 'search.cx' is set")
	}
	if err := c.ModelConfig().Validate(); err != nil {
		return fmt.Errorf("config error: llm: %w", err)
	}
	return nil
}

// RequireAPIKey reports a missing model API key.
func (c *Config) RequireAPIKey() error {
	if strings.TrimSpace(c.LLM.APIKey) == "" {
		return fmt.Errorf("config error: model API key is not set (GEMINI_API_KEY or llm.api_key)")
	}
	return nil
}

// StoreOptions returns the options for store.Open.
func (c *Config) StoreOptions() store.Options {
	return store.Options{
		Backend:    c.Store.Backend,
		SQLitePath: c.Store.SQLitePath,
		Redis: store.RedisOptions{
			Addr:     c.Store.RedisAddr,
			Password: c.Store.RedisPassword,
			DB:       c.Store.RedisDB,
			Prefix:   c.Store.RedisPrefix,
		},
		PostgresURL: c.Store.PostgresURL,
	}
}

// ModelConfig returns the model tiers, with unset tiers left at their defaults.
func (c *Config) ModelConfig() *llm.Config {
	cfg := llm.DefaultGeminiConfig().WithModels(c.LLM.Models)
	cfg.Temperature = c.LLM.Temperature
	return cfg
}

// SearchEnabled reports whether chat grounding is configured.
func (c *Config) SearchEnabled() bool {
	return c.Search.CX != "" && c.Search.APIKey != ""
}

// EmailPolicy returns the contact classification policy for leads.
func (c *Config) EmailPolicy() types.EmailPolicy {
	return types.EmailPolicy{
		DenyGenericDomains: c.Leads.DenyGenericDomains,
		GenericDomains:     c.Leads.GenericEmailDomains,
	}
}
