// Package config loads application configuration with Viper from an
// optional config.json and the environment.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	AI        AIConfig        `mapstructure:"ai"`
	Store     StoreConfig     `mapstructure:"store"`
	Log       LogConfig       `mapstructure:"log"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Timer     TimerConfig     `mapstructure:"timer"`
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	AllowedOrigins  []string      `mapstructure:"allowed_origins"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// AIConfig selects and configures the text model.
type AIConfig struct {
	Provider     string        `mapstructure:"provider"`
	GeminiAPIKey string        `mapstructure:"gemini_api_key"`
	Model        string        `mapstructure:"model"`
	Timeout      time.Duration `mapstructure:"timeout"`
	LocalURL     string        `mapstructure:"local_url"`
	LocalModel   string        `mapstructure:"local_model"`
	LocalAPIKey  string        `mapstructure:"local_api_key"`
}

// StoreConfig selects the persistence backend.
type StoreConfig struct {
	Driver        string `mapstructure:"driver"`
	DatabaseURL   string `mapstructure:"database_url"`
	RedisAddr     string `mapstructure:"redis_addr"`
	RedisPassword string `mapstructure:"redis_password"`
	RedisDB       int    `mapstructure:"redis_db"`
	KeyPrefix     string `mapstructure:"key_prefix"`
}

// LogConfig contains logger configuration
type LogConfig struct {
	Level       string `mapstructure:"level"`
	Format      string `mapstructure:"format"`
	Development bool   `mapstructure:"development"`
}

// RateLimitConfig bounds recipe generation requests.
type RateLimitConfig struct {
	RequestsPerMinute int `mapstructure:"requests_per_minute"`
	Burst             int `mapstructure:"burst"`
}

// TimerConfig controls the cooking timer clock.
type TimerConfig struct {
	TickInterval time.Duration `mapstructure:"tick_interval"`
}

// Provider and driver names.
const (
	ProviderGemini = "gemini"
	ProviderLocal  = "local"

	DriverMemory   = "memory"
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
)

// Load reads config.json from the given directories (the working directory
// when none are given) and overlays environment variables. A missing file
// is not an error. Every key needs a default so AutomaticEnv can see it.
func Load(paths ...string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("json")
	if len(paths) == 0 {
		paths = []string{"."}
	}
	for _, p := range paths {
		v.AddConfigPath(p)
	}

	v.SetEnvPrefix("PANTRYCHEF")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	v.BindEnv("ai.gemini_api_key", "PANTRYCHEF_AI_GEMINI_API_KEY", "GEMINI_API_KEY")
	v.BindEnv("store.database_url", "PANTRYCHEF_STORE_DATABASE_URL", "DATABASE_URL")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.allowed_origins", []string{"http://localhost:3000"})
	v.SetDefault("server.shutdown_timeout", 10*time.Second)

	v.SetDefault("ai.provider", ProviderGemini)
	v.SetDefault("ai.gemini_api_key", "")
	v.SetDefault("ai.model", "gemini-2.5-flash")
	v.SetDefault("ai.timeout", 45*time.Second)
	v.SetDefault("ai.local_url", "http://localhost:1234/v1/chat/completions")
	v.SetDefault("ai.local_model", "gemma-3-12b-it:2")
	v.SetDefault("ai.local_api_key", "lm-studio")

	v.SetDefault("store.driver", DriverMemory)
	v.SetDefault("store.database_url", "")
	v.SetDefault("store.redis_addr", "localhost:6379")
	v.SetDefault("store.redis_password", "")
	v.SetDefault("store.redis_db", 0)
	v.SetDefault("store.key_prefix", "pantrychef:")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("log.development", false)

	v.SetDefault("rate_limit.requests_per_minute", 30)
	v.SetDefault("rate_limit.burst", 5)

	v.SetDefault("timer.tick_interval", time.Second)
}

// Validate checks the enumerated settings.
func (c *Config) Validate() error {
	switch c.AI.Provider {
	case ProviderGemini, ProviderLocal:
	default:
		return fmt.Errorf("unknown ai.provider %q", c.AI.Provider)
	}
	switch c.Store.Driver {
	case DriverMemory, DriverRedis:
	case DriverPostgres:
		if c.Store.DatabaseURL == "" {
			return fmt.Errorf("store.database_url is required for the postgres driver")
		}
	default:
		return fmt.Errorf("unknown store.driver %q", c.Store.Driver)
	}
	if c.Timer.TickInterval <= 0 {
		return fmt.Errorf("timer.tick_interval must be positive")
	}
	return nil
}

// APIKey returns the credential for the configured provider.
func (c *Config) APIKey() string {
	if c.AI.Provider == ProviderLocal {
		return c.AI.LocalAPIKey
	}
	return c.AI.GeminiAPIKey
}

// CredentialName names the setting that holds the provider credential.
func (c *Config) CredentialName() string {
	if c.AI.Provider == ProviderLocal {
		return "PANTRYCHEF_AI_LOCAL_API_KEY"
	}
	return "GEMINI_API_KEY"
}
