// Package config loads application configuration from a YAML file,
// environment variables, and defaults, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/jonesrussell/scrapefeed/internal/logger"
)

// Default configuration values.
const (
	defaultServerAddress = ":8070"
	defaultReadTimeout   = 15 * time.Second
	defaultWriteTimeout  = 15 * time.Second
	defaultIdleTimeout   = 60 * time.Second
)

// Config is the application configuration.
type Config struct {
	App       AppConfig       `mapstructure:"app"`
	Logger    logger.Config   `mapstructure:"logger"`
	Server    ServerConfig    `mapstructure:"server"`
	Extractor ExtractorConfig `mapstructure:"extractor"`
}

// AppConfig holds application-level settings.
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Environment string `mapstructure:"environment"`
	Debug       bool   `mapstructure:"debug"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Address      string        `mapstructure:"address"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
}

// ExtractorConfig holds extraction tuning. The class deny prefixes
// extend the synthesizer's built-in heuristics; they are heuristics,
// not invariants, so sites with unusual markup can override them.
type ExtractorConfig struct {
	DenyClassPrefixes []string `mapstructure:"deny_class_prefixes"`
	DateFormats       []string `mapstructure:"date_formats"`
	ProfilesFile      string   `mapstructure:"profiles_file"`
}

// Load reads the configuration. A missing config file is fine unless
// the caller named one explicitly; environment variables and defaults
// cover the rest. A .env file is loaded first when present.
func Load(cfgFile string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	bindEnvVars(v)
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if cfgFile != "" {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.App.Debug {
		cfg.Logger.Level = logger.DebugLevel
	}

	return &cfg, nil
}

// bindEnvVars maps well-known environment variables to config keys.
func bindEnvVars(v *viper.Viper) {
	_ = v.BindEnv("app.environment", "APP_ENV")
	_ = v.BindEnv("app.debug", "APP_DEBUG")
	_ = v.BindEnv("logger.level", "LOG_LEVEL")
	_ = v.BindEnv("logger.encoding", "LOG_FORMAT")
	_ = v.BindEnv("server.address", "SERVER_ADDRESS")
	_ = v.BindEnv("extractor.profiles_file", "SCRAPEFEED_PROFILES")
}

// setDefaults sets production-safe default values.
func setDefaults(v *viper.Viper) {
	v.SetDefault("app", map[string]any{
		"name":        "scrapefeed",
		"environment": "production",
		"debug":       false,
	})

	v.SetDefault("logger", map[string]any{
		"level":       "info",
		"encoding":    "json",
		"development": false,
	})

	v.SetDefault("server", map[string]any{
		"address":       defaultServerAddress,
		"read_timeout":  defaultReadTimeout.String(),
		"write_timeout": defaultWriteTimeout.String(),
		"idle_timeout":  defaultIdleTimeout.String(),
	})

	v.SetDefault("extractor", map[string]any{
		"deny_class_prefixes": []string{},
		"date_formats": []string{
			"%Y-%m-%d %H:%M:%S",
			"%Y-%m-%d %H:%M",
			"%Y-%m-%d",
		},
		"profiles_file": "profiles.yml",
	})
}
