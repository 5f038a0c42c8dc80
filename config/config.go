package config

import (
	"log/slog"
	"net"
	"net/url"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/spf13/viper"
)

const (
	EnvDev     = "dev"
	EnvStaging = "staging"
	EnvProd    = "prod"
)

const (
	LogLevelDebug = "debug"
	LogLevelInfo  = "info"
	LogLevelWarn  = "warn"
	LogLevelError = "error"
)

const (
	StrategyRandom     = "random"
	StrategyRoundRobin = "round-robin"
)

type ServerConfig struct {
	Address     string `mapstructure:"address"`
	Environment string `mapstructure:"environment"`
}

type HealthCheckConfig struct {
	Interval string `mapstructure:"interval"`
	Timeout  string `mapstructure:"timeout"`
}

type SelectionConfig struct {
	Strategy string `mapstructure:"strategy"`
}

type ProviderConfig struct {
	Name string `mapstructure:"name"`
	URL  string `mapstructure:"url"`
}

type InferenceConfig struct {
	Timeout            string  `mapstructure:"timeout"`
	DefaultMaxTokens   int     `mapstructure:"default_max_tokens"`
	MaxTokens          int     `mapstructure:"max_tokens"`
	DefaultTemperature float64 `mapstructure:"default_temperature"`
}

type LoggingConfig struct {
	Level string `mapstructure:"level"`
}

type Config struct {
	Server      ServerConfig      `mapstructure:"server"`
	HealthCheck HealthCheckConfig `mapstructure:"health_check"`
	Selection   SelectionConfig   `mapstructure:"selection"`
	Providers   []ProviderConfig  `mapstructure:"providers"`
	Inference   InferenceConfig   `mapstructure:"inference"`
	Logging     LoggingConfig     `mapstructure:"logging"`
}

func Load() (*Config, error) {
	viper.SetDefault("server.environment", EnvDev)
	viper.SetDefault("server.address", ":8080")
	viper.SetDefault("health_check.interval", "30s")
	viper.SetDefault("health_check.timeout", "5s")
	viper.SetDefault("selection.strategy", StrategyRandom)
	viper.SetDefault("inference.timeout", "30s")
	viper.SetDefault("inference.default_max_tokens", 100)
	viper.SetDefault("inference.max_tokens", 2048)
	viper.SetDefault("inference.default_temperature", 0.7)
	viper.SetDefault("logging.level", LogLevelInfo)
	viper.SetDefault("providers", []map[string]interface{}{
		{"name": "aws", "url": "http://model-service-aws:8001"},
		{"name": "gcp", "url": "http://model-service-gcp:8002"},
		{"name": "azure", "url": "http://model-service-azure:8003"},
	})

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			slog.Error("failed to read config file", slog.String("error", err.Error()))
			return nil, err
		}
		slog.Info("config file not found, using defaults and environment variables")
	} else {
		slog.Info("loaded config file", slog.String("file", viper.ConfigFileUsed()))
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		slog.Error("failed to unmarshal config", slog.String("error", err.Error()))
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", slog.String("error", err.Error()))
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Server,
			validation.Required,
			validation.By(func(value interface{}) error {
				sc, ok := value.(ServerConfig)
				if !ok {
					return validation.NewError("validation_invalid_type", "must be a ServerConfig")
				}
				return validation.ValidateStruct(&sc,
					validation.Field(&sc.Environment,
						validation.Required,
						validation.In(EnvDev, EnvStaging, EnvProd),
					),
					validation.Field(&sc.Address,
						validation.Required,
						validation.By(validateHostPort),
					),
				)
			}),
		),
		validation.Field(&c.Logging,
			validation.Required,
			validation.By(func(value interface{}) error {
				lc, ok := value.(LoggingConfig)
				if !ok {
					return validation.NewError("validation_invalid_type", "must be a LoggingConfig")
				}
				return validation.ValidateStruct(&lc,
					validation.Field(&lc.Level,
						validation.Required,
						validation.In(LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError),
					),
				)
			}),
		),
		validation.Field(&c.HealthCheck,
			validation.Required,
			validation.By(func(value interface{}) error {
				hc, ok := value.(HealthCheckConfig)
				if !ok {
					return validation.NewError("validation_invalid_type", "must be a HealthCheckConfig")
				}
				return validation.ValidateStruct(&hc,
					validation.Field(&hc.Interval,
						validation.Required,
						validation.By(validateDuration),
					),
					validation.Field(&hc.Timeout,
						validation.Required,
						validation.By(validateDuration),
					),
				)
			}),
		),
		validation.Field(&c.Selection,
			validation.Required,
			validation.By(func(value interface{}) error {
				sc, ok := value.(SelectionConfig)
				if !ok {
					return validation.NewError("validation_invalid_type", "must be a SelectionConfig")
				}
				return validation.ValidateStruct(&sc,
					validation.Field(&sc.Strategy,
						validation.Required,
						validation.In(StrategyRandom, StrategyRoundRobin),
					),
				)
			}),
		),
		validation.Field(&c.Inference,
			validation.Required,
			validation.By(func(value interface{}) error {
				ic, ok := value.(InferenceConfig)
				if !ok {
					return validation.NewError("validation_invalid_type", "must be an InferenceConfig")
				}
				return validation.ValidateStruct(&ic,
					validation.Field(&ic.Timeout,
						validation.Required,
						validation.By(validateDuration),
					),
					validation.Field(&ic.DefaultMaxTokens,
						validation.Required,
						validation.Min(1),
						validation.Max(ic.MaxTokens),
					),
					validation.Field(&ic.MaxTokens,
						validation.Required,
						validation.Min(1),
					),
					validation.Field(&ic.DefaultTemperature,
						validation.Min(0.0),
						validation.Max(2.0),
					),
				)
			}),
		),
		validation.Field(&c.Providers,
			validation.Required,
			validation.Length(1, 0),
			validation.Each(validation.By(validateProviderConfig)),
			validation.By(validateUniqueProviderNames),
		),
	)
}

func validateHostPort(value interface{}) error {
	addr, ok := value.(string)
	if !ok {
		return validation.NewError("validation_invalid_type", "must be a string")
	}

	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return validation.NewError("validation_invalid_hostport", "must be in host:port format")
	}

	if port == "" {
		return validation.NewError("validation_invalid_port", "port cannot be empty")
	}

	if host != "" {
		if err := is.Host.Validate(host); err != nil {
			return validation.NewError("validation_invalid_host", "invalid host")
		}
	}

	return nil
}

func validateDuration(value interface{}) error {
	durationStr, ok := value.(string)
	if !ok {
		return validation.NewError("validation_invalid_type", "must be a string")
	}

	if _, err := time.ParseDuration(durationStr); err != nil {
		return validation.NewError("validation_invalid_duration", "must be a valid duration (e.g., 5s, 30s, 1m)")
	}

	return nil
}

func validateProviderConfig(value interface{}) error {
	pc, ok := value.(ProviderConfig)
	if !ok {
		return validation.NewError("validation_invalid_type", "must be a ProviderConfig")
	}

	if pc.Name == "" {
		return validation.NewError("validation_empty_name", "provider name cannot be empty")
	}

	if pc.URL == "" {
		return validation.NewError("validation_empty_url", "provider URL cannot be empty")
	}

	parsedURL, err := url.Parse(pc.URL)
	if err != nil {
		return validation.NewError("validation_invalid_url", "must be a valid URL")
	}

	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return validation.NewError("validation_invalid_scheme", "URL must use http or https scheme")
	}

	if parsedURL.Host == "" {
		return validation.NewError("validation_missing_host", "URL must have a host")
	}

	return nil
}

func validateUniqueProviderNames(value interface{}) error {
	providers, ok := value.([]ProviderConfig)
	if !ok {
		return validation.NewError("validation_invalid_type", "must be a provider list")
	}

	seen := make(map[string]bool, len(providers))
	for _, p := range providers {
		if seen[p.Name] {
			return validation.NewError("validation_duplicate_name", "provider names must be unique")
		}
		seen[p.Name] = true
	}

	return nil
}
