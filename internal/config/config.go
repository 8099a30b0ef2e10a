package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Store    StoreConfig    `yaml:"store" mapstructure:"store"`
	Registry RegistryConfig `yaml:"registry" mapstructure:"registry"`
	Resolver ResolverConfig `yaml:"resolver" mapstructure:"resolver"`
	Enrich   EnrichConfig   `yaml:"enrich" mapstructure:"enrich"`
	Log      LogConfig      `yaml:"log" mapstructure:"log"`
}

// StoreConfig configures the results database backend.
type StoreConfig struct {
	Driver      string `yaml:"driver" mapstructure:"driver"`
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
	SQLitePath  string `yaml:"sqlite_path" mapstructure:"sqlite_path"`
}

// RegistryConfig configures where the provider registry and category
// definitions are loaded from.
type RegistryConfig struct {
	Source         string `yaml:"source" mapstructure:"source"` // csv, xlsx, or postgres
	ProvidersPath  string `yaml:"providers_path" mapstructure:"providers_path"`
	CategoriesPath string `yaml:"categories_path" mapstructure:"categories_path"`
	DatabaseURL    string `yaml:"database_url" mapstructure:"database_url"`
}

// ResolverConfig configures the entity resolver.
type ResolverConfig struct {
	FuzzyThreshold float64 `yaml:"fuzzy_threshold" mapstructure:"fuzzy_threshold"`
}

// EnrichConfig configures batch enrichment.
type EnrichConfig struct {
	Concurrency int `yaml:"concurrency" mapstructure:"concurrency"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("TENDER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("store.driver", "sqlite")
	v.SetDefault("store.sqlite_path", "tender-triage.db")
	v.SetDefault("registry.source", "csv")
	v.SetDefault("resolver.fuzzy_threshold", 0.3)
	v.SetDefault("enrich.concurrency", 4)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// Validate checks that the settings a command depends on are present.
func (c *Config) Validate(section string) error {
	switch section {
	case "registry":
		switch c.Registry.Source {
		case "csv", "xlsx":
			if c.Registry.ProvidersPath == "" {
				return eris.New("config: registry.providers_path is required for file sources")
			}
		case "postgres":
			if c.Registry.DatabaseURL == "" {
				return eris.New("config: registry.database_url is required for the postgres source")
			}
		default:
			return eris.Errorf("config: unknown registry source %q", c.Registry.Source)
		}
	case "store":
		switch c.Store.Driver {
		case "postgres":
			if c.Store.DatabaseURL == "" {
				return eris.New("config: store.database_url is required for the postgres driver")
			}
		case "sqlite":
			if c.Store.SQLitePath == "" {
				return eris.New("config: store.sqlite_path is required for the sqlite driver")
			}
		default:
			return eris.Errorf("config: unknown store driver %q", c.Store.Driver)
		}
	}
	return nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
