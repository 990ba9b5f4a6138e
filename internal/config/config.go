package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config is the process configuration for both the server and the updater.
// DATABASE_URL (or database_url in the config file) is required.
type Config struct {
	Port               int      `mapstructure:"port"`
	DatabaseURL        string   `mapstructure:"database_url"`
	LogLevel           string   `mapstructure:"log_level"`
	AllowedOrigins     []string `mapstructure:"allowed_origins"`
	RequestTimeoutSec  int      `mapstructure:"request_timeout_sec"`
	ShutdownTimeoutSec int      `mapstructure:"shutdown_timeout_sec"`
	K8sTimeoutSec      int      `mapstructure:"k8s_timeout_sec"` // timeout per outbound K8s API call during enrichment
}

func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("/etc/nautilus/")
	viper.AddConfigPath("$HOME/.nautilus")
	viper.AddConfigPath(".")

	viper.SetDefault("port", 5000)
	viper.SetDefault("log_level", "info")
	viper.SetDefault("allowed_origins", []string{"*"})
	viper.SetDefault("request_timeout_sec", 30)
	viper.SetDefault("shutdown_timeout_sec", 15)
	viper.SetDefault("k8s_timeout_sec", 30)

	viper.SetEnvPrefix("NAUTILUS")
	viper.AutomaticEnv()
	// DATABASE_URL is the conventional unprefixed variable.
	_ = viper.BindEnv("database_url", "NAUTILUS_DATABASE_URL", "DATABASE_URL")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		// Config file not found; defaults and env vars apply.
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	return &cfg, nil
}
