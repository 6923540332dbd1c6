// Package config holds application-wide configuration loaded via viper.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/viper"
)

// Version is set at build time.
var Version = "dev"

// Config holds application-wide configuration.
type Config struct {
	// WebServiceURL is the broker's admin endpoint, eg "http://localhost:8080".
	WebServiceURL string `mapstructure:"webServiceURL"`
	// ConnectorID stamps the handles produced by this instance.
	ConnectorID string `mapstructure:"connectorID"`
	// NamespaceDelimiterRewrite replaces "/" in exposed schema names.
	// Empty disables rewriting.
	NamespaceDelimiterRewrite string        `mapstructure:"namespaceDelimiterRewrite"`
	HTTPTimeout               time.Duration `mapstructure:"httpTimeout"`
	MaxRetries                uint64        `mapstructure:"maxRetries"`
	MetricsAddr               string        `mapstructure:"metricsAddr"`
}

// Default returns the configuration defaults.
func Default() Config {
	return Config{
		WebServiceURL: "http://localhost:8080",
		ConnectorID:   "pulsar-" + uuid.NewString()[:8],
		HTTPTimeout:   30 * time.Second,
		MaxRetries:    3,
		MetricsAddr:   ":9100",
	}
}

// Load reads config from file or environment.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("pulsarsql")
		v.SetConfigType("yaml")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config"))
		}
		v.AddConfigPath(".")
	}

	v.AutomaticEnv()
	v.SetEnvPrefix("PULSARSQL")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := Default()
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	return &cfg, nil
}
