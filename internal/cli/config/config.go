// Package config loads units.yaml and UNITS_* environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/physical-quantities/units/pkg/registry"
)

// FileName is the config file base name, without extension.
const FileName = "units"

// Config represents the units tool configuration
type Config struct {
	Precision   int          `mapstructure:"precision"`
	NoColor     bool         `mapstructure:"no_color"`
	Server      ServerConfig `mapstructure:"server"`
	Store       StoreConfig  `mapstructure:"store"`
	CustomUnits []CustomUnit `mapstructure:"custom_units"`
}

// ServerConfig represents server configuration
type ServerConfig struct {
	Port        int      `mapstructure:"port"`
	Host        string   `mapstructure:"host"`
	CORSOrigins []string `mapstructure:"cors_origins"`
}

// Address returns host:port.
func (s ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// StoreConfig locates the SQLite database of user-defined units. An empty
// Path disables persistence.
type StoreConfig struct {
	Path string `mapstructure:"path"`
}

// CustomUnit is a unit defined in the config file and registered after
// bootstrap.
type CustomUnit struct {
	Name       string  `mapstructure:"name"`
	Expression string  `mapstructure:"expression"`
	Offset     float64 `mapstructure:"offset"`
	Comment    string  `mapstructure:"comment"`
	URL        string  `mapstructure:"url"`
	Prefix     string  `mapstructure:"prefix"`
}

// Definition converts the entry into a registry definition.
func (c CustomUnit) Definition() registry.Definition {
	return registry.Definition{
		Expression: c.Expression,
		Offset:     c.Offset,
		Comment:    c.Comment,
		URL:        c.URL,
	}
}

// Load reads configuration. When path is empty, units.yaml is searched for
// in the working directory and then in $HOME/.config/units; a missing file
// is not an error. An explicit path must exist.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("precision", 6)
	v.SetDefault("no_color", false)
	v.SetDefault("server.port", 8089)
	v.SetDefault("server.host", "localhost")
	v.SetDefault("store.path", "")

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(FileName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "units"))
		}
	}

	v.SetEnvPrefix("UNITS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// validateConfig validates the configuration
func validateConfig(cfg *Config) error {
	if cfg.Precision < 1 || cfg.Precision > 17 {
		return fmt.Errorf("precision must be between 1 and 17, got: %d", cfg.Precision)
	}
	if cfg.Server.Port < 0 || cfg.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 0 and 65535, got: %d", cfg.Server.Port)
	}

	seen := make(map[string]bool, len(cfg.CustomUnits))
	for i, cu := range cfg.CustomUnits {
		if cu.Name == "" {
			return fmt.Errorf("custom_units[%d]: name is required", i)
		}
		if cu.Expression == "" {
			return fmt.Errorf("custom_units[%d] (%s): expression is required", i, cu.Name)
		}
		if seen[cu.Name] {
			return fmt.Errorf("custom_units[%d]: %s is defined twice", i, cu.Name)
		}
		seen[cu.Name] = true
		if _, err := registry.ParsePrefixRange(cu.Prefix); err != nil {
			return fmt.Errorf("custom_units[%d] (%s): %w", i, cu.Name, err)
		}
	}
	return nil
}

// RegisterCustomUnits adds the config's custom units to reg in file order.
func (c *Config) RegisterCustomUnits(reg *registry.Registry) error {
	for _, cu := range c.CustomUnits {
		rng, err := registry.ParsePrefixRange(cu.Prefix)
		if err != nil {
			return fmt.Errorf("custom unit %s: %w", cu.Name, err)
		}
		if err := reg.Define(cu.Name, cu.Definition(), rng); err != nil {
			return fmt.Errorf("custom unit %s: %w", cu.Name, err)
		}
	}
	return nil
}
