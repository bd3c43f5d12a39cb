package config

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
)

// Loader handles configuration loading
type Loader struct {
	configPath string
}

// NewLoader creates a new config loader
func NewLoader(configPath string) *Loader {
	return &Loader{
		configPath: configPath,
	}
}

// Load loads the configuration. A missing file yields the defaults;
// an existing file is schema-validated, merged over the defaults and
// value-validated. Environment variables with the ROADSCOUT prefix
// override file values.
func (l *Loader) Load() (*Config, error) {
	cfg := DefaultConfig()

	if l.configPath != "" {
		if _, err := os.Stat(l.configPath); err == nil {
			data, err := os.ReadFile(l.configPath)
			if err != nil {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
			if err := validateSchema(data); err != nil {
				return nil, fmt.Errorf("config schema validation failed: %w", err)
			}

			v := viper.New()
			v.SetConfigFile(l.configPath)
			v.SetConfigType("json")
			v.SetEnvPrefix("ROADSCOUT")
			v.AutomaticEnv()

			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
			if err := v.Unmarshal(cfg); err != nil {
				return nil, fmt.Errorf("failed to unmarshal config: %w", err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to stat config file: %w", err)
		}
	}

	if err := NewValidator().Validate(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}
