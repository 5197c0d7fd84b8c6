// Package config loads metaguard's project configuration.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for metaguard
type Config struct {
	AssetRoot  string   `mapstructure:"asset_root"`
	MetaSuffix string   `mapstructure:"meta_suffix"`
	Exclude    []string `mapstructure:"exclude"`
}

var defaultConfig = Config{
	AssetRoot:  "Assets",
	MetaSuffix: ".meta",
	Exclude:    nil,
}

// Default returns the built-in configuration. Its values match the hook
// contract: pairing enforced under Assets/ with the .meta suffix.
func Default() Config {
	return defaultConfig
}

// Load reads configuration for the repository rooted at dir.
//
// Search order: .metaguard.yaml at the repository root, then environment
// variables prefixed with METAGUARD_. A missing config file is not an error;
// defaults apply.
func Load(dir string) (*Config, error) {
	v := viper.New()

	v.SetDefault("asset_root", defaultConfig.AssetRoot)
	v.SetDefault("meta_suffix", defaultConfig.MetaSuffix)
	v.SetDefault("exclude", defaultConfig.Exclude)

	v.SetConfigName(".metaguard")
	v.SetConfigType("yaml")
	if dir != "" {
		v.AddConfigPath(dir)
	} else {
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("METAGUARD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Config file is optional; defaults apply when absent
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if config.AssetRoot == "" {
		config.AssetRoot = defaultConfig.AssetRoot
	}
	if config.MetaSuffix == "" {
		config.MetaSuffix = defaultConfig.MetaSuffix
	}

	return &config, nil
}
