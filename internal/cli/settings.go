package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"github.com/stackfield/agentstudio/provider"
)

// Settings are the CLI-level defaults, resolved from (highest precedence
// first) AGENTSTUDIO_* environment variables, an agentstudio.yaml config
// file, and built-in defaults.
type Settings struct {
	// Model is the default model for runs and the normalization pass.
	Model string `mapstructure:"model"`
	// MaxTokens is the default response budget.
	MaxTokens int `mapstructure:"max_tokens"`
	// Temperature applies to every dispatch.
	Temperature float64 `mapstructure:"temperature"`
	// Catalog is an optional path to an agents.yaml merged over the builtins.
	Catalog string `mapstructure:"catalog"`
	// Home is the state directory holding the CLI run history.
	Home string `mapstructure:"home"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `mapstructure:"log_level"`
}

// LoadSettings reads configuration from configPath, or from agentstudio.yaml
// in the working directory or ~/.agentstudio when no path is given. A missing
// config file is not an error; environment variables and defaults apply.
func LoadSettings(configPath string) (Settings, error) {
	v := viper.New()
	v.SetDefault("model", "gpt-4o-mini")
	v.SetDefault("max_tokens", provider.DefaultMaxTokens)
	v.SetDefault("temperature", provider.DefaultTemperature)
	v.SetDefault("catalog", "")
	v.SetDefault("home", defaultHome())
	v.SetDefault("log_level", "warn")

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("agentstudio")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".agentstudio"))
		}
	}

	v.SetEnvPrefix("AGENTSTUDIO")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Settings{}, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return Settings{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return s, nil
}

func defaultHome() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".agentstudio"
	}
	return filepath.Join(home, ".agentstudio")
}
