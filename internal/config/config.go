// Package config loads tool configuration from a YAML file and the
// environment via viper.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config is the resolved application configuration.
type Config struct {
	APIKey   string `mapstructure:"api_key"`
	APIBase  string `mapstructure:"api_base"`
	Model    string `mapstructure:"model"`
	RelayURL string `mapstructure:"relay_url"`
	Language string `mapstructure:"language"`
	// PromptTemplate optionally points at a YAML template file.
	PromptTemplate string `mapstructure:"prompt_template"`
}

const (
	DefaultModel      = "gpt-4o-mini"
	DefaultRelayURL   = "https://relay.aicmt.dev"
	DefaultLanguage   = "english"
	DefaultConfigName = ".aicmt"

	// APIKeyEnv selects the direct backend when set.
	APIKeyEnv = "OPENAI_API_KEY"
)

// InitConfig wires viper to the config file. When cfgFile is empty the
// default $HOME/.aicmt.yaml is used; a missing file is not an error, the
// defaults and environment still apply.
func InitConfig(cfgFile string) error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("unable to locate home directory: %w", err)
		}
		viper.AddConfigPath(home)
		viper.SetConfigName(DefaultConfigName)
		viper.SetConfigType("yaml")
	}

	viper.SetDefault("api_key", "")
	viper.SetDefault("api_base", "")
	viper.SetDefault("model", DefaultModel)
	viper.SetDefault("relay_url", DefaultRelayURL)
	viper.SetDefault("language", DefaultLanguage)
	viper.SetDefault("prompt_template", "")

	if err := viper.BindEnv("api_key", APIKeyEnv); err != nil {
		return err
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return nil
		}
		return fmt.Errorf("unable to read config file: %w", err)
	}
	return nil
}

// GetConfig unmarshals the current viper state.
func GetConfig() (*Config, error) {
	cfg := &Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unable to parse configuration: %w", err)
	}
	return cfg, nil
}

// Set persists a single key to the config file, creating the file when it
// does not exist yet.
func Set(key, value string) error {
	viper.Set(key, value)

	if err := viper.WriteConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return err
		}
		home, homeErr := os.UserHomeDir()
		if homeErr != nil {
			return fmt.Errorf("unable to locate home directory: %w", homeErr)
		}
		return viper.WriteConfigAs(filepath.Join(home, DefaultConfigName+".yaml"))
	}
	return nil
}
