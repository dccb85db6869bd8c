package cmd

import (
	"fmt"

	"github.com/aicmt/aicmt/internal/config"
	"github.com/spf13/cobra"
)

var (
	configCmd = &cobra.Command{
		Use:   "config",
		Short: "Manage aicmt configuration",
		Long:  `Manage aicmt configuration: API key, model, relay URL, and language.`,
	}

	configSetCmd = &cobra.Command{
		Use:   "set",
		Short: "Set a configuration value",
	}
)

// settableKeys maps subcommand names to viper keys.
var settableKeys = []struct {
	name  string
	key   string
	short string
}{
	{"apikey", "api_key", "Set the API key for the direct backend"},
	{"apibase", "api_base", "Set a custom API base URL"},
	{"model", "model", "Set the model used for generation"},
	{"relay", "relay_url", "Set the relay fallback base URL"},
	{"lang", "language", "Set the default target language"},
	{"template", "prompt_template", "Set a custom prompt template file"},
}

func init() {
	for _, entry := range settableKeys {
		configSetCmd.AddCommand(&cobra.Command{
			Use:   entry.name + " [value]",
			Short: entry.short,
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				if configErr != nil {
					return fmt.Errorf("configuration error: %w", configErr)
				}
				if err := config.Set(entry.key, args[0]); err != nil {
					return fmt.Errorf("failed to save configuration: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Set %s\n", entry.key)
				return nil
			},
		})
	}

	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(&cobra.Command{
		Use:   "get",
		Short: "Show the resolved configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			if configErr != nil {
				return fmt.Errorf("configuration error: %w", configErr)
			}
			cfg, err := config.GetConfig()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "model: %s\n", cfg.Model)
			fmt.Fprintf(out, "language: %s\n", cfg.Language)
			fmt.Fprintf(out, "relay_url: %s\n", cfg.RelayURL)
			fmt.Fprintf(out, "api_base: %s\n", cfg.APIBase)
			fmt.Fprintf(out, "api_key: %s\n", maskKey(cfg.APIKey))
			if cfg.PromptTemplate != "" {
				fmt.Fprintf(out, "prompt_template: %s\n", cfg.PromptTemplate)
			}
			return nil
		},
	})
}

func maskKey(key string) string {
	if key == "" {
		return "(not set)"
	}
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}
