package main

import (
	"fmt"
	"os"
	"time"

	"github.com/aretw0/adrift/internal/config"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "adrift",
	Short: "Adrift is an interactive storyteller for your terminal",
	Long: `Adrift tells branching stories with the help of a chat-completion model.
Wander through a relaxing tale, learn about yourself in Evaluate mode or embark on a themed Adventure.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	flags := rootCmd.PersistentFlags()
	flags.String("env-file", ".env", "Dotenv file read before the environment")
	flags.String("model", "", "Chat-completion model (overrides ADRIFT_MODEL)")
	flags.String("api-url", "", "Base URL of an OpenAI-compatible API (overrides ADRIFT_API_URL)")
	flags.Duration("timeout", 0, "Deadline of each completion request (overrides ADRIFT_TIMEOUT)")
	flags.String("themes", "", "YAML file replacing the adventure themes (overrides ADRIFT_THEMES)")
	flags.Bool("debug", false, "Enable debug logging to stderr")

	rootCmd.AddCommand(playCmd, serveCmd, themesCmd, versionCmd)

	// 'play' is the default when no command is provided
	rootCmd.RunE = playCmd.RunE
	rootCmd.Flags().AddFlagSet(playCmd.Flags())
}

// loadConfig reads the environment and applies the flags that were set explicitly.
func loadConfig(cmd *cobra.Command, requireKey bool) (*config.Config, error) {
	envFile, _ := cmd.Flags().GetString("env-file")
	cfg, err := config.Load(envFile)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("model") {
		cfg.Model, _ = flags.GetString("model")
	}
	if flags.Changed("api-url") {
		cfg.APIURL, _ = flags.GetString("api-url")
	}
	if flags.Changed("timeout") {
		var timeout time.Duration
		timeout, _ = flags.GetDuration("timeout")
		cfg.Timeout = timeout
	}
	if flags.Changed("themes") {
		cfg.ThemesFile, _ = flags.GetString("themes")
	}

	if requireKey {
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}
