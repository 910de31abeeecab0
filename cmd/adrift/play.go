package main

import (
	"github.com/aretw0/adrift/internal/cli"
	"github.com/spf13/cobra"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start an interactive story session",
	Long: `Starts a story session in the terminal. Type 'adrift' to begin, 'exit' to return to the menu
and 'quit' to leave. With --json every rendering step is written as one JSON event per line.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd, true)
		if err != nil {
			return err
		}
		debug, _ := cmd.Flags().GetBool("debug")
		jsonMode, _ := cmd.Flags().GetBool("json")
		plain, _ := cmd.Flags().GetBool("plain")

		return cli.RunPlay(cmd.Context(), cli.PlayOptions{
			Config: cfg,
			Debug:  debug,
			JSON:   jsonMode,
			Plain:  plain,
			In:     cmd.InOrStdin(),
			Out:    cmd.OutOrStdout(),
		})
	},
}

func init() {
	playCmd.Flags().Bool("json", false, "Run in JSON mode (NDJSON input/output)")
	playCmd.Flags().Bool("plain", false, "Disable markdown rendering and the banner")
}
