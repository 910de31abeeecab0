package main

import (
	"fmt"

	"github.com/aretw0/adrift/pkg/modes"
	"github.com/spf13/cobra"
)

var themesCmd = &cobra.Command{
	Use:   "themes",
	Short: "List the adventure themes",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd, false)
		if err != nil {
			return err
		}

		themes, err := modes.DefaultThemes()
		if cfg.ThemesFile != "" {
			themes, err = modes.LoadThemesFile(cfg.ThemesFile)
		}
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		for _, t := range themes {
			fmt.Fprintf(out, "%s. %s - %s\n", t.ID, t.Name, t.Description)
		}
		return nil
	},
}
