package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/adrift"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of adrift",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "adrift version %s\n", strings.TrimSpace(adrift.Version))
	},
}
