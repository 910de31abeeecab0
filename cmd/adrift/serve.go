package main

import (
	"github.com/aretw0/adrift/internal/cli"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long: `Serves story sessions over a JSON API. Each session keeps its own state in memory;
the busy guard can be shared through Redis.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd, true)
		if err != nil {
			return err
		}
		flags := cmd.Flags()
		if flags.Changed("port") {
			cfg.Port, _ = flags.GetInt("port")
		}
		if flags.Changed("redis") {
			cfg.RedisURL, _ = flags.GetString("redis")
		}
		debug, _ := flags.GetBool("debug")

		return cli.RunServe(cmd.Context(), cli.ServeOptions{
			Config: cfg,
			Debug:  debug,
		})
	},
}

func init() {
	serveCmd.Flags().IntP("port", "p", 8080, "Port to listen on (overrides ADRIFT_PORT)")
	serveCmd.Flags().String("redis", "", "Redis URL for the busy guard (overrides ADRIFT_REDIS_URL)")
}
