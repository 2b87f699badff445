package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"usersvc/lib/config"
	"usersvc/shared/logger"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "usersvc",
	Short: "User listing service",
	Long: `usersvc serves GET /api/users, a division-filtered listing of users
joined with their auth, role and division rows.

Configuration comes from an optional YAML file, a .env file and the
process environment.`,
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "YAML config file")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(queryCmd)
}

// loadConfig reads the configuration and points the global logger at it
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}

	logger.Configure(logger.Options{
		Development: cfg.Development(),
		File:        cfg.LogFile,
		Level:       cfg.LogLevel,
	})
	return cfg, nil
}
