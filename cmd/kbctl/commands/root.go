package commands

import (
	"context"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/knowledge-base/internal/app"
	"github.com/heartmarshall/knowledge-base/internal/config"
)

var (
	configPath string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "kbctl",
	Short: "Operate a knowledge base instance",
	Long: `kbctl works directly against the storage configured for the server
(CONFIG_PATH and environment variables, or --config).

It applies database migrations, provisions users, issues access tokens
and prints topic trees, paths and version histories.`,
	Version: app.BuildVersion(),
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

// Execute runs the root command.
func Execute() error {
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file (defaults to CONFIG_PATH or ./config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log storage activity to stderr")

	rootCmd.AddCommand(migrateCmd, seedUsersCmd, tokenCmd, treeCmd, pathCmd, historyCmd)
}

func loadConfig() (*config.Config, error) {
	if configPath != "" {
		return config.LoadFile(configPath)
	}
	return config.Load()
}

func newLogger() *slog.Logger {
	level := "warn"
	if verbose {
		level = "debug"
	}
	return app.NewLogger(config.LogConfig{Level: level, Format: "text"})
}

// withStorage loads configuration, opens storage and hands both to fn.
func withStorage(ctx context.Context, fn func(cfg *config.Config, store *app.Storage, log *slog.Logger) error) error {
	cfg, err := loadConfig()
	if err != nil {
		return failure("Cannot load configuration", err)
	}

	log := newLogger()
	store, err := app.OpenStorage(ctx, cfg, log)
	if err != nil {
		return failure("Cannot open storage", err, "check the storage section of your config and that the backend is reachable")
	}
	defer store.Close() //nolint:errcheck

	return fn(cfg, store, log)
}
