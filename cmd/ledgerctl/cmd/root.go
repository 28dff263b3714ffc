// Package cmd provides the ledgerctl commands.
package cmd

import (
	"context"
	"log/slog"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/Janar2510/FUSION-AI-Enterprise-Suite-AI-Driven-modular-ERP-Platform-sub000/internal/app"
	"github.com/Janar2510/FUSION-AI-Enterprise-Suite-AI-Driven-modular-ERP-Platform-sub000/internal/common/config"
)

var (
	envFile string
	dbPath  string
	debug   bool

	// log is the console logger of the CLI itself
	log *zap.Logger
	// serviceLogger is handed to the ledger services
	serviceLogger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "ledgerctl",
	Short: "Operate the general ledger",
	Long: `ledgerctl manages a general-ledger database from the command line.

Example:
  ledgerctl migrate
  ledgerctl seed-accounts --company acme
  ledgerctl balance-sheet --company acme --as-of 2024-12-31
  ledgerctl serve`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := zapcore.InfoLevel
		slogLevel := slog.LevelInfo
		if debug {
			level = zapcore.DebugLevel
			slogLevel = slog.LevelDebug
		}

		zapConfig := zap.NewDevelopmentConfig()
		zapConfig.Level = zap.NewAtomicLevelAt(level)
		zapConfig.DisableStacktrace = !debug
		logger, err := zapConfig.Build()
		if err != nil {
			return err
		}
		log = logger

		serviceLogger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slogLevel}))
		slog.SetDefault(serviceLogger)

		return config.LoadDotEnv(envFile)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if log != nil {
			_ = log.Sync()
		}
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file to load before reading the environment")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "ledger database path (overrides LEDGER_DB_PATH)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedAccountsCmd)
	rootCmd.AddCommand(balanceSheetCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(sequenceCmd)
}

// loadConfig reads the environment and applies flag overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadFromEnv()
	if err != nil {
		return nil, err
	}
	if dbPath != "" {
		cfg.DBPath = dbPath
	}
	return cfg, nil
}

// openApp builds the ledger for one command.
func openApp(ctx context.Context, reg prometheus.Registerer) (*app.App, *config.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	log.Debug("opening ledger", zap.String("db", cfg.DBPath), zap.String("sequenceStore", cfg.SequenceStore))
	a, err := app.Build(ctx, cfg, serviceLogger, reg)
	if err != nil {
		return nil, nil, err
	}
	return a, cfg, nil
}
