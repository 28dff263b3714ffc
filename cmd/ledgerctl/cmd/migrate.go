package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Janar2510/FUSION-AI-Enterprise-Suite-AI-Driven-modular-ERP-Platform-sub000/internal/platform/sqlite"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or upgrade the ledger schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		conn, err := sqlite.Open(cfg.DBPath, serviceLogger)
		if err != nil {
			return err
		}
		defer conn.Close()

		if err := conn.Migrate(cmd.Context()); err != nil {
			return err
		}
		log.Info("schema migrated", zap.String("db", conn.Path()))
		return nil
	},
}
