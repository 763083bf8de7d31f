// Command sitectl runs maintenance tasks against the site database.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/sitecms/internal/config"
	"github.com/sitecms/internal/db"
	"github.com/sitecms/internal/logging"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	cfg    config.AppConfig
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "sitectl",
	Short: "Maintenance commands for the site database",
	Long: `sitectl shares its configuration with the server: DATABASE_DRIVER,
DATABASE_PATH and DATABASE_URL (or a .env file) select the database.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg = config.Load()

		var err error
		logger, err = logging.New(cfg.LogLevel, "debug")
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		// 初始化数据库
		if err := db.Init(cfg.DatabaseDriver, cfg.DSN()); err != nil {
			return fmt.Errorf("failed to initialize database: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database tables",
	RunE: func(cmd *cobra.Command, args []string) error {
		// Init already migrated; report what is there.
		logger.Info("schema up to date", zap.String("driver", cfg.DatabaseDriver), zap.Int("tables", len(db.Models())))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd, createUserCmd, seedCmd)
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
