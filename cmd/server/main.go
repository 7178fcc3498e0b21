package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"sparc/config"
	"sparc/database"
	"sparc/pkg/calendar"
	"sparc/pkg/logging"
)

// app is filled in by the root command before any subcommand runs.
type app struct {
	cfg config.AppConfig
	log *zap.Logger
	loc *time.Location
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}
	var dbPath string

	root := &cobra.Command{
		Use:           "sparc",
		Short:         "SPARC stewardship activity time logging service",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, dotenv := config.Load()
			if dbPath != "" {
				cfg.DBPath = dbPath
			}
			log, err := logging.New(cfg.LogLevel, cfg.LogJSON)
			if err != nil {
				return err
			}
			if !dotenv {
				log.Debug("no .env file loaded")
			}
			loc, err := calendar.LoadLocation(cfg.Timezone)
			if err != nil {
				log.Warn("falling back to UTC", zap.Error(err))
			}
			a.cfg, a.log, a.loc = cfg, log, loc
			log.Info("config", cfg.Fields()...)
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.log != nil {
				_ = a.log.Sync()
			}
		},
	}
	root.PersistentFlags().StringVar(&dbPath, "db", "", "path to the SQLite database (overrides DB_PATH)")

	serve := newServeCmd(a)
	root.AddCommand(serve, newMigrateCmd(a), newExportCmd(a))
	root.RunE = serve.RunE
	return root
}

func (a *app) openDB() (*gorm.DB, error) {
	db, err := database.OpenSQLite(a.cfg.DBPath)
	if err != nil {
		return nil, err
	}
	a.log.Info("database ready", zap.String("path", a.cfg.DBPath))
	return db, nil
}

func newMigrateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or upgrade the database schema and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := a.openDB()
			if err != nil {
				return err
			}
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.Close()
		},
	}
}
