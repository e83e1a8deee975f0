package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/limaJavier/labscheduling/internal/config"
	"github.com/limaJavier/labscheduling/internal/logger"
	"github.com/limaJavier/labscheduling/internal/store"
)

const (
	exitError       = 1
	exitSolved      = 10
	exitUnverified  = 15
	exitInfeasible  = 20
	exitSearchLimit = 30
)

type cli struct {
	out io.Writer

	flagEnvFile  string
	flagDatabase string
	flagLogLevel string

	cfg      *config.Config
	logger   *zap.Logger
	exitCode int
}

func main() {
	app := &cli{out: os.Stdout}
	if err := app.rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitError)
	}
	os.Exit(app.exitCode)
}

func (app *cli) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "labsched",
		Short: "Lab scheduler for paired-day courses",
		Long:  "labsched assigns every course a day, timeslot, lab and lecturer, pairing Monday with Wednesday and Tuesday with Thursday.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(app.flagEnvFile)
			if err != nil {
				return fmt.Errorf("cannot load configuration: %w", err)
			}
			if app.flagDatabase != "" {
				cfg.Store.Path = app.flagDatabase
			}
			if app.flagLogLevel != "" {
				cfg.Log.Level = app.flagLogLevel
			}
			app.cfg = cfg

			app.logger, err = logger.New(cfg)
			if err != nil {
				return fmt.Errorf("cannot build logger: %w", err)
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = app.logger.Sync()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(app.out)

	root.PersistentFlags().StringVar(&app.flagEnvFile, "env-file", ".env", "Dotenv file with LABSCHED_* settings")
	root.PersistentFlags().StringVar(&app.flagDatabase, "db", "", "Path to the SQLite database of past runs (or LABSCHED_DB_PATH)")
	root.PersistentFlags().StringVar(&app.flagLogLevel, "log-level", "", "Log level (debug, info, warn, error)")

	root.AddCommand(
		app.solveCmd(),
		app.lookupCmd(),
	)

	return root
}

func (app *cli) openStore() (*store.SQLiteStore, error) {
	runs, err := store.NewSQLite(app.cfg.Store.Path)
	if err != nil {
		return nil, fmt.Errorf("cannot open store \"%v\": %w", app.cfg.Store.Path, err)
	}
	return runs, nil
}
