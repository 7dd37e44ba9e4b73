// Package root contains the root command and the wiring shared by the
// subcommands.
package root

import (
	"rlopes/conciliador/internal/config"
	"rlopes/conciliador/internal/logging"
	"rlopes/conciliador/internal/moneyutils"
	"rlopes/conciliador/internal/store"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	// Log is the shared logger instance for commands.
	Log = logrus.New()

	// Cfg is the loaded application configuration, available after
	// PersistentPreRun.
	Cfg *config.Config

	dataDir string

	// Cmd is the root command.
	Cmd = &cobra.Command{
		Use:   "conciliador",
		Short: "Import, reconcile and archive financial documents.",
		Long: `conciliador ingests delimited bank statement exports and fixed-schema
invoice XML files into a de-duplicated, annotatable local store, and reports
per-period totals over it.`,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Welcome to conciliador!")
			Log.Info("Use --help to see available commands")
		},
	}
)

// Init configures the root command flags and bootstrap.
func Init() {
	Cmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "override the data directory")

	Cmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		config.LoadEnv()

		cfg, err := config.InitializeConfig()
		if err != nil {
			Log.Fatalf("Failed to load configuration: %v", err)
		}
		if dataDir != "" {
			cfg.Data.Directory = dataDir
		}
		Cfg = cfg

		Log = config.ConfigureLogging(cfg.Log.Level, cfg.Log.Format)
		moneyutils.SetLogger(Logger())
	}
}

// Logger adapts the shared logrus instance to the engine's Logger interface.
func Logger() logging.Logger {
	return logging.NewLogrusAdapterFromLogger(Log)
}

// Repository opens the file-backed store under the configured data directory.
func Repository() store.Repository {
	return store.NewFileRepository(Cfg.Data.Directory)
}
