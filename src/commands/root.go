package commands

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"ledgerlens-server/src/config"
	"ledgerlens-server/src/db"
	sqlstore "ledgerlens-server/src/db/sql"
	"ledgerlens-server/src/logger"
	"ledgerlens-server/src/rules"
)

// globalFlags override the matching environment settings when set.
type globalFlags struct {
	databaseURL string
	rulesFile   string
	logLevel    string
}

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	flags := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:   "ledgerlens",
		Short: "Bank statement ingestion and spending analytics",
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&flags.databaseURL, "database-url", "", "database URL (postgres:// or sqlite://path)")
	rootCmd.PersistentFlags().StringVar(&flags.rulesFile, "rules", "", "YAML file overriding parser and category rules")
	rootCmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "log level (debug, info, warn, error)")

	rootCmd.AddCommand(newServeCommand(flags))
	rootCmd.AddCommand(newIngestCommand(flags))
	rootCmd.AddCommand(newStatsCommand(flags))
	rootCmd.AddCommand(newExplainCommand(flags))

	return rootCmd
}

func (f *globalFlags) config() (config.Config, error) {
	cfg, err := config.Load()
	if f.databaseURL != "" {
		cfg.DatabaseURL = f.databaseURL
		err = nil
	}
	if err != nil {
		return cfg, err
	}
	if f.rulesFile != "" {
		cfg.RulesFile = f.rulesFile
	}
	if f.logLevel != "" {
		cfg.LogLevel = f.logLevel
	}
	return cfg, nil
}

// app holds the long-lived pieces every command needs.
type app struct {
	cfg   config.Config
	log   zerolog.Logger
	rules *rules.Set
	store *sqlstore.CachedStore
}

func openApp(ctx context.Context, f *globalFlags) (*app, error) {
	cfg, err := f.config()
	if err != nil {
		return nil, err
	}
	log := logger.New(cfg.LogLevel)

	set, err := rules.Load(cfg.RulesFile)
	if err != nil {
		return nil, err
	}

	store, err := sqlstore.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	cache, err := db.NewCache()
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("creating cache: %w", err)
	}

	return &app{
		cfg:   cfg,
		log:   log,
		rules: set,
		store: sqlstore.NewCachedStore(store, cache),
	}, nil
}

func (a *app) Close() {
	a.store.Close()
}
