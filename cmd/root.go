package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"backoffice/internal/api"
	"backoffice/internal/app"
	"backoffice/internal/config"
	"backoffice/internal/logging"
	"backoffice/internal/session"
)

var rootCmd = &cobra.Command{
	Use:   "backoffice",
	Short: "Back-office admin TUI",
	Long:  "A terminal client for managing categories, customers, offers, orders, suppliers and users",
	RunE: func(cmd *cobra.Command, args []string) error {
		return startTUI()
	},
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func dbPath(cfg *config.Config) (string, error) {
	if cfg.DBPath != "" {
		return cfg.DBPath, nil
	}
	return session.DefaultDBPath()
}

func startTUI() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// Logs go to a file; the TUI owns the terminal.
	logger := logging.New(cfg.LogFile, cfg.LogLevel)
	defer logger.Sync()

	path, err := dbPath(cfg)
	if err != nil {
		return err
	}
	store, err := session.Open(path)
	if err != nil {
		if errors.Is(err, session.ErrNotInitialized) {
			return err
		}
		return fmt.Errorf("open state database: %w", err)
	}
	defer store.Close()

	client := api.NewClient(api.Config{
		BaseURL: cfg.APIBaseURL,
		Timeout: cfg.HTTPTimeout,
		Token:   store.Token,
		Logger:  logger,
	})

	logger.Info("starting",
		zap.String("api", cfg.APIBaseURL),
		zap.String("db", path))

	state, err := app.CreateApp(app.Deps{
		Client:  client,
		Store:   store,
		Logger:  logger,
		Timeout: cfg.HTTPTimeout,
	})
	if err != nil {
		return err
	}
	return state.Run()
}
