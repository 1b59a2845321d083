package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"backoffice/internal/config"
	"backoffice/internal/session"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the state database",
	Long:  "Create the SQLite database that stores the login session",
	RunE: func(cmd *cobra.Command, args []string) error {
		return initDatabase()
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func initDatabase() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	path, err := dbPath(cfg)
	if err != nil {
		return err
	}

	if _, err := os.Stat(path); err == nil {
		fmt.Printf("Database %s already exists. Recreate it? (y/N): ", path)
		var response string
		fmt.Scanln(&response)
		if response != "y" && response != "Y" {
			fmt.Println("Initialization cancelled.")
			return nil
		}
		if err := os.Remove(path); err != nil {
			return fmt.Errorf("remove existing database: %w", err)
		}
	}

	store, err := session.Init(path)
	if err != nil {
		return err
	}
	defer store.Close()

	fmt.Printf("Database %s initialized successfully!\n", path)
	return nil
}
