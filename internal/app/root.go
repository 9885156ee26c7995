package app

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/winghq/wingman/internal/config"
)

var (
	dbPath  string
	cfgPath string

	// RootCmd is the root command for wingman
	RootCmd = &cobra.Command{
		Use:   "wingman",
		Short: "Winget update monitoring and reporting",
		Long: `wingman watches the packages winget manages, reconciles installed versions
against available upgrades, and keeps a local scan history. With a server
configured it runs as an agent and reports update status centrally.

Quick Start:
  1. wingman scan              # scan installed packages now
  2. wingman outdated          # show pending updates
  3. wingman agent --daemon    # keep scanning in the background

Examples:
  # Scan and show the full package table
  wingman scan

  # Only packages with a pending update, as JSON
  wingman outdated --json

  # Upgrade one package
  wingman upgrade 7zip.7zip

  # Check the health of the installation
  wingman doctor`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println("wingman: winget update monitoring and reporting")
			fmt.Println()
			fmt.Println("Run 'wingman scan' to scan installed packages.")
			fmt.Println("Run 'wingman --help' for the full reference.")
			return nil
		},
	}
)

func init() {
	RootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "database path (default: ~/.wingman/wingman.db)")
	RootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "config file path (default: ~/.config/wingman/config.yaml)")

	RootCmd.SuggestionsMinimumDistance = 2
}

// Execute runs the root command
func Execute() error {
	return RootCmd.Execute()
}

// wingmanDir returns ~/.wingman, creating it if needed.
func wingmanDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	dir := filepath.Join(home, ".wingman")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create wingman directory: %w", err)
	}
	return dir, nil
}

// getDBPath returns the database path, using the flag value or default
func getDBPath() (string, error) {
	if dbPath != "" {
		return dbPath, nil
	}
	dir, err := wingmanDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "wingman.db"), nil
}

// getDefaultPIDFile returns the default agent PID file path
func getDefaultPIDFile() (string, error) {
	dir, err := wingmanDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "agent.pid"), nil
}

// getDefaultLogFile returns the default agent log file path
func getDefaultLogFile() (string, error) {
	dir, err := wingmanDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "agent.log"), nil
}

// loadConfig loads the config file named by --config, or the default path.
func loadConfig() (*config.Config, error) {
	path := cfgPath
	if path == "" {
		var err error
		path, err = config.DefaultPath()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve config path: %w", err)
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	return cfg, nil
}
