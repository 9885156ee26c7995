package app

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/winghq/wingman/internal/agent"
	"github.com/winghq/wingman/internal/output"
	"github.com/winghq/wingman/internal/store"
	"github.com/winghq/wingman/internal/winget"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Send the latest scan result to the configured server",
	Long: `Push a status report for the most recent scan to the central server.

With server.url and server.api_key configured the report is POSTed; the
agent does this automatically, so report exists for one-off pushes and
cron-style setups without a resident agent. Without a server the report
is printed as JSON instead.`,
	Example: `  wingman report`,
	RunE:    runReport,
}

func init() {
	RootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	scan, err := db.LatestScan()
	if errors.Is(err, store.ErrNoScans) {
		return fmt.Errorf("no scans recorded yet; run 'wingman scan' first")
	}
	if err != nil {
		return err
	}

	statuses, err := db.ScanPackages(scan.ID)
	if err != nil {
		return err
	}

	if cfg.Server.URL == "" {
		return output.WriteJSON(cmd.OutOrStdout(), statuses)
	}

	client := &agent.Client{
		ServerURL: cfg.Server.URL,
		APIKey:    cfg.Server.APIKey,
		AgentID:   cfg.Agent.ID,
	}

	updates := winget.CountUpdates(statuses)
	message := fmt.Sprintf("%d packages scanned, %d updates available", len(statuses), updates)
	if err := client.SendStatus(cmd.Context(), agent.StatusSuccess, message, agent.DetectCapabilities()); err != nil {
		return fmt.Errorf("failed to deliver report: %w", err)
	}

	fmt.Printf("✓ Reported to %s: %s\n", cfg.Server.URL, message)
	return nil
}
