package app

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/winghq/wingman/internal/agent"
	"github.com/winghq/wingman/internal/output"
	"github.com/winghq/wingman/internal/store"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show agent and scan history status",
	Long: `Show whether the agent daemon is running, when the last scan happened,
and how many status reports are waiting for delivery.`,
	Example: `  wingman status`,
	RunE:    runStatus,
}

func init() {
	RootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	// Daemon state
	pidFile, err := getDefaultPIDFile()
	if err != nil {
		return err
	}
	running, err := agent.IsDaemonRunning(pidFile)
	if err != nil {
		return fmt.Errorf("failed to check daemon status: %w", err)
	}
	if running {
		pidData, err := os.ReadFile(pidFile)
		if err == nil {
			pid, _ := strconv.Atoi(strings.TrimSpace(string(pidData)))
			fmt.Printf("✓ Agent running (PID %d)\n", pid)
		} else {
			fmt.Println("✓ Agent running")
		}
	} else {
		fmt.Println("✗ Agent not running")
		fmt.Println("  Start it with: wingman agent --daemon")
	}

	// Scan history
	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	scan, err := db.LatestScan()
	if errors.Is(err, store.ErrNoScans) {
		fmt.Println("✗ No scans recorded yet")
		fmt.Println("  Run: wingman scan")
		return nil
	}
	if err != nil {
		return err
	}
	fmt.Printf("✓ Last scan: %s\n", output.RenderScanSummary(scan))

	// Outbox
	pending, err := db.PendingReports()
	if err != nil {
		return err
	}
	if len(pending) > 0 {
		fmt.Printf("⚠ %d status reports queued for delivery\n", len(pending))
	}

	return nil
}
