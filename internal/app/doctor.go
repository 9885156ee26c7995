package app

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"time"

	"github.com/spf13/cobra"

	"github.com/winghq/wingman/internal/agent"
	"github.com/winghq/wingman/internal/store"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Diagnose common issues and check system health",
	Long: `Runs diagnostic checks on your wingman installation.

Checks:
  • winget is available on PATH
  • Database exists and is accessible
  • Scan history is populated
  • Agent daemon is running
  • Configured server is reachable`,
	RunE: runDoctor,
}

func init() {
	RootCmd.AddCommand(doctorCmd)
}

func runDoctor(cmd *cobra.Command, args []string) error {
	fmt.Println("Running wingman diagnostics...")
	fmt.Println()

	// Critical failures exit 1; warnings-only exits 2.
	criticalIssues := 0
	warningIssues := 0

	cfg, err := loadConfig()
	if err != nil {
		fmt.Println("✗ Config error:", err)
		criticalIssues++
	} else {
		fmt.Println("✓ Configuration loaded")
	}

	// Check 1: winget on PATH
	binary := "winget"
	if cfg != nil && cfg.Winget.Binary != "" {
		binary = cfg.Winget.Binary
	}
	if _, err := exec.LookPath(binary); err != nil {
		fmt.Printf("✗ %s not found on PATH\n", binary)
		fmt.Println("  Action: Install winget (App Installer) or set winget.binary in the config")
		criticalIssues++
	} else {
		fmt.Printf("✓ %s found\n", binary)
	}

	// Check 2: database accessible
	resolvedDBPath, err := getDBPath()
	if err != nil {
		fmt.Println("✗ Database path error:", err)
		criticalIssues++
	} else if _, err := os.Stat(resolvedDBPath); os.IsNotExist(err) {
		fmt.Println("✗ Database not found at:", resolvedDBPath)
		fmt.Println("  Action: Run 'wingman scan' to create it")
		criticalIssues++
	} else {
		db, err := store.New(resolvedDBPath)
		if err != nil {
			fmt.Println("✗ Cannot open database:", err)
			criticalIssues++
		} else {
			defer db.Close()
			fmt.Println("✓ Database is accessible:", resolvedDBPath)

			// Check 3: scan history (warning only)
			scan, err := db.LatestScan()
			if errors.Is(err, store.ErrNoScans) {
				fmt.Println("⚠ No scans recorded yet")
				fmt.Println("  Action: Run 'wingman scan'")
				warningIssues++
			} else if err != nil {
				fmt.Println("⚠ Cannot read scan history:", err)
				warningIssues++
			} else if time.Since(scan.StartedAt) > 24*time.Hour {
				fmt.Printf("⚠ Last scan is stale (%s)\n", scan.StartedAt.Format(time.RFC3339))
				fmt.Println("  Action: Run 'wingman scan' or start the agent")
				warningIssues++
			} else {
				fmt.Printf("✓ Scan history current (%d packages, %d updates)\n", scan.PackageCount, scan.UpdateCount)
			}
		}
	}

	// Check 4: agent daemon (warning only)
	pidFile, err := getDefaultPIDFile()
	if err != nil {
		fmt.Println("⚠ Failed to get PID file path:", err)
		warningIssues++
	} else if running, err := agent.IsDaemonRunning(pidFile); err != nil {
		fmt.Println("⚠ Failed to check daemon status:", err)
		warningIssues++
	} else if !running {
		fmt.Println("⚠ Agent not running")
		fmt.Println("  Action: Run 'wingman agent --daemon'")
		warningIssues++
	} else {
		fmt.Println("✓ Agent daemon running")
	}

	// Check 5: server reachability, only when configured
	if cfg != nil && cfg.Server.URL != "" {
		client := &agent.Client{ServerURL: cfg.Server.URL, APIKey: cfg.Server.APIKey, AgentID: cfg.Agent.ID}
		if err := client.Health(cmd.Context()); err != nil {
			fmt.Println("✗ Server unreachable:", err)
			criticalIssues++
		} else {
			fmt.Println("✓ Server reachable:", cfg.Server.URL)

			if err := client.SendStatus(cmd.Context(), agent.StatusTesting, "doctor check", agent.DetectCapabilities()); err != nil {
				fmt.Println("✗ Status endpoint rejected test report:", err)
				fmt.Println("  Action: Check server.api_key in the config")
				criticalIssues++
			} else {
				fmt.Println("✓ Status endpoint accepted test report")
			}
		}
	}

	fmt.Println()
	switch {
	case criticalIssues > 0:
		fmt.Printf("%d critical issues found\n", criticalIssues)
		os.Exit(1)
	case warningIssues > 0:
		fmt.Printf("%d warnings\n", warningIssues)
		os.Exit(2)
	default:
		fmt.Println("All checks passed")
	}
	return nil
}
