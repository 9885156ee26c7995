package app

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/winghq/wingman/internal/output"
	"github.com/winghq/wingman/internal/winget"
)

var (
	scanQuiet bool
	scanJSON  bool

	scanCmd = &cobra.Command{
		Use:   "scan",
		Short: "Scan installed packages and record update status",
		Long: `Run winget, reconcile installed versions against available upgrades, and
store the result in the local scan history.

The scan command should be run:
  • After installing wingman for the first time
  • After installing or removing packages manually
  • Periodically, which the agent does for you`,
		Example: `  # Scan and show the package table
  wingman scan

  # Scan quietly (history only, no table)
  wingman scan --quiet

  # Scan and emit JSON
  wingman scan --json`,
		RunE: runScanCmd,
	}
)

func init() {
	scanCmd.Flags().BoolVar(&scanQuiet, "quiet", false, "suppress output")
	scanCmd.Flags().BoolVar(&scanJSON, "json", false, "emit results as JSON")

	RootCmd.AddCommand(scanCmd)
}

func runScanCmd(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	var spinner *output.Spinner
	if !scanQuiet && !scanJSON {
		spinner = output.NewSpinner("Scanning installed packages")
		spinner.Start()
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Agent.ScanTimeout.Std())
	defer cancel()

	runner := winget.Runner{Binary: cfg.Winget.Binary}
	started := time.Now()
	statuses, err := runner.Scan(ctx)
	if err != nil {
		if spinner != nil {
			spinner.Stop()
		}
		return fmt.Errorf("scan failed: %w", err)
	}
	duration := time.Since(started)

	if _, err := db.InsertScan(started, duration, statuses); err != nil {
		if spinner != nil {
			spinner.Stop()
		}
		return fmt.Errorf("failed to record scan: %w", err)
	}

	updates := winget.CountUpdates(statuses)
	if spinner != nil {
		spinner.StopWithMessage(fmt.Sprintf("✓ Scanned %d packages, %d updates available", len(statuses), updates))
	}

	if scanJSON {
		return output.WriteJSON(cmd.OutOrStdout(), statuses)
	}
	if !scanQuiet {
		fmt.Println()
		fmt.Print(output.RenderUpdateTable(statuses, false))
	}
	return nil
}
