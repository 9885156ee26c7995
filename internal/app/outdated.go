package app

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/winghq/wingman/internal/output"
	"github.com/winghq/wingman/internal/store"
	"github.com/winghq/wingman/internal/winget"
)

var (
	outdatedJSON bool
	outdatedAll  bool

	outdatedCmd = &cobra.Command{
		Use:   "outdated",
		Short: "Show packages with pending updates from the last scan",
		Long: `Show the update status recorded by the most recent scan. By default only
packages with a pending update are listed; --all shows every package.

This command reads the local scan history and never invokes winget.
Run 'wingman scan' first, or keep the agent running.`,
		Example: `  # Pending updates only
  wingman outdated

  # Every package from the last scan
  wingman outdated --all

  # Machine-readable
  wingman outdated --json`,
		RunE: runOutdated,
	}
)

func init() {
	outdatedCmd.Flags().BoolVar(&outdatedJSON, "json", false, "emit results as JSON")
	outdatedCmd.Flags().BoolVar(&outdatedAll, "all", false, "include up-to-date packages")

	RootCmd.AddCommand(outdatedCmd)
}

func runOutdated(cmd *cobra.Command, args []string) error {
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

	if outdatedJSON {
		rows := statuses
		if !outdatedAll {
			rows = nil
			for _, st := range statuses {
				if st.UpdateAvailable {
					rows = append(rows, st)
				}
			}
			if rows == nil {
				rows = []winget.UpdateStatus{}
			}
		}
		return output.WriteJSON(cmd.OutOrStdout(), rows)
	}

	fmt.Print(output.RenderUpdateTable(statuses, !outdatedAll))
	fmt.Println()
	fmt.Println(output.RenderScanSummary(scan))
	return nil
}
