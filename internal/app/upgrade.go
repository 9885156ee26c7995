package app

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/winghq/wingman/internal/output"
	"github.com/winghq/wingman/internal/winget"
)

var upgradeCmd = &cobra.Command{
	Use:   "upgrade <package-id>",
	Short: "Upgrade an installed package",
	Long: `Upgrade one package through winget. The package is resolved by id first,
then by name, since some manifests register under a display name only.

With winget.choco_fallback enabled, a failed winget upgrade is retried
through chocolatey before giving up.`,
	Example: `  wingman upgrade 7zip.7zip
  wingman upgrade Microsoft.VisualStudioCode`,
	Args: cobra.ExactArgs(1),
	RunE: runUpgrade,
}

func init() {
	RootCmd.AddCommand(upgradeCmd)
}

func runUpgrade(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	id := args[0]

	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Winget.InstallTimeout.Std())
	defer cancel()

	spinner := output.NewSpinner(fmt.Sprintf("Upgrading %s", id))
	spinner.Start()

	runner := winget.Runner{Binary: cfg.Winget.Binary}
	if _, err := runner.Upgrade(ctx, id); err != nil {
		if cfg.Winget.ChocoFallback {
			if _, chocoErr := winget.ChocoUpgrade(ctx, id); chocoErr == nil {
				spinner.StopWithMessage(fmt.Sprintf("✓ %s upgraded via chocolatey", id))
				return nil
			}
		}
		spinner.Stop()
		return fmt.Errorf("failed to upgrade %s: %w", id, err)
	}

	spinner.StopWithMessage(fmt.Sprintf("✓ %s upgraded", id))
	fmt.Println("Run 'wingman scan' to refresh the local scan history.")
	return nil
}
