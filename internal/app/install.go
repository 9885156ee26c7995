package app

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/winghq/wingman/internal/output"
	"github.com/winghq/wingman/internal/winget"
)

var installCmd = &cobra.Command{
	Use:   "install <package-id>",
	Short: "Install a package",
	Long: `Install one package through winget. Resolution falls through three
attempts: install by id, upgrade by id (for packages that are already
installed), then install by name.`,
	Example: `  wingman install 7zip.7zip
  wingman install "Notepad++"`,
	Args: cobra.ExactArgs(1),
	RunE: runInstall,
}

func init() {
	RootCmd.AddCommand(installCmd)
}

func runInstall(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	id := args[0]

	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Winget.InstallTimeout.Std())
	defer cancel()

	spinner := output.NewSpinner(fmt.Sprintf("Installing %s", id))
	spinner.Start()

	runner := winget.Runner{Binary: cfg.Winget.Binary}
	if _, err := runner.Install(ctx, id); err != nil {
		spinner.Stop()
		return fmt.Errorf("failed to install %s: %w", id, err)
	}

	spinner.StopWithMessage(fmt.Sprintf("✓ %s installed", id))
	fmt.Println("Run 'wingman scan' to refresh the local scan history.")
	return nil
}
