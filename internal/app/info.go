package app

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/winghq/wingman/internal/output"
	"github.com/winghq/wingman/internal/winget"
)

var infoCmd = &cobra.Command{
	Use:   "info <package-id>",
	Short: "Show package details from winget",
	Long: `Look a package up with 'winget show' and print its version, publisher,
license, homepage and description. Fields winget reports as N/A are
omitted.`,
	Example: `  wingman info 7zip.7zip`,
	Args:    cobra.ExactArgs(1),
	RunE:    runInfo,
}

func init() {
	RootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	id := args[0]

	ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
	defer cancel()

	runner := winget.Runner{Binary: cfg.Winget.Binary}
	info, err := runner.Show(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to look up %s: %w", id, err)
	}

	fmt.Print(output.RenderPackageInfo(id, &info))
	return nil
}
