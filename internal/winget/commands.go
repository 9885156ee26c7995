package winget

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// Runner executes winget commands and feeds their output through the
// parsers. The zero value uses the `winget` binary from PATH.
//
// Runner performs no retries and sets no timeouts of its own; callers pass
// a context with whatever deadline policy they want.
type Runner struct {
	// Binary overrides the winget executable. Empty means "winget".
	Binary string
}

func (r Runner) binary() string {
	if r.Binary != "" {
		return r.Binary
	}
	return "winget"
}

// ListInstalled runs `winget list` and returns the raw table text.
func (r Runner) ListInstalled(ctx context.Context) (string, error) {
	return r.run(ctx, "list")
}

// ListUpgradable runs `winget upgrade` and returns the raw table text.
func (r Runner) ListUpgradable(ctx context.Context) (string, error) {
	return r.run(ctx, "upgrade")
}

// Scan runs both winget tables and reconciles them.
//
// A failing `winget upgrade` is not fatal: winget exits non-zero when no
// upgrades are available, so the scan proceeds with zero upgrade records
// and every package reports its current version as latest.
func (r Runner) Scan(ctx context.Context) ([]UpdateStatus, error) {
	rawList, err := r.ListInstalled(ctx)
	if err != nil {
		return nil, fmt.Errorf("list installed packages: %w", err)
	}
	installed := ParseInstalled(rawList)

	var upgrades []Upgrade
	if rawUpgrade, err := r.ListUpgradable(ctx); err == nil {
		upgrades = ParseUpgrades(rawUpgrade)
	}

	return Reconcile(installed, upgrades), nil
}

func (r Runner) run(ctx context.Context, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, r.binary(), args...)
	output, err := cmd.Output()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return "", fmt.Errorf("%s %s failed: %w (stderr: %s)",
				r.binary(), strings.Join(args, " "), err, string(exitErr.Stderr))
		}
		return "", fmt.Errorf("%s %s failed: %w", r.binary(), strings.Join(args, " "), err)
	}
	return string(output), nil
}
