package winget

import (
	"context"
	"fmt"
	"os/exec"
)

// winget prompts for source and package agreements on first contact; both
// must be pre-accepted for unattended runs.
var acceptFlags = []string{
	"--accept-source-agreements",
	"--accept-package-agreements",
}

// Upgrade upgrades an installed package. Resolution is tried by id first,
// then by name: some manifests register under a display name only.
// The combined command output of the attempt that settled the call is
// returned alongside the error.
func (r Runner) Upgrade(ctx context.Context, id string) (string, error) {
	out, err := r.runInstallCmd(ctx, "upgrade", "--id", id)
	if err == nil {
		return out, nil
	}
	return r.runInstallCmd(ctx, "upgrade", "--name", id)
}

// Install installs or upgrades a package, trying install by id, then
// upgrade by id (already installed), then install by name.
func (r Runner) Install(ctx context.Context, id string) (string, error) {
	out, err := r.runInstallCmd(ctx, "install", "--id", id)
	if err == nil {
		return out, nil
	}
	out, err = r.runInstallCmd(ctx, "upgrade", "--id", id)
	if err == nil {
		return out, nil
	}
	return r.runInstallCmd(ctx, "install", "--name", id)
}

func (r Runner) runInstallCmd(ctx context.Context, verb, flag, id string) (string, error) {
	args := append([]string{verb, flag, id}, acceptFlags...)
	cmd := exec.CommandContext(ctx, r.binary(), args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return string(output), fmt.Errorf("%s %s %s %q failed: %w (output: %s)",
			r.binary(), verb, flag, id, err, string(output))
	}
	return string(output), nil
}

// ChocoUpgrade upgrades a package through chocolatey. Used as a fallback on
// hosts where the package is choco-managed rather than winget-managed.
func ChocoUpgrade(ctx context.Context, id string) (string, error) {
	cmd := exec.CommandContext(ctx, "choco", "upgrade", id, "-y")
	output, err := cmd.CombinedOutput()
	if err != nil {
		return string(output), fmt.Errorf("choco upgrade %q failed: %w (output: %s)",
			id, err, string(output))
	}
	return string(output), nil
}
