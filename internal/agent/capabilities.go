package agent

import (
	"context"
	"os/exec"
	"runtime"
	"time"
)

// Capability names reported to the server.
const (
	CapabilityWinget = "WINGET"
	CapabilityChoco  = "CHOCO"
	CapabilityManual = "MANUAL"
)

// SystemName maps the runtime OS to the server's system identifiers.
func SystemName() string {
	switch runtime.GOOS {
	case "windows":
		return "WINDOWS"
	case "linux":
		return "LINUX"
	case "darwin":
		return "MACOS"
	default:
		return "UNKNOWN"
	}
}

// DetectCapabilities probes for available package managers. MANUAL is
// always reported so the server can still schedule download-only tasks.
func DetectCapabilities() []string {
	caps := []string{}
	if probeBinary("winget") {
		caps = append(caps, CapabilityWinget)
	}
	if probeBinary("choco") {
		caps = append(caps, CapabilityChoco)
	}
	caps = append(caps, CapabilityManual)
	return caps
}

// probeBinary runs "<name> --version" with a short deadline. A binary
// that exists but errors still counts: winget exits nonzero on some
// hosts when no sources are configured.
func probeBinary(name string) bool {
	if _, err := exec.LookPath(name); err != nil {
		return false
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	cmd := exec.CommandContext(ctx, name, "--version")
	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return false
		}
		if _, ok := err.(*exec.ExitError); ok {
			return true
		}
		return false
	}
	return true
}
