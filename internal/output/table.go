// Package output renders wingman results for the terminal.
//
// Tables use fixed-width columns and ANSI color codes; color is
// suppressed when stdout is not a TTY or NO_COLOR is set. JSON output is
// provided for scripting.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"

	"github.com/winghq/wingman/internal/store"
	"github.com/winghq/wingman/internal/winget"
)

// ANSI color codes for status display
const (
	colorReset  = "\033[0m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorRed    = "\033[31m"
	colorGray   = "\033[90m"
)

// IsColorEnabled returns true if ANSI color codes should be emitted.
// It checks that os.Stdout is a TTY and that the NO_COLOR env var is not set.
func IsColorEnabled() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return isatty.IsTerminal(os.Stdout.Fd())
}

// colorize wraps text in the given ANSI color code if color is enabled,
// otherwise returns the plain text.
func colorize(color, text string) string {
	if IsColorEnabled() {
		return color + text + colorReset
	}
	return text
}

// RenderUpdateTable renders scan results. When onlyUpdates is true, rows
// without a pending update are omitted. Row order follows the scan.
func RenderUpdateTable(statuses []winget.UpdateStatus, onlyUpdates bool) string {
	rows := statuses
	if onlyUpdates {
		rows = nil
		for _, st := range statuses {
			if st.UpdateAvailable {
				rows = append(rows, st)
			}
		}
	}

	if len(rows) == 0 {
		if onlyUpdates {
			return "All packages are up to date.\n"
		}
		return "No packages found.\n"
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("%-30s %-34s %-14s %-14s %s\n",
		"Package", "Id", "Current", "Latest", "Status"))
	sb.WriteString(strings.Repeat("─", 104))
	sb.WriteString("\n")

	for _, st := range rows {
		sb.WriteString(fmt.Sprintf("%-30s %-34s %-14s %-14s %s\n",
			truncate(st.Name, 30),
			truncate(st.ID, 34),
			truncate(st.CurrentVersion, 14),
			truncate(st.LatestVersion, 14),
			formatUpdateStatus(st)))
	}

	return sb.String()
}

// formatUpdateStatus returns the colored status cell for one row.
func formatUpdateStatus(st winget.UpdateStatus) string {
	switch {
	case st.UpdateAvailable:
		return colorize(colorYellow, "update available")
	case st.CurrentVersion == winget.UnknownVersion:
		return colorize(colorGray, "unknown")
	default:
		return colorize(colorGreen, "up to date")
	}
}

// RenderScanSummary renders the one-line footer for a stored scan.
func RenderScanSummary(scan *store.Scan) string {
	age := formatRelativeTime(scan.StartedAt)
	if scan.UpdateCount == 0 {
		return fmt.Sprintf("%d packages, all up to date (scanned %s in %s)",
			scan.PackageCount, age, scan.Duration.Round(time.Millisecond))
	}
	updates := fmt.Sprintf("%d updates available", scan.UpdateCount)
	if scan.UpdateCount == 1 {
		updates = "1 update available"
	}
	return fmt.Sprintf("%d packages, %s (scanned %s in %s)",
		scan.PackageCount, colorize(colorYellow, updates), age, scan.Duration.Round(time.Millisecond))
}

// RenderPackageInfo renders `wingman info` output, skipping empty fields.
func RenderPackageInfo(id string, info *winget.PackageInfo) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Package:     %s\n", id))
	if info.Version != "" {
		sb.WriteString(fmt.Sprintf("Version:     %s\n", info.Version))
	}
	if info.Publisher != "" {
		sb.WriteString(fmt.Sprintf("Publisher:   %s\n", info.Publisher))
	}
	if info.License != "" {
		sb.WriteString(fmt.Sprintf("License:     %s\n", info.License))
	}
	if info.Homepage != "" {
		sb.WriteString(fmt.Sprintf("Homepage:    %s\n", info.Homepage))
	}
	if info.Description != "" {
		sb.WriteString(fmt.Sprintf("Description: %s\n", info.Description))
	}

	return sb.String()
}

// WriteJSON writes statuses as a JSON array, preserving scan order. An
// empty scan serializes as [] rather than null.
func WriteJSON(w io.Writer, statuses []winget.UpdateStatus) error {
	if statuses == nil {
		statuses = []winget.UpdateStatus{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(statuses); err != nil {
		return fmt.Errorf("failed to encode JSON output: %w", err)
	}
	return nil
}

// formatRelativeTime converts a timestamp to relative time (e.g., "2 days ago").
func formatRelativeTime(t time.Time) string {
	if t.IsZero() {
		return "never"
	}

	diff := time.Since(t)

	switch {
	case diff < time.Minute:
		return "just now"
	case diff < time.Hour:
		mins := int(diff.Minutes())
		if mins == 1 {
			return "1 minute ago"
		}
		return fmt.Sprintf("%d minutes ago", mins)
	case diff < 24*time.Hour:
		hours := int(diff.Hours())
		if hours == 1 {
			return "1 hour ago"
		}
		return fmt.Sprintf("%d hours ago", hours)
	case diff < 7*24*time.Hour:
		days := int(diff.Hours() / 24)
		if days == 1 {
			return "1 day ago"
		}
		return fmt.Sprintf("%d days ago", days)
	default:
		weeks := int(diff.Hours() / 24 / 7)
		if weeks == 1 {
			return "1 week ago"
		}
		return fmt.Sprintf("%d weeks ago", weeks)
	}
}

// truncate truncates a string to maxLen, adding "..." if truncated.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
