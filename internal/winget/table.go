// Package winget converts the fixed-width tables printed by `winget list`
// and `winget upgrade` into structured records and reconciles the two into
// per-package update status.
//
// The parsers are pure functions of their input text and never fail:
// malformed or unexpected output degrades to fewer (possibly zero) records,
// and unparseable version cells degrade to the UnknownVersion sentinel.
package winget

import (
	"strings"
	"unicode/utf8"
)

// ParseInstalled parses `winget list` output into installed-package records,
// in order of first appearance.
//
// Known limitation: winget wraps long names onto indented continuation
// lines; their content is dropped, so wrapped entries are truncated at the
// first line.
func ParseInstalled(raw string) []Package {
	var pkgs []Package
	for _, fields := range parseTable(raw, installedColumns) {
		name := cleanField(fields[colName])
		version := cleanField(fields[colVersion])
		if name == "" || version == "" || utf8.RuneCountInString(name) <= 1 {
			continue
		}
		pkgs = append(pkgs, Package{
			Name:    name,
			ID:      cleanField(fields[colID]),
			Version: versionToken(version),
		})
	}
	return pkgs
}

// ParseUpgrades parses `winget upgrade` output. Rows without an available
// version are dropped: they carry no upgrade information.
func ParseUpgrades(raw string) []Upgrade {
	var ups []Upgrade
	for _, fields := range parseTable(raw, upgradeColumns) {
		name := cleanField(fields[colName])
		version := cleanField(fields[colVersion])
		available := cleanField(fields[colAvailable])
		if name == "" || version == "" || available == "" || utf8.RuneCountInString(name) <= 1 {
			continue
		}
		ups = append(ups, Upgrade{
			Name:      name,
			ID:        cleanField(fields[colID]),
			Version:   versionToken(version),
			Available: versionToken(available),
		})
	}
	return ups
}

// parseTable locates the header row, derives the column layout from it, and
// slices every data row into named fields. It returns nil when the input
// holds no recognizable table (fewer than 3 lines, or no header).
func parseTable(raw string, keywords []string) []map[string]string {
	lines := strings.Split(strings.TrimSpace(raw), "\n")
	if len(lines) < 3 {
		return nil
	}

	// The header is the first line mentioning all three mandatory columns.
	// A data row that happens to contain the keywords would be accepted
	// too; the parser trusts the first structural match.
	headerIdx := -1
	for i, line := range lines {
		if strings.Contains(line, colName) &&
			strings.Contains(line, colID) &&
			strings.Contains(line, colVersion) {
			headerIdx = i
			break
		}
	}
	if headerIdx == -1 {
		return nil
	}

	layout := DetectLayout(lines[headerIdx], keywords)
	if len(layout.Columns) == 0 {
		return nil
	}
	nameStart := layout.NameStart()

	// Data rows start two lines below the header; the line in between is
	// the separator rule and is skipped unconditionally.
	dataStart := headerIdx + 2
	if dataStart > len(lines) {
		return nil
	}

	var rows []map[string]string
	for _, line := range lines[dataStart:] {
		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "-") {
			continue
		}
		if !startsRecord(line, nameStart) {
			// Continuation of a wrapped row; dropped.
			continue
		}
		rows = append(rows, layout.Slice(line))
	}
	return rows
}
