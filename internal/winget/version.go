package winget

import "strings"

// UnknownVersion is the sentinel for a cell with no version-like content.
// It is never a comparable version: Reconcile refuses to flag an update
// when either side is Unknown.
const UnknownVersion = "Unknown"

// cleanField normalizes a sliced table cell: runes outside the printable
// ASCII range are dropped, not substituted (winget pads truncated cells
// with U+2026 ellipses and U+00A6 broken bars), then whitespace runs are
// collapsed to single spaces and the result is trimmed.
func cleanField(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= 0x20 && r <= 0x7e {
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// versionToken picks the version out of a cleaned cell. winget sometimes
// packs several tokens into a version column ("1.2.0 1.2.1", "> 23.01");
// a single linear scan selects the first token that contains a dot or is
// all digits once dots and dashes are stripped. With no qualifying token
// the first token wins, and an empty cell yields UnknownVersion.
func versionToken(cell string) string {
	tokens := strings.Fields(cell)
	if len(tokens) == 0 {
		return UnknownVersion
	}
	for _, tok := range tokens {
		if strings.Contains(tok, ".") || isVersionDigits(tok) {
			return tok
		}
	}
	return tokens[0]
}

// isVersionDigits reports whether tok consists solely of digits after
// removing dots and dashes, and is non-empty once stripped.
func isVersionDigits(tok string) bool {
	stripped := strings.NewReplacer(".", "", "-", "").Replace(tok)
	if stripped == "" {
		return false
	}
	for _, r := range stripped {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
