package winget

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Column keywords as winget spells them in English table headers. The
// offset inference below is coupled to these exact spellings; localized
// winget output would need an alternate keyword set passed to DetectLayout.
const (
	colName      = "Name"
	colID        = "Id"
	colVersion   = "Version"
	colAvailable = "Available"
	colSource    = "Source"
)

var (
	installedColumns = []string{colName, colID, colVersion}
	upgradeColumns   = []string{colName, colID, colVersion, colAvailable, colSource}
)

// Column is a named table column and the rune offset where it begins.
type Column struct {
	Key   string
	Start int
}

// ColumnLayout describes where each column of a winget table starts,
// derived once per table from the header line. Column starts are strictly
// increasing; a field's text spans from its start to the next column's
// start, and the last field runs to end of line.
//
// Offsets are rune offsets, not byte offsets: winget emits multi-byte
// characters (ellipses, broken bars) inside cells, and column alignment in
// the original tool is by character position.
type ColumnLayout struct {
	Columns []Column
}

// DetectLayout locates each keyword's first occurrence in the header line.
// Keywords that are absent, or whose offset is not strictly to the right of
// the previously found keyword, are skipped; the preceding field then
// extends to the next found column or to end of line.
func DetectLayout(header string, keywords []string) ColumnLayout {
	var layout ColumnLayout
	last := -1
	for _, kw := range keywords {
		idx := runeIndex(header, kw)
		if idx < 0 || idx <= last {
			continue
		}
		layout.Columns = append(layout.Columns, Column{Key: kw, Start: idx})
		last = idx
	}
	return layout
}

// Slice cuts a data line into raw (untrimmed-of-artifacts, but
// whitespace-trimmed) fields keyed by column name.
func (l ColumnLayout) Slice(line string) map[string]string {
	runes := []rune(line)
	fields := make(map[string]string, len(l.Columns))
	for i, col := range l.Columns {
		start := col.Start
		if start > len(runes) {
			start = len(runes)
		}
		end := len(runes)
		if i+1 < len(l.Columns) && l.Columns[i+1].Start < end {
			end = l.Columns[i+1].Start
		}
		if end < start {
			end = start
		}
		fields[col.Key] = strings.TrimSpace(string(runes[start:end]))
	}
	return fields
}

// NameStart returns the rune offset of the first column. Both winget table
// shapes lead with Name, and header detection guarantees it was found.
func (l ColumnLayout) NameStart() int {
	if len(l.Columns) == 0 {
		return 0
	}
	return l.Columns[0].Start
}

// startsRecord reports whether a data line begins a new table row: the line
// must reach the Name column and hold a non-space rune there. Anything else
// is a continuation of the previous (wrapped) row.
func startsRecord(line string, nameStart int) bool {
	runes := []rune(line)
	if len(runes) <= nameStart {
		return false
	}
	return !unicode.IsSpace(runes[nameStart])
}

// runeIndex returns the rune offset of the first occurrence of substr in s,
// or -1 if absent.
func runeIndex(s, substr string) int {
	i := strings.Index(s, substr)
	if i < 0 {
		return -1
	}
	return utf8.RuneCountInString(s[:i])
}
