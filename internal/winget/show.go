package winget

import (
	"context"
	"strings"
)

// Show runs `winget show` for a package and parses the result. Lookup is
// tried by id first, then by name.
func (r Runner) Show(ctx context.Context, id string) (PackageInfo, error) {
	raw, err := r.run(ctx, "show", "--id", id)
	if err != nil {
		raw, err = r.run(ctx, "show", "--name", id)
		if err != nil {
			return PackageInfo{}, err
		}
	}
	return ParseShow(raw), nil
}

// ParseShow extracts known fields from `winget show` output, which is a
// loose "Key: value" listing. Unknown keys and indented detail blocks are
// ignored; a literal "N/A" value counts as absent.
func ParseShow(raw string) PackageInfo {
	var info PackageInfo
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		value = strings.TrimSpace(value)
		if value == "" || value == "N/A" {
			continue
		}
		switch strings.TrimSpace(key) {
		case "Version":
			if info.Version == "" {
				info.Version = value
			}
		case "Publisher":
			if info.Publisher == "" {
				info.Publisher = value
			}
		case "Homepage":
			if info.Homepage == "" {
				info.Homepage = value
			}
		case "Download URL":
			// Prefer an explicit download URL over the homepage.
			info.Homepage = value
		case "License":
			if info.License == "" {
				info.License = value
			}
		case "Description":
			if info.Description == "" {
				info.Description = value
			}
		}
	}
	return info
}
