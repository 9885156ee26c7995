package winget

// Package represents one row of the `winget list` table.
type Package struct {
	Name    string
	ID      string // may be empty: some ARP-sourced entries have no package id
	Version string
}

// Upgrade represents one row of the `winget upgrade` table.
type Upgrade struct {
	Name      string
	ID        string
	Version   string
	Available string
}

// UpdateStatus is an installed package annotated with the latest version
// known from the upgrade table. The JSON shape is the report wire format.
type UpdateStatus struct {
	Name            string `json:"name"`
	ID              string `json:"id"`
	CurrentVersion  string `json:"current_version"`
	LatestVersion   string `json:"latest_version"`
	UpdateAvailable bool   `json:"update_available"`
}

// PackageInfo holds selected fields of `winget show` output.
type PackageInfo struct {
	Version     string
	Publisher   string
	Homepage    string
	License     string
	Description string
}
