package winget

// Reconcile overlays availability data from the upgrade table onto the
// installed table. Upgrade records are indexed by package id (empty ids are
// never indexed); installed packages without a match are assumed current.
//
// The output preserves the order of installed and always has the same
// length: reconciliation never invents or drops records.
func Reconcile(installed []Package, upgrades []Upgrade) []UpdateStatus {
	byID := make(map[string]Upgrade, len(upgrades))
	for _, up := range upgrades {
		if up.ID != "" {
			byID[up.ID] = up
		}
	}

	out := make([]UpdateStatus, 0, len(installed))
	for _, pkg := range installed {
		st := UpdateStatus{
			Name:           pkg.Name,
			ID:             pkg.ID,
			CurrentVersion: pkg.Version,
			LatestVersion:  pkg.Version,
		}
		if up, ok := byID[pkg.ID]; ok {
			st.LatestVersion = up.Available
			st.UpdateAvailable = pkg.Version != up.Available &&
				up.Available != UnknownVersion &&
				pkg.Version != UnknownVersion
		}
		out = append(out, st)
	}
	return out
}

// CountUpdates returns how many records have an update available.
func CountUpdates(statuses []UpdateStatus) int {
	n := 0
	for _, st := range statuses {
		if st.UpdateAvailable {
			n++
		}
	}
	return n
}
