package winget

import (
	"reflect"
	"testing"
)

func TestReconcileMiss(t *testing.T) {
	installed := []Package{{Name: "Foo", ID: "Foo.Bar", Version: "1.0"}}

	got := Reconcile(installed, nil)

	want := []UpdateStatus{{
		Name:           "Foo",
		ID:             "Foo.Bar",
		CurrentVersion: "1.0",
		LatestVersion:  "1.0",
	}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestReconcileHit(t *testing.T) {
	installed := []Package{{Name: "Foo", ID: "Foo.Bar", Version: "1.0"}}
	upgrades := []Upgrade{{Name: "Foo", ID: "Foo.Bar", Version: "1.0", Available: "2.0"}}

	got := Reconcile(installed, upgrades)

	if got[0].LatestVersion != "2.0" || !got[0].UpdateAvailable {
		t.Errorf("got %+v, want latest 2.0 with update available", got[0])
	}
}

func TestReconcileEqualVersionsNoUpdate(t *testing.T) {
	installed := []Package{{Name: "Foo", ID: "Foo.Bar", Version: "2.0"}}
	upgrades := []Upgrade{{ID: "Foo.Bar", Available: "2.0"}}

	got := Reconcile(installed, upgrades)
	if got[0].UpdateAvailable {
		t.Errorf("equal versions flagged as update: %+v", got[0])
	}
}

func TestReconcileUnknownNeverFlagged(t *testing.T) {
	tests := []struct {
		name      string
		current   string
		available string
	}{
		{"unknown current", UnknownVersion, "2.0"},
		{"unknown available", "1.0", UnknownVersion},
		{"both unknown", UnknownVersion, UnknownVersion},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			installed := []Package{{Name: "Foo", ID: "Foo.Bar", Version: tt.current}}
			upgrades := []Upgrade{{ID: "Foo.Bar", Available: tt.available}}

			got := Reconcile(installed, upgrades)
			if got[0].UpdateAvailable {
				t.Errorf("Unknown version flagged as update: %+v", got[0])
			}
		})
	}
}

func TestReconcileEmptyIDNeverMatches(t *testing.T) {
	installed := []Package{{Name: "NoID App", ID: "", Version: "1.0"}}
	upgrades := []Upgrade{{Name: "NoID App", ID: "", Version: "1.0", Available: "3.0"}}

	got := Reconcile(installed, upgrades)
	if got[0].UpdateAvailable || got[0].LatestVersion != "1.0" {
		t.Errorf("empty id matched an upgrade record: %+v", got[0])
	}
}

func TestReconcilePreservesOrderAndLength(t *testing.T) {
	installed := []Package{
		{Name: "Bravo", ID: "b", Version: "1"},
		{Name: "Alpha", ID: "a", Version: "1"},
		{Name: "Charlie", ID: "c", Version: "1"},
	}
	upgrades := []Upgrade{{ID: "a", Available: "2"}}

	got := Reconcile(installed, upgrades)

	if len(got) != len(installed) {
		t.Fatalf("length %d, want %d", len(got), len(installed))
	}
	for i, pkg := range installed {
		if got[i].Name != pkg.Name {
			t.Errorf("position %d: got %q, want %q", i, got[i].Name, pkg.Name)
		}
	}
}

func TestReconcileEndToEnd(t *testing.T) {
	installed := ParseInstalled(mockListOutput)
	upgrades := ParseUpgrades(mockUpgradeOutput)

	statuses := Reconcile(installed, upgrades)

	if len(statuses) != len(installed) {
		t.Fatalf("length %d, want %d", len(statuses), len(installed))
	}

	byID := make(map[string]UpdateStatus)
	for _, st := range statuses {
		byID[st.ID] = st
	}

	// VS Code is in both tables with differing concrete versions.
	vsc := byID["Microsoft.VisualStudioCode"]
	if !vsc.UpdateAvailable || vsc.LatestVersion != "1.2.0" {
		t.Errorf("vscode status %+v, want update to 1.2.0", vsc)
	}

	// 7-Zip is installed only: latest mirrors current.
	zip := byID["7zip.7zip"]
	if zip.UpdateAvailable || zip.LatestVersion != "23.01" {
		t.Errorf("7zip status %+v, want no update", zip)
	}

	if got := CountUpdates(statuses); got != 1 {
		t.Errorf("CountUpdates = %d, want 1", got)
	}
}
