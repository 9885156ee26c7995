package store

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/winghq/wingman/internal/winget"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(":memory:")
	if err != nil {
		t.Fatalf("failed to open in-memory store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	if err := s.CreateSchema(); err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}
	return s
}

func sampleStatuses() []winget.UpdateStatus {
	return []winget.UpdateStatus{
		{Name: "Zulu App", ID: "zulu.app", CurrentVersion: "1.0", LatestVersion: "2.0", UpdateAvailable: true},
		{Name: "Alpha App", ID: "alpha.app", CurrentVersion: "3.1", LatestVersion: "3.1"},
		{Name: "No ID App", ID: "", CurrentVersion: "0.9", LatestVersion: "0.9"},
	}
}

func TestInsertAndReloadScan(t *testing.T) {
	s := newTestStore(t)
	statuses := sampleStatuses()

	started := time.Now().Truncate(time.Second)
	scanID, err := s.InsertScan(started, 1500*time.Millisecond, statuses)
	if err != nil {
		t.Fatalf("InsertScan: %v", err)
	}

	scan, err := s.LatestScan()
	if err != nil {
		t.Fatalf("LatestScan: %v", err)
	}
	if scan.ID != scanID {
		t.Errorf("scan id %d, want %d", scan.ID, scanID)
	}
	if scan.PackageCount != 3 || scan.UpdateCount != 1 {
		t.Errorf("scan counts %+v, want 3 packages / 1 update", scan)
	}
	if scan.Duration != 1500*time.Millisecond {
		t.Errorf("duration %v, want 1.5s", scan.Duration)
	}

	// Rows come back in original (not alphabetical) order.
	reloaded, err := s.ScanPackages(scanID)
	if err != nil {
		t.Fatalf("ScanPackages: %v", err)
	}
	if !reflect.DeepEqual(reloaded, statuses) {
		t.Errorf("reloaded rows mismatch:\ngot:  %+v\nwant: %+v", reloaded, statuses)
	}
}

func TestLatestScanEmpty(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.LatestScan(); !errors.Is(err, ErrNoScans) {
		t.Errorf("LatestScan on empty store = %v, want ErrNoScans", err)
	}
}

func TestLatestScanPicksNewest(t *testing.T) {
	s := newTestStore(t)

	if _, err := s.InsertScan(time.Now().Add(-time.Hour), time.Second, nil); err != nil {
		t.Fatal(err)
	}
	second, err := s.InsertScan(time.Now(), time.Second, sampleStatuses())
	if err != nil {
		t.Fatal(err)
	}

	scan, err := s.LatestScan()
	if err != nil {
		t.Fatal(err)
	}
	if scan.ID != second {
		t.Errorf("latest scan id %d, want %d", scan.ID, second)
	}
}

func TestPruneScans(t *testing.T) {
	s := newTestStore(t)

	var last int64
	for i := 0; i < 5; i++ {
		id, err := s.InsertScan(time.Now(), time.Second, sampleStatuses())
		if err != nil {
			t.Fatal(err)
		}
		last = id
	}

	if err := s.PruneScans(2); err != nil {
		t.Fatalf("PruneScans: %v", err)
	}

	var count int
	if err := s.DB().QueryRow("SELECT COUNT(*) FROM scans").Scan(&count); err != nil {
		t.Fatal(err)
	}
	if count != 2 {
		t.Errorf("%d scans after prune, want 2", count)
	}

	// Newest scan and its rows survive.
	if _, err := s.ScanPackages(last); err != nil {
		t.Errorf("newest scan rows gone: %v", err)
	}

	// Pruned scan rows cascade away.
	var orphans int
	if err := s.DB().QueryRow(
		"SELECT COUNT(*) FROM scan_packages WHERE scan_id NOT IN (SELECT id FROM scans)",
	).Scan(&orphans); err != nil {
		t.Fatal(err)
	}
	if orphans != 0 {
		t.Errorf("%d orphaned package rows after prune", orphans)
	}
}

func TestReportOutbox(t *testing.T) {
	s := newTestStore(t)

	now := time.Now().Truncate(time.Second)
	if err := s.EnqueueReport("ONLINE", "agent started", now); err != nil {
		t.Fatalf("EnqueueReport: %v", err)
	}
	if err := s.EnqueueReport("FAILED", "install failed", now.Add(time.Minute)); err != nil {
		t.Fatalf("EnqueueReport: %v", err)
	}

	pending, err := s.PendingReports()
	if err != nil {
		t.Fatalf("PendingReports: %v", err)
	}
	if len(pending) != 2 {
		t.Fatalf("%d pending reports, want 2", len(pending))
	}
	if pending[0].Status != "ONLINE" || pending[1].Status != "FAILED" {
		t.Errorf("pending order wrong: %+v", pending)
	}

	if err := s.MarkReportDelivered(pending[0].ID); err != nil {
		t.Fatalf("MarkReportDelivered: %v", err)
	}

	pending, err = s.PendingReports()
	if err != nil {
		t.Fatal(err)
	}
	if len(pending) != 1 || pending[0].Status != "FAILED" {
		t.Errorf("after delivery pending = %+v, want only FAILED", pending)
	}
}
