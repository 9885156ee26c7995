package agent

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/winghq/wingman/internal/config"
	"github.com/winghq/wingman/internal/store"
	"github.com/winghq/wingman/internal/winget"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.New(":memory:")
	if err != nil {
		t.Fatalf("failed to open in-memory store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	if err := s.CreateSchema(); err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}
	return s
}

func TestRunScanPersistsResults(t *testing.T) {
	st := newTestStore(t)
	a := New(config.Default(), st, nil)
	a.scan = func(ctx context.Context) ([]winget.UpdateStatus, error) {
		return []winget.UpdateStatus{
			{Name: "7-Zip", ID: "7zip.7zip", CurrentVersion: "23.01", LatestVersion: "24.01", UpdateAvailable: true},
			{Name: "Notepad++", ID: "Notepad++.Notepad++", CurrentVersion: "8.6", LatestVersion: "8.6"},
		}, nil
	}

	a.runScan(context.Background())

	scan, err := st.LatestScan()
	if err != nil {
		t.Fatalf("LatestScan: %v", err)
	}
	if scan.PackageCount != 2 || scan.UpdateCount != 1 {
		t.Errorf("scan counts %+v, want 2 packages / 1 update", scan)
	}
}

func TestRunScanFailureRecordsNothing(t *testing.T) {
	st := newTestStore(t)
	a := New(config.Default(), st, nil)
	a.scan = func(ctx context.Context) ([]winget.UpdateStatus, error) {
		return nil, context.DeadlineExceeded
	}

	a.runScan(context.Background())

	if _, err := st.LatestScan(); err != store.ErrNoScans {
		t.Errorf("LatestScan after failed scan = %v, want ErrNoScans", err)
	}
}

func TestReportQueuesOnDeliveryFailure(t *testing.T) {
	st := newTestStore(t)
	cfg := config.Default()
	cfg.Server.URL = "http://127.0.0.1:1" // nothing listens here
	cfg.Server.APIKey = "k"
	a := New(cfg, st, nil)

	a.report(context.Background(), StatusFailed, "install failed")

	pending, err := st.PendingReports()
	if err != nil {
		t.Fatal(err)
	}
	if len(pending) != 1 || pending[0].Status != StatusFailed {
		t.Fatalf("pending reports %+v, want one FAILED", pending)
	}
}

func TestFlushOutboxDeliversQueued(t *testing.T) {
	var delivered atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		delivered.Add(1)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	st := newTestStore(t)
	cfg := config.Default()
	cfg.Server.URL = srv.URL
	cfg.Server.APIKey = "k"
	a := New(cfg, st, nil)

	// Queue a report as if the server had been unreachable.
	if err := st.EnqueueReport(StatusScanning, "scan started", time.Now()); err != nil {
		t.Fatal(err)
	}

	a.flushOutbox(context.Background())

	if delivered.Load() != 1 {
		t.Errorf("%d deliveries, want 1", delivered.Load())
	}
	pending, err := st.PendingReports()
	if err != nil {
		t.Fatal(err)
	}
	if len(pending) != 0 {
		t.Errorf("%d reports still pending, want 0", len(pending))
	}
}

func TestReportWithoutServerIsNoop(t *testing.T) {
	st := newTestStore(t)
	a := New(config.Default(), st, nil)

	a.report(context.Background(), StatusOnline, "heartbeat")

	pending, err := st.PendingReports()
	if err != nil {
		t.Fatal(err)
	}
	if len(pending) != 0 {
		t.Errorf("reports queued without a server configured: %+v", pending)
	}
}

func TestDetectCapabilitiesAlwaysIncludesManual(t *testing.T) {
	caps := DetectCapabilities()
	found := false
	for _, c := range caps {
		if c == CapabilityManual {
			found = true
		}
	}
	if !found {
		t.Errorf("capabilities %v missing MANUAL", caps)
	}
}

func TestSystemName(t *testing.T) {
	switch got := SystemName(); got {
	case "WINDOWS", "LINUX", "MACOS", "UNKNOWN":
	default:
		t.Errorf("SystemName() = %q", got)
	}
}
