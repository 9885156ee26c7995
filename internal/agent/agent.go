package agent

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/winghq/wingman/internal/config"
	"github.com/winghq/wingman/internal/store"
	"github.com/winghq/wingman/internal/winget"
)

// Agent runs the periodic scan and heartbeat loops. Scans are persisted
// locally; status reports go to the server when one is configured, and
// queue in the store outbox when delivery fails.
type Agent struct {
	cfg    *config.Config
	store  *store.Store
	client *Client

	// triggers delivers external rescan requests, typically from the
	// filesystem watcher. May be nil.
	triggers <-chan struct{}

	capabilities []string

	// scan is swapped out in tests.
	scan func(ctx context.Context) ([]winget.UpdateStatus, error)
}

// keepScans bounds local scan history.
const keepScans = 50

// New builds an agent from configuration. The client is nil when no
// server URL is configured; the agent then runs scan-only.
func New(cfg *config.Config, st *store.Store, triggers <-chan struct{}) *Agent {
	a := &Agent{
		cfg:          cfg,
		store:        st,
		triggers:     triggers,
		capabilities: DetectCapabilities(),
	}

	if cfg.Server.URL != "" {
		a.client = &Client{
			ServerURL: cfg.Server.URL,
			APIKey:    cfg.Server.APIKey,
			AgentID:   cfg.Agent.ID,
		}
	}

	runner := winget.Runner{Binary: cfg.Winget.Binary}
	a.scan = runner.Scan

	return a
}

// Run executes the agent loops until ctx is cancelled. One scan runs
// immediately on startup so the local history is never empty.
func (a *Agent) Run(ctx context.Context) error {
	log.Printf("agent %s starting (heartbeat %s, scan every %s)",
		a.cfg.Agent.ID, a.cfg.Agent.Heartbeat.Std(), a.cfg.Agent.ScanInterval.Std())

	a.report(ctx, StatusOnline, "agent started")
	a.runScan(ctx)

	heartbeat := time.NewTicker(a.cfg.Agent.Heartbeat.Std())
	defer heartbeat.Stop()
	scanTicker := time.NewTicker(a.cfg.Agent.ScanInterval.Std())
	defer scanTicker.Stop()

	for {
		select {
		case <-ctx.Done():
			a.report(context.Background(), StatusOffline, "agent stopping")
			return ctx.Err()
		case <-heartbeat.C:
			a.report(ctx, StatusOnline, "heartbeat")
			a.flushOutbox(ctx)
		case <-scanTicker.C:
			a.runScan(ctx)
		case _, ok := <-a.triggers:
			if !ok {
				a.triggers = nil
				continue
			}
			log.Printf("filesystem change detected, rescanning")
			a.runScan(ctx)
		}
	}
}

// runScan performs one full scan cycle: list, reconcile, persist, prune.
func (a *Agent) runScan(ctx context.Context) {
	a.report(ctx, StatusScanning, "scan started")

	scanCtx, cancel := context.WithTimeout(ctx, a.cfg.Agent.ScanTimeout.Std())
	defer cancel()

	started := time.Now()
	statuses, err := a.scan(scanCtx)
	if err != nil {
		log.Printf("scan failed: %v", err)
		a.report(ctx, StatusFailed, fmt.Sprintf("scan failed: %v", err))
		return
	}
	duration := time.Since(started)

	if _, err := a.store.InsertScan(started, duration, statuses); err != nil {
		log.Printf("failed to persist scan: %v", err)
		a.report(ctx, StatusFailed, fmt.Sprintf("failed to persist scan: %v", err))
		return
	}
	if err := a.store.PruneScans(keepScans); err != nil {
		log.Printf("failed to prune scan history: %v", err)
	}

	updates := winget.CountUpdates(statuses)
	log.Printf("scan complete: %d packages, %d updates (%s)", len(statuses), updates, duration.Round(time.Millisecond))
	a.report(ctx, StatusSuccess, fmt.Sprintf("%d packages scanned, %d updates available", len(statuses), updates))
}

// report sends a status to the server, falling back to the outbox so
// transient network failures do not lose reports. No-op without a server.
func (a *Agent) report(ctx context.Context, status, message string) {
	if a.client == nil {
		return
	}
	if err := a.client.SendStatus(ctx, status, message, a.capabilities); err != nil {
		log.Printf("status delivery failed, queueing: %v", err)
		if qerr := a.store.EnqueueReport(status, message, time.Now()); qerr != nil {
			log.Printf("failed to queue report: %v", qerr)
		}
	}
}

// flushOutbox retries queued reports, stopping at the first failure so
// ordering is preserved.
func (a *Agent) flushOutbox(ctx context.Context) {
	if a.client == nil {
		return
	}
	pending, err := a.store.PendingReports()
	if err != nil {
		log.Printf("failed to read report outbox: %v", err)
		return
	}

	for _, r := range pending {
		payload := a.client.NewPayload(r.Status, r.Message, a.capabilities)
		payload.Timestamp = r.ReportedAt.Format(time.RFC3339)
		if err := a.client.Send(ctx, payload); err != nil {
			return
		}
		if err := a.store.MarkReportDelivered(r.ID); err != nil {
			log.Printf("failed to mark report %d delivered: %v", r.ID, err)
			return
		}
	}
}
