package agent

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestClientSendStatus(t *testing.T) {
	var got StatusPayload
	var gotAuth, gotPath string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method %s, want POST", r.Method)
		}
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("content type %q", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("failed to decode payload: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := &Client{ServerURL: srv.URL, APIKey: "secret", AgentID: "test-agent"}
	err := c.SendStatus(context.Background(), StatusScanning, "scan started", []string{CapabilityManual})
	if err != nil {
		t.Fatalf("SendStatus: %v", err)
	}

	if gotPath != "/api/agent/status" {
		t.Errorf("path %q, want /api/agent/status", gotPath)
	}
	if gotAuth != "Bearer secret" {
		t.Errorf("auth header %q, want Bearer secret", gotAuth)
	}
	if got.AgentID != "test-agent" || got.Status != StatusScanning || got.Message != "scan started" {
		t.Errorf("payload %+v", got)
	}
	if got.System != SystemName() {
		t.Errorf("system %q, want %q", got.System, SystemName())
	}
	if _, err := time.Parse(time.RFC3339, got.Timestamp); err != nil {
		t.Errorf("timestamp %q not RFC3339: %v", got.Timestamp, err)
	}
	if len(got.Capabilities) != 1 || got.Capabilities[0] != CapabilityManual {
		t.Errorf("capabilities %v", got.Capabilities)
	}
}

func TestClientSendRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unknown agent", http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := &Client{ServerURL: srv.URL, APIKey: "wrong", AgentID: "test-agent"}
	err := c.SendStatus(context.Background(), StatusOnline, "hello", nil)
	if err == nil {
		t.Fatal("rejected status accepted")
	}
}

func TestClientSendTrimsTrailingSlash(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
	}))
	defer srv.Close()

	c := &Client{ServerURL: srv.URL + "/", APIKey: "k", AgentID: "a"}
	if err := c.SendStatus(context.Background(), StatusOnline, "", nil); err != nil {
		t.Fatal(err)
	}
	if gotPath != "/api/agent/status" {
		t.Errorf("path %q, want /api/agent/status", gotPath)
	}
}

func TestClientHealth(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/health" {
			http.NotFound(w, r)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := &Client{ServerURL: srv.URL}
	if err := c.Health(context.Background()); err != nil {
		t.Errorf("Health: %v", err)
	}

	c.ServerURL = srv.URL + "/missing"
	if err := c.Health(context.Background()); err == nil {
		t.Error("Health against bad path succeeded")
	}
}
