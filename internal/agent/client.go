// Package agent implements the background update-monitoring agent: a
// polling loop that scans winget state, persists results, and reports
// status to a central server.
package agent

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Agent status values understood by the server.
const (
	StatusOnline     = "ONLINE"
	StatusOffline    = "OFFLINE"
	StatusScanning   = "SCANNING"
	StatusInstalling = "INSTALLING"
	StatusSuccess    = "SUCCESS"
	StatusFailed     = "FAILED"
	StatusTesting    = "TESTING"
)

// StatusPayload mirrors the server's /api/agent/status contract.
type StatusPayload struct {
	AgentID      string   `json:"agentId"`
	Status       string   `json:"status"`
	Message      string   `json:"message"`
	Timestamp    string   `json:"timestamp"`
	System       string   `json:"system"`
	Capabilities []string `json:"capabilities"`
}

// Client reports agent status to the central server using bearer-token
// authentication.
type Client struct {
	ServerURL string
	APIKey    string
	AgentID   string

	// HTTPClient overrides the default client (10 second timeout).
	HTTPClient *http.Client
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return &http.Client{Timeout: 10 * time.Second}
}

// NewPayload builds a status payload stamped with the current time.
func (c *Client) NewPayload(status, message string, capabilities []string) StatusPayload {
	return StatusPayload{
		AgentID:      c.AgentID,
		Status:       status,
		Message:      message,
		Timestamp:    time.Now().Format(time.RFC3339),
		System:       SystemName(),
		Capabilities: capabilities,
	}
}

// Send posts a status payload to the server.
func (c *Client) Send(ctx context.Context, payload StatusPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal status payload: %w", err)
	}

	url := strings.TrimRight(c.ServerURL, "/") + "/api/agent/status"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build status request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return fmt.Errorf("status request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// The body usually carries the server's reason; keep it short.
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("status request rejected: %s (%s)", resp.Status, strings.TrimSpace(string(snippet)))
	}

	return nil
}

// SendStatus is the common path: build a payload for status/message and
// send it.
func (c *Client) SendStatus(ctx context.Context, status, message string, capabilities []string) error {
	return c.Send(ctx, c.NewPayload(status, message, capabilities))
}

// Health checks server reachability via GET /health.
func (c *Client) Health(ctx context.Context) error {
	url := strings.TrimRight(c.ServerURL, "/") + "/health"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to build health request: %w", err)
	}

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health check failed: %s", resp.Status)
	}
	return nil
}
