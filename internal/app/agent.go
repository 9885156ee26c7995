package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/winghq/wingman/internal/agent"
	"github.com/winghq/wingman/internal/watcher"
)

var (
	agentDaemon      bool
	agentDaemonChild bool
	agentPIDFile     string
	agentLogFile     string
	agentStop        bool

	agentCmd = &cobra.Command{
		Use:   "agent",
		Short: "Run the background update-monitoring agent",
		Long: `Run the agent loop: periodic scans, heartbeats to the configured server,
and immediate rescans when watched directories change.

Agent modes:
  • Foreground (default): run in the current terminal, Ctrl+C to stop
  • Daemon: run as a detached background process
  • Stop: stop a running daemon`,
		Example: `  # Run in foreground (Ctrl+C to stop)
  wingman agent

  # Run as background daemon
  wingman agent --daemon

  # Stop running daemon
  wingman agent --stop`,
		RunE: runAgentCmd,
	}
)

func init() {
	agentCmd.Flags().BoolVar(&agentDaemon, "daemon", false, "run as background daemon")
	agentCmd.Flags().BoolVar(&agentDaemonChild, "daemon-child", false, "internal flag for daemon child process")
	agentCmd.Flags().StringVar(&agentPIDFile, "pid-file", "", "PID file path (default: ~/.wingman/agent.pid)")
	agentCmd.Flags().StringVar(&agentLogFile, "log-file", "", "log file path (default: ~/.wingman/agent.log)")
	agentCmd.Flags().BoolVar(&agentStop, "stop", false, "stop running daemon")

	agentCmd.Flags().MarkHidden("daemon-child")

	RootCmd.AddCommand(agentCmd)
}

func runAgentCmd(cmd *cobra.Command, args []string) error {
	if agentPIDFile == "" {
		defaultPID, err := getDefaultPIDFile()
		if err != nil {
			return fmt.Errorf("failed to get default PID file path: %w", err)
		}
		agentPIDFile = defaultPID
	}
	if agentLogFile == "" {
		defaultLog, err := getDefaultLogFile()
		if err != nil {
			return fmt.Errorf("failed to get default log file path: %w", err)
		}
		agentLogFile = defaultLog
	}

	if agentStop {
		return stopAgentDaemon()
	}

	if agentDaemon {
		return startAgentDaemon()
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	// Watcher is optional: no watch paths means timer-driven scans only.
	var triggers <-chan struct{}
	if len(cfg.Watch.Paths) > 0 {
		w, err := watcher.New(cfg.Watch.Paths, cfg.Watch.Debounce.Std())
		if err != nil {
			return fmt.Errorf("failed to create watcher: %w", err)
		}
		if err := w.Start(); err != nil {
			return fmt.Errorf("failed to start watcher: %w", err)
		}
		defer w.Stop()
		triggers = w.Triggers()
	}

	a := agent.New(cfg, db, triggers)

	if agentDaemonChild {
		// Child output goes to the log file; no terminal chatter here.
		return a.RunDaemon(agentPIDFile)
	}

	return runAgentForeground(a)
}

func startAgentDaemon() error {
	running, err := agent.IsDaemonRunning(agentPIDFile)
	if err != nil {
		return fmt.Errorf("failed to check daemon status: %w", err)
	}
	if running {
		return fmt.Errorf("agent already running (PID file: %s)", agentPIDFile)
	}

	if err := agent.StartDaemon(agentPIDFile, agentLogFile); err != nil {
		return fmt.Errorf("failed to start daemon: %w", err)
	}

	fmt.Println("✓ Agent daemon started")
	fmt.Printf("  PID file: %s\n", agentPIDFile)
	fmt.Printf("  Log file: %s\n", agentLogFile)
	fmt.Println("\nTo stop: wingman agent --stop")
	return nil
}

func stopAgentDaemon() error {
	running, err := agent.IsDaemonRunning(agentPIDFile)
	if err != nil {
		return fmt.Errorf("failed to check daemon status: %w", err)
	}
	if !running {
		fmt.Println("Agent is not running")
		return nil
	}

	if err := agent.StopDaemon(agentPIDFile); err != nil {
		return fmt.Errorf("failed to stop daemon: %w", err)
	}
	fmt.Println("✓ Agent stopped")
	return nil
}

func runAgentForeground(a *agent.Agent) error {
	fmt.Println("Starting agent (press Ctrl+C to stop)...")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT)

	errCh := make(chan error, 1)
	go func() {
		errCh <- a.Run(ctx)
	}()

	select {
	case sig := <-sigCh:
		fmt.Printf("\nReceived signal %v, shutting down...\n", sig)
		cancel()
		<-errCh
		return nil
	case err := <-errCh:
		if err != nil && err != context.Canceled {
			return fmt.Errorf("agent loop failed: %w", err)
		}
		return nil
	}
}
