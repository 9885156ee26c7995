// Package config loads the wingman YAML configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration.
type Config struct {
	Server ServerConfig `yaml:"server"`
	Agent  AgentConfig  `yaml:"agent"`
	Watch  WatchConfig  `yaml:"watch"`
	Winget WingetConfig `yaml:"winget"`
}

// ServerConfig holds the central reporting server settings. An empty URL
// disables reporting entirely: the agent then only maintains the local
// scan history.
type ServerConfig struct {
	URL    string `yaml:"url"`
	APIKey string `yaml:"api_key"`
}

// AgentConfig holds the polling agent settings.
type AgentConfig struct {
	ID           string   `yaml:"id"`            // defaults to the hostname
	Heartbeat    Duration `yaml:"heartbeat"`     // status ping interval
	ScanInterval Duration `yaml:"scan_interval"` // full winget scan interval
	ScanTimeout  Duration `yaml:"scan_timeout"`  // deadline for one scan
}

// WatchConfig lists directories whose changes trigger an immediate rescan.
type WatchConfig struct {
	Paths    []string `yaml:"paths"`
	Debounce Duration `yaml:"debounce"`
}

// WingetConfig holds package-manager execution settings.
type WingetConfig struct {
	Binary         string   `yaml:"binary"`          // override winget executable
	ChocoFallback  bool     `yaml:"choco_fallback"`  // retry failed upgrades via choco
	InstallTimeout Duration `yaml:"install_timeout"` // deadline for one install/upgrade
}

// Duration wraps time.Duration so YAML values can be written as "30s",
// "15m" and so on.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler using time.ParseDuration.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	hostname, err := os.Hostname()
	if err != nil {
		hostname = "wingman-agent"
	}

	return &Config{
		Agent: AgentConfig{
			ID:           hostname,
			Heartbeat:    Duration(30 * time.Second),
			ScanInterval: Duration(30 * time.Minute),
			ScanTimeout:  Duration(5 * time.Minute),
		},
		Watch: WatchConfig{
			Debounce: Duration(2 * time.Second),
		},
		Winget: WingetConfig{
			InstallTimeout: Duration(5 * time.Minute),
		},
	}
}

// Dir returns the wingman config directory, respecting XDG_CONFIG_HOME.
// Defaults to ~/.config/wingman.
func Dir() (string, error) {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "wingman"), nil
}

// DefaultPath returns the default config file path.
func DefaultPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Load reads the config file at path, applying defaults for anything not
// set. A missing file is not an error: defaults are returned as-is.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	// Re-apply defaults the file zeroed out or omitted.
	def := Default()
	if cfg.Agent.ID == "" {
		cfg.Agent.ID = def.Agent.ID
	}
	if cfg.Agent.Heartbeat == 0 {
		cfg.Agent.Heartbeat = def.Agent.Heartbeat
	}
	if cfg.Agent.ScanInterval == 0 {
		cfg.Agent.ScanInterval = def.Agent.ScanInterval
	}
	if cfg.Agent.ScanTimeout == 0 {
		cfg.Agent.ScanTimeout = def.Agent.ScanTimeout
	}
	if cfg.Watch.Debounce == 0 {
		cfg.Watch.Debounce = def.Watch.Debounce
	}
	if cfg.Winget.InstallTimeout == 0 {
		cfg.Winget.InstallTimeout = def.Winget.InstallTimeout
	}

	return cfg, nil
}
