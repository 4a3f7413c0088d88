package config

import (
	"fmt"
	"os"

	jsoniter "github.com/json-iterator/go"
)

// Config defines the global application configuration structure.
// This structure maps directly to the config.json file and holds
// business-level settings like provider credentials and endpoints.
type Config struct {
	// LLM holds the configuration for the model providers in raw JSON.
	// It is decoded by the llm package's provider loader.
	LLM jsoniter.RawMessage `json:"llm"`
	// Backend configures the live tool-execution service.
	Backend BackendConfig `json:"backend"`
	// Server configures the caller-facing HTTP/WebSocket API.
	Server ServerConfig `json:"server"`
}

// BackendConfig locates the live tool-execution backend.
type BackendConfig struct {
	// BaseURL is the root of the tool backend, e.g. "http://localhost:8000".
	// Tool calls go to {BaseURL}/tools/{name}; the startup reachability
	// probe goes to {BaseURL}/health.
	BaseURL string `json:"base_url"`
}

// ServerConfig configures the HTTP API surface.
type ServerConfig struct {
	Port int `json:"port"` // Default: 9453
}

// Validate ensures the configuration structure contains all mandatory fields.
// It acts as a primary guard before the system proceeds to initialization.
func (c *Config) Validate() error {
	if len(c.LLM) == 0 {
		return fmt.Errorf("mandatory 'llm' configuration is missing or empty")
	}
	return nil
}

// SystemConfig defines engine-level technical parameters.
// These settings are stored in system.json and control the performance,
// reliability, and technical behavior of the orchestrator.
type SystemConfig struct {
	// MaxIterations is the hard cap on tool-dispatch rounds in a single
	// orchestrator run. It bounds worst-case latency and cost independent
	// of model behavior.
	MaxIterations int `json:"max_iterations"`
	// HistoryWindow is the number of trailing caller-supplied history
	// turns included in the model context.
	HistoryWindow int `json:"history_window"`
	// SourceLimit caps the source list in the final answer. Sources
	// accumulate unbounded during the loop and are truncated only at
	// finalize time.
	SourceLimit int `json:"source_limit"`
	// MaxRetries is the number of times the fallback client will attempt
	// to recover from a transient provider error before giving up.
	MaxRetries int `json:"max_retries"`
	// RetryDelayMs is the duration to wait (in milliseconds) between
	// consecutive provider retry attempts.
	RetryDelayMs int `json:"retry_delay_ms"`
	// ProbeTimeoutMs is the hard cutoff (in milliseconds) for the one-shot
	// backend health probe. On expiry the orchestrator runs against the
	// mock backend instead of blocking.
	ProbeTimeoutMs int `json:"probe_timeout_ms"`
	// LLMTimeoutMs is the hard cutoff time (in milliseconds) for a single
	// model call. The context will be cancelled if exceeded.
	LLMTimeoutMs int `json:"llm_timeout_ms"`
	// ToolTimeoutMs is the hard cutoff time (in milliseconds) for a single
	// tool dispatch. There is no automatic retry.
	ToolTimeoutMs int `json:"tool_timeout_ms"`
	// MockLatencyMs is the simulated latency of the mock backend.
	MockLatencyMs int `json:"mock_latency_ms"`
	// LogLevel sets the minimum severity for log output.
	// Accepted values: "debug", "info", "warn", "error". Default: "info".
	LogLevel string `json:"log_level"`
	// EnableTools globally toggles tool calling. If false, the model is
	// never offered the tool catalogue regardless of the per-request mode.
	EnableTools bool `json:"enable_tools"`
}

// DefaultSystemConfig returns a SystemConfig pointer initialized with
// hardcoded safe default values. This is used as a fallback when the
// system.json file is missing or corrupt, ensuring the engine can always start.
func DefaultSystemConfig() *SystemConfig {
	return &SystemConfig{
		MaxIterations:  5,
		HistoryWindow:  6,
		SourceLimit:    5,
		MaxRetries:     3,
		RetryDelayMs:   500,
		ProbeTimeoutMs: 2000,
		LLMTimeoutMs:   120000,
		ToolTimeoutMs:  30000,
		MockLatencyMs:  300,
		LogLevel:       "info",
		EnableTools:    true,
	}
}

// Load reads and parses the JSON configuration files from the current working directory.
// It first attempts to load 'config.json' (app config). If this file is missing, it returns an error.
// Then it calls LoadSystemConfig to load 'system.json'.
// Returns pointers to the loaded Config and SystemConfig, or an error if the mandatory app config fails.
func Load() (*Config, *SystemConfig, error) {
	// 1. Load Application Config
	appPath := "config.json"
	if _, err := os.Stat(appPath); os.IsNotExist(err) {
		return nil, nil, fmt.Errorf("config file '%s' not found. please create one", appPath)
	}

	appFile, err := os.ReadFile(appPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal(appFile, &cfg); err != nil {
		return nil, nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// 1a. Validate structure integrity
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	// 1b. Fill endpoint defaults
	if cfg.Backend.BaseURL == "" {
		cfg.Backend.BaseURL = "http://localhost:8000"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 9453
	}

	// 2. Load System Config independently
	sysCfg := LoadSystemConfig("system.json")

	return &cfg, sysCfg, nil
}

// LoadSystemConfig attempts to load system settings, returns defaults if it fails
func LoadSystemConfig(path string) *SystemConfig {
	cfg := DefaultSystemConfig()

	file, err := os.ReadFile(path)
	if err != nil {
		return cfg // File not found, use defaults
	}

	if err := jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal(file, cfg); err != nil {
		return cfg // Parse failed, use defaults
	}

	return cfg
}
