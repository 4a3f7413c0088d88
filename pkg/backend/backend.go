package backend

import (
	"context"
	"log/slog"

	"scout/pkg/api"
	"scout/pkg/config"
)

// Mode identifies which tool backend an orchestrator is bound to.
type Mode string

const (
	ModeLive Mode = "live"
	ModeMock Mode = "mock"
)

// Invoker is the uniform entry point for executing a named tool. Live and
// mock implementations return identical ToolResult shapes so callers are
// backend-agnostic. Invoke never returns a Go error: transport failures,
// non-2xx statuses, and malformed bodies all surface as
// ToolResult{Success:false, Error}.
type Invoker interface {
	Invoke(ctx context.Context, tool string, args map[string]any) *api.ToolResult
	Mode() Mode
}

// Select issues a one-shot reachability probe against the live backend's
// health endpoint and returns the invoker the orchestrator should run with
// for its lifetime. Any non-success response or timeout selects the mock
// implementation; the decision is made exactly once, here, and the returned
// invoker is immutable thereafter.
func Select(ctx context.Context, cfg *config.Config, sys *config.SystemConfig) Invoker {
	live := NewLiveBackend(cfg.Backend.BaseURL, sys)

	if err := live.Probe(ctx); err != nil {
		slog.Warn("Tool backend unreachable, using mock implementation",
			"base_url", cfg.Backend.BaseURL, "error", err)
		return NewMockBackend(sys)
	}

	slog.Info("Tool backend reachable", "base_url", cfg.Backend.BaseURL)
	return live
}
