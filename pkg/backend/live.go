package backend

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"scout/pkg/api"
	"scout/pkg/config"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// LiveBackend executes tools against the HTTP tool-execution service:
// POST {baseURL}/tools/{name} with the arguments as the JSON body.
// Each dispatch is a single attempt with a hard per-call timeout; there is
// no automatic retry.
type LiveBackend struct {
	baseURL      string
	client       *http.Client
	probeTimeout time.Duration
	callTimeout  time.Duration
}

// NewLiveBackend builds a live invoker for the given base URL. The invoker
// is not usable for dispatch decisions until Probe has succeeded; Select
// owns that handshake.
func NewLiveBackend(baseURL string, sys *config.SystemConfig) *LiveBackend {
	return &LiveBackend{
		baseURL:      baseURL,
		client:       &http.Client{},
		probeTimeout: time.Duration(sys.ProbeTimeoutMs) * time.Millisecond,
		callTimeout:  time.Duration(sys.ToolTimeoutMs) * time.Millisecond,
	}
}

func (b *LiveBackend) Mode() Mode {
	return ModeLive
}

// Probe performs the one-shot reachability check against the backend's
// health endpoint. Anything other than a 2xx response within the probe
// timeout is a failure.
func (b *LiveBackend) Probe(ctx context.Context) error {
	probeCtx, cancel := context.WithTimeout(ctx, b.probeTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(probeCtx, http.MethodGet, b.baseURL+"/health", nil)
	if err != nil {
		return err
	}

	resp, err := b.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("health endpoint returned status %d", resp.StatusCode)
	}
	return nil
}

// Invoke implements Invoker against the live service.
func (b *LiveBackend) Invoke(ctx context.Context, tool string, args map[string]any) *api.ToolResult {
	body, err := json.Marshal(args)
	if err != nil {
		return &api.ToolResult{Success: false, Error: fmt.Sprintf("failed to encode arguments: %v", err)}
	}

	callCtx, cancel := context.WithTimeout(ctx, b.callTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(callCtx, http.MethodPost, b.baseURL+"/tools/"+tool, bytes.NewReader(body))
	if err != nil {
		return &api.ToolResult{Success: false, Error: fmt.Sprintf("failed to build request: %v", err)}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := b.client.Do(req)
	if err != nil {
		return &api.ToolResult{Success: false, Error: fmt.Sprintf("tool backend unreachable: %v", err)}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &api.ToolResult{Success: false, Error: fmt.Sprintf("failed to read response: %v", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &api.ToolResult{Success: false, Error: fmt.Sprintf("tool backend returned status %d", resp.StatusCode)}
	}

	var data map[string]any
	if err := json.Unmarshal(raw, &data); err != nil {
		return &api.ToolResult{Success: false, Error: fmt.Sprintf("malformed response body: %v", err)}
	}

	// The service reports tool-level failures inside a 2xx envelope:
	// {"success": false, "error": "..."}.
	if success, ok := data["success"].(bool); ok && !success {
		msg, _ := data["error"].(string)
		if msg == "" {
			msg = "tool execution failed"
		}
		return &api.ToolResult{Success: false, Error: msg}
	}

	return &api.ToolResult{Success: true, Data: data}
}
