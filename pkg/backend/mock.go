package backend

import (
	"context"
	"fmt"
	"time"

	"scout/pkg/api"
	"scout/pkg/config"
)

// MockBackend is a synthetic substitute for the live tool-execution service,
// used when the latter is unreachable (development/offline mode). It returns
// well-formed payloads shaped like the live service's responses and
// simulates realistic latency, so the rest of the pipeline exercises the
// same code paths either way.
type MockBackend struct {
	latency time.Duration
}

func NewMockBackend(sys *config.SystemConfig) *MockBackend {
	return &MockBackend{
		latency: time.Duration(sys.MockLatencyMs) * time.Millisecond,
	}
}

func (b *MockBackend) Mode() Mode {
	return ModeMock
}

// Invoke implements Invoker with synthetic data.
func (b *MockBackend) Invoke(ctx context.Context, tool string, args map[string]any) *api.ToolResult {
	select {
	case <-ctx.Done():
		return &api.ToolResult{Success: false, Error: ctx.Err().Error()}
	case <-time.After(b.latency):
	}

	switch tool {
	case "search":
		return b.search(args)
	case "extract":
		return b.extract(args)
	case "summarize":
		return b.summarize(args)
	}
	return &api.ToolResult{Success: false, Error: fmt.Sprintf("unknown tool '%s'", tool)}
}

func (b *MockBackend) search(args map[string]any) *api.ToolResult {
	query, _ := args["query"].(string)

	// max_results arrives as int from the dispatch layer or float64 from
	// decoded JSON.
	max := 3
	switch mr := args["max_results"].(type) {
	case int:
		if mr < max {
			max = mr
		}
	case float64:
		if int(mr) < max {
			max = int(mr)
		}
	}

	results := make([]any, 0, max)
	for i := 1; i <= max; i++ {
		results = append(results, map[string]any{
			"title":   fmt.Sprintf("Result %d for %q", i, query),
			"url":     fmt.Sprintf("https://example.com/articles/%d", i),
			"snippet": fmt.Sprintf("Synthetic search snippet %d covering %q.", i, query),
			"score":   1.0 - float64(i-1)*0.2,
		})
	}

	return &api.ToolResult{
		Success: true,
		Data: map[string]any{
			"success":       true,
			"query":         query,
			"results":       results,
			"total_results": len(results),
		},
	}
}

func (b *MockBackend) extract(args map[string]any) *api.ToolResult {
	url, _ := args["url"].(string)
	mode, _ := args["mode"].(string)

	return &api.ToolResult{
		Success: true,
		Data: map[string]any{
			"success": true,
			"title":   "Extracted page",
			"url":     url,
			"mode":    mode,
			"content": fmt.Sprintf("Synthetic extracted content of %s (mode: %s).", url, mode),
		},
	}
}

func (b *MockBackend) summarize(args map[string]any) *api.ToolResult {
	url, _ := args["url"].(string)
	length, _ := args["length"].(string)

	return &api.ToolResult{
		Success: true,
		Data: map[string]any{
			"success": true,
			"title":   "Summary",
			"url":     url,
			"length":  length,
			"summary": fmt.Sprintf("Synthetic %s summary of %s.", length, url),
		},
	}
}
