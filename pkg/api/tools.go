package api

import "context"

// Tool defines the structural interface for any capability the orchestrator
// can execute on the model's behalf. It includes the metadata injected into
// the model's tool schema (JSON Schema fragments) and the execution logic.
type Tool interface {
	// Name is the unique catalogue key the model calls the tool by.
	Name() string
	// Description is model-facing, behavior-affecting text: its wording
	// changes which tool the model selects, so it is contract, not docs.
	Description() string
	// Parameters returns the JSON Schema property map for the arguments.
	Parameters() map[string]any
	// RequiredParameters lists the property names the model must supply.
	RequiredParameters() []string
	// Execute runs the tool. Argument validation failures are reported in
	// the ToolResult, not as an error; a non-nil error means the tool
	// could not run at all.
	Execute(ctx context.Context, args map[string]any) (*ToolResult, error)
}

// ToolResult is the uniform outcome of a tool execution, identical in shape
// whether the dispatch went to the live backend or the mock implementation.
type ToolResult struct {
	Success bool           `json:"success"`
	Data    map[string]any `json:"data,omitempty"`
	Error   string         `json:"error,omitempty"`
}

// ToolRegistry defines the interface for managing and accessing tools.
type ToolRegistry interface {
	Register(tool Tool)
	Unregister(name string)
	Get(name string) (Tool, bool)
	GetAll() []Tool
}
