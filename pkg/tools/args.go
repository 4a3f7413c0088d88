package tools

import (
	"fmt"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// decodeArgs converts the model-supplied argument map into a typed argument
// struct at the dispatch boundary, so malformed arguments fail fast here
// rather than deep inside a handler or the backend.
func decodeArgs(args map[string]any, out any) error {
	raw, err := json.Marshal(args)
	if err != nil {
		return fmt.Errorf("failed to encode arguments: %w", err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("malformed arguments: %w", err)
	}
	return nil
}

// invalidArgs wraps an argument validation failure as a failed ToolResult.
// Validation failures are tool-level outcomes the model can react to, not
// execution errors.
func invalidArgs(err error) *ToolResult {
	return &ToolResult{Success: false, Error: err.Error()}
}
