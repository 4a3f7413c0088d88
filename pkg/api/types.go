package api

import "fmt"

// Mode selects how the orchestrator treats a query. In ModeToolEnabled the
// model is offered the tool catalogue and may call out to the backend; in
// ModeGrounded the catalogue is withheld entirely, so the model is
// structurally unable to request a tool call.
type Mode string

const (
	ModeToolEnabled Mode = "tool_enabled"
	ModeGrounded    Mode = "grounded"
)

// ParseMode normalizes a caller-supplied mode string. Unknown values are an
// error so a typo never silently enables or disables tools.
func ParseMode(s string) (Mode, error) {
	switch s {
	case string(ModeToolEnabled), "tools", "tool-enabled":
		return ModeToolEnabled, nil
	case string(ModeGrounded), "":
		return ModeGrounded, nil
	}
	return "", fmt.Errorf("unknown mode %q", s)
}

// HistoryTurn is one prior conversation turn supplied by the caller.
// The caller owns history across calls; the orchestrator only reads it.
type HistoryTurn struct {
	Role    string `json:"role"` // "user" or "assistant"
	Content string `json:"content"`
}

// Source is a citation extracted from tool output.
type Source struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// FinalAnswer is the only output of an orchestrator run. Every code path,
// including model failures and the iteration cap, resolves to one.
type FinalAnswer struct {
	Content    string   `json:"content"`
	ToolsUsed  []string `json:"tools_used"`
	Sources    []Source `json:"sources"`
	Confidence float64  `json:"confidence"`
	Iterations int      `json:"iterations"`
}
