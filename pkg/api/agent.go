package api

import "context"

// Orchestrator defines the interface for the core reasoning loop.
// Process never returns an error: every failure path resolves to a
// FinalAnswer with explanatory content and a low confidence value.
type Orchestrator interface {
	Process(ctx context.Context, query string, mode Mode, history []HistoryTurn) *FinalAnswer
}
