package tools

import (
	"context"
	"fmt"

	"scout/pkg/backend"
)

const (
	defaultMaxResults = 10
	maxMaxResults     = 20
)

// SearchTool performs web search through the tool backend.
type SearchTool struct {
	invoker backend.Invoker
}

func NewSearchTool(invoker backend.Invoker) *SearchTool {
	return &SearchTool{invoker: invoker}
}

func (t *SearchTool) Name() string {
	return "search"
}

func (t *SearchTool) Description() string {
	return "Search the web for pages relevant to a query. Returns a ranked list of results with title, url and snippet. Use this first when you need external information."
}

func (t *SearchTool) Parameters() map[string]any {
	return map[string]any{
		"query": map[string]any{
			"type":        "string",
			"description": "The search query",
		},
		"max_results": map[string]any{
			"type":        "integer",
			"description": fmt.Sprintf("Maximum number of results to return (default %d, max %d)", defaultMaxResults, maxMaxResults),
		},
	}
}

func (t *SearchTool) RequiredParameters() []string {
	return []string{"query"}
}

type searchArgs struct {
	Query      string `json:"query"`
	MaxResults *int   `json:"max_results"`
}

// Execute validates and normalizes the arguments, then forwards the call to
// the backend. Validation failures come back as failed results, not errors.
func (t *SearchTool) Execute(ctx context.Context, args map[string]any) (*ToolResult, error) {
	var parsed searchArgs
	if err := decodeArgs(args, &parsed); err != nil {
		return invalidArgs(err), nil
	}
	if parsed.Query == "" {
		return invalidArgs(fmt.Errorf("'query' is required and must be a non-empty string")), nil
	}

	maxResults := defaultMaxResults
	if parsed.MaxResults != nil {
		maxResults = *parsed.MaxResults
		if maxResults < 1 {
			return invalidArgs(fmt.Errorf("'max_results' must be a positive integer")), nil
		}
		if maxResults > maxMaxResults {
			maxResults = maxMaxResults
		}
	}

	return t.invoker.Invoke(ctx, t.Name(), map[string]any{
		"query":       parsed.Query,
		"max_results": maxResults,
	}), nil
}
