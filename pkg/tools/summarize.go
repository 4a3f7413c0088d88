package tools

import (
	"context"
	"fmt"

	"scout/pkg/backend"
)

var summaryLengths = map[string]bool{
	"short":  true,
	"medium": true,
	"long":   true,
}

// SummarizeTool condenses a web page through the tool backend.
type SummarizeTool struct {
	invoker backend.Invoker
}

func NewSummarizeTool(invoker backend.Invoker) *SummarizeTool {
	return &SummarizeTool{invoker: invoker}
}

func (t *SummarizeTool) Name() string {
	return "summarize"
}

func (t *SummarizeTool) Description() string {
	return "Fetch a web page and produce a condensed summary of it. Prefer this over extract when only the gist of a page is needed."
}

func (t *SummarizeTool) Parameters() map[string]any {
	return map[string]any{
		"url": map[string]any{
			"type":        "string",
			"description": "The URL of the page to summarize",
		},
		"length": map[string]any{
			"type":        "string",
			"enum":        []string{"short", "medium", "long"},
			"description": "Desired summary length (default 'medium')",
		},
	}
}

func (t *SummarizeTool) RequiredParameters() []string {
	return []string{"url"}
}

type summarizeArgs struct {
	URL    string `json:"url"`
	Length string `json:"length"`
}

func (t *SummarizeTool) Execute(ctx context.Context, args map[string]any) (*ToolResult, error) {
	var parsed summarizeArgs
	if err := decodeArgs(args, &parsed); err != nil {
		return invalidArgs(err), nil
	}
	if parsed.URL == "" {
		return invalidArgs(fmt.Errorf("'url' is required and must be a non-empty string")), nil
	}
	if parsed.Length == "" {
		parsed.Length = "medium"
	}
	if !summaryLengths[parsed.Length] {
		return invalidArgs(fmt.Errorf("invalid length '%s': must be one of short, medium, long", parsed.Length)), nil
	}

	return t.invoker.Invoke(ctx, t.Name(), map[string]any{
		"url":    parsed.URL,
		"length": parsed.Length,
	}), nil
}
