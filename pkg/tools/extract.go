package tools

import (
	"context"
	"fmt"

	"scout/pkg/backend"
)

var extractModes = map[string]bool{
	"full":        true,
	"main":        true,
	"readability": true,
}

// ExtractTool fetches a web page through the tool backend and returns its
// textual content.
type ExtractTool struct {
	invoker backend.Invoker
}

func NewExtractTool(invoker backend.Invoker) *ExtractTool {
	return &ExtractTool{invoker: invoker}
}

func (t *ExtractTool) Name() string {
	return "extract"
}

func (t *ExtractTool) Description() string {
	return "Fetch a web page and extract its textual content. Use this after a search to read a promising result in detail."
}

func (t *ExtractTool) Parameters() map[string]any {
	return map[string]any{
		"url": map[string]any{
			"type":        "string",
			"description": "The URL of the page to extract",
		},
		"mode": map[string]any{
			"type":        "string",
			"enum":        []string{"full", "main", "readability"},
			"description": "Extraction mode: 'full' returns the whole page text, 'main' the main content block, 'readability' a cleaned article view (default)",
		},
	}
}

func (t *ExtractTool) RequiredParameters() []string {
	return []string{"url"}
}

type extractArgs struct {
	URL  string `json:"url"`
	Mode string `json:"mode"`
}

func (t *ExtractTool) Execute(ctx context.Context, args map[string]any) (*ToolResult, error) {
	var parsed extractArgs
	if err := decodeArgs(args, &parsed); err != nil {
		return invalidArgs(err), nil
	}
	if parsed.URL == "" {
		return invalidArgs(fmt.Errorf("'url' is required and must be a non-empty string")), nil
	}
	if parsed.Mode == "" {
		parsed.Mode = "readability"
	}
	if !extractModes[parsed.Mode] {
		return invalidArgs(fmt.Errorf("invalid mode '%s': must be one of full, main, readability", parsed.Mode)), nil
	}

	return t.invoker.Invoke(ctx, t.Name(), map[string]any{
		"url":  parsed.URL,
		"mode": parsed.Mode,
	}), nil
}
