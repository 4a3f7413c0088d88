package ollamachat

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"scout/pkg/llm"

	jsoniter "github.com/json-iterator/go"
	"github.com/ollama/ollama/api"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// OllamaClient Ollama API client
type OllamaClient struct {
	client  *api.Client
	model   string
	options map[string]any
}

// NewOllamaClient creates an Ollama client
func NewOllamaClient(model string, baseURL string, options map[string]any) (*OllamaClient, error) {
	var client *api.Client
	var err error

	// Custom Transport to ensure no timeouts are imposed by the client;
	// per-request deadlines come from the caller's context.
	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   30 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          100,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
		ResponseHeaderTimeout: 0,
	}

	customClient := &http.Client{
		Transport: transport,
		Timeout:   0,
	}

	if baseURL != "" {
		u, err := url.Parse(baseURL)
		if err != nil {
			return nil, fmt.Errorf("invalid base URL: %w", err)
		}
		client = api.NewClient(u, customClient)
	} else {
		client, err = api.ClientFromEnvironment()
	}

	if err != nil {
		return nil, err
	}

	slog.Info("Ollama client initialized", "model", model, "base_url", baseURL)

	return &OllamaClient{
		client:  client,
		model:   model,
		options: options,
	}, nil
}

func (o *OllamaClient) Provider() string {
	return "ollama"
}

// Chat sends the conversation with Stream disabled; the callback fires once
// with the complete response.
func (o *OllamaClient) Chat(ctx context.Context, messages []llm.Message, tools []llm.ToolSchema) (*llm.Completion, error) {
	// Convert tools (using JSON conversion to work around SDK type mismatch issues)
	var ollamaTools []api.Tool
	if len(tools) > 0 {
		functions := make([]map[string]any, 0, len(tools))
		for _, t := range tools {
			functions = append(functions, t.AsFunction())
		}
		rawB, err := json.Marshal(functions)
		if err != nil {
			slog.Error("Failed to marshal tools", "provider", "ollama", "error", err)
		} else {
			if err := json.Unmarshal(rawB, &ollamaTools); err != nil {
				slog.Error("Failed to unmarshal to api.Tool", "provider", "ollama", "error", err)
			}
		}
	}

	streamVal := false
	req := &api.ChatRequest{
		Model:    o.model,
		Messages: o.convertMessages(messages),
		Options:  o.options,
		Tools:    ollamaTools,
		Stream:   &streamVal,
	}

	completion := &llm.Completion{}

	err := o.client.Chat(ctx, req, func(resp api.ChatResponse) error {
		completion.Content += resp.Message.Content

		for _, tc := range resp.Message.ToolCalls {
			argsB, err := json.Marshal(tc.Function.Arguments)
			if err != nil {
				slog.Warn("Failed to marshal tool call arguments", "provider", "ollama", "error", err)
				argsB = []byte("{}")
			}
			completion.ToolCalls = append(completion.ToolCalls, llm.ToolCall{
				ID:   tc.ID,
				Name: tc.Function.Name,
				Function: llm.FunctionCall{
					Name:      tc.Function.Name,
					Arguments: string(argsB),
				},
			})
		}

		if resp.Done {
			completion.StopReason = resp.DoneReason
			completion.Usage = &llm.Usage{
				PromptTokens:     resp.PromptEvalCount,
				CompletionTokens: resp.EvalCount,
				TotalTokens:      resp.PromptEvalCount + resp.EvalCount,
				StopReason:       resp.DoneReason,
			}

			if resp.DoneReason == llm.StopReasonLength {
				slog.Warn("Response truncated due to length", "provider", "ollama")
			}

			llm.LogUsage(o.model, completion.Usage)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("ollama chat failed: %w", err)
	}

	if completion.StopReason == "" {
		completion.StopReason = llm.StopReasonStop
	}
	return completion, nil
}

// convertMessages converts messages to Ollama API format
func (o *OllamaClient) convertMessages(messages []llm.Message) []api.Message {
	var ollamaMsgs []api.Message

	for _, m := range messages {
		msg := api.Message{
			Role:    m.Role,
			Content: m.Content,
		}

		// Handle tool calls (if Assistant role and has ToolCalls)
		if m.Role == llm.RoleAssistant && len(m.ToolCalls) > 0 {
			var ollamaToolCalls []api.ToolCall
			for _, tc := range m.ToolCalls {
				// api.ToolCallFunctionArguments supports unmarshaling from a map
				var apiArgs api.ToolCallFunctionArguments
				if err := json.Unmarshal([]byte(tc.Function.Arguments), &apiArgs); err != nil {
					slog.Warn("Failed to unmarshal tool arguments for history", "provider", "ollama", "error", err)
				}

				ollamaToolCalls = append(ollamaToolCalls, api.ToolCall{
					ID: tc.ID,
					Function: api.ToolCallFunction{
						Name:      tc.Function.Name,
						Arguments: apiArgs,
					},
				})
			}
			msg.ToolCalls = ollamaToolCalls
		}

		// Handle tool results (if Tool role)
		if m.Role == llm.RoleTool {
			msg.ToolCallID = m.ToolCallID
		}

		ollamaMsgs = append(ollamaMsgs, msg)
	}

	return ollamaMsgs
}

// IsTransientError implements the llm.ChatClient interface
func (o *OllamaClient) IsTransientError(err error) bool {
	if err == nil {
		return false
	}
	errMsg := err.Error()

	// 1. Connection related errors (Connection refused, reset)
	if strings.Contains(errMsg, "connection refused") || strings.Contains(errMsg, "connection reset") {
		return true
	}

	// 2. High load
	if strings.Contains(strings.ToLower(errMsg), "overloaded") {
		return true
	}

	return false
}
