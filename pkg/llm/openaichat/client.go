package openaichat

import (
	"context"
	"fmt"
	"strings"

	"scout/pkg/llm"

	openai "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/responses"
	"github.com/openai/openai-go/v3/shared"
)

// Client is a wrapper around the official OpenAI Go SDK, using the
// Responses API in non-streaming mode. One Client is bound to one model.
type Client struct {
	client   *openai.Client
	provider string
	model    string
	options  map[string]any
}

// NewClient creates a new OpenAI client
func NewClient(provider string, apiKey string, model string, baseURL string, options map[string]any) (*Client, error) {
	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
	}

	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}

	client := openai.NewClient(opts...)

	return &Client{
		client:   &client,
		provider: provider,
		model:    model,
		options:  options,
	}, nil
}

func (c *Client) Provider() string {
	return c.provider
}

func (c *Client) IsTransientError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())

	// Transient: network-level issues
	if strings.Contains(msg, "context deadline exceeded") ||
		strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "timeout") {
		return true
	}

	// Transient: server-side temporary failures
	if strings.Contains(msg, "500 internal") ||
		strings.Contains(msg, "502 bad gateway") ||
		strings.Contains(msg, "503 service unavailable") ||
		strings.Contains(msg, "overloaded") {
		return true
	}

	// Everything else (400 Bad Request, 401 Unauthorized, etc.) is non-transient
	return false
}

// Chat sends the conversation in one request and blocks until the full
// response is available. Tool calls requested by the model come back on the
// Completion; executing them is the caller's responsibility.
func (c *Client) Chat(ctx context.Context, messages []llm.Message, tools []llm.ToolSchema) (*llm.Completion, error) {
	params := responses.ResponseNewParams{
		Model: c.model,
		Input: responses.ResponseNewParamsInputUnion{
			OfInputItemList: c.convertMessages(messages),
		},
	}

	opts := []option.RequestOption{}

	// Handle unified "thinking_effort" option
	if effortStr, ok := c.options["thinking_effort"].(string); ok && effortStr != "" && effortStr != "off" {
		var effort shared.ReasoningEffort
		switch effortStr {
		case "low":
			effort = shared.ReasoningEffortLow
		case "medium":
			effort = shared.ReasoningEffortMedium
		case "high":
			effort = shared.ReasoningEffortHigh
		default:
			effort = shared.ReasoningEffortMedium
		}

		params.Reasoning = shared.ReasoningParam{
			Effort: effort,
		}
	}

	// Handle unified "temperature" option (optional)
	if t, ok := c.options["temperature"].(float64); ok {
		opts = append(opts, option.WithJSONSet("temperature", t))
	}

	// Handle unified "top_p" option (optional)
	if p, ok := c.options["top_p"].(float64); ok {
		opts = append(opts, option.WithJSONSet("top_p", p))
	}

	// Handle unified "max_tokens" option (mapped to max_completion_tokens for o1/newer models)
	if maxTok, ok := c.options["max_tokens"].(float64); ok {
		opts = append(opts, option.WithJSONSet("max_completion_tokens", int(maxTok)))
	}

	if converted := c.convertTools(tools); len(converted) > 0 {
		params.Tools = converted
	}

	resp, err := c.client.Responses.New(ctx, params, opts...)
	if err != nil {
		return nil, fmt.Errorf("openai chat failed: %w", err)
	}

	completion := &llm.Completion{
		StopReason: llm.StopReasonStop,
	}
	if resp.Status == responses.ResponseStatusIncomplete {
		completion.StopReason = llm.StopReasonLength
	}

	var text strings.Builder
	for _, item := range resp.Output {
		switch variant := item.AsAny().(type) {
		case responses.ResponseOutputMessage:
			for _, content := range variant.Content {
				if block, ok := content.AsAny().(responses.ResponseOutputText); ok {
					text.WriteString(block.Text)
				}
			}
		case responses.ResponseFunctionToolCall:
			completion.ToolCalls = append(completion.ToolCalls, llm.ToolCall{
				ID:   variant.CallID,
				Name: variant.Name,
				Function: llm.FunctionCall{
					Name:      variant.Name,
					Arguments: variant.Arguments,
				},
			})
		}
	}
	completion.Content = text.String()

	if resp.Usage.TotalTokens > 0 {
		completion.Usage = &llm.Usage{
			PromptTokens:     int(resp.Usage.InputTokens),
			CompletionTokens: int(resp.Usage.OutputTokens),
			TotalTokens:      int(resp.Usage.TotalTokens),
			StopReason:       completion.StopReason,
		}
		llm.LogUsage(c.model, completion.Usage)
	}

	return completion, nil
}

func (c *Client) convertMessages(messages []llm.Message) []responses.ResponseInputItemUnionParam {
	items := make([]responses.ResponseInputItemUnionParam, 0, len(messages))

	for _, m := range messages {
		switch m.Role {
		case llm.RoleSystem:
			items = append(items, responses.ResponseInputItemParamOfMessage(
				m.Content,
				responses.EasyInputMessageRoleSystem,
			))
		case llm.RoleUser:
			items = append(items, responses.ResponseInputItemParamOfMessage(
				m.Content,
				responses.EasyInputMessageRoleUser,
			))
		case llm.RoleAssistant:
			// Text content
			if m.Content != "" {
				items = append(items, responses.ResponseInputItemParamOfMessage(
					m.Content,
					responses.EasyInputMessageRoleAssistant,
				))
			}
			// Tool calls
			for _, tc := range m.ToolCalls {
				items = append(items, responses.ResponseInputItemParamOfFunctionCall(
					tc.Function.Arguments,
					tc.ID,
					tc.Name,
				))
			}
		case llm.RoleTool:
			// Tool result
			items = append(items, responses.ResponseInputItemParamOfFunctionCallOutput(
				m.ToolCallID,
				m.Content,
			))
		}
	}

	return items
}

func (c *Client) convertTools(tools []llm.ToolSchema) []responses.ToolUnionParam {
	if len(tools) == 0 {
		return nil
	}

	converted := make([]responses.ToolUnionParam, 0, len(tools))
	for _, t := range tools {
		converted = append(converted, responses.ToolUnionParam{
			OfFunction: &responses.FunctionToolParam{
				Name:        t.Name,
				Description: openai.String(t.Description),
				Parameters:  t.ParameterSchema(),
			},
		})
	}
	return converted
}
