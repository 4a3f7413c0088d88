package geminichat

import (
	"context"
	"fmt"
	"strings"

	"scout/pkg/llm"

	jsoniter "github.com/json-iterator/go"
	"google.golang.org/genai"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// GeminiClient Google Gemini API client
type GeminiClient struct {
	client *genai.Client
	model  string
}

// NewGeminiClient creates a Gemini client with a single model and API key
func NewGeminiClient(apiKey string, model string) (*GeminiClient, error) {
	ctx := context.Background()
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiClient{
		client: client,
		model:  model,
	}, nil
}

func (g *GeminiClient) Provider() string {
	return "gemini"
}

// Chat implements llm.ChatClient with a single blocking GenerateContent call.
func (g *GeminiClient) Chat(ctx context.Context, messages []llm.Message, tools []llm.ToolSchema) (*llm.Completion, error) {
	apiMessages, systemInstruction := g.convertMessages(messages)

	// Convert tools
	var genaiTools []*genai.Tool
	if len(tools) > 0 {
		var fds []*genai.FunctionDeclaration
		for _, t := range tools {
			fd := &genai.FunctionDeclaration{
				Name:        t.Name,
				Description: t.Description,
			}
			// Schema types match over a JSON roundtrip
			schemaB, _ := json.Marshal(t.ParameterSchema())
			var schema genai.Schema
			json.Unmarshal(schemaB, &schema)
			fd.Parameters = &schema
			fds = append(fds, fd)
		}
		genaiTools = append(genaiTools, &genai.Tool{
			FunctionDeclarations: fds,
		})
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, apiMessages, &genai.GenerateContentConfig{
		SystemInstruction: systemInstruction,
		Tools:             genaiTools,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini chat failed: %w", err)
	}

	completion := &llm.Completion{
		StopReason: llm.StopReasonStop,
	}

	if resp.UsageMetadata != nil {
		u := resp.UsageMetadata
		completion.Usage = &llm.Usage{
			PromptTokens:     int(u.PromptTokenCount),
			CompletionTokens: int(u.CandidatesTokenCount),
			TotalTokens:      int(u.TotalTokenCount),
		}
	}

	var text strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate.FinishReason == genai.FinishReasonMaxTokens {
			completion.StopReason = llm.StopReasonLength
		}
		if candidate.Content == nil {
			continue
		}

		for _, part := range candidate.Content.Parts {
			if part.Text != "" && !part.Thought {
				text.WriteString(part.Text)
			}

			if part.FunctionCall != nil {
				argsB, _ := json.Marshal(part.FunctionCall.Args)
				completion.ToolCalls = append(completion.ToolCalls, llm.ToolCall{
					ID:   part.FunctionCall.ID,
					Name: part.FunctionCall.Name,
					Function: llm.FunctionCall{
						Name:      part.FunctionCall.Name,
						Arguments: string(argsB),
					},
				})
			}
		}
	}
	completion.Content = text.String()

	if completion.Usage != nil {
		completion.Usage.StopReason = completion.StopReason
		llm.LogUsage(g.model, completion.Usage)
	}

	return completion, nil
}

// convertMessages converts message list to GenAI format
func (g *GeminiClient) convertMessages(messages []llm.Message) ([]*genai.Content, *genai.Content) {
	var genaiContents []*genai.Content
	var systemInstruction *genai.Content

	for _, msg := range messages {
		if msg.Role == llm.RoleSystem {
			// System role as SystemInstruction
			if msg.Content != "" {
				systemInstruction = &genai.Content{
					Parts: []*genai.Part{{Text: msg.Content}},
				}
			}
			continue
		}

		if msg.Role == llm.RoleTool {
			// Tool results are part of user role in Gemini
			genaiContents = append(genaiContents, &genai.Content{
				Role: "user",
				Parts: []*genai.Part{
					{
						FunctionResponse: &genai.FunctionResponse{
							ID:       msg.ToolCallID,
							Name:     msg.ToolName,
							Response: map[string]any{"result": msg.Content},
						},
					},
				},
			})
			continue
		}

		role := "user"
		if msg.Role == llm.RoleAssistant {
			role = "model"
		}

		var parts []*genai.Part
		// Gemini requires assistant tool calls to be echoed back in history
		for _, tc := range msg.ToolCalls {
			var args map[string]any
			json.Unmarshal([]byte(tc.Function.Arguments), &args)
			parts = append(parts, &genai.Part{
				FunctionCall: &genai.FunctionCall{
					ID:   tc.ID,
					Name: tc.Function.Name,
					Args: args,
				},
			})
		}

		if msg.Content != "" {
			parts = append(parts, &genai.Part{Text: msg.Content})
		}

		if len(parts) > 0 {
			genaiContents = append(genaiContents, &genai.Content{
				Role:  role,
				Parts: parts,
			})
		}
	}

	return genaiContents, systemInstruction
}

// IsTransientError implements the llm.ChatClient interface
func (g *GeminiClient) IsTransientError(err error) bool {
	if err == nil {
		return false
	}
	errMsg := err.Error()

	// 1. Google API common 503 Service Unavailable / Overloaded
	if strings.Contains(errMsg, "503") || strings.Contains(strings.ToLower(errMsg), "overloaded") {
		return true
	}

	// 2. 429 Too Many Requests (Rate Limit)
	if strings.Contains(errMsg, "429") || strings.Contains(strings.ToLower(errMsg), "resource exhausted") {
		return true
	}

	// 3. 500 Internal Error (Occasional Google Gemini crashes)
	if strings.Contains(errMsg, "500") || strings.Contains(strings.ToLower(errMsg), "internal error") {
		return true
	}

	return false
}
