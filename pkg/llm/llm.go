package llm

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// Usage 定義通用的用量統計結構
type Usage struct {
	PromptTokens     int    `json:"prompt_tokens"`
	CompletionTokens int    `json:"completion_tokens"`
	TotalTokens      int    `json:"total_tokens"`
	StopReason       string `json:"stop_reason,omitempty"`
}

// Completion 是一次非串流模型呼叫的完整回應。
// Content 與 ToolCalls 互斥時以 ToolCalls 優先：只要模型提出工具調用，
// 協調器就會進入工具派發流程。
type Completion struct {
	Content    string     `json:"content"`
	ToolCalls  []ToolCall `json:"tool_calls,omitempty"`
	StopReason string     `json:"stop_reason,omitempty"`
	Usage      *Usage     `json:"usage,omitempty"`
}

// LogUsage 以統一格式記錄用量統計
func LogUsage(model string, usage *Usage) {
	if usage == nil {
		return
	}
	slog.Debug("Model usage",
		"model", model,
		"prompt_tokens", usage.PromptTokens,
		"completion_tokens", usage.CompletionTokens,
		"total_tokens", usage.TotalTokens,
		"stop_reason", usage.StopReason,
	)
}

// ChatClient 通用 LLM 客戶端介面
type ChatClient interface {
	// Chat 執行一次完整對話呼叫。
	// messages: 對話歷史（使用 llm.Message 結構）
	// tools: 可用工具的 schema；nil 或空表示本次呼叫不提供任何工具
	Chat(ctx context.Context, messages []Message, tools []ToolSchema) (*Completion, error)

	// IsTransientError 判斷是否為暫時性錯誤 (如 503, Rate Limit)
	IsTransientError(err error) bool
}

// FallbackClient 支援多個 Client 分級嘗試
type FallbackClient struct {
	Clients    []ChatClient
	MaxRetries int
	RetryDelay time.Duration
}

func (f *FallbackClient) Chat(ctx context.Context, messages []Message, tools []ToolSchema) (*Completion, error) {
	var lastErr error
	for i, client := range f.Clients {
		if i > 0 {
			slog.Warn("Previous provider failed, trying fallback provider", "index", i+1)
		}

		// 使用配置的重試次數，若為 0 則至少執行 1 次
		maxRetries := f.MaxRetries
		if maxRetries <= 0 {
			maxRetries = 1
		}

		for retry := 1; retry <= maxRetries; retry++ {
			if retry > 1 {
				select {
				case <-ctx.Done():
					return nil, ctx.Err()
				case <-time.After(time.Duration(retry-1) * f.RetryDelay):
				}
			}

			comp, err := client.Chat(ctx, messages, tools)
			if err == nil {
				return comp, nil
			}

			lastErr = err

			if client.IsTransientError(err) && retry < maxRetries {
				slog.Warn("Provider failed with transient error, retrying",
					"index", i+1, "attempt", fmt.Sprintf("%d/%d", retry, maxRetries), "error", err)
				continue
			}

			// 非暫時性錯誤，或者已達最大重試次數
			slog.Error("Provider failed", "index", i+1, "error", err)
			break
		}
	}
	return nil, fmt.Errorf("all fallback providers failed. Last error: %v", lastErr)
}

// IsTransientError 實作 ChatClient 介面
// FallbackClient 的錯誤意味著所有 Child 都失敗了，因此視為非暫時性
func (f *FallbackClient) IsTransientError(err error) bool {
	return false
}
