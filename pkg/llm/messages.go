package llm

import "time"

// Message 表示一條對話訊息
type Message struct {
	ID        string `json:"id,omitempty"`
	Role      string `json:"role"` // "system", "user", "assistant", "tool"
	Content   string `json:"content"`
	Timestamp int64  `json:"timestamp,omitempty"`

	// ToolCalls 包含模型產生的工具調用請求（僅 role: assistant 時有效）
	ToolCalls []ToolCall `json:"tool_calls,omitempty"`

	// ToolCallID 關聯此訊息所屬的工具調用 ID（僅 role: tool 時有效）
	ToolCallID string `json:"tool_call_id,omitempty"`
	// ToolName 記錄產生此結果的工具（僅 role: tool 時有效）
	ToolName string `json:"tool_name,omitempty"`
}

// ToolCall 表示模型產生的工具調用請求
type ToolCall struct {
	ID       string       `json:"id"`
	Name     string       `json:"name"`
	Function FunctionCall `json:"function"`
}

// FunctionCall 包含具體的工具名稱與參數
type FunctionCall struct {
	Name      string `json:"name"`
	Arguments string `json:"arguments"` // JSON 字串
}

// NewTextMessage 建立純文字訊息
func NewTextMessage(role, text string) Message {
	return Message{
		Role:      role,
		Content:   text,
		Timestamp: time.Now().Unix(),
	}
}

// NewSystemMessage 建立系統訊息
func NewSystemMessage(text string) Message {
	return NewTextMessage(RoleSystem, text)
}

// NewUserMessage 建立使用者訊息
func NewUserMessage(text string) Message {
	return NewTextMessage(RoleUser, text)
}

// NewToolMessage 建立工具結果訊息，以 callID 對應回工具調用
func NewToolMessage(callID, toolName, content string) Message {
	return Message{
		Role:       RoleTool,
		Content:    content,
		ToolCallID: callID,
		ToolName:   toolName,
		Timestamp:  time.Now().Unix(),
	}
}
