package llm

// ToolSchema 描述單一工具的模型端 schema。
// 送往模型前由各 provider 轉為其原生的 function calling 格式。
type ToolSchema struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Parameters  map[string]any `json:"parameters"` // JSON Schema property map
	Required    []string       `json:"required"`
}

// ParameterSchema 組出標準 function calling 的 parameters 物件
func (t ToolSchema) ParameterSchema() map[string]any {
	required := t.Required
	if required == nil {
		required = []string{}
	}
	return map[string]any{
		"type":       "object",
		"properties": t.Parameters,
		"required":   required,
	}
}

// AsFunction 組出標準 function calling 的完整工具物件：
// {type:"function", function:{name, description, parameters}}
func (t ToolSchema) AsFunction() map[string]any {
	return map[string]any{
		"type": "function",
		"function": map[string]any{
			"name":        t.Name,
			"description": t.Description,
			"parameters":  t.ParameterSchema(),
		},
	}
}
