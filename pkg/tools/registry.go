package tools

import (
	"sort"
	"sync"

	"scout/pkg/api"
	"scout/pkg/llm"
)

// Re-export types from api package via aliases so tool implementations and
// their tests read naturally.
type Tool = api.Tool
type ToolResult = api.ToolResult

// ToolRegistry acts as a central inventory for all tools available to the
// orchestrator. Tools are registered through Orchestrator.RegisterTool during
// startup wiring; the RWMutex keeps lookups safe across concurrently running
// orchestrator calls.
type ToolRegistry struct {
	mu    sync.RWMutex    // Protects concurrent access to the tools map
	tools map[string]Tool // Internal map of tool name to implementation
}

// NewToolRegistry creates a new tool registry
func NewToolRegistry() *ToolRegistry {
	return &ToolRegistry{
		tools: make(map[string]Tool),
	}
}

// Register adds a tool to the registry
func (tr *ToolRegistry) Register(tool Tool) {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	tr.tools[tool.Name()] = tool
}

// Unregister removes a tool from the registry
func (tr *ToolRegistry) Unregister(name string) {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	delete(tr.tools, name)
}

// Get retrieves a tool by name
func (tr *ToolRegistry) Get(name string) (Tool, bool) {
	tr.mu.RLock()
	defer tr.mu.RUnlock()
	tool, ok := tr.tools[name]
	return tool, ok
}

// GetAll returns all registered tools
func (tr *ToolRegistry) GetAll() []Tool {
	tr.mu.RLock()
	defer tr.mu.RUnlock()
	tools := make([]Tool, 0, len(tr.tools))
	for _, tool := range tr.tools {
		tools = append(tools, tool)
	}
	return tools
}

// Schemas snapshots the model-facing schema of every registered tool in
// sorted-name order, so the schema block sent to the model is deterministic
// across runs.
func Schemas(tr api.ToolRegistry) []llm.ToolSchema {
	all := tr.GetAll()
	sort.Slice(all, func(i, j int) bool { return all[i].Name() < all[j].Name() })

	schemas := make([]llm.ToolSchema, 0, len(all))
	for _, t := range all {
		schemas = append(schemas, llm.ToolSchema{
			Name:        t.Name(),
			Description: t.Description(),
			Parameters:  t.Parameters(),
			Required:    t.RequiredParameters(),
		})
	}
	return schemas
}
