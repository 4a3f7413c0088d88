package agent

import (
	"fmt"
	"testing"

	"scout/pkg/api"
	"scout/pkg/llm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildContext_Shape(t *testing.T) {
	msgs := buildContext("what is Go?", api.ModeToolEnabled, nil, 6)

	require.Len(t, msgs, 2)
	assert.Equal(t, llm.RoleSystem, msgs[0].Role)
	assert.Equal(t, llm.RoleUser, msgs[1].Role)
	assert.Equal(t, "what is Go?", msgs[1].Content)
}

func TestBuildContext_ModeSelectsPrompt(t *testing.T) {
	withTools := buildContext("q", api.ModeToolEnabled, nil, 6)
	grounded := buildContext("q", api.ModeGrounded, nil, 6)

	assert.NotEqual(t, withTools[0].Content, grounded[0].Content)
	assert.Contains(t, withTools[0].Content, "tools")
	assert.NotContains(t, grounded[0].Content, "search")
}

func TestBuildContext_HistoryWindow(t *testing.T) {
	history := make([]api.HistoryTurn, 10)
	for i := range history {
		role := llm.RoleUser
		if i%2 == 1 {
			role = llm.RoleAssistant
		}
		history[i] = api.HistoryTurn{Role: role, Content: fmt.Sprintf("turn %d", i)}
	}

	msgs := buildContext("q", api.ModeGrounded, history, 6)

	// system + 6 history + query
	require.Len(t, msgs, 8)
	assert.Equal(t, "turn 4", msgs[1].Content, "window keeps the most recent turns")
	assert.Equal(t, "turn 9", msgs[6].Content)
}

func TestBuildContext_FiltersNonConversationRoles(t *testing.T) {
	history := []api.HistoryTurn{
		{Role: llm.RoleUser, Content: "hi"},
		{Role: llm.RoleTool, Content: "stale tool output"},
		{Role: "weird", Content: "junk"},
		{Role: llm.RoleAssistant, Content: "hello"},
	}

	msgs := buildContext("q", api.ModeGrounded, history, 6)

	require.Len(t, msgs, 4)
	assert.Equal(t, "hi", msgs[1].Content)
	assert.Equal(t, "hello", msgs[2].Content)
}

func TestBuildContext_ZeroWindowKeepsAll(t *testing.T) {
	history := []api.HistoryTurn{
		{Role: llm.RoleUser, Content: "a"},
		{Role: llm.RoleAssistant, Content: "b"},
	}
	msgs := buildContext("q", api.ModeGrounded, history, 0)
	assert.Len(t, msgs, 4)
}
