package agent

import (
	"scout/pkg/api"
	"scout/pkg/llm"
)

// toolSystemPrompt instructs the model on how to research with the available
// tools before answering.
const toolSystemPrompt = `You are a research assistant with access to web tools.

When the user's question needs external or up-to-date information, use the
available tools: search for relevant pages first, then extract or summarize
the most promising results. Base your final answer on what the tools
returned and keep it concise. If a tool fails, work with what you have.

When you have enough information, answer directly without calling more tools.`

// groundedSystemPrompt is used when tool access is disabled; the model must
// answer from its own knowledge.
const groundedSystemPrompt = `You are a helpful assistant. Answer the user's
question directly from your own knowledge. Be concise and factual, and say
so explicitly when you are not certain.`

// buildContext assembles the message list for a model turn: the mode's
// system prompt, a bounded window of prior conversation turns, then the
// current query. Only user and assistant turns are admitted from history;
// anything else (stale tool transcripts, unknown roles) is dropped.
func buildContext(query string, mode api.Mode, history []api.HistoryTurn, window int) []llm.Message {
	prompt := groundedSystemPrompt
	if mode == api.ModeToolEnabled {
		prompt = toolSystemPrompt
	}

	messages := []llm.Message{llm.NewSystemMessage(prompt)}

	admitted := make([]api.HistoryTurn, 0, len(history))
	for _, turn := range history {
		if turn.Role == llm.RoleUser || turn.Role == llm.RoleAssistant {
			admitted = append(admitted, turn)
		}
	}
	if window > 0 && len(admitted) > window {
		admitted = admitted[len(admitted)-window:]
	}

	for _, turn := range admitted {
		messages = append(messages, llm.NewTextMessage(turn.Role, turn.Content))
	}

	messages = append(messages, llm.NewUserMessage(query))
	return messages
}
