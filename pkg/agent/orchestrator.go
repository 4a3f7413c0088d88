package agent

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"scout/pkg/api"
	"scout/pkg/config"
	"scout/pkg/llm"
	"scout/pkg/monitor"
	"scout/pkg/tools"
	"scout/pkg/utils"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	abortedAnswer    = "I wasn't able to finish working through this question within the allowed number of steps. The partial findings gathered so far are listed under sources, but the answer is incomplete."
	modelErrorAnswer = "I ran into a problem talking to the language model and can't answer right now. Please try again in a moment."
)

// Orchestrator drives the bounded reasoning loop: build context, call the
// model, dispatch any requested tools, feed results back, and repeat until
// the model answers in plain text or the iteration cap fires.
// It implements api.Orchestrator.
type Orchestrator struct {
	client   llm.ChatClient
	registry api.ToolRegistry
	cfg      *config.Store
	stats    *monitor.Stats
}

// NewOrchestrator wires the reasoning loop to a model client and a tool
// registry. Each Process call snapshots cfg once, so a hot reload never
// changes the knobs of a run already in flight. stats may be nil.
func NewOrchestrator(client llm.ChatClient, registry api.ToolRegistry, cfg *config.Store, stats *monitor.Stats) *Orchestrator {
	if cfg == nil {
		cfg = config.NewStore(nil)
	}
	return &Orchestrator{
		client:   client,
		registry: registry,
		cfg:      cfg,
		stats:    stats,
	}
}

// RegisterTool adds one or more tools to the orchestrator's registry.
// It automatically initializes the registry if it's currently nil.
func (o *Orchestrator) RegisterTool(tl ...api.Tool) {
	if o.registry == nil {
		o.registry = tools.NewToolRegistry()
	}
	for _, t := range tl {
		o.registry.Register(t)
	}
}

// Process runs one query to completion. It never returns an error: model
// failures and the iteration cap both resolve to a FinalAnswer with
// explanatory content and a low confidence value.
func (o *Orchestrator) Process(ctx context.Context, query string, mode api.Mode, history []api.HistoryTurn) *api.FinalAnswer {
	o.stats.RecordQuery()

	ctx = monitor.EnsureRequestID(ctx, utils.GenerateID())
	sys := o.cfg.Snapshot()

	messages := buildContext(query, mode, history, sys.HistoryWindow)

	// In grounded mode (or with tools globally disabled) the schema block is
	// withheld entirely, so the model cannot request a tool call.
	var schemas []llm.ToolSchema
	if mode == api.ModeToolEnabled && sys.EnableTools {
		schemas = tools.Schemas(o.registry)
	}

	agg := newResultAggregator()
	llmTimeout := time.Duration(sys.LLMTimeoutMs) * time.Millisecond

	iterations := 0
	dispatchRounds := 0

	for {
		iterations++

		completion, err := o.chatOnce(ctx, messages, schemas, llmTimeout)
		if err != nil {
			slog.ErrorContext(ctx, "Model call failed", "iteration", iterations, "error", err)
			o.stats.RecordModelFailure()
			return &api.FinalAnswer{
				Content:    modelErrorAnswer,
				ToolsUsed:  agg.Tools(),
				Sources:    agg.Sources(sys.SourceLimit),
				Confidence: confidenceModelError,
				Iterations: iterations,
			}
		}

		// A tool call on a turn where no catalogue was offered is a provider
		// quirk or a hallucination; it must never reach dispatch, or the
		// answer's tool trace stops being empty in grounded runs.
		if len(completion.ToolCalls) == 0 || len(schemas) == 0 {
			return &api.FinalAnswer{
				Content:    completion.Content,
				ToolsUsed:  agg.Tools(),
				Sources:    agg.Sources(sys.SourceLimit),
				Confidence: agg.Confidence(),
				Iterations: iterations,
			}
		}

		// Echo the assistant turn (including its tool calls) before the tool
		// results so every provider sees a well-formed transcript.
		assistantMsg := llm.NewTextMessage(llm.RoleAssistant, completion.Content)
		assistantMsg.ToolCalls = completion.ToolCalls
		messages = append(messages, assistantMsg)

		messages = append(messages, o.dispatchToolCalls(ctx, completion.ToolCalls, agg)...)
		dispatchRounds++

		if dispatchRounds >= sys.MaxIterations {
			slog.WarnContext(ctx, "Iteration cap reached, aborting run",
				"rounds", dispatchRounds, "max", sys.MaxIterations)
			o.stats.RecordAborted()
			return &api.FinalAnswer{
				Content:    abortedAnswer,
				ToolsUsed:  agg.Tools(),
				Sources:    agg.Sources(sys.SourceLimit),
				Confidence: confidenceAborted,
				Iterations: iterations,
			}
		}
	}
}

// chatOnce wraps a single model call with its own timeout.
func (o *Orchestrator) chatOnce(ctx context.Context, messages []llm.Message, schemas []llm.ToolSchema, timeout time.Duration) (*llm.Completion, error) {
	callCtx := ctx
	if timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	return o.client.Chat(callCtx, messages, schemas)
}

// dispatchToolCalls executes all tool calls of one model turn concurrently
// and returns the tool result messages in request order. Each call gets an
// indexed slot so concurrency never reorders the transcript.
func (o *Orchestrator) dispatchToolCalls(ctx context.Context, calls []llm.ToolCall, agg *resultAggregator) []llm.Message {
	results := make([]*api.ToolResult, len(calls))

	var wg sync.WaitGroup
	for i, tc := range calls {
		wg.Add(1)
		go func(i int, tc llm.ToolCall) {
			defer wg.Done()
			results[i] = o.executeToolCall(ctx, tc)
		}(i, tc)
	}
	wg.Wait()

	out := make([]llm.Message, 0, len(calls))
	for i, tc := range calls {
		name := cleanToolName(tc.Name)
		agg.RecordTool(name)
		agg.Observe(results[i])
		out = append(out, llm.NewToolMessage(tc.ID, name, encodeToolResult(results[i])))
	}
	return out
}

// executeToolCall resolves, parses, and runs a single tool call. All failure
// shapes (unknown tool, bad arguments, execution error, panic) collapse to a
// failed ToolResult so the model always receives a reply for every call ID.
func (o *Orchestrator) executeToolCall(ctx context.Context, tc llm.ToolCall) (res *api.ToolResult) {
	defer func() {
		if r := recover(); r != nil {
			slog.ErrorContext(ctx, "Tool execution panicked", "tool", tc.Name, "error", r)
			res = &api.ToolResult{Success: false, Error: "internal processing panic"}
		}
	}()

	o.stats.RecordToolDispatch()

	name := cleanToolName(tc.Name)
	tool, ok := o.registry.Get(name)
	if !ok {
		slog.ErrorContext(ctx, "Unknown tool call", "name", tc.Name, "clean_name", name)
		return &api.ToolResult{Success: false, Error: fmt.Sprintf("unknown tool '%s'", name)}
	}

	var args map[string]any
	if err := json.Unmarshal([]byte(tc.Function.Arguments), &args); err != nil {
		slog.ErrorContext(ctx, "Failed to parse tool args", "tool", name, "error", err)
		return &api.ToolResult{Success: false, Error: fmt.Sprintf("failed to parse tool arguments: %v", err)}
	}

	slog.InfoContext(ctx, "Executing tool", "name", name, "args", args)
	result, err := tool.Execute(ctx, args)
	if err != nil {
		slog.ErrorContext(ctx, "Tool execution error", "name", name, "error", err)
		return &api.ToolResult{Success: false, Error: fmt.Sprintf("tool execution failed: %v", err)}
	}
	return result
}

// cleanToolName strips the namespace prefix some models prepend.
func cleanToolName(name string) string {
	return strings.TrimPrefix(name, "functions.")
}

// encodeToolResult renders a ToolResult as the JSON payload of a tool
// message.
func encodeToolResult(res *api.ToolResult) string {
	if res == nil {
		res = &api.ToolResult{Success: false, Error: "no result"}
	}

	var payload any
	if res.Success {
		payload = res.Data
	} else {
		payload = map[string]any{"success": false, "error": res.Error}
	}

	encoded, err := json.Marshal(payload)
	if err != nil {
		return fmt.Sprintf(`{"success":false,"error":"failed to encode result: %v"}`, err)
	}
	return string(encoded)
}
