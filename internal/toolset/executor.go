package toolset

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/vinayprograms/agentkit/logging"

	"github.com/lexpipe/lexpipe/internal/conversation"
)

// Executor resolves the pending tool calls of the latest assistant message
// into tool result messages. Backend tools run exactly once per call;
// delegation markers resolve without running anything; frontend calls are
// left pending for an external UI.
type Executor struct {
	registry *Registry
	logger   *logging.Logger
}

// NewExecutor creates a tool executor over a registry.
func NewExecutor(registry *Registry) *Executor {
	return &Executor{
		registry: registry,
		logger:   logging.New().WithComponent("toolexec"),
	}
}

// ExecutePending runs the pending tool calls of the last assistant message
// in state and returns state with one tool result appended per resolved
// call, in request order. Tool errors become result content rather than
// step failures; this layer never retries.
func (e *Executor) ExecutePending(ctx context.Context, state []conversation.Message) ([]conversation.Message, error) {
	last := conversation.LastAssistant(state)
	if last == nil || len(last.ToolCalls) == 0 {
		return state, fmt.Errorf("no pending tool calls")
	}

	results := make([]conversation.Message, 0, len(last.ToolCalls))
	for _, tc := range last.ToolCalls {
		switch e.registry.Classify(tc.Name) {
		case ClassBackend:
			results = append(results, e.runBackend(ctx, tc))
		case ClassDelegation:
			results = append(results, e.delegationMarker(tc))
		case ClassFrontend:
			// Rendered by the UI layer, never executed server-side.
			e.logger.Info("frontend tool surfaced", map[string]interface{}{"tool": tc.Name})
		default:
			e.logger.Warn("unknown tool requested", map[string]interface{}{"tool": tc.Name})
			results = append(results, conversation.ToolResult(tc.ID, tc.Name,
				fmt.Sprintf("Error: tool not found: %s", tc.Name)))
		}
	}
	return conversation.Append(state, results...), nil
}

func (e *Executor) runBackend(ctx context.Context, tc conversation.ToolCall) conversation.Message {
	start := time.Now()
	tool := e.registry.Backend(tc.Name)
	result, err := tool.Execute(ctx, tc.Args)

	var content string
	if err != nil {
		content = fmt.Sprintf("Error: %v", err)
		e.logger.Warn("tool failed", map[string]interface{}{
			"tool":  tc.Name,
			"error": err.Error(),
		})
	} else {
		content = stringify(result)
	}
	e.logger.Info("tool executed", map[string]interface{}{
		"tool":        tc.Name,
		"duration_ms": time.Since(start).Milliseconds(),
		"failed":      err != nil,
	})
	return conversation.ToolResult(tc.ID, tc.Name, content)
}

// delegationMarker resolves a delegation call to its marker result. The
// marker carries the target entry point; post-tool routing reads the tool
// name, not the content, so the content is informational only.
func (e *Executor) delegationMarker(tc conversation.ToolCall) conversation.Message {
	target := e.registry.DelegationTargets()[tc.Name]
	e.logger.Info("delegation marker", map[string]interface{}{
		"tool":   tc.Name,
		"target": target,
	})
	content, _ := json.Marshal(map[string]string{
		"status": "delegated",
		"agent":  target,
	})
	return conversation.ToolResult(tc.ID, tc.Name, string(content))
}

func stringify(result interface{}) string {
	switch v := result.(type) {
	case nil:
		return ""
	case string:
		return v
	case []byte:
		return string(v)
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(data)
	}
}
