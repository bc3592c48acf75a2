package toolset

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/lexpipe/lexpipe/internal/conversation"
)

func pendingCalls(calls ...conversation.ToolCall) []conversation.Message {
	reply := conversation.Assistant("")
	reply.ToolCalls = calls
	return []conversation.Message{conversation.User("go"), reply}
}

func TestExecutePendingRunsBackendInOrder(t *testing.T) {
	r := NewRegistry()
	var ran []string
	for _, name := range []string{"first", "second"} {
		name := name
		r.RegisterBackend(Func{
			Def: ToolDef{Name: name},
			Fn: func(_ context.Context, _ map[string]interface{}) (interface{}, error) {
				ran = append(ran, name)
				return "done " + name, nil
			},
		})
	}

	e := NewExecutor(r)
	state, err := e.ExecutePending(context.Background(), pendingCalls(
		conversation.ToolCall{ID: "c1", Name: "first"},
		conversation.ToolCall{ID: "c2", Name: "second"},
	))
	if err != nil {
		t.Fatalf("execute error: %v", err)
	}
	if len(ran) != 2 || ran[0] != "first" || ran[1] != "second" {
		t.Errorf("execution order wrong: %v", ran)
	}

	results := conversation.TailToolResults(state)
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].ToolCallID != "c1" || results[0].Content != "done first" {
		t.Errorf("unexpected first result: %+v", results[0])
	}
}

func TestExecutePendingToolErrorBecomesContent(t *testing.T) {
	r := NewRegistry()
	r.RegisterBackend(Func{
		Def: ToolDef{Name: "boom"},
		Fn: func(_ context.Context, _ map[string]interface{}) (interface{}, error) {
			return nil, errors.New("db unavailable")
		},
	})

	e := NewExecutor(r)
	state, err := e.ExecutePending(context.Background(), pendingCalls(
		conversation.ToolCall{ID: "c1", Name: "boom"},
	))
	if err != nil {
		t.Fatalf("tool errors must not fail the step: %v", err)
	}
	got := state[len(state)-1].Content
	if got != "Error: db unavailable" {
		t.Errorf("unexpected error content: %q", got)
	}
}

func TestExecutePendingUnknownTool(t *testing.T) {
	e := NewExecutor(NewRegistry())
	state, err := e.ExecutePending(context.Background(), pendingCalls(
		conversation.ToolCall{ID: "c1", Name: "ghost"},
	))
	if err != nil {
		t.Fatalf("execute error: %v", err)
	}
	got := state[len(state)-1].Content
	if !strings.Contains(got, "tool not found: ghost") {
		t.Errorf("unexpected content: %q", got)
	}
}

func TestExecutePendingDelegationMarker(t *testing.T) {
	r := NewRegistry()
	r.RegisterDelegation(ToolDef{Name: "delegate_to_intake"}, "intake")

	e := NewExecutor(r)
	state, err := e.ExecutePending(context.Background(), pendingCalls(
		conversation.ToolCall{ID: "c1", Name: "delegate_to_intake"},
	))
	if err != nil {
		t.Fatalf("execute error: %v", err)
	}

	var marker map[string]string
	if err := json.Unmarshal([]byte(state[len(state)-1].Content), &marker); err != nil {
		t.Fatalf("marker is not JSON: %v", err)
	}
	if marker["status"] != "delegated" || marker["agent"] != "intake" {
		t.Errorf("unexpected marker: %v", marker)
	}
}

func TestExecutePendingSkipsFrontendCalls(t *testing.T) {
	r := NewRegistry()
	r.RegisterFrontend(ToolDef{Name: "render_progress"})
	r.RegisterBackend(echoTool("status"))

	e := NewExecutor(r)
	state, err := e.ExecutePending(context.Background(), pendingCalls(
		conversation.ToolCall{ID: "c1", Name: "render_progress"},
		conversation.ToolCall{ID: "c2", Name: "status"},
	))
	if err != nil {
		t.Fatalf("execute error: %v", err)
	}

	results := conversation.TailToolResults(state)
	if len(results) != 1 {
		t.Fatalf("frontend call must produce no result, got %d results", len(results))
	}
	if results[0].ToolCallID != "c2" {
		t.Errorf("wrong call resolved: %s", results[0].ToolCallID)
	}
}

func TestExecutePendingNoPendingCalls(t *testing.T) {
	e := NewExecutor(NewRegistry())
	if _, err := e.ExecutePending(context.Background(), []conversation.Message{
		conversation.Assistant("nothing to do"),
	}); err == nil {
		t.Error("expected error when no tool calls are pending")
	}
}

func TestStringifyMapResult(t *testing.T) {
	r := NewRegistry()
	r.RegisterBackend(Func{
		Def: ToolDef{Name: "structured"},
		Fn: func(_ context.Context, _ map[string]interface{}) (interface{}, error) {
			return map[string]interface{}{"status": "success"}, nil
		},
	})

	e := NewExecutor(r)
	state, _ := e.ExecutePending(context.Background(), pendingCalls(
		conversation.ToolCall{ID: "c1", Name: "structured"},
	))
	var decoded map[string]string
	if err := json.Unmarshal([]byte(state[len(state)-1].Content), &decoded); err != nil {
		t.Fatalf("structured result not JSON: %v", err)
	}
	if decoded["status"] != "success" {
		t.Errorf("unexpected decoded result: %v", decoded)
	}
}
