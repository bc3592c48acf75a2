package conversation

import "testing"

func TestWindowFollowsLastSystemMessage(t *testing.T) {
	state := []Message{
		System("supervisor instructions"),
		User("draft a notice"),
		ToolResult("c1", "initialize_drafting_session", "ok"),
		System("intake instructions"),
		Assistant("gathering facts"),
		ToolResult("c2", "save_facts", "ok"),
	}

	window := Window(state)
	if len(window) != 2 {
		t.Fatalf("expected window of 2 messages, got %d", len(window))
	}
	if window[0].Role != RoleAssistant {
		t.Errorf("window should start after the last system message, got role %s", window[0].Role)
	}
}

func TestWindowWithoutSystemMessage(t *testing.T) {
	state := []Message{
		User("hello"),
		Assistant("hi"),
	}
	if got := len(Window(state)); got != 2 {
		t.Errorf("whole state should be the window, got %d messages", got)
	}
}

func TestCountToolResultsResetsPerWindow(t *testing.T) {
	state := []Message{
		System("a"),
		ToolResult("c1", "t", "r"),
		ToolResult("c2", "t", "r"),
		System("b"),
		ToolResult("c3", "t", "r"),
	}
	if got := CountToolResults(state); got != 1 {
		t.Errorf("expected 1 tool result in current window, got %d", got)
	}
}

func TestCountToolResultsEmptyState(t *testing.T) {
	if got := CountToolResults(nil); got != 0 {
		t.Errorf("expected 0, got %d", got)
	}
}

func TestTailToolResults(t *testing.T) {
	state := []Message{
		Assistant("calling tools"),
		ToolResult("c1", "alpha", "r1"),
		ToolResult("c2", "beta", "r2"),
	}
	tail := TailToolResults(state)
	if len(tail) != 2 {
		t.Fatalf("expected tail of 2, got %d", len(tail))
	}
	if tail[0].ToolName != "alpha" || tail[1].ToolName != "beta" {
		t.Errorf("tail order wrong: %s, %s", tail[0].ToolName, tail[1].ToolName)
	}
}

func TestTailToolResultsStopsAtNonTool(t *testing.T) {
	state := []Message{
		ToolResult("c1", "old", "r"),
		Assistant("reply"),
	}
	if got := len(TailToolResults(state)); got != 0 {
		t.Errorf("expected empty tail, got %d", got)
	}
}

func TestAppendDoesNotMutateOriginal(t *testing.T) {
	base := make([]Message, 1, 4)
	base[0] = User("hello")

	a := Append(base, Assistant("first"))
	b := Append(base, Assistant("second"))

	if a[1].Content != "first" || b[1].Content != "second" {
		t.Errorf("appends interfered: %q vs %q", a[1].Content, b[1].Content)
	}
	if len(base) != 1 {
		t.Errorf("base mutated, len %d", len(base))
	}
}

func TestLastAssistant(t *testing.T) {
	state := []Message{
		Assistant("old"),
		User("question"),
		Assistant("new"),
		ToolResult("c1", "t", "r"),
	}
	last := LastAssistant(state)
	if last == nil || last.Content != "new" {
		t.Fatalf("expected most recent assistant message, got %+v", last)
	}
	if LastAssistant(nil) != nil {
		t.Error("expected nil for empty state")
	}
}
