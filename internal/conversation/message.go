// Package conversation defines the typed message sequence shared by all
// agent nodes in a workflow run.
package conversation

// Role identifies who produced a message.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleTool      Role = "tool"
)

// ToolCall is a pending tool invocation requested by an assistant message.
type ToolCall struct {
	ID   string
	Name string
	Args map[string]interface{}
}

// Message is one entry in the conversation state. Assistant messages may
// carry pending tool calls; tool messages carry the resolved result for
// exactly one call.
type Message struct {
	Role    Role
	Content string

	// Assistant only: tool invocations requested by the model.
	ToolCalls []ToolCall

	// Tool only: which call this result resolves, and the tool that ran.
	ToolCallID string
	ToolName   string
}

// System builds a system message.
func System(content string) Message {
	return Message{Role: RoleSystem, Content: content}
}

// User builds a user message.
func User(content string) Message {
	return Message{Role: RoleUser, Content: content}
}

// Assistant builds an assistant message without tool calls.
func Assistant(content string) Message {
	return Message{Role: RoleAssistant, Content: content}
}

// ToolResult builds a tool result message resolving callID.
func ToolResult(callID, toolName, content string) Message {
	return Message{Role: RoleTool, ToolCallID: callID, ToolName: toolName, Content: content}
}

// Append returns state with msgs added, never mutating the backing array of
// state. Agent steps treat state as immutable input so a failed step leaves
// the caller's copy untouched.
func Append(state []Message, msgs ...Message) []Message {
	out := make([]Message, 0, len(state)+len(msgs))
	out = append(out, state...)
	out = append(out, msgs...)
	return out
}

// LastAssistant returns the most recent assistant message, or nil.
func LastAssistant(state []Message) *Message {
	for i := len(state) - 1; i >= 0; i-- {
		if state[i].Role == RoleAssistant {
			return &state[i]
		}
	}
	return nil
}
