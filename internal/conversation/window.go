package conversation

// Window returns the agent invocation window: the suffix of state following
// the most recent system message. Sub-agents receive the full history from
// the supervisor, so counting inside the window keeps one agent's tool
// results from leaking into another agent's iteration budget. With no system
// message present the whole state is the window.
func Window(state []Message) []Message {
	start := 0
	for i := len(state) - 1; i >= 0; i-- {
		if state[i].Role == RoleSystem {
			start = i + 1
			break
		}
	}
	return state[start:]
}

// CountToolResults counts tool result messages inside the current window.
// This is the iteration counter: derived on every step, never stored.
func CountToolResults(state []Message) int {
	n := 0
	for _, m := range Window(state) {
		if m.Role == RoleTool {
			n++
		}
	}
	return n
}

// TailToolResults returns the maximal suffix of state consisting only of
// tool result messages. A single model turn may request several tool calls;
// the contiguous tail is the batch just resolved, and post-tool routing must
// look no further back than that.
func TailToolResults(state []Message) []Message {
	start := len(state)
	for i := len(state) - 1; i >= 0; i-- {
		if state[i].Role != RoleTool {
			break
		}
		start = i
	}
	return state[start:]
}
