package agent

import (
	"github.com/lexpipe/lexpipe/internal/conversation"
)

// Route is where control goes after an agent step.
type Route string

const (
	// RouteTools hands the pending tool calls to the tool executor.
	RouteTools Route = "tool_node"
	// RouteEnd terminates the agent's turn.
	RouteEnd Route = "end"
)

// RouteSelf is returned by RouteAfterTool when control loops back to the
// same agent node for another model call.
const RouteSelf = "call_model"

// Decision is the outcome of one agent step: the next hop plus the updated
// conversation state. The caller always receives the full updated state.
type Decision struct {
	Route Route
	State []conversation.Message
}

// RoutingPolicy classifies an assistant reply into a route. Policies are
// composed into nodes rather than subclassed so further variants slot in
// without touching the step algorithm.
type RoutingPolicy interface {
	Route(reply conversation.Message, backendNames map[string]bool) Route
}

// DefaultRoutingPolicy continues to the tool executor when at least one
// requested call names a backend tool, and terminates otherwise. A mix of
// backend and frontend-render calls continues: backend work takes priority
// and the render call is surfaced without being executed. Unknown tool
// names fall through to termination, never to an error.
type DefaultRoutingPolicy struct{}

// Route implements RoutingPolicy.
func (DefaultRoutingPolicy) Route(reply conversation.Message, backendNames map[string]bool) Route {
	for _, tc := range reply.ToolCalls {
		if backendNames[tc.Name] {
			return RouteTools
		}
	}
	return RouteEnd
}

// DelegationRoutingPolicy is the supervisor variant: delegation calls take
// priority over plain backend calls, which take priority over termination.
// The delegation "tool" itself is a marker; the post-tool router decides
// the actual hop once the marker result lands in state.
type DelegationRoutingPolicy struct {
	// Targets maps delegation tool names to sub-agent entry points.
	Targets map[string]string
}

// Route implements RoutingPolicy.
func (p DelegationRoutingPolicy) Route(reply conversation.Message, backendNames map[string]bool) Route {
	for _, tc := range reply.ToolCalls {
		if _, ok := p.Targets[tc.Name]; ok {
			return RouteTools
		}
	}
	return DefaultRoutingPolicy{}.Route(reply, backendNames)
}

// RouteAfterTool decides the hop after tool execution. It inspects only the
// maximal suffix of tool results at the tail of state: a single turn may
// resolve several calls, and earlier ones in the batch are side effects
// already applied. Scanning newest first, the first result whose tool name
// is a delegation key routes to that sub-agent; otherwise control loops
// back to the calling node.
func RouteAfterTool(state []conversation.Message, targets map[string]string) string {
	if len(targets) == 0 {
		return RouteSelf
	}
	tail := conversation.TailToolResults(state)
	for i := len(tail) - 1; i >= 0; i-- {
		if target, ok := targets[tail[i].ToolName]; ok {
			return target
		}
	}
	return RouteSelf
}
