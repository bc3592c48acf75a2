// Package agent implements the agent node: one workflow step wrapping a
// model call, an iteration guard, and tool-call routing.
package agent

import (
	"context"
	"fmt"

	"github.com/vinayprograms/agentkit/logging"

	"github.com/lexpipe/lexpipe/internal/conversation"
	"github.com/lexpipe/lexpipe/internal/toolset"
)

// Config is the per-node configuration surface.
type Config struct {
	// Name identifies the node in logs, forced-end messages, and the graph.
	Name string

	// SystemPrompt is the node's fixed instructions, re-prepended fresh on
	// every step.
	SystemPrompt string

	// MaxIterations caps tool results inside the current invocation window.
	// Nil means unbounded; supervisors orchestrate rather than loop over
	// tool results, so their guard is the bounded sub-agents they delegate
	// to.
	MaxIterations *int

	// ForcedEndMessage is the synthetic assistant content appended when the
	// guard trips. Empty selects a default derived from Name.
	ForcedEndMessage string

	// Tools are the backend tool definitions bound to the model.
	Tools []toolset.ToolDef

	// BackendToolNames is the name set the routing policy classifies
	// against.
	BackendToolNames map[string]bool

	// FrontendTools are externally supplied render-only descriptors, offered
	// only when the gateway can constrain the model to one call per turn.
	FrontendTools []toolset.ToolDef

	// Routing classifies replies. Nil selects DefaultRoutingPolicy.
	Routing RoutingPolicy

	// Gateway is the node's resolved model handle, injected at construction.
	Gateway ModelGateway
}

// Node is one agent step in the workflow graph. Nodes hold no per-session
// state; everything travels in the conversation state, so one node may
// serve any number of concurrent sessions.
type Node struct {
	cfg     Config
	routing RoutingPolicy
	logger  *logging.Logger
}

// NewNode builds a node from config.
func NewNode(cfg Config) (*Node, error) {
	if cfg.Name == "" {
		return nil, fmt.Errorf("agent node requires a name")
	}
	if cfg.Gateway == nil {
		return nil, fmt.Errorf("agent node %s requires a gateway", cfg.Name)
	}
	if cfg.MaxIterations != nil && *cfg.MaxIterations <= 0 {
		return nil, fmt.Errorf("agent node %s: max iterations must be positive", cfg.Name)
	}
	routing := cfg.Routing
	if routing == nil {
		routing = DefaultRoutingPolicy{}
	}
	return &Node{
		cfg:     cfg,
		routing: routing,
		logger:  logging.New().WithComponent("agent." + cfg.Name),
	}, nil
}

// Name returns the node name.
func (n *Node) Name() string { return n.cfg.Name }

// SystemPrompt returns the node's fixed instructions.
func (n *Node) SystemPrompt() string { return n.cfg.SystemPrompt }

// Step runs one agent step: guard, prompt assembly, tool binding, model
// invocation, classification. The step is atomic: on gateway failure
// nothing is appended and the error propagates unmodified, because
// continuing with a corrupted state compounds errors across the session.
func (n *Node) Step(ctx context.Context, state []conversation.Message) (Decision, error) {
	if n.guardTripped(state) {
		n.logger.Warn("max iterations reached, forcing end", map[string]interface{}{
			"max": *n.cfg.MaxIterations,
		})
		forced := conversation.Assistant(n.forcedEndMessage())
		return Decision{Route: RouteEnd, State: conversation.Append(state, forced)}, nil
	}

	ctx, span := startStepSpan(ctx, n.cfg.Name)
	reply, err := n.cfg.Gateway.Invoke(ctx, n.assemble(state), n.bindTools(), InvokeOptions{
		SingleToolCall: n.cfg.Gateway.Capabilities().SingleToolCall,
	})
	endStepSpan(span, reply, err)
	if err != nil {
		n.logger.Error("model invocation failed", map[string]interface{}{
			"error": err.Error(),
		})
		return Decision{}, fmt.Errorf("agent %s: model invocation: %w", n.cfg.Name, err)
	}

	route := n.routing.Route(reply, n.cfg.BackendToolNames)
	n.logger.Info("step routed", map[string]interface{}{
		"route":      string(route),
		"tool_calls": len(reply.ToolCalls),
	})
	return Decision{Route: route, State: conversation.Append(state, reply)}, nil
}

// guardTripped reports whether the iteration ceiling is hit. The counter is
// derived from the current invocation window, so results from a prior
// agent's turn never count against this one.
func (n *Node) guardTripped(state []conversation.Message) bool {
	if n.cfg.MaxIterations == nil {
		return false
	}
	return conversation.CountToolResults(state) >= *n.cfg.MaxIterations
}

func (n *Node) forcedEndMessage() string {
	if n.cfg.ForcedEndMessage != "" {
		return n.cfg.ForcedEndMessage
	}
	return fmt.Sprintf("%s complete. Maximum iteration limit reached.", n.cfg.Name)
}

// assemble prepends a fresh system message and drops system messages
// already in state. Persisted system entries are turn markers bounding the
// invocation window; the model only ever sees the current instructions.
func (n *Node) assemble(state []conversation.Message) []conversation.Message {
	msgs := make([]conversation.Message, 0, len(state)+1)
	msgs = append(msgs, conversation.System(n.cfg.SystemPrompt))
	for _, m := range state {
		if m.Role == conversation.RoleSystem {
			continue
		}
		msgs = append(msgs, m)
	}
	return msgs
}

// bindTools merges render-only descriptors with backend tools when the
// gateway can hold the model to a single tool call per turn. Without that
// constraint, parallel execution of a render call would be ambiguous, so
// only backend tools are offered.
func (n *Node) bindTools() []toolset.ToolDef {
	caps := n.cfg.Gateway.Capabilities()
	if !caps.SingleToolCall || !caps.FrontendToolSchemas || len(n.cfg.FrontendTools) == 0 {
		return n.cfg.Tools
	}
	merged := make([]toolset.ToolDef, 0, len(n.cfg.FrontendTools)+len(n.cfg.Tools))
	merged = append(merged, n.cfg.FrontendTools...)
	merged = append(merged, n.cfg.Tools...)
	return merged
}
