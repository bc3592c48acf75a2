package agent

import (
	"context"

	"github.com/lexpipe/lexpipe/internal/conversation"
	"github.com/lexpipe/lexpipe/internal/toolset"
)

// Capabilities are model features resolved once at gateway construction.
// Tool binding branches on these flags instead of inspecting the concrete
// model type at runtime.
type Capabilities struct {
	// SingleToolCall means the gateway can instruct the model to request at
	// most one tool call per response.
	SingleToolCall bool
	// FrontendToolSchemas means render-only tool descriptors may be offered
	// alongside backend tools.
	FrontendToolSchemas bool
}

// InvokeOptions carries per-call gateway instructions.
type InvokeOptions struct {
	// SingleToolCall asks the model for at most one tool call this turn.
	// Ignored by gateways that lack the capability.
	SingleToolCall bool
}

// ModelGateway wraps one chat-completion capability. It is opaque to the
// core: any retry policy lives behind this interface, never in front of it.
type ModelGateway interface {
	// Invoke sends the message sequence plus tool list and returns the
	// assistant reply, which may carry pending tool calls.
	Invoke(ctx context.Context, msgs []conversation.Message, tools []toolset.ToolDef, opts InvokeOptions) (conversation.Message, error)

	// Capabilities reports what the underlying model supports.
	Capabilities() Capabilities
}
