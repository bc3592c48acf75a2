// Package gateway adapts an agentkit LLM provider to the model gateway
// contract used by agent nodes.
package gateway

import (
	"context"
	"fmt"

	"github.com/vinayprograms/agentkit/llm"

	"github.com/lexpipe/lexpipe/internal/agent"
	"github.com/lexpipe/lexpipe/internal/conversation"
	"github.com/lexpipe/lexpipe/internal/toolset"
)

// AgentKit wraps an llm.Provider. Retry behavior belongs to the provider
// (configured at construction); this adapter never retries.
type AgentKit struct {
	provider llm.Provider
}

// NewAgentKit creates the adapter.
func NewAgentKit(provider llm.Provider) *AgentKit {
	return &AgentKit{provider: provider}
}

// Capabilities implements agent.ModelGateway. The chat API offers no
// per-request single-tool-call constraint, so nodes fall back to binding
// backend tools only.
func (g *AgentKit) Capabilities() agent.Capabilities {
	return agent.Capabilities{
		SingleToolCall:      false,
		FrontendToolSchemas: false,
	}
}

// Invoke implements agent.ModelGateway.
func (g *AgentKit) Invoke(ctx context.Context, msgs []conversation.Message, tools []toolset.ToolDef, _ agent.InvokeOptions) (conversation.Message, error) {
	req := llm.ChatRequest{
		Messages: toProviderMessages(msgs),
		Tools:    toProviderTools(tools),
	}
	resp, err := g.provider.Chat(ctx, req)
	if err != nil {
		return conversation.Message{}, fmt.Errorf("chat: %w", err)
	}
	return fromProviderResponse(resp), nil
}

func toProviderMessages(msgs []conversation.Message) []llm.Message {
	out := make([]llm.Message, 0, len(msgs))
	for _, m := range msgs {
		pm := llm.Message{
			Role:       string(m.Role),
			Content:    m.Content,
			ToolCallID: m.ToolCallID,
		}
		for _, tc := range m.ToolCalls {
			pm.ToolCalls = append(pm.ToolCalls, llm.ToolCallResponse{
				ID:   tc.ID,
				Name: tc.Name,
				Args: tc.Args,
			})
		}
		out = append(out, pm)
	}
	return out
}

func toProviderTools(tools []toolset.ToolDef) []llm.ToolDef {
	if len(tools) == 0 {
		return nil
	}
	out := make([]llm.ToolDef, 0, len(tools))
	for _, t := range tools {
		out = append(out, llm.ToolDef{
			Name:        t.Name,
			Description: t.Description,
			Parameters:  t.Parameters,
		})
	}
	return out
}

func fromProviderResponse(resp *llm.ChatResponse) conversation.Message {
	reply := conversation.Assistant(resp.Content)
	for _, tc := range resp.ToolCalls {
		reply.ToolCalls = append(reply.ToolCalls, conversation.ToolCall{
			ID:   tc.ID,
			Name: tc.Name,
			Args: tc.Args,
		})
	}
	return reply
}
