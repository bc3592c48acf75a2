// Package graph wires agent nodes and the tool executor into the workflow
// topology: node -> tool executor -> back to the node, with the supervisor
// additionally branching to named sub-agent entry points, and static edges
// carrying control from a finished node to its pipeline successor.
package graph

import (
	"context"
	"fmt"

	"github.com/vinayprograms/agentkit/logging"

	"github.com/lexpipe/lexpipe/internal/agent"
	"github.com/lexpipe/lexpipe/internal/conversation"
	"github.com/lexpipe/lexpipe/internal/toolset"
)

// Node is one executable step in the graph. Agent nodes satisfy this;
// deterministic gates (no model call) satisfy it too.
type Node interface {
	Name() string
	Step(ctx context.Context, state []conversation.Message) (agent.Decision, error)
}

// turnPrompted is implemented by nodes whose entry starts a fresh agent
// invocation window. The graph appends a system turn marker when control
// transfers into such a node.
type turnPrompted interface {
	SystemPrompt() string
}

// Graph is the compiled workflow.
type Graph struct {
	nodes      map[string]Node
	edges      map[string]string
	delegation map[string]string
	executor   *toolset.Executor
	entry      string
	logger     *logging.Logger
}

// Builder assembles a graph.
type Builder struct {
	g    *Graph
	errs []error
}

// NewBuilder creates a graph builder over a tool registry. The registry's
// delegation map defines the sub-agent entry points reachable after tool
// execution.
func NewBuilder(registry *toolset.Registry) *Builder {
	return &Builder{g: &Graph{
		nodes:      make(map[string]Node),
		edges:      make(map[string]string),
		delegation: registry.DelegationTargets(),
		executor:   toolset.NewExecutor(registry),
		logger:     logging.New().WithComponent("graph"),
	}}
}

// AddNode registers a node under its name.
func (b *Builder) AddNode(n Node) *Builder {
	if _, dup := b.g.nodes[n.Name()]; dup {
		b.errs = append(b.errs, fmt.Errorf("duplicate node %s", n.Name()))
		return b
	}
	b.g.nodes[n.Name()] = n
	return b
}

// AddEdge routes control from node from to node to when from terminates.
// Nodes without an outgoing edge end the run.
func (b *Builder) AddEdge(from, to string) *Builder {
	b.g.edges[from] = to
	return b
}

// SetEntry sets the entry node.
func (b *Builder) SetEntry(name string) *Builder {
	b.g.entry = name
	return b
}

// Build validates the topology and returns the graph. Every edge endpoint
// and every delegation target must resolve to a registered node, so the
// runner only ever routes to names it can reach.
func (b *Builder) Build() (*Graph, error) {
	if len(b.errs) > 0 {
		return nil, b.errs[0]
	}
	if _, ok := b.g.nodes[b.g.entry]; !ok {
		return nil, fmt.Errorf("entry node %q not registered", b.g.entry)
	}
	for from, to := range b.g.edges {
		if _, ok := b.g.nodes[from]; !ok {
			return nil, fmt.Errorf("edge from unknown node %q", from)
		}
		if _, ok := b.g.nodes[to]; !ok {
			return nil, fmt.Errorf("edge %s -> %s: unknown target", from, to)
		}
	}
	for tool, target := range b.g.delegation {
		if _, ok := b.g.nodes[target]; !ok {
			return nil, fmt.Errorf("delegation tool %s: unreachable entry point %q", tool, target)
		}
	}
	return b.g, nil
}

// Run drives the workflow from the entry node until a node terminates with
// no successor. The returned state is the full conversation, including
// every tool result and turn marker.
func (g *Graph) Run(ctx context.Context, state []conversation.Message) ([]conversation.Message, error) {
	current := g.nodes[g.entry]
	state = g.enterNode(state, current)

	for {
		if err := ctx.Err(); err != nil {
			return state, err
		}

		dec, err := current.Step(ctx, state)
		if err != nil {
			return state, err
		}
		state = dec.State

		if dec.Route == agent.RouteEnd {
			next, ok := g.edges[current.Name()]
			if !ok {
				g.logger.Info("run complete", map[string]interface{}{
					"node": current.Name(),
				})
				return state, nil
			}
			current = g.nodes[next]
			state = g.enterNode(state, current)
			continue
		}

		state, err = g.executor.ExecutePending(ctx, state)
		if err != nil {
			return state, err
		}

		hop := agent.RouteAfterTool(state, g.delegation)
		if hop == agent.RouteSelf {
			continue
		}
		g.logger.Info("delegating", map[string]interface{}{
			"from": current.Name(),
			"to":   hop,
		})
		current = g.nodes[hop]
		state = g.enterNode(state, current)
	}
}

// enterNode marks the start of a node's invocation window. Only prompted
// nodes (agent nodes) get a marker; gates run between windows without
// resetting them.
func (g *Graph) enterNode(state []conversation.Message, n Node) []conversation.Message {
	if p, ok := n.(turnPrompted); ok {
		return conversation.Append(state, conversation.System(p.SystemPrompt()))
	}
	return state
}
