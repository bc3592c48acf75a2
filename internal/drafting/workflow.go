package drafting

import (
	"fmt"

	"github.com/lexpipe/lexpipe/internal/agent"
	"github.com/lexpipe/lexpipe/internal/config"
	"github.com/lexpipe/lexpipe/internal/graph"
	"github.com/lexpipe/lexpipe/internal/session"
	"github.com/lexpipe/lexpipe/internal/toolset"
)

// GatewayFactory resolves a capability profile name to a model gateway.
// Composition resolves every agent's gateway once, up front, so a
// misconfigured profile fails at build time rather than mid-run.
type GatewayFactory func(profile string) (agent.ModelGateway, error)

// Workflow is the composed drafting graph plus the per-run session tracker.
type Workflow struct {
	Graph   *graph.Graph
	Tracker *Tracker
}

// DefaultRoster returns the built-in agent roster: the supervisor plus the
// six pipeline sub-agents, all on the default profile and prompts. The
// supervisor carries no iteration cap; it orchestrates, its sub-agents loop.
func DefaultRoster() *config.Roster {
	roster := &config.Roster{
		Supervisor: config.AgentSpec{Name: "supervisor"},
	}
	for _, name := range []string{
		NodeIntake, "fact_extraction", "research", "citation", "drafting", "review",
	} {
		roster.Agents = append(roster.Agents, config.AgentSpec{Name: name})
	}
	return roster
}

// BuildWorkflow composes the drafting graph from a roster. The supervisor is
// the entry node; delegation tools hand control to the security gate or the
// intake agent, and static edges interleave phase gates with the pipeline
// sub-agents.
func BuildWorkflow(cfg *config.Config, roster *config.Roster, store session.Store, gateways GatewayFactory) (*Workflow, error) {
	if roster == nil {
		roster = DefaultRoster()
	}
	tracker := NewTracker("", "")

	registry := toolset.NewRegistry()
	if err := RegisterSupervisorTools(registry, store, tracker); err != nil {
		return nil, fmt.Errorf("register tools: %w", err)
	}

	supervisor, err := buildAgent(cfg, roster.Supervisor, gateways, agentOptions{
		tools:      registry.Definitions(),
		toolNames:  registry.BackendNames(),
		routing:    agent.DelegationRoutingPolicy{Targets: registry.DelegationTargets()},
		supervisor: true,
	})
	if err != nil {
		return nil, err
	}

	builder := graph.NewBuilder(registry).
		AddNode(supervisor).
		SetEntry(supervisor.Name())

	for _, spec := range roster.Agents {
		node, err := buildAgent(cfg, spec, gateways, agentOptions{})
		if err != nil {
			return nil, err
		}
		builder.AddNode(node)
	}

	// Deterministic gates keep the durable phase in lockstep with pipeline
	// position. Each gate advances through the linear phases it owns, then
	// hands control to the next sub-agent.
	gates := []struct {
		name   string
		next   string
		phases []session.Phase
	}{
		{NodeSecurityGate, NodeIntake, []session.Phase{session.PhaseSecurity, session.PhaseIntake}},
		{"facts_gate", "fact_extraction", []session.Phase{
			session.PhaseFactValidation, session.PhaseClassification,
			session.PhaseRouteResolution, session.PhaseClarification,
		}},
		{"template_gate", "research", []session.Phase{
			session.PhaseTemplatePack, session.PhaseParallelAgents,
		}},
		{"citation_gate", "citation", []session.Phase{
			session.PhaseOptionalAgents, session.PhaseCitationValidation,
		}},
		{"merge_gate", "drafting", []session.Phase{
			session.PhaseContextMerge, session.PhaseDrafting,
		}},
		{"review_gate", "review", []session.Phase{session.PhaseReview}},
		{"export_gate", "", []session.Phase{
			session.PhaseStagingRules, session.PhasePromotion,
			session.PhaseExport, session.PhaseCompleted,
		}},
	}
	for _, g := range gates {
		builder.AddNode(NewPhaseGate(g.name, store, tracker, g.phases...))
		if g.next != "" {
			builder.AddEdge(g.name, g.next)
		}
	}

	// Sub-agent to successor-gate edges. The intake agent reached by direct
	// delegation flows into the same pipeline as one reached via the
	// security gate.
	builder.
		AddEdge(NodeIntake, "facts_gate").
		AddEdge("fact_extraction", "template_gate").
		AddEdge("research", "citation_gate").
		AddEdge("citation", "merge_gate").
		AddEdge("drafting", "review_gate").
		AddEdge("review", "export_gate")

	g, err := builder.Build()
	if err != nil {
		return nil, fmt.Errorf("build graph: %w", err)
	}
	return &Workflow{Graph: g, Tracker: tracker}, nil
}

type agentOptions struct {
	tools      []toolset.ToolDef
	toolNames  map[string]bool
	routing    agent.RoutingPolicy
	supervisor bool
}

func buildAgent(cfg *config.Config, spec config.AgentSpec, gateways GatewayFactory, opts agentOptions) (*agent.Node, error) {
	gw, err := gateways(spec.Profile)
	if err != nil {
		return nil, fmt.Errorf("agent %s: resolve gateway: %w", spec.Name, err)
	}

	prompt := spec.Prompt
	if prompt == "" {
		prompt = defaultPrompts[spec.Name]
	}

	maxIterations := spec.MaxIterations
	if maxIterations == nil && !opts.supervisor {
		limit := cfg.Workflow.MaxIterations
		maxIterations = &limit
	}

	return agent.NewNode(agent.Config{
		Name:             spec.Name,
		SystemPrompt:     prompt,
		MaxIterations:    maxIterations,
		Tools:            opts.tools,
		BackendToolNames: opts.toolNames,
		Routing:          opts.routing,
		Gateway:          gw,
	})
}
