package drafting

import (
	"context"

	"github.com/vinayprograms/agentkit/logging"

	"github.com/lexpipe/lexpipe/internal/agent"
	"github.com/lexpipe/lexpipe/internal/conversation"
	"github.com/lexpipe/lexpipe/internal/session"
)

// PhaseGate is a deterministic graph node that advances the bound session
// through one or more consecutive phases. Gates never call a model and
// never touch the conversation; they exist to keep the durable phase record
// in lockstep with pipeline position.
type PhaseGate struct {
	name    string
	store   session.Store
	tracker *Tracker
	phases  []session.Phase
	logger  *logging.Logger
}

// NewPhaseGate creates a gate advancing through the given phases in order.
func NewPhaseGate(name string, store session.Store, tracker *Tracker, phases ...session.Phase) *PhaseGate {
	return &PhaseGate{
		name:    name,
		store:   store,
		tracker: tracker,
		phases:  phases,
		logger:  logging.New().WithComponent("gate." + name),
	}
}

// Name implements graph.Node.
func (g *PhaseGate) Name() string { return g.name }

// Step implements graph.Node. A run without a bound session (pure
// conversation, nothing initialized yet) passes through untouched. A refused
// transition is logged and the remaining phases are skipped; the session
// keeps its last consistent phase.
func (g *PhaseGate) Step(ctx context.Context, state []conversation.Message) (agent.Decision, error) {
	id := g.tracker.SessionID()
	if id == "" {
		g.logger.Debug("no session bound, passing through", nil)
		return agent.Decision{Route: agent.RouteEnd, State: state}, nil
	}

	for _, phase := range g.phases {
		ok, err := g.store.UpdatePhase(ctx, id, phase, "")
		if err != nil {
			return agent.Decision{}, err
		}
		if !ok {
			g.logger.Warn("phase advance refused", map[string]interface{}{
				"session": id,
				"phase":   string(phase),
			})
			break
		}
	}
	return agent.Decision{Route: agent.RouteEnd, State: state}, nil
}
