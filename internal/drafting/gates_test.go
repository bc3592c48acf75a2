package drafting

import (
	"context"
	"testing"

	"github.com/lexpipe/lexpipe/internal/agent"
	"github.com/lexpipe/lexpipe/internal/conversation"
	"github.com/lexpipe/lexpipe/internal/session"
)

func TestGateAdvancesThroughPhases(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	sess, err := store.Create(ctx, "s-1", "u", "")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	tracker := NewTracker(sess.ID, sess.OwnerID)
	gate := NewPhaseGate("security_gate", store, tracker,
		session.PhaseSecurity, session.PhaseIntake)

	state := []conversation.Message{conversation.User("go")}
	dec, err := gate.Step(ctx, state)
	if err != nil {
		t.Fatalf("gate step: %v", err)
	}
	if dec.Route != agent.RouteEnd {
		t.Errorf("gates always terminate their step, got %s", dec.Route)
	}
	if len(dec.State) != len(state) {
		t.Error("gates must not touch the conversation")
	}

	got, _ := store.Get(ctx, sess.ID)
	if got.Phase != session.PhaseIntake || got.PreviousPhase != session.PhaseSecurity {
		t.Errorf("expected INTAKE after SECURITY, got %s (prev %s)", got.Phase, got.PreviousPhase)
	}
}

func TestGatePassesThroughWithoutSession(t *testing.T) {
	store := newTestStore(t)
	gate := NewPhaseGate("security_gate", store, NewTracker("", ""), session.PhaseSecurity)

	dec, err := gate.Step(context.Background(), nil)
	if err != nil {
		t.Fatalf("gate step: %v", err)
	}
	if dec.Route != agent.RouteEnd {
		t.Errorf("expected end, got %s", dec.Route)
	}
}

func TestGateStopsOnRefusedTransition(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	sess, _ := store.Create(ctx, "s-1", "u", "")
	tracker := NewTracker(sess.ID, sess.OwnerID)

	// FACT_VALIDATION is not reachable from INITIALIZED, so nothing advances.
	gate := NewPhaseGate("facts_gate", store, tracker,
		session.PhaseFactValidation, session.PhaseClassification)

	if _, err := gate.Step(ctx, nil); err != nil {
		t.Fatalf("gate step: %v", err)
	}
	got, _ := store.Get(ctx, sess.ID)
	if got.Phase != session.PhaseInitialized {
		t.Errorf("refused gate mutated phase: %s", got.Phase)
	}
}
