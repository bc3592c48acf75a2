package session

import "testing"

func TestCanTransitionLinearPipeline(t *testing.T) {
	order := []Phase{
		PhaseInitialized, PhaseSecurity, PhaseIntake, PhaseFactValidation,
		PhaseClassification, PhaseRouteResolution, PhaseClarification,
		PhaseTemplatePack, PhaseParallelAgents, PhaseOptionalAgents,
		PhaseCitationValidation, PhaseContextMerge, PhaseDrafting,
		PhaseReview, PhaseStagingRules, PhasePromotion, PhaseExport,
		PhaseCompleted,
	}
	for i := 0; i < len(order)-1; i++ {
		if !CanTransition(order[i], order[i+1]) {
			t.Errorf("%s -> %s should be legal", order[i], order[i+1])
		}
	}
	// Skipping a step is never legal.
	for i := 0; i < len(order)-2; i++ {
		if CanTransition(order[i], order[i+2]) {
			t.Errorf("%s -> %s should be illegal", order[i], order[i+2])
		}
	}
}

func TestEveryWorkingPhaseMayFail(t *testing.T) {
	for _, p := range append(WorkingPhases(), PhaseInitialized) {
		if !CanTransition(p, PhaseFailed) {
			t.Errorf("%s -> FAILED should be legal", p)
		}
	}
}

func TestPausedResumesToAnyWorkingPhase(t *testing.T) {
	for _, p := range WorkingPhases() {
		if !CanTransition(PhasePaused, p) {
			t.Errorf("PAUSED -> %s should be legal", p)
		}
	}
	if CanTransition(PhasePaused, PhaseInitialized) {
		t.Error("PAUSED -> INITIALIZED should be illegal")
	}
	if CanTransition(PhasePaused, PhaseCompleted) {
		t.Error("PAUSED -> COMPLETED should be illegal")
	}
}

func TestTerminalAndRestartTransitions(t *testing.T) {
	if got := len(AllowedTransitions(PhaseCompleted)); got != 0 {
		t.Errorf("COMPLETED is terminal, got %d transitions", got)
	}
	if !CanTransition(PhaseFailed, PhaseInitialized) {
		t.Error("FAILED -> INITIALIZED should be legal")
	}
	if CanTransition(PhaseCompleted, PhaseFailed) {
		t.Error("COMPLETED -> FAILED should be illegal")
	}
	if CanTransition(PhaseFailed, PhaseSecurity) {
		t.Error("FAILED restarts only at INITIALIZED")
	}
}

func TestAllowedTransitionsReturnsCopy(t *testing.T) {
	first := AllowedTransitions(PhaseIntake)
	first[0] = PhaseCompleted
	second := AllowedTransitions(PhaseIntake)
	if second[0] == PhaseCompleted {
		t.Error("AllowedTransitions must not expose the internal table")
	}
}
