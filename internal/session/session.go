// Package session provides the durable session record and its phase
// transition state machine.
package session

import (
	"context"
	"time"
)

// Phase is one discrete state of a session's pipeline progress.
type Phase string

// The 18-step drafting pipeline, plus the blanket PAUSED/FAILED states.
const (
	PhaseInitialized        Phase = "INITIALIZED"
	PhaseSecurity           Phase = "SECURITY"
	PhaseIntake             Phase = "INTAKE"
	PhaseFactValidation     Phase = "FACT_VALIDATION"
	PhaseClassification     Phase = "CLASSIFICATION"
	PhaseRouteResolution    Phase = "ROUTE_RESOLUTION"
	PhaseClarification      Phase = "CLARIFICATION"
	PhaseTemplatePack       Phase = "TEMPLATE_PACK"
	PhaseParallelAgents     Phase = "PARALLEL_AGENTS"
	PhaseOptionalAgents     Phase = "OPTIONAL_AGENTS"
	PhaseCitationValidation Phase = "CITATION_VALIDATION"
	PhaseContextMerge       Phase = "CONTEXT_MERGE"
	PhaseDrafting           Phase = "DRAFTING"
	PhaseReview             Phase = "REVIEW"
	PhaseStagingRules       Phase = "STAGING_RULES"
	PhasePromotion          Phase = "PROMOTION"
	PhaseExport             Phase = "EXPORT"
	PhaseCompleted          Phase = "COMPLETED"
	PhasePaused             Phase = "PAUSED"
	PhaseFailed             Phase = "FAILED"
)

// transitions is the fixed phase graph: mostly linear, every working phase
// may fail, PAUSED resumes to any working phase, FAILED restarts at
// INITIALIZED, COMPLETED is terminal. Encoding this as data keeps illegal
// jumps structurally impossible and the previous_phase audit trail
// consistent for every transition.
var transitions = map[Phase][]Phase{
	PhaseInitialized:        {PhaseSecurity, PhaseFailed},
	PhaseSecurity:           {PhaseIntake, PhaseFailed},
	PhaseIntake:             {PhaseFactValidation, PhaseFailed},
	PhaseFactValidation:     {PhaseClassification, PhasePaused, PhaseFailed},
	PhaseClassification:     {PhaseRouteResolution, PhaseFailed},
	PhaseRouteResolution:    {PhaseClarification, PhaseFailed},
	PhaseClarification:      {PhaseTemplatePack, PhasePaused, PhaseFailed},
	PhaseTemplatePack:       {PhaseParallelAgents, PhaseFailed},
	PhaseParallelAgents:     {PhaseOptionalAgents, PhaseFailed},
	PhaseOptionalAgents:     {PhaseCitationValidation, PhaseFailed},
	PhaseCitationValidation: {PhaseContextMerge, PhaseFailed},
	PhaseContextMerge:       {PhaseDrafting, PhasePaused, PhaseFailed},
	PhaseDrafting:           {PhaseReview, PhaseFailed},
	PhaseReview:             {PhaseStagingRules, PhaseFailed},
	PhaseStagingRules:       {PhasePromotion, PhaseFailed},
	PhasePromotion:          {PhaseExport, PhaseFailed},
	PhaseExport:             {PhaseCompleted, PhaseFailed},
	PhaseCompleted:          {},
	PhasePaused: {
		PhaseSecurity, PhaseIntake, PhaseFactValidation, PhaseClassification,
		PhaseRouteResolution, PhaseClarification, PhaseTemplatePack,
		PhaseParallelAgents, PhaseOptionalAgents, PhaseCitationValidation,
		PhaseContextMerge, PhaseDrafting, PhaseReview, PhaseStagingRules,
		PhasePromotion, PhaseExport, PhaseFailed,
	},
	PhaseFailed: {PhaseInitialized},
}

// CanTransition reports whether moving from one phase to another is legal.
func CanTransition(from, to Phase) bool {
	for _, allowed := range transitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// AllowedTransitions returns the legal next phases for a phase.
func AllowedTransitions(from Phase) []Phase {
	allowed := transitions[from]
	out := make([]Phase, len(allowed))
	copy(out, allowed)
	return out
}

// WorkingPhases returns every phase a paused session may resume to,
// excluding FAILED. Order follows the pipeline.
func WorkingPhases() []Phase {
	return []Phase{
		PhaseSecurity, PhaseIntake, PhaseFactValidation, PhaseClassification,
		PhaseRouteResolution, PhaseClarification, PhaseTemplatePack,
		PhaseParallelAgents, PhaseOptionalAgents, PhaseCitationValidation,
		PhaseContextMerge, PhaseDrafting, PhaseReview, PhaseStagingRules,
		PhasePromotion, PhaseExport,
	}
}

// Session is the durable record of one long-running drafting workflow.
// The phase field is mutated exclusively through the store's transition
// operations; domain metadata is opaque to the control core.
type Session struct {
	ID            string
	OwnerID       string
	Phase         Phase
	PreviousPhase Phase

	DocumentType string
	Jurisdiction string
	CourtType    string
	CaseCategory string
	CaseTitle    string

	DraftContent string

	// ErrorMessage doubles as a free-text note field: pause reasons land
	// here too.
	ErrorMessage string

	CreatedAt time.Time
	UpdatedAt time.Time
	IsActive  bool
}

// Metadata is the updatable domain metadata of a session. Nil fields are
// left unchanged.
type Metadata struct {
	DocumentType *string
	Jurisdiction *string
	CourtType    *string
	CaseCategory *string
	CaseTitle    *string
}

// Store persists sessions and enforces the transition table. Phase
// mutations are atomic read-validate-write operations; an illegal move is
// an expected condition reported as false, not an error.
type Store interface {
	Create(ctx context.Context, id, ownerID, documentType string) (*Session, error)
	Get(ctx context.Context, id string) (*Session, error)
	GetActiveByOwner(ctx context.Context, ownerID string) (*Session, error)

	// UpdatePhase is the sole legal way to move a session forward. Returns
	// false without mutation when newPhase is not in the current phase's
	// allowed set.
	UpdatePhase(ctx context.Context, id string, newPhase Phase, errorMessage string) (bool, error)

	// Pause is allowed from any phase; reason is stored in ErrorMessage.
	Pause(ctx context.Context, id, reason string) (bool, error)

	// Resume is only legal from PAUSED. An empty target resumes to the
	// stored previous phase.
	Resume(ctx context.Context, id string, target Phase) (bool, error)

	UpdateMetadata(ctx context.Context, id string, meta Metadata) (bool, error)
	SaveDraft(ctx context.Context, id, content string) (bool, error)

	// Deactivate soft-deletes a session. Sessions are never hard-deleted.
	Deactivate(ctx context.Context, id string) (bool, error)

	Close() error
}

// Notifier receives phase transition events. Implementations must not
// block; the store publishes after the write commits.
type Notifier interface {
	PhaseChanged(evt PhaseEvent)
}

// PhaseEvent describes one committed phase transition.
type PhaseEvent struct {
	SessionID string    `json:"session_id"`
	OwnerID   string    `json:"owner_id"`
	From      Phase     `json:"from"`
	To        Phase     `json:"to"`
	Note      string    `json:"note,omitempty"`
	At        time.Time `json:"at"`
}
