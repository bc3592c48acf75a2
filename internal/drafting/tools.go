package drafting

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/vinayprograms/agentkit/logging"

	"github.com/lexpipe/lexpipe/internal/session"
	"github.com/lexpipe/lexpipe/internal/toolset"
)

// Delegation entry points. The tool names are part of the supervisor's
// prompt contract; the targets must match node names in the graph.
const (
	NodeSecurityGate = "security_gate"
	NodeIntake       = "intake"
)

// RegisterSupervisorTools adds the session management tools and delegation
// markers the supervisor is allowed to call.
func RegisterSupervisorTools(r *toolset.Registry, store session.Store, tracker *Tracker) error {
	logger := logging.New().WithComponent("drafting.tools")

	tools := []toolset.Tool{
		initializeSessionTool(store, tracker, logger),
		updatePhaseTool(store, logger),
		statusTool(store),
	}
	for _, t := range tools {
		if err := r.RegisterBackend(t); err != nil {
			return err
		}
	}

	delegations := []struct {
		def    toolset.ToolDef
		target string
	}{
		{
			def: toolset.ToolDef{
				Name: "start_drafting_pipeline",
				Description: "Start the full drafting pipeline. Call this when the user has " +
					"provided enough information to begin drafting.",
				Parameters: objectSchema(map[string]interface{}{
					"user_id":             stringProp("User's unique identifier"),
					"drafting_session_id": stringProp("The drafting session ID"),
				}, "user_id", "drafting_session_id"),
			},
			target: NodeSecurityGate,
		},
		{
			def: toolset.ToolDef{
				Name:        "delegate_to_intake",
				Description: "Delegate to the Intake Agent for conversational fact gathering.",
				Parameters: objectSchema(map[string]interface{}{
					"user_id":             stringProp("User's unique identifier"),
					"drafting_session_id": stringProp("The drafting session ID"),
					"document_type":       stringProp("Optional document type hint"),
				}, "user_id", "drafting_session_id"),
			},
			target: NodeIntake,
		},
	}
	for _, d := range delegations {
		if err := r.RegisterDelegation(d.def, d.target); err != nil {
			return err
		}
	}
	return nil
}

func initializeSessionTool(store session.Store, tracker *Tracker, logger *logging.Logger) toolset.Tool {
	return toolset.Func{
		Def: toolset.ToolDef{
			Name: "initialize_drafting_session",
			Description: "Initialize a new legal drafting session. Creates a session record " +
				"in the INITIALIZED phase.",
			Parameters: objectSchema(map[string]interface{}{
				"user_id":       stringProp("User's unique identifier"),
				"document_type": stringProp("Optional document type (motion, brief, contract, etc.)"),
			}, "user_id"),
		},
		Fn: func(ctx context.Context, args map[string]interface{}) (interface{}, error) {
			ownerID, _ := args["user_id"].(string)
			if ownerID == "" {
				return nil, fmt.Errorf("user_id is required")
			}
			documentType, _ := args["document_type"].(string)

			id := uuid.NewString()
			sess, err := store.Create(ctx, id, ownerID, documentType)
			if err != nil {
				return nil, err
			}
			if tracker != nil {
				tracker.Bind(sess.ID, sess.OwnerID)
			}
			logger.Info("session initialized", map[string]interface{}{
				"session": sess.ID,
				"owner":   ownerID,
			})
			return map[string]interface{}{
				"status":              "success",
				"drafting_session_id": sess.ID,
				"user_id":             ownerID,
				"document_type":       documentType,
				"phase":               string(sess.Phase),
				"message":             "Drafting session created. Ready for intake.",
			}, nil
		},
	}
}

func updatePhaseTool(store session.Store, logger *logging.Logger) toolset.Tool {
	return toolset.Func{
		Def: toolset.ToolDef{
			Name: "update_drafting_phase",
			Description: "Update the drafting workflow phase. Validates the transition " +
				"against the allowed state machine transitions.",
			Parameters: objectSchema(map[string]interface{}{
				"drafting_session_id": stringProp("The drafting session ID"),
				"new_phase":           stringProp("Target phase name"),
				"error_message":       stringProp("Optional error message (for FAILED transitions)"),
			}, "drafting_session_id", "new_phase"),
		},
		Fn: func(ctx context.Context, args map[string]interface{}) (interface{}, error) {
			id, _ := args["drafting_session_id"].(string)
			phase, _ := args["new_phase"].(string)
			errMsg, _ := args["error_message"].(string)
			if id == "" || phase == "" {
				return nil, fmt.Errorf("drafting_session_id and new_phase are required")
			}

			ok, err := store.UpdatePhase(ctx, id, session.Phase(phase), errMsg)
			if err != nil {
				return nil, err
			}
			if !ok {
				return map[string]interface{}{
					"status":  "failed",
					"message": fmt.Sprintf("Invalid transition to %s", phase),
				}, nil
			}
			sess, err := store.Get(ctx, id)
			if err != nil {
				return nil, err
			}
			result := map[string]interface{}{
				"status":  "success",
				"phase":   phase,
				"message": fmt.Sprintf("Phase updated to %s", phase),
			}
			if sess != nil {
				result["previous_phase"] = string(sess.PreviousPhase)
			}
			logger.Info("phase updated via tool", map[string]interface{}{
				"session": id,
				"phase":   phase,
			})
			return result, nil
		},
	}
}

func statusTool(store session.Store) toolset.Tool {
	return toolset.Func{
		Def: toolset.ToolDef{
			Name:        "get_drafting_status",
			Description: "Get the current status and details of a drafting session.",
			Parameters: objectSchema(map[string]interface{}{
				"drafting_session_id": stringProp("The drafting session ID"),
			}, "drafting_session_id"),
		},
		Fn: func(ctx context.Context, args map[string]interface{}) (interface{}, error) {
			id, _ := args["drafting_session_id"].(string)
			if id == "" {
				return nil, fmt.Errorf("drafting_session_id is required")
			}
			sess, err := store.Get(ctx, id)
			if err != nil {
				return nil, err
			}
			if sess == nil {
				return map[string]interface{}{
					"status":  "failed",
					"message": "Session not found",
				}, nil
			}
			return map[string]interface{}{
				"status": "success",
				"session": map[string]interface{}{
					"drafting_session_id": sess.ID,
					"user_id":             sess.OwnerID,
					"phase":               string(sess.Phase),
					"previous_phase":      string(sess.PreviousPhase),
					"document_type":       sess.DocumentType,
					"jurisdiction":        sess.Jurisdiction,
					"case_title":          sess.CaseTitle,
					"error_message":       sess.ErrorMessage,
					"updated_at":          sess.UpdatedAt,
				},
			}, nil
		},
	}
}

func objectSchema(props map[string]interface{}, required ...string) map[string]interface{} {
	schema := map[string]interface{}{
		"type":       "object",
		"properties": props,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}

func stringProp(description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": description,
	}
}
