package main

import (
	"context"
	"fmt"
	"os"

	"github.com/lexpipe/lexpipe/internal/conversation"
	"github.com/lexpipe/lexpipe/internal/drafting"
)

// Run sends one user message through the supervisor workflow and prints the
// final assistant reply.
func (c *ChatCmd) Run(rt *Runtime) error {
	roster, err := rt.loadRoster(c.Roster)
	if err != nil {
		return err
	}

	wf, err := drafting.BuildWorkflow(rt.cfg, roster, rt.store, rt.gatewayFactory())
	if err != nil {
		return err
	}

	rt.telem.LogEvent("run_started", map[string]interface{}{"user": c.User})

	// The supervisor reads the user id out of the message when initializing
	// a session.
	state := []conversation.Message{
		conversation.User(fmt.Sprintf("User ID: %s\n\n%s", c.User, c.Message)),
	}

	final, err := wf.Graph.Run(context.Background(), state)
	if err != nil {
		rt.telem.LogEvent("run_failed", map[string]interface{}{"error": err.Error()})
		return err
	}
	rt.telem.LogEvent("run_complete", map[string]interface{}{
		"session": wf.Tracker.SessionID(),
	})

	if reply := conversation.LastAssistant(final); reply != nil {
		fmt.Println(reply.Content)
	}
	if id := wf.Tracker.SessionID(); id != "" {
		fmt.Fprintf(os.Stderr, "\nsession: %s\n", id)
	}
	return nil
}
