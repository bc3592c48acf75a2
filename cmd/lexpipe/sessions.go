package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/lexpipe/lexpipe/internal/session"
)

// Session status rendering.
var (
	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("8")) // Gray - labels

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("15")) // White - values

	phaseStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("12")) // Blue - current phase

	pausedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("11")) // Yellow - paused

	failedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("9")) // Red - failed

	completedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("10")) // Green - completed
)

func phaseRender(p session.Phase) string {
	switch p {
	case session.PhasePaused:
		return pausedStyle.Render(string(p))
	case session.PhaseFailed:
		return failedStyle.Render(string(p))
	case session.PhaseCompleted:
		return completedStyle.Render(string(p))
	default:
		return phaseStyle.Render(string(p))
	}
}

// Run shows a session's phase and details.
func (c *StatusCmd) Run(rt *Runtime) error {
	ctx := context.Background()

	var sess *session.Session
	var err error
	if c.Session != "" {
		sess, err = rt.store.Get(ctx, c.Session)
	} else {
		sess, err = rt.store.GetActiveByOwner(ctx, c.User)
	}
	if err != nil {
		return err
	}
	if sess == nil {
		return fmt.Errorf("no active session found")
	}

	row := func(label, value string) {
		if value == "" {
			return
		}
		fmt.Printf("%s %s\n", labelStyle.Render(label+":"), valueStyle.Render(value))
	}

	fmt.Printf("%s %s\n", labelStyle.Render("session:"), valueStyle.Render(sess.ID))
	fmt.Printf("%s %s\n", labelStyle.Render("phase:"), phaseRender(sess.Phase))
	if sess.PreviousPhase != "" {
		row("previous", string(sess.PreviousPhase))
	}
	row("owner", sess.OwnerID)
	row("document", sess.DocumentType)
	row("jurisdiction", sess.Jurisdiction)
	row("case", sess.CaseTitle)
	row("note", sess.ErrorMessage)
	row("updated", sess.UpdatedAt.Format("2006-01-02 15:04:05"))

	if next := session.AllowedTransitions(sess.Phase); len(next) > 0 {
		names := make([]string, len(next))
		for i, p := range next {
			names[i] = string(p)
		}
		row("next", strings.Join(names, ", "))
	}
	return nil
}

// Run pauses a session.
func (c *PauseCmd) Run(rt *Runtime) error {
	ok, err := rt.store.Pause(context.Background(), c.Session, c.Reason)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("session %s not found", c.Session)
	}
	fmt.Printf("paused %s\n", c.Session)
	return nil
}

// Run resumes a paused session.
func (c *ResumeCmd) Run(rt *Runtime) error {
	ok, err := rt.store.Resume(context.Background(), c.Session, session.Phase(c.Phase))
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("session %s is not paused or does not exist", c.Session)
	}
	fmt.Printf("resumed %s\n", c.Session)
	return nil
}

// Run soft-deletes a session.
func (c *CancelCmd) Run(rt *Runtime) error {
	ok, err := rt.store.Deactivate(context.Background(), c.Session)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("session %s not found", c.Session)
	}
	fmt.Printf("cancelled %s\n", c.Session)
	return nil
}
