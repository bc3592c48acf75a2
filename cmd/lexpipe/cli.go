// Package main defines the CLI structure using kong.
package main

import "github.com/alecthomas/kong"

// CLI defines the command-line interface.
type CLI struct {
	Config string `help:"Config file path" default:"lexpipe.toml"`

	Chat    ChatCmd    `cmd:"" help:"Send a drafting request through the workflow"`
	Status  StatusCmd  `cmd:"" help:"Show a session's phase and details"`
	Pause   PauseCmd   `cmd:"" help:"Pause a session"`
	Resume  ResumeCmd  `cmd:"" help:"Resume a paused session"`
	Cancel  CancelCmd  `cmd:"" help:"Deactivate a session (soft delete)"`
	Version VersionCmd `cmd:"" help:"Show version information"`
}

// ChatCmd runs the supervisor workflow over one user message.
type ChatCmd struct {
	Message string `arg:"" help:"The user's drafting request"`
	User    string `short:"u" default:"local" help:"User identifier owning the session"`
	Roster  string `help:"Agent roster path (overrides config)"`
}

// StatusCmd shows session state.
type StatusCmd struct {
	Session string `arg:"" optional:"" help:"Session ID; empty shows the user's latest active session"`
	User    string `short:"u" default:"local" help:"User identifier (used when no session ID is given)"`
}

// PauseCmd pauses a session.
type PauseCmd struct {
	Session string `arg:"" help:"Session ID"`
	Reason  string `help:"Pause reason (stored on the session)"`
}

// ResumeCmd resumes a paused session.
type ResumeCmd struct {
	Session string `arg:"" help:"Session ID"`
	Phase   string `help:"Target phase; empty resumes to the phase active before the pause"`
}

// CancelCmd soft-deletes a session.
type CancelCmd struct {
	Session string `arg:"" help:"Session ID"`
}

// VersionCmd shows version information.
type VersionCmd struct{}

// kongVars returns variables for kong (version info).
func kongVars() kong.Vars {
	return kong.Vars{
		"version": version,
	}
}
