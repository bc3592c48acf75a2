// Package main is the entry point for the lexpipe CLI.
package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"
)

// Build-time variables (set via ldflags)
var (
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"
)

func init() {
	// Load .env for API keys and other env vars
	_ = godotenv.Load()
}

func main() {
	var cli CLI
	kctx := kong.Parse(&cli,
		kong.Name("lexpipe"),
		kong.Description("Multi-agent legal document drafting workflow"),
		kongVars(),
	)

	if kctx.Command() == "version" {
		fmt.Printf("lexpipe version %s (commit: %s, built: %s)\n", version, commit, buildTime)
		return
	}

	rt, err := newRuntime(cli.Config)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	defer rt.Close()

	kctx.FatalIfErrorf(kctx.Run(rt))
}

// Run satisfies kong for the version command; the real handling happens in
// main before the runtime is built.
func (c *VersionCmd) Run(rt *Runtime) error { return nil }
