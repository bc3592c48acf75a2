package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoadFileAppliesDefaults(t *testing.T) {
	path := writeFile(t, "lexpipe.toml", `
[llm]
provider = "anthropic"
model = "claude-sonnet-4-5"
`)
	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.LLM.Provider != "anthropic" {
		t.Errorf("provider lost: %q", cfg.LLM.Provider)
	}
	if cfg.LLM.MaxTokens != 4096 {
		t.Errorf("default max tokens not applied: %d", cfg.LLM.MaxTokens)
	}
	if cfg.Workflow.MaxIterations != 15 {
		t.Errorf("default iteration cap not applied: %d", cfg.Workflow.MaxIterations)
	}
}

func TestGetProfileFallsBackToDefaults(t *testing.T) {
	cfg := New()
	cfg.LLM = LLMConfig{Provider: "anthropic", Model: "claude-sonnet-4-5", MaxTokens: 8192}
	cfg.Profiles = map[string]Profile{
		"fast": {Model: "claude-haiku-4-5"},
	}

	got := cfg.GetProfile("fast")
	if got.Model != "claude-haiku-4-5" {
		t.Errorf("profile model not used: %q", got.Model)
	}
	if got.Provider != "anthropic" || got.MaxTokens != 8192 {
		t.Errorf("defaults not inherited: %+v", got)
	}

	if got := cfg.GetProfile(""); got.Model != "claude-sonnet-4-5" {
		t.Errorf("empty profile should return the default LLM, got %q", got.Model)
	}
	if got := cfg.GetProfile("missing"); got.Model != "claude-sonnet-4-5" {
		t.Errorf("unknown profile should fall back, got %q", got.Model)
	}
}

func TestDefaultAPIKeyEnv(t *testing.T) {
	if got := DefaultAPIKeyEnv("anthropic"); got != "ANTHROPIC_API_KEY" {
		t.Errorf("unexpected env var: %s", got)
	}
	if got := DefaultAPIKeyEnv("unknown"); got != "" {
		t.Errorf("unknown provider should have no default, got %s", got)
	}
}

func TestLoadRoster(t *testing.T) {
	path := writeFile(t, "agents.yaml", `
supervisor:
  name: supervisor
agents:
  - name: intake
    prompt: custom intake prompt
    max_iterations: 5
  - name: drafting
    profile: heavy
`)
	roster, err := LoadRoster(path)
	if err != nil {
		t.Fatalf("load roster: %v", err)
	}
	intake := roster.Agent("intake")
	if intake == nil || intake.Prompt != "custom intake prompt" {
		t.Fatalf("intake spec wrong: %+v", intake)
	}
	if intake.MaxIterations == nil || *intake.MaxIterations != 5 {
		t.Errorf("max_iterations lost: %+v", intake.MaxIterations)
	}
	if roster.Agent("drafting").Profile != "heavy" {
		t.Error("profile lost")
	}
	if roster.Agent("ghost") != nil {
		t.Error("expected nil for unknown agent")
	}
}

func TestLoadRosterValidation(t *testing.T) {
	cases := map[string]string{
		"missing supervisor name": `
agents:
  - name: intake
`,
		"duplicate agent": `
supervisor:
  name: supervisor
agents:
  - name: intake
  - name: intake
`,
		"non-positive cap": `
supervisor:
  name: supervisor
agents:
  - name: intake
    max_iterations: 0
`,
	}
	for name, content := range cases {
		path := writeFile(t, "agents.yaml", content)
		if _, err := LoadRoster(path); err == nil {
			t.Errorf("%s: expected validation error", name)
		}
	}
}
