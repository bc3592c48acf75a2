package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Roster declares the workflow's agents: one supervisor plus the sub-agents
// it can delegate to. The roster is data so prompts and iteration caps can
// change without a rebuild.
type Roster struct {
	Supervisor AgentSpec   `yaml:"supervisor"`
	Agents     []AgentSpec `yaml:"agents"`
}

// AgentSpec declares one agent node.
type AgentSpec struct {
	Name          string `yaml:"name"`
	Prompt        string `yaml:"prompt"`
	Profile       string `yaml:"profile"`        // LLM capability profile; empty uses the default
	MaxIterations *int   `yaml:"max_iterations"` // Nil inherits the workflow default; supervisor stays unbounded
}

// LoadRoster reads and validates a YAML roster file.
func LoadRoster(path string) (*Roster, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read roster: %w", err)
	}
	var roster Roster
	if err := yaml.Unmarshal(data, &roster); err != nil {
		return nil, fmt.Errorf("parse roster: %w", err)
	}
	if err := roster.validate(); err != nil {
		return nil, err
	}
	return &roster, nil
}

func (r *Roster) validate() error {
	if r.Supervisor.Name == "" {
		return fmt.Errorf("roster: supervisor requires a name")
	}
	seen := map[string]bool{r.Supervisor.Name: true}
	for _, a := range r.Agents {
		if a.Name == "" {
			return fmt.Errorf("roster: agent requires a name")
		}
		if seen[a.Name] {
			return fmt.Errorf("roster: duplicate agent %q", a.Name)
		}
		seen[a.Name] = true
		if a.MaxIterations != nil && *a.MaxIterations <= 0 {
			return fmt.Errorf("roster: agent %s: max_iterations must be positive", a.Name)
		}
	}
	return nil
}

// Agent returns the named sub-agent spec, or nil.
func (r *Roster) Agent(name string) *AgentSpec {
	for i := range r.Agents {
		if r.Agents[i].Name == name {
			return &r.Agents[i]
		}
	}
	return nil
}
