// Package toolset provides the tool registry and tool executor for the
// workflow graph. Every tool name belongs to exactly one class at decision
// time: backend (executed server-side, exactly once per call), frontend
// (rendered by an external UI, never executed here), or delegation (a
// marker that hands control to a named sub-agent).
package toolset

import (
	"context"
	"fmt"
	"sort"
)

// ToolDef describes a tool to the model.
type ToolDef struct {
	Name        string
	Description string
	Parameters  map[string]interface{}
}

// Tool is an invocable backend capability.
type Tool interface {
	Definition() ToolDef
	Execute(ctx context.Context, args map[string]interface{}) (interface{}, error)
}

// Class is the classification of a tool name.
type Class int

const (
	ClassUnknown Class = iota
	ClassBackend
	ClassFrontend
	ClassDelegation
)

// Registry maps tool names to capabilities and classes. The three name sets
// are disjoint; registering a name twice in different classes is an error.
type Registry struct {
	backend    map[string]Tool
	frontend   map[string]ToolDef
	delegation map[string]delegation
}

type delegation struct {
	def    ToolDef
	target string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		backend:    make(map[string]Tool),
		frontend:   make(map[string]ToolDef),
		delegation: make(map[string]delegation),
	}
}

// RegisterBackend adds a backend tool.
func (r *Registry) RegisterBackend(t Tool) error {
	name := t.Definition().Name
	if err := r.checkUnused(name); err != nil {
		return err
	}
	r.backend[name] = t
	return nil
}

// RegisterFrontend adds a render-only tool descriptor. The executor will
// never invoke it; its presence signals the graph to terminate so an
// external UI can render the call.
func (r *Registry) RegisterFrontend(def ToolDef) error {
	if err := r.checkUnused(def.Name); err != nil {
		return err
	}
	r.frontend[def.Name] = def
	return nil
}

// RegisterDelegation adds a delegation marker mapping a tool name to a
// sub-agent entry point.
func (r *Registry) RegisterDelegation(def ToolDef, target string) error {
	if err := r.checkUnused(def.Name); err != nil {
		return err
	}
	if target == "" {
		return fmt.Errorf("delegation tool %s: empty target", def.Name)
	}
	r.delegation[def.Name] = delegation{def: def, target: target}
	return nil
}

func (r *Registry) checkUnused(name string) error {
	if name == "" {
		return fmt.Errorf("tool name is empty")
	}
	if r.Classify(name) != ClassUnknown {
		return fmt.Errorf("tool %s already registered", name)
	}
	return nil
}

// Classify returns the class of a tool name.
func (r *Registry) Classify(name string) Class {
	if _, ok := r.backend[name]; ok {
		return ClassBackend
	}
	if _, ok := r.frontend[name]; ok {
		return ClassFrontend
	}
	if _, ok := r.delegation[name]; ok {
		return ClassDelegation
	}
	return ClassUnknown
}

// Backend returns the backend tool for name, or nil.
func (r *Registry) Backend(name string) Tool {
	return r.backend[name]
}

// BackendNames returns the backend tool name set. Delegation markers are
// included: from the routing policy's point of view a delegation call must
// also reach the tool executor, which resolves it to a marker result.
func (r *Registry) BackendNames() map[string]bool {
	names := make(map[string]bool, len(r.backend)+len(r.delegation))
	for name := range r.backend {
		names[name] = true
	}
	for name := range r.delegation {
		names[name] = true
	}
	return names
}

// DelegationTargets returns the tool name to sub-agent entry point map.
func (r *Registry) DelegationTargets() map[string]string {
	targets := make(map[string]string, len(r.delegation))
	for name, d := range r.delegation {
		targets[name] = d.target
	}
	return targets
}

// Definitions returns the tool definitions offered to the model: backend
// tools plus delegation markers, sorted by name for stable prompts.
// Frontend descriptors are merged separately by the agent node, gated on
// gateway capabilities.
func (r *Registry) Definitions() []ToolDef {
	defs := make([]ToolDef, 0, len(r.backend)+len(r.delegation))
	for _, t := range r.backend {
		defs = append(defs, t.Definition())
	}
	for _, d := range r.delegation {
		defs = append(defs, d.def)
	}
	sort.Slice(defs, func(i, j int) bool { return defs[i].Name < defs[j].Name })
	return defs
}

// FrontendDefinitions returns the render-only descriptors, sorted by name.
func (r *Registry) FrontendDefinitions() []ToolDef {
	defs := make([]ToolDef, 0, len(r.frontend))
	for _, def := range r.frontend {
		defs = append(defs, def)
	}
	sort.Slice(defs, func(i, j int) bool { return defs[i].Name < defs[j].Name })
	return defs
}

// Func adapts a plain function to the Tool interface.
type Func struct {
	Def ToolDef
	Fn  func(ctx context.Context, args map[string]interface{}) (interface{}, error)
}

// Definition implements Tool.
func (f Func) Definition() ToolDef { return f.Def }

// Execute implements Tool.
func (f Func) Execute(ctx context.Context, args map[string]interface{}) (interface{}, error) {
	return f.Fn(ctx, args)
}
