package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/vinayprograms/agentkit/llm"
	"github.com/vinayprograms/agentkit/telemetry"

	"github.com/lexpipe/lexpipe/internal/agent"
	"github.com/lexpipe/lexpipe/internal/config"
	"github.com/lexpipe/lexpipe/internal/drafting"
	"github.com/lexpipe/lexpipe/internal/gateway"
	"github.com/lexpipe/lexpipe/internal/session"
)

// Runtime holds the shared dependencies commands run against: config, the
// session store, the phase event notifier, and the telemetry exporter.
type Runtime struct {
	cfg      *config.Config
	store    session.Store
	notifier *session.NATSNotifier
	telem    telemetry.Exporter
}

func newRuntime(configPath string) (*Runtime, error) {
	cfg, err := config.LoadFile(configPath)
	if errors.Is(err, fs.ErrNotExist) {
		cfg = config.New()
	} else if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	rt := &Runtime{cfg: cfg}

	// The notifier interface stays nil when publication is off so the store
	// skips it entirely.
	var notifier session.Notifier
	if cfg.Notify.URL != "" {
		rt.notifier, err = session.NewNATSNotifier(cfg.Notify.URL, cfg.Notify.Subject)
		if err != nil {
			return nil, fmt.Errorf("connect notifier: %w", err)
		}
		notifier = rt.notifier
	}

	rt.store, err = session.NewSQLite(cfg.DatabasePath(), notifier)
	if err != nil {
		rt.Close()
		return nil, fmt.Errorf("open session store: %w", err)
	}

	if cfg.Telemetry.Enabled {
		rt.telem, err = telemetry.NewExporter(cfg.Telemetry.Protocol, cfg.Telemetry.Endpoint)
		if err != nil {
			rt.Close()
			return nil, fmt.Errorf("create telemetry exporter: %w", err)
		}
	} else {
		rt.telem = telemetry.NewNoopExporter()
	}

	return rt, nil
}

// Close releases runtime resources in reverse construction order.
func (rt *Runtime) Close() {
	if rt.telem != nil {
		rt.telem.Close()
	}
	if rt.store != nil {
		rt.store.Close()
	}
	if rt.notifier != nil {
		rt.notifier.Close()
	}
}

// gatewayFactory resolves capability profiles to model gateways.
func (rt *Runtime) gatewayFactory() drafting.GatewayFactory {
	return func(profile string) (agent.ModelGateway, error) {
		llmCfg := rt.cfg.GetProfile(profile)
		if llmCfg.Model == "" {
			return nil, fmt.Errorf("LLM model not configured")
		}

		providerName := llmCfg.Provider
		if providerName == "" {
			providerName = llm.InferProviderFromModel(llmCfg.Model)
		}

		provider, err := llm.NewProvider(llm.ProviderConfig{
			Provider:  providerName,
			Model:     llmCfg.Model,
			APIKey:    rt.cfg.GetProfileAPIKey(profile),
			MaxTokens: llmCfg.MaxTokens,
			BaseURL:   llmCfg.BaseURL,
		})
		if err != nil {
			return nil, fmt.Errorf("create LLM provider: %w", err)
		}
		return gateway.NewAgentKit(provider), nil
	}
}

// loadRoster resolves the agent roster: an explicit path must exist, the
// configured default may be absent (the built-in roster applies).
func (rt *Runtime) loadRoster(override string) (*config.Roster, error) {
	path := override
	if path == "" {
		path = rt.cfg.Workflow.RosterPath
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return nil, nil
		}
	}
	return config.LoadRoster(path)
}
