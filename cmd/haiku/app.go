package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/petasbytes/haiku-agent/internal/config"
	"github.com/petasbytes/haiku-agent/internal/flow"
	"github.com/petasbytes/haiku-agent/internal/logging"
	"github.com/petasbytes/haiku-agent/internal/provider"
	"github.com/petasbytes/haiku-agent/internal/telemetry"
)

// app holds everything a command needs for one process.
type app struct {
	cfg    *config.Config
	log    zerolog.Logger
	events *telemetry.Emitter
	flow   *flow.Flow
}

func newApp(opts *rootOptions) (*app, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, err
	}
	if opts.model != "" {
		cfg.LLM.Model = opts.model
	}
	if err := cfg.RequireAPIKey(); err != nil {
		return nil, err
	}

	log := logging.New(cfg.Log, os.Stderr)

	events, err := telemetry.Open(telemetry.Config{
		Enabled: cfg.Telemetry.ObserveJSON,
		Dir:     cfg.Telemetry.ArtifactsDir,
	})
	if err != nil {
		return nil, err
	}
	if events.Enabled() {
		log.Info().Str("path", events.Path()).Msg("writing events")
	}

	client := provider.NewAnthropicClient(cfg.LLM.APIKey, cfg.LLM.BaseURL)
	model := provider.NewAnthropic(client, cfg.LLM.Model, cfg.LLM.MaxTokens)
	log.Debug().Str("provider", model.Name()).Int64("max_tokens", model.MaxTokens).Msg("llm ready")

	f, err := flow.New(model,
		flow.WithSystemPrompt(cfg.Agent.SystemPrompt),
		flow.WithImageNames(cfg.Agent.ImageNames),
		flow.WithMaxRounds(cfg.LLM.MaxToolRounds),
		flow.WithLogger(log),
		flow.WithEvents(events),
	)
	if err != nil {
		_ = events.Close()
		return nil, fmt.Errorf("build flow: %w", err)
	}
	return &app{cfg: cfg, log: log, events: events, flow: f}, nil
}

func (a *app) Close() {
	if err := a.events.Close(); err != nil {
		a.log.Warn().Err(err).Msg("close events")
	}
}
