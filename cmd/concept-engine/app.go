// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"os"

	"github.com/pdiddy/concept-engine/internal/ideas"
	"github.com/pdiddy/concept-engine/internal/llm"
	"github.com/pdiddy/concept-engine/internal/store"
	"github.com/pdiddy/concept-engine/pkg/types"
)

// app is the wired pipeline for one CLI invocation.
type app struct {
	cfg     types.Config
	store   *store.Store
	creator *ideas.Creator
}

// openApp loads config, opens the store and builds the creator. The caller
// must call close.
func openApp(ctx context.Context) (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	backend, err := llm.New(cfg.Generation)
	if err != nil {
		return nil, err
	}

	s, err := store.Open(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}
	logger.Debug("opened store", "type", cfg.Database.Type, "model", backend.ModelName(), "dry_run", cfg.DryRun)

	creator := ideas.NewCreator(backend, s, ideas.SystemClock{}, ideas.YAMLReporter(os.Stdout),
		ideas.WithDryRun(cfg.DryRun),
		ideas.WithLogger(logger),
	)
	return &app{cfg: cfg, store: s, creator: creator}, nil
}

// openStore opens the store alone, for read-only commands that need no model.
func openStore(ctx context.Context) (*store.Store, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return store.Open(ctx, cfg.Database)
}

func (a *app) close() {
	if err := a.store.Close(); err != nil {
		logger.Warn("closing store", "error", err)
	}
}
