// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"

	"github.com/pdiddy/concept-engine/internal/llm"
	"github.com/pdiddy/concept-engine/pkg/types"
)

// setDefaults registers every config key so that env variables and config
// files can override it.
func setDefaults() {
	d := types.DefaultConfig()

	viper.SetDefault("model", string(d.Model))
	viper.SetDefault("dry_run", d.DryRun)
	viper.SetDefault("verbose", false)

	viper.SetDefault("database.type", string(d.Database.Type))
	viper.SetDefault("database.dsn", d.Database.DSN)

	viper.SetDefault("generation.api_key", "")
	viper.SetDefault("generation.base_url", "")
	viper.SetDefault("generation.timeout", d.Generation.Timeout)
	viper.SetDefault("generation.max_tokens", d.Generation.MaxTokens)
	viper.SetDefault("generation.requests_per_minute", d.Generation.RequestsPerMinute)

	viper.SetDefault("run.keywords", d.Run.Keywords)
	viper.SetDefault("run.seeds", d.Run.Seeds)
	viper.SetDefault("run.concepts", d.Run.Concepts)
	viper.SetDefault("run.batches", d.Run.Batches)
}

// loadConfig decodes the merged viper settings and fills the API key from
// .secrets/ when neither the config file nor the environment set one.
func loadConfig() (types.Config, error) {
	var cfg types.Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("decoding config: %w", err)
	}

	cfg.Generation.Model = cfg.Model
	// An unknown model is reported by llm.New; read-only commands never need it.
	if key, err := llm.SecretKey(cfg.Model); err == nil {
		cfg.Generation.APIKey = loadedSecrets.Resolve(key, cfg.Generation.APIKey)
	}
	return cfg, nil
}

// readConfig reads the config file. A file missing from the search path is
// not an error; a file named with --config must exist and parse.
func readConfig(v *viper.Viper, explicit bool) error {
	err := v.ReadInConfig()
	if err == nil {
		return nil
	}
	var notFound viper.ConfigFileNotFoundError
	if !explicit && errors.As(err, &notFound) {
		return nil
	}
	return fmt.Errorf("reading config: %w", err)
}
