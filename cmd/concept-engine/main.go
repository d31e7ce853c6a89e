// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the concept-engine CLI.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/concept-engine/internal/secrets"
	"github.com/pdiddy/concept-engine/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

var (
	// loadedSecrets holds API keys loaded from .secrets/ at startup.
	loadedSecrets secrets.Secrets

	// logger is configured in PersistentPreRunE and tagged with a run id.
	logger = slog.New(slog.DiscardHandler)

	// configErr holds a config read failure until the logger exists.
	configErr error
)

// rootCmd is the base command for the concept-engine CLI.
var rootCmd = &cobra.Command{
	Use:   "concept-engine",
	Short: "Generate product concept ideas with language models",
	Long: `concept-engine asks a language model for seed keywords, stores them, and then
asks for concept ideas (English and Japanese names, a Japanese description and
tags) seeded with a random, less-used sample of those keywords.

Use "keywords" and "concepts" for single steps, or "run" for the full flow.
With --dry-run nothing is written; generated data is printed instead.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := slog.LevelInfo
		if viper.GetBool("verbose") {
			level = slog.LevelDebug
		}
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})).
			With("run", uuid.NewString())

		if configErr != nil {
			logger.Warn("config file not loaded", "error", configErr)
		} else if f := viper.ConfigFileUsed(); f != "" {
			logger.Debug("using config file", "path", f)
		}

		s, err := secrets.Load(secrets.DefaultDir, logger)
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			logger.Debug("loaded secrets", "keys", s.Keys())
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default: ./concept-engine.yaml or ~/.config/concept-engine/config.yaml)")
	pf.String("model", "", "generation model: "+types.ModelTypeList())
	pf.Bool("dry-run", false, "print generated data instead of saving it")
	pf.String("db-type", "", "database type: sqlite3, mysql, postgres")
	pf.String("db-dsn", "", "database data source name")
	pf.BoolP("verbose", "v", false, "enable debug logging")

	setDefaults()
	viper.BindPFlag("model", pf.Lookup("model"))
	viper.BindPFlag("dry_run", pf.Lookup("dry-run"))
	viper.BindPFlag("database.type", pf.Lookup("db-type"))
	viper.BindPFlag("database.dsn", pf.Lookup("db-dsn"))
	viper.BindPFlag("verbose", pf.Lookup("verbose"))
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("concept-engine")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "concept-engine"))
		}
	}

	viper.SetEnvPrefix("CONCEPT_ENGINE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	configErr = readConfig(viper.GetViper(), cfgFile != "")
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
