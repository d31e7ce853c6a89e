// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"strings"
	"time"
)

// ModelType names a supported generation model family as configured by the
// user. The generation adapter maps it to a provider and concrete model name.
type ModelType string

const (
	ModelGPT35        ModelType = "GPT-3.5"
	ModelGPT4         ModelType = "GPT-4"
	ModelGemini       ModelType = "Gemini"
	ModelClaude3Haiku ModelType = "claude3-haiku"
	ModelCommandRPlus ModelType = "Command-R-Plus"
)

// ModelTypes lists every accepted ModelType in display order.
var ModelTypes = []ModelType{ModelGPT35, ModelGPT4, ModelGemini, ModelClaude3Haiku, ModelCommandRPlus}

// ModelTypeList returns ModelTypes joined with ", " for help and error text.
func ModelTypeList() string {
	names := make([]string, len(ModelTypes))
	for i, m := range ModelTypes {
		names[i] = string(m)
	}
	return strings.Join(names, ", ")
}

// DatabaseType selects the SQL dialect and driver of the concept store.
type DatabaseType string

const (
	DatabaseSQLite   DatabaseType = "sqlite3"
	DatabaseMySQL    DatabaseType = "mysql"
	DatabasePostgres DatabaseType = "postgres"
)

// DatabaseConfig holds settings for the concept store.
type DatabaseConfig struct {
	// Type is the SQL backend: sqlite3, mysql or postgres.
	Type DatabaseType `json:"type" yaml:"type" mapstructure:"type"`

	// DSN is the driver data source name. For MySQL it should include
	// parseTime=true so entry dates scan into time.Time.
	DSN string `json:"dsn" yaml:"dsn" mapstructure:"dsn"`
}

// GenerationConfig holds settings for the generation backend.
type GenerationConfig struct {
	// Model is the model family to use. It is copied from Config.Model and
	// never read from a config file.
	Model ModelType `json:"-" yaml:"-" mapstructure:"-"`

	// APIKey authenticates against the provider API.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty" mapstructure:"api_key"`

	// BaseURL overrides the provider endpoint (tests, proxies).
	BaseURL string `json:"base_url,omitempty" yaml:"base_url,omitempty" mapstructure:"base_url"`

	// Timeout is the HTTP request timeout (default 120s).
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// MaxTokens caps the length of one completion (default 4096).
	MaxTokens int `json:"max_tokens" yaml:"max_tokens" mapstructure:"max_tokens"`

	// RequestsPerMinute paces calls to the provider. Zero disables pacing.
	RequestsPerMinute int `json:"requests_per_minute" yaml:"requests_per_minute" mapstructure:"requests_per_minute"`
}

// RunConfig holds the batch sizes of the end-to-end run command.
type RunConfig struct {
	// Keywords is how many keywords to generate first (default 100).
	Keywords int `json:"keywords" yaml:"keywords" mapstructure:"keywords"`

	// Seeds is how many stored keywords seed each concept batch (default 10).
	Seeds int `json:"seeds" yaml:"seeds" mapstructure:"seeds"`

	// Concepts is how many concepts each batch requests (default 5).
	Concepts int `json:"concepts" yaml:"concepts" mapstructure:"concepts"`

	// Batches is how many concept batches to run (default 2).
	Batches int `json:"batches" yaml:"batches" mapstructure:"batches"`
}

// Config groups all settings of the concept-engine CLI.
type Config struct {
	Model      ModelType        `json:"model" yaml:"model" mapstructure:"model"`
	DryRun     bool             `json:"dry_run" yaml:"dry_run" mapstructure:"dry_run"`
	Database   DatabaseConfig   `json:"database" yaml:"database" mapstructure:"database"`
	Generation GenerationConfig `json:"generation" yaml:"generation" mapstructure:"generation"`
	Run        RunConfig        `json:"run" yaml:"run" mapstructure:"run"`
}

// DefaultConfig returns the settings used when nothing is configured.
func DefaultConfig() Config {
	return Config{
		Model: ModelClaude3Haiku,
		Database: DatabaseConfig{
			Type: DatabaseSQLite,
			DSN:  "./concept-engine.db",
		},
		Generation: GenerationConfig{
			Timeout:   120 * time.Second,
			MaxTokens: 4096,
		},
		Run: RunConfig{
			Keywords: 100,
			Seeds:    10,
			Concepts: 5,
			Batches:  2,
		},
	}
}
