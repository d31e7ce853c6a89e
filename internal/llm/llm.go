// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package llm implements ideas.GenerationBackend on top of hosted chat
// models. Claude is reached through the Anthropic Messages API; GPT, Gemini
// and Command R+ through OpenAI-compatible chat completion endpoints.
package llm

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/pdiddy/concept-engine/internal/ideas"
	"github.com/pdiddy/concept-engine/pkg/types"
)

var _ ideas.GenerationBackend = (*Backend)(nil)

const (
	defaultTimeout   = 120 * time.Second
	defaultMaxTokens = 4096
)

// completer sends one system + user prompt pair and returns the model's text.
type completer interface {
	complete(ctx context.Context, system, user string) (string, error)
}

// Backend generates keywords and concept drafts with one configured model.
type Backend struct {
	model     string
	completer completer
	limiter   *rate.Limiter
}

// New resolves cfg.Model to a provider and returns a Backend for it. An API
// key is required for every provider.
func New(cfg types.GenerationConfig) (*Backend, error) {
	m, ok := models[cfg.Model]
	if !ok {
		return nil, fmt.Errorf("unsupported model type %q: use one of %s", cfg.Model, types.ModelTypeList())
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%s: API key is required (secret %s)", cfg.Model, m.secretKey)
	}

	baseURL := m.baseURL
	if cfg.BaseURL != "" {
		baseURL = cfg.BaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}
	client := &http.Client{Timeout: timeout}

	b := &Backend{model: m.name}

	switch m.provider {
	case providerAnthropic:
		b.completer = &anthropicClient{
			baseURL:   baseURL,
			apiKey:    cfg.APIKey,
			model:     m.name,
			maxTokens: maxTokens,
			client:    client,
		}
	default:
		b.completer = &openAIClient{
			baseURL:   baseURL,
			apiKey:    cfg.APIKey,
			model:     m.name,
			maxTokens: maxTokens,
			client:    client,
		}
	}

	if cfg.RequestsPerMinute > 0 {
		b.limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(cfg.RequestsPerMinute)), 1)
	}

	return b, nil
}

// ModelName returns the concrete provider model, e.g. "claude-3-haiku-20240307".
func (b *Backend) ModelName() string {
	return b.model
}

// GenerateKeywords asks the model for count one-word Japanese keywords.
func (b *Backend) GenerateKeywords(ctx context.Context, count int) ([]string, error) {
	prompt, err := renderPrompt(keywordPromptTmpl, struct{ Count int }{Count: count})
	if err != nil {
		return nil, &ideas.GenerationError{Op: "generate keywords", Err: fmt.Errorf("rendering prompt: %w", err)}
	}

	text, err := b.call(ctx, keywordSystemPrompt, prompt)
	if err != nil {
		return nil, &ideas.GenerationError{Op: "generate keywords", Err: err}
	}
	return parseKeywordList(text), nil
}

// GenerateConcepts asks the model for count concept ideas, hinting it with
// the seed keywords.
func (b *Backend) GenerateConcepts(ctx context.Context, count int, seeds []string) ([]types.Draft, error) {
	prompt, err := renderPrompt(conceptPromptTmpl, conceptPromptData{Count: count, Keywords: seeds})
	if err != nil {
		return nil, &ideas.GenerationError{Op: "generate concepts", Err: fmt.Errorf("rendering prompt: %w", err)}
	}

	text, err := b.call(ctx, conceptSystemPrompt, prompt)
	if err != nil {
		return nil, &ideas.GenerationError{Op: "generate concepts", Err: err}
	}

	drafts, err := parseIdeas(text)
	if err != nil {
		return nil, &ideas.GenerationError{Op: "generate concepts", Err: err}
	}
	return drafts, nil
}

func (b *Backend) call(ctx context.Context, system, user string) (string, error) {
	if b.limiter != nil {
		if err := b.limiter.Wait(ctx); err != nil {
			return "", fmt.Errorf("waiting for rate limiter: %w", err)
		}
	}
	return b.completer.complete(ctx, system, user)
}
