// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package llm

import (
	"fmt"

	"github.com/pdiddy/concept-engine/pkg/types"
)

type provider string

const (
	providerOpenAI    provider = "openai"
	providerAnthropic provider = "anthropic"
)

// Provider endpoints. Gemini and Cohere expose OpenAI-compatible chat APIs.
const (
	openAIBaseURL    = "https://api.openai.com/v1"
	geminiBaseURL    = "https://generativelanguage.googleapis.com/v1beta/openai"
	cohereBaseURL    = "https://api.cohere.ai/compatibility/v1"
	anthropicBaseURL = "https://api.anthropic.com"
)

type modelSpec struct {
	provider  provider
	name      string
	baseURL   string
	secretKey string
}

var models = map[types.ModelType]modelSpec{
	types.ModelGPT35:        {provider: providerOpenAI, name: "gpt-3.5-turbo", baseURL: openAIBaseURL, secretKey: "openai-api-key"},
	types.ModelGPT4:         {provider: providerOpenAI, name: "gpt-4-turbo", baseURL: openAIBaseURL, secretKey: "openai-api-key"},
	types.ModelGemini:       {provider: providerOpenAI, name: "gemini-pro", baseURL: geminiBaseURL, secretKey: "gemini-api-key"},
	types.ModelClaude3Haiku: {provider: providerAnthropic, name: "claude-3-haiku-20240307", baseURL: anthropicBaseURL, secretKey: "anthropic-api-key"},
	types.ModelCommandRPlus: {provider: providerOpenAI, name: "command-r-plus", baseURL: cohereBaseURL, secretKey: "cohere-api-key"},
}

// SecretKey returns the name of the secrets file that holds the API key for
// model, e.g. "anthropic-api-key".
func SecretKey(model types.ModelType) (string, error) {
	m, ok := models[model]
	if !ok {
		return "", fmt.Errorf("unsupported model type %q", model)
	}
	return m.secretKey, nil
}
