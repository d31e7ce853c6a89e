// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package llm

import (
	"context"
	"fmt"
	"net/http"

	"github.com/pdiddy/concept-engine/internal/httputil"
)

// openAIClient calls an OpenAI-compatible /chat/completions endpoint.
type openAIClient struct {
	baseURL   string
	apiKey    string
	model     string
	maxTokens int
	client    *http.Client
}

type chatCompletionRequest struct {
	Model     string              `json:"model"`
	Messages  []chatCompletionMsg `json:"messages"`
	MaxTokens int                 `json:"max_tokens,omitempty"`
}

type chatCompletionMsg struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
}

func (c *openAIClient) complete(ctx context.Context, system, user string) (string, error) {
	req := chatCompletionRequest{
		Model: c.model,
		Messages: []chatCompletionMsg{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		MaxTokens: c.maxTokens,
	}
	headers := map[string]string{
		"Authorization": "Bearer " + c.apiKey,
	}

	var resp chatCompletionResponse
	if err := httputil.PostJSON(ctx, c.client, c.baseURL+"/chat/completions", headers, req, &resp); err != nil {
		return "", fmt.Errorf("calling %s chat completions: %w", c.model, err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%s: no response choices returned", c.model)
	}
	return resp.Choices[0].Message.Content, nil
}
