// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package llm

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pdiddy/concept-engine/pkg/types"
)

// parseKeywordList splits a comma separated completion into keywords.
// Only the ASCII comma and the Japanese comma separate items, so a reply
// that ignores the format stays one long item for the length guard to
// reject. Blanks are dropped. Length is not checked here.
func parseKeywordList(text string) []string {
	fields := strings.FieldsFunc(stripFence(text), func(r rune) bool {
		return r == ',' || r == '、'
	})

	keywords := make([]string, 0, len(fields))
	for _, f := range fields {
		k := strings.TrimSpace(f)
		if k != "" {
			keywords = append(keywords, k)
		}
	}
	return keywords
}

// parseIdeas decodes {"ideas": [...]} from a completion, ignoring any prose
// or code fence around the JSON object.
func parseIdeas(text string) ([]types.Draft, error) {
	body := stripFence(text)
	start := strings.Index(body, "{")
	end := strings.LastIndex(body, "}")
	if start < 0 || end < start {
		return nil, fmt.Errorf("no JSON object in response: %q", truncate(text, 200))
	}

	var envelope struct {
		Ideas json.RawMessage `json:"ideas"`
	}
	if err := json.Unmarshal([]byte(body[start:end+1]), &envelope); err != nil {
		return nil, fmt.Errorf("parsing ideas JSON: %w", err)
	}
	if len(envelope.Ideas) == 0 {
		return nil, fmt.Errorf("response has no \"ideas\" field")
	}

	var drafts []types.Draft
	if err := json.Unmarshal(envelope.Ideas, &drafts); err != nil {
		return nil, fmt.Errorf("parsing ideas list: %w", err)
	}
	return drafts, nil
}

// stripFence removes a surrounding markdown code fence such as ```json.
func stripFence(text string) string {
	t := strings.TrimSpace(text)
	if !strings.HasPrefix(t, "```") {
		return t
	}
	t = strings.TrimPrefix(t, "```")
	if i := strings.Index(t, "\n"); i >= 0 {
		t = t[i+1:]
	} else {
		t = ""
	}
	t = strings.TrimSuffix(strings.TrimSpace(t), "```")
	return strings.TrimSpace(t)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
