// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package llm

import (
	"bytes"
	"strings"
	"text/template"
)

const keywordSystemPrompt = "You are a creative assistant. Use Japanese as the language. " +
	"Your response should be a list of comma separated values, eg: `foo, bar, baz`."

const conceptSystemPrompt = "You are a creative assistant; output results in JSON. Use Japanese as the language."

var keywordPromptTmpl = template.Must(template.New("keywords").Parse(
	`Please output {{.Count}} one-word keywords in Japanese to generate ideas for new services. Should not output number! only keyword.`))

// conceptPromptTmpl asks for ideas in the JSON shape parseIdeas expects.
var conceptPromptTmpl = template.Must(template.New("concepts").Funcs(template.FuncMap{
	"join": strings.Join,
}).Parse(`In the context of generative AI, create a concept that does not exist in reality, name it and output a brief description of it.
Below are some random keywords, and I hope you will use 0 to 2 of them as hints if necessary (you don't necessarily have to use them).
{{join .Keywords ","}}

Please submit {{.Count}} ideas.
Respond with a JSON object of the following form and nothing else:
{"ideas": [{"name_en": "English name of the concept", "name_jp": "Japanese name of the concept", "description_jp": "Description of the concept about 200 token", "tags_jp": ["Tags for this concept"]}]}
`))

type conceptPromptData struct {
	Count    int
	Keywords []string
}

func renderPrompt(tmpl *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
