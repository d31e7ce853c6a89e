// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ideas

import (
	"fmt"
	"io"

	"go.yaml.in/yaml/v3"
)

// YAMLReporter returns a Reporter that writes strings to w as single lines
// and renders any other value as a YAML document.
func YAMLReporter(w io.Writer) Reporter {
	return func(v any) {
		if s, ok := v.(string); ok {
			fmt.Fprintln(w, s)
			return
		}
		data, err := yaml.Marshal(v)
		if err != nil {
			fmt.Fprintf(w, "%v\n", v)
			return
		}
		fmt.Fprint(w, "---\n", string(data))
	}
}
