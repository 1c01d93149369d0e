package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"text/template"

	"testenv/internal/domain"
)

// Format selects the export encoding
type Format string

const (
	FormatJSON Format = "json"
	FormatTS   Format = "ts"
)

// ErrUnknownFormat is returned for an export format other than json or ts
var ErrUnknownFormat = errors.New("unknown export format")

// ParseFormat validates a user-supplied format name
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatJSON, FormatTS:
		return f, nil
	case "":
		return FormatJSON, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// Export writes ws to w
func (s *JSONStorage) Export(ws *domain.Workspace, format Format, w io.Writer) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(ws); err != nil {
			return fmt.Errorf("encode workspace: %w", err)
		}
		return nil
	case FormatTS:
		if err := workspaceTemplate.Execute(w, ws); err != nil {
			return fmt.Errorf("render workspace: %w", err)
		}
		return nil
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}

var workspaceTemplate = template.Must(template.New("workspace").Funcs(template.FuncMap{
	"q":        quote,
	"list":     list,
	"keys":     keys,
	"declared": func(p []domain.Plugin) bool { return p != nil },
	"deref":    func(b *bool) bool { return *b },
}).Parse(`/// <reference types="vitest" />
import { defineWorkspace } from "vitest/config";
import { storybookTest } from "@storybook/addon-vitest/vitest-plugin";

export default defineWorkspace([
{{- range .Profiles}}
  {
    extends: {{q .Extends}},
{{- if .Plugins}}
    plugins: [
{{- range .Plugins}}
      storybookTest({
        storybookScript: {{q .Script}},
        storybookUrl: {{q .URL}},
      }),
{{- end}}
    ],
{{- else if declared .Plugins}}
    plugins: [],
{{- end}}
{{- with .Resolve}}
    resolve: {
      alias: {
{{- $alias := .Alias}}
{{- range keys .Alias}}
        {{q .}}: {{q (index $alias .)}},
{{- end}}
      },
    },
{{- end}}
    test: {
      name: {{q .Name}},
{{- if .Environment}}
      environment: {{q (printf "%s" .Environment)}},
{{- end}}
{{- if .Include}}
      include: {{list .Include}},
{{- end}}
      globals: {{.Globals}},
{{- with .Browser}}
      browser: {
        enabled: {{.Enabled}},
        instances: [{{range $i, $b := .Instances}}{{if $i}}, {{end}}{ browser: {{q $b.Browser}} }{{end}}],
        provider: {{q .Provider}},
        headless: {{.Headless}},
        api: {{.Port}},
        ui: {{.UI}},
      },
{{- end}}
{{- if .Isolate}}
      isolate: {{deref .Isolate}},
{{- end}}
{{- if .SetupFiles}}
      setupFiles: {{list .SetupFiles}},
{{- end}}
    },
  },
{{- end}}
]);
`))

func quote(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}

func list(items []string) string {
	quoted := make([]string, len(items))
	for i, item := range items {
		quoted[i] = quote(item)
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}

func keys(m map[string]string) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
