// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Command docsgen writes the tool reference, docs/tools.md and
// docs/tools.yaml, from the live tool registries.
package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"text/template"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"gopkg.in/yaml.v3"

	"github.com/tfctl/awsmcp/internal/output"
	"github.com/tfctl/awsmcp/internal/server"
)

type Surface struct {
	ID          string `yaml:"id"`
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Tools       []Tool `yaml:"tools"`
}

type Tool struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	ReadOnly    bool           `yaml:"read_only"`
	Args        []output.Param `yaml:"args"`
}

type TemplateData struct {
	Surfaces []Surface
	Date     string
	Version  string
}

const markdown = `# awsmcp tools

Generated {{ .Date }} for version {{ .Version }}.
{{ range .Surfaces }}
## {{ .Title }}

{{ .Description }}
{{ range .Tools }}
### {{ .Name }}

{{ .Description }}{{ if not .ReadOnly }} Changes AWS state.{{ end }}
{{ if .Args }}
| Argument | Type | Required | Default | Description |
|---|---|---|---|---|
{{- range .Args }}
| {{ .Name }} | {{ .Type }} | {{ if .Required }}yes{{ else }}no{{ end }} | {{ arg .Default }} | {{ .Description }} |
{{- end }}
{{ else }}
No arguments.
{{ end -}}
{{ end -}}
{{ end -}}
`

func main() {
	docs := "docs"
	if len(os.Args) > 1 {
		docs = os.Args[1]
	}

	surfaces := []Surface{
		{
			ID:          server.ToolsetServer,
			Title:       "MCP server tools",
			Description: "Served by `awsmcp serve` (the default toolset).",
		},
		{
			ID:          server.ToolsetAgent,
			Title:       "Agent tools",
			Description: "Available to `awsmcp call`, `awsmcp console` and `awsmcp serve --toolset agent`.",
		},
	}
	for i := range surfaces {
		srv, err := server.New(nil, server.WithToolset(surfaces[i].ID))
		if err != nil {
			panic(err)
		}
		for _, def := range srv.Tools() {
			surfaces[i].Tools = append(surfaces[i].Tools, describe(def))
		}
	}

	if err := os.MkdirAll(docs, 0755); err != nil {
		panic(err)
	}

	data := TemplateData{
		Surfaces: surfaces,
		Date:     time.Now().Format("January 2, 2006"),
		Version:  getVersion(),
	}

	tmpl := template.Must(template.New("tools").Funcs(template.FuncMap{
		"arg": func(v any) string { return output.InterfaceToString(v, "") },
	}).Parse(markdown))

	path := filepath.Join(docs, "tools.md")
	file, err := os.Create(path)
	if err != nil {
		panic(err)
	}
	fmt.Println("Generating", path)
	if err := tmpl.Execute(file, data); err != nil {
		panic(err)
	}
	file.Close()

	path = filepath.Join(docs, "tools.yaml")
	raw, err := yaml.Marshal(surfaces)
	if err != nil {
		panic(err)
	}
	fmt.Println("Generating", path)
	if err := os.WriteFile(path, raw, 0644); err != nil {
		panic(err)
	}
}

func describe(def mcp.Tool) Tool {
	t := Tool{
		Name:        def.Name,
		Description: def.Description,
		Args:        output.Params(def),
	}
	if hint := def.Annotations.ReadOnlyHint; hint != nil {
		t.ReadOnly = *hint
	}
	return t
}

// getVersion returns the version string from git tags, stripping the leading
// "v" prefix. Falls back to "dev" if git describe fails.
func getVersion() string {
	out, err := exec.Command("git", "describe", "--tags", "--abbrev=0").Output()
	if err != nil {
		return "dev"
	}

	version := strings.TrimSpace(string(out))
	return strings.TrimPrefix(version, "v")
}
