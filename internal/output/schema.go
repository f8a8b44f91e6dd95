// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"fmt"
	"io"
	"os"
	"slices"
	"sort"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
)

// Param is one argument from a tool's input schema.
type Param struct {
	Name        string `json:"name" yaml:"name"`
	Type        string `json:"type" yaml:"type"`
	Required    bool   `json:"required" yaml:"required"`
	Default     any    `json:"default,omitempty" yaml:"default,omitempty"`
	Description string `json:"description" yaml:"description"`
}

// Params lists the arguments of tool, required ones first, then by name.
func Params(tool mcp.Tool) []Param {
	params := make([]Param, 0, len(tool.InputSchema.Properties))
	for name, raw := range tool.InputSchema.Properties {
		p := Param{
			Name:     name,
			Required: slices.Contains(tool.InputSchema.Required, name),
		}
		if prop, ok := raw.(map[string]any); ok {
			p.Type, _ = prop["type"].(string)
			p.Description, _ = prop["description"].(string)
			p.Default = prop["default"]
		}
		params = append(params, p)
	}

	sort.Slice(params, func(i, j int) bool {
		if params[i].Required != params[j].Required {
			return params[i].Required
		}
		return params[i].Name < params[j].Name
	})
	return params
}

// DumpSchema writes the arguments of tool, one per line, to w. If w is nil,
// os.Stdout is used.
func DumpSchema(w io.Writer, tool mcp.Tool) {
	if w == nil {
		w = os.Stdout
	}

	fmt.Fprintln(w, tool.Name)
	fmt.Fprintln(w, "  "+tool.Description)

	params := Params(tool)
	if len(params) == 0 {
		fmt.Fprintln(w, "\n  (no arguments)")
		return
	}

	fmt.Fprintln(w)
	width := 0
	for _, p := range params {
		width = max(width, len(p.Name))
	}
	for _, p := range params {
		flags := []string{p.Type}
		if p.Required {
			flags = append(flags, "required")
		}
		if p.Default != nil {
			flags = append(flags, fmt.Sprintf("default %v", p.Default))
		}
		fmt.Fprintf(w, "  %-*s  (%s) %s\n", width, p.Name, strings.Join(flags, ", "), p.Description)
	}
}
