// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/urfave/cli/v3"

	"github.com/tfctl/awsmcp/internal/config"
	"github.com/tfctl/awsmcp/internal/meta"
	"github.com/tfctl/awsmcp/internal/output"
	"github.com/tfctl/awsmcp/internal/server"
	"github.com/tfctl/awsmcp/operations"
)

// toolRow is one line of the tool listing.
type toolRow struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Args        int    `json:"args"`
}

// paramRow is one argument of a tool. Default is always present so every row
// carries the same columns.
type paramRow struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Required    bool   `json:"required"`
	Default     string `json:"default"`
	Description string `json:"description"`
}

func paramRows(tool mcp.Tool) []paramRow {
	params := output.Params(tool)
	rows := make([]paramRow, 0, len(params))
	for _, p := range params {
		rows = append(rows, paramRow{
			Name:        p.Name,
			Type:        p.Type,
			Required:    p.Required,
			Default:     output.InterfaceToString(p.Default),
			Description: p.Description,
		})
	}
	return rows
}

// toolsCommandAction lists the tools of a toolset, or the arguments of one
// tool when a name is given.
func toolsCommandAction(ctx context.Context, cmd *cli.Command) error {
	tools, err := toolDefinitions(cmd.String("toolset"))
	if err != nil {
		return err
	}

	if name := cmd.Args().First(); name != "" {
		for _, tool := range tools {
			if tool.Name != name {
				continue
			}
			if cmd.Bool("schema") {
				output.DumpSchema(writer(cmd), tool)
				return nil
			}
			return emitJSON(cmd, paramRows(tool))
		}
		return fmt.Errorf("unknown tool %q in toolset %s", name, cmd.String("toolset"))
	}

	if cmd.Bool("schema") {
		for i, tool := range tools {
			if i > 0 {
				fmt.Fprintln(writer(cmd))
			}
			output.DumpSchema(writer(cmd), tool)
		}
		return nil
	}

	rows := make([]toolRow, 0, len(tools))
	for _, tool := range tools {
		rows = append(rows, toolRow{
			Name:        tool.Name,
			Description: tool.Description,
			Args:        len(tool.InputSchema.Properties),
		})
	}
	return emitJSON(cmd, rows)
}

// toolDefinitions returns the definitions a server with toolset would
// register. No AWS clients are needed to describe tools.
func toolDefinitions(toolset string) ([]mcp.Tool, error) {
	srv, err := server.New(nil, server.WithToolset(toolset))
	if err != nil {
		return nil, err
	}
	return srv.Tools(), nil
}

func emitJSON(cmd *cli.Command, v any) error {
	raw, err := operations.ToJSON(v)
	if err != nil {
		return err
	}
	return emit(cmd, raw)
}

// toolsCommandBuilder constructs the cli.Command for "tools", wiring metadata,
// flags, and the action handler.
func toolsCommandBuilder(meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "tools",
		Usage:     "list tools or describe one",
		UsageText: "awsmcp tools [tool] [options]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags: append([]cli.Flag{
			NewSchemaFlag(),
			NewToolsetFlag(server.ToolsetAgent, "tools", config.File()),
		}, NewGlobalFlags("tools")...),
		Action: toolsCommandAction,
	}
}
