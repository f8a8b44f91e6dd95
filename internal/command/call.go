// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/tfctl/awsmcp/internal/config"
	"github.com/tfctl/awsmcp/internal/log"
	"github.com/tfctl/awsmcp/internal/meta"
	"github.com/tfctl/awsmcp/toolkit"
)

// secretPrompts names the tool arguments that are read from the terminal
// without echo when they are not given on the command line.
var secretPrompts = map[string]string{
	"aws_secrets_create": "value",
}

// callCommandAction invokes one agent tool and renders its result.
func callCommandAction(ctx context.Context, cmd *cli.Command) error {
	name := cmd.Args().First()
	if name == "" {
		return errors.New("missing tool name, see 'awsmcp tools'")
	}

	// Describing a tool needs no clients, so look it up before connecting.
	tool, ok := toolkit.New(nil).Lookup(name)
	if !ok {
		return fmt.Errorf("%w: %s", toolkit.ErrUnknownTool, name)
	}

	args, err := parseCallArgs(tool.Definition(), cmd.String("args"), cmd.StringSlice("arg"))
	if err != nil {
		return err
	}

	if key, ok := secretPrompts[name]; ok {
		if _, given := args[key]; !given {
			value, err := promptSecret(key)
			if err != nil {
				return err
			}
			if value != "" {
				args[key] = value
			}
		}
	}

	svc, err := newServices(ctx, cmd)
	if err != nil {
		return fmt.Errorf("failed to create AWS clients: %w", err)
	}

	out, err := toolkit.New(svc).Call(ctx, name, args)
	if err != nil {
		return err
	}
	return emit(cmd, out)
}

// parseCallArgs merges the --args JSON object with the key=value pairs, which
// win on conflict. Pair values are typed by the tool's input schema.
func parseCallArgs(def mcp.Tool, raw string, pairs []string) (map[string]any, error) {
	args := map[string]any{}
	if strings.TrimSpace(raw) != "" {
		if err := json.Unmarshal([]byte(raw), &args); err != nil {
			return nil, fmt.Errorf("invalid --args: %w", err)
		}
	}

	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid --arg %q: want key=value", pair)
		}
		typed, err := typedValue(def, key, value)
		if err != nil {
			return nil, fmt.Errorf("invalid --arg %s: %w", key, err)
		}
		args[key] = typed
	}

	log.Debugf("call args: tool=%s, keys=%d", def.Name, len(args))
	return args, nil
}

// typedValue converts value to the JSON type the schema declares for key.
// Unknown keys stay strings.
func typedValue(def mcp.Tool, key, value string) (any, error) {
	prop, _ := def.InputSchema.Properties[key].(map[string]any)
	kind, _ := prop["type"].(string)

	switch kind {
	case "number", "integer":
		return strconv.ParseFloat(value, 64)
	case "boolean":
		return strconv.ParseBool(value)
	case "array", "object":
		var v any
		if err := json.Unmarshal([]byte(value), &v); err != nil {
			return nil, err
		}
		return v, nil
	default:
		return value, nil
	}
}

// promptSecret reads key from the terminal without echo. It returns "" when
// stdin is not a terminal, leaving validation to the tool.
func promptSecret(key string) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", nil
	}

	fmt.Fprintf(os.Stderr, "Enter %s: ", key)
	b, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", key, err)
	}
	return string(b), nil
}

// callCommandBuilder constructs the cli.Command for "call", wiring metadata,
// flags, and the action handler.
func callCommandBuilder(meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "call",
		Usage:     "invoke one agent tool",
		UsageText: "awsmcp call <tool> [--args '<json>'] [--arg key=value ...] [options]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags: append(append([]cli.Flag{
			&cli.StringFlag{
				Name:  "args",
				Usage: "tool arguments as a JSON object",
			},
			&cli.StringSliceFlag{
				Name:  "arg",
				Usage: "one tool argument as key=value, repeatable",
			},
		}, NewAWSFlags("call", config.File())...), NewGlobalFlags("call")...),
		Action: callCommandAction,
	}
}
