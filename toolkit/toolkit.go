// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package toolkit

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/apex/log"
	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"

	awsx "github.com/tfctl/awsmcp/aws"
	"github.com/tfctl/awsmcp/internal/metrics"
	"github.com/tfctl/awsmcp/operations"
)

var (
	// ErrUnknownTool is returned by Call for a name no tool answers to.
	ErrUnknownTool = errors.New("unknown tool")
	// ErrInvalidArgument is returned when an argument has the wrong type.
	ErrInvalidArgument = errors.New("invalid argument")
)

// Handler runs one tool against svc.
type Handler func(ctx context.Context, svc awsx.Services, req mcp.CallToolRequest) (string, error)

// Tool is one agent tool.
type Tool struct {
	definition mcp.Tool
	handler    Handler
}

// Name returns the tool name.
func (t Tool) Name() string { return t.definition.Name }

// Description returns the one-line tool description.
func (t Tool) Description() string { return t.definition.Description }

// Definition returns the MCP definition, including the input schema.
func (t Tool) Definition() mcp.Tool { return t.definition }

// Toolkit is the fixed set of agent tools bound to one Services.
type Toolkit struct {
	svc     awsx.Services
	tools   []Tool
	index   map[string]int
	metrics *metrics.Metrics
}

// Option configures a Toolkit.
type Option func(*Toolkit)

// WithMetrics records every Call in m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(tk *Toolkit) { tk.metrics = m }
}

// New returns the toolkit with every tool bound to svc.
func New(svc awsx.Services, opts ...Option) *Toolkit {
	tk := &Toolkit{
		svc:   svc,
		tools: registry(),
		index: map[string]int{},
	}
	for i, t := range tk.tools {
		tk.index[t.Name()] = i
	}
	for _, opt := range opts {
		opt(tk)
	}
	return tk
}

// Tools returns the tools in registration order.
func (tk *Toolkit) Tools() []Tool {
	return append([]Tool(nil), tk.tools...)
}

// Lookup finds a tool by name.
func (tk *Toolkit) Lookup(name string) (Tool, bool) {
	i, ok := tk.index[name]
	if !ok {
		return Tool{}, false
	}
	return tk.tools[i], true
}

// Call invokes the named tool with args and records the call.
func (tk *Toolkit) Call(ctx context.Context, name string, args map[string]any) (string, error) {
	req := mcp.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = args

	started := time.Now()
	out, err := tk.Run(ctx, req)
	if !errors.Is(err, ErrUnknownTool) {
		tk.metrics.Observe(metrics.SurfaceToolkit, name, started, err != nil)
	}
	return out, err
}

// Run invokes the tool named in req. It records nothing, which lets an MCP
// server that already instruments its handlers serve the toolkit.
func (tk *Toolkit) Run(ctx context.Context, req mcp.CallToolRequest) (string, error) {
	name := req.Params.Name
	tool, ok := tk.Lookup(name)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownTool, name)
	}

	entry := log.WithFields(log.Fields{"tool": name, "call": uuid.NewString()})
	entry.Debug("tool call")

	out, err := tool.handler(ctx, tk.svc, req)
	if err != nil {
		entry.WithError(err).Debug("tool failed")
		return "", err
	}
	entry.Debugf("tool done: bytes=%d", len(out))
	return out, nil
}

// requireString returns the non-blank string argument key.
func requireString(req mcp.CallToolRequest, key string) (string, error) {
	v, err := requireValue(req, key)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(v) == "" {
		return "", fmt.Errorf("%w: %s", operations.ErrMissingArgument, key)
	}
	return v, nil
}

// requireValue is requireString for payloads, where whitespace is content.
func requireValue(req mcp.CallToolRequest, key string) (string, error) {
	if _, ok := req.GetArguments()[key]; !ok {
		return "", fmt.Errorf("%w: %s", operations.ErrMissingArgument, key)
	}
	v, err := req.RequireString(key)
	if err != nil {
		return "", fmt.Errorf("%w: %s must be a string", ErrInvalidArgument, key)
	}
	if v == "" {
		return "", fmt.Errorf("%w: %s", operations.ErrMissingArgument, key)
	}
	return v, nil
}

// regional binds svc to the optional region argument.
func regional(svc awsx.Services, req mcp.CallToolRequest) awsx.Services {
	return svc.WithRegion(strings.TrimSpace(req.GetString("region", "")))
}

// jsonText renders v, or passes through err.
func jsonText(v any, err error) (string, error) {
	if err != nil {
		return "", err
	}
	return operations.ToJSON(v)
}
