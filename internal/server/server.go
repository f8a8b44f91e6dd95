// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"slices"
	"time"

	"github.com/apex/log"
	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	awsx "github.com/tfctl/awsmcp/aws"
	"github.com/tfctl/awsmcp/internal/metrics"
	"github.com/tfctl/awsmcp/internal/version"
	"github.com/tfctl/awsmcp/toolkit"
)

// Name is the MCP server name announced during initialization.
const Name = "aws-mcp"

// Toolsets.
const (
	ToolsetServer = "server"
	ToolsetAgent  = "agent"
	ToolsetAll    = "all"
)

// ErrInvalidToolset is returned by New for an unknown toolset name.
var ErrInvalidToolset = errors.New("invalid toolset")

// Toolsets lists the accepted toolset names.
func Toolsets() []string {
	return []string{ToolsetServer, ToolsetAgent, ToolsetAll}
}

// Server is an MCP server bound to one set of AWS services.
type Server struct {
	svc      awsx.Services
	mcp      *server.MCPServer
	metrics  *metrics.Metrics
	toolset  string
	tools    []mcp.Tool
	handlers map[string]server.ToolHandlerFunc
}

// Option configures a Server.
type Option func(*Server)

// WithMetrics records every tool call in m and, over HTTP, serves m on
// /metrics.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Server) { s.metrics = m }
}

// WithToolset selects the registered tools. The default is ToolsetServer.
func WithToolset(toolset string) Option {
	return func(s *Server) { s.toolset = toolset }
}

// New builds the server and registers the selected toolset.
func New(svc awsx.Services, opts ...Option) (*Server, error) {
	s := &Server{
		svc:      svc,
		toolset:  ToolsetServer,
		handlers: map[string]server.ToolHandlerFunc{},
	}
	for _, opt := range opts {
		opt(s)
	}
	if !slices.Contains(Toolsets(), s.toolset) {
		return nil, fmt.Errorf("%w: %q (want one of %v)", ErrInvalidToolset, s.toolset, Toolsets())
	}

	s.mcp = server.NewMCPServer(Name, version.Version,
		server.WithToolCapabilities(true),
		server.WithToolHandlerMiddleware(s.instrument),
		server.WithRecovery(),
	)

	if s.toolset != ToolsetAgent {
		for _, t := range s.registry() {
			s.add(t.definition, t.handler)
		}
	}
	if s.toolset != ToolsetServer {
		tk := toolkit.New(svc)
		for _, t := range tk.Tools() {
			if _, dup := s.handlers[t.Name()]; dup {
				log.Debugf("agent tool shadowed: name=%s", t.Name())
				continue
			}
			s.add(t.Definition(), agentHandler(tk))
		}
	}

	log.Debugf("server built: toolset=%s, tools=%d", s.toolset, len(s.tools))
	return s, nil
}

func (s *Server) add(def mcp.Tool, h server.ToolHandlerFunc) {
	s.tools = append(s.tools, def)
	h = settle(h)
	s.handlers[def.Name] = h
	s.mcp.AddTool(def, h)
}

// Tools returns the registered tool definitions in registration order.
func (s *Server) Tools() []mcp.Tool {
	return append([]mcp.Tool(nil), s.tools...)
}

// Toolset returns the toolset the server was built with.
func (s *Server) Toolset() string { return s.toolset }

// MCPServer exposes the underlying mcp-go server.
func (s *Server) MCPServer() *server.MCPServer { return s.mcp }

// ServeStdio serves MCP over stdin and stdout until ctx is done or stdin
// closes.
func (s *Server) ServeStdio(ctx context.Context) error {
	log.Infof("serving stdio: tools=%d", len(s.tools))
	return server.NewStdioServer(s.mcp).Listen(ctx, os.Stdin, os.Stdout)
}

// Handler returns the HTTP handler with /mcp and, with metrics, /metrics.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/mcp", server.NewStreamableHTTPServer(s.mcp))
	if s.metrics != nil {
		mux.Handle("/metrics", s.metrics.Handler())
	}
	return mux
}

// ServeHTTP serves Handler on address until ctx is done, then shuts down
// gracefully.
func (s *Server) ServeHTTP(ctx context.Context, address string) error {
	srv := &http.Server{
		Addr:              address,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.WithError(err).Warn("http shutdown")
		}
	}()

	log.Infof("serving http: address=%s, tools=%d", address, len(s.tools))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// instrument logs each call under a fresh id and records it in metrics. A
// result flagged IsError or a failure reported as text counts as a failure.
func (s *Server) instrument(next server.ToolHandlerFunc) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		entry := log.WithFields(log.Fields{"tool": req.Params.Name, "call": uuid.NewString()})
		entry.Debug("mcp call")

		var reported bool
		ctx = context.WithValue(ctx, failedKey{}, &reported)

		started := time.Now()
		res, err := next(ctx, req)
		failed := reported || err != nil || (res != nil && res.IsError)
		s.metrics.Observe(metrics.SurfaceServer, req.Params.Name, started, failed)

		if failed {
			entry.WithField("elapsed", time.Since(started)).Debug("mcp call failed")
		} else {
			entry.WithField("elapsed", time.Since(started)).Debug("mcp call done")
		}
		return res, err
	}
}

// agentHandler serves a toolkit tool. Run records nothing, so metrics come
// from instrument alone.
func agentHandler(tk *toolkit.Toolkit) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return toolResult(tk.Run(ctx, req))
	}
}
