// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package server

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aws/smithy-go"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	awsmock "github.com/tfctl/awsmcp/internal/aws/mock"
	"github.com/tfctl/awsmcp/internal/metrics"
)

var serverTools = []string{
	"ec2_list_instances",
	"ec2_start_instance",
	"ec2_stop_instance",
	"ec2_describe_instance",
	"s3_list_buckets",
	"s3_list_objects",
	"s3_get_object",
	"s3_put_object",
	"secrets_list",
	"secrets_get",
	"secrets_create",
	"lambda_list_functions",
	"lambda_invoke",
	"cloudwatch_list_log_groups",
	"cloudwatch_get_logs",
	"aws_status",
}

func names(tools []mcp.Tool) []string {
	out := make([]string, 0, len(tools))
	for _, t := range tools {
		out = append(out, t.Name)
	}
	return out
}

func TestNew_Toolsets(t *testing.T) {
	tests := []struct {
		toolset string
		count   int
	}{
		{toolset: "", count: 16},
		{toolset: ToolsetServer, count: 16},
		{toolset: ToolsetAgent, count: 19},
		{toolset: ToolsetAll, count: 34},
	}

	for _, tt := range tests {
		t.Run(tt.toolset, func(t *testing.T) {
			var opts []Option
			if tt.toolset != "" {
				opts = append(opts, WithToolset(tt.toolset))
			}
			s, err := New(awsmock.NewServices("us-east-1"), opts...)
			require.NoError(t, err)
			assert.Len(t, s.Tools(), tt.count)
			assert.NotNil(t, s.MCPServer())

			seen := map[string]bool{}
			for _, n := range names(s.Tools()) {
				assert.False(t, seen[n], "duplicate tool %s", n)
				seen[n] = true
			}
		})
	}
}

func TestNew_ServerToolNames(t *testing.T) {
	s, err := New(awsmock.NewServices("us-east-1"))
	require.NoError(t, err)
	assert.Equal(t, serverTools, names(s.Tools()))
	assert.Equal(t, ToolsetServer, s.Toolset())

	for _, tool := range s.Tools() {
		assert.NotEmpty(t, tool.Description, tool.Name)
	}
}

func TestNew_AllKeepsServerStatus(t *testing.T) {
	svc := awsmock.NewServices("us-east-1")
	s, err := New(svc, WithToolset(ToolsetAll))
	require.NoError(t, err)

	for _, tool := range s.Tools() {
		if tool.Name == "aws_status" {
			assert.Equal(t, awsStatus.Description, tool.Description)
		}
	}
	assert.Contains(t, names(s.Tools()), "aws_ec2_list")
}

func TestNew_InvalidToolset(t *testing.T) {
	_, err := New(awsmock.NewServices("us-east-1"), WithToolset("everything"))
	assert.ErrorIs(t, err, ErrInvalidToolset)
}

func TestInstrument(t *testing.T) {
	m := metrics.New()
	s, err := New(awsmock.NewServices("us-east-1"), WithMetrics(m))
	require.NoError(t, err)

	ok := s.instrument(func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return mcp.NewToolResultText("fine"), nil
	})
	failed := s.instrument(func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return mcp.NewToolResultError("AWS Error: nope"), nil
	})
	broken := s.instrument(func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return nil, errors.New("boom")
	})
	reported := s.instrument(settle(func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return toolResult("", &smithy.GenericAPIError{Code: "AccessDenied", Message: "denied"})
	}))

	_, _ = ok(context.Background(), request("s3_list_buckets", nil))
	_, _ = ok(context.Background(), request("s3_list_buckets", nil))
	_, _ = failed(context.Background(), request("s3_get_object", nil))
	_, err = broken(context.Background(), request("s3_put_object", nil))
	assert.Error(t, err)

	res, err := reported(context.Background(), request("s3_list_objects", nil))
	require.NoError(t, err)
	assert.False(t, res.IsError)
	assert.Equal(t, "AWS Error: denied", res.Content[0].(mcp.TextContent).Text)

	expected := `
# HELP awsmcp_tool_calls_total Number of tool calls by tool, surface and outcome
# TYPE awsmcp_tool_calls_total counter
awsmcp_tool_calls_total{outcome="error",surface="server",tool="s3_get_object"} 1
awsmcp_tool_calls_total{outcome="error",surface="server",tool="s3_list_objects"} 1
awsmcp_tool_calls_total{outcome="error",surface="server",tool="s3_put_object"} 1
awsmcp_tool_calls_total{outcome="ok",surface="server",tool="s3_list_buckets"} 2
`
	assert.NoError(t, testutil.GatherAndCompare(m.Registry(), strings.NewReader(expected), "awsmcp_tool_calls_total"))
}

func TestHandler_Metrics(t *testing.T) {
	s, err := New(awsmock.NewServices("us-east-1"), WithMetrics(metrics.New()))
	require.NoError(t, err)

	srv := httptest.NewServer(s.Handler())
	defer srv.Close()

	res, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, string(body), "go_goroutines")
}

func TestHandler_NoMetrics(t *testing.T) {
	s, err := New(awsmock.NewServices("us-east-1"))
	require.NoError(t, err)

	srv := httptest.NewServer(s.Handler())
	defer srv.Close()

	res, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer res.Body.Close()
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}

func TestServeHTTP_StopsOnCancel(t *testing.T) {
	s, err := New(awsmock.NewServices("us-east-1"))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.ServeHTTP(ctx, "127.0.0.1:0") }()
	cancel()

	assert.NoError(t, <-done)
}
