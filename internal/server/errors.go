// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	awsx "github.com/tfctl/awsmcp/aws"
	"github.com/tfctl/awsmcp/operations"
	"github.com/tfctl/awsmcp/toolkit"
)

const noCredentials = "No AWS credentials configured"

// reportedError carries a failure that is answered with a plain text result.
// settle turns it into that result.
type reportedError struct {
	text string
}

func (e *reportedError) Error() string { return e.text }

type failedKey struct{}

// markFailed flags the call in ctx as failed for instrument.
func markFailed(ctx context.Context) {
	if failed, ok := ctx.Value(failedKey{}).(*bool); ok {
		*failed = true
	}
}

// toolResult turns an operation outcome into a tool result. Bad arguments
// become error results. Everything else is reported as text.
func toolResult(text string, err error) (*mcp.CallToolResult, error) {
	switch {
	case err == nil:
		return mcp.NewToolResultText(text), nil
	case isArgumentError(err):
		return mcp.NewToolResultError(err.Error()), nil
	default:
		return nil, &reportedError{text: errorText(err)}
	}
}

// settle answers a reportedError with a text result and marks the call
// failed. Other errors pass through.
func settle(next server.ToolHandlerFunc) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		res, err := next(ctx, req)
		var reported *reportedError
		if errors.As(err, &reported) {
			markFailed(ctx)
			return mcp.NewToolResultText(reported.text), nil
		}
		return res, err
	}
}

// jsonResult renders v as indented JSON.
func jsonResult(v any, err error) (*mcp.CallToolResult, error) {
	if err != nil {
		return toolResult("", err)
	}
	return toolResult(operations.ToJSON(v))
}

func isArgumentError(err error) bool {
	return errors.Is(err, operations.ErrMissingArgument) || errors.Is(err, toolkit.ErrInvalidArgument)
}

func errorText(err error) string {
	switch {
	case awsx.IsCredentialsError(err):
		return "Error: " + noCredentials
	case awsx.IsAPIError(err):
		return "AWS Error: " + awsx.ErrorMessage(err)
	default:
		return "Error: " + err.Error()
	}
}

// bind decodes the argument key into dst. An absent or null argument leaves
// dst untouched.
func bind(req mcp.CallToolRequest, key string, dst any) error {
	v, ok := req.GetArguments()[key]
	if !ok || v == nil {
		return nil
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", toolkit.ErrInvalidArgument, key, err)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("%w: %s: %v", toolkit.ErrInvalidArgument, key, err)
	}
	return nil
}
