// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package toolkit packages the AWS operations as agent tools. Each tool has an
// aws_ prefixed name, a description, an input schema expressed as an MCP tool
// definition and a handler that returns plain text, usually indented JSON.
//
//	tk := toolkit.New(client)
//	out, err := tk.Call(ctx, "aws_s3_list", map[string]any{"bucket": "logs"})
package toolkit
