// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

/*
Package server exposes the AWS operations as MCP tools.

The server registers a toolset chosen at construction time:

  - server: the 16 protocol tools (ec2_list_instances, s3_get_object, ...).
  - agent:  the 19 aws_* tools from the toolkit package.
  - all:    both. Where names collide the protocol tool wins.

Tool handlers never surface AWS failures as protocol errors. An API error is
answered with a text result reading "AWS Error: <message>", missing
credentials with "Error: No AWS credentials configured". Only bad arguments
produce an error result. Metrics still count reported failures as errors.

Two transports are available. ServeStdio speaks newline delimited JSON-RPC on
stdin and stdout, so nothing else may write to stdout while it runs. ServeHTTP
mounts the streamable HTTP transport on /mcp and, when metrics are enabled,
the Prometheus endpoint on /metrics.
*/
package server
