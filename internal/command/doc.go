// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package command defines the CLI command set for awsmcp. It wires flags,
// validators and actions for the serve, tools, call, console and status
// subcommands.
package command
