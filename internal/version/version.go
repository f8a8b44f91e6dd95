// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Do not import any other awsmcp packages to avoid import cycles.

package version

import "runtime/debug"

// Name is the program name reported by the CLI and the MCP server handshake.
const Name = "awsmcp"

// Version is the module version stamped by `go install`, or "dev".
var Version = func() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return "dev"
}()
