// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package operations is the library face of awsmcp. Each function validates
// its arguments, makes one AWS call (two for GetLogs without a stream) and
// reshapes the response into small JSON-friendly structs. The toolkit and the
// MCP server are thin layers over these functions.
//
// Pagination is left to the caller: every list operation returns the first
// page the service hands back.
package operations
