// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package driller walks a dotted path into a tool's JSON result so commands
// can show one part of a large document, such as the state of a single
// instance.
package driller
