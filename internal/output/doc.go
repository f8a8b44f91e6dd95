// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package output shapes tool results for the terminal. JSON results are
// filtered, transformed, sorted and rendered as a table, JSON or YAML. Plain
// text results are printed as they are.
package output
