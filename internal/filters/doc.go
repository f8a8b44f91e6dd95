// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package filters selects rows of a tool result.
//
// Filters are key-operator-target expressions joined by a delimiter, a comma
// unless AWSMCP_FILTER_DELIM says otherwise. Any operator may be negated with
// a leading !.
//
//   - = : equal (numeric when the value is a number)
//   - ~ : contains, ignoring case
//   - ^ : prefix
//   - < : less than
//   - > : greater than
//   - @ : contains, or is a member of an array or object value
//   - / : regular expression
//
// Examples:
//
//   - "State=running"
//   - "Name^web-"
//   - "Size>1048576"
//   - "Key!/\.log$"
//
// A filter key is first matched against the OutputKey of the attrs in play
// and otherwise used as a gjson path into the row. A row with no value at
// the key never matches.
package filters
