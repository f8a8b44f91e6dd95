// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package operations

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	// ErrMissingArgument is returned when a required argument is blank.
	ErrMissingArgument = errors.New("missing required argument")
	// ErrNotFound is returned when a lookup succeeds but holds no result.
	ErrNotFound = errors.New("not found")
	// ErrNotText is returned when object content is not valid UTF-8.
	ErrNotText = errors.New("content is not UTF-8 text")
)

// TimeFormat is the layout used for every timestamp in operation results.
const TimeFormat = "2006-01-02 15:04:05-07:00"

const notAvailable = "N/A"

// requireArgs returns ErrMissingArgument naming the first blank value. Pairs are
// given as name, value, name, value, ...
func requireArgs(pairs ...string) error {
	for i := 0; i+1 < len(pairs); i += 2 {
		if strings.TrimSpace(pairs[i+1]) == "" {
			return fmt.Errorf("%w: %s", ErrMissingArgument, pairs[i])
		}
	}
	return nil
}

// requireValue is requireArgs for payloads, where whitespace is content.
func requireValue(name, value string) error {
	if value == "" {
		return fmt.Errorf("%w: %s", ErrMissingArgument, name)
	}
	return nil
}

// clampInt32 bounds a page size to what the service accepts.
func clampInt32(n, limit int) int32 {
	return int32(min(n, limit))
}

func formatTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format(TimeFormat)
}

func orNA(s *string) string {
	if s == nil || *s == "" {
		return notAvailable
	}
	return *s
}

// ToJSON renders v as 2-space indented JSON without HTML escaping.
func ToJSON(v any) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return "", err
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}
