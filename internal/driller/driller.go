// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package driller

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

var (
	// ErrInvalidPath is returned for a path segment that cannot be parsed.
	ErrInvalidPath = errors.New("invalid drill path")
	// ErrNoMatch is returned when a segment selects nothing.
	ErrNoMatch = errors.New("drill path matched nothing")
)

// A segment is key, key[n], key[*], key[] or a bare [n] on an array.
var segmentRE = regexp.MustCompile(`^([A-Za-z0-9_-]*)(\[(\d+|\*)?\])?$`)

// Driller navigates raw JSON along a dot separated path. A key applied to an
// array is applied to every element and collects the matches. A key that
// yields a one element array unwraps it unless an index is given; [] and [*]
// keep the whole array.
func Driller(raw string, path string) (gjson.Result, error) {
	current := gjson.Parse(raw)

	path = strings.TrimPrefix(strings.TrimSpace(path), ".")
	if path == "" {
		return current, nil
	}

	for _, p := range strings.Split(path, ".") {
		m := segmentRE.FindStringSubmatch(p)
		if m == nil || (m[1] == "" && m[2] == "") {
			return gjson.Result{}, fmt.Errorf("%w: %q", ErrInvalidPath, p)
		}
		key, bracket, index := m[1], m[2], m[3]

		if key != "" {
			mapped := current.IsArray()
			current = get(current, key)
			if !current.Exists() {
				return gjson.Result{}, fmt.Errorf("%w: %s", ErrNoMatch, p)
			}
			if !mapped && bracket == "" && current.IsArray() {
				if arr := current.Array(); len(arr) == 1 {
					current = arr[0]
				}
			}
		}

		if bracket == "" || index == "" || index == "*" {
			if bracket != "" && !current.IsArray() {
				return gjson.Result{}, fmt.Errorf("%w: %s is not a list", ErrNoMatch, p)
			}
			continue
		}

		i, err := strconv.Atoi(index)
		if err != nil {
			return gjson.Result{}, fmt.Errorf("%w: %q", ErrInvalidPath, p)
		}
		arr := current.Array()
		if !current.IsArray() || i >= len(arr) {
			return gjson.Result{}, fmt.Errorf("%w: %s", ErrNoMatch, p)
		}
		current = arr[i]
	}

	return current, nil
}

// get looks key up in an object, or in every object of an array.
func get(current gjson.Result, key string) gjson.Result {
	if !current.IsArray() {
		return current.Get(key)
	}

	var raws []string
	current.ForEach(func(_, elem gjson.Result) bool {
		if v := elem.Get(key); v.Exists() {
			raws = append(raws, v.Raw)
		}
		return true
	})
	if len(raws) == 0 {
		return gjson.Result{}
	}
	return gjson.Parse("[" + strings.Join(raws, ",") + "]")
}

// Text is the drilled value as text to render: strings lose their quotes,
// everything else keeps its JSON form.
func Text(res gjson.Result) string {
	if res.Type == gjson.String {
		return res.Str
	}
	return res.Raw
}
