// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package attrs parses --attrs column specs and applies their value
// transforms.
package attrs

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/tfctl/awsmcp/internal/log"
)

// Attr is one column of rendered output.
type Attr struct {
	// Key is the gjson path of the value within a result row.
	Key string `yaml:"key" json:"Key"`
	// Include is false for attrs that only exist for filtering and sorting.
	Include bool `yaml:"include" json:"Include"`
	// OutputKey names the value in output and titles its text column.
	OutputKey string `yaml:"outputKey" json:"OutputKey"`
	// TransformSpec is applied to the value before it is rendered.
	TransformSpec string `yaml:"transformSpec" json:"TransformSpec"`
}

// timeLayouts are the timestamp layouts the t and T transforms recognise.
var timeLayouts = []string{
	"2006-01-02 15:04:05-07:00",
	time.RFC3339,
}

var lengthRegex = regexp.MustCompile(`-?\d+`)

// Transform applies the transform spec to value.
//
//	b   humanized bytes (numbers only)
//	t   timestamp in local time
//	T   timestamp as time ago
//	u/l upper or lower case, last one wins
//	n   truncate to n characters, -n elides the middle
func (a *Attr) Transform(value any) any {
	if a.TransformSpec == "" {
		return value
	}

	switch v := value.(type) {
	case float64:
		if strings.Contains(a.TransformSpec, "b") && v >= 0 {
			return humanize.Bytes(uint64(v))
		}
		return value
	case string:
		return a.transformString(v)
	default:
		log.Tracef("value not transformed: type=%T", value)
		return value
	}
}

func (a *Attr) transformString(result string) string {
	if strings.ContainsAny(a.TransformSpec, "tT") {
		if ts, ok := parseTime(result); ok {
			if strings.Contains(a.TransformSpec, "T") {
				result = humanize.Time(ts)
			} else {
				result = ts.Local().Format("2006-01-02 15:04:05 MST")
			}
			log.Tracef("time transformed: result=%s", result)
		}
	}

	// A global spec is prepended, so the last case letter is the most specific.
	lastL := strings.LastIndexAny(a.TransformSpec, "lL")
	lastU := strings.LastIndexAny(a.TransformSpec, "uU")
	if lastL > lastU {
		result = strings.ToLower(result)
	} else if lastU > lastL {
		result = strings.ToUpper(result)
	}

	match := lengthRegex.FindAllString(a.TransformSpec, -1)
	if len(match) == 0 {
		return result
	}
	l, _ := strconv.Atoi(match[len(match)-1])
	abs := int(math.Abs(float64(l)))
	if len(result) <= abs || abs == 0 {
		return result
	}
	if l > 0 {
		return result[:l]
	}
	side := abs/2 - 1
	if side < 1 {
		return result[:abs]
	}
	return result[:side] + ".." + result[len(result)-side:]
}

func parseTime(s string) (time.Time, bool) {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// AttrList is a collection of Attr used to shape output fields.
type AttrList []Attr

// FromKeys returns one included attr per key, titled by the key itself.
func FromKeys(keys []string) AttrList {
	list := make(AttrList, 0, len(keys))
	for _, k := range keys {
		list = append(list, Attr{Key: k, Include: true, OutputKey: k})
	}
	return list
}

// Set parses a comma separated --attrs value. Each spec is
// key[:title[:transform]]. A leading ! keeps the attr for filtering and
// sorting but drops it from output. The key * carries a transform applied to
// every attr, see SetGlobalTransformSpec.
func (a *AttrList) Set(value string) error {
	if value == "" || value == "*" {
		return nil
	}

	const (
		keyIdx = iota
		outputIdx
		transformIdx
	)

specloop:
	for _, spec := range strings.Split(value, ",") {
		if strings.TrimSpace(spec) == "" {
			continue
		}

		attr := Attr{Include: true}
		fields := strings.Split(spec, ":")
		if len(fields) > transformIdx+1 {
			return fmt.Errorf("invalid attr spec %q: want key[:title[:transform]]", spec)
		}

		attr.Key = strings.TrimPrefix(strings.TrimSpace(fields[keyIdx]), ".")
		if strings.HasPrefix(attr.Key, "!") {
			attr.Include = false
			attr.Key = attr.Key[1:]
		}
		if attr.Key == "" {
			return fmt.Errorf("invalid attr spec %q: empty key", spec)
		}
		if attr.Key == "*" {
			attr.Include = false
		}

		// The title defaults to the last segment of a dotted key.
		attr.OutputKey = attr.Key
		if len(fields) > outputIdx && strings.TrimSpace(fields[outputIdx]) != "" {
			attr.OutputKey = strings.TrimSpace(fields[outputIdx])
		} else {
			segments := strings.Split(attr.Key, ".")
			attr.OutputKey = segments[len(segments)-1]
		}

		if len(fields) > transformIdx {
			attr.TransformSpec = strings.TrimSpace(fields[transformIdx])
		}
		log.Tracef("attr parsed: key=%s, output=%s, spec=%s", attr.Key, attr.OutputKey, attr.TransformSpec)

		// Respecifying an attr updates it in place.
		for i := range *a {
			if (*a)[i].Key == attr.Key || (*a)[i].OutputKey == attr.Key {
				(*a)[i].Include = attr.Include
				(*a)[i].OutputKey = attr.OutputKey
				(*a)[i].TransformSpec = attr.TransformSpec
				continue specloop
			}
		}

		*a = append(*a, attr)
	}

	return nil
}

// SetGlobalTransformSpec prepends the transform of the * attr, if any, to
// every attr.
func (a *AttrList) SetGlobalTransformSpec() {
	spec := ""
	for _, attr := range *a {
		if attr.Key == "*" {
			spec = attr.TransformSpec
			break
		}
	}
	if spec == "" {
		return
	}

	for i := range *a {
		(*a)[i].TransformSpec = spec + "," + (*a)[i].TransformSpec
	}
	log.Debugf("global spec applied: spec=%s", spec)
}

// Included returns the attrs that appear in output.
func (a AttrList) Included() AttrList {
	out := make(AttrList, 0, len(a))
	for _, attr := range a {
		if attr.Include && attr.Key != "*" {
			out = append(out, attr)
		}
	}
	return out
}

// String returns the list in key:title:transform form.
func (a *AttrList) String() string {
	result := make([]string, 0, len(*a))
	for _, attr := range *a {
		result = append(result, fmt.Sprintf("%s:%s:%s", attr.Key, attr.OutputKey, attr.TransformSpec))
	}
	return strings.Join(result, ",")
}
