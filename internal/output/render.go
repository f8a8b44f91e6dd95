// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"encoding/json"
	"fmt"
	"image/color"
	"io"
	"os"
	"reflect"
	"strconv"
	"strings"

	"github.com/apex/log"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/charmbracelet/lipgloss/v2/table"
	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v2"

	"github.com/tfctl/awsmcp/internal/attrs"
	"github.com/tfctl/awsmcp/internal/config"
	"github.com/tfctl/awsmcp/internal/driller"
	"github.com/tfctl/awsmcp/internal/filters"
)

// Formats accepted by Render.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatRaw  = "raw"
)

// Formats lists the accepted output formats.
func Formats() []string {
	return []string{FormatText, FormatJSON, FormatYAML, FormatRaw}
}

// Options controls how Render shapes a result.
type Options struct {
	Format  string
	Drill   string
	Attrs   string
	Filter  string
	Sort    string
	Titles  bool
	Color   bool
	Padding int
}

func (o Options) shaped() bool {
	return o.Attrs != "" || o.Filter != "" || o.Sort != ""
}

// InterfaceToString converts supported primitive or composite values to a
// string. A custom empty value may be provided.
func InterfaceToString(value any, emptyValue ...string) string {
	if len(emptyValue) == 0 {
		emptyValue = []string{""}
	}

	if value == nil || reflect.ValueOf(value).IsZero() {
		return emptyValue[0]
	}

	switch value := value.(type) {
	case string:
		return value
	case int:
		return strconv.Itoa(value)
	case float64:
		return strconv.FormatFloat(value, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(value)
	default:
		jsonBytes, err := json.Marshal(value)
		if err != nil {
			return fmt.Sprintf("%v", value)
		}
		return string(jsonBytes)
	}
}

// Render writes the tool result raw to w shaped by opts.
func Render(w io.Writer, raw string, opts Options) error {
	if w == nil {
		w = os.Stdout
	}

	if opts.Drill != "" {
		res, err := driller.Driller(raw, opts.Drill)
		if err != nil {
			return err
		}
		raw = driller.Text(res)
	}

	if !gjson.Valid(raw) {
		return verbatim(w, raw)
	}

	doc := gjson.Parse(raw)
	rows, ok := dataset(doc)
	if opts.Format == FormatRaw || !ok {
		return verbatim(w, raw)
	}
	if opts.Format == FormatJSON && !opts.shaped() {
		return verbatim(w, raw)
	}

	list, err := buildAttrs(rows, opts.Attrs)
	if err != nil {
		return err
	}

	resultSet := filters.FilterDataset(rows, list, opts.Filter)
	for _, row := range resultSet {
		for _, attr := range list {
			if attr.TransformSpec != "" {
				row[attr.OutputKey] = attr.Transform(row[attr.OutputKey])
			}
		}
	}
	if opts.Sort != "" {
		SortDataset(resultSet, opts.Sort)
	}
	log.Debugf("dataset shaped: rows=%d, kept=%d, attrs=%d", len(rows.Array()), len(resultSet), len(list))

	switch opts.Format {
	case FormatJSON:
		out := make([]map[string]any, 0, len(resultSet))
		for _, row := range resultSet {
			out = append(out, included(row, list))
		}
		b, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal json: %w", err)
		}
		_, err = fmt.Fprintln(w, string(b))
		return err
	case FormatYAML:
		out := make([]yaml.MapSlice, 0, len(resultSet))
		for _, row := range resultSet {
			out = append(out, ordered(row, list))
		}
		b, err := yaml.Marshal(out)
		if err != nil {
			return fmt.Errorf("failed to marshal yaml: %w", err)
		}
		_, err = w.Write(b)
		return err
	default:
		TableWriter(w, resultSet, list, opts)
		return nil
	}
}

// dataset returns the rows of doc. An object is a single row. Anything that
// is not an object or an array of objects is not a dataset.
func dataset(doc gjson.Result) (gjson.Result, bool) {
	switch {
	case doc.IsObject():
		return gjson.Parse("[" + doc.Raw + "]"), true
	case doc.IsArray():
		for _, row := range doc.Array() {
			if !row.IsObject() {
				return doc, false
			}
		}
		return doc, true
	default:
		return doc, false
	}
}

func verbatim(w io.Writer, raw string) error {
	if !strings.HasSuffix(raw, "\n") {
		raw += "\n"
	}
	_, err := io.WriteString(w, raw)
	return err
}

// buildAttrs starts from the keys of the first row, in document order, unless
// spec names columns of its own.
func buildAttrs(rows gjson.Result, spec string) (attrs.AttrList, error) {
	var parsed attrs.AttrList
	if err := parsed.Set(spec); err != nil {
		return nil, err
	}

	var list attrs.AttrList
	if len(parsed.Included()) == 0 {
		var keys []string
		rows.Get("0").ForEach(func(key, _ gjson.Result) bool {
			keys = append(keys, key.String())
			return true
		})
		list = attrs.FromKeys(keys)
	}
	if err := list.Set(spec); err != nil {
		return nil, err
	}
	list.SetGlobalTransformSpec()
	return list, nil
}

func included(row map[string]any, list attrs.AttrList) map[string]any {
	out := make(map[string]any, len(list))
	for _, attr := range list.Included() {
		out[attr.OutputKey] = row[attr.OutputKey]
	}
	return out
}

func ordered(row map[string]any, list attrs.AttrList) yaml.MapSlice {
	out := make(yaml.MapSlice, 0, len(list))
	for _, attr := range list.Included() {
		out = append(out, yaml.MapItem{Key: attr.OutputKey, Value: row[attr.OutputKey]})
	}
	return out
}

// TableWriter renders the result set as a borderless table honoring color,
// titles and padding options.
func TableWriter(w io.Writer, resultSet []map[string]any, list attrs.AttrList, opts Options) {
	if len(resultSet) == 0 {
		return
	}

	var (
		headerStyle  = lipgloss.NewStyle().Align(lipgloss.Left).Bold(true)
		cellStyle    = lipgloss.NewStyle().Padding(0, 0).Align(lipgloss.Left)
		evenRowStyle = cellStyle
		oddRowStyle  = cellStyle
	)

	if opts.Color {
		headerColor, evenColor, oddColor := getColors("colors")

		headerStyle = headerStyle.Foreground(headerColor)
		evenRowStyle = evenRowStyle.Foreground(evenColor)
		oddRowStyle = oddRowStyle.Foreground(oddColor)
	}

	columns := list.Included()
	rows := make([][]string, 0, len(resultSet))
	for _, result := range resultSet {
		row := make([]string, 0, len(columns))
		for _, attr := range columns {
			row = append(row, InterfaceToString(result[attr.OutputKey], "-"))
		}
		rows = append(rows, row)
	}

	pad := opts.Padding
	t := table.New().
		BorderBottom(false).
		BorderTop(false).
		BorderLeft(false).
		BorderRight(false).
		Border(lipgloss.HiddenBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			var style lipgloss.Style
			switch {
			case row == table.HeaderRow:
				style = headerStyle
			case row%2 == 0:
				style = evenRowStyle
			default:
				style = oddRowStyle
			}

			if col > 0 {
				style = style.PaddingLeft(pad)
			}

			return style
		}).
		Headers().
		Rows(rows...)

	if opts.Titles {
		headers := make([]string, 0, len(columns))
		for _, attr := range columns {
			headers = append(headers, attr.OutputKey)
		}

		// https://github.com/charmbracelet/lipgloss/issues/261
		t = t.Headers(headers...).BorderHeader(false)
	}
	fmt.Fprintln(w, t)
}

// getColors returns the table colors. Configured colors win; otherwise a
// default suited to the terminal background is used.
func getColors(key string) (header, even, odd color.Color) {
	isDark := lipgloss.HasDarkBackground(os.Stdin, os.Stdout)

	resolveColor := func(key string, light string, dark string) color.Color {
		colorCfg, err := config.GetString(key)
		if err == nil && colorCfg != "" {
			return lipgloss.Color(colorCfg)
		}

		if isDark {
			return lipgloss.Color(dark)
		}
		return lipgloss.Color(light)
	}

	header = resolveColor(key+".title", "#b08800", "#f6be00")
	even = resolveColor(key+".even", "#333333", "#ffffff")
	odd = resolveColor(key+".odd", "#0088a0", "#00c8f0")

	return
}
