// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package filters

import (
	"embed"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"

	"github.com/tfctl/awsmcp/internal/attrs"
)

//go:embed testdata/*.yaml
var testDataFS embed.FS

type testBuildFiltersCase struct {
	Name      string   `yaml:"name"`
	Spec      string   `yaml:"spec"`
	Delimiter string   `yaml:"delimiter"`
	Want      []Filter `yaml:"want"`
	WantCount int      `yaml:"wantCount"`
}

type testCheckStringOperandCase struct {
	Name   string `yaml:"name"`
	Value  string `yaml:"value"`
	Filter Filter `yaml:"filter"`
	Want   bool   `yaml:"want"`
}

type testCheckNumericOperandCase struct {
	Name   string  `yaml:"name"`
	Value  float64 `yaml:"value"`
	Filter Filter  `yaml:"filter"`
	Want   bool    `yaml:"want"`
}

type testApplyFiltersCase struct {
	Name    string   `yaml:"name"`
	Filters []Filter `yaml:"filters"`
	Want    bool     `yaml:"want"`
}

func loadTestData(filename string, v any) error {
	data, err := testDataFS.ReadFile("testdata/" + filename)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, v)
}

func TestBuildFilters(t *testing.T) {
	var tests []testBuildFiltersCase
	require.NoError(t, loadTestData("build_filters.yaml", &tests))

	for _, tt := range tests {
		t.Run(tt.Name, func(t *testing.T) {
			if tt.Delimiter != "" {
				t.Setenv(DelimEnvVar, tt.Delimiter)
			}

			got := BuildFilters(tt.Spec)
			require.Len(t, got, tt.WantCount)
			for i, filter := range tt.Want {
				assert.Equal(t, filter, got[i])
			}
		})
	}
}

func TestCheckStringOperand(t *testing.T) {
	var tests []testCheckStringOperandCase
	require.NoError(t, loadTestData("check_string_operand.yaml", &tests))

	for _, tt := range tests {
		t.Run(tt.Name, func(t *testing.T) {
			assert.Equal(t, tt.Want, checkStringOperand(tt.Value, tt.Filter))
		})
	}
}

func TestCheckNumericOperand(t *testing.T) {
	var tests []testCheckNumericOperandCase
	require.NoError(t, loadTestData("check_numeric_operand.yaml", &tests))

	for _, tt := range tests {
		t.Run(tt.Name, func(t *testing.T) {
			assert.Equal(t, tt.Want, checkNumericOperand(tt.Value, tt.Filter))
		})
	}
}

func TestApplyFilters(t *testing.T) {
	var tests []testApplyFiltersCase
	require.NoError(t, loadTestData("apply_filters.yaml", &tests))

	row := gjson.Parse(`{
		"InstanceId": "i-1",
		"State": "running",
		"Type": "t3.micro",
		"Memory": 128,
		"Public": false,
		"PublicIp": null,
		"Tags": ["prod", "web"],
		"Labels": {"team": "core"},
		"Placement": {"AvailabilityZone": "us-east-1a"}
	}`)
	list := attrs.AttrList{
		{Key: "State", OutputKey: "state", Include: true},
		{Key: "Type", OutputKey: "Type", Include: true},
	}

	for _, tt := range tests {
		t.Run(tt.Name, func(t *testing.T) {
			assert.Equal(t, tt.Want, applyFilters(row, list, tt.Filters))
		})
	}
}

func TestFilterDataset(t *testing.T) {
	data := gjson.Parse(`[
		{"Name": "prod/db", "ARN": "arn:1"},
		{"Name": "dev/db", "ARN": "arn:2"},
		{"Name": "prod/api", "ARN": "arn:3"}
	]`)
	list := attrs.AttrList{
		{Key: "Name", OutputKey: "secret", Include: true},
		{Key: "ARN", OutputKey: "ARN", Include: true},
		{Key: "*", OutputKey: "*", TransformSpec: "u"},
	}

	tests := []struct {
		name string
		spec string
		want []string
	}{
		{name: "no filter", spec: "", want: []string{"prod/db", "dev/db", "prod/api"}},
		{name: "prefix", spec: "secret^prod/", want: []string{"prod/db", "prod/api"}},
		{name: "two filters", spec: "secret^prod/,ARN=arn:3", want: []string{"prod/api"}},
		{name: "nothing", spec: "secret=none", want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterDataset(data, list, tt.spec)
			names := make([]string, 0, len(got))
			for _, row := range got {
				assert.Len(t, row, 2)
				names = append(names, row["secret"].(string))
			}
			assert.Equal(t, tt.want, names)
		})
	}
}
