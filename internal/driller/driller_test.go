// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// no-cloc
package driller

import (
	"embed"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

//go:embed testdata/*.yaml
var testDataFS embed.FS

// drillerTestCase represents a single test case for TestDriller.
type drillerTestCase struct {
	Name     string `yaml:"name"`
	JSON     string `yaml:"json"`
	Path     string `yaml:"path"`
	Expected string `yaml:"expected"`
	Err      string `yaml:"err"`
}

// loadTestData loads test data from embedded YAML files.
func loadTestData(filename string, v interface{}) error {
	data, err := testDataFS.ReadFile("testdata/" + filename)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, v)
}

func TestDriller(t *testing.T) {
	var tests []drillerTestCase
	require.NoError(t, loadTestData("driller_cases.yaml", &tests))
	require.NotEmpty(t, tests)

	for _, tt := range tests {
		t.Run(tt.Name, func(t *testing.T) {
			res, err := Driller(tt.JSON, tt.Path)
			if tt.Err != "" {
				assert.ErrorContains(t, err, tt.Err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.Expected, Text(res))
		})
	}
}
