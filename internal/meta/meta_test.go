// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package meta

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCommandArgs(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want []string
	}{
		{name: "zero meta", args: nil, want: nil},
		{name: "program only", args: []string{"awsmcp"}, want: nil},
		{name: "command and flags", args: []string{"awsmcp", "console", "-r", "eu-west-1"}, want: []string{"console", "-r", "eu-west-1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Meta{Args: tt.args}.CommandArgs())
		})
	}
}
