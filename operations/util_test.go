// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package operations

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequireArgs(t *testing.T) {
	assert.NoError(t, requireArgs("bucket", "b", "key", "k"))

	err := requireArgs("bucket", "b", "key", " ")
	assert.ErrorIs(t, err, ErrMissingArgument)
	assert.EqualError(t, err, "missing required argument: key")
}

func TestRequireValue(t *testing.T) {
	assert.NoError(t, requireValue("secret_value", " "))
	assert.ErrorIs(t, requireValue("secret_value", ""), ErrMissingArgument)
}

func TestClampInt32(t *testing.T) {
	tests := []struct {
		n, limit int
		want     int32
	}{
		{n: 5, limit: 100, want: 5},
		{n: 100, limit: 100, want: 100},
		{n: 1 << 40, limit: 1000, want: 1000},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, clampInt32(tt.n, tt.limit))
	}
}

func TestFormatTime(t *testing.T) {
	assert.Equal(t, "", formatTime(nil))

	ts := time.Date(2024, 7, 4, 23, 0, 0, 0, time.FixedZone("PDT", -7*3600))
	assert.Equal(t, "2024-07-05 06:00:00+00:00", formatTime(&ts))
}

func TestToJSON(t *testing.T) {
	got, err := ToJSON(map[string]any{"msg": "a<b>&c"})
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"msg\": \"a<b>&c\"\n}", got)
}
