// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package aws

import (
	"errors"
	"fmt"
	"testing"

	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
)

func TestIsCredentialsError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "nil", err: nil, want: false},
		{name: "sentinel", err: ErrNoCredentials, want: true},
		{name: "wrapped sentinel", err: fmt.Errorf("status: %w", ErrNoCredentials), want: true},
		{
			name: "sdk chain",
			err:  errors.New("operation error STS: GetCallerIdentity, get identity: get credentials: failed to refresh cached credentials, no EC2 IMDS role found"),
			want: true,
		},
		{name: "api error", err: &smithy.GenericAPIError{Code: "AccessDenied", Message: "denied"}, want: false},
		{name: "plain", err: errors.New("boom"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsCredentialsError(tt.err))
		})
	}
}

func TestErrorMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "nil", err: nil, want: ""},
		{
			name: "api message",
			err:  fmt.Errorf("failed to list buckets: %w", &smithy.GenericAPIError{Code: "AccessDenied", Message: "Access Denied"}),
			want: "Access Denied",
		},
		{
			name: "api code only",
			err:  &smithy.GenericAPIError{Code: "NoSuchBucket"},
			want: "NoSuchBucket",
		},
		{name: "plain", err: errors.New("boom"), want: "boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ErrorMessage(tt.err))
		})
	}
}

func TestIsAPIError(t *testing.T) {
	assert.True(t, IsAPIError(fmt.Errorf("wrap: %w", &smithy.GenericAPIError{Code: "X"})))
	assert.False(t, IsAPIError(errors.New("boom")))
}
