// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package aws

import (
	"errors"
	"strings"

	"github.com/aws/smithy-go"
)

// ErrNoCredentials reports that no credentials could be resolved.
var ErrNoCredentials = errors.New("no AWS credentials configured")

// credentialMarkers are the fragments the SDK credential chain puts in its
// errors when nothing usable was found.
var credentialMarkers = []string{
	"failed to retrieve credentials",
	"failed to refresh cached credentials",
	"no EC2 IMDS role found",
	"static credentials are empty",
	"get credentials:",
}

// IsCredentialsError reports whether err means no credentials were available.
func IsCredentialsError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrNoCredentials) {
		return true
	}
	msg := err.Error()
	for _, marker := range credentialMarkers {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}

// IsAPIError reports whether err carries an error returned by an AWS service.
func IsAPIError(err error) bool {
	var apiErr smithy.APIError
	return errors.As(err, &apiErr)
}

// ErrorMessage returns the service-provided message when err wraps an AWS API
// error, falling back to the error code and then to err.Error().
func ErrorMessage(err error) string {
	if err == nil {
		return ""
	}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		if msg := apiErr.ErrorMessage(); msg != "" {
			return msg
		}
		if code := apiErr.ErrorCode(); code != "" {
			return code
		}
	}
	return err.Error()
}
