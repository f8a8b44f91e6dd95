// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"fmt"
	"slices"

	"github.com/tfctl/awsmcp/internal/output"
	"github.com/tfctl/awsmcp/internal/server"
)

// Transports accepted by serve.
const (
	transportStdio = "stdio"
	transportHTTP  = "http"
)

type FlagValidatorType func(any) error

func FlagValidators(value any, validators ...FlagValidatorType) error {
	for _, v := range validators {
		if err := v(value); err != nil {
			return err
		}
	}
	return nil
}

func OutputValidator(value any) error {
	return oneOf(value, output.Formats())
}

func TransportValidator(value any) error {
	return oneOf(value, []string{transportStdio, transportHTTP})
}

func ToolsetValidator(value any) error {
	return oneOf(value, server.Toolsets())
}

func NonNegativeValidator(value any) error {
	if n, ok := value.(int); ok && n < 0 {
		return fmt.Errorf("must not be negative, got %d", n)
	}
	return nil
}

func oneOf(value any, valid []string) error {
	s, ok := value.(string)
	if !ok || !slices.Contains(valid, s) {
		return fmt.Errorf("must be one of %v", valid)
	}
	return nil
}
