// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package meta

import (
	"context"

	"github.com/tfctl/awsmcp/internal/config"
)

// Meta contains runtime metadata shared by commands. It carries CLI arguments,
// the loaded config file, context, the AWS connection settings read from the
// environment and .env, and the starting working directory.
type Meta struct {
	Args        []string
	Config      config.Type
	Context     context.Context
	Settings    config.Settings
	StartingDir string
}

// CommandArgs returns Args without the program name.
func (m Meta) CommandArgs() []string {
	if len(m.Args) < 2 {
		return nil
	}
	return m.Args[1:]
}
