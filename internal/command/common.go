// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"io"
	"os"

	"github.com/urfave/cli/v3"

	awsx "github.com/tfctl/awsmcp/aws"
	"github.com/tfctl/awsmcp/internal/log"
	"github.com/tfctl/awsmcp/internal/meta"
	"github.com/tfctl/awsmcp/internal/output"
)

// newServices builds the AWS clients for a command. Tests swap it for a mock.
var newServices = func(ctx context.Context, cmd *cli.Command) (awsx.Services, error) {
	return awsx.NewClient(ctx, clientOptions(cmd)...)
}

// clientOptions layers the command's flag overrides on top of the settings
// read from the environment. Later options win.
func clientOptions(cmd *cli.Command) []awsx.Option {
	opts := GetMeta(cmd).Settings.ClientOptions()
	if profile := cmd.String("profile"); profile != "" {
		opts = append(opts, awsx.WithProfile(profile))
	}
	if region := cmd.String("region"); region != "" {
		opts = append(opts, awsx.WithRegion(region))
	}
	if n := cmd.Int("max-attempts"); n > 0 {
		opts = append(opts, awsx.WithMaxAttempts(n))
	}
	log.Debugf("client options: count=%d", len(opts))
	return opts
}

// GetMeta returns the meta.Meta stored in the command's Metadata. If missing
// or of an unexpected type, it returns the zero value.
func GetMeta(cmd *cli.Command) meta.Meta {
	if cmd == nil || cmd.Metadata == nil {
		return meta.Meta{}
	}
	if m, ok := cmd.Metadata["meta"].(meta.Meta); ok {
		return m
	}
	return meta.Meta{}
}

// renderOptions collects the global output flags.
func renderOptions(cmd *cli.Command) output.Options {
	return output.Options{
		Format:  cmd.String("output"),
		Drill:   cmd.String("drill"),
		Attrs:   cmd.String("attrs"),
		Filter:  cmd.String("filter"),
		Sort:    cmd.String("sort"),
		Titles:  cmd.Bool("titles"),
		Color:   cmd.Bool("color"),
		Padding: cmd.Int("padding"),
	}
}

// emit renders a tool result per the global output flags.
func emit(cmd *cli.Command, raw string) error {
	return output.Render(writer(cmd), raw, renderOptions(cmd))
}

// writer is the root command's writer, which tests replace with a buffer.
func writer(cmd *cli.Command) io.Writer {
	if root := cmd.Root(); root != nil && root.Writer != nil {
		return root.Writer
	}
	return os.Stdout
}
