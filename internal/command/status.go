// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/tfctl/awsmcp/internal/config"
	"github.com/tfctl/awsmcp/internal/meta"
	"github.com/tfctl/awsmcp/toolkit"
)

func statusCommandAction(ctx context.Context, cmd *cli.Command) error {
	svc, err := newServices(ctx, cmd)
	if err != nil {
		return fmt.Errorf("failed to create AWS clients: %w", err)
	}

	out, err := toolkit.New(svc).Call(ctx, "aws_status", nil)
	if err != nil {
		return err
	}
	return emit(cmd, out)
}

// statusCommandBuilder constructs the cli.Command for "status".
func statusCommandBuilder(meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "status",
		Usage:     "check AWS connectivity and identity",
		UsageText: "awsmcp status [options]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags:  append(NewAWSFlags("status", config.File()), NewGlobalFlags("status")...),
		Action: statusCommandAction,
	}
}
