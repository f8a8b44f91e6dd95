// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"

	"github.com/tfctl/awsmcp/internal/config"
	"github.com/tfctl/awsmcp/internal/meta"
	"github.com/tfctl/awsmcp/internal/metrics"
	"github.com/tfctl/awsmcp/internal/server"
)

// serveCommandAction runs the MCP server until the client disconnects or the
// process is interrupted.
func serveCommandAction(ctx context.Context, cmd *cli.Command) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	svc, err := newServices(ctx, cmd)
	if err != nil {
		return fmt.Errorf("failed to create AWS clients: %w", err)
	}

	m := metrics.New()
	srv, err := server.New(svc,
		server.WithMetrics(m),
		server.WithToolset(cmd.String("toolset")),
	)
	if err != nil {
		return err
	}

	transport := cmd.String("transport")
	log.WithFields(log.Fields{
		"transport": transport,
		"toolset":   srv.Toolset(),
		"region":    svc.Region(),
	}).Info("serving")

	if transport == transportHTTP {
		return srv.ServeHTTP(ctx, cmd.String("address"))
	}

	// stdout belongs to the protocol in stdio mode, so metrics need their
	// own listener. It lives as long as the stdio session.
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	if address := cmd.String("metrics-address"); address != "" {
		g.Go(func() error {
			return m.Serve(gctx, address)
		})
	}
	g.Go(func() error {
		defer cancel()
		return srv.ServeStdio(gctx)
	})

	// An interrupt is a normal way to stop.
	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// serveCommandBuilder constructs the cli.Command for "serve", wiring metadata,
// flags, and the action handler.
func serveCommandBuilder(meta meta.Meta) *cli.Command {
	cfgFile := config.File()

	return &cli.Command{
		Name:      "serve",
		Usage:     "run the MCP server",
		UsageText: "awsmcp serve [options]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags: append([]cli.Flag{
			NameSpacedValueChainFlagFromConfigFile("serve", cfgFile, &cli.StringFlag{
				Name:    "address",
				Usage:   "listen address for the http transport",
				Sources: cli.EnvVars("AWSMCP_ADDRESS"),
				Value:   ":8080",
			}),
			NameSpacedValueChainFlagFromConfigFile("serve", cfgFile, &cli.StringFlag{
				Name:    "metrics-address",
				Usage:   "listen address for /metrics with the stdio transport",
				Sources: cli.EnvVars("AWSMCP_METRICS_ADDRESS"),
			}),
			NewToolsetFlag(server.ToolsetServer, "serve", cfgFile),
			NameSpacedValueChainFlagFromConfigFile("serve", cfgFile, &cli.StringFlag{
				Name:    "transport",
				Usage:   "stdio or http",
				Sources: cli.EnvVars("AWSMCP_TRANSPORT"),
				Value:   transportStdio,
				Validator: func(value string) error {
					return FlagValidators(value, TransportValidator)
				},
			}),
		}, NewAWSFlags("serve", cfgFile)...),
		Action: serveCommandAction,
	}
}
