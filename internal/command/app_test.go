// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package command

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"

	awsx "github.com/tfctl/awsmcp/aws"
	awsmock "github.com/tfctl/awsmcp/internal/aws/mock"
	"github.com/tfctl/awsmcp/internal/config"
	"github.com/tfctl/awsmcp/internal/meta"
	"github.com/tfctl/awsmcp/operations"
)

// runApp runs the CLI with args against svc and returns what it printed.
func runApp(t *testing.T, svc awsx.Services, args ...string) (string, error) {
	t.Helper()
	return runAppContext(context.Background(), t, svc, args...)
}

func runAppContext(ctx context.Context, t *testing.T, svc awsx.Services, args ...string) (string, error) {
	t.Helper()
	t.Setenv(config.CfgFileEnvVar, "")
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	orig := newServices
	newServices = func(context.Context, *cli.Command) (awsx.Services, error) {
		if svc == nil {
			return nil, errors.New("no services")
		}
		return svc, nil
	}
	t.Cleanup(func() { newServices = orig })

	args = append([]string{"awsmcp"}, args...)
	app, err := InitApp(ctx, args)
	require.NoError(t, err)

	var buf bytes.Buffer
	app.Writer = &buf
	app.ErrWriter = &buf
	err = app.Run(ctx, args)
	return buf.String(), err
}

func connected() *awsmock.Services {
	svc := awsmock.NewServices("eu-west-1")
	svc.STSAPI.On("GetCallerIdentity", mock.Anything, mock.Anything, mock.Anything).Return(&sts.GetCallerIdentityOutput{
		Account: awsv2.String("123"),
		Arn:     awsv2.String("arn:aws:iam::123:user/me"),
		UserId:  awsv2.String("AID"),
	}, nil)
	return svc
}

func TestInitApp_Commands(t *testing.T) {
	t.Setenv(config.CfgFileEnvVar, "")

	app, err := InitApp(context.Background(), []string{"awsmcp", "serve"})
	require.NoError(t, err)
	assert.Equal(t, "serve", config.Config.Namespace)

	var names []string
	for _, cmd := range app.Commands {
		names = append(names, cmd.Name)

		for i := 1; i < len(cmd.Flags); i++ {
			assert.Less(t, cmd.Flags[i-1].Names()[0], cmd.Flags[i].Names()[0], "flags of %s are sorted", cmd.Name)
		}
	}
	assert.Equal(t, []string{"call", "console", "serve", "status", "tools"}, names)
}

func TestInitApp_FlagNamespace(t *testing.T) {
	t.Setenv(config.CfgFileEnvVar, "")

	_, err := InitApp(context.Background(), []string{"awsmcp", "--help"})
	require.NoError(t, err)
	assert.Equal(t, "", config.Config.Namespace)
}

func TestInitApp_BadEnvFile(t *testing.T) {
	t.Setenv(config.EnvFileEnvVar, "/does/not/exist.env")

	_, err := InitApp(context.Background(), []string{"awsmcp", "status"})
	assert.ErrorContains(t, err, "failed to load settings")
}

func TestStatusCommand(t *testing.T) {
	svc := connected()

	out, err := runApp(t, svc, "status", "-o", "json")
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"connected","region":"eu-west-1","account":"123","arn":"arn:aws:iam::123:user/me","user_id":"AID"}`, out)
	svc.AssertExpectations(t)
}

func TestStatusCommand_Text(t *testing.T) {
	out, err := runApp(t, connected(), "status", "--titles")
	require.NoError(t, err)
	assert.Contains(t, out, "connected")
	assert.Contains(t, out, "arn:aws:iam::123:user/me")
}

func TestStatusCommand_NoClients(t *testing.T) {
	_, err := runApp(t, nil, "status")
	assert.ErrorContains(t, err, "failed to create AWS clients")
}

func TestCallCommand(t *testing.T) {
	t.Run("raw output", func(t *testing.T) {
		out, err := runApp(t, connected(), "call", "-o", "raw", "aws_iam_whoami")
		require.NoError(t, err)
		assert.JSONEq(t, `{"region":"eu-west-1","account":"123","arn":"arn:aws:iam::123:user/me","user_id":"AID"}`, out)
	})

	t.Run("attrs shape the result", func(t *testing.T) {
		out, err := runApp(t, connected(), "call", "-o", "json", "--attrs", "account", "aws_iam_whoami")
		require.NoError(t, err)

		var rows []map[string]any
		require.NoError(t, json.Unmarshal([]byte(out), &rows))
		assert.Equal(t, []map[string]any{{"account": "123"}}, rows)
	})

	t.Run("drill into the result", func(t *testing.T) {
		out, err := runApp(t, connected(), "call", "--drill", "arn", "aws_iam_whoami")
		require.NoError(t, err)
		assert.Equal(t, "arn:aws:iam::123:user/me\n", out)
	})

	t.Run("missing tool name", func(t *testing.T) {
		_, err := runApp(t, connected(), "call")
		assert.ErrorContains(t, err, "missing tool name")
	})

	t.Run("unknown tool", func(t *testing.T) {
		_, err := runApp(t, connected(), "call", "nope")
		assert.ErrorContains(t, err, "unknown tool: nope")
	})

	t.Run("bad pair", func(t *testing.T) {
		_, err := runApp(t, connected(), "call", "--arg", "bucket", "aws_s3_list")
		assert.ErrorContains(t, err, "want key=value")
	})

	t.Run("missing secret value without a terminal", func(t *testing.T) {
		_, err := runApp(t, connected(), "call", "--arg", "name=prod/key", "aws_secrets_create")
		assert.ErrorIs(t, err, operations.ErrMissingArgument)
	})
}

func TestCallCommand_BadOutput(t *testing.T) {
	_, err := runApp(t, connected(), "call", "-o", "xml", "aws_status")
	assert.ErrorContains(t, err, "must be one of")
}

func TestToolsCommand(t *testing.T) {
	tests := []struct {
		name  string
		args  []string
		count int
	}{
		{"default is agent", []string{"tools", "-o", "json"}, 19},
		{"server", []string{"tools", "-o", "json", "--toolset", "server"}, 16},
		{"all", []string{"tools", "-o", "json", "--toolset", "all"}, 34},
		{"filtered", []string{"tools", "-o", "json", "--filter", "name^aws_s3"}, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := runApp(t, nil, tt.args...)
			require.NoError(t, err)

			var rows []toolRow
			require.NoError(t, json.Unmarshal([]byte(out), &rows))
			assert.Len(t, rows, tt.count)
		})
	}
}

func TestToolsCommand_Describe(t *testing.T) {
	out, err := runApp(t, nil, "tools", "-o", "json", "aws_s3_list")
	require.NoError(t, err)

	var rows []paramRow
	require.NoError(t, json.Unmarshal([]byte(out), &rows))
	require.Len(t, rows, 3)
	assert.Equal(t, paramRow{Name: "bucket", Type: "string", Required: true, Description: "S3 bucket name"}, rows[0])
	assert.Equal(t, "max_items", rows[1].Name)
	assert.Equal(t, "100", rows[1].Default)
}

func TestToolsCommand_Schema(t *testing.T) {
	out, err := runApp(t, nil, "tools", "--schema", "aws_s3_list")
	require.NoError(t, err)
	assert.Contains(t, out, "aws_s3_list\n")
	assert.Contains(t, out, "bucket")
	assert.Contains(t, out, "required")
}

func TestToolsCommand_Unknown(t *testing.T) {
	_, err := runApp(t, nil, "tools", "--toolset", "server", "aws_s3_list")
	assert.ErrorContains(t, err, `unknown tool "aws_s3_list"`)
}

func TestServeCommand_HTTPStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	_, err := runAppContext(ctx, t, awsmock.NewServices("us-east-1"), "serve", "--transport", "http", "--address", "127.0.0.1:0")
	assert.NoError(t, err)
}

func TestServeCommand_BadFlags(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"transport", []string{"serve", "--transport", "sse"}},
		{"toolset", []string{"serve", "--toolset", "everything"}},
		{"max attempts", []string{"serve", "--max-attempts=-1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runApp(t, awsmock.NewServices("us-east-1"), tt.args...)
			assert.ErrorContains(t, err, "must")
		})
	}
}

func TestServeCommand_NoClients(t *testing.T) {
	_, err := runApp(t, nil, "serve", "--transport", "http")
	assert.ErrorContains(t, err, "failed to create AWS clients")
}

func TestClientOptions(t *testing.T) {
	t.Setenv("AWS_PROFILE", "")
	t.Setenv("AWS_CONFIG_FILE", "/does/not/exist")
	t.Setenv("AWS_SHARED_CREDENTIALS_FILE", "/does/not/exist")

	var opts []awsx.Option
	cmd := &cli.Command{
		Name:  "status",
		Flags: NewAWSFlags(),
		Metadata: map[string]any{
			"meta": meta.Meta{Settings: config.Settings{Region: "us-east-1"}},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			opts = clientOptions(cmd)
			return nil
		},
	}
	require.NoError(t, cmd.Run(context.Background(), []string{"status", "--region", "eu-central-1", "--max-attempts", "7"}))

	cfg, err := awsx.LoadAWSConfig(context.Background(), opts...)
	require.NoError(t, err)
	assert.Equal(t, "eu-central-1", cfg.Region)
	assert.Equal(t, 7, cfg.RetryMaxAttempts)
}

func TestGetMeta(t *testing.T) {
	assert.Equal(t, meta.Meta{}, GetMeta(nil))
	assert.Equal(t, meta.Meta{}, GetMeta(&cli.Command{}))
	assert.Equal(t, meta.Meta{}, GetMeta(&cli.Command{Metadata: map[string]any{"meta": "nope"}}))

	m := meta.Meta{Args: []string{"awsmcp", "status"}}
	assert.Equal(t, m, GetMeta(&cli.Command{Metadata: map[string]any{"meta": m}}))
}
