// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package command

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"

	awsx "github.com/tfctl/awsmcp/aws"
	awsmock "github.com/tfctl/awsmcp/internal/aws/mock"
	"github.com/tfctl/awsmcp/internal/output"
	"github.com/tfctl/awsmcp/toolkit"
)

func TestProcessConsoleLine(t *testing.T) {
	svc := awsmock.NewServices("us-east-1")
	svc.STSAPI.On("GetCallerIdentity", mock.Anything, mock.Anything, mock.Anything).Return(&sts.GetCallerIdentityOutput{
		Account: awsv2.String("123"),
		Arn:     awsv2.String("arn:aws:iam::123:user/me"),
		UserId:  awsv2.String("AID"),
	}, nil)
	tk := toolkit.New(svc)
	jsonOut := output.Options{Format: output.FormatJSON}

	tests := []struct {
		name     string
		line     string
		opts     output.Options
		want     string
		contains string
	}{
		{name: "blank", line: "   ", want: ""},
		{name: "help", line: "help", contains: "<tool> [json-args]"},
		{name: "unknown tool", line: "nope", want: "Error: unknown tool: nope"},
		{name: "bad arguments", line: `aws_s3_list {"bucket":`, contains: "Error: arguments must be a JSON object"},
		{name: "missing argument", line: "aws_s3_list {}", contains: "Error: missing required argument"},
		{name: "tool without args", line: "aws_iam_whoami", opts: jsonOut, contains: `"account": "123"`},
		{name: "tool with spaced args", line: `aws_iam_whoami   {}`, opts: jsonOut, contains: `"user_id": "AID"`},
		{name: "shaped", line: "aws_status", opts: output.Options{Format: output.FormatJSON, Attrs: "status"}, contains: `"status": "connected"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := processConsoleLine(context.Background(), tk, tt.line, tt.opts)
			if tt.contains != "" {
				assert.Contains(t, got, tt.contains)
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestProcessConsoleLine_Tools(t *testing.T) {
	tk := toolkit.New(awsmock.NewServices("us-east-1"))

	got := processConsoleLine(context.Background(), tk, "tools", output.Options{})
	names := strings.Split(got, "\n")
	assert.Len(t, names, len(tk.Tools()))
	assert.Equal(t, "aws_ec2_list", names[0])
}

func TestConsoleHistory(t *testing.T) {
	file := filepath.Join(t.TempDir(), "history")

	assert.Empty(t, loadConsoleHistory(file))

	var history []string
	for i := 0; i < maxConsoleHistory+5; i++ {
		history = append(history, fmt.Sprintf("aws_status %d", i))
	}
	saveConsoleHistory(file, history)

	loaded := loadConsoleHistory(file)
	require.Len(t, loaded, maxConsoleHistory)
	assert.Equal(t, "aws_status 5", loaded[0])
	assert.Equal(t, history[len(history)-1], loaded[len(loaded)-1])
}

func TestConsoleModel_Update(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	var ran []string
	run := func(line string) string {
		ran = append(ran, line)
		return "ran " + line
	}
	m := initialConsoleModel(run, 19, "us-east-1")
	assert.Contains(t, m.output[0], "19 tools, region us-east-1")

	enter := tea.KeyMsg{Type: tea.KeyEnter}

	m.input.SetValue("aws_status")
	next, cmd := m.Update(enter)
	m = next.(consoleModel)
	assert.True(t, m.busy)
	assert.Equal(t, "", m.input.Value())
	assert.Contains(t, m.View(), "running")
	require.NotNil(t, cmd)

	// Enter is ignored while a line is running.
	m.input.SetValue("aws_iam_whoami")
	next, _ = m.Update(enter)
	m = next.(consoleModel)
	assert.Len(t, m.sessionHistory, 1)
	m.input.SetValue("")

	batch, ok := cmd().(tea.BatchMsg)
	require.True(t, ok)
	for _, c := range batch {
		if msg, ok := c().(consoleResultMsg); ok {
			next, _ = m.Update(msg)
			m = next.(consoleModel)
		}
	}
	assert.False(t, m.busy)
	assert.Equal(t, []string{"aws_status"}, ran)
	assert.Contains(t, m.View(), "ran aws_status")

	// Blank lines are not run or remembered.
	next, _ = m.Update(enter)
	m = next.(consoleModel)
	assert.Len(t, ran, 1)
	assert.Len(t, m.sessionHistory, 1)

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyUp})
	m = next.(consoleModel)
	assert.Equal(t, "aws_status", m.input.Value())

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = next.(consoleModel)
	assert.Equal(t, "", m.input.Value())

	assert.Equal(t, []string{"aws_status"}, loadConsoleHistory(getConsoleHistoryFile()))

	m.input.SetValue("exit")
	_, cmd = m.Update(enter)
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestConsoleCommandAction_WithoutMeta(t *testing.T) {
	orig := newServices
	newServices = func(context.Context, *cli.Command) (awsx.Services, error) {
		return nil, awsx.ErrNoCredentials
	}
	t.Cleanup(func() { newServices = orig })

	var err error
	assert.NotPanics(t, func() {
		err = consoleCommandAction(context.Background(), &cli.Command{})
	})
	assert.ErrorIs(t, err, awsx.ErrNoCredentials)
	assert.ErrorContains(t, err, "failed to create AWS clients")
}
