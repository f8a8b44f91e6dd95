// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/tfctl/awsmcp/internal/config"
	"github.com/tfctl/awsmcp/internal/meta"
	"github.com/tfctl/awsmcp/internal/output"
	"github.com/tfctl/awsmcp/toolkit"
)

const maxConsoleHistory = 1000

// consoleCommandAction opens an interactive console over the agent tools.
func consoleCommandAction(ctx context.Context, cmd *cli.Command) error {
	meta := GetMeta(cmd)
	log.Debugf("Executing action for %v", meta.CommandArgs())

	svc, err := newServices(ctx, cmd)
	if err != nil {
		return fmt.Errorf("failed to create AWS clients: %w", err)
	}

	tk := toolkit.New(svc)
	opts := renderOptions(cmd)
	run := func(line string) string {
		return processConsoleLine(ctx, tk, line, opts)
	}

	p := tea.NewProgram(initialConsoleModel(run, len(tk.Tools()), svc.Region()))
	_, err = p.Run()
	return err
}

// consoleModel represents the Bubble Tea model for the console command.
type consoleModel struct {
	input          textinput.Model
	spinner        spinner.Model
	busy           bool
	history        []string // Full history for navigation (includes file history)
	sessionHistory []string // Only lines from this session (matches with outputs)
	histIndex      int
	output         []string
	run            func(line string) string
}

// consoleResultMsg carries the text of a finished line back to Update.
type consoleResultMsg string

func initialConsoleModel(run func(string) string, tools int, region string) consoleModel {
	ti := textinput.New()
	ti.Placeholder = ""
	ti.Focus()
	ti.CharLimit = 8192
	ti.Width = 999
	ti.Prompt = ""
	ti.Cursor.SetMode(cursor.CursorBlink)

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return consoleModel{
		input:     ti,
		spinner:   sp,
		history:   loadConsoleHistory(getConsoleHistoryFile()),
		histIndex: -1,
		output: []string{
			fmt.Sprintf("AWS console ready. %d tools, region %s.", tools, region),
			"Type 'help' for syntax, 'exit' or Ctrl+C to quit.",
		},
		run: run,
	}
}

func (m consoleModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m consoleModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case consoleResultMsg:
		m.busy = false
		m.output = append(m.output, string(msg))
		return m, nil

	case spinner.TickMsg:
		if !m.busy {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "enter":
			entry := strings.TrimSpace(m.input.Value())
			if entry == "exit" || entry == "quit" {
				return m, tea.Quit
			}
			// One line at a time; the result of the previous one is pending.
			if m.busy || entry == "" {
				return m, nil
			}
			m.history = append(m.history, entry)
			m.sessionHistory = append(m.sessionHistory, entry)
			m.histIndex = -1
			m.busy = true
			saveConsoleHistory(getConsoleHistoryFile(), m.history)
			m.input.SetValue("")

			run := m.run
			return m, tea.Batch(m.spinner.Tick, func() tea.Msg {
				return consoleResultMsg(run(entry))
			})

		case "up":
			if len(m.history) == 0 {
				return m, nil
			}
			if m.histIndex == -1 {
				m.histIndex = len(m.history) - 1
			} else if m.histIndex > 0 {
				m.histIndex--
			}
			m.input.SetValue(m.history[m.histIndex])
			m.input.CursorEnd()
			return m, nil

		case "down":
			if len(m.history) == 0 {
				return m, nil
			}
			if m.histIndex >= 0 && m.histIndex < len(m.history)-1 {
				m.histIndex++
				m.input.SetValue(m.history[m.histIndex])
				m.input.CursorEnd()
			} else {
				m.histIndex = -1
				m.input.SetValue("")
			}
			return m, nil

		case "ctrl+c", "esc":
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m consoleModel) View() string {
	// AWS orange for the prompt
	promptStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#FF9900"))

	var lines []string

	if len(m.output) >= 2 {
		lines = append(lines, m.output[0], m.output[1])
	}

	// Each line entered this session followed by its result. The first two
	// outputs are the banner.
	for i := 0; i < len(m.sessionHistory); i++ {
		lines = append(lines, promptStyle.Render("> ")+m.sessionHistory[i])
		if (i + 2) < len(m.output) {
			lines = append(lines, m.output[i+2])
		}
	}

	if m.busy {
		lines = append(lines, m.spinner.View()+" running")
		return strings.Join(lines, "\n")
	}

	lines = append(lines, promptStyle.Render("> ")+m.input.View())

	return strings.Join(lines, "\n")
}

// processConsoleLine runs one console line and returns the text to show.
// A line is a tool name optionally followed by a JSON object of arguments.
func processConsoleLine(ctx context.Context, tk *toolkit.Toolkit, line string, opts output.Options) string {
	line = strings.TrimSpace(line)
	switch line {
	case "":
		return ""
	case "help":
		return getConsoleHelp()
	case "tools":
		var names []string
		for _, t := range tk.Tools() {
			names = append(names, t.Name())
		}
		return strings.Join(names, "\n")
	}

	name, rest, _ := strings.Cut(line, " ")
	args := map[string]any{}
	if rest = strings.TrimSpace(rest); rest != "" {
		if err := json.Unmarshal([]byte(rest), &args); err != nil {
			return fmt.Sprintf("Error: arguments must be a JSON object: %v", err)
		}
	}

	out, err := tk.Call(ctx, name, args)
	if err != nil {
		return "Error: " + err.Error()
	}

	var b strings.Builder
	if err := output.Render(&b, out, opts); err != nil {
		log.WithError(err).Debug("console render failed")
		return out
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// getConsoleHelp returns the help text as a string
func getConsoleHelp() string {
	return `Syntax:
  <tool> [json-args]

  tools                              - List tool names
  help                               - This text
  exit, quit                         - Leave the console

  Examples:
     aws_status
     aws_ec2_list {"state": "running"}
     aws_s3_list {"bucket": "my-bucket", "prefix": "logs/", "max_items": 10}
     aws_logs_tail {"log_group": "/aws/lambda/api", "limit": 20}

  Navigation:
     ↑/↓ arrows                       - Navigate history
     Ctrl+C                           - Exit`
}

// getConsoleHistoryFile returns the path to the console history file
func getConsoleHistoryFile() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".awsmcp_console_history"
	}
	return filepath.Join(homeDir, ".awsmcp_console_history")
}

func loadConsoleHistory(filename string) []string {
	var history []string

	file, err := os.Open(filename)
	if err != nil {
		return history
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			history = append(history, line)
		}
	}

	return history
}

// saveConsoleHistory keeps the newest maxConsoleHistory lines. Failures are
// ignored; history is a convenience.
func saveConsoleHistory(filename string, history []string) {
	start := 0
	if len(history) > maxConsoleHistory {
		start = len(history) - maxConsoleHistory
	}

	file, err := os.Create(filename)
	if err != nil {
		return
	}
	defer file.Close()

	w := bufio.NewWriter(file)
	for i := start; i < len(history); i++ {
		fmt.Fprintln(w, history[i])
	}
	w.Flush()
}

// consoleCommandBuilder constructs the cli.Command for "console" and wires up
// metadata, flags, and the action handler.
func consoleCommandBuilder(meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "console",
		Usage:     "interactive tool console",
		UsageText: "awsmcp console [options]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags: append(NewAWSFlags("console", config.File()), NewGlobalFlags("console")...),
		Action: consoleCommandAction,
	}
}
