package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/bnema/dna-analyser-cli/internal/application"
	"github.com/bnema/dna-analyser-cli/internal/domain"
	"github.com/bnema/dna-analyser-cli/internal/logging"
	"github.com/bnema/dna-analyser-cli/internal/ports"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

type jobDoneMsg struct {
	err error
}

type jobEventMsg struct {
	name   string
	status string
	failed bool
}

type jobProgressModel struct {
	spinner spinner.Model
	label   string
	run     tea.Cmd
	order   []string
	status  map[string]string
	failed  map[string]bool
	err     error
	done    bool
	faint   lipgloss.Style
	bad     lipgloss.Style
}

func newJobProgressModel(label string, run tea.Cmd) jobProgressModel {
	s := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("69"))),
	)

	return jobProgressModel{
		spinner: s,
		label:   label,
		run:     run,
		status:  map[string]string{},
		failed:  map[string]bool{},
		faint:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		bad:     lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
	}
}

func (m jobProgressModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.run)
}

func (m jobProgressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case jobEventMsg:
		if _, seen := m.status[msg.name]; !seen {
			m.order = append(m.order, msg.name)
		}
		m.status[msg.name] = msg.status
		m.failed[msg.name] = msg.failed
		return m, nil
	case jobDoneMsg:
		m.done = true
		m.err = msg.err
		return m, tea.Quit
	default:
		return m, nil
	}
}

func (m jobProgressModel) View() string {
	if m.done {
		return ""
	}

	lines := []string{fmt.Sprintf("%s %s", m.spinner.View(), m.label)}
	for _, name := range m.order {
		style := m.faint
		if m.failed[name] {
			style = m.bad
		}
		lines = append(lines, style.Render(fmt.Sprintf("  %s: %s", name, m.status[name])))
	}
	return strings.Join(lines, "\n")
}

// programReporter forwards poller signals to a running bubbletea program.
type programReporter struct {
	program *tea.Program
}

func (r programReporter) Start(name string, kind domain.ResourceKind) {
	r.program.Send(jobEventMsg{name: name, status: kind.Label() + " accepted"})
}

func (r programReporter) Update(name string, status domain.BatchStatus) {
	r.program.Send(jobEventMsg{name: name, status: strings.ToLower(string(status))})
}

func (r programReporter) Finish(name string) {
	r.program.Send(jobEventMsg{name: name, status: "finished"})
}

func (r programReporter) Fail(name string, _ error) {
	r.program.Send(jobEventMsg{name: name, status: "failed", failed: true})
}

func runJobSpinner(ctx context.Context, output io.Writer, label string, run func(context.Context, ports.ProgressReporter) error) error {
	var program *tea.Program
	runCmd := func() tea.Msg {
		return jobDoneMsg{err: run(ctx, programReporter{program: program})}
	}

	program = tea.NewProgram(
		newJobProgressModel(label, runCmd),
		tea.WithInput(nil),
		tea.WithOutput(output),
		tea.WithContext(ctx),
	)

	finalModel, err := program.Run()
	if err != nil {
		return err
	}

	result, ok := finalModel.(jobProgressModel)
	if !ok {
		return fmt.Errorf("unexpected final spinner model type %T", finalModel)
	}

	return result.err
}

func (a *app) interactive(cmd *cobra.Command) bool {
	if a.jsonOutput {
		return false
	}
	file, ok := cmd.ErrOrStderr().(*os.File)
	return ok && isatty.IsTerminal(file.Fd())
}

// withSpinner runs fn behind a spinner on an interactive stderr.
func (a *app) withSpinner(cmd *cobra.Command, label string, fn func(context.Context) error) error {
	if !a.interactive(cmd) {
		return fn(cmd.Context())
	}
	return runJobSpinner(cmd.Context(), cmd.ErrOrStderr(), label, func(ctx context.Context, _ ports.ProgressReporter) error {
		return fn(ctx)
	})
}

// withWorkspace runs fn on a fresh workspace. Polled jobs draw a spinner on
// an interactive stderr and are logged otherwise.
func (a *app) withWorkspace(cmd *cobra.Command, label string, fn func(context.Context, *application.Workspace) error) error {
	run := func(ctx context.Context, progress ports.ProgressReporter) error {
		workspace, err := a.workspace(ctx, progress)
		if err != nil {
			return err
		}
		return fn(ctx, workspace)
	}

	if !a.interactive(cmd) {
		return run(cmd.Context(), logging.Reporter{})
	}
	return runJobSpinner(cmd.Context(), cmd.ErrOrStderr(), label, run)
}
