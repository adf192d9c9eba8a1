package records

import (
	"errors"
	"io"

	"github.com/bnema/dna-analyser-cli/internal/domain"
	tea "github.com/charmbracelet/bubbletea"
)

var ErrUnexpectedRenderModel = errors.New("unexpected final bubbletea model type")

type renderReadyMsg struct{}

type model struct {
	title  string
	table  domain.Table
	opts   RenderOptions
	styles styles
	output string
}

func newModel(title string, table domain.Table, opts RenderOptions) model {
	return model{
		title:  title,
		table:  table,
		opts:   opts,
		styles: newStyles(),
	}
}

func (m model) Init() tea.Cmd {
	return func() tea.Msg {
		return renderReadyMsg{}
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg.(type) {
	case renderReadyMsg:
		m.output = renderView(m.title, m.table, m.opts, m.styles)
		return m, tea.Quit
	default:
		return m, nil
	}
}

func (m model) View() string {
	return m.output
}

// Render draws table under title. A table with a single row is drawn as a
// vertical key/value listing.
func Render(title string, table domain.Table, opts RenderOptions) (string, error) {
	p := tea.NewProgram(
		newModel(title, table, opts),
		tea.WithInput(nil),
		tea.WithOutput(io.Discard),
	)

	finalModel, err := p.Run()
	if err != nil {
		return "", err
	}

	rendered, ok := finalModel.(model)
	if !ok {
		return "", ErrUnexpectedRenderModel
	}

	return rendered.View(), nil
}
