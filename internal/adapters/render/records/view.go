package records

import (
	"fmt"
	"strings"

	"github.com/bnema/dna-analyser-cli/internal/domain"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

const defaultMaxCellWidth = 40

type RenderOptions struct {
	// Columns limits and orders the rendered columns; empty means all.
	Columns []string
	// MaxCellWidth truncates long cells such as JSON counts; zero means 40,
	// negative disables truncation.
	MaxCellWidth int
}

func renderView(title string, t domain.Table, opts RenderOptions, s styles) string {
	t = project(t, opts.Columns)

	lines := []string{}
	if title != "" {
		lines = append(lines, s.title.Render(fmt.Sprintf("%s (%d)", title, t.Len())))
	}

	switch t.Len() {
	case 0:
		lines = append(lines, s.empty.Render("No records."))
	case 1:
		lines = append(lines, renderRecord(t, opts, s))
	default:
		lines = append(lines, renderTable(t, opts, s))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderTable(t domain.Table, opts RenderOptions, s styles) string {
	rows := make([][]string, 0, t.Len())
	for _, row := range t.Rows {
		cells := make([]string, len(row))
		for i, value := range row {
			cells[i] = truncate(value, opts.MaxCellWidth)
		}
		rows = append(rows, cells)
	}

	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(s.border).
		Headers(t.Columns...).
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return s.header
			}
			return s.cell
		}).
		String()
}

func renderRecord(t domain.Table, opts RenderOptions, s styles) string {
	width := 0
	for _, column := range t.Columns {
		width = max(width, len(column))
	}

	lines := make([]string, 0, len(t.Columns))
	for i, column := range t.Columns {
		value := ""
		if i < len(t.Rows[0]) {
			value = t.Rows[0][i]
		}
		key := s.key.Render(column + ":" + strings.Repeat(" ", width-len(column)))
		lines = append(lines, key+" "+s.value.Render(truncate(value, opts.MaxCellWidth)))
	}
	return strings.Join(lines, "\n")
}

// project keeps the requested columns in the requested order. Unknown
// columns are dropped.
func project(t domain.Table, columns []string) domain.Table {
	if len(columns) == 0 {
		return t
	}

	index := map[string]int{}
	for i, column := range t.Columns {
		index[column] = i
	}
	keep := make([]int, 0, len(columns))
	out := domain.Table{}
	for _, column := range columns {
		if i, ok := index[column]; ok {
			keep = append(keep, i)
			out.Columns = append(out.Columns, column)
		}
	}
	for _, row := range t.Rows {
		projected := make([]string, 0, len(keep))
		for _, i := range keep {
			if i < len(row) {
				projected = append(projected, row[i])
			} else {
				projected = append(projected, "")
			}
		}
		out.Rows = append(out.Rows, projected)
	}
	return out
}

func truncate(value string, limit int) string {
	if limit == 0 {
		limit = defaultMaxCellWidth
	}
	if limit < 0 {
		return value
	}
	runes := []rune(value)
	if len(runes) <= limit {
		return value
	}
	if limit <= 3 {
		return string(runes[:limit])
	}
	return string(runes[:limit-3]) + "..."
}
