package ui

import (
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
)

// TableColumn defines a table column with name and width.
type TableColumn struct {
	Title string
	Width int
}

// NewTable creates a new Bubbles table with default styling.
func NewTable(columns []TableColumn, rows []table.Row) table.Model {
	cols := make([]table.Column, len(columns))
	for i, c := range columns {
		cols[i] = table.Column{
			Title: c.Title,
			Width: c.Width,
		}
	}

	t := table.New(
		table.WithColumns(cols),
		table.WithRows(rows),
		table.WithFocused(false),
		table.WithHeight(len(rows)+2), // header line plus its bottom border
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(ColorMuted).
		BorderBottom(true).
		Bold(true).
		Foreground(ColorPrimary)
	s.Cell = s.Cell.
		Foreground(ColorPrimary)
	// Not focused, so nothing should look selected.
	s.Selected = s.Cell

	t.SetStyles(s)
	return t
}

// RenderSimpleTable renders a non-interactive table string.
// This is for CLI output (not TUI), producing a simple formatted table.
func RenderSimpleTable(columns []TableColumn, rows [][]string) string {
	if len(rows) == 0 {
		return ""
	}

	tableRows := make([]table.Row, len(rows))
	for i, row := range rows {
		tableRows[i] = table.Row(row)
	}

	t := NewTable(columns, tableRows)
	return t.View()
}

// StatusTableRow represents a row in the status table.
type StatusTableRow struct {
	State   string // "online", "offline" or "awaiting"
	Name    string // Label, or the address as written
	Address string // Resolved ip:port
	Detail  string // Latency or failure reason
}

// RenderStatusTable renders probe results as a formatted table. Column widths
// grow to fit the longest cell.
func RenderStatusTable(rows []StatusTableRow) string {
	if len(rows) == 0 {
		return "No endpoints configured"
	}

	columns := []TableColumn{
		{Title: "STATUS", Width: len("STATUS")},
		{Title: "ENDPOINT", Width: len("ENDPOINT")},
		{Title: "ADDRESS", Width: len("ADDRESS")},
		{Title: "DETAIL", Width: len("DETAIL")},
	}

	cells := make([][]string, len(rows))
	for i, row := range rows {
		cells[i] = []string{
			StateSymbol(row.State) + " " + row.State,
			row.Name,
			row.Address,
			row.Detail,
		}
		for c, cell := range cells[i] {
			if w := lipgloss.Width(cell); w > columns[c].Width {
				columns[c].Width = w
			}
		}
	}

	return RenderSimpleTable(columns, cells)
}

// StateSymbol maps a state name to its indicator glyph.
func StateSymbol(state string) string {
	switch state {
	case "online":
		return SymbolComplete
	case "offline":
		return SymbolFail
	default:
		return SymbolPending
	}
}

// StateColor maps a state name to its semantic color.
func StateColor(state string) lipgloss.Color {
	switch state {
	case "online":
		return ColorSuccess
	case "offline":
		return ColorError
	default:
		return ColorWarning
	}
}
