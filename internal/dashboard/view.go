package dashboard

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// cardWidth is the inner width of an endpoint card. It fits the longest
// fixed line, "SINCE: 2006-01-02 15:04:05 [1234567s]", with room to spare.
const cardWidth = 42

const quitHint = "Press 'q' to quit."

// renderDashboard renders the complete dashboard view.
func (m Model) renderDashboard() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")
	b.WriteString(m.renderCards())
	b.WriteString("\n")
	b.WriteString(m.renderFooter())

	return b.String()
}

// renderHeader renders the dashboard header with summary stats.
func (m Model) renderHeader() string {
	title := TitleStyle.Render(m.title)

	stats := LabelStyle.Render(fmt.Sprintf(" | %d endpoints | %d online | sort: %s",
		len(m.sources), m.OnlineCount(), m.sortOrder))

	return HeaderStyle.Render(title + stats)
}

// renderCards renders the grid of endpoint cards.
func (m Model) renderCards() string {
	if len(m.sources) == 0 {
		return LabelStyle.Render("No endpoints configured")
	}

	cards := make([]string, 0, len(m.order))
	for pos, idx := range m.order {
		cards = append(cards, m.renderCard(idx, pos == m.selected))
	}
	return m.layoutCards(cards)
}

// renderCard renders one endpoint.
func (m Model) renderCard(idx int, selected bool) string {
	ep := m.sources[idx].Endpoint()
	s := m.snapshots[idx]

	var lines []string
	if ep.HasLabel() {
		lines = append(lines, EndpointNameStyle.Render(ep.Label))
	}

	lines = append(lines, LabelStyle.Render("IP: ")+ValueStyle.Render(ep.Address))

	lines = append(lines,
		StatusStyle(s.State).Render(Badge(s.State))+"  "+
			LabelStyle.Render("RESTARTS: ")+ValueStyle.Render(fmt.Sprintf("%d", s.Restarts)))

	lines = append(lines,
		LabelStyle.Render("SINCE: ")+ValueStyle.Render(FormatSince(s))+" "+
			MutedStyle.Render(FormatSeconds(s.Elapsed(m.now))))

	if s.Previous != nil {
		lines = append(lines, MutedStyle.Render(fmt.Sprintf("PREV: %s for %s",
			s.Previous.State, formatDuration(s.Previous.Duration))))
	}

	style := CardStyle
	if selected {
		style = CardSelectedStyle
	}
	return style.Width(cardWidth).Render(strings.Join(lines, "\n"))
}

// layoutCards arranges cards in rows based on terminal width.
func (m Model) layoutCards(cards []string) string {
	cardsPerRow := 1
	if m.width > 0 {
		// margin + border + padding
		cardsPerRow = m.width / (cardWidth + 5)
		if cardsPerRow < 1 {
			cardsPerRow = 1
		}
	}

	var rows []string
	for i := 0; i < len(cards); i += cardsPerRow {
		end := i + cardsPerRow
		if end > len(cards) {
			end = len(cards)
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards[i:end]...))
	}

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// renderFooter puts the quit hint on the left and the dashboard uptime on
// the right.
func (m Model) renderFooter() string {
	left := quitHint + "  " + m.help.ShortHelpView(m.keys.ShortHelp())
	right := "Elapsed: " + fmt.Sprintf("%ds", int64(m.Elapsed().Seconds()))

	gap := 3
	if m.width > 0 {
		// FooterStyle pads one column each side.
		if free := m.width - 2 - lipgloss.Width(left) - lipgloss.Width(right); free > gap {
			gap = free
		}
	}

	return FooterStyle.Render(left + strings.Repeat(" ", gap) + right)
}

// renderDetail renders everything known about the selected endpoint.
func (m Model) renderDetail() string {
	src := m.Selected()
	if src == nil {
		return m.renderDashboard()
	}
	ep := src.Endpoint()
	s := m.snapshots[m.order[m.selected]]

	row := func(label, value string) string {
		return LabelStyle.Width(12).Render(label) + ValueStyle.Render(value)
	}

	lines := []string{
		EndpointNameStyle.Render(ep.Name()),
		"",
		row("Target", ep.Target),
		row("Address", ep.Address),
		row("Timeout", ep.Timeout.String()),
		row("Interval", ep.Interval.String()),
		"",
		row("State", StatusStyle(s.State).Render(Badge(s.State))),
		row("Since", FormatSince(s)+" "+FormatSeconds(s.Elapsed(m.now))),
		row("Restarts", fmt.Sprintf("%d", s.Restarts)),
		row("Samples", fmt.Sprintf("%d", s.Samples)),
	}

	if p := s.Previous; p != nil {
		lines = append(lines,
			"",
			row("Previous", fmt.Sprintf("%s from %s for %s",
				p.State, p.Since.Format(TimeLayout), formatDuration(p.Duration))))
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")
	b.WriteString(CardSelectedStyle.Render(strings.Join(lines, "\n")))
	b.WriteString("\n")
	b.WriteString(FooterStyle.Render("esc back | " + quitHint))
	return b.String()
}
