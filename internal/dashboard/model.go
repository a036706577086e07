package dashboard

import (
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rileyhilliard/slability/internal/state"
)

// DefaultRefresh is how often the dashboard re-reads snapshots.
const DefaultRefresh = time.Second

// Model is the Bubble Tea model for the monitoring dashboard.
type Model struct {
	sources   []Source
	snapshots []state.Status // indexed like sources
	order     []int          // display position -> source index
	selected  int            // display position

	title   string
	refresh time.Duration
	clock   func() time.Time
	started time.Time
	now     time.Time

	width     int
	height    int
	sortOrder SortOrder
	viewMode  ViewMode
	showHelp  bool
	quitting  bool

	keys KeyMap
	help help.Model
}

// Option configures a Model.
type Option func(*Model)

// WithClock sets the time source. Defaults to time.Now; nil is ignored.
func WithClock(now func() time.Time) Option {
	return func(m *Model) {
		if now != nil {
			m.clock = now
		}
	}
}

// WithTitle sets the header title.
func WithTitle(title string) Option {
	return func(m *Model) {
		m.title = title
	}
}

// WithRefresh overrides the redraw interval.
func WithRefresh(d time.Duration) Option {
	return func(m *Model) {
		if d > 0 {
			m.refresh = d
		}
	}
}

// tickMsg signals a periodic refresh.
type tickMsg time.Time

// New creates a dashboard over sources, shown in the given order.
func New(sources []Source, opts ...Option) Model {
	m := Model{
		sources:   sources,
		snapshots: make([]state.Status, len(sources)),
		order:     make([]int, len(sources)),
		title:     "slability",
		refresh:   DefaultRefresh,
		clock:     time.Now,
		keys:      DefaultKeyMap(),
		help:      help.New(),
	}
	for _, opt := range opts {
		opt(&m)
	}
	for i := range m.order {
		m.order[i] = i
	}

	m.started = m.clock()
	m.now = m.started
	m.readSnapshots()
	return m
}

// Init starts the refresh timer.
func (m Model) Init() tea.Cmd {
	return m.tickCmd()
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if handled, cmd := m.HandleKeyMsg(msg); handled {
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

	case tickMsg:
		m.now = m.clock()
		m.readSnapshots()
		return m, m.tickCmd()
	}

	return m, nil
}

// View renders the dashboard.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.showHelp {
		return m.renderHelpOverlay()
	}
	if m.viewMode == ViewDetail {
		return m.renderDetail()
	}
	return m.renderDashboard()
}

// OnlineCount returns how many endpoints were online at the last refresh.
func (m Model) OnlineCount() int {
	count := 0
	for _, s := range m.snapshots {
		if s.State == state.Online {
			count++
		}
	}
	return count
}

// Elapsed returns the time since the dashboard started, as of the last refresh.
func (m Model) Elapsed() time.Duration {
	return m.now.Sub(m.started)
}

// Selected returns the source under the selection highlight, or nil.
func (m Model) Selected() Source {
	if m.selected < 0 || m.selected >= len(m.order) {
		return nil
	}
	return m.sources[m.order[m.selected]]
}

func (m Model) tickCmd() tea.Cmd {
	return tea.Tick(m.refresh, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// readSnapshots copies every status once, so a frame renders a consistent
// view even though monitors keep writing.
func (m *Model) readSnapshots() {
	for i, src := range m.sources {
		m.snapshots[i] = src.Snapshot()
	}
	m.applySort()
}

// applySort reorders the display while keeping the same endpoint selected.
func (m *Model) applySort() {
	if len(m.order) == 0 {
		return
	}
	current := m.order[m.selected]

	for i := range m.order {
		m.order[i] = i
	}

	switch m.sortOrder {
	case SortByName:
		sort.SliceStable(m.order, func(a, b int) bool {
			na := strings.ToLower(m.sources[m.order[a]].Endpoint().Name())
			nb := strings.ToLower(m.sources[m.order[b]].Endpoint().Name())
			return na < nb
		})
	case SortByState:
		sort.SliceStable(m.order, func(a, b int) bool {
			return stateRank(m.snapshots[m.order[a]].State) < stateRank(m.snapshots[m.order[b]].State)
		})
	}

	for pos, idx := range m.order {
		if idx == current {
			m.selected = pos
			break
		}
	}
}

// stateRank orders problems first.
func stateRank(s state.State) int {
	switch s {
	case state.Offline:
		return 0
	case state.Unknown:
		return 1
	default:
		return 2
	}
}
