package dashboard

import (
	"fmt"
	"time"

	"github.com/rileyhilliard/slability/internal/state"
)

// TimeLayout is how episode start times are shown.
const TimeLayout = "2006-01-02 15:04:05"

// FormatSince renders when the current episode began, or N/A before the
// first probe.
func FormatSince(s state.Status) string {
	if !s.Known() {
		return "N/A"
	}
	return s.Since.Format(TimeLayout)
}

// FormatSeconds renders a duration as whole seconds in brackets, e.g. [42s].
func FormatSeconds(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	return fmt.Sprintf("[%ds]", int64(d/time.Second))
}

// Badge is the bracketed status indicator for a card.
func Badge(s state.State) string {
	switch s {
	case state.Online:
		return "[ONLINE]"
	case state.Offline:
		return "[OFFLINE]"
	default:
		return "[WAIT]"
	}
}

// formatDuration renders a duration compactly for the detail view and the
// previous episode line.
func formatDuration(d time.Duration) string {
	d = d.Truncate(time.Second)
	switch {
	case d < time.Minute:
		return fmt.Sprintf("%ds", int(d.Seconds()))
	case d < time.Hour:
		return fmt.Sprintf("%dm%02ds", int(d.Minutes()), int(d.Seconds())%60)
	default:
		return fmt.Sprintf("%dh%02dm", int(d.Hours()), int(d.Minutes())%60)
	}
}
