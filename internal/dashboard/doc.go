// Package dashboard implements the interactive terminal view over a set of
// monitored endpoints.
//
// The dashboard never probes anything itself. It holds an ordered list of
// Sources (in practice the monitors of a monitor.Set), re-reads every
// snapshot once per second and renders one card per endpoint:
//
//	┌──────────────────────────────────────────┐
//	│ web                                      │
//	│ IP: 192.0.2.10:443                       │
//	│ [ONLINE]  RESTARTS: 2                    │
//	│ SINCE: 2026-10-14 09:12:44 [381s]        │
//	│ PREV: offline for 12s                    │
//	└──────────────────────────────────────────┘
//
// # Keyboard Shortcuts
//
//	q, Ctrl+C   Quit
//	?           Toggle help overlay
//	Esc         Close help / detail view
//	Up/k        Select previous endpoint
//	Down/j      Select next endpoint
//	Home/End    Select first / last endpoint
//	s           Cycle sort order (config, name, state)
//	Enter       Show details for the selected endpoint
package dashboard
