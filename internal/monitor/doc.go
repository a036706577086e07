// Package monitor runs one polling goroutine per endpoint and keeps its
// reachability history.
//
// # Architecture
//
//	Endpoint  - Immutable target description: label, resolved address, timings
//	Monitor   - Owns a state.Machine and the goroutine that feeds it
//	Set       - Ordered collection of monitors started and stopped together
//
// A Monitor's loop is probe, record, sleep, repeat. Probes for one endpoint
// never overlap; monitors for different endpoints share nothing. Readers call
// Snapshot at any time and always get a consistent copy.
//
// # Lifecycle
//
//	set := monitor.StartAll(ctx, endpoints, monitor.WithLogger(log))
//	defer set.Stop()
//
// Stop cancels every loop and waits for it to exit. A probe cut short by
// cancellation is discarded rather than recorded as offline.
package monitor
