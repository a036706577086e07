package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"time"

	"github.com/rileyhilliard/slability/internal/errors"
	"github.com/rileyhilliard/slability/internal/monitor"
	"github.com/rileyhilliard/slability/internal/probe"
	"github.com/rileyhilliard/slability/internal/state"
	"github.com/rileyhilliard/slability/internal/ui"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// maxConcurrentProbes caps in-flight dials for a single status run.
const maxConcurrentProbes = 32

var statusJSON bool

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Probe every endpoint once and print the result",
	Long: `Probe every configured endpoint once, concurrently, and print a table
of results. Exits 1 if any endpoint is offline, so it works in scripts and
health checks.

Examples:
  slability status -a example.com:443
  slability status --json
  slability status --config ./hosts.yaml -t 500`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return statusCommand(cmd)
	},
}

func init() {
	statusCmd.Flags().BoolVar(&statusJSON, "json", false, "output in JSON format")
	rootCmd.AddCommand(statusCmd)
}

// StatusOutput represents the JSON output for status command.
type StatusOutput struct {
	Endpoints []EndpointStatus `json:"endpoints"`
	Online    int              `json:"online"`
	Total     int              `json:"total"`
}

// EndpointStatus is the outcome of probing one endpoint.
type EndpointStatus struct {
	Name      string    `json:"name"`
	Label     string    `json:"label,omitempty"`
	Target    string    `json:"target,omitempty"`
	Address   string    `json:"address"`
	State     string    `json:"state"`
	Since     time.Time `json:"since"`
	LatencyMS float64   `json:"latency_ms,omitempty"`
	Reason    string    `json:"reason,omitempty"`
	Error     string    `json:"error,omitempty"`
}

// Checker is the probe used by status. *probe.TCP satisfies it.
type Checker interface {
	Check(ctx context.Context, address string, timeout time.Duration) (time.Duration, error)
}

// statusCommand implements the status command logic.
func statusCommand(cmd *cobra.Command) error {
	out := cmd.OutOrStdout()

	endpoints, err := loadEndpoints(cmd)
	if err != nil {
		if statusJSON {
			_ = WriteJSONFromError(out, err)
		}
		return err
	}

	return runStatus(cmd.Context(), out, endpoints, probe.NewTCP(), statusJSON)
}

// runStatus probes, reports, and returns an ErrProbe error if anything is
// offline.
func runStatus(ctx context.Context, out io.Writer, endpoints []monitor.Endpoint, checker Checker, asJSON bool) error {
	results, err := probeAll(ctx, endpoints, checker)
	if err != nil {
		interrupted := errors.WrapWithCode(err, errors.ErrExec,
			"Status check interrupted",
			"Run 'slability status' again and let it finish")
		if asJSON {
			_ = WriteJSONFromError(out, interrupted)
		}
		return interrupted
	}

	report := StatusOutput{Endpoints: results, Total: len(results)}
	for _, r := range results {
		if r.State == state.Online.String() {
			report.Online++
		}
	}

	var failure error
	if offline := report.Total - report.Online; offline > 0 {
		failure = errors.New(errors.ErrProbe,
			fmt.Sprintf("%d of %d endpoints offline", offline, report.Total),
			"Run 'slability' for a live view, or retry with a longer --timeout")
	}

	if asJSON {
		if err := WriteJSONResult(out, report, failure); err != nil {
			return errors.WrapWithCode(err, errors.ErrExec,
				"Couldn't write JSON output",
				"Check stdout is writable")
		}
		return failure
	}

	rows := make([]ui.StatusTableRow, len(results))
	for i, r := range results {
		detail := r.Reason
		if r.State == state.Online.String() {
			detail = fmt.Sprintf("%.1fms", r.LatencyMS)
		}
		rows[i] = ui.StatusTableRow{
			State:   r.State,
			Name:    r.Name,
			Address: r.Address,
			Detail:  detail,
		}
	}

	fmt.Fprintln(out, ui.RenderStatusTable(rows))
	fmt.Fprintf(out, "%d/%d online\n", report.Online, report.Total)
	return failure
}

// probeAll probes every endpoint in parallel. Each result goes through a
// fresh state machine so it reads exactly like a dashboard snapshot after
// one sample. Results keep input order. Unreachable endpoints are results,
// not errors; the only error is ctx ending before every probe finished.
func probeAll(ctx context.Context, endpoints []monitor.Endpoint, checker Checker) ([]EndpointStatus, error) {
	results := make([]EndpointStatus, len(endpoints))
	var grp errgroup.Group
	grp.SetLimit(maxConcurrentProbes)

	for i, ep := range endpoints {
		grp.Go(func() error {
			latency, err := checker.Check(ctx, ep.Address, ep.Timeout)
			if ctx.Err() != nil {
				return ctx.Err()
			}

			machine := state.New()
			machine.RecordSample(err == nil)
			snap := machine.Snapshot()

			r := EndpointStatus{
				Name:    ep.Name(),
				Label:   ep.Label,
				Target:  ep.Target,
				Address: ep.Address,
				State:   snap.State.String(),
				Since:   snap.Since,
			}
			if err == nil {
				r.LatencyMS = float64(latency.Microseconds()) / 1000
			} else {
				r.Error = err.Error()
				r.Reason = probe.FailUnknown.String()
				var probeErr *probe.ProbeError
				if stderrors.As(err, &probeErr) {
					r.Reason = probeErr.Reason.String()
				}
			}
			results[i] = r
			return nil
		})
	}

	if err := grp.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
