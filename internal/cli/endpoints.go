package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chybatronik/goMetricsDashboard/pkg/metricsapi"
)

var groupSummaries = map[metricsapi.Group]string{
	metricsapi.GroupSourceCode:   "Source code metrics from the git history",
	metricsapi.GroupPipelines:    "CI pipeline and deployment metrics",
	metricsapi.GroupPullRequests: "Pull request metrics",
}

// newGroupCommand creates one subcommand per endpoint registered under group
func newGroupCommand(opts *options, group metricsapi.Group, version string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   string(group),
		Short: groupSummaries[group],
		Args:  cobra.NoArgs,
	}

	for _, e := range metricsapi.Endpoints() {
		if e.Group != group {
			continue
		}
		cmd.AddCommand(newEndpointCommand(opts, e, version))
	}
	return cmd
}

func newEndpointCommand(opts *options, e metricsapi.Endpoint, version string) *cobra.Command {
	var top int

	cmd := &cobra.Command{
		Use:   e.Name,
		Short: "GET " + e.Path,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var limit *int
			if cmd.Flags().Changed("top") {
				if top <= 0 {
					return fmt.Errorf("--top must be positive")
				}
				limit = &top
			}

			rng, err := opts.dateRange()
			if err != nil {
				return err
			}
			client, err := opts.client(opts.logger(cmd.ErrOrStderr(), version))
			if err != nil {
				return err
			}

			result, err := metricsapi.Call[any](cmd.Context(), client, e, rng, limit)
			if err != nil {
				return fmt.Errorf("%s: %w", e.Path, err)
			}
			return render(cmd.OutOrStdout(), opts.output, result)
		},
	}

	if e.LimitParam != "" {
		cmd.Flags().IntVar(&top, "top", 0, fmt.Sprintf("Limit the result (sent as %s)", e.LimitParam))
	}
	return cmd
}
