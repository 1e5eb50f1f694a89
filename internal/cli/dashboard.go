package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chybatronik/goMetricsDashboard/internal/dashboard"
)

func newDashboardCommand(opts *options, version string) *cobra.Command {
	var top int

	valid := make([]string, 0, len(dashboard.Sections()))
	for _, s := range dashboard.Sections() {
		valid = append(valid, s.String())
	}

	cmd := &cobra.Command{
		Use:       "dashboard <section>",
		Short:     "Load every metric behind a dashboard section",
		Long:      fmt.Sprintf("Load a dashboard section in one call. Sections: %v", valid),
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: valid,
		RunE: func(cmd *cobra.Command, args []string) error {
			section, err := dashboard.ParseSection(args[0])
			if err != nil {
				return err
			}
			rng, err := opts.dateRange()
			if err != nil {
				return err
			}

			logger := opts.logger(cmd.ErrOrStderr(), version)
			client, err := opts.client(logger)
			if err != nil {
				return err
			}

			svc := dashboard.NewService(client, dashboard.Options{Top: top, Logger: logger})
			data, err := svc.Load(cmd.Context(), section, rng)
			if err != nil {
				return fmt.Errorf("load %s: %w", section, err)
			}
			return render(cmd.OutOrStdout(), opts.output, data)
		},
	}
	cmd.Flags().IntVar(&top, "top", dashboard.DefaultTop, "Limit of the ranked source code lists")
	return cmd
}

func newConfigurationCommand(opts *options, version string) *cobra.Command {
	return &cobra.Command{
		Use:   "configuration",
		Short: "Show the metrics API configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := opts.client(opts.logger(cmd.ErrOrStderr(), version))
			if err != nil {
				return err
			}
			cfg, err := client.Configuration(cmd.Context())
			if err != nil {
				return fmt.Errorf("configuration: %w", err)
			}
			return render(cmd.OutOrStdout(), opts.output, cfg)
		},
	}
}
