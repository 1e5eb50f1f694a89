// Package cli implements metricsctl, a command line client for the metrics
// API and the dashboard sections built on it.
package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/chybatronik/goMetricsDashboard/internal/logging"
	"github.com/chybatronik/goMetricsDashboard/pkg/metricsapi"
)

// Output formats
const (
	OutputJSON = "json"
	OutputYAML = "yaml"
)

const defaultAPIURL = "http://localhost:8000"

// options holds the global flags shared by every subcommand
type options struct {
	apiURL    string
	token     string
	timeout   time.Duration
	retries   int
	output    string
	verbose   bool
	startDate string
	endDate   string
}

func (o *options) dateRange() (metricsapi.DateRange, error) {
	r := metricsapi.DateRange{StartDate: o.startDate, EndDate: o.endDate}
	if err := r.Validate(); err != nil {
		return metricsapi.DateRange{}, err
	}
	return r, nil
}

func (o *options) logger(w io.Writer, version string) *logging.Logger {
	level := logging.LevelWarn
	if o.verbose {
		level = logging.LevelDebug
	}
	return logging.New(w, level, logging.FormatText, "metricsctl", version)
}

func (o *options) client(logger *logging.Logger) (*metricsapi.Client, error) {
	return metricsapi.New(metricsapi.Config{
		BaseURL:   o.apiURL,
		Token:     o.token,
		Timeout:   o.timeout,
		UserAgent: "metricsctl",
		Retry:     metricsapi.RetryPolicy{MaxRetries: o.retries},
		Logger:    logger.Logger,
	})
}

// NewRootCommand builds the metricsctl command tree
func NewRootCommand(version string) *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "metricsctl",
		Short: "Query the engineering metrics API",
		Long: `metricsctl reads source code, pipeline and pull request metrics.

Endpoints:
  metricsctl code entity-churn --top 10
  metricsctl pipelines summary --start-date 2024-01-01

Dashboard sections:
  metricsctl dashboard insights -o yaml`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			switch opts.output {
			case OutputJSON, OutputYAML:
			default:
				return fmt.Errorf("unsupported output format %q (want json or yaml)", opts.output)
			}
			if opts.retries < 0 {
				return fmt.Errorf("--retries must not be negative")
			}
			_, err := opts.dateRange()
			return err
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.apiURL, "api-url", envOr("METRICS_API_URL", defaultAPIURL), "Metrics API base URL")
	flags.StringVar(&opts.token, "token", os.Getenv("METRICS_API_TOKEN"), "Bearer token for the metrics API")
	flags.DurationVar(&opts.timeout, "timeout", 30*time.Second, "Timeout per HTTP attempt")
	flags.IntVar(&opts.retries, "retries", 0, "Retries after a failed attempt")
	flags.StringVarP(&opts.output, "output", "o", OutputJSON, "Output format (json, yaml)")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Log every request to stderr")
	flags.StringVar(&opts.startDate, "start-date", "", "Range start, YYYY-MM-DD")
	flags.StringVar(&opts.endDate, "end-date", "", "Range end, YYYY-MM-DD")

	root.AddGroup(
		&cobra.Group{ID: "metrics", Title: "Metrics Endpoints:"},
		&cobra.Group{ID: "dashboard", Title: "Dashboard:"},
	)
	for _, group := range metricsapi.Groups() {
		cmd := newGroupCommand(opts, group, version)
		cmd.GroupID = "metrics"
		root.AddCommand(cmd)
	}

	dash := newDashboardCommand(opts, version)
	dash.GroupID = "dashboard"
	cfg := newConfigurationCommand(opts, version)
	cfg.GroupID = "dashboard"
	root.AddCommand(dash, cfg)

	return root
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
