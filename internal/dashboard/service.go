package dashboard

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/chybatronik/goMetricsDashboard/internal/logging"
	"github.com/chybatronik/goMetricsDashboard/pkg/metricsapi"
)

// DefaultTop is the ranking limit used by the source code section
const DefaultTop = 20

// Insights is the landing view
type Insights struct {
	PairingIndex metricsapi.PairingIndex       `json:"pairing_index"`
	Pipelines    metricsapi.PipelineSummary    `json:"pipelines"`
	PullRequests metricsapi.PullRequestSummary `json:"pull_requests"`
}

// Pipelines is the CI/CD view
type Pipelines struct {
	JobsByStatus        []metricsapi.JobStatusCount      `json:"jobs_by_status"`
	RunsDuration        []metricsapi.RunDuration         `json:"runs_duration"`
	JobsAverageTime     []metricsapi.JobAverageTime      `json:"jobs_average_time"`
	ByStatus            []metricsapi.StatusCount         `json:"by_status"`
	DeploymentFrequency []metricsapi.DeploymentFrequency `json:"deployment_frequency"`
}

// SourceCode is the repository analysis view
type SourceCode struct {
	EntityChurn     []metricsapi.EntityChurn     `json:"entity_churn"`
	Coupling        []metricsapi.Coupling        `json:"coupling"`
	EntityEffort    []metricsapi.EntityEffort    `json:"entity_effort"`
	CodeChurn       []metricsapi.CodeChurn       `json:"code_churn"`
	EntityOwnership []metricsapi.EntityOwnership `json:"entity_ownership"`
}

// PullRequests is the review flow view
type PullRequests struct {
	ByAuthor          []metricsapi.AuthorCount     `json:"by_author"`
	AverageReviewTime []metricsapi.ReviewTime      `json:"average_review_time"`
	OpenThroughTime   []metricsapi.OpenThroughTime `json:"open_through_time"`
	AverageOpenBy     []metricsapi.AverageOpenBy   `json:"average_open_by"`
	AverageComments   metricsapi.AverageComments   `json:"average_comments"`
}

// SectionLoader loads one section for a date range
type SectionLoader interface {
	Load(ctx context.Context, section Section, r metricsapi.DateRange) (any, error)
}

// Options tunes a Service
type Options struct {
	// Top limits the ranked source code lists; zero means DefaultTop
	Top int
	// SectionTimeout bounds a whole section load; zero means no bound
	SectionTimeout time.Duration
	Logger         *logging.Logger
}

// Service loads dashboard sections. Every call of a section starts at once
// and the section resolves only when all of them succeed. The first failure
// cancels the remaining calls and the partial results are dropped.
type Service struct {
	client  *metricsapi.Client
	top     int
	timeout time.Duration
	logger  *logging.Logger
}

// NewService creates a Service backed by client
func NewService(client *metricsapi.Client, opts Options) *Service {
	top := opts.Top
	if top <= 0 {
		top = DefaultTop
	}
	return &Service{
		client:  client,
		top:     top,
		timeout: opts.SectionTimeout,
		logger:  opts.Logger,
	}
}

// Load dispatches to the loader of section
func (s *Service) Load(ctx context.Context, section Section, r metricsapi.DateRange) (any, error) {
	switch section {
	case SectionInsights:
		return s.Insights(ctx, r)
	case SectionPipelines:
		return s.Pipelines(ctx, r)
	case SectionSourceCode:
		return s.SourceCode(ctx, r)
	case SectionPullRequests:
		return s.PullRequests(ctx, r)
	default:
		return nil, &UnknownSectionError{Name: string(section)}
	}
}

func (s *Service) group(ctx context.Context, section Section) (*errgroup.Group, context.Context, context.CancelFunc) {
	cancel := context.CancelFunc(func() {})
	if s.timeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
	}
	g, gctx := errgroup.WithContext(ctx)
	if s.logger != nil {
		s.logger.WithSection(section.String()).Debug("loading section")
	}
	return g, gctx, cancel
}

func (s *Service) logFailure(section Section, r metricsapi.DateRange, err error) {
	if s.logger == nil || metricsapi.IsCanceled(err) {
		return
	}
	s.logger.WithSection(section.String()).UpstreamError("section load failed", err,
		logging.FieldStartDate, r.StartDate,
		logging.FieldEndDate, r.EndDate,
	)
}

// Insights loads the pairing index with the pipeline and pull request summaries
func (s *Service) Insights(ctx context.Context, r metricsapi.DateRange) (Insights, error) {
	g, gctx, cancel := s.group(ctx, SectionInsights)
	defer cancel()

	var out Insights
	g.Go(func() (err error) {
		out.PairingIndex, err = s.client.SourceCode().PairingIndex(gctx, r)
		return err
	})
	g.Go(func() (err error) {
		out.Pipelines, err = s.client.Pipelines().Summary(gctx, r)
		return err
	})
	g.Go(func() (err error) {
		out.PullRequests, err = s.client.PullRequests().Summary(gctx, r)
		return err
	})

	if err := g.Wait(); err != nil {
		s.logFailure(SectionInsights, r, err)
		return Insights{}, err
	}
	return out, nil
}

// Pipelines loads the CI/CD charts
func (s *Service) Pipelines(ctx context.Context, r metricsapi.DateRange) (Pipelines, error) {
	g, gctx, cancel := s.group(ctx, SectionPipelines)
	defer cancel()

	api := s.client.Pipelines()
	var out Pipelines
	g.Go(func() (err error) {
		out.JobsByStatus, err = api.JobsByStatus(gctx, r)
		return err
	})
	g.Go(func() (err error) {
		out.RunsDuration, err = api.RunsDuration(gctx, r)
		return err
	})
	g.Go(func() (err error) {
		out.JobsAverageTime, err = api.JobsAverageTime(gctx, r)
		return err
	})
	g.Go(func() (err error) {
		out.ByStatus, err = api.ByStatus(gctx, r)
		return err
	})
	g.Go(func() (err error) {
		out.DeploymentFrequency, err = api.DeploymentFrequency(gctx, r)
		return err
	})

	if err := g.Wait(); err != nil {
		s.logFailure(SectionPipelines, r, err)
		return Pipelines{}, err
	}
	return out, nil
}

// SourceCode loads the repository analysis charts
func (s *Service) SourceCode(ctx context.Context, r metricsapi.DateRange) (SourceCode, error) {
	g, gctx, cancel := s.group(ctx, SectionSourceCode)
	defer cancel()

	api := s.client.SourceCode()
	top := s.top
	var out SourceCode
	g.Go(func() (err error) {
		out.EntityChurn, err = api.EntityChurn(gctx, r, &top)
		return err
	})
	g.Go(func() (err error) {
		out.Coupling, err = api.Coupling(gctx, r, &top)
		return err
	})
	g.Go(func() (err error) {
		out.EntityEffort, err = api.EntityEffort(gctx, r, &top)
		return err
	})
	g.Go(func() (err error) {
		out.CodeChurn, err = api.CodeChurn(gctx, r)
		return err
	})
	g.Go(func() (err error) {
		out.EntityOwnership, err = api.EntityOwnership(gctx, r)
		return err
	})

	if err := g.Wait(); err != nil {
		s.logFailure(SectionSourceCode, r, err)
		return SourceCode{}, err
	}
	return out, nil
}

// PullRequests loads the review flow charts
func (s *Service) PullRequests(ctx context.Context, r metricsapi.DateRange) (PullRequests, error) {
	g, gctx, cancel := s.group(ctx, SectionPullRequests)
	defer cancel()

	api := s.client.PullRequests()
	var out PullRequests
	g.Go(func() (err error) {
		out.ByAuthor, err = api.ByAuthor(gctx, r)
		return err
	})
	g.Go(func() (err error) {
		out.AverageReviewTime, err = api.AverageReviewTime(gctx, r)
		return err
	})
	g.Go(func() (err error) {
		out.OpenThroughTime, err = api.OpenThroughTime(gctx, r)
		return err
	})
	g.Go(func() (err error) {
		out.AverageOpenBy, err = api.AverageOpenBy(gctx, r)
		return err
	})
	g.Go(func() (err error) {
		out.AverageComments, err = api.AverageComments(gctx, r)
		return err
	})

	if err := g.Wait(); err != nil {
		s.logFailure(SectionPullRequests, r, err)
		return PullRequests{}, err
	}
	return out, nil
}
