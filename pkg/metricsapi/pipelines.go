package metricsapi

import "context"

// PipelineAPI groups the /pipelines endpoints
type PipelineAPI struct {
	c *Client
}

// ByStatus fetches run counts per status
func (a *PipelineAPI) ByStatus(ctx context.Context, r DateRange) ([]StatusCount, error) {
	return Fetch[[]StatusCount](ctx, a.c, PathPipelinesByStatus, r.Params())
}

// JobsByStatus fetches job counts per job and status
func (a *PipelineAPI) JobsByStatus(ctx context.Context, r DateRange) ([]JobStatusCount, error) {
	return Fetch[[]JobStatusCount](ctx, a.c, PathPipelinesJobsByStatus, r.Params())
}

// Summary fetches the pipeline run summary
func (a *PipelineAPI) Summary(ctx context.Context, r DateRange) (PipelineSummary, error) {
	return Fetch[PipelineSummary](ctx, a.c, PathPipelinesSummary, r.Params())
}

// RunsDuration fetches the average duration per workflow
func (a *PipelineAPI) RunsDuration(ctx context.Context, r DateRange) ([]RunDuration, error) {
	return Fetch[[]RunDuration](ctx, a.c, PathPipelinesRunsDuration, r.Params())
}

// DeploymentFrequency fetches deployments per date
func (a *PipelineAPI) DeploymentFrequency(ctx context.Context, r DateRange) ([]DeploymentFrequency, error) {
	return Fetch[[]DeploymentFrequency](ctx, a.c, PathPipelinesDeploymentFreq, r.Params())
}

// RunsBy fetches run counts per period and workflow
func (a *PipelineAPI) RunsBy(ctx context.Context, r DateRange) ([]RunsBy, error) {
	return Fetch[[]RunsBy](ctx, a.c, PathPipelinesRunsBy, r.Params())
}

// JobsAverageTime fetches the average execution time per job
func (a *PipelineAPI) JobsAverageTime(ctx context.Context, r DateRange) ([]JobAverageTime, error) {
	return Fetch[[]JobAverageTime](ctx, a.c, PathPipelinesJobsAverageTime, r.Params())
}
