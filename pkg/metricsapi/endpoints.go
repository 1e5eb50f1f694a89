package metricsapi

import "context"

// Group names a family of metrics endpoints; its value is the path prefix
type Group string

// Endpoint groups
const (
	GroupSourceCode   Group = "code"
	GroupPipelines    Group = "pipelines"
	GroupPullRequests Group = "pull-requests"
)

// Endpoint paths
const (
	PathPairingIndex    = "/code/pairing-index"
	PathEntityChurn     = "/code/entity-churn"
	PathCodeChurn       = "/code/code-churn"
	PathCoupling        = "/code/coupling"
	PathEntityEffort    = "/code/entity-effort"
	PathEntityOwnership = "/code/entity-ownership"

	PathPipelinesByStatus        = "/pipelines/by-status"
	PathPipelinesJobsByStatus    = "/pipelines/jobs-by-status"
	PathPipelinesSummary         = "/pipelines/summary"
	PathPipelinesRunsDuration    = "/pipelines/runs-duration"
	PathPipelinesDeploymentFreq  = "/pipelines/deployment-frequency"
	PathPipelinesRunsBy          = "/pipelines/runs-by"
	PathPipelinesJobsAverageTime = "/pipelines/jobs-average-time"

	PathPullRequestsSummary           = "/pull-requests/summary"
	PathPullRequestsByAuthor          = "/pull-requests/by-author"
	PathPullRequestsAverageReviewTime = "/pull-requests/average-review-time"
	PathPullRequestsThroughTime       = "/pull-requests/through-time"
	PathPullRequestsAverageOpenBy     = "/pull-requests/average-open-by"
	PathPullRequestsAverageComments   = "/pull-requests/average-comments"

	PathConfiguration = "/configuration"
)

// Endpoint describes one metrics API endpoint
type Endpoint struct {
	Group Group
	// Name is the path suffix, e.g. "entity-churn"
	Name string
	Path string
	// LimitParam is the result-limit parameter the endpoint accepts, if any
	LimitParam string
}

var endpoints = []Endpoint{
	{GroupSourceCode, "pairing-index", PathPairingIndex, ""},
	{GroupSourceCode, "entity-churn", PathEntityChurn, ParamTop},
	{GroupSourceCode, "code-churn", PathCodeChurn, ""},
	{GroupSourceCode, "coupling", PathCoupling, ParamTop},
	{GroupSourceCode, "entity-effort", PathEntityEffort, ParamTopN},
	{GroupSourceCode, "entity-ownership", PathEntityOwnership, ""},

	{GroupPipelines, "by-status", PathPipelinesByStatus, ""},
	{GroupPipelines, "jobs-by-status", PathPipelinesJobsByStatus, ""},
	{GroupPipelines, "summary", PathPipelinesSummary, ""},
	{GroupPipelines, "runs-duration", PathPipelinesRunsDuration, ""},
	{GroupPipelines, "deployment-frequency", PathPipelinesDeploymentFreq, ""},
	{GroupPipelines, "runs-by", PathPipelinesRunsBy, ""},
	{GroupPipelines, "jobs-average-time", PathPipelinesJobsAverageTime, ""},

	{GroupPullRequests, "summary", PathPullRequestsSummary, ""},
	{GroupPullRequests, "by-author", PathPullRequestsByAuthor, ""},
	{GroupPullRequests, "average-review-time", PathPullRequestsAverageReviewTime, ""},
	{GroupPullRequests, "through-time", PathPullRequestsThroughTime, ""},
	{GroupPullRequests, "average-open-by", PathPullRequestsAverageOpenBy, ""},
	{GroupPullRequests, "average-comments", PathPullRequestsAverageComments, ""},
}

// Endpoints returns every metrics endpoint in group order
func Endpoints() []Endpoint {
	out := make([]Endpoint, len(endpoints))
	copy(out, endpoints)
	return out
}

// Groups returns the endpoint groups in display order
func Groups() []Group {
	return []Group{GroupSourceCode, GroupPipelines, GroupPullRequests}
}

// Lookup finds an endpoint by group and name
func Lookup(group Group, name string) (Endpoint, bool) {
	for _, e := range endpoints {
		if e.Group == group && e.Name == name {
			return e, true
		}
	}
	return Endpoint{}, false
}

// Params builds the query for this endpoint from a range and an optional limit.
// A nil limit, or an endpoint without a limit parameter, adds nothing.
func (e Endpoint) Params(r DateRange, limit *int) *Params {
	if e.LimitParam == "" {
		return r.Params()
	}
	return r.Params().Merge(NewParams().Set(e.LimitParam, limit))
}

// Call fetches the endpoint and decodes the body into T
func Call[T any](ctx context.Context, c *Client, e Endpoint, r DateRange, limit *int) (T, error) {
	return Fetch[T](ctx, c, e.Path, e.Params(r, limit))
}
