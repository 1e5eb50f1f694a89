package metricsapi

import "context"

// PullRequestAPI groups the /pull-requests endpoints
type PullRequestAPI struct {
	c *Client
}

// Summary fetches pull request totals and the first and last pull request
func (a *PullRequestAPI) Summary(ctx context.Context, r DateRange) (PullRequestSummary, error) {
	return Fetch[PullRequestSummary](ctx, a.c, PathPullRequestsSummary, r.Params())
}

// ByAuthor fetches pull request counts per author
func (a *PullRequestAPI) ByAuthor(ctx context.Context, r DateRange) ([]AuthorCount, error) {
	return Fetch[[]AuthorCount](ctx, a.c, PathPullRequestsByAuthor, r.Params())
}

// AverageReviewTime fetches the average review hours per author
func (a *PullRequestAPI) AverageReviewTime(ctx context.Context, r DateRange) ([]ReviewTime, error) {
	return Fetch[[]ReviewTime](ctx, a.c, PathPullRequestsAverageReviewTime, r.Params())
}

// OpenThroughTime fetches the number of open pull requests per date
func (a *PullRequestAPI) OpenThroughTime(ctx context.Context, r DateRange) ([]OpenThroughTime, error) {
	return Fetch[[]OpenThroughTime](ctx, a.c, PathPullRequestsThroughTime, r.Params())
}

// AverageOpenBy fetches the average open days per period
func (a *PullRequestAPI) AverageOpenBy(ctx context.Context, r DateRange) ([]AverageOpenBy, error) {
	return Fetch[[]AverageOpenBy](ctx, a.c, PathPullRequestsAverageOpenBy, r.Params())
}

// AverageComments fetches the average comments per pull request
func (a *PullRequestAPI) AverageComments(ctx context.Context, r DateRange) (AverageComments, error) {
	return Fetch[AverageComments](ctx, a.c, PathPullRequestsAverageComments, r.Params())
}
