package metricsapi

// Source code metrics

// PairingIndex is the share of analyzed commits that were co-authored
type PairingIndex struct {
	PairingIndexPercentage float64 `json:"pairing_index_percentage"`
	TotalAnalyzedCommits   Count   `json:"total_analyzed_commits"`
	PairedCommits          Count   `json:"paired_commits"`
}

// EntityChurn is the lines added and deleted per file
type EntityChurn struct {
	Entity  string `json:"entity"`
	Added   Count  `json:"added"`
	Deleted Count  `json:"deleted"`
	Commits Count  `json:"commits"`
}

// CodeChurn is one point of the churn time series; Type is "added" or "deleted"
type CodeChurn struct {
	Date  string  `json:"date"`
	Type  string  `json:"type"`
	Value float64 `json:"value"`
}

// Coupling is the degree of change coupling between two files
type Coupling struct {
	Entity  string  `json:"entity"`
	Coupled string  `json:"coupled"`
	Degree  float64 `json:"degree"`
}

// EntityEffort is the number of revisions per file
type EntityEffort struct {
	Entity    string `json:"entity"`
	Revisions Count  `json:"revisions"`
}

// EntityOwnership is one author's contribution to a file
type EntityOwnership struct {
	Entity  string `json:"entity"`
	Author  string `json:"author"`
	Added   Count  `json:"added"`
	Deleted Count  `json:"deleted"`
}

// Pipeline metrics

// StatusCount is the number of pipeline runs in a status
type StatusCount struct {
	Status string `json:"status"`
	Count  Count  `json:"count"`
}

// JobStatusCount is the number of job executions per job and status
type JobStatusCount struct {
	JobName string `json:"job_name"`
	Status  string `json:"status"`
	Count   Count  `json:"count"`
}

// PipelineRun is the snapshot of a run reported as first_run or last_run.
// Timestamps are passed through as sent by the API.
type PipelineRun struct {
	CreatedAt    *string `json:"created_at,omitempty"`
	RunStartedAt *string `json:"run_started_at,omitempty"`
	UpdatedAt    *string `json:"updated_at,omitempty"`
}

// WorkflowRuns counts the runs of one workflow
type WorkflowRuns struct {
	Count Count  `json:"count"`
	Path  string `json:"path,omitempty"`
}

// PipelineSummary aggregates pipeline runs in the range.
// FirstRun and LastRun are nil when the range has no runs.
type PipelineSummary struct {
	TotalRuns       Count                   `json:"total_runs"`
	FirstRun        *PipelineRun            `json:"first_run"`
	LastRun         *PipelineRun            `json:"last_run"`
	InProgress      Count                   `json:"in_progress"`
	Queued          Count                   `json:"queued"`
	Completed       *Count                  `json:"completed,omitempty"`
	UniqueWorkflows *Count                  `json:"unique_workflows,omitempty"`
	RunsByWorkflow  map[string]WorkflowRuns `json:"runs_by_workflow,omitempty"`
	MostFailed      *string                 `json:"most_failed,omitempty"`
}

// RunDuration is the average run duration of a workflow
type RunDuration struct {
	Workflow    string  `json:"workflow"`
	AvgDuration float64 `json:"avg_duration"`
	TotalRuns   Count   `json:"total_runs"`
}

// DeploymentFrequency is the number of deployments on a date
type DeploymentFrequency struct {
	Date   string `json:"date"`
	Count  Count  `json:"count"`
	Commit string `json:"commit"`
}

// RunsBy is the number of runs of a workflow in a period
type RunsBy struct {
	Period   string `json:"period"`
	Workflow string `json:"workflow"`
	Runs     Count  `json:"runs"`
}

// JobAverageTime is the average execution time of a job
type JobAverageTime struct {
	JobName string  `json:"job_name"`
	AvgTime float64 `json:"avg_time"`
	Count   Count   `json:"count"`
}

// Pull request metrics

// PullRequest is the snapshot reported as first_pr or last_pr.
// Merged and Closed are nil while the pull request is open.
type PullRequest struct {
	Number  Count   `json:"number"`
	Title   string  `json:"title"`
	Login   string  `json:"login"`
	Created string  `json:"created"`
	Merged  *string `json:"merged"`
	Closed  *string `json:"closed"`
}

// PullRequestSummary aggregates pull requests in the range
type PullRequestSummary struct {
	Total   Count        `json:"total"`
	Merged  Count        `json:"merged"`
	Closed  Count        `json:"closed"`
	Open    Count        `json:"open"`
	FirstPR *PullRequest `json:"first_pr"`
	LastPR  *PullRequest `json:"last_pr"`
}

// AuthorCount is the number of pull requests opened by an author
type AuthorCount struct {
	Author string `json:"author"`
	Count  Count  `json:"count"`
}

// ReviewTime is the average hours to review an author's pull requests
type ReviewTime struct {
	Author   string  `json:"author"`
	AvgHours float64 `json:"avg_hours"`
}

// OpenThroughTime is the number of open pull requests on a date
type OpenThroughTime struct {
	Date    string `json:"date"`
	OpenPRs Count  `json:"open_prs"`
}

// AverageOpenBy is the average days a pull request stayed open in a period
type AverageOpenBy struct {
	Period  string  `json:"period"`
	AvgDays float64 `json:"avg_days"`
}

// AverageComments is the average number of comments per pull request
type AverageComments struct {
	AvgComments float64 `json:"avg_comments"`
}

// Configuration

// Configuration is the metrics API's view of the analyzed repository
type Configuration struct {
	GitProvider                       string `json:"git_provider"`
	GithubRepository                  string `json:"github_repository"`
	GitRepositoryLocation             string `json:"git_repository_location"`
	StoreData                         string `json:"store_data"`
	DeploymentFrequencyTargetPipeline string `json:"deployment_frequency_target_pipeline"`
	DeploymentFrequencyTargetJob      string `json:"deployment_frequency_target_job"`
	MainBranch                        string `json:"main_branch"`
	DashboardStartDate                string `json:"dashboard_start_date"`
	DashboardEndDate                  string `json:"dashboard_end_date"`
	DashboardColor                    string `json:"dashboard_color"`
	LoggingLevel                      string `json:"logging_level"`
}

// DefaultRange returns the dashboard date range configured on the API side
func (c Configuration) DefaultRange() DateRange {
	return DateRange{StartDate: c.DashboardStartDate, EndDate: c.DashboardEndDate}
}

// ConfigurationResponse is the envelope returned by /configuration
type ConfigurationResponse struct {
	Result Configuration `json:"result"`
}
