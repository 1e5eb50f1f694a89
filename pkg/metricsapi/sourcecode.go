package metricsapi

import "context"

// SourceCodeAPI groups the /code endpoints
type SourceCodeAPI struct {
	c *Client
}

// PairingIndex fetches the share of paired commits
func (a *SourceCodeAPI) PairingIndex(ctx context.Context, r DateRange) (PairingIndex, error) {
	return Fetch[PairingIndex](ctx, a.c, PathPairingIndex, r.Params())
}

// EntityChurn fetches churn per file. A nil top leaves the limit to the API.
func (a *SourceCodeAPI) EntityChurn(ctx context.Context, r DateRange, top *int) ([]EntityChurn, error) {
	return Fetch[[]EntityChurn](ctx, a.c, PathEntityChurn, r.Params().Merge(NewParams().Set(ParamTop, top)))
}

// CodeChurn fetches the added/deleted lines time series
func (a *SourceCodeAPI) CodeChurn(ctx context.Context, r DateRange) ([]CodeChurn, error) {
	return Fetch[[]CodeChurn](ctx, a.c, PathCodeChurn, r.Params())
}

// Coupling fetches change coupling between files
func (a *SourceCodeAPI) Coupling(ctx context.Context, r DateRange, top *int) ([]Coupling, error) {
	return Fetch[[]Coupling](ctx, a.c, PathCoupling, r.Params().Merge(NewParams().Set(ParamTop, top)))
}

// EntityEffort fetches revisions per file
func (a *SourceCodeAPI) EntityEffort(ctx context.Context, r DateRange, topN *int) ([]EntityEffort, error) {
	return Fetch[[]EntityEffort](ctx, a.c, PathEntityEffort, r.Params().Merge(NewParams().Set(ParamTopN, topN)))
}

// EntityOwnership fetches per-author contributions to each file
func (a *SourceCodeAPI) EntityOwnership(ctx context.Context, r DateRange) ([]EntityOwnership, error) {
	return Fetch[[]EntityOwnership](ctx, a.c, PathEntityOwnership, r.Params())
}
