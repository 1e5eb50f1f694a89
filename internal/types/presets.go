package types

// ListPresetsParams controls paging of saved filters
type ListPresetsParams struct {
	Limit  int
	Offset int
}

// Paging bounds for ListPresetsParams
const (
	DefaultPresetLimit = 50
	MaxPresetLimit     = 200
)

// Normalize clamps the paging values into their allowed ranges
func (p ListPresetsParams) Normalize() ListPresetsParams {
	if p.Limit <= 0 {
		p.Limit = DefaultPresetLimit
	}
	if p.Limit > MaxPresetLimit {
		p.Limit = MaxPresetLimit
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
	return p
}
