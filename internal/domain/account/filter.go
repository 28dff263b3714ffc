package account

const (
	defaultLimit = 100
	maxLimit     = 500
)

// AccountFilter represents the filtering criteria for accounts
type AccountFilter struct {
	AccountType AccountType
	ActiveOnly  bool
	Skip        int
	Limit       int
}

// Normalize clamps paging values to the supported range.
func (f AccountFilter) Normalize() AccountFilter {
	if f.Skip < 0 {
		f.Skip = 0
	}
	if f.Limit <= 0 {
		f.Limit = defaultLimit
	}
	if f.Limit > maxLimit {
		f.Limit = maxLimit
	}
	return f
}
