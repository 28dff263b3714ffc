package fiscalyear

import "context"

// Repository defines the interface for fiscal year data operations
type Repository interface {
	CreateFiscalYear(ctx context.Context, fy *FiscalYear) error
	GetFiscalYear(ctx context.Context, fiscalYearID string) (*FiscalYear, error)
	ListFiscalYears(ctx context.Context, companyID string) ([]*FiscalYear, error)
	UpdateFiscalYear(ctx context.Context, fy *FiscalYear) error
	DeleteFiscalYear(ctx context.Context, fiscalYearID string) error

	// FindContaining returns the year of the company whose range contains
	// date, regardless of state, or nil when there is none.
	FindContaining(ctx context.Context, companyID string, date string) (*FiscalYear, error)

	// CountEntries counts journal entries assigned to the year.
	CountEntries(ctx context.Context, fiscalYearID string) (int, error)

	// EntryDateRange returns the earliest and latest entry dates of the year,
	// empty strings when it has no entries.
	EntryDateRange(ctx context.Context, fiscalYearID string) (string, string, error)
}
