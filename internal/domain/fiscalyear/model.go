package fiscalyear

import (
	"fmt"
	"time"
)

// State is the lifecycle state of a fiscal year
type State string

const (
	// Open years accept new entries and postings
	Open State = "open"
	// Closed years are frozen
	Closed State = "closed"
)

// Valid reports whether s is a known state.
func (s State) Valid() bool {
	switch s {
	case Open, Closed:
		return true
	}
	return false
}

// ParseState converts s into a State.
func ParseState(s string) (State, error) {
	st := State(s)
	if !st.Valid() {
		return "", fmt.Errorf("unknown fiscal year state %q", s)
	}
	return st, nil
}

// FiscalYear is a date range during which a company's entries may be dated.
// StartDate and EndDate are inclusive YYYY-MM-DD dates.
type FiscalYear struct {
	FiscalYearID string     `json:"fiscalYearId"`
	CompanyID    string     `json:"companyId"`
	Name         string     `json:"name"`
	StartDate    string     `json:"startDate"`
	EndDate      string     `json:"endDate"`
	State        State      `json:"state"`
	ClosedAt     *time.Time `json:"closedAt,omitempty"`
	ClosedBy     string     `json:"closedBy,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

// IsOpen reports whether the year accepts entries.
func (f *FiscalYear) IsOpen() bool {
	switch f.State {
	case Open:
		return true
	case Closed:
		return false
	default:
		panic(fmt.Sprintf("fiscalyear: unhandled state %q", string(f.State)))
	}
}

// Contains reports whether date (YYYY-MM-DD) falls inside the year.
func (f *FiscalYear) Contains(date string) bool {
	return f.StartDate <= date && date <= f.EndDate
}

// Overlaps reports whether the inclusive range [start, end] intersects the year.
func (f *FiscalYear) Overlaps(start, end string) bool {
	return f.StartDate <= end && start <= f.EndDate
}

// CreateFiscalYearRequest represents the request to create a fiscal year
type CreateFiscalYearRequest struct {
	Name      string `json:"name"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

// UpdateFiscalYearRequest holds the fields to change; nil means unchanged.
type UpdateFiscalYearRequest struct {
	Name      *string `json:"name,omitempty"`
	StartDate *string `json:"startDate,omitempty"`
	EndDate   *string `json:"endDate,omitempty"`
}
