package journal

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// State is the lifecycle state of a journal entry
type State string

const (
	// Draft entries can be edited and deleted
	Draft State = "draft"
	// Posted entries are immutable
	Posted State = "posted"
)

// Valid reports whether s is a known state.
func (s State) Valid() bool {
	switch s {
	case Draft, Posted:
		return true
	}
	return false
}

// ParseState converts s into a State.
func ParseState(s string) (State, error) {
	st := State(s)
	if !st.Valid() {
		return "", fmt.Errorf("unknown journal entry state %q", s)
	}
	return st, nil
}

// JournalEntry represents a financial journal entry
type JournalEntry struct {
	JournalEntryID string     `json:"journalEntryId"`
	EntryNumber    string     `json:"entryNumber"`
	CompanyID      string     `json:"companyId"`
	FiscalYearID   string     `json:"fiscalYearId"`
	Date           string     `json:"date"` //YYYY-MM-DD
	Reference      string     `json:"reference,omitempty"`
	State          State      `json:"state"`
	CreatedBy      string     `json:"createdBy"`
	PostedBy       string     `json:"postedBy,omitempty"`
	PostedAt       *time.Time `json:"postedAt,omitempty"`
	Lines          []Line     `json:"lines,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

// IsDraft reports whether the entry can still change.
func (e *JournalEntry) IsDraft() bool {
	switch e.State {
	case Draft:
		return true
	case Posted:
		return false
	default:
		panic(fmt.Sprintf("journal: unhandled entry state %q", string(e.State)))
	}
}

// Totals returns the debit and credit sums of the entry's lines.
func (e *JournalEntry) Totals() (debit, credit decimal.Decimal) {
	debit, credit = decimal.Zero, decimal.Zero
	for _, l := range e.Lines {
		debit = debit.Add(l.Debit)
		credit = credit.Add(l.Credit)
	}
	return debit, credit
}

// Line is a single debit or credit movement against one account
type Line struct {
	LineID            string          `json:"lineId"`
	JournalEntryID    string          `json:"journalEntryId"`
	Position          int             `json:"position"`
	AccountID         string          `json:"accountId"`
	Debit             decimal.Decimal `json:"debit"`
	Credit            decimal.Decimal `json:"credit"`
	Description       string          `json:"description,omitempty"`
	TaxID             string          `json:"taxId,omitempty"`
	PartnerID         string          `json:"partnerId,omitempty"`
	AnalyticAccountID string          `json:"analyticAccountId,omitempty"`
}

// Net is the line's effect on its account, debit minus credit.
func (l Line) Net() decimal.Decimal {
	return l.Debit.Sub(l.Credit)
}

// LineInput is a line as supplied by callers
type LineInput struct {
	AccountID         string          `json:"accountId"`
	Debit             decimal.Decimal `json:"debit"`
	Credit            decimal.Decimal `json:"credit"`
	Description       string          `json:"description,omitempty"`
	TaxID             string          `json:"taxId,omitempty"`
	PartnerID         string          `json:"partnerId,omitempty"`
	AnalyticAccountID string          `json:"analyticAccountId,omitempty"`
}

// CreateJournalEntryRequest represents the data needed to create a journal entry
type CreateJournalEntryRequest struct {
	Date      string      `json:"date"` //YYYY-MM-DD
	Reference string      `json:"reference,omitempty"`
	Lines     []LineInput `json:"lines"`
}

// UpdateJournalEntryRequest represents a request to update a draft entry.
// Nil fields are unchanged; a non-nil Lines replaces every line.
type UpdateJournalEntryRequest struct {
	Date      *string      `json:"date,omitempty"`
	Reference *string      `json:"reference,omitempty"`
	Lines     *[]LineInput `json:"lines,omitempty"`
}

// JournalEntryFilter represents the filtering criteria for journal entries
type JournalEntryFilter struct {
	State State
	Skip  int
	Limit int
}

const (
	defaultLimit = 50
	maxLimit     = 500
)

// Normalize clamps paging values to the supported range.
func (f JournalEntryFilter) Normalize() JournalEntryFilter {
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

// GetJournalEntriesResponse represents a list of journal entries
type GetJournalEntriesResponse struct {
	JournalEntries []*JournalEntry `json:"journalEntries"`
	TotalCount     int             `json:"totalCount"`
}

// FormatEntryNumber renders the company-scoped entry number.
func FormatEntryNumber(companyID string, sequence int64) string {
	return fmt.Sprintf("JE-%s-%06d", companyID, sequence)
}
