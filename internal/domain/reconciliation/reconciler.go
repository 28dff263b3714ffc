// Package reconciliation matches imported bank statement lines against
// posted journal lines of the bank's ledger account.
package reconciliation

import (
	"context"

	"github.com/shopspring/decimal"
)

// Request selects the bank account and period to reconcile
type Request struct {
	CompanyID     string `json:"companyId"`
	BankAccountID string `json:"bankAccountId"`
	StartDate     string `json:"startDate"`
	EndDate       string `json:"endDate"`
}

// Summary is the result contract every Reconciler returns
type Summary struct {
	TotalBankLines       int     `json:"totalBankLines"`
	TotalJournalLines    int     `json:"totalJournalLines"`
	AutoMatched          int     `json:"autoMatched"`
	ManualReviewRequired int     `json:"manualReviewRequired"`
	UnmatchedBank        int     `json:"unmatchedBank"`
	UnmatchedJournal     int     `json:"unmatchedJournal"`
	Matches              []Match `json:"matches"`
}

// MatchKind tells how confident a pairing is
type MatchKind string

const (
	// Auto pairs agree on amount and date
	Auto MatchKind = "auto"
	// Review pairs agree on amount with dates inside the window
	Review MatchKind = "review"
)

// Match pairs one bank line with one journal line
type Match struct {
	BankLineID    string    `json:"bankLineId"`
	JournalLineID string    `json:"journalLineId"`
	EntryNumber   string    `json:"entryNumber"`
	Kind          MatchKind `json:"kind"`
}

// Reconciler is the extension point for bank statement matching
type Reconciler interface {
	Reconcile(ctx context.Context, req Request) (*Summary, error)
}

// JournalLine is a posted movement on the bank's ledger account. Amount is
// debit minus credit, so deposits are positive like on the statement.
type JournalLine struct {
	LineID      string
	EntryNumber string
	Date        string
	Amount      decimal.Decimal
}

// JournalLines reads posted lines for reconciliation
type JournalLines interface {
	PostedLinesBetween(ctx context.Context, companyID, accountID, startDate, endDate string) ([]JournalLine, error)
}
