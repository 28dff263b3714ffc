package bankstatement

import (
	"time"

	"github.com/shopspring/decimal"
)

// BankStatement is an imported statement of a bank account
type BankStatement struct {
	BankStatementID string    `json:"bankStatementId"`
	CompanyID       string    `json:"companyId"`
	BankAccountID   string    `json:"bankAccountId"` // ledger asset account
	StatementDate   string    `json:"statementDate"` //YYYY-MM-DD
	Reference       string    `json:"reference,omitempty"`
	Lines           []Line    `json:"lines"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// Balance is the sum of the statement line amounts.
func (b *BankStatement) Balance() decimal.Decimal {
	total := decimal.Zero
	for _, l := range b.Lines {
		total = total.Add(l.Amount)
	}
	return total
}

// Line is one bank movement. Deposits are positive, withdrawals negative.
type Line struct {
	LineID          string          `json:"lineId"`
	BankStatementID string          `json:"bankStatementId"`
	Date            string          `json:"date"`
	Description     string          `json:"description,omitempty"`
	Amount          decimal.Decimal `json:"amount"`
	Reference       string          `json:"reference,omitempty"`
}

// LineInput is a statement line as supplied by callers
type LineInput struct {
	Date        string          `json:"date"`
	Description string          `json:"description,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
	Reference   string          `json:"reference,omitempty"`
}

// CreateBankStatementRequest represents the data needed to import a statement
type CreateBankStatementRequest struct {
	BankAccountID string      `json:"bankAccountId"`
	StatementDate string      `json:"statementDate"`
	Reference     string      `json:"reference,omitempty"`
	Lines         []LineInput `json:"lines"`
}

// UpdateBankStatementRequest represents a partial update; non-nil Lines
// replaces every line.
type UpdateBankStatementRequest struct {
	StatementDate *string      `json:"statementDate,omitempty"`
	Reference     *string      `json:"reference,omitempty"`
	Lines         *[]LineInput `json:"lines,omitempty"`
}
