package account

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// AccountType represents the type of an account
type AccountType string

const (
	// Asset represents an asset account
	Asset AccountType = "asset"
	// Liability represents a liability account
	Liability AccountType = "liability"
	// Equity represents an equity account
	Equity AccountType = "equity"
	// Revenue represents a revenue account
	Revenue AccountType = "revenue"
	// Expense represents an expense account
	Expense AccountType = "expense"
)

// AccountTypes lists every account type in chart order.
var AccountTypes = []AccountType{Asset, Liability, Equity, Revenue, Expense}

// ParseAccountType converts s into an AccountType.
func ParseAccountType(s string) (AccountType, error) {
	t := AccountType(s)
	if !t.Valid() {
		return "", fmt.Errorf("unknown account type %q", s)
	}
	return t, nil
}

// Valid reports whether t is one of the known account types.
func (t AccountType) Valid() bool {
	switch t {
	case Asset, Liability, Equity, Revenue, Expense:
		return true
	}
	return false
}

// DebitNormal reports whether balances of this type are presented as
// debit minus credit. Liability, equity and revenue accounts carry
// credit-normal balances.
func (t AccountType) DebitNormal() bool {
	switch t {
	case Asset, Expense:
		return true
	case Liability, Equity, Revenue:
		return false
	default:
		panic(fmt.Sprintf("account: unhandled account type %q", string(t)))
	}
}

// Present converts a raw net (debit minus credit) into the sign convention
// of the account type.
func (t AccountType) Present(net decimal.Decimal) decimal.Decimal {
	if t.DebitNormal() {
		return net
	}
	return net.Neg()
}

// Account is a node in a company's chart of accounts
type Account struct {
	AccountID   string      `json:"accountId"`
	CompanyID   string      `json:"companyId"`
	Code        string      `json:"code"`
	Name        string      `json:"name"`
	AccountType AccountType `json:"accountType"`
	ParentID    string      `json:"parentId,omitempty"`
	Active      bool        `json:"active"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

// Position is the running net of all posted lines against an account.
// It is maintained by the ledger poster, never written by account operations.
type Position struct {
	AccountID        string          `json:"accountId"`
	Net              decimal.Decimal `json:"net"`
	LastJournalEntry string          `json:"lastJournalEntryId,omitempty"`
	UpdatedAt        time.Time       `json:"updatedAt,omitempty"`
}

// CreateAccountRequest represents the request to create a new account
type CreateAccountRequest struct {
	Code        string      `json:"code"`
	Name        string      `json:"name"`
	AccountType AccountType `json:"accountType"`
	ParentID    string      `json:"parentId,omitempty"`
}

// UpdateAccountRequest holds the fields to change. Nil means unchanged;
// an empty ParentID detaches the account from its parent.
type UpdateAccountRequest struct {
	Name     *string `json:"name,omitempty"`
	ParentID *string `json:"parentId,omitempty"`
	Active   *bool   `json:"active,omitempty"`
}

// AccountNode is an account with its children, used by Hierarchy.
type AccountNode struct {
	*Account
	Children []*AccountNode `json:"children,omitempty"`
}

// AccountListResponse represents the response for listing accounts
type AccountListResponse struct {
	Accounts   []*Account `json:"accounts"`
	TotalCount int        `json:"totalCount"`
}
