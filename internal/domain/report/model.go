package report

import (
	"github.com/shopspring/decimal"

	"github.com/Janar2510/FUSION-AI-Enterprise-Suite-AI-Driven-modular-ERP-Platform-sub000/internal/domain/account"
)

// Tolerance is the largest difference between assets and liabilities plus
// equity that still counts as balanced.
var Tolerance = decimal.NewFromFloat(0.01)

// Line is one account on a statement
type Line struct {
	AccountID   string              `json:"accountId,omitempty"`
	Code        string              `json:"code,omitempty"`
	Name        string              `json:"name"`
	AccountType account.AccountType `json:"accountType"`
	Balance     decimal.Decimal     `json:"balance"`
}

// Section is a group of lines with their total
type Section struct {
	Lines []Line          `json:"lines"`
	Total decimal.Decimal `json:"total"`
}

func (s *Section) add(l Line) {
	s.Lines = append(s.Lines, l)
	s.Total = s.Total.Add(l.Balance)
}

// Totals summarizes a balance sheet
type Totals struct {
	Assets                decimal.Decimal `json:"totalAssets"`
	Liabilities           decimal.Decimal `json:"totalLiabilities"`
	Equity                decimal.Decimal `json:"totalEquity"`
	LiabilitiesAndEquity  decimal.Decimal `json:"totalLiabilitiesAndEquity"`
	Difference            decimal.Decimal `json:"difference"`
	CurrentPeriodEarnings decimal.Decimal `json:"currentPeriodEarnings"`
}

// BalanceSheet is a point-in-time statement of posted balances.
//
// Assets are presented debit-normal, liabilities and equity credit-normal.
// ProfitAndLoss lists revenue and expense accounts with their raw net
// (debit minus credit); their sum, negated, is folded into Equity as the
// current earnings line.
type BalanceSheet struct {
	CompanyID     string  `json:"companyId"`
	AsOfDate      string  `json:"asOfDate"`
	Assets        Section `json:"assets"`
	Liabilities   Section `json:"liabilities"`
	Equity        Section `json:"equity"`
	ProfitAndLoss Section `json:"profitAndLoss"`
	Totals        Totals  `json:"totals"`
	Balanced      bool    `json:"balanced"`
}

// Find returns the line of the account with the given code in any section.
func (b *BalanceSheet) Find(code string) (Line, bool) {
	for _, section := range []Section{b.Assets, b.Liabilities, b.Equity, b.ProfitAndLoss} {
		for _, l := range section.Lines {
			if l.Code == code {
				return l, true
			}
		}
	}
	return Line{}, false
}
