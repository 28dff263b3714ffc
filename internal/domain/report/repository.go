package report

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/Janar2510/FUSION-AI-Enterprise-Suite-AI-Driven-modular-ERP-Platform-sub000/internal/domain/account"
)

// Repository reads posted ledger data for reporting
type Repository interface {
	// PostedNets returns debit minus credit per account over posted lines of
	// the company dated on or before asOfDate. Accounts without lines are
	// absent from the map.
	PostedNets(ctx context.Context, companyID string, asOfDate string) (map[string]decimal.Decimal, error)
}

// Accounts lists the chart of a company
type Accounts interface {
	AllAccounts(ctx context.Context, companyID string) ([]*account.Account, error)
}
