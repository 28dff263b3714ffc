// Package report derives financial statements from posted journal lines.
package report

import (
	"context"
	"log/slog"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/Janar2510/FUSION-AI-Enterprise-Suite-AI-Driven-modular-ERP-Platform-sub000/internal/common/utils"
	"github.com/Janar2510/FUSION-AI-Enterprise-Suite-AI-Driven-modular-ERP-Platform-sub000/internal/domain/account"
	"github.com/Janar2510/FUSION-AI-Enterprise-Suite-AI-Driven-modular-ERP-Platform-sub000/internal/domain/uow"
)

// CurrentEarningsName labels the synthetic equity line carrying the net of
// revenue and expense accounts.
const CurrentEarningsName = "Current earnings"

// Recorder receives report events
type Recorder interface {
	BalanceSheetImbalance(companyID string)
}

type nopRecorder struct{}

func (nopRecorder) BalanceSheetImbalance(string) {}

// BalanceSheetGenerator builds balance sheets as read-time aggregates
type BalanceSheetGenerator struct {
	repo     Repository
	accounts Accounts
	tx       uow.Transactor
	recorder Recorder
	logger   *slog.Logger
}

// NewBalanceSheetGenerator creates a new generator
func NewBalanceSheetGenerator(repo Repository, accounts Accounts, tx uow.Transactor, logger *slog.Logger) *BalanceSheetGenerator {
	return &BalanceSheetGenerator{
		repo:     repo,
		accounts: accounts,
		tx:       tx,
		recorder: nopRecorder{},
		logger:   logger,
	}
}

// WithRecorder sets the event recorder and returns the generator.
func (g *BalanceSheetGenerator) WithRecorder(r Recorder) *BalanceSheetGenerator {
	if r != nil {
		g.recorder = r
	}
	return g
}

// Generate builds the balance sheet of the company as of the given date.
// An imbalance is logged and counted but never returned as an error.
func (g *BalanceSheetGenerator) Generate(ctx context.Context, companyID string, asOfDate string) (*BalanceSheet, error) {
	if err := utils.ValidateRequiredString(companyID, "company ID"); err != nil {
		return nil, err
	}
	if err := utils.ValidateISODate(asOfDate); err != nil {
		return nil, err
	}

	var (
		accounts []*account.Account
		nets     map[string]decimal.Decimal
	)
	err := g.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		if accounts, err = g.accounts.AllAccounts(ctx, companyID); err != nil {
			return err
		}
		nets, err = g.repo.PostedNets(ctx, companyID, asOfDate)
		return err
	})
	if err != nil {
		return nil, err
	}

	sheet := Build(companyID, asOfDate, accounts, nets)
	if !sheet.Balanced {
		g.recorder.BalanceSheetImbalance(companyID)
		g.logger.Warn("balance sheet does not balance",
			"companyId", companyID,
			"asOfDate", asOfDate,
			"totalAssets", sheet.Totals.Assets.String(),
			"totalLiabilitiesAndEquity", sheet.Totals.LiabilitiesAndEquity.String(),
			"difference", sheet.Totals.Difference.String(),
		)
	}
	return sheet, nil
}

// Build assembles a balance sheet from accounts and their posted nets.
// Inactive accounts are listed only while they still carry a balance.
func Build(companyID, asOfDate string, accounts []*account.Account, nets map[string]decimal.Decimal) *BalanceSheet {
	sorted := make([]*account.Account, len(accounts))
	copy(sorted, accounts)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Code < sorted[j].Code })

	sheet := &BalanceSheet{CompanyID: companyID, AsOfDate: asOfDate}
	for _, acc := range sorted {
		net := nets[acc.AccountID]
		if !acc.Active && net.IsZero() {
			continue
		}
		line := Line{
			AccountID:   acc.AccountID,
			Code:        acc.Code,
			Name:        acc.Name,
			AccountType: acc.AccountType,
		}

		switch acc.AccountType {
		case account.Asset:
			line.Balance = acc.AccountType.Present(net)
			sheet.Assets.add(line)
		case account.Liability:
			line.Balance = acc.AccountType.Present(net)
			sheet.Liabilities.add(line)
		case account.Equity:
			line.Balance = acc.AccountType.Present(net)
			sheet.Equity.add(line)
		case account.Revenue, account.Expense:
			line.Balance = net
			sheet.ProfitAndLoss.add(line)
		default:
			panic("report: unhandled account type " + string(acc.AccountType))
		}
	}

	earnings := sheet.ProfitAndLoss.Total.Neg()
	sheet.Equity.add(Line{Name: CurrentEarningsName, AccountType: account.Equity, Balance: earnings})

	t := &sheet.Totals
	t.Assets = sheet.Assets.Total
	t.Liabilities = sheet.Liabilities.Total
	t.Equity = sheet.Equity.Total
	t.LiabilitiesAndEquity = t.Liabilities.Add(t.Equity)
	t.Difference = t.Assets.Sub(t.LiabilitiesAndEquity)
	t.CurrentPeriodEarnings = earnings
	sheet.Balanced = t.Difference.Abs().LessThanOrEqual(Tolerance)

	for _, s := range []*Section{&sheet.Assets, &sheet.Liabilities, &sheet.Equity, &sheet.ProfitAndLoss} {
		if s.Lines == nil {
			s.Lines = []Line{}
		}
	}
	return sheet
}
