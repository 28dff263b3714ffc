package report

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Janar2510/FUSION-AI-Enterprise-Suite-AI-Driven-modular-ERP-Platform-sub000/internal/domain/account"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func acc(id, code string, typ account.AccountType, active bool) *account.Account {
	return &account.Account{AccountID: id, Code: code, Name: code, AccountType: typ, Active: active}
}

func TestBuild(t *testing.T) {
	accounts := []*account.Account{
		acc("rev", "4000", account.Revenue, true),
		acc("cash", "1000", account.Asset, true),
		acc("ap", "2000", account.Liability, true),
		acc("cap", "3000", account.Equity, true),
		acc("exp", "5000", account.Expense, true),
		acc("old", "1999", account.Asset, false),
	}

	t.Run("balanced sheet with current earnings", func(t *testing.T) {
		// Setup
		nets := map[string]decimal.Decimal{
			"cash": d("1700"),
			"ap":   d("-200"),
			"cap":  d("-1000"),
			"rev":  d("-800"),
			"exp":  d("300"),
		}

		// Act
		sheet := Build("acme", "2024-12-31", accounts, nets)

		// Assert
		assert.True(t, sheet.Balanced)
		assert.True(t, sheet.Totals.Assets.Equal(d("1700")))
		assert.True(t, sheet.Totals.Liabilities.Equal(d("200")))
		assert.True(t, sheet.Totals.CurrentPeriodEarnings.Equal(d("500")))
		assert.True(t, sheet.Totals.Equity.Equal(d("1500")))
		assert.True(t, sheet.Totals.LiabilitiesAndEquity.Equal(d("1700")))
		assert.True(t, sheet.Totals.Difference.IsZero())

		rev, ok := sheet.Find("4000")
		require.True(t, ok)
		assert.True(t, rev.Balance.Equal(d("-800")), "P&L keeps the raw net")

		require.Len(t, sheet.Equity.Lines, 2)
		last := sheet.Equity.Lines[1]
		assert.Equal(t, CurrentEarningsName, last.Name)
		assert.Empty(t, last.AccountID)

		_, ok = sheet.Find("1999")
		assert.False(t, ok, "inactive account without balance is hidden")
	})

	t.Run("lines are ordered by code", func(t *testing.T) {
		sheet := Build("acme", "2024-12-31", []*account.Account{
			acc("b", "1100", account.Asset, true),
			acc("a", "1000", account.Asset, true),
		}, nil)

		require.Len(t, sheet.Assets.Lines, 2)
		assert.Equal(t, "1000", sheet.Assets.Lines[0].Code)
		assert.Equal(t, "1100", sheet.Assets.Lines[1].Code)
	})

	t.Run("inactive account with balance is shown", func(t *testing.T) {
		sheet := Build("acme", "2024-12-31", accounts, map[string]decimal.Decimal{
			"old": d("10"), "cap": d("-10"),
		})

		line, ok := sheet.Find("1999")
		require.True(t, ok)
		assert.True(t, line.Balance.Equal(d("10")))
		assert.True(t, sheet.Balanced)
	})

	t.Run("tolerance", func(t *testing.T) {
		within := Build("acme", "2024-12-31", accounts, map[string]decimal.Decimal{
			"cash": d("100.01"), "cap": d("-100"),
		})
		assert.True(t, within.Balanced)

		outside := Build("acme", "2024-12-31", accounts, map[string]decimal.Decimal{
			"cash": d("100.02"), "cap": d("-100"),
		})
		assert.False(t, outside.Balanced)
		assert.True(t, outside.Totals.Difference.Equal(d("0.02")))
	})

	t.Run("empty company", func(t *testing.T) {
		sheet := Build("acme", "2024-12-31", nil, nil)

		assert.True(t, sheet.Balanced)
		assert.NotNil(t, sheet.Assets.Lines)
		assert.NotNil(t, sheet.ProfitAndLoss.Lines)
		require.Len(t, sheet.Equity.Lines, 1)
		assert.True(t, sheet.Equity.Lines[0].Balance.IsZero())
	})
}
