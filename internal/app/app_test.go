package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Janar2510/FUSION-AI-Enterprise-Suite-AI-Driven-modular-ERP-Platform-sub000/internal/domain/account"
	"github.com/Janar2510/FUSION-AI-Enterprise-Suite-AI-Driven-modular-ERP-Platform-sub000/internal/domain/bankstatement"
	"github.com/Janar2510/FUSION-AI-Enterprise-Suite-AI-Driven-modular-ERP-Platform-sub000/internal/domain/errors"
	"github.com/Janar2510/FUSION-AI-Enterprise-Suite-AI-Driven-modular-ERP-Platform-sub000/internal/domain/fiscalyear"
	"github.com/Janar2510/FUSION-AI-Enterprise-Suite-AI-Driven-modular-ERP-Platform-sub000/internal/domain/journal"
	"github.com/Janar2510/FUSION-AI-Enterprise-Suite-AI-Driven-modular-ERP-Platform-sub000/internal/domain/reconciliation"
	"github.com/Janar2510/FUSION-AI-Enterprise-Suite-AI-Driven-modular-ERP-Platform-sub000/internal/domain/report"
	"github.com/Janar2510/FUSION-AI-Enterprise-Suite-AI-Driven-modular-ERP-Platform-sub000/internal/platform/metrics"
	"github.com/Janar2510/FUSION-AI-Enterprise-Suite-AI-Driven-modular-ERP-Platform-sub000/internal/platform/sqlite"
)

const company = "acme"

type fixture struct {
	app      *App
	registry *prometheus.Registry
	year     *fiscalyear.FiscalYear
	cash     *account.Account
	payables *account.Account
	capital  *account.Account
	revenue  *account.Account
	expense  *account.Account
}

func newTestApp(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	conn, err := sqlite.Open(filepath.Join(t.TempDir(), "ledger.db"), logger)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	require.NoError(t, conn.Migrate(ctx))

	reg := prometheus.NewRegistry()
	m, err := metrics.NewLedger(reg)
	require.NoError(t, err)

	f := &fixture{
		app:      New(conn, Options{Metrics: m, ReconcileWindowDays: 3}, logger),
		registry: reg,
	}

	f.year, err = f.app.FiscalYears.CreateFiscalYear(ctx, company, &fiscalyear.CreateFiscalYearRequest{
		Name:      "FY2024",
		StartDate: "2024-01-01",
		EndDate:   "2024-12-31",
	})
	require.NoError(t, err)

	create := func(code, name string, typ account.AccountType) *account.Account {
		acc, err := f.app.Accounts.CreateAccount(ctx, company, &account.CreateAccountRequest{
			Code: code, Name: name, AccountType: typ,
		})
		require.NoError(t, err)
		return acc
	}
	f.cash = create("1000", "Cash", account.Asset)
	f.payables = create("2000", "Accounts payable", account.Liability)
	f.capital = create("3000", "Share capital", account.Equity)
	f.revenue = create("4000", "Revenue", account.Revenue)
	f.expense = create("5000", "Expenses", account.Expense)
	return f
}

// counter returns the value of a company-labelled counter for the test company.
func (f *fixture) counter(t *testing.T, name string) float64 {
	t.Helper()
	families, err := f.registry.Gather()
	require.NoError(t, err)
	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
		for _, m := range mf.GetMetric() {
			for _, l := range m.GetLabel() {
				if l.GetName() == "company" && l.GetValue() == company {
					return m.GetCounter().GetValue()
				}
			}
		}
	}
	return 0
}

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func debit(acc *account.Account, amount string) journal.LineInput {
	return journal.LineInput{AccountID: acc.AccountID, Debit: d(amount)}
}

func credit(acc *account.Account, amount string) journal.LineInput {
	return journal.LineInput{AccountID: acc.AccountID, Credit: d(amount)}
}

func (f *fixture) createEntry(t *testing.T, date string, lines ...journal.LineInput) *journal.JournalEntry {
	t.Helper()
	entry, err := f.app.Journal.CreateJournalEntry(context.Background(), company, "alice", &journal.CreateJournalEntryRequest{
		Date:  date,
		Lines: lines,
	})
	require.NoError(t, err)
	return entry
}

func (f *fixture) postEntry(t *testing.T, date string, lines ...journal.LineInput) *journal.JournalEntry {
	t.Helper()
	entry := f.createEntry(t, date, lines...)
	posted, err := f.app.Poster.Post(context.Background(), entry.JournalEntryID, "bob")
	require.NoError(t, err)
	return posted
}

func TestBalancedEntryPostsToBalanceSheet(t *testing.T) {
	f := newTestApp(t)
	ctx := context.Background()

	// Setup
	entry := f.createEntry(t, "2024-03-15", debit(f.cash, "100"), credit(f.revenue, "100"))
	assert.Equal(t, journal.Draft, entry.State)
	assert.Equal(t, "JE-acme-000001", entry.EntryNumber)
	assert.Equal(t, f.year.FiscalYearID, entry.FiscalYearID)

	// Act
	posted, err := f.app.Poster.Post(ctx, entry.JournalEntryID, "bob")
	require.NoError(t, err)
	sheet, err := f.app.BalanceSheet.Generate(ctx, company, "2024-12-31")
	require.NoError(t, err)

	// Assert
	assert.Equal(t, journal.Posted, posted.State)
	assert.Equal(t, "bob", posted.PostedBy)
	require.NotNil(t, posted.PostedAt)

	cash, ok := sheet.Find("1000")
	require.True(t, ok)
	assert.True(t, cash.Balance.Equal(d("100")), "cash balance %s", cash.Balance)

	revenue, ok := sheet.Find("4000")
	require.True(t, ok)
	assert.True(t, revenue.Balance.Equal(d("-100")), "revenue balance %s", revenue.Balance)

	assert.True(t, sheet.Totals.Assets.Equal(d("100")))
	assert.True(t, sheet.Totals.LiabilitiesAndEquity.Equal(d("100")))
	assert.True(t, sheet.Totals.CurrentPeriodEarnings.Equal(d("100")))
	assert.True(t, sheet.Balanced)

	pos, err := f.app.Accounts.GetPosition(ctx, f.cash.AccountID)
	require.NoError(t, err)
	assert.True(t, pos.Net.Equal(d("100")))
	assert.Equal(t, entry.JournalEntryID, pos.LastJournalEntry)

	assert.Equal(t, 1.0, f.counter(t, "ledger_journal_entries_posted_total"))
	assert.Equal(t, 2.0, f.counter(t, "ledger_journal_lines_posted_total"))
}

func TestUnbalancedEntryIsRejected(t *testing.T) {
	f := newTestApp(t)
	ctx := context.Background()

	// Act
	_, err := f.app.Journal.CreateJournalEntry(ctx, company, "alice", &journal.CreateJournalEntryRequest{
		Date:  "2024-03-15",
		Lines: []journal.LineInput{debit(f.cash, "100"), credit(f.revenue, "90")},
	})

	// Assert
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrValidation))
	assert.Contains(t, err.Error(), "not balanced")

	list, err := f.app.Journal.ListJournalEntries(ctx, company, journal.JournalEntryFilter{})
	require.NoError(t, err)
	assert.Equal(t, 0, list.TotalCount)
}

func TestEntryOutsideOpenYearIsRejected(t *testing.T) {
	f := newTestApp(t)
	ctx := context.Background()

	t.Run("closed year", func(t *testing.T) {
		// Setup
		_, err := f.app.FiscalYears.CloseFiscalYear(ctx, f.year.FiscalYearID, "carol")
		require.NoError(t, err)

		// Act
		_, err = f.app.Journal.CreateJournalEntry(ctx, company, "alice", &journal.CreateJournalEntryRequest{
			Date:  "2024-06-01",
			Lines: []journal.LineInput{debit(f.cash, "50"), credit(f.revenue, "50")},
		})

		// Assert
		require.Error(t, err)
		assert.True(t, errors.Is(err, errors.ErrValidation))
		assert.Contains(t, err.Error(), "no open fiscal year")
	})

	t.Run("no year at all", func(t *testing.T) {
		_, err := f.app.Journal.CreateJournalEntry(ctx, company, "alice", &journal.CreateJournalEntryRequest{
			Date:  "2030-01-01",
			Lines: []journal.LineInput{debit(f.cash, "50"), credit(f.revenue, "50")},
		})
		require.Error(t, err)
		assert.True(t, errors.Is(err, errors.ErrValidation))
	})
}

func TestDoublePostConflicts(t *testing.T) {
	f := newTestApp(t)
	ctx := context.Background()

	// Setup
	entry := f.postEntry(t, "2024-02-01", debit(f.cash, "10"), credit(f.capital, "10"))

	// Act
	_, err := f.app.Poster.Post(ctx, entry.JournalEntryID, "bob")

	// Assert
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrStateConflict))

	pos, err := f.app.Accounts.GetPosition(ctx, f.cash.AccountID)
	require.NoError(t, err)
	assert.True(t, pos.Net.Equal(d("10")), "second post must not apply again")
}

func TestPostedEntriesAreImmutable(t *testing.T) {
	f := newTestApp(t)
	ctx := context.Background()
	entry := f.postEntry(t, "2024-02-01", debit(f.cash, "10"), credit(f.capital, "10"))

	ref := "changed"
	_, err := f.app.Journal.UpdateJournalEntry(ctx, entry.JournalEntryID, &journal.UpdateJournalEntryRequest{Reference: &ref})
	assert.True(t, errors.Is(err, errors.ErrStateConflict))

	err = f.app.Journal.DeleteJournalEntry(ctx, entry.JournalEntryID)
	assert.True(t, errors.Is(err, errors.ErrStateConflict))
}

func TestDraftsInClosedYearAreFrozen(t *testing.T) {
	f := newTestApp(t)
	ctx := context.Background()

	// Setup
	draft := f.createEntry(t, "2024-05-05", debit(f.expense, "30"), credit(f.cash, "30"))
	_, err := f.app.FiscalYears.CloseFiscalYear(ctx, f.year.FiscalYearID, "carol")
	require.NoError(t, err)

	// Act & Assert
	ref := "late fix"
	_, err = f.app.Journal.UpdateJournalEntry(ctx, draft.JournalEntryID, &journal.UpdateJournalEntryRequest{Reference: &ref})
	assert.True(t, errors.Is(err, errors.ErrStateConflict))

	err = f.app.Journal.DeleteJournalEntry(ctx, draft.JournalEntryID)
	assert.True(t, errors.Is(err, errors.ErrStateConflict))

	_, err = f.app.Poster.Post(ctx, draft.JournalEntryID, "bob")
	assert.True(t, errors.Is(err, errors.ErrStateConflict))

	_, err = f.app.FiscalYears.CloseFiscalYear(ctx, f.year.FiscalYearID, "carol")
	assert.True(t, errors.Is(err, errors.ErrStateConflict))
}

func TestDraftLifecycle(t *testing.T) {
	f := newTestApp(t)
	ctx := context.Background()
	draft := f.createEntry(t, "2024-05-05", debit(f.expense, "30"), credit(f.cash, "30"))

	t.Run("update replaces lines", func(t *testing.T) {
		lines := []journal.LineInput{debit(f.expense, "45"), credit(f.payables, "45")}
		updated, err := f.app.Journal.UpdateJournalEntry(ctx, draft.JournalEntryID, &journal.UpdateJournalEntryRequest{Lines: &lines})
		require.NoError(t, err)

		got, err := f.app.Journal.GetJournalEntry(ctx, draft.JournalEntryID)
		require.NoError(t, err)
		require.Len(t, got.Lines, 2)
		assert.Equal(t, f.payables.AccountID, got.Lines[1].AccountID)
		assert.Equal(t, updated.EntryNumber, got.EntryNumber)
	})

	t.Run("update keeps the balance invariant", func(t *testing.T) {
		lines := []journal.LineInput{debit(f.expense, "45"), credit(f.payables, "44")}
		_, err := f.app.Journal.UpdateJournalEntry(ctx, draft.JournalEntryID, &journal.UpdateJournalEntryRequest{Lines: &lines})
		assert.True(t, errors.Is(err, errors.ErrValidation))
	})

	t.Run("delete removes entry and lines", func(t *testing.T) {
		require.NoError(t, f.app.Journal.DeleteJournalEntry(ctx, draft.JournalEntryID))
		_, err := f.app.Journal.GetJournalEntry(ctx, draft.JournalEntryID)
		assert.True(t, errors.Is(err, errors.ErrNotFound))

		// the account is no longer referenced
		require.NoError(t, f.app.Accounts.DeleteAccount(ctx, f.payables.AccountID))
	})
}

func TestAccountInUseCannotBeDeleted(t *testing.T) {
	f := newTestApp(t)
	ctx := context.Background()
	f.createEntry(t, "2024-04-01", debit(f.cash, "5"), credit(f.revenue, "5"))

	err := f.app.Accounts.DeleteAccount(ctx, f.cash.AccountID)

	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrConflict))
	_, err = f.app.Accounts.GetAccount(ctx, f.cash.AccountID)
	assert.NoError(t, err)
}

func TestRoundTripBalances(t *testing.T) {
	f := newTestApp(t)
	ctx := context.Background()

	// Setup
	_, err := f.app.FiscalYears.CreateFiscalYear(ctx, company, &fiscalyear.CreateFiscalYearRequest{
		Name: "FY2025", StartDate: "2025-01-01", EndDate: "2025-12-31",
	})
	require.NoError(t, err)

	f.postEntry(t, "2024-01-02", debit(f.cash, "1000"), credit(f.capital, "1000"))
	f.postEntry(t, "2024-02-10", debit(f.expense, "250.50"), credit(f.payables, "250.50"))
	f.postEntry(t, "2024-03-01", debit(f.cash, "799.99"), credit(f.revenue, "799.99"))
	f.postEntry(t, "2024-03-20", debit(f.payables, "100"), credit(f.cash, "100"))
	f.createEntry(t, "2024-03-21", debit(f.cash, "1"), credit(f.revenue, "1")) // draft, ignored
	f.postEntry(t, "2025-01-01", debit(f.cash, "1"), credit(f.revenue, "1"))   // after as-of

	// Act
	sheet, err := f.app.BalanceSheet.Generate(ctx, company, "2024-12-31")
	require.NoError(t, err)

	// Assert
	assert.True(t, sheet.Balanced)
	assert.True(t, sheet.Totals.Difference.IsZero(), "difference %s", sheet.Totals.Difference)
	assert.True(t, sheet.Totals.Assets.Equal(d("1699.99")), "assets %s", sheet.Totals.Assets)
	assert.True(t, sheet.Totals.Liabilities.Equal(d("150.50")))
	assert.True(t, sheet.Totals.CurrentPeriodEarnings.Equal(d("549.49")))

	earnings, ok := findEarnings(sheet)
	require.True(t, ok)
	assert.True(t, earnings.Balance.Equal(d("549.49")))
}

func findEarnings(sheet *report.BalanceSheet) (report.Line, bool) {
	for _, l := range sheet.Equity.Lines {
		if l.Name == report.CurrentEarningsName && l.AccountID == "" {
			return l, true
		}
	}
	return report.Line{}, false
}

func TestConcurrentEntryNumbersAreUnique(t *testing.T) {
	f := newTestApp(t)
	ctx := context.Background()
	const workers = 16

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		numbers = make(map[string]bool)
		errs    []error
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			entry, err := f.app.Journal.CreateJournalEntry(ctx, company, fmt.Sprintf("user-%d", i), &journal.CreateJournalEntryRequest{
				Date:  "2024-07-01",
				Lines: []journal.LineInput{debit(f.cash, "1"), credit(f.revenue, "1")},
			})
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				errs = append(errs, err)
				return
			}
			numbers[entry.EntryNumber] = true
		}(i)
	}
	wg.Wait()

	require.Empty(t, errs)
	assert.Len(t, numbers, workers)
	for i := 1; i <= workers; i++ {
		assert.True(t, numbers[journal.FormatEntryNumber(company, int64(i))], "missing number %d", i)
	}
}

func TestConcurrentPostingKeepsPositions(t *testing.T) {
	f := newTestApp(t)
	ctx := context.Background()
	const entries = 10

	ids := make([]string, 0, entries)
	for i := 0; i < entries; i++ {
		ids = append(ids, f.createEntry(t, "2024-08-01", debit(f.cash, "2.5"), credit(f.revenue, "2.5")).JournalEntryID)
	}

	var wg sync.WaitGroup
	for _, id := range ids {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			_, err := f.app.Poster.Post(ctx, id, "bob")
			assert.NoError(t, err)
		}(id)
	}
	wg.Wait()

	pos, err := f.app.Accounts.GetPosition(ctx, f.cash.AccountID)
	require.NoError(t, err)
	assert.True(t, pos.Net.Equal(d("25")), "cash position %s", pos.Net)
}

func TestReconcileBankAccount(t *testing.T) {
	f := newTestApp(t)
	ctx := context.Background()

	// Setup
	f.postEntry(t, "2024-03-05", debit(f.cash, "250"), credit(f.revenue, "250"))
	f.postEntry(t, "2024-03-10", debit(f.cash, "80"), credit(f.revenue, "80"))
	f.postEntry(t, "2024-03-28", debit(f.expense, "12"), credit(f.cash, "12"))
	f.createEntry(t, "2024-03-06", debit(f.cash, "40"), credit(f.revenue, "40")) // draft, ignored

	_, err := f.app.BankStatements.CreateBankStatement(ctx, company, &bankstatement.CreateBankStatementRequest{
		BankAccountID: f.cash.AccountID,
		StatementDate: "2024-03-31",
		Lines: []bankstatement.LineInput{
			{Date: "2024-03-05", Amount: d("250")},
			{Date: "2024-03-12", Amount: d("80")},
			{Date: "2024-03-06", Amount: d("40")},
		},
	})
	require.NoError(t, err)

	// Act
	summary, err := f.app.Reconciler.Reconcile(ctx, reconciliation.Request{
		CompanyID:     company,
		BankAccountID: f.cash.AccountID,
		StartDate:     "2024-03-01",
		EndDate:       "2024-03-31",
	})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 3, summary.TotalBankLines)
	assert.Equal(t, 3, summary.TotalJournalLines)
	assert.Equal(t, 1, summary.AutoMatched)
	assert.Equal(t, 1, summary.ManualReviewRequired)
	assert.Equal(t, 1, summary.UnmatchedBank)
	assert.Equal(t, 1, summary.UnmatchedJournal)
}

func TestCompaniesAreIsolated(t *testing.T) {
	f := newTestApp(t)
	ctx := context.Background()

	_, err := f.app.FiscalYears.CreateFiscalYear(ctx, "globex", &fiscalyear.CreateFiscalYearRequest{
		StartDate: "2024-01-01", EndDate: "2024-12-31",
	})
	require.NoError(t, err)

	_, err = f.app.Journal.CreateJournalEntry(ctx, "globex", "alice", &journal.CreateJournalEntryRequest{
		Date:  "2024-03-01",
		Lines: []journal.LineInput{debit(f.cash, "1"), credit(f.revenue, "1")},
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrNotFound))
}
