package reconciliation

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Janar2510/FUSION-AI-Enterprise-Suite-AI-Driven-modular-ERP-Platform-sub000/internal/domain/bankstatement"
	"github.com/Janar2510/FUSION-AI-Enterprise-Suite-AI-Driven-modular-ERP-Platform-sub000/internal/domain/errors"
	"github.com/Janar2510/FUSION-AI-Enterprise-Suite-AI-Driven-modular-ERP-Platform-sub000/internal/domain/uow"
)

func bankLine(id, date, amount string) bankstatement.Line {
	return bankstatement.Line{LineID: id, Date: date, Amount: decimal.RequireFromString(amount)}
}

func journalLine(id, date, amount string) JournalLine {
	return JournalLine{LineID: id, EntryNumber: "JE-" + id, Date: date, Amount: decimal.RequireFromString(amount)}
}

func TestMatchLines(t *testing.T) {
	t.Run("exact date matches before windowed ones", func(t *testing.T) {
		// Setup
		bank := []bankstatement.Line{
			bankLine("b1", "2024-03-05", "250"),
			bankLine("b2", "2024-03-12", "80"),
			bankLine("b3", "2024-03-20", "40"),
		}
		journal := []JournalLine{
			journalLine("j1", "2024-03-05", "250"),
			journalLine("j2", "2024-03-10", "80"),
		}

		// Act
		summary := MatchLines(bank, journal, 3)

		// Assert
		assert.Equal(t, 3, summary.TotalBankLines)
		assert.Equal(t, 2, summary.TotalJournalLines)
		assert.Equal(t, 1, summary.AutoMatched)
		assert.Equal(t, 1, summary.ManualReviewRequired)
		assert.Equal(t, 1, summary.UnmatchedBank)
		assert.Equal(t, 0, summary.UnmatchedJournal)
		assert.Equal(t, []Match{
			{BankLineID: "b1", JournalLineID: "j1", EntryNumber: "JE-j1", Kind: Auto},
			{BankLineID: "b2", JournalLineID: "j2", EntryNumber: "JE-j2", Kind: Review},
		}, summary.Matches)
	})

	t.Run("an exact pair is not stolen by an earlier windowed candidate", func(t *testing.T) {
		bank := []bankstatement.Line{
			bankLine("b1", "2024-03-04", "100"),
			bankLine("b2", "2024-03-05", "100"),
		}
		journal := []JournalLine{journalLine("j1", "2024-03-05", "100")}

		summary := MatchLines(bank, journal, 3)

		require.Len(t, summary.Matches, 1)
		assert.Equal(t, "b2", summary.Matches[0].BankLineID)
		assert.Equal(t, Auto, summary.Matches[0].Kind)
		assert.Equal(t, 1, summary.UnmatchedBank)
	})

	t.Run("each line is used once", func(t *testing.T) {
		bank := []bankstatement.Line{
			bankLine("b1", "2024-03-05", "10"),
			bankLine("b2", "2024-03-05", "10"),
		}
		journal := []JournalLine{
			journalLine("j1", "2024-03-05", "10"),
			journalLine("j2", "2024-03-05", "10"),
			journalLine("j3", "2024-03-05", "10"),
		}

		summary := MatchLines(bank, journal, 0)

		assert.Equal(t, 2, summary.AutoMatched)
		assert.Equal(t, 0, summary.UnmatchedBank)
		assert.Equal(t, 1, summary.UnmatchedJournal)
	})

	t.Run("amounts must be equal including sign", func(t *testing.T) {
		bank := []bankstatement.Line{bankLine("b1", "2024-03-05", "-12.00")}
		journal := []JournalLine{journalLine("j1", "2024-03-05", "12"), journalLine("j2", "2024-03-05", "-12")}

		summary := MatchLines(bank, journal, 0)

		require.Len(t, summary.Matches, 1)
		assert.Equal(t, "j2", summary.Matches[0].JournalLineID)
	})

	t.Run("outside the window stays unmatched", func(t *testing.T) {
		summary := MatchLines(
			[]bankstatement.Line{bankLine("b1", "2024-03-01", "5")},
			[]JournalLine{journalLine("j1", "2024-03-05", "5")},
			3,
		)
		assert.Empty(t, summary.Matches)
		assert.Equal(t, 1, summary.UnmatchedBank)
		assert.Equal(t, 1, summary.UnmatchedJournal)
	})

	t.Run("empty input", func(t *testing.T) {
		summary := MatchLines(nil, nil, 3)
		assert.NotNil(t, summary.Matches)
		assert.Zero(t, summary.TotalBankLines)
	})
}

func TestDaysApart(t *testing.T) {
	assert.Equal(t, 0, daysApart("2024-03-05", "2024-03-05"))
	assert.Equal(t, 2, daysApart("2024-03-10", "2024-03-12"))
	assert.Equal(t, 2, daysApart("2024-03-12", "2024-03-10"))
	assert.Equal(t, 2, daysApart("2024-02-28", "2024-03-01"))
	assert.Greater(t, daysApart("garbage", "2024-03-01"), 1000000)
}

type stubBank []bankstatement.Line

func (s stubBank) LinesBetween(ctx context.Context, companyID, bankAccountID, startDate, endDate string) ([]bankstatement.Line, error) {
	return s, nil
}

type stubJournal []JournalLine

func (s stubJournal) PostedLinesBetween(ctx context.Context, companyID, accountID, startDate, endDate string) ([]JournalLine, error) {
	return s, nil
}

func TestExactMatcherReconcile(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	matcher := NewExactMatcher(
		stubBank{bankLine("b1", "2024-03-05", "250")},
		stubJournal{journalLine("j1", "2024-03-06", "250")},
		uow.Passthrough, 1, logger,
	)

	t.Run("uses the configured window", func(t *testing.T) {
		summary, err := matcher.Reconcile(context.Background(), Request{
			CompanyID: "acme", BankAccountID: "cash", StartDate: "2024-03-01", EndDate: "2024-03-31",
		})
		require.NoError(t, err)
		assert.Equal(t, 1, summary.ManualReviewRequired)
	})

	invalid := []struct {
		name string
		req  Request
	}{
		{"missing company", Request{BankAccountID: "cash", StartDate: "2024-03-01", EndDate: "2024-03-31"}},
		{"missing bank account", Request{CompanyID: "acme", StartDate: "2024-03-01", EndDate: "2024-03-31"}},
		{"bad start date", Request{CompanyID: "acme", BankAccountID: "cash", StartDate: "March", EndDate: "2024-03-31"}},
		{"reversed range", Request{CompanyID: "acme", BankAccountID: "cash", StartDate: "2024-04-01", EndDate: "2024-03-31"}},
	}
	for _, tt := range invalid {
		t.Run(tt.name, func(t *testing.T) {
			_, err := matcher.Reconcile(context.Background(), tt.req)
			assert.True(t, errors.Is(err, errors.ErrValidation), "got %v", err)
		})
	}
}
