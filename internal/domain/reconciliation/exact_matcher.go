package reconciliation

import (
	"context"
	"log/slog"
	"time"

	"github.com/Janar2510/FUSION-AI-Enterprise-Suite-AI-Driven-modular-ERP-Platform-sub000/internal/common/utils"
	"github.com/Janar2510/FUSION-AI-Enterprise-Suite-AI-Driven-modular-ERP-Platform-sub000/internal/domain/bankstatement"
	"github.com/Janar2510/FUSION-AI-Enterprise-Suite-AI-Driven-modular-ERP-Platform-sub000/internal/domain/errors"
	"github.com/Janar2510/FUSION-AI-Enterprise-Suite-AI-Driven-modular-ERP-Platform-sub000/internal/domain/uow"
)

// BankLines reads imported statement lines
type BankLines interface {
	LinesBetween(ctx context.Context, companyID, bankAccountID, startDate, endDate string) ([]bankstatement.Line, error)
}

// ExactMatcher pairs lines with equal amounts. Equal dates are matched
// automatically; dates up to WindowDays apart need manual review. Each line
// is used in at most one pair.
type ExactMatcher struct {
	bank       BankLines
	journal    JournalLines
	tx         uow.Transactor
	windowDays int
	logger     *slog.Logger
}

var _ Reconciler = (*ExactMatcher)(nil)

// NewExactMatcher creates the default reconciler
func NewExactMatcher(bank BankLines, journal JournalLines, tx uow.Transactor, windowDays int, logger *slog.Logger) *ExactMatcher {
	if windowDays < 0 {
		windowDays = 0
	}
	return &ExactMatcher{
		bank:       bank,
		journal:    journal,
		tx:         tx,
		windowDays: windowDays,
		logger:     logger,
	}
}

// Reconcile implements Reconciler
func (m *ExactMatcher) Reconcile(ctx context.Context, req Request) (*Summary, error) {
	if err := utils.ValidateRequiredString(req.CompanyID, "company ID"); err != nil {
		return nil, err
	}
	if err := utils.ValidateRequiredString(req.BankAccountID, "bank account"); err != nil {
		return nil, err
	}
	if err := utils.ValidateISODate(req.StartDate); err != nil {
		return nil, err
	}
	if err := utils.ValidateISODate(req.EndDate); err != nil {
		return nil, err
	}
	if req.EndDate < req.StartDate {
		return nil, errors.NewValidationError("end date is before start date")
	}

	var (
		bankLines    []bankstatement.Line
		journalLines []JournalLine
	)
	err := m.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		bankLines, err = m.bank.LinesBetween(ctx, req.CompanyID, req.BankAccountID, req.StartDate, req.EndDate)
		if err != nil {
			return err
		}
		journalLines, err = m.journal.PostedLinesBetween(ctx, req.CompanyID, req.BankAccountID, req.StartDate, req.EndDate)
		return err
	})
	if err != nil {
		return nil, err
	}

	summary := MatchLines(bankLines, journalLines, m.windowDays)
	m.logger.Info("bank reconciliation finished",
		"companyId", req.CompanyID,
		"bankAccountId", req.BankAccountID,
		"autoMatched", summary.AutoMatched,
		"manualReviewRequired", summary.ManualReviewRequired,
		"unmatchedBank", summary.UnmatchedBank,
		"unmatchedJournal", summary.UnmatchedJournal,
	)
	return summary, nil
}

// MatchLines runs the two matching passes over already loaded lines.
func MatchLines(bankLines []bankstatement.Line, journalLines []JournalLine, windowDays int) *Summary {
	summary := &Summary{
		TotalBankLines:    len(bankLines),
		TotalJournalLines: len(journalLines),
		Matches:           []Match{},
	}

	bankUsed := make([]bool, len(bankLines))
	journalUsed := make([]bool, len(journalLines))

	pass := func(kind MatchKind, accept func(bankDate, journalDate string) bool) {
		for i, b := range bankLines {
			if bankUsed[i] {
				continue
			}
			for j, jl := range journalLines {
				if journalUsed[j] || !b.Amount.Equal(jl.Amount) || !accept(b.Date, jl.Date) {
					continue
				}
				bankUsed[i], journalUsed[j] = true, true
				summary.Matches = append(summary.Matches, Match{
					BankLineID:    b.LineID,
					JournalLineID: jl.LineID,
					EntryNumber:   jl.EntryNumber,
					Kind:          kind,
				})
				break
			}
		}
	}

	pass(Auto, func(bankDate, journalDate string) bool {
		return bankDate == journalDate
	})
	pass(Review, func(bankDate, journalDate string) bool {
		return daysApart(bankDate, journalDate) <= windowDays
	})

	for _, match := range summary.Matches {
		switch match.Kind {
		case Auto:
			summary.AutoMatched++
		case Review:
			summary.ManualReviewRequired++
		}
	}
	for _, used := range bankUsed {
		if !used {
			summary.UnmatchedBank++
		}
	}
	for _, used := range journalUsed {
		if !used {
			summary.UnmatchedJournal++
		}
	}
	return summary
}

func daysApart(a, b string) int {
	ta, errA := utils.ParseISODate(a)
	tb, errB := utils.ParseISODate(b)
	if errA != nil || errB != nil {
		return int(^uint(0) >> 1)
	}
	d := ta.Sub(tb)
	if d < 0 {
		d = -d
	}
	return int(d / (24 * time.Hour))
}
