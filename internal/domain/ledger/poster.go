// Package ledger commits draft journal entries into the ledger.
package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Janar2510/FUSION-AI-Enterprise-Suite-AI-Driven-modular-ERP-Platform-sub000/internal/domain/errors"
	"github.com/Janar2510/FUSION-AI-Enterprise-Suite-AI-Driven-modular-ERP-Platform-sub000/internal/domain/fiscalyear"
	"github.com/Janar2510/FUSION-AI-Enterprise-Suite-AI-Driven-modular-ERP-Platform-sub000/internal/domain/journal"
	"github.com/Janar2510/FUSION-AI-Enterprise-Suite-AI-Driven-modular-ERP-Platform-sub000/internal/domain/uow"
)

// Positions maintains the running posted net of each account
type Positions interface {
	ApplyToPosition(ctx context.Context, accountID string, delta decimal.Decimal, journalEntryID string) error
}

// FiscalYears looks up the year an entry belongs to
type FiscalYears interface {
	GetFiscalYear(ctx context.Context, fiscalYearID string) (*fiscalyear.FiscalYear, error)
}

// Recorder receives posting events
type Recorder interface {
	EntryPosted(companyID string, lines int)
}

type nopRecorder struct{}

func (nopRecorder) EntryPosted(string, int) {}

// Poster moves draft entries to posted
type Poster struct {
	entries   journal.Repository
	positions Positions
	years     FiscalYears
	tx        uow.Transactor
	recorder  Recorder
	logger    *slog.Logger
	now       func() time.Time
}

// NewPoster creates a new poster
func NewPoster(entries journal.Repository, positions Positions, years FiscalYears, tx uow.Transactor, logger *slog.Logger) *Poster {
	return &Poster{
		entries:   entries,
		positions: positions,
		years:     years,
		tx:        tx,
		recorder:  nopRecorder{},
		logger:    logger,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// WithRecorder sets the event recorder and returns the poster.
func (p *Poster) WithRecorder(r Recorder) *Poster {
	if r != nil {
		p.recorder = r
	}
	return p
}

// Post commits a draft entry. Every line's debit minus credit is applied to
// its account position and the entry becomes posted, all in one transaction.
// There is no way back; corrections are made with an offsetting entry.
func (p *Poster) Post(ctx context.Context, journalEntryID string, actorID string) (*journal.JournalEntry, error) {
	var entry *journal.JournalEntry
	err := p.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		entry, err = p.entries.GetJournalEntry(ctx, journalEntryID)
		if err != nil {
			return err
		}
		if !entry.IsDraft() {
			return errors.NewStateConflictError(fmt.Sprintf("journal entry %s is already posted", entry.EntryNumber))
		}

		fy, err := p.years.GetFiscalYear(ctx, entry.FiscalYearID)
		if err != nil {
			return err
		}
		if !fy.IsOpen() {
			return errors.NewStateConflictError(fmt.Sprintf("cannot post into closed fiscal year %s", fy.Name))
		}

		debit, credit := entry.Totals()
		if !debit.Equal(credit) {
			return errors.NewInternalError(fmt.Sprintf("stored journal entry %s is not balanced", entry.EntryNumber), nil)
		}

		deltas := NetByAccount(entry.Lines)
		for _, accountID := range sortedKeys(deltas) {
			if err := p.positions.ApplyToPosition(ctx, accountID, deltas[accountID], entry.JournalEntryID); err != nil {
				return err
			}
		}

		now := p.now()
		entry.State = journal.Posted
		entry.PostedBy = actorID
		entry.PostedAt = &now
		entry.UpdatedAt = now
		return p.entries.UpdateJournalEntry(ctx, entry)
	})
	if err != nil {
		return nil, err
	}

	p.recorder.EntryPosted(entry.CompanyID, len(entry.Lines))
	p.logger.Info("journal entry posted",
		"companyId", entry.CompanyID,
		"journalEntryId", entry.JournalEntryID,
		"entryNumber", entry.EntryNumber,
		"actorId", actorID,
	)
	return entry, nil
}

// NetByAccount sums debit minus credit per account.
func NetByAccount(lines []journal.Line) map[string]decimal.Decimal {
	nets := make(map[string]decimal.Decimal)
	for _, l := range lines {
		nets[l.AccountID] = nets[l.AccountID].Add(l.Net())
	}
	return nets
}

// sortedKeys gives positions a stable update order across transactions.
func sortedKeys(m map[string]decimal.Decimal) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
