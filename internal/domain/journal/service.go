package journal

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	ulid "github.com/oklog/ulid/v2"

	"github.com/Janar2510/FUSION-AI-Enterprise-Suite-AI-Driven-modular-ERP-Platform-sub000/internal/common/utils"
	"github.com/Janar2510/FUSION-AI-Enterprise-Suite-AI-Driven-modular-ERP-Platform-sub000/internal/domain/account"
	"github.com/Janar2510/FUSION-AI-Enterprise-Suite-AI-Driven-modular-ERP-Platform-sub000/internal/domain/errors"
	"github.com/Janar2510/FUSION-AI-Enterprise-Suite-AI-Driven-modular-ERP-Platform-sub000/internal/domain/fiscalyear"
	"github.com/Janar2510/FUSION-AI-Enterprise-Suite-AI-Driven-modular-ERP-Platform-sub000/internal/domain/tax"
	"github.com/Janar2510/FUSION-AI-Enterprise-Suite-AI-Driven-modular-ERP-Platform-sub000/internal/domain/uow"
)

// AccountLookup resolves accounts referenced by lines
type AccountLookup interface {
	GetAccount(ctx context.Context, accountID string) (*account.Account, error)
}

// TaxLookup resolves taxes referenced by lines
type TaxLookup interface {
	GetTax(ctx context.Context, taxID string) (*tax.Tax, error)
}

// Calendar is the part of the fiscal-year calendar the store depends on
type Calendar interface {
	Resolve(ctx context.Context, companyID string, date string) (*fiscalyear.FiscalYear, bool, error)
	GetFiscalYear(ctx context.Context, fiscalYearID string) (*fiscalyear.FiscalYear, error)
}

// Recorder receives journal store events, typically for metrics
type Recorder interface {
	EntryCreated(companyID string)
	EntryDeleted(companyID string)
}

type nopRecorder struct{}

func (nopRecorder) EntryCreated(string) {}
func (nopRecorder) EntryDeleted(string) {}

// Service provides journal entry-related business logic
type Service struct {
	repo      Repository
	sequencer Sequencer
	accounts  AccountLookup
	taxes     TaxLookup
	calendar  Calendar
	tx        uow.Transactor
	recorder  Recorder
	logger    *slog.Logger
	now       func() time.Time
}

// NewService creates a new journal entry service
func NewService(
	repo Repository,
	sequencer Sequencer,
	accounts AccountLookup,
	taxes TaxLookup,
	calendar Calendar,
	tx uow.Transactor,
	logger *slog.Logger,
) *Service {
	return &Service{
		repo:      repo,
		sequencer: sequencer,
		accounts:  accounts,
		taxes:     taxes,
		calendar:  calendar,
		tx:        tx,
		recorder:  nopRecorder{},
		logger:    logger,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// WithRecorder sets the event recorder and returns the service.
func (s *Service) WithRecorder(r Recorder) *Service {
	if r != nil {
		s.recorder = r
	}
	return s
}

// CreateJournalEntry validates and stores a new draft entry
func (s *Service) CreateJournalEntry(ctx context.Context, companyID string, actorID string, req *CreateJournalEntryRequest) (*JournalEntry, error) {
	if err := utils.ValidateRequiredString(companyID, "company ID"); err != nil {
		return nil, err
	}
	if err := utils.ValidateISODate(req.Date); err != nil {
		return nil, err
	}
	if err := ValidateLines(req.Lines); err != nil {
		return nil, err
	}

	now := s.now()
	entry := &JournalEntry{
		JournalEntryID: ulid.Make().String(),
		CompanyID:      companyID,
		Date:           req.Date,
		Reference:      strings.TrimSpace(req.Reference),
		State:          Draft,
		CreatedBy:      actorID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		fy, err := s.resolveOpenYear(ctx, companyID, req.Date)
		if err != nil {
			return err
		}
		entry.FiscalYearID = fy.FiscalYearID

		if err := s.verifyReferences(ctx, companyID, req.Lines); err != nil {
			return err
		}
		entry.Lines = buildLines(entry.JournalEntryID, req.Lines)

		seq, err := s.sequencer.NextEntryNumber(ctx, companyID)
		if err != nil {
			return err
		}
		entry.EntryNumber = FormatEntryNumber(companyID, seq)

		return s.repo.CreateJournalEntry(ctx, entry)
	})
	if err != nil {
		return nil, err
	}

	s.recorder.EntryCreated(companyID)
	s.logger.Info("journal entry created",
		"companyId", companyID,
		"journalEntryId", entry.JournalEntryID,
		"entryNumber", entry.EntryNumber,
		"lines", len(entry.Lines),
	)
	return entry, nil
}

// GetJournalEntry retrieves a journal entry by ID
func (s *Service) GetJournalEntry(ctx context.Context, journalEntryID string) (*JournalEntry, error) {
	var entry *JournalEntry
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		entry, err = s.repo.GetJournalEntry(ctx, journalEntryID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// ListJournalEntries retrieves journal entries based on criteria
func (s *Service) ListJournalEntries(ctx context.Context, companyID string, filter JournalEntryFilter) (*GetJournalEntriesResponse, error) {
	if filter.State != "" && !filter.State.Valid() {
		return nil, errors.NewValidationError(fmt.Sprintf("invalid journal entry state %q", filter.State))
	}
	filter = filter.Normalize()

	response := &GetJournalEntriesResponse{}
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		entries, total, err := s.repo.ListJournalEntries(ctx, companyID, filter)
		if err != nil {
			return err
		}
		response.JournalEntries = entries
		response.TotalCount = total
		return nil
	})
	if err != nil {
		return nil, err
	}
	if response.JournalEntries == nil {
		response.JournalEntries = []*JournalEntry{}
	}
	return response, nil
}

// UpdateJournalEntry changes a draft entry. Replaced lines are re-validated
// and swapped as a whole.
func (s *Service) UpdateJournalEntry(ctx context.Context, journalEntryID string, req *UpdateJournalEntryRequest) (*JournalEntry, error) {
	if req.Date != nil {
		if err := utils.ValidateISODate(*req.Date); err != nil {
			return nil, err
		}
	}
	if req.Lines != nil {
		if err := ValidateLines(*req.Lines); err != nil {
			return nil, err
		}
	}

	var entry *JournalEntry
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		entry, err = s.loadMutable(ctx, journalEntryID)
		if err != nil {
			return err
		}

		if req.Date != nil && *req.Date != entry.Date {
			fy, err := s.resolveOpenYear(ctx, entry.CompanyID, *req.Date)
			if err != nil {
				return err
			}
			entry.Date = *req.Date
			entry.FiscalYearID = fy.FiscalYearID
		}

		if req.Reference != nil {
			entry.Reference = strings.TrimSpace(*req.Reference)
		}

		if req.Lines != nil {
			if err := s.verifyReferences(ctx, entry.CompanyID, *req.Lines); err != nil {
				return err
			}
			entry.Lines = buildLines(entry.JournalEntryID, *req.Lines)
			if err := s.repo.ReplaceLines(ctx, entry.JournalEntryID, entry.Lines); err != nil {
				return err
			}
		}

		entry.UpdatedAt = s.now()
		return s.repo.UpdateJournalEntry(ctx, entry)
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// DeleteJournalEntry removes a draft entry and its lines
func (s *Service) DeleteJournalEntry(ctx context.Context, journalEntryID string) error {
	var companyID string
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		entry, err := s.loadMutable(ctx, journalEntryID)
		if err != nil {
			return err
		}
		companyID = entry.CompanyID

		if err := s.repo.DeleteLines(ctx, journalEntryID); err != nil {
			return err
		}
		return s.repo.DeleteJournalEntry(ctx, journalEntryID)
	})
	if err != nil {
		return err
	}

	s.recorder.EntryDeleted(companyID)
	s.logger.Info("journal entry deleted", "journalEntryId", journalEntryID)
	return nil
}

// loadMutable loads an entry and rejects it unless it is a draft in an open year.
func (s *Service) loadMutable(ctx context.Context, journalEntryID string) (*JournalEntry, error) {
	entry, err := s.repo.GetJournalEntry(ctx, journalEntryID)
	if err != nil {
		return nil, err
	}
	if !entry.IsDraft() {
		return nil, errors.NewStateConflictError("posted journal entries cannot be modified or deleted")
	}

	fy, err := s.calendar.GetFiscalYear(ctx, entry.FiscalYearID)
	if err != nil {
		return nil, err
	}
	if !fy.IsOpen() {
		return nil, errors.NewStateConflictError(fmt.Sprintf("fiscal year %s is closed, its draft entries are frozen", fy.Name))
	}
	return entry, nil
}

func (s *Service) resolveOpenYear(ctx context.Context, companyID string, date string) (*fiscalyear.FiscalYear, error) {
	fy, ok, err := s.calendar.Resolve(ctx, companyID, date)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errors.NewValidationError(fmt.Sprintf("no open fiscal year for company %s on %s", companyID, date))
	}
	return fy, nil
}

// verifyReferences checks that every referenced account exists in the
// company and is active, and that referenced taxes exist.
func (s *Service) verifyReferences(ctx context.Context, companyID string, lines []LineInput) error {
	checked := make(map[string]bool, len(lines))
	for i, line := range lines {
		if !checked[line.AccountID] {
			acc, err := s.accounts.GetAccount(ctx, line.AccountID)
			if err != nil {
				if errors.Is(err, errors.ErrNotFound) {
					return errors.NewNotFoundError(fmt.Sprintf("line %d: account %s not found", i+1, line.AccountID))
				}
				return err
			}
			if acc.CompanyID != companyID {
				return errors.NewNotFoundError(fmt.Sprintf("line %d: account %s not found", i+1, line.AccountID))
			}
			if !acc.Active {
				return errors.NewValidationError(fmt.Sprintf("line %d: account %s is inactive", i+1, acc.Code))
			}
			checked[line.AccountID] = true
		}

		if line.TaxID != "" {
			t, err := s.taxes.GetTax(ctx, line.TaxID)
			if err != nil {
				return err
			}
			if t.CompanyID != companyID {
				return errors.NewNotFoundError(fmt.Sprintf("line %d: tax %s not found", i+1, line.TaxID))
			}
		}
	}
	return nil
}

func buildLines(journalEntryID string, inputs []LineInput) []Line {
	lines := make([]Line, 0, len(inputs))
	for i, in := range inputs {
		lines = append(lines, Line{
			LineID:            ulid.Make().String(),
			JournalEntryID:    journalEntryID,
			Position:          i + 1,
			AccountID:         in.AccountID,
			Debit:             in.Debit,
			Credit:            in.Credit,
			Description:       strings.TrimSpace(in.Description),
			TaxID:             in.TaxID,
			PartnerID:         in.PartnerID,
			AnalyticAccountID: in.AnalyticAccountID,
		})
	}
	return lines
}
