package repository

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"strings"

	commonErrors "github.com/Janar2510/FUSION-AI-Enterprise-Suite-AI-Driven-modular-ERP-Platform-sub000/internal/domain/errors"
	"github.com/Janar2510/FUSION-AI-Enterprise-Suite-AI-Driven-modular-ERP-Platform-sub000/internal/domain/journal"
	"github.com/Janar2510/FUSION-AI-Enterprise-Suite-AI-Driven-modular-ERP-Platform-sub000/internal/domain/reconciliation"
	"github.com/Janar2510/FUSION-AI-Enterprise-Suite-AI-Driven-modular-ERP-Platform-sub000/internal/platform/sqlite"
)

const (
	entryColumns = `journal_entry_id, entry_number, company_id, fiscal_year_id, entry_date, reference, state,
		created_by, posted_by, posted_at, created_at, updated_at`
	lineColumns = `line_id, journal_entry_id, position, account_id, debit, credit, description,
		tax_id, partner_id, analytic_account_id`
)

// SQLiteJournalRepository implements the journal.Repository interface
type SQLiteJournalRepository struct {
	db     DB
	logger *slog.Logger
}

var (
	_ journal.Repository          = (*SQLiteJournalRepository)(nil)
	_ reconciliation.JournalLines = (*SQLiteJournalRepository)(nil)
)

// NewSQLiteJournalRepository creates a new SQLiteJournalRepository
func NewSQLiteJournalRepository(db DB, logger *slog.Logger) *SQLiteJournalRepository {
	return &SQLiteJournalRepository{db: db, logger: logger}
}

func scanEntry(r row) (*journal.JournalEntry, error) {
	var (
		e                    journal.JournalEntry
		state                string
		postedBy, postedAt   sql.NullString
		createdAt, updatedAt string
	)
	if err := r.Scan(&e.JournalEntryID, &e.EntryNumber, &e.CompanyID, &e.FiscalYearID, &e.Date, &e.Reference, &state,
		&e.CreatedBy, &postedBy, &postedAt, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	e.State = journal.State(state)
	e.PostedBy = postedBy.String

	var err error
	if e.PostedAt, err = parseOptionalTime(postedAt); err != nil {
		return nil, err
	}
	if e.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if e.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	return &e, nil
}

func scanLine(r row) (journal.Line, error) {
	var (
		l                       journal.Line
		debit, credit           string
		taxID, partnerID, anaID sql.NullString
	)
	if err := r.Scan(&l.LineID, &l.JournalEntryID, &l.Position, &l.AccountID, &debit, &credit, &l.Description,
		&taxID, &partnerID, &anaID); err != nil {
		return l, err
	}
	l.TaxID, l.PartnerID, l.AnalyticAccountID = taxID.String, partnerID.String, anaID.String

	var err error
	if l.Debit, err = parseDecimal(debit); err != nil {
		return l, err
	}
	if l.Credit, err = parseDecimal(credit); err != nil {
		return l, err
	}
	return l, nil
}

// CreateJournalEntry inserts the entry header and all of its lines
func (r *SQLiteJournalRepository) CreateJournalEntry(ctx context.Context, e *journal.JournalEntry) error {
	q := r.db.Querier(ctx)
	_, err := q.ExecContext(ctx,
		`INSERT INTO journal_entries (`+entryColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.JournalEntryID, e.EntryNumber, e.CompanyID, e.FiscalYearID, e.Date, e.Reference, string(e.State),
		e.CreatedBy, nullString(e.PostedBy), optionalTimeText(e.PostedAt), timeText(e.CreatedAt), timeText(e.UpdatedAt),
	)
	if err != nil {
		return storageError("failed to create journal entry", err)
	}
	return insertLines(ctx, q, e.Lines)
}

func insertLines(ctx context.Context, q sqlite.Querier, lines []journal.Line) error {
	for _, l := range lines {
		_, err := q.ExecContext(ctx,
			`INSERT INTO journal_entry_lines (`+lineColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			l.LineID, l.JournalEntryID, l.Position, l.AccountID, l.Debit.String(), l.Credit.String(), l.Description,
			nullString(l.TaxID), nullString(l.PartnerID), nullString(l.AnalyticAccountID),
		)
		if err != nil {
			return storageError("failed to create journal entry line", err)
		}
	}
	return nil
}

// GetJournalEntry retrieves a journal entry with its lines in order
func (r *SQLiteJournalRepository) GetJournalEntry(ctx context.Context, journalEntryID string) (*journal.JournalEntry, error) {
	q := r.db.Querier(ctx)
	e, err := scanEntry(q.QueryRowContext(ctx,
		`SELECT `+entryColumns+` FROM journal_entries WHERE journal_entry_id = ?`, journalEntryID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, commonErrors.NewNotFoundError("journal entry not found")
	}
	if err != nil {
		return nil, storageError("failed to get journal entry", err)
	}

	rows, err := q.QueryContext(ctx,
		`SELECT `+lineColumns+` FROM journal_entry_lines WHERE journal_entry_id = ? ORDER BY position`, journalEntryID)
	if err != nil {
		return nil, storageError("failed to get journal entry lines", err)
	}
	defer rows.Close()

	for rows.Next() {
		l, err := scanLine(rows)
		if err != nil {
			return nil, storageError("failed to read journal entry line", err)
		}
		e.Lines = append(e.Lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, storageError("failed to get journal entry lines", err)
	}
	return e, nil
}

// ListJournalEntries returns one page of entry headers, newest first
func (r *SQLiteJournalRepository) ListJournalEntries(ctx context.Context, companyID string, filter journal.JournalEntryFilter) ([]*journal.JournalEntry, int, error) {
	where := []string{"company_id = ?"}
	args := []any{companyID}
	if filter.State != "" {
		where = append(where, "state = ?")
		args = append(args, string(filter.State))
	}
	clause := strings.Join(where, " AND ")

	q := r.db.Querier(ctx)
	total, err := countRows(ctx, q, `SELECT COUNT(*) FROM journal_entries WHERE `+clause, args...)
	if err != nil {
		return nil, 0, err
	}

	rows, err := q.QueryContext(ctx,
		`SELECT `+entryColumns+` FROM journal_entries WHERE `+clause+`
		ORDER BY entry_date DESC, entry_number DESC LIMIT ? OFFSET ?`,
		append(args, filter.Limit, filter.Skip)...)
	if err != nil {
		return nil, 0, storageError("failed to list journal entries", err)
	}
	defer rows.Close()

	var entries []*journal.JournalEntry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, 0, storageError("failed to read journal entry", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, storageError("failed to list journal entries", err)
	}
	return entries, total, nil
}

// UpdateJournalEntry writes the header fields of an entry
func (r *SQLiteJournalRepository) UpdateJournalEntry(ctx context.Context, e *journal.JournalEntry) error {
	res, err := r.db.Querier(ctx).ExecContext(ctx, `
		UPDATE journal_entries
		SET fiscal_year_id = ?, entry_date = ?, reference = ?, state = ?, posted_by = ?, posted_at = ?, updated_at = ?
		WHERE journal_entry_id = ?`,
		e.FiscalYearID, e.Date, e.Reference, string(e.State), nullString(e.PostedBy), optionalTimeText(e.PostedAt),
		timeText(e.UpdatedAt), e.JournalEntryID,
	)
	if err != nil {
		return storageError("failed to update journal entry", err)
	}
	return expectOne(res, "journal entry not found")
}

// ReplaceLines deletes every line of the entry and inserts the new set
func (r *SQLiteJournalRepository) ReplaceLines(ctx context.Context, journalEntryID string, lines []journal.Line) error {
	if err := r.DeleteLines(ctx, journalEntryID); err != nil {
		return err
	}
	return insertLines(ctx, r.db.Querier(ctx), lines)
}

// DeleteLines removes every line of the entry
func (r *SQLiteJournalRepository) DeleteLines(ctx context.Context, journalEntryID string) error {
	if _, err := r.db.Querier(ctx).ExecContext(ctx,
		`DELETE FROM journal_entry_lines WHERE journal_entry_id = ?`, journalEntryID); err != nil {
		return storageError("failed to delete journal entry lines", err)
	}
	return nil
}

// DeleteJournalEntry removes the entry header
func (r *SQLiteJournalRepository) DeleteJournalEntry(ctx context.Context, journalEntryID string) error {
	res, err := r.db.Querier(ctx).ExecContext(ctx,
		`DELETE FROM journal_entries WHERE journal_entry_id = ?`, journalEntryID)
	if err != nil {
		return storageError("failed to delete journal entry", err)
	}
	return expectOne(res, "journal entry not found")
}

// PostedLinesBetween returns the posted movements of one account dated
// within [startDate, endDate], as debit minus credit.
func (r *SQLiteJournalRepository) PostedLinesBetween(ctx context.Context, companyID, accountID, startDate, endDate string) ([]reconciliation.JournalLine, error) {
	rows, err := r.db.Querier(ctx).QueryContext(ctx, `
		SELECT l.line_id, e.entry_number, e.entry_date, l.debit, l.credit
		FROM journal_entry_lines l
		JOIN journal_entries e ON e.journal_entry_id = l.journal_entry_id
		WHERE e.company_id = ? AND l.account_id = ? AND e.state = 'posted'
			AND e.entry_date >= ? AND e.entry_date <= ?
		ORDER BY e.entry_date, e.entry_number, l.position`,
		companyID, accountID, startDate, endDate)
	if err != nil {
		return nil, storageError("failed to list posted lines", err)
	}
	defer rows.Close()

	var lines []reconciliation.JournalLine
	for rows.Next() {
		var (
			jl            reconciliation.JournalLine
			debit, credit string
		)
		if err := rows.Scan(&jl.LineID, &jl.EntryNumber, &jl.Date, &debit, &credit); err != nil {
			return nil, storageError("failed to read posted line", err)
		}
		d, err := parseDecimal(debit)
		if err != nil {
			return nil, storageError("failed to read posted line", err)
		}
		c, err := parseDecimal(credit)
		if err != nil {
			return nil, storageError("failed to read posted line", err)
		}
		jl.Amount = d.Sub(c)
		lines = append(lines, jl)
	}
	if err := rows.Err(); err != nil {
		return nil, storageError("failed to list posted lines", err)
	}
	return lines, nil
}
