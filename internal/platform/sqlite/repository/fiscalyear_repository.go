package repository

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	commonErrors "github.com/Janar2510/FUSION-AI-Enterprise-Suite-AI-Driven-modular-ERP-Platform-sub000/internal/domain/errors"
	"github.com/Janar2510/FUSION-AI-Enterprise-Suite-AI-Driven-modular-ERP-Platform-sub000/internal/domain/fiscalyear"
)

const fiscalYearColumns = `fiscal_year_id, company_id, name, start_date, end_date, state, closed_at, closed_by, created_at, updated_at`

// SQLiteFiscalYearRepository implements the fiscalyear.Repository interface
type SQLiteFiscalYearRepository struct {
	db     DB
	logger *slog.Logger
}

var _ fiscalyear.Repository = (*SQLiteFiscalYearRepository)(nil)

// NewSQLiteFiscalYearRepository creates a new SQLiteFiscalYearRepository
func NewSQLiteFiscalYearRepository(db DB, logger *slog.Logger) *SQLiteFiscalYearRepository {
	return &SQLiteFiscalYearRepository{db: db, logger: logger}
}

func scanFiscalYear(r row) (*fiscalyear.FiscalYear, error) {
	var (
		fy                   fiscalyear.FiscalYear
		state                string
		closedAt, closedBy   sql.NullString
		createdAt, updatedAt string
	)
	if err := r.Scan(&fy.FiscalYearID, &fy.CompanyID, &fy.Name, &fy.StartDate, &fy.EndDate, &state,
		&closedAt, &closedBy, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	fy.State = fiscalyear.State(state)
	fy.ClosedBy = closedBy.String

	var err error
	if fy.ClosedAt, err = parseOptionalTime(closedAt); err != nil {
		return nil, err
	}
	if fy.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if fy.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	return &fy, nil
}

// CreateFiscalYear inserts a new fiscal year
func (r *SQLiteFiscalYearRepository) CreateFiscalYear(ctx context.Context, fy *fiscalyear.FiscalYear) error {
	_, err := r.db.Querier(ctx).ExecContext(ctx,
		`INSERT INTO fiscal_years (`+fiscalYearColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		fy.FiscalYearID, fy.CompanyID, fy.Name, fy.StartDate, fy.EndDate, string(fy.State),
		optionalTimeText(fy.ClosedAt), nullString(fy.ClosedBy), timeText(fy.CreatedAt), timeText(fy.UpdatedAt),
	)
	if err != nil {
		return storageError("failed to create fiscal year", err)
	}
	return nil
}

// GetFiscalYear retrieves a fiscal year by ID
func (r *SQLiteFiscalYearRepository) GetFiscalYear(ctx context.Context, fiscalYearID string) (*fiscalyear.FiscalYear, error) {
	fy, err := scanFiscalYear(r.db.Querier(ctx).QueryRowContext(ctx,
		`SELECT `+fiscalYearColumns+` FROM fiscal_years WHERE fiscal_year_id = ?`, fiscalYearID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, commonErrors.NewNotFoundError("fiscal year not found")
	}
	if err != nil {
		return nil, storageError("failed to get fiscal year", err)
	}
	return fy, nil
}

// ListFiscalYears returns the company's years ordered by start date
func (r *SQLiteFiscalYearRepository) ListFiscalYears(ctx context.Context, companyID string) ([]*fiscalyear.FiscalYear, error) {
	rows, err := r.db.Querier(ctx).QueryContext(ctx,
		`SELECT `+fiscalYearColumns+` FROM fiscal_years WHERE company_id = ? ORDER BY start_date`, companyID)
	if err != nil {
		return nil, storageError("failed to list fiscal years", err)
	}
	defer rows.Close()

	var years []*fiscalyear.FiscalYear
	for rows.Next() {
		fy, err := scanFiscalYear(rows)
		if err != nil {
			return nil, storageError("failed to read fiscal year", err)
		}
		years = append(years, fy)
	}
	if err := rows.Err(); err != nil {
		return nil, storageError("failed to list fiscal years", err)
	}
	return years, nil
}

// UpdateFiscalYear writes every mutable field of the year
func (r *SQLiteFiscalYearRepository) UpdateFiscalYear(ctx context.Context, fy *fiscalyear.FiscalYear) error {
	res, err := r.db.Querier(ctx).ExecContext(ctx, `
		UPDATE fiscal_years
		SET name = ?, start_date = ?, end_date = ?, state = ?, closed_at = ?, closed_by = ?, updated_at = ?
		WHERE fiscal_year_id = ?`,
		fy.Name, fy.StartDate, fy.EndDate, string(fy.State), optionalTimeText(fy.ClosedAt), nullString(fy.ClosedBy),
		timeText(fy.UpdatedAt), fy.FiscalYearID,
	)
	if err != nil {
		return storageError("failed to update fiscal year", err)
	}
	return expectOne(res, "fiscal year not found")
}

// DeleteFiscalYear removes a fiscal year
func (r *SQLiteFiscalYearRepository) DeleteFiscalYear(ctx context.Context, fiscalYearID string) error {
	res, err := r.db.Querier(ctx).ExecContext(ctx, `DELETE FROM fiscal_years WHERE fiscal_year_id = ?`, fiscalYearID)
	if err != nil {
		return storageError("failed to delete fiscal year", err)
	}
	return expectOne(res, "fiscal year not found")
}

// FindContaining returns the year whose range contains date, or nil
func (r *SQLiteFiscalYearRepository) FindContaining(ctx context.Context, companyID string, date string) (*fiscalyear.FiscalYear, error) {
	fy, err := scanFiscalYear(r.db.Querier(ctx).QueryRowContext(ctx,
		`SELECT `+fiscalYearColumns+` FROM fiscal_years
		WHERE company_id = ? AND start_date <= ? AND end_date >= ?
		ORDER BY start_date LIMIT 1`, companyID, date, date))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, storageError("failed to resolve fiscal year", err)
	}
	return fy, nil
}

// CountEntries counts journal entries assigned to the year
func (r *SQLiteFiscalYearRepository) CountEntries(ctx context.Context, fiscalYearID string) (int, error) {
	return countRows(ctx, r.db.Querier(ctx), `SELECT COUNT(*) FROM journal_entries WHERE fiscal_year_id = ?`, fiscalYearID)
}

// EntryDateRange returns the earliest and latest entry dates of the year
func (r *SQLiteFiscalYearRepository) EntryDateRange(ctx context.Context, fiscalYearID string) (string, string, error) {
	var first, last sql.NullString
	err := r.db.Querier(ctx).QueryRowContext(ctx,
		`SELECT MIN(entry_date), MAX(entry_date) FROM journal_entries WHERE fiscal_year_id = ?`, fiscalYearID,
	).Scan(&first, &last)
	if err != nil {
		return "", "", storageError("failed to read entry dates", err)
	}
	return first.String, last.String, nil
}
