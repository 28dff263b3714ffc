package repository

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	commonErrors "github.com/Janar2510/FUSION-AI-Enterprise-Suite-AI-Driven-modular-ERP-Platform-sub000/internal/domain/errors"
	"github.com/Janar2510/FUSION-AI-Enterprise-Suite-AI-Driven-modular-ERP-Platform-sub000/internal/domain/tax"
)

const taxColumns = `tax_id, company_id, name, rate, tax_type, account_id, active, created_at, updated_at`

// SQLiteTaxRepository implements the tax.Repository interface
type SQLiteTaxRepository struct {
	db     DB
	logger *slog.Logger
}

var _ tax.Repository = (*SQLiteTaxRepository)(nil)

// NewSQLiteTaxRepository creates a new SQLiteTaxRepository
func NewSQLiteTaxRepository(db DB, logger *slog.Logger) *SQLiteTaxRepository {
	return &SQLiteTaxRepository{db: db, logger: logger}
}

func scanTax(r row) (*tax.Tax, error) {
	var (
		t                    tax.Tax
		rate, taxType        string
		accountID            sql.NullString
		active               int
		createdAt, updatedAt string
	)
	if err := r.Scan(&t.TaxID, &t.CompanyID, &t.Name, &rate, &taxType, &accountID, &active, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	t.Type = tax.Type(taxType)
	t.AccountID = accountID.String
	t.Active = active != 0

	var err error
	if t.Rate, err = parseDecimal(rate); err != nil {
		return nil, err
	}
	if t.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if t.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	return &t, nil
}

// CreateTax inserts a new tax
func (r *SQLiteTaxRepository) CreateTax(ctx context.Context, t *tax.Tax) error {
	_, err := r.db.Querier(ctx).ExecContext(ctx,
		`INSERT INTO taxes (`+taxColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.TaxID, t.CompanyID, t.Name, t.Rate.String(), string(t.Type), nullString(t.AccountID),
		boolInt(t.Active), timeText(t.CreatedAt), timeText(t.UpdatedAt),
	)
	if err != nil {
		return storageError("failed to create tax", err)
	}
	return nil
}

// GetTax retrieves a tax by ID
func (r *SQLiteTaxRepository) GetTax(ctx context.Context, taxID string) (*tax.Tax, error) {
	t, err := scanTax(r.db.Querier(ctx).QueryRowContext(ctx, `SELECT `+taxColumns+` FROM taxes WHERE tax_id = ?`, taxID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, commonErrors.NewNotFoundError("tax not found")
	}
	if err != nil {
		return nil, storageError("failed to get tax", err)
	}
	return t, nil
}

// ListTaxes returns the taxes of a company ordered by name
func (r *SQLiteTaxRepository) ListTaxes(ctx context.Context, companyID string) ([]*tax.Tax, error) {
	rows, err := r.db.Querier(ctx).QueryContext(ctx,
		`SELECT `+taxColumns+` FROM taxes WHERE company_id = ? ORDER BY name`, companyID)
	if err != nil {
		return nil, storageError("failed to list taxes", err)
	}
	defer rows.Close()

	var taxes []*tax.Tax
	for rows.Next() {
		t, err := scanTax(rows)
		if err != nil {
			return nil, storageError("failed to read tax", err)
		}
		taxes = append(taxes, t)
	}
	if err := rows.Err(); err != nil {
		return nil, storageError("failed to list taxes", err)
	}
	return taxes, nil
}

// UpdateTax writes the mutable fields of a tax
func (r *SQLiteTaxRepository) UpdateTax(ctx context.Context, t *tax.Tax) error {
	res, err := r.db.Querier(ctx).ExecContext(ctx,
		`UPDATE taxes SET name = ?, rate = ?, tax_type = ?, account_id = ?, active = ?, updated_at = ? WHERE tax_id = ?`,
		t.Name, t.Rate.String(), string(t.Type), nullString(t.AccountID), boolInt(t.Active), timeText(t.UpdatedAt), t.TaxID,
	)
	if err != nil {
		return storageError("failed to update tax", err)
	}
	return expectOne(res, "tax not found")
}

// DeleteTax removes a tax
func (r *SQLiteTaxRepository) DeleteTax(ctx context.Context, taxID string) error {
	res, err := r.db.Querier(ctx).ExecContext(ctx, `DELETE FROM taxes WHERE tax_id = ?`, taxID)
	if err != nil {
		return storageError("failed to delete tax", err)
	}
	return expectOne(res, "tax not found")
}

// CountLineReferences counts journal lines that carry the tax
func (r *SQLiteTaxRepository) CountLineReferences(ctx context.Context, taxID string) (int, error) {
	return countRows(ctx, r.db.Querier(ctx), `SELECT COUNT(*) FROM journal_entry_lines WHERE tax_id = ?`, taxID)
}
