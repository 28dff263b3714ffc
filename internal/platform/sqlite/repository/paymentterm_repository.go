package repository

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	commonErrors "github.com/Janar2510/FUSION-AI-Enterprise-Suite-AI-Driven-modular-ERP-Platform-sub000/internal/domain/errors"
	"github.com/Janar2510/FUSION-AI-Enterprise-Suite-AI-Driven-modular-ERP-Platform-sub000/internal/domain/paymentterm"
)

const paymentTermColumns = `payment_term_id, company_id, name, days, term_type, active, created_at, updated_at`

// SQLitePaymentTermRepository implements the paymentterm.Repository interface
type SQLitePaymentTermRepository struct {
	db     DB
	logger *slog.Logger
}

var _ paymentterm.Repository = (*SQLitePaymentTermRepository)(nil)

// NewSQLitePaymentTermRepository creates a new SQLitePaymentTermRepository
func NewSQLitePaymentTermRepository(db DB, logger *slog.Logger) *SQLitePaymentTermRepository {
	return &SQLitePaymentTermRepository{db: db, logger: logger}
}

func scanPaymentTerm(r row) (*paymentterm.PaymentTerm, error) {
	var (
		p                    paymentterm.PaymentTerm
		termType             string
		active               int
		createdAt, updatedAt string
	)
	if err := r.Scan(&p.PaymentTermID, &p.CompanyID, &p.Name, &p.Days, &termType, &active, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	p.Type = paymentterm.Type(termType)
	p.Active = active != 0

	var err error
	if p.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if p.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

// CreatePaymentTerm inserts a new payment term
func (r *SQLitePaymentTermRepository) CreatePaymentTerm(ctx context.Context, p *paymentterm.PaymentTerm) error {
	_, err := r.db.Querier(ctx).ExecContext(ctx,
		`INSERT INTO payment_terms (`+paymentTermColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		p.PaymentTermID, p.CompanyID, p.Name, p.Days, string(p.Type), boolInt(p.Active),
		timeText(p.CreatedAt), timeText(p.UpdatedAt),
	)
	if err != nil {
		return storageError("failed to create payment term", err)
	}
	return nil
}

// GetPaymentTerm retrieves a payment term by ID
func (r *SQLitePaymentTermRepository) GetPaymentTerm(ctx context.Context, paymentTermID string) (*paymentterm.PaymentTerm, error) {
	p, err := scanPaymentTerm(r.db.Querier(ctx).QueryRowContext(ctx,
		`SELECT `+paymentTermColumns+` FROM payment_terms WHERE payment_term_id = ?`, paymentTermID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, commonErrors.NewNotFoundError("payment term not found")
	}
	if err != nil {
		return nil, storageError("failed to get payment term", err)
	}
	return p, nil
}

// ListPaymentTerms returns the payment terms of a company ordered by days
func (r *SQLitePaymentTermRepository) ListPaymentTerms(ctx context.Context, companyID string) ([]*paymentterm.PaymentTerm, error) {
	rows, err := r.db.Querier(ctx).QueryContext(ctx,
		`SELECT `+paymentTermColumns+` FROM payment_terms WHERE company_id = ? ORDER BY days, name`, companyID)
	if err != nil {
		return nil, storageError("failed to list payment terms", err)
	}
	defer rows.Close()

	var terms []*paymentterm.PaymentTerm
	for rows.Next() {
		p, err := scanPaymentTerm(rows)
		if err != nil {
			return nil, storageError("failed to read payment term", err)
		}
		terms = append(terms, p)
	}
	if err := rows.Err(); err != nil {
		return nil, storageError("failed to list payment terms", err)
	}
	return terms, nil
}

// UpdatePaymentTerm writes the mutable fields of a payment term
func (r *SQLitePaymentTermRepository) UpdatePaymentTerm(ctx context.Context, p *paymentterm.PaymentTerm) error {
	res, err := r.db.Querier(ctx).ExecContext(ctx,
		`UPDATE payment_terms SET name = ?, days = ?, term_type = ?, active = ?, updated_at = ? WHERE payment_term_id = ?`,
		p.Name, p.Days, string(p.Type), boolInt(p.Active), timeText(p.UpdatedAt), p.PaymentTermID,
	)
	if err != nil {
		return storageError("failed to update payment term", err)
	}
	return expectOne(res, "payment term not found")
}

// DeletePaymentTerm removes a payment term
func (r *SQLitePaymentTermRepository) DeletePaymentTerm(ctx context.Context, paymentTermID string) error {
	res, err := r.db.Querier(ctx).ExecContext(ctx, `DELETE FROM payment_terms WHERE payment_term_id = ?`, paymentTermID)
	if err != nil {
		return storageError("failed to delete payment term", err)
	}
	return expectOne(res, "payment term not found")
}
