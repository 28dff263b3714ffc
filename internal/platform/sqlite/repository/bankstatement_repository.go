package repository

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/Janar2510/FUSION-AI-Enterprise-Suite-AI-Driven-modular-ERP-Platform-sub000/internal/domain/bankstatement"
	commonErrors "github.com/Janar2510/FUSION-AI-Enterprise-Suite-AI-Driven-modular-ERP-Platform-sub000/internal/domain/errors"
	"github.com/Janar2510/FUSION-AI-Enterprise-Suite-AI-Driven-modular-ERP-Platform-sub000/internal/platform/sqlite"
)

const statementColumns = `bank_statement_id, company_id, bank_account_id, statement_date, reference, created_at, updated_at`

// SQLiteBankStatementRepository implements the bankstatement.Repository interface
type SQLiteBankStatementRepository struct {
	db     DB
	logger *slog.Logger
}

var _ bankstatement.Repository = (*SQLiteBankStatementRepository)(nil)

// NewSQLiteBankStatementRepository creates a new SQLiteBankStatementRepository
func NewSQLiteBankStatementRepository(db DB, logger *slog.Logger) *SQLiteBankStatementRepository {
	return &SQLiteBankStatementRepository{db: db, logger: logger}
}

func scanStatement(r row) (*bankstatement.BankStatement, error) {
	var (
		b                    bankstatement.BankStatement
		createdAt, updatedAt string
	)
	if err := r.Scan(&b.BankStatementID, &b.CompanyID, &b.BankAccountID, &b.StatementDate, &b.Reference,
		&createdAt, &updatedAt); err != nil {
		return nil, err
	}
	var err error
	if b.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if b.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	return &b, nil
}

func scanStatementLine(r row) (bankstatement.Line, error) {
	var (
		l      bankstatement.Line
		amount string
	)
	if err := r.Scan(&l.LineID, &l.BankStatementID, &l.Date, &l.Description, &amount, &l.Reference); err != nil {
		return l, err
	}
	var err error
	l.Amount, err = parseDecimal(amount)
	return l, err
}

// CreateBankStatement inserts a statement and its lines
func (r *SQLiteBankStatementRepository) CreateBankStatement(ctx context.Context, b *bankstatement.BankStatement) error {
	q := r.db.Querier(ctx)
	_, err := q.ExecContext(ctx,
		`INSERT INTO bank_statements (`+statementColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		b.BankStatementID, b.CompanyID, b.BankAccountID, b.StatementDate, b.Reference,
		timeText(b.CreatedAt), timeText(b.UpdatedAt),
	)
	if err != nil {
		return storageError("failed to create bank statement", err)
	}
	return insertStatementLines(ctx, q, b.Lines)
}

func insertStatementLines(ctx context.Context, q sqlite.Querier, lines []bankstatement.Line) error {
	for i, l := range lines {
		_, err := q.ExecContext(ctx, `
			INSERT INTO bank_statement_lines (line_id, bank_statement_id, position, line_date, description, amount, reference)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			l.LineID, l.BankStatementID, i+1, l.Date, l.Description, l.Amount.String(), l.Reference,
		)
		if err != nil {
			return storageError("failed to create bank statement line", err)
		}
	}
	return nil
}

// GetBankStatement retrieves a statement with its lines in order
func (r *SQLiteBankStatementRepository) GetBankStatement(ctx context.Context, bankStatementID string) (*bankstatement.BankStatement, error) {
	q := r.db.Querier(ctx)
	b, err := scanStatement(q.QueryRowContext(ctx,
		`SELECT `+statementColumns+` FROM bank_statements WHERE bank_statement_id = ?`, bankStatementID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, commonErrors.NewNotFoundError("bank statement not found")
	}
	if err != nil {
		return nil, storageError("failed to get bank statement", err)
	}

	lines, err := r.queryLines(ctx, `
		SELECT line_id, bank_statement_id, line_date, description, amount, reference
		FROM bank_statement_lines WHERE bank_statement_id = ? ORDER BY position`, bankStatementID)
	if err != nil {
		return nil, err
	}
	b.Lines = lines
	if b.Lines == nil {
		b.Lines = []bankstatement.Line{}
	}
	return b, nil
}

// ListBankStatements returns statement headers of a company, newest first
func (r *SQLiteBankStatementRepository) ListBankStatements(ctx context.Context, companyID string) ([]*bankstatement.BankStatement, error) {
	rows, err := r.db.Querier(ctx).QueryContext(ctx,
		`SELECT `+statementColumns+` FROM bank_statements WHERE company_id = ? ORDER BY statement_date DESC`, companyID)
	if err != nil {
		return nil, storageError("failed to list bank statements", err)
	}
	defer rows.Close()

	var statements []*bankstatement.BankStatement
	for rows.Next() {
		b, err := scanStatement(rows)
		if err != nil {
			return nil, storageError("failed to read bank statement", err)
		}
		statements = append(statements, b)
	}
	if err := rows.Err(); err != nil {
		return nil, storageError("failed to list bank statements", err)
	}
	return statements, nil
}

// UpdateBankStatement writes the header fields of a statement
func (r *SQLiteBankStatementRepository) UpdateBankStatement(ctx context.Context, b *bankstatement.BankStatement) error {
	res, err := r.db.Querier(ctx).ExecContext(ctx,
		`UPDATE bank_statements SET statement_date = ?, reference = ?, updated_at = ? WHERE bank_statement_id = ?`,
		b.StatementDate, b.Reference, timeText(b.UpdatedAt), b.BankStatementID,
	)
	if err != nil {
		return storageError("failed to update bank statement", err)
	}
	return expectOne(res, "bank statement not found")
}

// ReplaceLines deletes every line of the statement and inserts the new set
func (r *SQLiteBankStatementRepository) ReplaceLines(ctx context.Context, bankStatementID string, lines []bankstatement.Line) error {
	q := r.db.Querier(ctx)
	if _, err := q.ExecContext(ctx, `DELETE FROM bank_statement_lines WHERE bank_statement_id = ?`, bankStatementID); err != nil {
		return storageError("failed to delete bank statement lines", err)
	}
	return insertStatementLines(ctx, q, lines)
}

// DeleteBankStatement removes the statement header
func (r *SQLiteBankStatementRepository) DeleteBankStatement(ctx context.Context, bankStatementID string) error {
	res, err := r.db.Querier(ctx).ExecContext(ctx, `DELETE FROM bank_statements WHERE bank_statement_id = ?`, bankStatementID)
	if err != nil {
		return storageError("failed to delete bank statement", err)
	}
	return expectOne(res, "bank statement not found")
}

// LinesBetween returns the statement lines of a bank account within a date range
func (r *SQLiteBankStatementRepository) LinesBetween(ctx context.Context, companyID, bankAccountID, startDate, endDate string) ([]bankstatement.Line, error) {
	return r.queryLines(ctx, `
		SELECT l.line_id, l.bank_statement_id, l.line_date, l.description, l.amount, l.reference
		FROM bank_statement_lines l
		JOIN bank_statements s ON s.bank_statement_id = l.bank_statement_id
		WHERE s.company_id = ? AND s.bank_account_id = ? AND l.line_date >= ? AND l.line_date <= ?
		ORDER BY l.line_date, s.statement_date, l.position`,
		companyID, bankAccountID, startDate, endDate)
}

func (r *SQLiteBankStatementRepository) queryLines(ctx context.Context, query string, args ...any) ([]bankstatement.Line, error) {
	rows, err := r.db.Querier(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, storageError("failed to list bank statement lines", err)
	}
	defer rows.Close()

	var lines []bankstatement.Line
	for rows.Next() {
		l, err := scanStatementLine(rows)
		if err != nil {
			return nil, storageError("failed to read bank statement line", err)
		}
		lines = append(lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, storageError("failed to list bank statement lines", err)
	}
	return lines, nil
}
