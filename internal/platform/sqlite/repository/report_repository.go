package repository

import (
	"context"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/Janar2510/FUSION-AI-Enterprise-Suite-AI-Driven-modular-ERP-Platform-sub000/internal/domain/report"
)

// SQLiteReportRepository implements the report.Repository interface
type SQLiteReportRepository struct {
	db     DB
	logger *slog.Logger
}

var _ report.Repository = (*SQLiteReportRepository)(nil)

// NewSQLiteReportRepository creates a new SQLiteReportRepository
func NewSQLiteReportRepository(db DB, logger *slog.Logger) *SQLiteReportRepository {
	return &SQLiteReportRepository{db: db, logger: logger}
}

// PostedNets sums debit minus credit per account over posted lines dated on
// or before asOfDate. Amounts are summed as decimals, not in SQL.
func (r *SQLiteReportRepository) PostedNets(ctx context.Context, companyID string, asOfDate string) (map[string]decimal.Decimal, error) {
	rows, err := r.db.Querier(ctx).QueryContext(ctx, `
		SELECT l.account_id, l.debit, l.credit
		FROM journal_entry_lines l
		JOIN journal_entries e ON e.journal_entry_id = l.journal_entry_id
		WHERE e.company_id = ? AND e.state = 'posted' AND e.entry_date <= ?`,
		companyID, asOfDate)
	if err != nil {
		return nil, storageError("failed to read posted lines", err)
	}
	defer rows.Close()

	nets := make(map[string]decimal.Decimal)
	for rows.Next() {
		var accountID, debit, credit string
		if err := rows.Scan(&accountID, &debit, &credit); err != nil {
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
		nets[accountID] = nets[accountID].Add(d.Sub(c))
	}
	if err := rows.Err(); err != nil {
		return nil, storageError("failed to read posted lines", err)
	}
	return nets, nil
}
