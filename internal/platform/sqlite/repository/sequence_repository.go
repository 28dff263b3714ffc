package repository

import (
	"context"
	"log/slog"

	"github.com/Janar2510/FUSION-AI-Enterprise-Suite-AI-Driven-modular-ERP-Platform-sub000/internal/domain/journal"
)

// SQLiteSequencer allocates entry numbers from the journal_sequences table
type SQLiteSequencer struct {
	db     DB
	logger *slog.Logger
}

var _ journal.Sequencer = (*SQLiteSequencer)(nil)

// NewSQLiteSequencer creates a new SQLiteSequencer
func NewSQLiteSequencer(db DB, logger *slog.Logger) *SQLiteSequencer {
	return &SQLiteSequencer{db: db, logger: logger}
}

// NextEntryNumber increments and returns the company counter in one
// statement. Called inside the creating transaction, a rollback also
// returns the number.
func (s *SQLiteSequencer) NextEntryNumber(ctx context.Context, companyID string) (int64, error) {
	var next int64
	err := s.db.Querier(ctx).QueryRowContext(ctx, `
		INSERT INTO journal_sequences (company_id, last_value) VALUES (?, 1)
		ON CONFLICT(company_id) DO UPDATE SET last_value = last_value + 1
		RETURNING last_value`, companyID).Scan(&next)
	if err != nil {
		return 0, storageError("failed to allocate entry number", err)
	}
	return next, nil
}
