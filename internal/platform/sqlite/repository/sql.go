// Package repository implements the domain repositories on SQLite.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	commonErrors "github.com/Janar2510/FUSION-AI-Enterprise-Suite-AI-Driven-modular-ERP-Platform-sub000/internal/domain/errors"
	"github.com/Janar2510/FUSION-AI-Enterprise-Suite-AI-Driven-modular-ERP-Platform-sub000/internal/platform/sqlite"
)

// DB hands repositories the transaction of the current unit of work.
// *sqlite.Connection implements it.
type DB interface {
	Querier(ctx context.Context) sqlite.Querier
}

// row is satisfied by *sql.Row and *sql.Rows
type row interface {
	Scan(dest ...any) error
}

func timeText(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp %q: %w", s, err)
	}
	return t, nil
}

func parseOptionalTime(s sql.NullString) (*time.Time, error) {
	if !s.Valid || s.String == "" {
		return nil, nil
	}
	t, err := parseTime(s.String)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func optionalTimeText(t *time.Time) sql.NullString {
	if t == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: timeText(*t), Valid: true}
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func parseDecimal(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return d, nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// storageError maps driver errors onto the domain taxonomy.
func storageError(message string, err error) error {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.ExtendedCode {
		case sqlite3.ErrConstraintUnique, sqlite3.ErrConstraintPrimaryKey:
			return commonErrors.NewConflictError(message + ": record already exists")
		case sqlite3.ErrConstraintForeignKey:
			return commonErrors.NewConflictError(message + ": referenced record is missing or still in use")
		}
	}
	return commonErrors.NewInternalError(message, err)
}

// expectOne turns a zero-row update or delete into a not found error.
func expectOne(res sql.Result, notFound string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return commonErrors.NewInternalError("failed to read affected rows", err)
	}
	if n == 0 {
		return commonErrors.NewNotFoundError(notFound)
	}
	return nil
}

func countRows(ctx context.Context, q sqlite.Querier, query string, args ...any) (int, error) {
	var n int
	if err := q.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, storageError("failed to count rows", err)
	}
	return n, nil
}
