package repository

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Janar2510/FUSION-AI-Enterprise-Suite-AI-Driven-modular-ERP-Platform-sub000/internal/domain/account"
	commonErrors "github.com/Janar2510/FUSION-AI-Enterprise-Suite-AI-Driven-modular-ERP-Platform-sub000/internal/domain/errors"
)

const accountColumns = `account_id, company_id, code, name, account_type, parent_id, active, created_at, updated_at`

// SQLiteAccountRepository implements the account.Repository interface
type SQLiteAccountRepository struct {
	db     DB
	logger *slog.Logger
}

var _ account.Repository = (*SQLiteAccountRepository)(nil)

// NewSQLiteAccountRepository creates a new SQLiteAccountRepository
func NewSQLiteAccountRepository(db DB, logger *slog.Logger) *SQLiteAccountRepository {
	return &SQLiteAccountRepository{db: db, logger: logger}
}

func scanAccount(r row) (*account.Account, error) {
	var (
		a                    account.Account
		accountType          string
		parentID             sql.NullString
		active               int
		createdAt, updatedAt string
	)
	if err := r.Scan(&a.AccountID, &a.CompanyID, &a.Code, &a.Name, &accountType, &parentID, &active, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	a.AccountType = account.AccountType(accountType)
	a.ParentID = parentID.String
	a.Active = active != 0

	var err error
	if a.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if a.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	return &a, nil
}

// CreateAccount inserts a new account
func (r *SQLiteAccountRepository) CreateAccount(ctx context.Context, a *account.Account) error {
	_, err := r.db.Querier(ctx).ExecContext(ctx,
		`INSERT INTO accounts (`+accountColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.AccountID, a.CompanyID, a.Code, a.Name, string(a.AccountType), nullString(a.ParentID),
		boolInt(a.Active), timeText(a.CreatedAt), timeText(a.UpdatedAt),
	)
	if err != nil {
		return storageError("failed to create account", err)
	}
	return nil
}

// GetAccount retrieves an account by ID
func (r *SQLiteAccountRepository) GetAccount(ctx context.Context, accountID string) (*account.Account, error) {
	a, err := scanAccount(r.db.Querier(ctx).QueryRowContext(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE account_id = ?`, accountID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, commonErrors.NewNotFoundError("account not found")
	}
	if err != nil {
		return nil, storageError("failed to get account", err)
	}
	return a, nil
}

// GetAccountByCode retrieves an account by its code within a company
func (r *SQLiteAccountRepository) GetAccountByCode(ctx context.Context, companyID string, code string) (*account.Account, error) {
	a, err := scanAccount(r.db.Querier(ctx).QueryRowContext(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE company_id = ? AND code = ?`, companyID, code))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, commonErrors.NewNotFoundError("account not found")
	}
	if err != nil {
		return nil, storageError("failed to get account", err)
	}
	return a, nil
}

// ListAccounts returns one page of accounts ordered by code and the total count
func (r *SQLiteAccountRepository) ListAccounts(ctx context.Context, companyID string, filter account.AccountFilter) ([]*account.Account, int, error) {
	where := []string{"company_id = ?"}
	args := []any{companyID}
	if filter.AccountType != "" {
		where = append(where, "account_type = ?")
		args = append(args, string(filter.AccountType))
	}
	if filter.ActiveOnly {
		where = append(where, "active = 1")
	}
	clause := strings.Join(where, " AND ")

	q := r.db.Querier(ctx)
	total, err := countRows(ctx, q, `SELECT COUNT(*) FROM accounts WHERE `+clause, args...)
	if err != nil {
		return nil, 0, err
	}

	accounts, err := r.query(ctx, `SELECT `+accountColumns+` FROM accounts WHERE `+clause+` ORDER BY code LIMIT ? OFFSET ?`,
		append(args, filter.Limit, filter.Skip)...)
	if err != nil {
		return nil, 0, err
	}
	return accounts, total, nil
}

// AllAccounts returns every account of the company ordered by code
func (r *SQLiteAccountRepository) AllAccounts(ctx context.Context, companyID string) ([]*account.Account, error) {
	return r.query(ctx, `SELECT `+accountColumns+` FROM accounts WHERE company_id = ? ORDER BY code`, companyID)
}

func (r *SQLiteAccountRepository) query(ctx context.Context, query string, args ...any) ([]*account.Account, error) {
	rows, err := r.db.Querier(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, storageError("failed to list accounts", err)
	}
	defer rows.Close()

	var accounts []*account.Account
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, storageError("failed to read account", err)
		}
		accounts = append(accounts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, storageError("failed to list accounts", err)
	}
	return accounts, nil
}

// UpdateAccount writes the mutable fields of an account
func (r *SQLiteAccountRepository) UpdateAccount(ctx context.Context, a *account.Account) error {
	res, err := r.db.Querier(ctx).ExecContext(ctx,
		`UPDATE accounts SET name = ?, parent_id = ?, active = ?, updated_at = ? WHERE account_id = ?`,
		a.Name, nullString(a.ParentID), boolInt(a.Active), timeText(a.UpdatedAt), a.AccountID,
	)
	if err != nil {
		return storageError("failed to update account", err)
	}
	return expectOne(res, "account not found")
}

// DeleteAccount removes an account and its position row
func (r *SQLiteAccountRepository) DeleteAccount(ctx context.Context, accountID string) error {
	q := r.db.Querier(ctx)
	if _, err := q.ExecContext(ctx, `DELETE FROM account_positions WHERE account_id = ?`, accountID); err != nil {
		return storageError("failed to delete account position", err)
	}
	res, err := q.ExecContext(ctx, `DELETE FROM accounts WHERE account_id = ?`, accountID)
	if err != nil {
		return storageError("failed to delete account", err)
	}
	return expectOne(res, "account not found")
}

// AccountCodeExists checks whether the code is taken within the company
func (r *SQLiteAccountRepository) AccountCodeExists(ctx context.Context, companyID string, code string) (bool, error) {
	n, err := countRows(ctx, r.db.Querier(ctx), `SELECT COUNT(*) FROM accounts WHERE company_id = ? AND code = ?`, companyID, code)
	return n > 0, err
}

// CountChildren counts accounts whose parent is accountID
func (r *SQLiteAccountRepository) CountChildren(ctx context.Context, accountID string) (int, error) {
	return countRows(ctx, r.db.Querier(ctx), `SELECT COUNT(*) FROM accounts WHERE parent_id = ?`, accountID)
}

// CountLineReferences counts journal lines against the account
func (r *SQLiteAccountRepository) CountLineReferences(ctx context.Context, accountID string) (int, error) {
	return countRows(ctx, r.db.Querier(ctx), `SELECT COUNT(*) FROM journal_entry_lines WHERE account_id = ?`, accountID)
}

// GetPosition returns the running net of the account, zero when never posted
func (r *SQLiteAccountRepository) GetPosition(ctx context.Context, accountID string) (*account.Position, error) {
	var (
		net, updatedAt string
		lastEntry      sql.NullString
	)
	err := r.db.Querier(ctx).QueryRowContext(ctx,
		`SELECT net, last_journal_entry_id, updated_at FROM account_positions WHERE account_id = ?`, accountID,
	).Scan(&net, &lastEntry, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return &account.Position{AccountID: accountID, Net: decimal.Zero}, nil
	}
	if err != nil {
		return nil, storageError("failed to get account position", err)
	}

	position := &account.Position{AccountID: accountID, LastJournalEntry: lastEntry.String}
	if position.Net, err = parseDecimal(net); err != nil {
		return nil, storageError("failed to read account position", err)
	}
	if position.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, storageError("failed to read account position", err)
	}
	return position, nil
}

// ApplyToPosition adds delta to the account's running net. It reads and
// writes inside the caller's transaction, which holds the write lock.
func (r *SQLiteAccountRepository) ApplyToPosition(ctx context.Context, accountID string, delta decimal.Decimal, journalEntryID string) error {
	current, err := r.GetPosition(ctx, accountID)
	if err != nil {
		return err
	}

	_, err = r.db.Querier(ctx).ExecContext(ctx, `
		INSERT INTO account_positions (account_id, net, last_journal_entry_id, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(account_id) DO UPDATE SET
			net = excluded.net,
			last_journal_entry_id = excluded.last_journal_entry_id,
			updated_at = excluded.updated_at`,
		accountID, current.Net.Add(delta).String(), journalEntryID, timeText(time.Now()),
	)
	if err != nil {
		return storageError("failed to update account position", err)
	}

	r.logger.Debug("account position updated", "accountId", accountID, "delta", delta.String(), "journalEntryId", journalEntryID)
	return nil
}
