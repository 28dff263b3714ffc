package account

import (
	"context"

	"github.com/shopspring/decimal"
)

// Repository defines the interface for account data operations
type Repository interface {
	// Create a new account
	CreateAccount(ctx context.Context, account *Account) error

	// Get an account by ID
	GetAccount(ctx context.Context, accountID string) (*Account, error)

	// Get an account by its code within a company
	GetAccountByCode(ctx context.Context, companyID string, code string) (*Account, error)

	// Get accounts by criteria
	ListAccounts(ctx context.Context, companyID string, filter AccountFilter) ([]*Account, int, error)

	// Get every account of a company, unpaged
	AllAccounts(ctx context.Context, companyID string) ([]*Account, error)

	// Update an existing account
	UpdateAccount(ctx context.Context, account *Account) error

	// Delete an account
	DeleteAccount(ctx context.Context, accountID string) error

	// Check if account exists
	AccountCodeExists(ctx context.Context, companyID string, code string) (bool, error)

	// Count child accounts
	CountChildren(ctx context.Context, accountID string) (int, error)

	// Count journal lines referencing the account
	CountLineReferences(ctx context.Context, accountID string) (int, error)

	// Get account position
	GetPosition(ctx context.Context, accountID string) (*Position, error)

	// Add delta to the account position
	ApplyToPosition(ctx context.Context, accountID string, delta decimal.Decimal, journalEntryID string) error
}
