package bankstatement

import "context"

// Repository defines the interface for bank statement data operations
type Repository interface {
	// Create a statement with its lines
	CreateBankStatement(ctx context.Context, b *BankStatement) error

	// Get a statement with its lines
	GetBankStatement(ctx context.Context, bankStatementID string) (*BankStatement, error)

	// List statements of a company, without lines
	ListBankStatements(ctx context.Context, companyID string) ([]*BankStatement, error)

	UpdateBankStatement(ctx context.Context, b *BankStatement) error
	ReplaceLines(ctx context.Context, bankStatementID string, lines []Line) error
	DeleteBankStatement(ctx context.Context, bankStatementID string) error

	// LinesBetween returns every statement line of the bank account dated
	// within [startDate, endDate].
	LinesBetween(ctx context.Context, companyID, bankAccountID, startDate, endDate string) ([]Line, error)
}
